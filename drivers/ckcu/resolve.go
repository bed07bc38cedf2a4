package ckcu

import "ht32-hal-go/x/units"

// Source is the oscillator (or PLL) driving CK_SYS.
type Source uint8

const (
	SourcePLL Source = iota
	SourceHSE
	SourceHSI
	SourceLSE
	SourceLSI
)

var sourceNames = [...]string{"pll", "hse", "hsi", "lse", "lsi"}
var sourceSW = [...]uint32{swPLL, swHSE, swHSI, swLSE, swLSI}

func (s Source) String() string {
	if int(s) >= len(sourceNames) {
		return "source?"
	}
	return sourceNames[s]
}

func (s Source) sw() uint32 { return sourceSW[s] }

// Plan is a resolved clock tree: what will be written and what it achieves.
// Resolving has no side effects; only Freeze touches the registers.
type Plan struct {
	source Source
	pllSrc bool // PLL fed from HSE

	pll      opt[pllDivider]
	pllAimHz units.Hertz

	hclkDiv prescale
	adcDiv  prescale
	wait    bool

	ckout opt[CkoutSrc]

	sys  units.Hertz
	usb  units.Hertz
	hclk units.Hertz
	adc  units.Hertz
}

func (p Plan) Source() Source { return p.source }

// PLL reports the PLL dividers (NF2, NO2) and output, if the PLL is used.
func (p Plan) PLL() (nf2, no2 uint8, out units.Hertz, ok bool) {
	if !p.pll.ok {
		return 0, 0, 0, false
	}
	return p.pll.v.nf2, p.pll.v.no2, p.pll.v.out, true
}

// PLLTarget is the frequency the divider search aimed at (0 without PLL).
func (p Plan) PLLTarget() units.Hertz { return p.pllAimHz }

func (p Plan) HclkDivider() uint8 { return p.hclkDiv.div }
func (p Plan) ADCDivider() uint8  { return p.adcDiv.div }

// FlashWaitState reports whether a flash wait state is raised before the
// CK_SYS switch.
func (p Plan) FlashWaitState() bool { return p.wait }

func (p Plan) Sys() units.Hertz  { return p.sys }
func (p Plan) USB() units.Hertz  { return p.usb }
func (p Plan) Hclk() units.Hertz { return p.hclk }
func (p Plan) ADC() units.Hertz  { return p.adc }
func (p Plan) Tick() units.Hertz { return p.hclk / 8 }

// Resolve derives the clock tree from c without touching hardware. Targets
// the hardware cannot represent come back as precondition errors (see
// IsPrecondition); an unreachable PLL target as errcode.PLLUnreachable.
func (c Configuration) Resolve() (Plan, error) {
	var p Plan
	if err := c.checkNonZero(); err != nil {
		return p, err
	}
	if c.ckout.ok && !c.ckout.v.Valid() {
		return p, precondition(opCkout, ErrBadCkout)
	}

	// High speed oscillator; GCFGR.PLLSRC follows whether it is external.
	hso := units.Hertz(hsiHz)
	if c.hse.ok {
		hso = c.hse.v
	}
	p.pllSrc = c.hse.ok
	p.ckout = c.ckout

	var pllTarget opt[units.Hertz]
	switch {
	case c.sys.ok:
		target := c.sys.v
		if target > sysMaxHz {
			return p, precondition(opSys, ErrSysTooFast)
		}
		switch {
		case c.lse.ok && c.lse.v == target:
			p.source, p.sys = SourceLSE, c.lse.v
		case c.hse.ok && c.hse.v == target:
			p.source, p.sys = SourceHSE, c.hse.v
		case target == lsiHz:
			p.source, p.sys = SourceLSI, lsiHz
		case target == hsiHz:
			p.source, p.sys = SourceHSI, hsiHz
		default:
			pllTarget = some(target)
			p.source, p.sys = SourcePLL, target
		}
	case c.lse.ok:
		p.source, p.sys = SourceLSE, c.lse.v
	default:
		p.source, p.sys = SourceLSI, lsiHz
	}

	if c.usb.ok {
		if c.usb.v >= usbMaxHz {
			return p, precondition(opUSB, ErrUSBTooFast)
		}
		if !pllTarget.ok {
			pllTarget = some(c.usb.v)
		}
	}

	if pllTarget.ok {
		d, err := searchPLL(hso, pllTarget.v)
		if err != nil {
			return p, err
		}
		p.pll = some(d)
		p.pllAimHz = pllTarget.v
		p.usb = d.out
		if p.source == SourcePLL {
			p.sys = d.out
		}
	}

	p.hclkDiv = hclkPrescale(p.sys, c.hclk)
	p.hclk = p.sys / units.Hertz(p.hclkDiv.div)

	p.adcDiv = adcPrescale(p.hclk, c.adc)
	p.adc = p.hclk / units.Hertz(p.adcDiv.div)

	// HCLK runs at CK_SYS between the SW switch and the AHB prescaler write,
	// so the flash has to cope with CK_SYS, not only with the final HCLK.
	p.wait = p.sys > flashZeroWaitMaxHz
	return p, nil
}

func (c Configuration) checkNonZero() error {
	checks := [...]struct {
		f  opt[units.Hertz]
		op string
	}{
		{c.hse, opHSE}, {c.lse, opLSE}, {c.sys, opSys},
		{c.usb, opUSB}, {c.hclk, opHclk}, {c.adc, opADC},
	}
	for _, k := range checks {
		if k.f.ok && k.f.v == 0 {
			return precondition(k.op, ErrZeroFrequency)
		}
	}
	return nil
}
