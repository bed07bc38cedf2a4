// Package ckcu derives the HT32F52342 clock tree from a handful of frequency
// targets and programs it into the clock control unit.
//
// Design notes (from the HT32F52342 user manual):
// • CK_SYS comes from HSE, HSI (8 MHz), LSE, LSI (32 kHz) or the PLL.
// • An exact oscillator match always wins over the PLL.
// • PLL out = CK_in·NF2/NO2 in (4, 48) MHz; VCO = CK_in·(4·NF2)/2 in [48, 96] MHz.
// • NF2 ∈ 1..16, NO2 ∈ {1,2,4,8}; USB shares the one PLL with CK_SYS.
// • HCLK = CK_SYS/{1,2,4,8,16}; STCLK = HCLK/8; CK_ADC = HCLK/{1,2,3,4,8,…,64}.
// • Flash needs a wait state above 24 MHz, set before the faster clock is selected.
//
// Usage:
//
//	clocks, err := ckcu.Constrain(regs).Sys(32 * units.MHz).Ckout(ckcu.CkoutSys).Freeze()
package ckcu

import "ht32-hal-go/x/units"

// CkoutSrc is a clock that can be routed to the CKOUT pin.
type CkoutSrc uint8

const (
	CkoutRef  CkoutSrc = iota // CK_REF, no prescaler
	CkoutHclk                 // HCLK / 16
	CkoutSys                  // CK_SYS / 16
	CkoutHSE                  // CK_HSE / 16
	CkoutHSI                  // CK_HSI / 16
	CkoutLSE                  // CK_LSE, no prescaler
	CkoutLSI                  // CK_LSI, no prescaler
)

var ckoutNames = [...]string{"ck_ref", "hclk", "ck_sys", "ck_hse", "ck_hsi", "ck_lse", "ck_lsi"}

func (s CkoutSrc) Valid() bool { return int(s) < len(ckoutNames) }

func (s CkoutSrc) String() string {
	if !s.Valid() {
		return "ckout?"
	}
	return ckoutNames[s]
}

// Divided reports whether the pin sees the source divided by 16.
func (s CkoutSrc) Divided() bool {
	switch s {
	case CkoutHclk, CkoutSys, CkoutHSE, CkoutHSI:
		return true
	}
	return false
}

// code is the GCFGR.CKOUTSRC encoding; it follows declaration order.
func (s CkoutSrc) code() uint32 { return uint32(s) }

// ParseCkoutSrc maps a selector name ("ck_sys", "hclk", …) to its value.
func ParseCkoutSrc(name string) (CkoutSrc, bool) {
	for i, n := range ckoutNames {
		if n == name {
			return CkoutSrc(i), true
		}
	}
	return 0, false
}

// handle is the single owner of the clock registers.
type handle struct {
	regs   Registers
	frozen bool
}

type opt[T any] struct {
	v  T
	ok bool
}

func some[T any](v T) opt[T] { return opt[T]{v: v, ok: true} }

// Configuration is the targeted clock tree. Setters take and return it by
// value, so nothing is applied until Freeze. Targets are hints: the frozen
// Clocks report what the hardware actually runs at.
type Configuration struct {
	h *handle

	ckout opt[CkoutSrc]
	hse   opt[units.Hertz]
	lse   opt[units.Hertz]
	usb   opt[units.Hertz]
	adc   opt[units.Hertz]
	sys   opt[units.Hertz]
	hclk  opt[units.Hertz]
}

// Constrain takes ownership of the clock registers. regs must not be used
// by anything else afterwards.
func Constrain(regs Registers) Configuration {
	return Configuration{h: &handle{regs: regs}}
}

// Ckout routes src to the CKOUT pin once the tree is running.
func (c Configuration) Ckout(src CkoutSrc) Configuration {
	c.ckout = some(src)
	return c
}

// UseHSE declares an external high speed oscillator. It is preferred over
// the HSI when both would fit and it feeds the PLL.
func (c Configuration) UseHSE(f units.Hertz) Configuration {
	c.hse = some(f)
	return c
}

// UseLSE declares an external low speed oscillator, preferred over the LSI.
func (c Configuration) UseLSE(f units.Hertz) Configuration {
	c.lse = some(f)
	return c
}

// USB sets the desired CK_USB.
func (c Configuration) USB(f units.Hertz) Configuration {
	c.usb = some(f)
	return c
}

// ADC sets the desired CK_ADC_IP.
func (c Configuration) ADC(f units.Hertz) Configuration {
	c.adc = some(f)
	return c
}

// Sys sets the desired CK_SYS.
func (c Configuration) Sys(f units.Hertz) Configuration {
	c.sys = some(f)
	return c
}

// Hclk sets the desired HCLK (AHB bus).
func (c Configuration) Hclk(f units.Hertz) Configuration {
	c.hclk = some(f)
	return c
}
