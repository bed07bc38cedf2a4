package ckcu

import (
	"time"

	"ht32-hal-go/x/timex"
	"ht32-hal-go/x/units"
)

// Clocks are the frozen core clock frequencies.
//
// A non-zero Clocks only comes out of Freeze, after the registers were
// programmed to match it. Peripherals read their input clock from here.
type Clocks struct {
	ckout    CkoutSrc
	hasCkout bool

	usb  units.Hertz
	adc  units.Hertz
	sys  units.Hertz
	tick units.Hertz
	hclk units.Hertz
}

func (p Plan) clocks() Clocks {
	return Clocks{
		ckout:    p.ckout.v,
		hasCkout: p.ckout.ok,
		usb:      p.usb,
		adc:      p.adc,
		sys:      p.sys,
		tick:     p.Tick(),
		hclk:     p.hclk,
	}
}

// Ckout is the clock routed to CKOUT, if any.
func (c Clocks) Ckout() (CkoutSrc, bool) { return c.ckout, c.hasCkout }

// USB is CK_USB; 0 when the PLL is off.
func (c Clocks) USB() units.Hertz { return c.usb }

// ADC is CK_ADC_IP.
func (c Clocks) ADC() units.Hertz { return c.adc }

// Sys is CK_SYS.
func (c Clocks) Sys() units.Hertz { return c.sys }

// Tick is STCLK, the SysTick clock: always HCLK/8.
func (c Clocks) Tick() units.Hertz { return c.tick }

// Hclk is the AHB bus clock, the source for every peripheral on this chip.
func (c Clocks) Hclk() units.Hertz { return c.hclk }

func (c Clocks) TickPeriod() time.Duration { return timex.Period(c.tick) }
