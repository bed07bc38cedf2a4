package main

import (
	"fmt"
	"io"

	"ht32-hal-go/drivers/ckcu"
	"ht32-hal-go/x/conv"
)

func writePlan(w io.Writer, p ckcu.Plan, c ckcu.Clocks) {
	fmt.Fprintf(w, "%-8s %s\n", "source", p.Source())
	if nf2, no2, out, ok := p.PLL(); ok {
		fmt.Fprintf(w, "%-8s nf2=%d no2=%d out=%s target=%s\n", "pll", nf2, no2, out, p.PLLTarget())
	} else {
		fmt.Fprintf(w, "%-8s off\n", "pll")
	}
	fmt.Fprintf(w, "%-8s %s\n", "ck_sys", c.Sys())
	fmt.Fprintf(w, "%-8s %s (/%d)\n", "hclk", c.Hclk(), p.HclkDivider())
	fmt.Fprintf(w, "%-8s %s (/%d)\n", "ck_adc", c.ADC(), p.ADCDivider())
	fmt.Fprintf(w, "%-8s %s\n", "ck_usb", c.USB())
	fmt.Fprintf(w, "%-8s %s (%v)\n", "stclk", c.Tick(), c.TickPeriod())
	if p.FlashWaitState() {
		fmt.Fprintf(w, "%-8s 1 wait state\n", "flash")
	} else {
		fmt.Fprintf(w, "%-8s 0 wait states\n", "flash")
	}
	if src, ok := c.Ckout(); ok {
		div := ""
		if src.Divided() {
			div = " /16"
		}
		fmt.Fprintf(w, "%-8s %s%s\n", "ckout", src, div)
	}
}

func writeTrace(w io.Writer, trace []ckcu.Write, bits bool) {
	render := conv.Hex32
	if bits {
		render = func(v uint32) string { return conv.Bin(v, 32) }
	}
	for i, wr := range trace {
		fmt.Fprintf(w, "%2d  %-12s %s -> %s\n", i+1, wr.Reg, render(wr.Old), render(wr.New))
	}
}
