package ckcu

import (
	"ht32-hal-go/x/mathx"
	"ht32-hal-go/x/units"
)

// prescale is a chosen divider and its register encoding.
type prescale struct {
	div  uint8
	code uint32
}

// Brackets, largest first: the first entry whose min the ratio reaches wins.
type bracket struct {
	min uint32
	prescale
}

// AHBPRE: ratio 1 → /1, 2–3 → /2, 4–7 → /4, 8–15 → /8, 16+ → /16.
var hclkBrackets = [...]bracket{
	{16, prescale{16, 0b111}},
	{8, prescale{8, 0b100}},
	{4, prescale{4, 0b010}},
	{2, prescale{2, 0b001}},
	{0, prescale{1, 0b000}},
}

// ADCDIV: 1, 2, 3 exact, then powers of two up to 64.
var adcBrackets = [...]bracket{
	{64, prescale{64, 0b110}},
	{32, prescale{32, 0b101}},
	{16, prescale{16, 0b100}},
	{8, prescale{8, 0b011}},
	{4, prescale{4, 0b010}},
	{3, prescale{3, 0b111}},
	{2, prescale{2, 0b001}},
	{0, prescale{1, 0b000}},
}

var noDivide = prescale{1, 0b000}

// pick buckets ratio into brackets. A ratio of 0 (target above the parent
// clock) falls into the last bracket, divider 1.
func pick(brackets []bracket, ratio uint32) prescale {
	for _, b := range brackets {
		if ratio >= b.min {
			return b.prescale
		}
	}
	return noDivide
}

// hclkPrescale picks the AHB divider for CK_SYS → HCLK.
func hclkPrescale(sys units.Hertz, target opt[units.Hertz]) prescale {
	if !target.ok {
		return noDivide
	}
	return pick(hclkBrackets[:], mathx.DivOrZero(uint32(sys), uint32(target.v)))
}

// adcPrescale picks the ADC divider for HCLK → CK_ADC_IP.
func adcPrescale(hclk units.Hertz, target opt[units.Hertz]) prescale {
	if !target.ok {
		return noDivide
	}
	return pick(adcBrackets[:], mathx.DivOrZero(uint32(hclk), uint32(target.v)))
}
