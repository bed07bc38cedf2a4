package ckcu

import (
	"ht32-hal-go/errcode"
	"ht32-hal-go/x/mathx"
	"ht32-hal-go/x/units"
)

// pllDivider is one legal (NF2, NO2) pair and the output it produces.
type pllDivider struct {
	nf2 uint8 // feedback divider, 1..16
	no2 uint8 // output divider, 1/2/4/8
	out units.Hertz
}

var pllOutputDividers = [...]uint8{1, 2, 4, 8}

// searchPLL tries all 64 (NF2, NO2) pairs and keeps the one whose ratio
// NF2/NO2 is closest to target/hso. Candidates whose VCO or output leave the
// hardware windows are skipped; the first best pair in NF2-then-NO2 order
// wins.
//
// Ratios are compared exactly: |NF2/NO2 − t/h| ∝ |NF2·h − t·NO2| / NO2, and
// two such fractions are compared by cross-multiplying.
func searchPLL(hso, target units.Hertz) (pllDivider, error) {
	h, t := uint64(hso), uint64(target)

	var best pllDivider
	var bestNum, bestDen uint64
	found := false

	for nf2 := uint64(1); nf2 <= 16; nf2++ {
		vco := h * (4 * nf2) / 2
		if !mathx.Between(vco, vcoMinHz, vcoMaxHz) {
			continue
		}
		for _, d := range pllOutputDividers {
			no2 := uint64(d)
			// out = h·nf2/no2 strictly inside (4, 48) MHz, without truncation.
			if !mathx.Inside(h*nf2, pllMinHz*no2, pllMaxHz*no2) {
				continue
			}
			num := mathx.AbsDiff(nf2*h, t*no2)
			if !found || num*bestDen < bestNum*no2 {
				best = pllDivider{nf2: uint8(nf2), no2: d, out: units.Hertz(h * nf2 / no2)}
				bestNum, bestDen = num, no2
				found = true
			}
		}
	}
	if !found {
		return pllDivider{}, errcode.New(errcode.PLLUnreachable, opPLL, ErrNoPLLDivider)
	}
	return best, nil
}

// pfbd is the PLLCFGR.PFBD encoding of NF2: 16 is written as 0.
func (d pllDivider) pfbd() uint32 {
	if d.nf2 == 16 {
		return 0
	}
	return uint32(d.nf2)
}

// potd is the PLLCFGR.POTD encoding of NO2: 1,2,4,8 → 0b00..0b11.
func (d pllDivider) potd() uint32 {
	switch d.no2 {
	case 2:
		return 0b01
	case 4:
		return 0b10
	case 8:
		return 0b11
	}
	return 0b00
}
