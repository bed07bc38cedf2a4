// Package ckcu register addresses, bitfields and field encodings for the
// HT32F52342 clock control unit (CKCU) and the flash controller (FMC).
package ckcu

// Reg identifies one 32-bit register touched by the clock tree.
type Reg uint8

const (
	RegGCFGR   Reg = iota // CKCU global clock configuration
	RegGCCR               // CKCU global clock control
	RegGCSR               // CKCU global clock status
	RegPLLCFGR            // CKCU PLL configuration
	RegAHBCFGR            // CKCU AHB configuration
	RegAPBCFGR            // CKCU APB configuration
	RegCFCR               // FMC cache and flash control

	numRegs
)

const (
	ckcuBase = 0x4008_8000
	fmcBase  = 0x4008_0000
)

var regAddr = [numRegs]uintptr{
	RegGCFGR:   ckcuBase + 0x000,
	RegGCCR:    ckcuBase + 0x004,
	RegGCSR:    ckcuBase + 0x008,
	RegPLLCFGR: ckcuBase + 0x018,
	RegAHBCFGR: ckcuBase + 0x020,
	RegAPBCFGR: ckcuBase + 0x028,
	RegCFCR:    fmcBase + 0x200,
}

var regName = [numRegs]string{
	RegGCFGR:   "CKCU_GCFGR",
	RegGCCR:    "CKCU_GCCR",
	RegGCSR:    "CKCU_GCSR",
	RegPLLCFGR: "CKCU_PLLCFGR",
	RegAHBCFGR: "CKCU_AHBCFGR",
	RegAPBCFGR: "CKCU_APBCFGR",
	RegCFCR:    "FMC_CFCR",
}

// Addr is the physical address of r.
func (r Reg) Addr() uintptr {
	if r >= numRegs {
		return 0
	}
	return regAddr[r]
}

func (r Reg) String() string {
	if r >= numRegs {
		return "REG?"
	}
	return regName[r]
}

// field is a contiguous bit range inside a register.
type field struct {
	pos   uint8
	width uint8
}

func (f field) mask() uint32 { return (1<<f.width - 1) << f.pos }

// place shifts v into position, dropping bits that do not fit.
func (f field) place(v uint32) uint32 { return (v << f.pos) & f.mask() }

func (f field) get(reg uint32) uint32 { return (reg & f.mask()) >> f.pos }

var (
	// GCFGR
	fCkoutSrc = field{pos: 0, width: 3}
	fPLLSrc   = field{pos: 8, width: 1}

	// GCCR
	fSW    = field{pos: 0, width: 3}
	fPLLEN = field{pos: 9, width: 1}
	fHSIEN = field{pos: 11, width: 1}

	// GCSR
	fPLLRDY = field{pos: 1, width: 1}

	// PLLCFGR
	fPOTD = field{pos: 21, width: 2}
	fPFBD = field{pos: 23, width: 4}

	// AHBCFGR
	fAHBPRE = field{pos: 0, width: 3}

	// APBCFGR
	fADCDIV = field{pos: 16, width: 3}

	// FMC CFCR
	fWAIT = field{pos: 0, width: 3}
)

// CK_SYS mux (GCCR.SW). 0b001, 0b100 and 0b101 are reserved.
const (
	swPLL uint32 = 0b000
	swHSE uint32 = 0b010
	swHSI uint32 = 0b011
	swLSE uint32 = 0b110
	swLSI uint32 = 0b111
)

// FMC_CFCR.WAIT values.
const (
	waitZero uint32 = 0b001
	waitOne  uint32 = 0b010
)

// Fixed oscillators and hardware limits.
const (
	hsiHz = 8_000_000
	lsiHz = 32_000

	sysMaxHz = 48_000_000 // CK_SYS <= 48 MHz
	usbMaxHz = 48_000_000 // CK_USB < 48 MHz

	vcoMinHz = 48_000_000 // VCO in [48, 96] MHz
	vcoMaxHz = 96_000_000
	pllMinHz = 4_000_000 // PLL out in (4, 48) MHz
	pllMaxHz = 48_000_000

	// Above this HCLK the flash needs one wait state.
	flashZeroWaitMaxHz = 24_000_000
)
