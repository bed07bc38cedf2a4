package ckcu

// Write is one register store seen by Sim.
type Write struct {
	Reg Reg
	Old uint32
	New uint32
}

// Sim is an in-memory CKCU/FMC register file. It records every store so the
// programming order can be checked or printed, and it models PLL lock:
// GCSR.PLLRDY reads as set LockAfter polls after GCCR.PLLEN is written, or
// never when NeverLock is true.
type Sim struct {
	regs  [numRegs]uint32
	Trace []Write

	LockAfter int
	NeverLock bool
	polls     int
}

// NewSim returns a register file in its reset state: running from the HSI,
// zero flash wait states.
func NewSim() *Sim {
	s := &Sim{}
	s.regs[RegGCCR] = fSW.place(swHSI) | fHSIEN.place(1)
	s.regs[RegCFCR] = fWAIT.place(waitZero)
	return s
}

func (s *Sim) Load(r Reg) uint32 {
	if r >= numRegs {
		return 0
	}
	if r == RegGCSR {
		s.updateLock()
	}
	return s.regs[r]
}

func (s *Sim) Store(r Reg, v uint32) {
	if r >= numRegs {
		return
	}
	s.Trace = append(s.Trace, Write{Reg: r, Old: s.regs[r], New: v})
	s.regs[r] = v
}

// Peek reads r without side effects and without tracing.
func (s *Sim) Peek(r Reg) uint32 {
	if r >= numRegs {
		return 0
	}
	return s.regs[r]
}

func (s *Sim) updateLock() {
	if s.NeverLock || fPLLEN.get(s.regs[RegGCCR]) == 0 {
		return
	}
	if s.polls < s.LockAfter {
		s.polls++
		return
	}
	s.regs[RegGCSR] |= fPLLRDY.mask()
}

// Field readers for inspecting the simulated state.

func (s *Sim) SW() uint32        { return fSW.get(s.regs[RegGCCR]) }
func (s *Sim) PLLEnabled() bool  { return fPLLEN.get(s.regs[RegGCCR]) != 0 }
func (s *Sim) PLLSrcHSE() bool   { return fPLLSrc.get(s.regs[RegGCFGR]) != 0 }
func (s *Sim) PFBD() uint32      { return fPFBD.get(s.regs[RegPLLCFGR]) }
func (s *Sim) POTD() uint32      { return fPOTD.get(s.regs[RegPLLCFGR]) }
func (s *Sim) AHBPRE() uint32    { return fAHBPRE.get(s.regs[RegAHBCFGR]) }
func (s *Sim) ADCDIV() uint32    { return fADCDIV.get(s.regs[RegAPBCFGR]) }
func (s *Sim) CkoutSrc() uint32  { return fCkoutSrc.get(s.regs[RegGCFGR]) }
func (s *Sim) FlashWait() uint32 { return fWAIT.get(s.regs[RegCFCR]) }
