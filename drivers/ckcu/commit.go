package ckcu

import (
	"time"

	"ht32-hal-go/errcode"
	"ht32-hal-go/x/timex"
)

// Freeze resolves the configuration, programs it and returns the achieved
// clocks. It waits for PLL lock without bound.
//
// Targets the hardware cannot represent are programmer errors: Freeze panics
// with the precondition error before any register is written. An
// unreachable PLL target or a second Freeze returns an error.
func (c Configuration) Freeze() (Clocks, error) {
	return c.freeze(0)
}

// FreezeTimeout is Freeze with a bounded PLL lock wait. If the PLL has not
// locked within d it returns ErrPLLNoLock (errcode.PLLLockTimeout); CK_SYS
// has not been switched at that point, so the tree is still on its reset
// source and the call may be retried.
func (c Configuration) FreezeTimeout(d time.Duration) (Clocks, error) {
	if d <= 0 {
		d = time.Nanosecond
	}
	return c.freeze(d)
}

func (c Configuration) freeze(lockTimeout time.Duration) (Clocks, error) {
	if c.h == nil {
		return Clocks{}, errcode.New(errcode.InvalidParams, opInit, errNoHandle)
	}
	if c.h.frozen {
		return Clocks{}, errcode.New(errcode.AlreadyFrozen, opInit, ErrAlreadyFrozen)
	}
	p, err := c.Resolve()
	if err != nil {
		if IsPrecondition(err) {
			panic(err)
		}
		return Clocks{}, err
	}
	if err := c.h.commit(p, lockTimeout); err != nil {
		return Clocks{}, err
	}
	c.h.frozen = true
	return p.clocks(), nil
}

// commit writes p in the only safe order:
// PLL config → PLL lock → flash wait state → CK_SYS switch → AHB prescaler →
// ADC prescaler → CKOUT.
func (h *handle) commit(p Plan, lockTimeout time.Duration) error {
	if p.pll.ok {
		h.setBit(RegGCFGR, fPLLSrc, p.pllSrc)

		cfg := h.regs.Load(RegPLLCFGR) &^ (fPFBD.mask() | fPOTD.mask())
		h.regs.Store(RegPLLCFGR, cfg|fPFBD.place(p.pll.v.pfbd())|fPOTD.place(p.pll.v.potd()))

		h.setBit(RegGCCR, fPLLEN, true)

		if err := h.awaitPLL(lockTimeout); err != nil {
			return err
		}
	}

	if p.wait {
		h.modify(RegCFCR, fWAIT, waitOne)
	}

	h.modify(RegGCCR, fSW, p.source.sw())
	h.modify(RegAHBCFGR, fAHBPRE, p.hclkDiv.code)
	h.modify(RegAPBCFGR, fADCDIV, p.adcDiv.code)

	if p.ckout.ok {
		h.modify(RegGCFGR, fCkoutSrc, p.ckout.v.code())
	}
	return nil
}

// awaitPLL spins on GCSR.PLLRDY. A zero timeout waits forever.
func (h *handle) awaitPLL(timeout time.Duration) error {
	start := time.Now()
	for !h.pllReady() {
		if timex.Elapsed(start, timeout) {
			return errcode.New(errcode.PLLLockTimeout, opLock, ErrPLLNoLock)
		}
	}
	return nil
}
