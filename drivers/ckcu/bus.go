package ckcu

// Registers is raw access to the CKCU and FMC register blocks. The real chip
// maps it onto memory (see mmio_ht32.go); Sim keeps it in RAM.
type Registers interface {
	Load(r Reg) uint32
	Store(r Reg, v uint32)
}

// modify is the read-modify-write pattern: clear the field, then place v.
func (h *handle) modify(r Reg, f field, v uint32) {
	cur := h.regs.Load(r)
	h.regs.Store(r, (cur&^f.mask())|f.place(v))
}

func (h *handle) setBit(r Reg, f field, on bool) {
	v := uint32(0)
	if on {
		v = 1
	}
	h.modify(r, f, v)
}

func (h *handle) pllReady() bool {
	return fPLLRDY.get(h.regs.Load(RegGCSR)) != 0
}
