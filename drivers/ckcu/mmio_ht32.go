//go:build tinygo && ht32f523xx

package ckcu

import (
	"runtime/volatile"
	"sync/atomic"
	"unsafe"
)

// MMIO is the memory-mapped CKCU/FMC register file of the running chip.
type MMIO struct{}

var mmioTaken atomic.Bool

// TakeMMIO hands out the clock registers once per program; later calls get
// ok == false.
func TakeMMIO() (MMIO, bool) {
	return MMIO{}, mmioTaken.CompareAndSwap(false, true)
}

func reg32(r Reg) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(r.Addr()))
}

func (MMIO) Load(r Reg) uint32 { return reg32(r).Get() }

func (MMIO) Store(r Reg, v uint32) { reg32(r).Set(v) }
