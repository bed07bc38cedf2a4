//go:build !tinygo || !ht32f523xx

package main

import (
	"time"

	"ht32-hal-go/drivers/ckcu"
)

// Host builds run the same bring-up against the simulated register file.
const (
	board     = "esk32-30501"
	bootDelay = 0 * time.Second
)

func takeClockRegisters() (ckcu.Registers, bool) {
	return ckcu.NewSim(), true
}
