//go:build tinygo && ht32f523xx

package main

import (
	"time"

	"ht32-hal-go/drivers/ckcu"
)

const (
	board     = "esk32-30501"
	bootDelay = 2 * time.Second
)

func takeClockRegisters() (ckcu.Registers, bool) {
	return ckcu.TakeMMIO()
}
