package ckcu

import (
	"errors"

	"ht32-hal-go/errcode"
)

var (
	// Sentinel errors (TinyGo-safe; no fmt)
	ErrSysTooFast    = errors.New("CK_SYS target above 48 MHz")
	ErrUSBTooFast    = errors.New("CK_USB target not below 48 MHz")
	ErrZeroFrequency = errors.New("frequency must be non-zero")
	ErrNoPLLDivider  = errors.New("no PLL divider pair reaches the target")
	ErrPLLNoLock     = errors.New("PLL did not lock")
	ErrAlreadyFrozen = errors.New("clock tree already frozen")
	ErrBadCkout      = errors.New("CKOUT selector out of range")

	errNoHandle = errors.New("configuration not obtained from Constrain")
)

// Resolution stages, used as errcode.E.Op.
const (
	opHSE   = "ckcu.hse"
	opLSE   = "ckcu.lse"
	opSys   = "ckcu.sys"
	opUSB   = "ckcu.usb"
	opHclk  = "ckcu.hclk"
	opADC   = "ckcu.adc"
	opCkout = "ckcu.ckout"
	opPLL   = "ckcu.pll"
	opLock  = "ckcu.lock"
	opInit  = "ckcu.freeze"
)

func precondition(op string, cause error) error {
	return errcode.New(errcode.InvalidParams, op, cause)
}

// IsPrecondition reports whether err is a target the hardware cannot
// represent at all. Freeze panics with these.
func IsPrecondition(err error) bool {
	return errcode.Of(err) == errcode.InvalidParams
}
