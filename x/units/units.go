// Package units provides the frequency type shared by the clock tree and the
// peripherals that derive their own dividers from it.
package units

import (
	"errors"

	"ht32-hal-go/x/conv"
)

// Hertz is a frequency in Hz. Comparison and ordering are on the raw count.
type Hertz uint32

const (
	Hz  Hertz = 1
	KHz Hertz = 1000 * Hz
	MHz Hertz = 1000 * KHz
)

// Bps is a bit rate in bits per second, used by baud-rate style consumers.
type Bps uint32

var ErrBadFrequency = errors.New("malformed frequency")

func Hertz32(n uint32) Hertz     { return Hertz(n) }
func KiloHertz(n uint32) Hertz   { return Hertz(n) * KHz }
func MegaHertz(n uint32) Hertz   { return Hertz(n) * MHz }
func BitsPerSecond(n uint32) Bps { return Bps(n) }

// Hertz reports the bit rate as the equivalent bit-clock frequency.
func (b Bps) Hertz() Hertz { return Hertz(b) }

func (f Hertz) Uint32() uint32 { return uint32(f) }

// String renders f with the largest unit that divides it exactly,
// e.g. "32MHz", "32kHz", "12345Hz".
func (f Hertz) String() string {
	var buf [16]byte
	v, unit := uint64(f), "Hz"
	switch {
	case f != 0 && f%MHz == 0:
		v, unit = uint64(f/MHz), "MHz"
	case f != 0 && f%KHz == 0:
		v, unit = uint64(f/KHz), "kHz"
	}
	return string(conv.Utoa(buf[:], v)) + unit
}

// Parse accepts a decimal count with an optional Hz, kHz or MHz suffix
// (case-insensitive). A bare number is taken as Hz.
func Parse(s string) (Hertz, error) {
	i := 0
	for i < len(s) && s[i] == ' ' {
		i++
	}
	start := i
	var n uint64
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + uint64(s[i]-'0')
		if n > 1<<32-1 {
			return 0, ErrBadFrequency
		}
		i++
	}
	if i == start {
		return 0, ErrBadFrequency
	}
	for i < len(s) && s[i] == ' ' {
		i++
	}
	mul := uint64(1)
	switch lower(s[i:]) {
	case "", "hz":
	case "k", "khz":
		mul = 1000
	case "m", "mhz":
		mul = 1000_000
	default:
		return 0, ErrBadFrequency
	}
	n *= mul
	if n > 1<<32-1 {
		return 0, ErrBadFrequency
	}
	return Hertz(n), nil
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
