package mathx

// DivOrZero returns a/b, or 0 when b is zero. Firmware maths keeps to
// unsigned operands.
func DivOrZero[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](a, b T) T {
	if b == 0 {
		return 0
	}
	return a / b
}
