package conv

const hexDigits = "0123456789abcdef"

// Bin renders the low width bits of v as "0b…", most significant first.
// width is clamped to 32.
func Bin(v uint32, width int) string {
	if width <= 0 {
		width = 1
	}
	if width > 32 {
		width = 32
	}
	var buf [34]byte
	buf[0], buf[1] = '0', 'b'
	for i := 0; i < width; i++ {
		if v&(1<<uint(width-1-i)) != 0 {
			buf[2+i] = '1'
		} else {
			buf[2+i] = '0'
		}
	}
	return string(buf[:2+width])
}

// Hex32 renders v as a fixed-width "0x%08x" string.
func Hex32(v uint32) string {
	var buf [10]byte
	buf[0], buf[1] = '0', 'x'
	for i := 9; i >= 2; i-- {
		buf[i] = hexDigits[v&0xF]
		v >>= 4
	}
	return string(buf[:])
}
