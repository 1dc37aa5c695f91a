package exerciser

// Fill sets every byte of buf to v.
func Fill(buf []byte, v byte) {
	for i := range buf {
		buf[i] = v
	}
}

// Complement returns the bitwise complement of a single byte value. Filling
// with Complement(v) after v toggles every bit of every byte.
func Complement(v byte) byte {
	return ^v
}

// Ramp fills buf with its own offsets modulo 256.
func Ramp(buf []byte) {
	for i := range buf {
		buf[i] = byte(i % 256)
	}
}

// Compare counts the offsets at which got differs from want. Both buffers
// must have the same length. report, when non-nil, is called for every
// differing offset.
func Compare(want, got []byte, report func(offset int, want, got byte)) int {
	if len(want) != len(got) {
		panic("compared buffers must have the same size")
	}

	n := 0

	for i := range want {
		if want[i] == got[i] {
			continue
		}

		n++

		if report != nil {
			report(i, want[i], got[i])
		}
	}

	return n
}
