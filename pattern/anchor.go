package pattern

// selectAnchor scans masks left-to-right tracking the current run of
// fully-specified (0xFF) bytes. On the first strictly-longer run it replaces
// the best-so-far; ties keep the first maximal run. If no byte is fully
// specified, the degenerate anchor is the single byte values[0] at offset 0
// — note this is not an actual constant byte (its mask is not 0xFF), so
// degenerate is returned true: callers must not treat this anchor as an
// exact-byte literal or fingerprint key, and must instead verify the
// pattern at every buffer position (spec §4.1, §8 Completeness).
func selectAnchor(values, masks []byte) (anchor []byte, offset int, degenerate bool) {
	bestStart, bestLen := 0, 0
	curStart, curLen := 0, 0

	closeRun := func() {
		if curLen > bestLen {
			bestStart, bestLen = curStart, curLen
		}
	}

	for i, m := range masks {
		if m == 0xFF {
			if curLen == 0 {
				curStart = i
			}
			curLen++
		} else {
			closeRun()
			curLen = 0
		}
	}
	closeRun()

	if bestLen == 0 {
		return []byte{values[0]}, 0, true
	}
	return values[bestStart : bestStart+bestLen], bestStart, false
}
