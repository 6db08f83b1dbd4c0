//go:build amd64

package fingerprint

import "golang.org/x/sys/cpu"

// vectorWidth mirrors the teacher's AVX2 dispatch: a 32-byte lane width when
// the running CPU has AVX2, matching original_source's scan_avx2 exactly.
// hasAVX2 is read once by Supported below; it never changes after process
// start.
var hasAVX2 = cpu.X86.HasAVX2

// Supported reports whether this architecture build offers a vectorized
// scan path at all. On amd64 that depends on the detected CPU, not just the
// build target, since AVX2 is a runtime feature, not an architecture given.
func Supported() bool {
	return hasAVX2
}

// Width returns the SIMD-style lane width used by compareEqual. Callers
// must not invoke compareEqual unless Supported reports true.
func Width() int {
	return 32
}

// compareEqual compares each of the Width() bytes of block against b,
// returning a bitmask with bit i set when block[i] == b. This is the pure-Go
// stand-in for _mm256_cmpeq_epi8 + _mm256_movemask_epi8: see DESIGN.md for
// why no hand-written assembly backs this instead.
func compareEqual(block []byte, b byte) uint32 {
	var mask uint32
	for i, v := range block {
		if v == b {
			mask |= 1 << uint(i)
		}
	}
	return mask
}
