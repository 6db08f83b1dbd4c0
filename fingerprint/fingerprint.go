// Package fingerprint implements the SIMD-style bucketed prefilter: patterns
// are grouped by the first 1-3 bytes of their anchor (their "fingerprint"),
// and the scan loop advances through the buffer Width() bytes at a time,
// comparing every lane against each bucket's fingerprint bytes in parallel
// and AND-ing the per-byte comparison masks together.
//
// This is a pure-Go port of original_source's Teddy engine
// (broadcast-compare-AND over up to three fingerprint bytes), not the
// teacher's own nibble-bucketed Teddy prefilter; see DESIGN.md for why the
// two are different algorithms and why this package is grounded on the
// former.
package fingerprint

import (
	"github.com/coregx/sigscan/internal/bitset"
	"github.com/coregx/sigscan/pattern"
	"github.com/coregx/sigscan/verify"
)

// tailBytes is how many bytes beyond one vector width the vectorized loop
// reads: the second and third fingerprint bytes are compared against blocks
// loaded at offsets i+1 and i+2.
const tailBytes = 2

// Bucket groups every pattern whose anchor shares the same leading
// fingerprint bytes.
type Bucket struct {
	Fingerprint []byte // 1-3 bytes
	Patterns    []pattern.Info
}

// Scanner is the fingerprint-bucketed prefilter plus verifier for one
// compiled pattern set.
type Scanner struct {
	buckets []Bucket
	// degenerate holds every pattern whose anchor is degenerate (spec
	// §4.1): these provide the bucket prefilter no selectivity, so they are
	// excluded from bucketing entirely and verified at every position
	// instead, by Scan via verify.AllPositions.
	degenerate []pattern.Info
	arenas     verify.Arenas
}

// MaxBucketSize reports the size of the largest bucket Build(c,
// fingerprintLen) would produce, without constructing the scanner. Callers
// use this to decide whether fingerprint bucketing has retained enough
// selectivity to be worth a vectorized scan before committing to it.
func MaxBucketSize(c *pattern.Compiler, fingerprintLen int) int {
	fingerprintLen = clampFingerprintLen(fingerprintLen)

	counts := make(map[string]int, len(c.Patterns))
	max := 0
	for _, info := range c.Patterns {
		if info.Degenerate {
			continue
		}
		key := fingerprintKey(c.Anchors[info.ID], fingerprintLen)
		counts[key]++
		if counts[key] > max {
			max = counts[key]
		}
	}
	return max
}

func clampFingerprintLen(n int) int {
	if n < 1 {
		return 1
	}
	if n > 3 {
		return 3
	}
	return n
}

func fingerprintKey(anchor []byte, fingerprintLen int) string {
	keyLen := fingerprintLen
	if len(anchor) < keyLen {
		keyLen = len(anchor)
	}
	return string(anchor[:keyLen])
}

// Build groups compiler's patterns into fingerprint buckets keyed by the
// first min(fingerprintLen, anchorLen) bytes of each pattern's anchor,
// matching original_source's key_len computation exactly (fingerprintLen is
// this module's own tunable; the original hardcodes 3).
//
// Patterns with a degenerate anchor (spec §4.1: no fully-specified byte
// anywhere) are excluded from bucketing — their anchor is not an actual
// constant byte, so treating it as a fingerprint key would wrongly reject
// positions that still satisfy the pattern's mask/value test (spec §8
// Completeness). They are instead verified at every position by Scan.
func Build(c *pattern.Compiler, fingerprintLen int) *Scanner {
	fingerprintLen = clampFingerprintLen(fingerprintLen)

	index := make(map[string]int)
	var buckets []Bucket
	var degenerate []pattern.Info

	for _, info := range c.Patterns {
		if info.Degenerate {
			degenerate = append(degenerate, info)
			continue
		}

		key := fingerprintKey(c.Anchors[info.ID], fingerprintLen)

		bi, ok := index[key]
		if !ok {
			bi = len(buckets)
			index[key] = bi
			buckets = append(buckets, Bucket{Fingerprint: []byte(key)})
		}
		buckets[bi].Patterns = append(buckets[bi].Patterns, info)
	}

	return &Scanner{
		buckets:    buckets,
		degenerate: degenerate,
		arenas:     verify.Arenas{Values: c.Values, Masks: c.Masks},
	}
}

// Scan reports every verified pattern occurrence in data to sink, returning
// as soon as sink returns verify.Stop — including mid vector-step, without
// draining the remainder of the current candidate mask, matching
// original_source's stop behavior exactly.
func (s *Scanner) Scan(data []byte, sink verify.Sink) verify.Action {
	if verify.AllPositions(data, s.degenerate, s.arenas, sink) == verify.Stop {
		return verify.Stop
	}

	if !Supported() {
		return s.scanSlow(data, 0, sink)
	}

	v := Width()
	limit := v + tailBytes
	if len(data) < limit {
		return s.scanSlow(data, 0, sink)
	}

	safeLimit := len(data) - limit
	alignedLimit := safeLimit &^ (v - 1)

	for _, bucket := range s.buckets {
		if action := s.scanBucketVectorized(data, bucket, v, alignedLimit, sink); action == verify.Stop {
			return verify.Stop
		}
	}

	return s.scanSlow(data, alignedLimit+v, sink)
}

// scanBucketVectorized runs the compare-AND loop for one bucket across the
// vectorized region [0, alignedLimit], mirroring original_source's
// scan_avx2/scan_neon inner loop (one bucket at a time, not interleaved
// across buckets, so a smaller bucket can't shadow a later one's matches at
// the same fingerprint byte offset).
func (s *Scanner) scanBucketVectorized(data []byte, bucket Bucket, v, alignedLimit int, sink verify.Sink) verify.Action {
	fp := bucket.Fingerprint

	for i := 0; i <= alignedLimit; i += v {
		mask := compareEqual(data[i:i+v], fp[0])
		if len(fp) >= 2 {
			mask &= compareEqual(data[i+1:i+1+v], fp[1])
		}
		if len(fp) >= 3 {
			mask &= compareEqual(data[i+2:i+2+v], fp[2])
		}
		if mask == 0 {
			continue
		}

		for mask != 0 {
			var bit int
			bit, mask = bitset.NextSetBit(mask)
			anchorPos := i + bit
			if verify.At(data, anchorPos, bucket.Patterns, s.arenas, sink) == verify.Stop {
				return verify.Stop
			}
		}
	}
	return verify.Continue
}

// scanSlow is the byte-at-a-time fallback used below the vectorized
// threshold and for the unvectorized tail, mirroring original_source's
// scan_slow: every bucket is checked at every offset by direct fingerprint
// comparison, with no SIMD involved.
func (s *Scanner) scanSlow(data []byte, startOffset int, sink verify.Sink) verify.Action {
	if startOffset >= len(data) {
		return verify.Continue
	}

	for i := startOffset; i < len(data); i++ {
		for _, bucket := range s.buckets {
			fp := bucket.Fingerprint
			if i+len(fp) > len(data) {
				continue
			}
			match := true
			for k, b := range fp {
				if data[i+k] != b {
					match = false
					break
				}
			}
			if !match {
				continue
			}
			if verify.At(data, i, bucket.Patterns, s.arenas, sink) == verify.Stop {
				return verify.Stop
			}
		}
	}
	return verify.Continue
}
