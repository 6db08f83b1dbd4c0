// Package verify implements the byte-and-mask verification step shared by
// both scanning engines: given a candidate anchor position, it reconstructs
// each candidate pattern's absolute start, bounds-checks it against the
// buffer, and checks every byte against its mask and required value.
package verify

import "github.com/coregx/sigscan/pattern"

// Match is a verified occurrence of a pattern in the scanned buffer.
type Match struct {
	PatternID int
	Start     int
	End       int
}

// Action is the sink's continuation decision.
type Action int

const (
	// Continue resumes scanning.
	Continue Action = iota
	// Stop requests immediate termination of the scan.
	Stop
)

// Sink receives verified matches and decides whether scanning continues.
type Sink func(Match) Action

// Arenas is the read-only view a verifier needs of the compiled pattern
// arenas it indexes into.
type Arenas struct {
	Values []byte
	Masks  []byte
}

// At verifies every pattern in candidates against data at the anchor
// position anchorPos, emitting a Match to sink for each one whose full
// byte-and-mask comparison succeeds.
//
// It does not deduplicate: distinct patterns matching at the same start
// position each produce their own Match. It returns Stop as soon as sink
// returns Stop for any emitted match, without checking further candidates
// at this anchor position; otherwise it returns Continue.
func At(data []byte, anchorPos int, candidates []pattern.Info, arenas Arenas, sink Sink) Action {
	for _, pat := range candidates {
		if anchorPos < pat.AnchorOffset {
			continue
		}
		start := anchorPos - pat.AnchorOffset
		end := start + pat.Len
		if end > len(data) {
			continue
		}

		values := arenas.Values[pat.DataOffset : pat.DataOffset+pat.Len]
		masks := arenas.Masks[pat.DataOffset : pat.DataOffset+pat.Len]

		matched := true
		for k := 0; k < pat.Len; k++ {
			if data[start+k]&masks[k] != values[k] {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}

		if sink(Match{PatternID: pat.ID, Start: start, End: end}) == Stop {
			return Stop
		}
	}
	return Continue
}

// AllPositions verifies candidates at every position in data, in ascending
// order, returning as soon as sink returns Stop.
//
// This is the unconditional fallback for patterns whose anchor is
// degenerate (no fully-specified byte anywhere, spec §4.1): since such an
// anchor provides the prefilter no selectivity at all, the only way to
// satisfy the Completeness invariant (spec §8) is to run the verifier at
// every buffer position rather than gating it behind an exact-byte
// literal/fingerprint match.
func AllPositions(data []byte, candidates []pattern.Info, arenas Arenas, sink Sink) Action {
	if len(candidates) == 0 {
		return Continue
	}
	for i := range data {
		if At(data, i, candidates, arenas, sink) == Stop {
			return Stop
		}
	}
	return Continue
}
