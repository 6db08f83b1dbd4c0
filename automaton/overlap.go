package automaton

// LiteralMatch is one occurrence of a literal found while scanning, reported
// by its end-exclusive position so callers can reconstruct the literal's
// start as End-Len.
type LiteralMatch struct {
	LiteralID int32
	End       int
}

// Action is the sink's continuation decision for overlapping scans.
type Action int

const (
	// Continue resumes scanning.
	Continue Action = iota
	// Stop requests immediate termination of the scan.
	Stop
)

// LiteralSink receives every literal occurrence found during a scan.
type LiteralSink func(LiteralMatch) Action

// Len returns the byte length of the literal identified by id.
func (a *Automaton) Len(id int32) int {
	return a.litLens[id]
}

// Scan walks data once, reporting every occurrence of every registered
// literal to sink — including overlapping occurrences and occurrences where
// one literal is a suffix of another, since each trie state's output set was
// flattened across the full failure-link chain at Build time. This mirrors
// the overlapping iteration mode spec §4.3 requires of the automaton
// fallback: nothing is suppressed in favor of a single leftmost or
// non-overlapping match.
func (a *Automaton) Scan(data []byte, sink LiteralSink) Action {
	state := int32(0)
	for i, b := range data {
		state = a.step(state, b)
		for _, id := range a.nodes[state].output {
			if sink(LiteralMatch{LiteralID: id, End: i + 1}) == Stop {
				return Stop
			}
		}
	}
	return Continue
}
