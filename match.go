package sigscan

// Match is a single verified occurrence of a pattern in a scanned buffer.
//
// Start and End form a half-open range: data[Start:End] is the matched
// region, and End-Start always equals the compiled length of the pattern
// identified by PatternID.
type Match struct {
	// PatternID identifies which compiled pattern matched: its zero-based
	// position in the slice passed to New.
	PatternID int

	// Start and End bound the half-open matched range [Start, End) within
	// the scanned buffer.
	Start int
	End   int
}

// Action is the continuation decision a Sink returns after observing a
// Match.
type Action int

const (
	// Continue resumes scanning for further matches.
	Continue Action = iota

	// Stop requests immediate termination of the current Scan call. The
	// engine returns as soon as it observes Stop, without guaranteeing that
	// every candidate at the current vector step has been verified first.
	Stop
)

// Sink receives verified matches during a Scan call and decides whether
// scanning continues.
//
// A Sink is borrowed for the duration of one Scan call: it must not retain
// the Match beyond the call in which it received it, and it must not be
// invoked after Scan returns.
type Sink func(Match) Action
