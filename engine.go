package sigscan

import (
	"github.com/coregx/sigscan/automaton"
	"github.com/coregx/sigscan/fingerprint"
	"github.com/coregx/sigscan/pattern"
	"github.com/coregx/sigscan/verify"
)

// fingerprintEngine adapts *fingerprint.Scanner to engineKind.
type fingerprintEngine struct {
	s *fingerprint.Scanner
}

func (e fingerprintEngine) scan(data []byte, sink verify.Sink) verify.Action {
	return e.s.Scan(data, sink)
}

// automatonEngine adapts the automaton fallback (the literal automaton plus
// its literal-id -> candidate-pattern map) to engineKind.
type automatonEngine struct {
	a          *automaton.Automaton
	candidates [][]pattern.Info // indexed by literal id
	// degenerate holds every pattern whose anchor is degenerate (spec
	// §4.1): registering such an anchor as an automaton literal would
	// wrongly require an exact-byte match, so these are excluded from the
	// automaton entirely and verified at every position instead (see scan).
	degenerate []pattern.Info
	arenas     verify.Arenas
}

// buildAutomatonEngine constructs the automaton fallback engine: one
// deduplicated literal per distinct anchor, with a side map from literal id
// back to every PatternInfo whose anchor equals that literal, per spec
// §4.3. Patterns with a degenerate anchor are kept out of the automaton
// (see automatonEngine.degenerate).
func buildAutomatonEngine(c *pattern.Compiler) (*automatonEngine, error) {
	b := automaton.NewBuilder()

	byLiteral := make(map[int32][]pattern.Info, len(c.Patterns))
	maxID := int32(-1)
	var degenerate []pattern.Info

	for _, info := range c.Patterns {
		if info.Degenerate {
			degenerate = append(degenerate, info)
			continue
		}

		anchor := c.Anchors[info.ID]
		id := b.AddLiteral(anchor)
		byLiteral[id] = append(byLiteral[id], info)
		if id > maxID {
			maxID = id
		}
	}

	a, err := b.Build()
	if err != nil {
		return nil, err
	}

	candidates := make([][]pattern.Info, maxID+1)
	for id, infos := range byLiteral {
		candidates[id] = infos
	}

	return &automatonEngine{
		a:          a,
		candidates: candidates,
		degenerate: degenerate,
		arenas:     verify.Arenas{Values: c.Values, Masks: c.Masks},
	}, nil
}

func (e *automatonEngine) scan(data []byte, sink verify.Sink) verify.Action {
	if verify.AllPositions(data, e.degenerate, e.arenas, sink) == verify.Stop {
		return verify.Stop
	}

	stopped := false
	e.a.Scan(data, func(lm automaton.LiteralMatch) automaton.Action {
		anchorLen := e.a.Len(lm.LiteralID)
		anchorPos := lm.End - anchorLen
		candidates := e.candidates[lm.LiteralID]

		if verify.At(data, anchorPos, candidates, e.arenas, sink) == verify.Stop {
			stopped = true
			return automaton.Stop
		}
		return automaton.Continue
	})

	if stopped {
		return verify.Stop
	}
	return verify.Continue
}
