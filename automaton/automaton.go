// Package automaton implements a trie-with-failure-links Aho-Corasick-style
// multi-literal matcher used as the portable fallback prefilter (spec §4.3).
//
// Unlike a single-match engine, Automaton reports every overlapping
// occurrence of every distinct literal — including when one literal is a
// substring or suffix of another — because the automaton engine's
// completeness invariant (spec §8 property 2) depends on it.
//
// The trie/failure-link construction below is this package's own; the
// retrieval pack's published multi-literal module exposes only a single
// leftmost match per call, which cannot express the overlapping semantics
// this automaton needs (see repository DESIGN.md).
package automaton

import "errors"

// ErrTooManyLiterals is returned by Build when the literal count would
// overflow the automaton's state-id space.
var ErrTooManyLiterals = errors.New("automaton: too many literals")

// BuildError wraps an automaton construction failure.
type BuildError struct {
	Message string
}

func (e *BuildError) Error() string {
	return "automaton build failed: " + e.Message
}

func (e *BuildError) Unwrap() error {
	return ErrTooManyLiterals
}

// node is one trie state.
type node struct {
	children map[byte]int32
	fail     int32
	// output holds the literal ids that end exactly at this state, found
	// either directly or via the failure-link chain flattened at build time.
	output []int32
}

// Automaton is an immutable multi-literal matcher built from a set of
// distinct byte-string literals.
//
// Thread-safety: Automaton is safe for concurrent use; all state is
// read-only after Build.
type Automaton struct {
	nodes    []node
	litLens  []int // literal id -> its byte length
}

// Builder accumulates literals (with deduplication) before Build constructs
// the trie and failure links.
type Builder struct {
	literals [][]byte
	index    map[string]int32
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{index: make(map[string]int32)}
}

// AddLiteral registers lit, returning its literal id. Adding the same byte
// sequence twice returns the same id both times (deduplication, per spec
// §4.3's "the automaton stores each distinct anchor once").
func (b *Builder) AddLiteral(lit []byte) int32 {
	key := string(lit)
	if id, ok := b.index[key]; ok {
		return id
	}
	id := int32(len(b.literals))
	cp := make([]byte, len(lit))
	copy(cp, lit)
	b.literals = append(b.literals, cp)
	b.index[key] = id
	return id
}

// Build constructs the automaton's trie and failure links (the classic
// Aho-Corasick goto/fail/output construction; BFS failure-link assignment
// followed by output-set flattening so each state's total output set,
// including everything reachable via its failure chain, is precomputed).
func (b *Builder) Build() (*Automaton, error) {
	if len(b.literals) > (1<<31)-1 {
		return nil, &BuildError{Message: "literal count exceeds state id space"}
	}

	a := &Automaton{
		nodes:   []node{{children: make(map[byte]int32)}},
		litLens: make([]int, len(b.literals)),
	}

	const root int32 = 0

	// Trie insertion.
	for id, lit := range b.literals {
		a.litLens[id] = len(lit)
		cur := root
		for _, ch := range lit {
			next, ok := a.nodes[cur].children[ch]
			if !ok {
				a.nodes = append(a.nodes, node{children: make(map[byte]int32)})
				next = int32(len(a.nodes) - 1)
				a.nodes[cur].children[ch] = next
			}
			cur = next
		}
		a.nodes[cur].output = append(a.nodes[cur].output, int32(id))
	}

	// BFS to assign failure links and flatten outputs along them.
	queue := make([]int32, 0, len(a.nodes))
	for ch, child := range a.nodes[root].children {
		a.nodes[child].fail = root
		queue = append(queue, child)
		_ = ch
	}

	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		for ch, v := range a.nodes[u].children {
			queue = append(queue, v)

			f := a.nodes[u].fail
			for {
				if next, ok := a.nodes[f].children[ch]; ok && next != v {
					a.nodes[v].fail = next
					break
				}
				if f == root {
					a.nodes[v].fail = root
					break
				}
				f = a.nodes[f].fail
			}
			a.nodes[v].output = append(a.nodes[v].output, a.nodes[a.nodes[v].fail].output...)
		}
	}

	return a, nil
}

// step follows a single byte transition from state, using failure links to
// find the longest proper suffix that has a matching transition (the
// standard Aho-Corasick goto function built lazily over the trie's explicit
// children plus fail links, rather than a precomputed dense table).
func (a *Automaton) step(state int32, b byte) int32 {
	for {
		if next, ok := a.nodes[state].children[b]; ok {
			return next
		}
		if state == 0 {
			return 0
		}
		state = a.nodes[state].fail
	}
}
