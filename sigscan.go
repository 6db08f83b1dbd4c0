// Package sigscan implements a high-throughput multi-pattern binary
// signature scanner.
//
// Given a set of compiled hexadecimal patterns with full-byte ("??") and
// half-byte ("4?", "?4") wildcards, sigscan locates every occurrence of
// every pattern in an input buffer and reports the pattern id and matched
// byte range to a caller-supplied Sink.
//
// Two interchangeable prefilter engines do the heavy lifting: a SIMD-style
// fingerprint scanner (bucketed broadcast/compare/AND, "Teddy"-style) on
// architectures with a vector path, and a portable Aho-Corasick-style
// multi-literal automaton everywhere else. Engine choice happens once, at
// construction, based on detected CPU capability; the scan path itself is
// allocation-free and performs no I/O.
//
// Basic usage:
//
//	s, err := sigscan.New([]string{"48 89 5C 24 08", "E8 ?? ?? ?? ??"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s.Scan(image, func(m sigscan.Match) sigscan.Action {
//	    fmt.Printf("pattern %d at [%d, %d)\n", m.PatternID, m.Start, m.End)
//	    return sigscan.Continue
//	})
package sigscan

import (
	"github.com/coregx/sigscan/automaton"
	"github.com/coregx/sigscan/fingerprint"
	"github.com/coregx/sigscan/pattern"
	"github.com/coregx/sigscan/verify"
)

// Re-exported sentinel errors so callers need not import the pattern
// package directly to check for them with errors.Is.
var (
	// ErrMalformedPattern indicates a pattern token failed the grammar.
	ErrMalformedPattern = pattern.ErrMalformedPattern

	// ErrEmptyPattern indicates a pattern string had zero tokens.
	ErrEmptyPattern = pattern.ErrEmptyPattern

	// ErrTooManyLiterals indicates the automaton fallback rejected the
	// anchor set because it exceeded the automaton's internal limits.
	ErrTooManyLiterals = automaton.ErrTooManyLiterals
)

// engineKind is the unexported interface implemented by exactly two
// prefilter engines in this package (fingerprintEngine, automatonEngine).
// NewWithConfig picks one at construction; Scan calls it through this
// interface's scan method.
type engineKind interface {
	scan(data []byte, sink verify.Sink) verify.Action
}

// Scanner is an immutable, compiled multi-pattern scanner.
//
// A Scanner is safe for concurrent use: all state is written once during
// New/NewWithConfig and is read-only during Scan.
type Scanner struct {
	engine engineKind
	// usedFingerprint records which engine kind construction selected, for
	// diagnostics and for tests exercising the engine-equivalence property.
	usedFingerprint bool
}

// New compiles patterns and constructs a Scanner using default
// configuration and CPU-feature-driven engine dispatch.
//
// Pattern ids are assigned by position in patterns, starting at 0. Returns
// ErrMalformedPattern or ErrEmptyPattern (wrapped in a *pattern.CompileError)
// if any pattern string fails the grammar.
func New(patterns []string) (*Scanner, error) {
	return NewWithConfig(patterns, DefaultConfig())
}

// NewWithConfig compiles patterns with custom configuration.
//
// Example:
//
//	config := sigscan.DefaultConfig()
//	config.ForceAutomaton = true
//	s, err := sigscan.NewWithConfig(patterns, config)
func NewWithConfig(patterns []string, config Config) (*Scanner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	compiler, err := pattern.Compile(patterns)
	if err != nil {
		return nil, err
	}

	useFingerprint := !config.ForceAutomaton && fingerprint.Supported() &&
		fingerprint.MaxBucketSize(compiler, config.FingerprintLen) <= config.MaxPatternsPerBucket

	if useFingerprint {
		return &Scanner{
			engine:          fingerprintEngine{s: fingerprint.Build(compiler, config.FingerprintLen)},
			usedFingerprint: true,
		}, nil
	}

	eng, err := buildAutomatonEngine(compiler)
	if err != nil {
		return nil, err
	}
	return &Scanner{engine: eng}, nil
}

// Scan reports every verified occurrence of every compiled pattern in data
// to sink, in the selected engine's own iteration order (matches are not
// reported in ascending Start order across the whole buffer), returning as
// soon as sink returns Stop.
//
// Scan performs no allocation and no I/O; it is safe to call concurrently
// on the same Scanner from multiple goroutines as long as each call uses
// its own sink.
func (s *Scanner) Scan(data []byte, sink Sink) {
	s.engine.scan(data, func(m verify.Match) verify.Action {
		if sink(Match{PatternID: m.PatternID, Start: m.Start, End: m.End}) == Stop {
			return verify.Stop
		}
		return verify.Continue
	})
}
