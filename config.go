package sigscan

import "fmt"

// Config controls engine construction behavior: how patterns are bucketed
// for the fingerprint scanner and whether the CPU-feature dispatch in New
// is overridden.
//
// Example:
//
//	config := sigscan.DefaultConfig()
//	config.ForceAutomaton = true // compare engines for equivalence testing
//	s, err := sigscan.NewWithConfig(patterns, config)
type Config struct {
	// FingerprintLen bounds how many leading anchor bytes the fingerprint
	// scanner uses as a bucket key: 1, 2, or 3. Shorter keys merge more
	// patterns into fewer, larger buckets (less selective, fewer vector
	// passes); longer keys do the opposite.
	// Default: 3
	FingerprintLen int

	// MaxPatternsPerBucket is the number of patterns sharing one fingerprint
	// bucket above which the automaton fallback is preferred over the
	// fingerprint scanner regardless of detected CPU features, since a
	// bucket this large has already lost most of its prefilter selectivity.
	// Default: 64
	MaxPatternsPerBucket int

	// ForceAutomaton, when true, always selects the automaton engine even
	// when the CPU supports a vectorized fingerprint scan. Intended for
	// testing engine equivalence (the two engines must emit the same match
	// multiset) without needing two physical CPUs.
	// Default: false
	ForceAutomaton bool
}

// DefaultConfig returns a Config with sensible defaults: a full 3-byte
// fingerprint key, automaton fallback only once a bucket genuinely loses its
// selectivity, and no engine override.
func DefaultConfig() Config {
	return Config{
		FingerprintLen:       3,
		MaxPatternsPerBucket: 64,
		ForceAutomaton:       false,
	}
}

// Validate checks that c's fields are within their documented ranges.
func (c Config) Validate() error {
	if c.FingerprintLen < 1 || c.FingerprintLen > 3 {
		return fmt.Errorf("sigscan: FingerprintLen must be 1-3, got %d", c.FingerprintLen)
	}
	if c.MaxPatternsPerBucket < 1 {
		return fmt.Errorf("sigscan: MaxPatternsPerBucket must be >= 1, got %d", c.MaxPatternsPerBucket)
	}
	return nil
}
