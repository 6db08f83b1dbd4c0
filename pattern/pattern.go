// Package pattern compiles the textual hex-with-wildcards pattern grammar
// into the byte/mask arrays the fingerprint and automaton scanners search
// against.
//
// Grammar (whitespace-separated tokens):
//
//	pattern := token ( WS+ token )*
//	token   := HEX HEX | "??" | HEX "?" | "?" HEX
//	HEX     := [0-9A-Fa-f]
//
// A fully-specified byte ("48") compiles to mask 0xFF. A full wildcard
// ("??") compiles to mask 0x00. A high-nibble-only token ("4?") compiles to
// value X<<4, mask 0xF0. A low-nibble-only token ("?4") compiles to value X,
// mask 0x0F. Anything else, including a lone "?", is MalformedPattern.
package pattern

import "fmt"

// Info is the per-pattern metadata record: where the pattern lives in the
// shared arenas, and where its anchor starts within it.
//
// Compiled patterns are immutable after construction: Values and Masks
// below index into two process-global concatenated arenas owned by the
// Compiler that produced them.
type Info struct {
	// ID is the caller-visible identifier: the pattern's zero-based position
	// in the input iteration order.
	ID int

	// DataOffset and Len locate this pattern's bytes within the arenas:
	// [DataOffset, DataOffset+Len).
	DataOffset int
	Len        int

	// AnchorOffset is the byte offset of the anchor's first byte within the
	// pattern. 0 <= AnchorOffset <= Len-AnchorLen.
	AnchorOffset int

	// Degenerate is true when the pattern has no fully-specified byte
	// anywhere, so its anchor (values[0] at offset 0) is not an actual
	// constant byte and provides the prefilter no selectivity at all (spec
	// §4.1). Scanners must not use a degenerate anchor as an exact-byte
	// literal or fingerprint key; they must instead verify this pattern at
	// every buffer position.
	Degenerate bool
}

// Compiler owns the two concatenated arenas (Values, Masks) that every
// compiled Info indexes into, plus the per-pattern metadata and anchors
// extracted during Compile.
//
// A Compiler's arenas are written once, during Compile, and read-only
// thereafter: the scan path never mutates them.
type Compiler struct {
	// Values and Masks are the concatenated arenas. Pattern i occupies
	// Values[Patterns[i].DataOffset : DataOffset+Len] and the same range of
	// Masks.
	Values []byte
	Masks  []byte

	// Patterns holds one Info per compiled pattern, in input order; Info.ID
	// is always its index into this slice.
	Patterns []Info

	// Anchors holds the anchor bytes for each pattern, parallel to Patterns.
	Anchors [][]byte
}

// Compile parses each pattern string in patterns and returns a Compiler
// holding the compiled arenas, metadata, and anchors.
//
// Returns MalformedPattern if any token fails the grammar, or EmptyPattern
// if any pattern string has zero tokens. Pattern ids are assigned by
// position in the iteration order, starting at 0.
func Compile(patterns []string) (*Compiler, error) {
	c := &Compiler{
		Values:   make([]byte, 0, 16*len(patterns)),
		Masks:    make([]byte, 0, 16*len(patterns)),
		Patterns: make([]Info, 0, len(patterns)),
		Anchors:  make([][]byte, 0, len(patterns)),
	}

	for id, raw := range patterns {
		values, masks, err := tokenize(raw)
		if err != nil {
			return nil, &CompileError{Pattern: raw, Err: err}
		}
		if len(values) == 0 {
			return nil, &CompileError{Pattern: raw, Err: ErrEmptyPattern}
		}

		anchorBytes, anchorOffset, degenerate := selectAnchor(values, masks)

		dataOffset := len(c.Values)
		c.Values = append(c.Values, values...)
		c.Masks = append(c.Masks, masks...)

		c.Patterns = append(c.Patterns, Info{
			ID:           id,
			DataOffset:   dataOffset,
			Len:          len(values),
			AnchorOffset: anchorOffset,
			Degenerate:   degenerate,
		})
		c.Anchors = append(c.Anchors, anchorBytes)
	}

	return c, nil
}

// tokenize parses a single pattern string's whitespace-separated tokens into
// parallel values/masks slices.
func tokenize(raw string) (values, masks []byte, err error) {
	start := 0
	n := len(raw)
	for start < n {
		for start < n && isSpace(raw[start]) {
			start++
		}
		if start >= n {
			break
		}
		end := start
		for end < n && !isSpace(raw[end]) {
			end++
		}
		tok := raw[start:end]
		v, m, err := parseToken(tok)
		if err != nil {
			return nil, nil, err
		}
		values = append(values, v)
		masks = append(masks, m)
		start = end
	}
	return values, masks, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// parseToken compiles one grammar token into its (value, mask) pair.
func parseToken(tok string) (value, mask byte, err error) {
	switch len(tok) {
	case 2:
		if tok == "??" {
			return 0x00, 0x00, nil
		}
		if tok[0] == '?' {
			lo, ok := hexDigit(tok[1])
			if !ok {
				return 0, 0, &MalformedToken{Token: tok}
			}
			return lo, 0x0F, nil
		}
		if tok[1] == '?' {
			hi, ok := hexDigit(tok[0])
			if !ok {
				return 0, 0, &MalformedToken{Token: tok}
			}
			return hi << 4, 0xF0, nil
		}
		hi, ok1 := hexDigit(tok[0])
		lo, ok2 := hexDigit(tok[1])
		if !ok1 || !ok2 {
			return 0, 0, &MalformedToken{Token: tok}
		}
		return hi<<4 | lo, 0xFF, nil
	default:
		return 0, 0, &MalformedToken{Token: tok}
	}
}

func hexDigit(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}

// MalformedToken reports the specific token that failed the grammar; it
// unwraps to ErrMalformedPattern.
type MalformedToken struct {
	Token string
}

func (e *MalformedToken) Error() string {
	return fmt.Sprintf("malformed pattern token %q", e.Token)
}

func (e *MalformedToken) Unwrap() error {
	return ErrMalformedPattern
}
