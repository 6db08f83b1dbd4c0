package verify

import (
	"testing"

	"github.com/coregx/sigscan/pattern"
)

func compileOne(t *testing.T, p string) (*pattern.Compiler, pattern.Info) {
	t.Helper()
	c, err := pattern.Compile([]string{p})
	if err != nil {
		t.Fatalf("Compile(%q): %v", p, err)
	}
	return c, c.Patterns[0]
}

func TestAtSoundness(t *testing.T) {
	c, info := compileOne(t, "4? ??")
	data := []byte{0x40, 0x00, 0x4F, 0xFF, 0x50, 0x00}

	var got []Match
	At(data, info.AnchorOffset, []pattern.Info{info}, Arenas{Values: c.Values, Masks: c.Masks}, func(m Match) Action {
		got = append(got, m)
		return Continue
	})
	At(data, 2+info.AnchorOffset, []pattern.Info{info}, Arenas{Values: c.Values, Masks: c.Masks}, func(m Match) Action {
		got = append(got, m)
		return Continue
	})

	want := []Match{{0, 0, 2}, {0, 2, 4}}
	if len(got) != len(want) {
		t.Fatalf("got %v matches, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("match %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAtBoundsSkipsUnderflow(t *testing.T) {
	c, info := compileOne(t, "?? 48 89")
	data := []byte{0x00, 0x48, 0x89}

	var got []Match
	action := At(data, 0, []pattern.Info{info}, Arenas{Values: c.Values, Masks: c.Masks}, func(m Match) Action {
		got = append(got, m)
		return Continue
	})
	if action != Continue {
		t.Fatalf("At() = %v, want Continue", action)
	}
	if len(got) != 0 {
		t.Fatalf("expected no match when anchor_pos < anchor_offset, got %v", got)
	}
}

func TestAtBoundsSkipsOverflow(t *testing.T) {
	c, info := compileOne(t, "48 89 5C")
	data := []byte{0x48, 0x89}

	got := At(data, 0, []pattern.Info{info}, Arenas{Values: c.Values, Masks: c.Masks}, func(m Match) Action {
		t.Fatalf("unexpected match %+v for a pattern longer than the buffer", m)
		return Continue
	})
	if got != Continue {
		t.Errorf("At() = %v, want Continue", got)
	}
}

func TestAtStopPropagates(t *testing.T) {
	c, info := compileOne(t, "AA")
	data := []byte{0xAA, 0xAA, 0xAA}

	calls := 0
	action := At(data, 0, []pattern.Info{info, info}, Arenas{Values: c.Values, Masks: c.Masks}, func(m Match) Action {
		calls++
		return Stop
	})
	if action != Stop {
		t.Errorf("At() = %v, want Stop", action)
	}
	if calls != 1 {
		t.Errorf("sink called %d times, want 1 (stop after first match)", calls)
	}
}

func TestAtNoDeduplication(t *testing.T) {
	c, err := pattern.Compile([]string{"AA BB", "AA BB"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	data := []byte{0xAA, 0xBB}

	var got []Match
	At(data, 0, c.Patterns, Arenas{Values: c.Values, Masks: c.Masks}, func(m Match) Action {
		got = append(got, m)
		return Continue
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 matches (no dedup) for two distinct pattern ids at same position, got %v", got)
	}
	if got[0].PatternID == got[1].PatternID {
		t.Errorf("expected distinct pattern ids, got %d and %d", got[0].PatternID, got[1].PatternID)
	}
}
