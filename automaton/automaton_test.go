package automaton

import (
	"reflect"
	"sort"
	"testing"
)

func build(t *testing.T, literals ...string) (*Automaton, []int32) {
	t.Helper()
	b := NewBuilder()
	ids := make([]int32, len(literals))
	for i, lit := range literals {
		ids[i] = b.AddLiteral([]byte(lit))
	}
	a, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return a, ids
}

func scanAll(a *Automaton, data string) []LiteralMatch {
	var got []LiteralMatch
	a.Scan([]byte(data), func(m LiteralMatch) Action {
		got = append(got, m)
		return Continue
	})
	sort.Slice(got, func(i, j int) bool {
		if got[i].End != got[j].End {
			return got[i].End < got[j].End
		}
		return got[i].LiteralID < got[j].LiteralID
	})
	return got
}

func TestScanSingleLiteral(t *testing.T) {
	a, ids := build(t, "he")
	got := scanAll(a, "she said he left")
	want := []LiteralMatch{{ids[0], 3}, {ids[0], 11}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScanOverlappingLiterals(t *testing.T) {
	// "he" and "she" overlap: "she" contains "he" as a suffix.
	a, ids := build(t, "he", "she", "hers")
	got := scanAll(a, "she")
	want := []LiteralMatch{{ids[0], 3}, {ids[1], 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScanSuffixLiteralReported(t *testing.T) {
	// "b" is a suffix of "ab"; both must be reported at the same end.
	a, ids := build(t, "ab", "b")
	got := scanAll(a, "cab")
	want := []LiteralMatch{{ids[0], 3}, {ids[1], 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScanDuplicateLiteralsDeduplicated(t *testing.T) {
	b := NewBuilder()
	id1 := b.AddLiteral([]byte("AA"))
	id2 := b.AddLiteral([]byte("AA"))
	if id1 != id2 {
		t.Errorf("AddLiteral with identical bytes returned distinct ids %d, %d", id1, id2)
	}
}

func TestScanNoMatch(t *testing.T) {
	a, _ := build(t, "xyz")
	got := scanAll(a, "abcdef")
	if len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}

func TestScanStopPropagates(t *testing.T) {
	a, _ := build(t, "a")
	calls := 0
	action := a.Scan([]byte("aaaa"), func(m LiteralMatch) Action {
		calls++
		return Stop
	})
	if action != Stop {
		t.Errorf("Scan() = %v, want Stop", action)
	}
	if calls != 1 {
		t.Errorf("sink called %d times, want 1", calls)
	}
}

func TestLenReturnsLiteralByteLength(t *testing.T) {
	a, ids := build(t, "abc", "de")
	if got := a.Len(ids[0]); got != 3 {
		t.Errorf("Len(abc) = %d, want 3", got)
	}
	if got := a.Len(ids[1]); got != 2 {
		t.Errorf("Len(de) = %d, want 2", got)
	}
}
