package pattern

import "testing"

// FuzzCompile checks that Compile never panics on arbitrary input and that
// every successfully compiled pattern satisfies the data-model invariants
// of spec §3: values/masks arenas of matching length, and an anchor that is
// always nonempty and within bounds.
func FuzzCompile(f *testing.F) {
	f.Add("48 89 5C 24 08")
	f.Add("E8 ?? ?? ?? ??")
	f.Add("4? ?A")
	f.Add("")
	f.Add("?")
	f.Add("ZZ")
	f.Add("?? ?? ??")

	f.Fuzz(func(t *testing.T, raw string) {
		c, err := Compile([]string{raw})
		if err != nil {
			return
		}

		info := c.Patterns[0]
		if info.DataOffset+info.Len > len(c.Values) {
			t.Fatalf("pattern data_offset+len exceeds arena length for input %q", raw)
		}
		if len(c.Values) != len(c.Masks) {
			t.Fatalf("values/masks arena length mismatch for input %q", raw)
		}

		anchor := c.Anchors[0]
		if len(anchor) == 0 {
			t.Fatalf("anchor must be nonempty for input %q", raw)
		}
		if info.AnchorOffset+len(anchor) > info.Len {
			t.Fatalf("anchor_offset+anchor_len exceeds pattern len for input %q", raw)
		}
	})
}
