package shift

import (
	"slices"
	"testing"
)

func TestShift(t *testing.T) {
	have := slices.Collect(Shift("c b"))
	want := []string{"c b", "b a", "a `"}
	if len(have) < len(want) || !slices.Equal(have[:len(want)], want) {
		t.Fatalf("have %q, want prefix %q", have[:min(len(have), 3)], want)
	}

	// 'b' reaches code point 0 after 98 steps; that state is never yielded.
	if have, want := len(have), int('b'); have != want {
		t.Fatalf("have %d shifts, want %d", have, want)
	}
	if last := have[len(have)-1]; last != "\x02 \x01" {
		t.Fatalf("last shift %q", last)
	}
}

func TestShiftSpacesOnly(t *testing.T) {
	for _, s := range []string{"", " ", "   "} {
		if have := slices.Collect(Shift(s)); len(have) != 0 {
			t.Fatalf("%q: have %q, want nothing", s, have)
		}
	}
}

func TestShiftStop(t *testing.T) {
	n := 0
	for range Shift("hello") {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Fatalf("have %d, want 3", n)
	}
}

func TestKeyed(t *testing.T) {
	for _, tc := range []struct {
		name        string
		s, key      string
		inv, ignore bool
		want        string
	}{
		{"plain", "aaa", "\x01\x02", false, false, "bcb"},
		{"empty key", "abc", "", false, false, "abc"},
		{"spaces consume key", "a a", "\x01\x02\x03", false, false, "b\"d"},
		{"spaces skipped", "a a", "\x01\x02\x03", false, true, "b c"},
		{"inverse", "aaa", "\x01\x02\x03", true, false, "dcb"},
		{"inverse single", "aa", "\x05", true, false, "ff"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if have := Keyed(tc.s, tc.key, tc.inv, tc.ignore); have != tc.want {
				t.Fatalf("have %q, want %q", have, tc.want)
			}
		})
	}
}

func TestKeyedInvalidSum(t *testing.T) {
	// U+D7FF + 1 lands on a surrogate and stays put.
	if have, want := Keyed("\uD7FF", "\x01", false, false), "\uD7FF"; have != want {
		t.Fatalf("have %q, want %q", have, want)
	}
}

func TestShiftKey(t *testing.T) {
	first := ""
	for s := range ShiftKey("abc", "\x01", false, false) {
		first = s
		break
	}
	if want := "bcd"; first != want {
		t.Fatalf("have %q, want %q", first, want)
	}
}
