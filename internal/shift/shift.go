// Package shift implements unkeyed and keyed character code shifts.
package shift

import (
	"iter"
	"slices"
	"unicode/utf8"
)

// Shift yields s followed by successive copies with every non-space rune
// moved one code point down. It stops before any rune would leave the
// valid range, and yields nothing when s has no non-space runes.
func Shift(s string) iter.Seq[string] {
	return func(yield func(string) bool) {
		cur := []rune(s)
		for {
			next := make([]rune, len(cur))
			good := false
			for i, r := range cur {
				if r == ' ' {
					next[i] = r
					continue
				}
				good = true

				r--
				if !utf8.ValidRune(r) {
					return
				}
				next[i] = r
			}

			if !good || !yield(string(cur)) {
				return
			}
			cur = next
		}
	}
}

// Keyed adds the code points of a repeating key to s.
//
// With inv, every key rune k is first mirrored to max+min-k over the key's own range.
// With ignoreSpaces, spaces in s are left alone and do not use up key runes.
// Sums outside the valid rune range leave the rune unchanged.
func Keyed(s, key string, inv, ignoreSpaces bool) string {
	k := []rune(key)
	if len(k) == 0 {
		return s
	}

	if inv {
		lo, hi := slices.Min(k), slices.Max(k)
		for i, r := range k {
			if m := hi - r + lo; utf8.ValidRune(m) {
				k[i] = m
			}
		}
	}

	out := []rune(s)
	j := 0
	for i, r := range out {
		if ignoreSpaces && r == ' ' {
			continue
		}

		y := k[j%len(k)]
		j++
		if sum := r + y; utf8.ValidRune(sum) {
			out[i] = sum
		}
	}
	return string(out)
}

// ShiftKey is Shift over the keyed shift of s.
func ShiftKey(s, key string, inv, ignoreSpaces bool) iter.Seq[string] {
	return Shift(Keyed(s, key, inv, ignoreSpaces))
}
