package vigenere

import (
	"math/rand/v2"
	"strings"
	"testing"
)

const lower = "abcdefghijklmnopqrstuvwxyz"

func TestVigenere(t *testing.T) {
	for _, tc := range []struct {
		s, key, alphabet string
		dir              Direction
		want             string
	}{
		{"abcdefgh", "test", lower, Encode, "hxkklboo"},
		{"hxkklboo", "test", lower, Decode, "abcdefgh"},
		{"ab, cd!", "b", lower, Encode, "za, bc!"},
		{"ab, cd!", "b", lower, Decode, "bc, de!"},
		{"abc", "", lower, Encode, "abc"},
		{"abc", "XYZ", lower, Encode, "abc"},
		{"a-b", "b-", lower, Decode, "b-c"},
		{"0110", "1", "01", Decode, "1001"},
	} {
		t.Run(tc.s+"/"+tc.key, func(t *testing.T) {
			if have := Vigenere(tc.s, tc.key, tc.alphabet, tc.dir); have != tc.want {
				t.Fatalf("have %q, want %q", have, tc.want)
			}
		})
	}
}

func TestRand(t *testing.T) {
	for range 100 {
		s := &strings.Builder{}
		for range 20 {
			s.WriteByte(lower[rand.IntN(len(lower))])
		}
		key := lower[rand.IntN(10) : 10+rand.IntN(10)]

		enc := Vigenere(s.String(), key, lower, Encode)
		if have, want := Vigenere(enc, key, lower, Decode), s.String(); have != want {
			t.Fatalf("key %q: have %q, want %q", key, have, want)
		}
	}
}
