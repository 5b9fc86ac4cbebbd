package numbers

import "strings"

// substitution maps digit values to replacement runes. Zero means unmapped.
type substitution [10]rune

// newSubstitution zips plaintext digits with key runes up to the shorter of the two.
// A repeated digit keeps the rune of its last position.
func newSubstitution(plaintext, key string) substitution {
	var sub substitution

	kr := []rune(key)
	for i, r := range []rune(plaintext) {
		if i >= len(kr) {
			break
		}
		if r < '0' || r > '9' {
			continue
		}
		sub[r-'0'] = kr[i]
	}
	return sub
}

func (sub *substitution) apply(s string) string {
	return strings.Map(func(r rune) rune {
		if r < '0' || r > '9' {
			return r
		}
		if m := sub[r-'0']; m != 0 {
			return m
		}
		return r
	}, s)
}
