// Package vigenere implements a polyalphabetic substitution over a caller supplied alphabet.
package vigenere

type Direction int

const (
	// Encode moves each letter back by the key letter's position.
	Encode Direction = iota
	// Decode moves each letter forward, undoing Encode.
	Decode
)

// Vigenere shifts every alphabet rune of s by the position of the next key rune.
// Key runes outside the alphabet are ignored and runes of s outside the alphabet
// pass through without using up the key. A repeated alphabet rune takes its last position.
func Vigenere(s, key, alphabet string, dir Direction) string {
	letters := []rune(alphabet)
	pos := make(map[rune]int, len(letters))
	for i, r := range letters {
		pos[r] = i
	}

	var k []int
	for _, r := range key {
		if i, ok := pos[r]; ok {
			k = append(k, i)
		}
	}
	if len(k) == 0 {
		return s
	}

	n := len(letters)
	out := []rune(s)
	j := 0
	for i, r := range out {
		x, ok := pos[r]
		if !ok {
			continue
		}

		y := k[j%len(k)]
		j++
		if dir == Decode {
			out[i] = letters[(x+y)%n]
		} else {
			out[i] = letters[(x+n-y)%n]
		}
	}
	return string(out)
}
