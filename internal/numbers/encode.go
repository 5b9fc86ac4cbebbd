// Package numbers implements the digit obfuscation cipher and its keyless inverse search.
//
// The forward transform wraps a digit string in markers, scales it by 5, mirrors it
// (turning every 2 into a 3), scales by 9, wraps it again and finally substitutes
// digits with key runes position by position. The inverse undoes each step without
// the key, enumerating the ambiguous choices and keeping only plaintexts that
// encode back to the exact ciphertext.
package numbers

import (
	"cipherbox/internal/decimal"
	"errors"
	"fmt"
	"strings"
)

// DefaultKey is the substitution key used when none is given.
const DefaultKey = "abcdef"

var (
	ErrEmptyPlaintext = errors.New("numbers: empty plaintext")
	ErrEmptyKey       = errors.New("numbers: empty key")
)

// Encode encodes plaintext with DefaultKey.
func Encode(plaintext string) (string, error) {
	return EncodeKey(plaintext, DefaultKey)
}

// EncodeKey encodes a decimal digit string. Digit values met in the first
// len(key) positions of plaintext are replaced in the output by the key rune
// at that position.
func EncodeKey(plaintext, key string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPlaintext
	}
	if key == "" {
		return "", ErrEmptyKey
	}

	num, err := decimal.Mul("2"+plaintext+"91", 5)
	if err != nil {
		return "", fmt.Errorf("numbers: wrap: %w", err)
	}

	num = strings.ReplaceAll(reverse(num+"6"), "2", "3")

	num, err = decimal.Mul(num, 9)
	if err != nil {
		panic(fmt.Errorf("numbers: mirrored numeral: %w", err))
	}

	sub := newSubstitution(plaintext, key)
	return sub.apply("17" + num + "24"), nil
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
