// Package decimal implements arithmetic on unsigned decimal numerals carried as strings.
package decimal

import (
	"errors"
	"math/big"
)

var (
	ErrEmpty        = errors.New("decimal: empty numeral")
	ErrNotDigit     = errors.New("decimal: non-digit character")
	ErrNotDivisible = errors.New("decimal: not divisible")
)

// Parse reads s as an unsigned base 10 integer.
// Unlike big.Int.SetString it accepts digits only: no sign, no underscores.
func Parse(s string) (*big.Int, error) {
	if s == "" {
		return nil, ErrEmpty
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, ErrNotDigit
		}
	}

	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("decimal: validated numeral rejected by big.Int")
	}
	return n, nil
}

// Format returns the canonical digits of n.
func Format(n *big.Int) string {
	return n.Text(10)
}

// Mul multiplies s by k.
func Mul(s string, k int64) (string, error) {
	n, err := Parse(s)
	if err != nil {
		return "", err
	}
	return Format(n.Mul(n, big.NewInt(k))), nil
}

// DivExact divides s by k, failing with ErrNotDivisible when there is a remainder.
func DivExact(s string, k int64) (string, error) {
	n, err := Parse(s)
	if err != nil {
		return "", err
	}

	m := new(big.Int)
	n.QuoRem(n, big.NewInt(k), m)
	if m.Sign() != 0 {
		return "", ErrNotDivisible
	}
	return Format(n), nil
}
