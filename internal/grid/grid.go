// Package grid implements a 6x6 grid rotation cipher.
package grid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const size = 6

// The alphabet has no k and two q's.
const alphabet = "abcdefghijqlmnopqrstuvwxyz1234567890"

var ErrCount = errors.New("grid: invalid rotation count")

type Grid [size][size]rune

// New returns the grid filled row by row from the fixed alphabet.
func New() Grid {
	var g Grid
	for i, r := range alphabet {
		g[i/size][i%size] = r
	}
	return g
}

func (g Grid) String() string {
	s := &strings.Builder{}
	for row := range size {
		s.WriteByte('\n')
		for col := range size {
			s.WriteRune(g[row][col])
			s.WriteByte(' ')
		}
	}
	return s.String()
}

// RotateRow shifts row right by n cells, wrapping around.
func (g *Grid) RotateRow(row, n int) {
	n %= size
	tmp := g[row]
	for col := range size {
		g[row][col] = tmp[(col-n+size)%size]
	}
}

// RotateColumn shifts col down by n cells, wrapping around.
func (g *Grid) RotateColumn(col, n int) {
	n %= size
	var tmp [size]rune
	for row := range size {
		tmp[row] = g[row][col]
	}
	for row := range size {
		g[row][col] = tmp[(row-n+size)%size]
	}
}

// Apply rotates the six rows by the first six counts, then
// the columns by the rest, wrapping back to column 0 every six counts.
func (g *Grid) Apply(counts []int) {
	for i, n := range counts {
		if i < size {
			g.RotateRow(i, n)
		} else {
			g.RotateColumn((i-size)%size, n)
		}
	}
}

// ParseCounts reads one rotation token: comma separated counts,
// or a run of single digit counts.
func ParseCounts(token string) ([]int, error) {
	var counts []int
	if strings.Contains(token, ",") {
		for _, part := range strings.Split(token, ",") {
			n, err := strconv.ParseUint(part, 10, 0)
			if err != nil {
				return nil, fmt.Errorf("%w %q", ErrCount, part)
			}
			counts = append(counts, int(n%size))
		}
		return counts, nil
	}

	for _, r := range token {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("%w %q", ErrCount, r)
		}
		counts = append(counts, int(r-'0'))
	}
	return counts, nil
}

// Rotate applies every space separated token of src to a fresh grid
// and renders the grid before and after.
func Rotate(src string) (string, error) {
	g := New()

	out := &strings.Builder{}
	out.WriteString("Original Grid:")
	out.WriteString(g.String())

	for _, token := range strings.Split(src, " ") {
		counts, err := ParseCounts(token)
		if err != nil {
			return "", err
		}
		g.Apply(counts)
	}

	out.WriteString(" \n \nEncrypted Grid after Rotating")
	out.WriteString(g.String())
	return out.String(), nil
}
