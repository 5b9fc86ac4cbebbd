package grid

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	g := New()
	if have, want := string(g[0][:]), "abcdef"; have != want {
		t.Fatalf("row 0: have %s, want %s", have, want)
	}
	if have, want := string(g[1][:]), "ghijql"; have != want {
		t.Fatalf("row 1: have %s, want %s", have, want)
	}
	if have, want := string(g[5][:]), "567890"; have != want {
		t.Fatalf("row 5: have %s, want %s", have, want)
	}
}

func TestRotateRow(t *testing.T) {
	g := New()
	g.RotateRow(0, 1)
	if have, want := string(g[0][:]), "fabcde"; have != want {
		t.Fatalf("have %s, want %s", have, want)
	}

	g = New()
	g.RotateRow(0, 7)
	if have, want := string(g[0][:]), "fabcde"; have != want {
		t.Fatalf("have %s, want %s", have, want)
	}
}

func TestRotateColumn(t *testing.T) {
	g := New()
	g.RotateColumn(0, 2)

	var col []rune
	for row := range size {
		col = append(col, g[row][0])
	}
	if have, want := string(col), "y5agms"; have != want {
		t.Fatalf("have %s, want %s", have, want)
	}
}

func TestApplyInverse(t *testing.T) {
	g := New()
	g.Apply([]int{1, 2, 3, 4, 5, 0})
	if g == New() {
		t.Fatal("rows were not rotated")
	}
	g.Apply([]int{5, 4, 3, 2, 1, 0})
	if g != New() {
		t.Fatalf("have %s", g)
	}

	g.Apply([]int{0, 0, 0, 0, 0, 0, 1, 2, 3, 4, 5, 0})
	if g == New() {
		t.Fatal("columns were not rotated")
	}
	g.Apply([]int{0, 0, 0, 0, 0, 0, 5, 4, 3, 2, 1, 0})
	if g != New() {
		t.Fatalf("have %s", g)
	}
}

func TestApplyWrapsColumns(t *testing.T) {
	a := New()
	a.Apply([]int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 3})

	b := New()
	b.RotateColumn(0, 3)

	if a != b {
		t.Fatalf("have %s, want %s", a, b)
	}
}

func TestParseCounts(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want []int
	}{
		{"123", []int{1, 2, 3}},
		{"1,20,3", []int{1, 2, 3}},
		{"", nil},
	} {
		have, err := ParseCounts(tc.in)
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if !slices.Equal(have, tc.want) {
			t.Fatalf("%q: have %v, want %v", tc.in, have, tc.want)
		}
	}

	for _, in := range []string{"1a", "1,,2", "1,-2", "x,1"} {
		if _, err := ParseCounts(in); !errors.Is(err, ErrCount) {
			t.Fatalf("%q: have %v, want %v", in, err, ErrCount)
		}
	}
}

func TestRotate(t *testing.T) {
	out, err := Rotate("1")
	if err != nil {
		t.Fatal(err)
	}

	before, after, ok := strings.Cut(out, " \n \nEncrypted Grid after Rotating")
	if !ok {
		t.Fatalf("missing separator in %q", out)
	}
	if !strings.HasPrefix(before, "Original Grid:\na b c d e f \n") {
		t.Fatalf("have %q", before)
	}
	if !strings.HasPrefix(after, "\nf a b c d e \ng h i j q l \n") {
		t.Fatalf("have %q", after)
	}

	if _, err := Rotate("12 x"); !errors.Is(err, ErrCount) {
		t.Fatalf("have %v, want %v", err, ErrCount)
	}
}
