package db

import (
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func open(t *testing.T) {
	t.Helper()
	Open(Config{File: filepath.Join(t.TempDir(), "data", "cipherbox.db")})
	t.Cleanup(func() {
		if err := Close(); err != nil {
			t.Error(err)
		}
	})
}

func TestSolutions(t *testing.T) {
	open(t)

	if _, ok, err := Lookup("1bad0fcabc1ebdce"); err != nil || ok {
		t.Fatalf("have ok %v error %v on empty db", ok, err)
	}

	solvedAt := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	if err := PutSolution("1bad0fcabc1ebdce", []string{"572943"}, solvedAt, time.Second); err != nil {
		t.Fatal(err)
	}

	for hits := 0; hits <= 2; hits++ {
		if hits > 0 {
			if err := CountHit("1bad0fcabc1ebdce"); err != nil {
				t.Fatal(err)
			}
		}

		s, ok, err := Lookup("1bad0fcabc1ebdce")
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatal("solution not found")
		}
		if !slices.Equal(s.Plaintexts, []string{"572943"}) {
			t.Fatalf("have %v", s.Plaintexts)
		}
		if !s.SolvedAt.Equal(solvedAt) || s.Duration != time.Second {
			t.Fatalf("have %v %v", s.SolvedAt, s.Duration)
		}
		if s.Hits != hits {
			t.Fatalf("have %d hits, want %d", s.Hits, hits)
		}
	}

	if err := DeleteSolution("1bad0fcabc1ebdce"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := Lookup("1bad0fcabc1ebdce"); ok {
		t.Fatal("deleted solution found")
	}
	if err := DeleteSolution("missing"); err != nil {
		t.Fatal(err)
	}

	if err := CountHit("1bad0fcabc1ebdce"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := Lookup("1bad0fcabc1ebdce"); ok {
		t.Fatal("hit count created a solution")
	}
}

func TestEmptySolution(t *testing.T) {
	open(t)

	if err := PutSolution("1724", nil, time.Now(), 0); err != nil {
		t.Fatal(err)
	}
	s, ok, err := Lookup("1724")
	if err != nil || !ok {
		t.Fatalf("have ok %v error %v", ok, err)
	}
	if s.Plaintexts == nil || len(s.Plaintexts) != 0 {
		t.Fatalf("have %#v, want empty list", s.Plaintexts)
	}
}

func TestAllAndClear(t *testing.T) {
	open(t)

	for _, c := range []string{"c", "a", "b"} {
		if err := PutSolution(c, []string{c}, time.Now(), 0); err != nil {
			t.Fatal(err)
		}
	}

	var keys []string
	for k, s := range All() {
		if !slices.Equal(s.Plaintexts, []string{k}) {
			t.Fatalf("%s: have %v", k, s.Plaintexts)
		}
		keys = append(keys, k)
	}
	if !slices.Equal(keys, []string{"a", "b", "c"}) {
		t.Fatalf("have %v", keys)
	}

	n := 0
	for range All() {
		n++
		break
	}
	if n != 1 {
		t.Fatalf("have %d, want 1", n)
	}

	if err := Clear(); err != nil {
		t.Fatal(err)
	}
	for k := range All() {
		t.Fatalf("%s survived clear", k)
	}
}
