package rec

import (
	"errors"
	"strings"
	"testing"
)

var errBoom = errors.New("boom")

func TestError(t *testing.T) {
	f := func() (err error) {
		defer Error(&err)
		panic(errBoom)
	}

	err := f()
	if !errors.Is(err, ErrPanic) {
		t.Fatalf("have %v, want ErrPanic", err)
	}
	if !errors.Is(err, errBoom) {
		t.Fatalf("have %v, want wrapped %v", err, errBoom)
	}
}

func TestErrorValue(t *testing.T) {
	f := func() (err error) {
		defer Error(&err)
		panic("index out of range")
	}

	err := f()
	if !errors.Is(err, ErrPanic) || !strings.Contains(err.Error(), "index out of range") {
		t.Fatalf("have %v", err)
	}
}

func TestErrorNoPanic(t *testing.T) {
	f := func() (err error) {
		defer Error(&err)
		return errBoom
	}

	if have, want := f(), errBoom; have != want {
		t.Fatalf("have %v, want %v", have, want)
	}
}

func TestWrap(t *testing.T) {
	f := func(fail bool) (err error) {
		defer Wrap(&err, "stage %d: %w", 2)
		if fail {
			panic("nope")
		}
		return errBoom
	}

	err := f(false)
	if !errors.Is(err, errBoom) || !strings.HasPrefix(err.Error(), "stage 2: ") {
		t.Fatalf("have %v", err)
	}

	err = f(true)
	if !errors.Is(err, ErrPanic) || !strings.HasPrefix(err.Error(), "stage 2: ") {
		t.Fatalf("have %v", err)
	}
}
