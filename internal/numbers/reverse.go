package numbers

import (
	"cipherbox/internal/decimal"
	"cipherbox/internal/rec"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Reverse returns every plaintext that encodes to ciphertext with DefaultKey,
// sorted and without duplicates. Malformed ciphertext yields no plaintexts.
func Reverse(ciphertext string) []string {
	plaintexts, err := ReverseContext(context.Background(), ciphertext, 1)
	if err != nil {
		panic(err)
	}
	return plaintexts
}

// ReverseContext is Reverse with cancellation. Letter assignments are searched on
// up to workers goroutines, and each assignment polls ctx while it runs.
// The error is ctx.Err() when ctx ends before the search does, or wraps
// a panic from a branch.
func ReverseContext(ctx context.Context, ciphertext string, workers int) ([]string, error) {
	s, missing, letters, ok := prepare(ciphertext)
	if !ok {
		return nil, nil
	}

	se := &search{
		ciphertext: ciphertext,
		found:      map[string]struct{}{},
	}

	if workers <= 1 {
		for digits := range assignments(missing, len(letters)) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := se.run(ctx, substitute(s, letters, digits)); err != nil {
				return nil, se.fail(ctx, err)
			}
		}
		return se.results(), nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for digits := range assignments(missing, len(letters)) {
		if gctx.Err() != nil {
			break
		}
		t := substitute(s, letters, digits)
		g.Go(func() error {
			return se.run(gctx, t)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, se.fail(ctx, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return se.results(), nil
}

// Searchable reports whether ciphertext passes the shape checks the inverse
// search applies before trying any assignment. Reverse returns nothing for
// ciphertexts that fail them.
func Searchable(ciphertext string) bool {
	_, _, _, ok := prepare(ciphertext)
	return ok
}

func prepare(ciphertext string) (s string, missing, letters []byte, ok bool) {
	s, ok = resolveMarkers(ciphertext)
	if !ok {
		return "", nil, nil, false
	}
	missing, letters = unresolved(s)
	if len(letters) > len(missing) {
		return "", nil, nil, false
	}
	return s, missing, letters, true
}

// resolveMarkers checks the shape of ciphertext and replaces the runes found at the
// marker positions with the digits the forward cipher put there.
func resolveMarkers(ciphertext string) (string, bool) {
	if len(ciphertext) < 4 {
		return "", false
	}

	var seen [256]bool
	distinct := 0
	for i := 0; i < len(ciphertext); i++ {
		c := ciphertext[i]
		if !isHex(c) {
			return "", false
		}
		if !seen[c] {
			seen[c] = true
			distinct++
		}
	}
	if distinct > 10 {
		return "", false
	}

	var mapping [256]int8
	for i := range mapping {
		mapping[i] = -1
	}
	for d := range int8(10) {
		mapping['0'+d] = d
	}

	n := len(ciphertext)
	s := ciphertext
	for _, m := range [...]struct {
		pos   int
		digit int8
	}{
		{0, 1},
		{1, 7},
		{n - 2, 2},
		{n - 1, 4},
	} {
		c := ciphertext[m.pos]
		if d := mapping[c]; d >= 0 {
			if d != m.digit {
				return "", false
			}
			continue
		}
		s = strings.ReplaceAll(s, string(c), string(rune('0'+m.digit)))
		mapping[c] = m.digit
	}
	return s, true
}

// unresolved returns the digits absent from s and the hex letters still in it.
func unresolved(s string) (missing, letters []byte) {
	var present [256]bool
	for i := 0; i < len(s); i++ {
		present[s[i]] = true
	}
	for c := byte('0'); c <= '9'; c++ {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	for c := byte('a'); c <= 'f'; c++ {
		if present[c] {
			letters = append(letters, c)
		}
	}
	return missing, letters
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f'
}

func substitute(s string, letters, digits []byte) string {
	var table [256]byte
	for i, l := range letters {
		table[l] = digits[i]
	}
	return strings.Map(func(r rune) rune {
		if r < 256 && table[r] != 0 {
			return rune(table[r])
		}
		return r
	}, s)
}

type search struct {
	ciphertext string

	mx    sync.Mutex
	found map[string]struct{}
}

// pollEvery is how many un-mirror trials run between context checks.
const pollEvery = 256

func (se *search) run(ctx context.Context, t string) (err error) {
	defer rec.Error(&err)
	return se.branch(ctx, t)
}

// fail reports ctx's own error once it is done, so callers can match it.
func (se *search) fail(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("numbers: reverse %q: %w", se.ciphertext, err)
}

// branch explores one fully substituted ciphertext t.
func (se *search) branch(ctx context.Context, t string) error {
	body, ok := strings.CutPrefix(t, "17")
	if !ok {
		return nil
	}
	body, ok = strings.CutSuffix(body, "24")
	if !ok {
		return nil
	}

	c, err := decimal.DivExact(body, 9)
	if err != nil {
		return nil
	}

	mirrored, ok := strings.CutSuffix(reverse(c), "6")
	if !ok || mirrored == "" || strings.Contains(mirrored, "2") {
		return nil
	}
	// Only a trailing 0 or 5 survives the division by 5, and a 3 can't become either.
	if last := mirrored[len(mirrored)-1]; last != '0' && last != '5' {
		return nil
	}

	n := 0
	for trial := range unmirror(mirrored) {
		if n++; n%pollEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		f, err := decimal.DivExact(trial, 5)
		if err != nil {
			continue
		}
		p, ok := strings.CutSuffix(f, "91")
		if !ok {
			continue
		}
		p, ok = strings.CutPrefix(p, "2")
		if !ok {
			continue
		}

		if enc, err := Encode(p); err == nil && enc == se.ciphertext {
			se.accept(p)
		}
	}
	return nil
}

func (se *search) accept(p string) {
	se.mx.Lock()
	defer se.mx.Unlock()
	se.found[p] = struct{}{}
}

func (se *search) results() []string {
	se.mx.Lock()
	defer se.mx.Unlock()
	return slices.Sorted(maps.Keys(se.found))
}
