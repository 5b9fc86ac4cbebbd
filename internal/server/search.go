package server

import (
	"cipherbox/internal/ctxlog"
	"cipherbox/internal/db"
	"cipherbox/internal/numbers"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var errSearchTimeout = errors.New("search timed out, too many digits are hidden")

type reverseRequest struct {
	Ciphertext string `json:"ciphertext"`
}

type reverseResponse struct {
	Plaintexts []string `json:"plaintexts"`
	Cached     bool     `json:"cached"`
}

// reverser answers inverse searches from the solution cache, searching and
// caching on a miss.
type reverser struct {
	workers int
	timeout time.Duration
	maxLen  int
}

func (rv *reverser) reverse(r *http.Request, req reverseRequest) (reverseResponse, error) {
	c := req.Ciphertext
	if len(c) > rv.maxLen {
		return reverseResponse{}, fmt.Errorf("ciphertext longer than %d characters", rv.maxLen)
	}

	if !numbers.Searchable(c) {
		return reverseResponse{Plaintexts: []string{}}, nil
	}

	ctx := ctxlog.With(r.Context(), "ciphertext", c)
	log := ctxlog.Get(ctx)

	if s, ok, err := db.Lookup(c); err != nil {
		log.Error("failed to look up solution", "error", err)
	} else if ok {
		if err := db.CountHit(c); err != nil {
			log.Error("failed to count solution hit", "error", err)
		}
		log.Info("solution cache hit", "hits", s.Hits+1)
		return reverseResponse{Plaintexts: s.Plaintexts, Cached: true}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, rv.timeout)
	defer cancel()

	start := time.Now()
	plaintexts, err := numbers.ReverseContext(ctx, c, rv.workers)
	dur := time.Since(start)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warn("search timed out", "duration", dur)
			return reverseResponse{}, &httpError{status: http.StatusServiceUnavailable, err: errSearchTimeout}
		}
		if errors.Is(err, context.Canceled) {
			log.Info("search abandoned", "duration", dur)
			return reverseResponse{}, &httpError{status: http.StatusServiceUnavailable, err: err}
		}
		panic(err)
	}
	if plaintexts == nil {
		plaintexts = []string{}
	}

	log.Info("search finished", "plaintexts", len(plaintexts), "duration", dur)

	if err := db.PutSolution(c, plaintexts, start, dur); err != nil {
		log.Error("failed to store solution", "error", err)
	}

	return reverseResponse{Plaintexts: plaintexts}, nil
}
