package server

import (
	"net/http"
)

// searchLimiter caps the number of inverse searches running at once per host bucket.
type searchLimiter struct {
	buckets         []chan struct{}
	tooManyRequests http.Handler
}

func newSearchLimiter(buckets int, maxConcurrent int, tooManyRequests http.Handler) *searchLimiter {
	b := make([]chan struct{}, buckets)
	for i := range b {
		b[i] = make(chan struct{}, maxConcurrent)
	}

	return &searchLimiter{
		buckets:         b,
		tooManyRequests: tooManyRequests,
	}
}

func (l *searchLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tickets := l.buckets[hostBucket(r, len(l.buckets))]

		select {
		case tickets <- struct{}{}:
			defer func() { <-tickets }()
			next.ServeHTTP(w, r)

		default:
			l.tooManyRequests.ServeHTTP(w, r)
		}
	})
}
