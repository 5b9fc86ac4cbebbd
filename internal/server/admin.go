package server

import (
	"cipherbox/internal/ctxlog"
	"cipherbox/internal/db"
	"net/http"
)

type admin struct {
	key             string
	notFoundHandler http.Handler
}

func newAdmin(key string, notFoundHandler http.Handler) *admin {
	return &admin{
		key:             key,
		notFoundHandler: notFoundHandler,
	}
}

// middleware hides next behind the admin cookie. Without it the route looks missing.
func (a *admin) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, _ := r.Cookie("X-Admin-Key"); cookie != nil && cookie.Value == a.key {
			next.ServeHTTP(w, r)
			return
		}

		a.notFoundHandler.ServeHTTP(w, r)
	})
}

func listSolutions(w http.ResponseWriter, r *http.Request) {
	solutions := map[string]db.Solution{}
	for c, s := range db.All() {
		solutions[c] = s
	}
	writeJSON(w, r, http.StatusOK, solutions)
}

func clearSolutions(w http.ResponseWriter, r *http.Request) {
	if err := db.Clear(); err != nil {
		panic(err)
	}
	ctxlog.Get(r.Context()).Info("cleared solution cache")
	w.WriteHeader(http.StatusNoContent)
}

func deleteSolution(w http.ResponseWriter, r *http.Request) {
	c := r.PathValue("ciphertext")
	if err := db.DeleteSolution(c); err != nil {
		panic(err)
	}
	ctxlog.Get(r.Context()).Info("deleted solution", "ciphertext", c)
	w.WriteHeader(http.StatusNoContent)
}
