// Package db caches inverse search results in a bbolt file.
package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var (
	bucketSolutions = []byte("solutions")
)

var db *bbolt.DB

func Open(config Config) {
	if db != nil {
		panic("db: already opened")
	}
	if config.File == "" {
		panic("db: file is required")
	}

	err := os.MkdirAll(filepath.Dir(config.File), 0755)
	if err != nil {
		panic(fmt.Errorf("db: create db dir: %w", err))
	}

	db, err = bbolt.Open(config.File, 0600, &bbolt.Options{
		Timeout: 30 * time.Second,
	})
	if err != nil {
		panic(fmt.Errorf("db: open bbolt db: %w", err))
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSolutions)
		if err != nil {
			return fmt.Errorf("create bucket %q: %w", bucketSolutions, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		db = nil
		panic(fmt.Errorf("db: initialize buckets: %w", err))
	}
}

func Close() error {
	if db == nil {
		panic("db: not opened")
	}

	err := db.Close()
	db = nil
	if err != nil {
		return fmt.Errorf("db: close bbolt db: %w", err)
	}
	return nil
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}

func Closer() io.Closer {
	return closerFunc(Close)
}

// Solution is a finished inverse search for one ciphertext.
type Solution struct {
	Plaintexts []string      `json:"plaintexts"`
	SolvedAt   time.Time     `json:"solved_at"`
	Duration   time.Duration `json:"duration"`
	Hits       int           `json:"hits"`
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(fmt.Errorf("db: must: %w", err))
	}
	return v
}

func solutions(tx *bbolt.Tx) (*bbolt.Bucket, error) {
	b := tx.Bucket(bucketSolutions)
	if b == nil {
		return nil, fmt.Errorf("db: solutions bucket not found")
	}
	return b, nil
}

// modify runs a read-modify-write of one solution. Returning nil from
// modify deletes the entry.
func modify(ciphertext string, modify func(*Solution, bool) (*Solution, error)) error {
	if db == nil {
		panic("db: not opened")
	}

	return db.Update(func(tx *bbolt.Tx) error {
		return modifyTx(tx, ciphertext, modify)
	})
}

func modifyTx(tx *bbolt.Tx, ciphertext string, modify func(*Solution, bool) (*Solution, error)) error {
	b, err := solutions(tx)
	if err != nil {
		return err
	}

	var solution *Solution
	exists := false

	data := b.Get([]byte(ciphertext))
	if data == nil {
		solution = &Solution{}
	} else {
		err := json.Unmarshal(data, &solution)
		if err != nil {
			return fmt.Errorf("db: unmarshal solution for %q: %w", ciphertext, err)
		}
		exists = true
	}

	if solution, err = modify(solution, exists); err != nil {
		return fmt.Errorf("db: modify solution for %q: %w", ciphertext, err)
	}

	if solution == nil {
		if !exists {
			return nil
		}
		return b.Delete([]byte(ciphertext))
	}
	return b.Put([]byte(ciphertext), must(json.Marshal(solution)))
}

// Lookup returns the cached solution for ciphertext.
func Lookup(ciphertext string) (Solution, bool, error) {
	if db == nil {
		panic("db: not opened")
	}

	var found Solution
	var ok bool

	err := db.View(func(tx *bbolt.Tx) error {
		b, err := solutions(tx)
		if err != nil {
			return err
		}

		data := b.Get([]byte(ciphertext))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &found); err != nil {
			return fmt.Errorf("db: unmarshal solution for %q: %w", ciphertext, err)
		}
		ok = true
		return nil
	})
	if err != nil {
		return Solution{}, false, err
	}
	return found, ok, nil
}

// CountHit adds one to the hit count of a cached solution.
// Concurrent calls are committed together in one bbolt batch.
func CountHit(ciphertext string) error {
	if db == nil {
		panic("db: not opened")
	}

	return db.Batch(func(tx *bbolt.Tx) error {
		return modifyTx(tx, ciphertext, func(solution *Solution, exists bool) (*Solution, error) {
			if !exists {
				return nil, nil
			}
			solution.Hits++
			return solution, nil
		})
	})
}

// PutSolution stores plaintexts for ciphertext, replacing any previous entry.
func PutSolution(ciphertext string, plaintexts []string, solvedAt time.Time, duration time.Duration) error {
	if plaintexts == nil {
		plaintexts = []string{}
	}

	return modify(ciphertext, func(*Solution, bool) (*Solution, error) {
		return &Solution{
			Plaintexts: plaintexts,
			SolvedAt:   solvedAt,
			Duration:   duration,
		}, nil
	})
}

func DeleteSolution(ciphertext string) error {
	return modify(ciphertext, func(*Solution, bool) (*Solution, error) {
		return nil, nil
	})
}

// Clear drops every cached solution.
func Clear() error {
	if db == nil {
		panic("db: not opened")
	}

	return db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketSolutions); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
			return fmt.Errorf("db: delete solutions bucket: %w", err)
		}
		if _, err := tx.CreateBucket(bucketSolutions); err != nil {
			return fmt.Errorf("db: create solutions bucket: %w", err)
		}
		return nil
	})
}

var errStop = fmt.Errorf("stop iteration")

// All iterates over every cached solution in ciphertext order.
func All() iter.Seq2[string, Solution] {
	if db == nil {
		panic("db: not opened")
	}

	return func(yield func(string, Solution) bool) {
		err := db.View(func(tx *bbolt.Tx) error {
			b, err := solutions(tx)
			if err != nil {
				return err
			}

			return b.ForEach(func(k, v []byte) error {
				var solution Solution
				err := json.Unmarshal(v, &solution)
				if err != nil {
					return fmt.Errorf("db: unmarshal solution for %q: %w", k, err)
				}

				if !yield(string(k), solution) {
					return errStop
				}
				return nil
			})
		})

		if err != nil {
			if errors.Is(err, errStop) {
				return
			}
			panic(fmt.Errorf("db: list solutions: %w", err))
		}
	}
}
