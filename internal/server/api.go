package server

import (
	"cipherbox/internal/blockcipher"
	"cipherbox/internal/codec"
	"cipherbox/internal/ctxlog"
	"cipherbox/internal/grid"
	"cipherbox/internal/numbers"
	"cipherbox/internal/shift"
	"cipherbox/internal/vigenere"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"strconv"
)

const maxRequestBody = 1 << 20

const defaultAlphabet = "abcdefghijklmnopqrstuvwxyz"

// httpError carries a status other than 422 out of an API function.
type httpError struct {
	status int
	err    error
}

func (e *httpError) Error() string { return e.err.Error() }
func (e *httpError) Unwrap() error { return e.err }

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("server: marshal response: %w", err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log := ctxlog.Get(r.Context())
		log.Error("failed to write response", "error", err)
	}
}

// jsonHandler decodes a Req from the request body, passes it to f and encodes
// the result. Errors from f are reported as 422 unless they carry their own status.
func jsonHandler[Req, Resp any](f func(*http.Request, Req) (Resp, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Req
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid request: " + err.Error()})
			return
		}

		resp, err := f(r, req)
		if err != nil {
			status := http.StatusUnprocessableEntity
			if herr := (*httpError)(nil); errors.As(err, &herr) {
				status = herr.status
			}
			writeJSON(w, r, status, errorResponse{Error: err.Error()})
			return
		}

		writeJSON(w, r, http.StatusOK, resp)
	})
}

type outputResponse struct {
	Output string `json:"output"`
}

type numbersRequest struct {
	Plaintext string  `json:"plaintext"`
	Key       *string `json:"key"`
}

type numbersResponse struct {
	Ciphertext string `json:"ciphertext"`
}

func encodeNumbers(_ *http.Request, req numbersRequest) (numbersResponse, error) {
	key := numbers.DefaultKey
	if req.Key != nil {
		key = *req.Key
	}

	c, err := numbers.EncodeKey(req.Plaintext, key)
	if err != nil {
		return numbersResponse{}, err
	}
	return numbersResponse{Ciphertext: c}, nil
}

type gridRequest struct {
	Src string `json:"src"`
}

func rotateGrid(_ *http.Request, req gridRequest) (outputResponse, error) {
	out, err := grid.Rotate(req.Src)
	if err != nil {
		return outputResponse{}, err
	}
	return outputResponse{Output: out}, nil
}

type shiftRequest struct {
	Text         string  `json:"text"`
	Key          *string `json:"key"`
	Inverse      bool    `json:"inverse"`
	IgnoreSpaces bool    `json:"ignoreSpaces"`
	Limit        int     `json:"limit"`
}

type shiftResponse struct {
	Shifts    []string `json:"shifts"`
	Truncated bool     `json:"truncated"`
}

func shifter(maxShifts int) func(*http.Request, shiftRequest) (shiftResponse, error) {
	return func(_ *http.Request, req shiftRequest) (shiftResponse, error) {
		limit := maxShifts
		if req.Limit > 0 && req.Limit < limit {
			limit = req.Limit
		}

		var seq iter.Seq[string]
		if req.Key != nil {
			seq = shift.ShiftKey(req.Text, *req.Key, req.Inverse, req.IgnoreSpaces)
		} else {
			seq = shift.Shift(req.Text)
		}

		resp := shiftResponse{Shifts: []string{}}
		for s := range seq {
			if len(resp.Shifts) == limit {
				resp.Truncated = true
				break
			}
			resp.Shifts = append(resp.Shifts, s)
		}
		return resp, nil
	}
}

type vigenereRequest struct {
	Text     string `json:"text"`
	Key      string `json:"key"`
	Alphabet string `json:"alphabet"`
	Decode   bool   `json:"decode"`
}

func applyVigenere(_ *http.Request, req vigenereRequest) (outputResponse, error) {
	alphabet := req.Alphabet
	if alphabet == "" {
		alphabet = defaultAlphabet
	}

	dir := vigenere.Encode
	if req.Decode {
		dir = vigenere.Decode
	}
	return outputResponse{Output: vigenere.Vigenere(req.Text, req.Key, alphabet, dir)}, nil
}

type decryptRequest struct {
	Data string `json:"data"`
	Key  string `json:"key"`
}

func decrypt(_ *http.Request, req decryptRequest) (outputResponse, error) {
	out, err := blockcipher.Decrypt(req.Data, req.Key)
	if err != nil {
		return outputResponse{}, err
	}
	return outputResponse{Output: out}, nil
}

type textRequest struct {
	Text string `json:"text"`
}

func compress(_ *http.Request, req textRequest) (outputResponse, error) {
	out, err := codec.Compress(req.Text)
	if err != nil {
		return outputResponse{}, err
	}
	return outputResponse{Output: out}, nil
}

func decompress(_ *http.Request, req textRequest) (outputResponse, error) {
	out, err := codec.Decompress(req.Text)
	if err != nil {
		return outputResponse{}, err
	}
	return outputResponse{Output: out}, nil
}
