// Package codec packs text into short URL safe tokens and back.
package codec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/klauspost/compress/flate"
)

var ErrUTF8 = errors.New("codec: decompressed data is not valid UTF-8")

// Compress deflates s at the best compression level and encodes the raw
// stream as unpadded URL safe base64.
func Compress(s string) (string, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("codec: create writer: %w", err)
	}
	if _, err := io.WriteString(w, s); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("codec: compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("codec: close writer: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decompress reverses Compress.
func Decompress(s string) (string, error) {
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("codec: base64: %w", err)
	}

	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("codec: decompress: %w", err)
	}
	if !utf8.Valid(out) {
		return "", ErrUTF8
	}
	return string(out), nil
}
