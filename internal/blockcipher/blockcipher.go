// Package blockcipher decrypts base64 encoded, AES encrypted, padded messages.
package blockcipher

import (
	"crypto/aes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrKeySize = errors.New("blockcipher: key must be 16, 24 or 32 bytes")
	ErrLength  = errors.New("blockcipher: data is not a whole number of blocks")
	ErrPadding = errors.New("blockcipher: invalid padding")
	ErrUTF8    = errors.New("blockcipher: plaintext is not valid UTF-8")
)

// Decrypt decodes data as standard base64, accepting '-' for '/' and '_' for '+'
// and skipping any other character outside the alphabet. Each block is then
// decrypted on its own with AES-128, -192 or -256 picked by the key length,
// and the trailing padding is stripped.
func Decrypt(data, key string) (string, error) {
	data = strings.Map(func(r rune) rune {
		switch {
		case r == '-':
			return '/'
		case r == '_':
			return '+'
		case 'A' <= r && r <= 'Z', 'a' <= r && r <= 'z', '0' <= r && r <= '9', r == '=', r == '/', r == '+':
			return r
		default:
			return -1
		}
	}, data)

	buf, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("blockcipher: base64: %w", err)
	}

	switch len(key) {
	case 16, 24, 32:
	default:
		return "", ErrKeySize
	}
	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return "", fmt.Errorf("blockcipher: aes: %w", err)
	}

	bs := block.BlockSize()
	if len(buf)%bs != 0 {
		return "", ErrLength
	}
	for i := 0; i < len(buf); i += bs {
		block.Decrypt(buf[i:i+bs], buf[i:i+bs])
	}

	buf, err = Unpad(buf)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", ErrUTF8
	}
	return string(buf), nil
}

// Unpad strips trailing padding where the last byte gives the pad length
// and every pad byte repeats it.
func Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrPadding
	}

	n := int(data[len(data)-1])
	if n == 0 || n > len(data) {
		return nil, ErrPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrPadding
		}
	}
	return data[:len(data)-n], nil
}
