package codec

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{
		"",
		"a",
		`{"data":"a","algo":"test"}`,
		strings.Repeat("abcdef", 1000),
		"żółć 🧩 ünïcödé",
	} {
		enc, err := Compress(s)
		if err != nil {
			t.Fatal(err)
		}
		if strings.ContainsAny(enc, "+/=") {
			t.Fatalf("%q is not unpadded URL safe base64", enc)
		}

		dec, err := Decompress(enc)
		if err != nil {
			t.Fatal(err)
		}
		if dec != s {
			t.Fatalf("have %q, want %q", dec, s)
		}
	}
}

func TestRand(t *testing.T) {
	for range 50 {
		r := make([]rune, rand.IntN(200))
		for i := range r {
			r[i] = rand.Int32N(0xD000)
		}
		s := string(r)

		enc, err := Compress(s)
		if err != nil {
			t.Fatal(err)
		}
		dec, err := Decompress(enc)
		if err != nil {
			t.Fatal(err)
		}
		if dec != s {
			t.Fatalf("have %q, want %q", dec, s)
		}
	}
}

func TestCompresses(t *testing.T) {
	s := strings.Repeat("puzzle ", 500)
	enc, err := Compress(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(enc) >= len(s)/10 {
		t.Fatalf("%d bytes compressed to %d", len(s), len(enc))
	}
}

func TestDecompressInvalid(t *testing.T) {
	if _, err := Decompress("not base64!"); err == nil {
		t.Fatal("invalid base64 accepted")
	}
	if _, err := Decompress("AAAA"); err == nil {
		t.Fatal("invalid deflate stream accepted")
	}

	enc, err := Compress("\xff\xfe")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decompress(enc); !errors.Is(err, ErrUTF8) {
		t.Fatalf("have %v, want %v", err, ErrUTF8)
	}
}
