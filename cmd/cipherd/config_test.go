package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfig(t *testing.T) {
	p := writeConfig(t, `
server:
  port: 8080
  antidosBuckets: 64
  antidosPeriod: 50ms
  antidosMaxConcurrent: 2
  dataDir: data
  shutdownTimeout: 10s
  searchWorkers: 4
  searchTimeout: 30s
  maxCiphertext: 128
  maxShifts: 1024
db:
  file: data/db/cipherbox.db
log:
  level: debug
`)

	c, err := LoadConfig(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if c.Server.Port != 8080 || c.Server.AntidosPeriod != 50*time.Millisecond || c.Server.SearchTimeout != 30*time.Second {
		t.Fatalf("have %+v", c.Server)
	}
	if c.Server.SearchWorkers != 4 || c.Server.MaxCiphertext != 128 || c.Server.MaxShifts != 1024 {
		t.Fatalf("have %+v", c.Server)
	}
	if have, want := c.DB.File, "data/db/cipherbox.db"; have != want {
		t.Fatalf("have %s, want %s", have, want)
	}
	if have, want := c.Log.Level, "debug"; have != want {
		t.Fatalf("have %s, want %s", have, want)
	}
}

func TestLoadConfigStrict(t *testing.T) {
	p := writeConfig(t, `
server:
  port: 8080
  prot: 8081
`)

	if _, err := LoadConfig(context.Background(), p); err == nil || !strings.Contains(err.Error(), "yaml") {
		t.Fatalf("have %v, want yaml error", err)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	if _, err := LoadConfig(context.Background(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
