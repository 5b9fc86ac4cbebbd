package main

import (
	"cipherbox/internal/ctxlog"
	"cipherbox/internal/db"
	"cipherbox/internal/rec"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goccy/go-yaml"
)

type Config struct {
	DB db.Config `yaml:"db"`
}

func loadConfig(ctx context.Context, filename string) (Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Config{}, fmt.Errorf("open %q: %w", filename, err)
	}
	defer ctxlog.Close(ctx, "config file", file)

	// Not strict: the file is shared with the server and carries its settings too.
	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, fmt.Errorf("yaml: %w", err)
	}

	return config, nil
}

func run(ctx context.Context, config string) (err error) {
	defer rec.Wrap(&err, "solutions: %w")

	c, err := loadConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	db.Open(c.DB)
	defer ctxlog.Close(ctx, "db", db.Closer())

	for ciphertext, s := range db.All() {
		fmt.Printf("%s\t%s\t%s\t%d hits\t%s\n",
			ciphertext,
			s.SolvedAt.Format("2006-01-02 15:04:05"),
			s.Duration,
			s.Hits,
			strings.Join(s.Plaintexts, ","),
		)
	}

	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	config := "config.yaml"
	if len(os.Args) > 1 {
		config = os.Args[1]
	}

	err := run(ctx, config)
	if err != nil {
		ctxlog.Get(ctx).Error("failed to list solutions", "error", err)
		os.Exit(1)
	}
}
