package main

import (
	"cipherbox/internal/ctxlog"
	"cipherbox/internal/db"
	"cipherbox/internal/rec"
	"cipherbox/internal/server"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func run(ctx context.Context, configFile string) (err error) {
	defer rec.Error(&err)

	c, err := LoadConfig(ctx, configFile)
	if err != nil {
		return fmt.Errorf("config %q: %w", configFile, err)
	}
	if err := ctxlog.Apply(c.Log); err != nil {
		return err
	}

	ctx = ctxlog.With(ctx, "config", configFile)
	logger := ctxlog.Get(ctx)

	logger.Info("opening solution cache", "file", c.DB.File)
	db.Open(c.DB)
	defer ctxlog.Close(ctx, "solution cache", db.Closer())

	srv := server.New(c.Server)
	logger.Info("serving", "host", c.Server.Host, "port", c.Server.Port)
	return srv.Run(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A second signal kills the process instead of waiting for shutdown.
	go func() {
		<-ctx.Done()
		stop()
	}()

	ctx = ctxlog.Setup(ctx, "cipherd")
	logger := ctxlog.Get(ctx)

	configFile := "config.yaml"
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}

	if err := run(ctx, configFile); err != nil {
		logger.Error("cipherd stopped unexpectedly", "error", err)
		os.Exit(1)
	}
	logger.Info("cipherd stopped")
}
