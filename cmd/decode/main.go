package main

import (
	"cipherbox/internal/numbers"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
)

func main() {
	workers := flag.Int("workers", runtime.NumCPU(), "parallel searches")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: decode [-workers n] <ciphertext>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	plaintexts, err := numbers.ReverseContext(ctx, flag.Arg(0), *workers)
	if err != nil {
		fmt.Println("Decode error:")
		fmt.Println(err)
		os.Exit(1)
	}
	if len(plaintexts) == 0 {
		fmt.Println("No plaintext encodes to this ciphertext.")
		os.Exit(1)
	}
	for _, p := range plaintexts {
		fmt.Println(p)
	}
}
