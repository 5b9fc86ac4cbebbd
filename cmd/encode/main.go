package main

import (
	"cipherbox/internal/numbers"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) <= 1 {
		fmt.Println("Usage: encode <digits> [key]")
		return
	}

	key := numbers.DefaultKey
	if len(os.Args) > 2 {
		key = os.Args[2]
	}

	c, err := numbers.EncodeKey(os.Args[1], key)
	if err != nil {
		fmt.Println("Encode error:")
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Println(c)
}
