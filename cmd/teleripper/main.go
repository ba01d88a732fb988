package main

import (
	"fmt"
	"os"
	"runtime/debug"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "An unexpected error occurred: %v\n%s", r, debug.Stack())
			os.Exit(2)
		}
	}()

	Execute()
}
