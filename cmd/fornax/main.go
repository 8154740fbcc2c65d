package main

import (
	"fmt"
	"os"

	"github.com/sinterlabs/fornax/internal/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Run(version); err != nil {
		// Flag parse errors are already printed by go-flags.
		if !cli.IsFlagsError(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
