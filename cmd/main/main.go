package main

import (
	"errors"
	"fmt"
	"os"
)

// errReported marks failures that were already printed.
var errReported = errors.New("reported")

// -----------------------------------------------------------------------------

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
