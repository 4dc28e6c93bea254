// Command shapewrap renders decorative shapes and their shape-outside
// wrap masks.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/shapewrap/cmd/shapewrap/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
