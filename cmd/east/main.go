// Command east is a CLI front end for the East runtime: it decodes a
// program encoded in one of the four wire formats, compiles it, calls it,
// and prints the result — plus standalone encode/decode/registry helpers
// for inspecting values and the built-in call surface.
package main

import (
	"fmt"
	"os"

	"github.com/elaraai/east-go/cmd/east/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
