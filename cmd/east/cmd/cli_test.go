package cmd_test

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/elaraai/east-go/cmd/east/cmd"
)

// TestMain lets testscript re-exec this test binary as the "east" command
// inside each script, the same txtar-script approach cobra-based CLIs in
// this ecosystem commonly adopt for end-to-end coverage.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"east": runEast,
	}))
}

func runEast() int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func TestCLIScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
