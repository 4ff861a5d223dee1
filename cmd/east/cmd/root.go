package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "east",
	Short: "East runtime CLI",
	Long: `east runs and inspects programs for the East typed-IR runtime.

East programs are not written as source text — they are pre-typed IR
trees, built by a compiler elsewhere and shipped as a value tree in one
of four wire formats (east, json, beast, beast2). This tool decodes that
value tree back into IR, compiles it against the canonical built-ins (and
the native console/clock/filesystem platform calls), and calls it.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
