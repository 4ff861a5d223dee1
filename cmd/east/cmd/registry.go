package cmd

import (
	"fmt"
	"sort"

	"github.com/elaraai/east-go/pkg/east"
	"github.com/elaraai/east-go/pkg/platform/native"
	"github.com/maruel/natural"
	"github.com/spf13/cobra"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "List the built-in and platform call names a program can invoke",
	Long: `registry prints every name CallBuiltin and CallPlatform nodes can
reference: the canonical pure built-ins, plus the native console/clock/
filesystem platform calls this CLI wires into every run.`,
	RunE: showRegistry,
}

func init() {
	rootCmd.AddCommand(registryCmd)
}

func showRegistry(_ *cobra.Command, _ []string) error {
	engine, err := east.New()
	if err != nil {
		return fmt.Errorf("building engine: %w", err)
	}
	if err := native.NewPlatform().RegisterAll(engine.PlatformRegistry()); err != nil {
		return fmt.Errorf("registering native platform: %w", err)
	}

	builtins := engine.BuiltinNames()
	sort.Sort(natural.StringSlice(builtins))
	fmt.Println("Built-ins:")
	for _, name := range builtins {
		fmt.Printf("  %s\n", name)
	}

	platforms := engine.PlatformNames()
	sort.Sort(natural.StringSlice(platforms))
	fmt.Println("Platform calls:")
	for _, name := range platforms {
		fmt.Printf("  %s\n", name)
	}
	return nil
}
