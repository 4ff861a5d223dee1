package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/elaraai/east-go/internal/ir"
	"github.com/elaraai/east-go/internal/registry"
	"github.com/elaraai/east-go/internal/types"
	"github.com/elaraai/east-go/internal/values"
	"github.com/elaraai/east-go/pkg/east"
	"github.com/elaraai/east-go/pkg/platform/native"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

var (
	runFormat           string
	runArgs             []string
	runPlatformManifest string
)

// platformManifest selects which of pkg/platform/native's call groups a
// run should register, read from a YAML file via --platform-manifest.
// Registering every group is the default, matching a run with no manifest
// at all.
type platformManifest struct {
	Groups []string `yaml:"groups"`
}

func registerNativePlatform(reg *registry.PlatformRegistry, manifestPath string) error {
	p := native.NewPlatform()
	if manifestPath == "" {
		return p.RegisterAll(reg)
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("reading platform manifest %s: %w", manifestPath, err)
	}
	var manifest platformManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return fmt.Errorf("parsing platform manifest %s: %w", manifestPath, err)
	}

	for _, group := range manifest.Groups {
		switch group {
		case "console":
			if err := p.Console.Register(reg); err != nil {
				return err
			}
		case "clock":
			if err := native.RegisterClock(reg, p.Clock); err != nil {
				return err
			}
		case "filesystem":
			if err := native.RegisterFileSystem(reg); err != nil {
				return err
			}
		default:
			return fmt.Errorf("platform manifest %s: unknown group %q (want console, clock, or filesystem)", manifestPath, group)
		}
	}
	return nil
}

var runCmd = &cobra.Command{
	Use:   "run <program-file>",
	Short: "Decode, compile, and call an East program",
	Long: `run decodes a program file (the value-tree encoding of a top-level
Function or AsyncFunction, per the Loader API) in the given wire format,
compiles it against the canonical built-ins and the native console/clock/
filesystem platform calls, and calls it.

Examples:
  # Run a program encoded in the human-readable east format
  east run program.east

  # Run a beast2-encoded program with two call arguments
  east run program.beast2 --format beast2 --arg Integer=40 --arg Integer=2`,
	Args: cobra.ExactArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFormat, "format", "f", "east", "program encoding: east, json, beast, beast2")
	runCmd.Flags().StringArrayVar(&runArgs, "arg", nil, `call argument as "Type=value" (East literal syntax), may be repeated`)
	runCmd.Flags().StringVar(&runPlatformManifest, "platform-manifest", "", "YAML file naming which native platform groups (console, clock, filesystem) to register; default is all three")
}

func parseFormat(name string) (east.Format, error) {
	switch strings.ToLower(name) {
	case "east":
		return east.FormatEast, nil
	case "json":
		return east.FormatJSON, nil
	case "beast":
		return east.FormatBeast, nil
	case "beast2":
		return east.FormatBeast2, nil
	default:
		return 0, fmt.Errorf("unknown format %q (want east, json, beast, or beast2)", name)
	}
}

// parseCallArg parses one --arg flag of the form "Type=value" into a typed
// Value, using the east codec's literal grammar for the value half.
func parseCallArg(spec string) (values.Value, error) {
	typeStr, valueStr, ok := strings.Cut(spec, "=")
	if !ok {
		return nil, fmt.Errorf("--arg %q: expected \"Type=value\"", spec)
	}
	t, err := types.Parse(typeStr)
	if err != nil {
		return nil, fmt.Errorf("--arg %q: %w", spec, err)
	}
	v, derr := east.Decode([]byte(valueStr), t, east.FormatEast)
	if derr != nil {
		return nil, fmt.Errorf("--arg %q: %v", spec, derr)
	}
	return v, nil
}

func runProgram(_ *cobra.Command, args []string) error {
	filename := args[0]
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	format, err := parseFormat(runFormat)
	if err != nil {
		return err
	}

	nodeVal, derr := east.Decode(data, ir.NodeType(), format)
	if derr != nil {
		return fmt.Errorf("decoding IR: %v", derr)
	}
	top, derr := ir.FromValue(nodeVal)
	if derr != nil {
		return fmt.Errorf("reconstructing IR: %v", derr)
	}

	engine, err := east.New()
	if err != nil {
		return fmt.Errorf("building engine: %w", err)
	}
	if err := registerNativePlatform(engine.PlatformRegistry(), runPlatformManifest); err != nil {
		return err
	}

	program, err := engine.Compile(top)
	if err != nil {
		return fmt.Errorf("compiling program: %w", err)
	}
	defer program.Release()

	callArgs := make([]values.Value, 0, len(runArgs))
	for _, spec := range runArgs {
		v, err := parseCallArg(spec)
		if err != nil {
			return err
		}
		callArgs = append(callArgs, v)
	}

	res := program.Call(callArgs...)
	if res.IsError() {
		return fmt.Errorf("%v", res.Error())
	}
	if res.Value() != values.Null {
		fmt.Println(res.Value())
	}
	return nil
}
