package cmd

import (
	"fmt"
	"os"

	"github.com/elaraai/east-go/internal/types"
	"github.com/elaraai/east-go/pkg/east"
	"github.com/spf13/cobra"
)

var encodeFormat string

var encodeCmd = &cobra.Command{
	Use:   "encode <type> <file>",
	Short: "Read east literal text for type and re-encode it in the target wire format",
	Long: `encode reads file as east literal text (the same grammar "east decode"
prints), parses it against type, and writes the value back out in the
target --format, to stdout.`,
	Args: cobra.ExactArgs(2),
	RunE: encodeValue,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().StringVarP(&encodeFormat, "format", "f", "beast2", "target encoding: east, json, beast, beast2")
}

func encodeValue(_ *cobra.Command, args []string) error {
	t, err := types.Parse(args[0])
	if err != nil {
		return fmt.Errorf("parsing type %q: %w", args[0], err)
	}
	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[1], err)
	}
	v, derr := east.Decode(data, t, east.FormatEast)
	if derr != nil {
		return fmt.Errorf("parsing east literal text: %v", derr)
	}
	format, err := parseFormat(encodeFormat)
	if err != nil {
		return err
	}
	out, derr := east.Encode(v, t, format)
	if derr != nil {
		return fmt.Errorf("encoding: %v", derr)
	}
	if _, err := os.Stdout.Write(out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
