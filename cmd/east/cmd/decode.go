package cmd

import (
	"fmt"
	"os"

	"github.com/elaraai/east-go/internal/types"
	"github.com/elaraai/east-go/pkg/east"
	"github.com/spf13/cobra"
)

var decodeFormat string

var decodeCmd = &cobra.Command{
	Use:   "decode <type> <file>",
	Short: "Decode a value from one of the four wire formats and print it as east literal text",
	Args:  cobra.ExactArgs(2),
	RunE:  decodeValue,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringVarP(&decodeFormat, "format", "f", "east", "source encoding: east, json, beast, beast2")
}

func decodeValue(_ *cobra.Command, args []string) error {
	t, err := types.Parse(args[0])
	if err != nil {
		return fmt.Errorf("parsing type %q: %w", args[0], err)
	}
	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[1], err)
	}
	format, err := parseFormat(decodeFormat)
	if err != nil {
		return err
	}
	v, derr := east.Decode(data, t, format)
	if derr != nil {
		return fmt.Errorf("decoding: %v", derr)
	}
	out, derr := east.Encode(v, t, east.FormatEast)
	if derr != nil {
		return fmt.Errorf("printing: %v", derr)
	}
	fmt.Println(string(out))
	return nil
}
