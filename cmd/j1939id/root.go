package main

import (
	"fmt"
	"github.com/spf13/cobra"
	"io"
	"log"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

type rootFlags struct {
	output  string
	noColor bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "j1939id",
		Short: "J1939 CAN ID parser and generator",
		Long: `Decode J1939 29-bit CAN identifiers into priority, reserved bit, data page,
PDU format, PDU specific, source address and PGN, or build identifier from them.`,
		Example: `  Parse a CAN ID:
    j1939id parse 0x18FEF100

  Generate a CAN ID from components:
    j1939id generate --priority 6 --pgn 65262 --source-address 0x00`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch flags.output {
			case outputText, outputJSON, outputYAML:
				return nil
			default:
				return fmt.Errorf("unknown output format type given: %q (text, json, yaml)", flags.output)
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.output, "output", "o", outputText, "output format (text, json, yaml)")
	cmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable colored text output")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log notes about PDU1 identifiers and truncated values to stderr")

	cmd.AddCommand(newParseCmd(flags))
	cmd.AddCommand(newGenerateCmd(flags))

	return cmd
}

func (f *rootFlags) logger(cmd *cobra.Command) *log.Logger {
	if !f.verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(cmd.ErrOrStderr(), "# ", 0)
}

func (f *rootFlags) printer(cmd *cobra.Command) *printer {
	return newPrinter(cmd.OutOrStdout(), f.output, f.noColor)
}
