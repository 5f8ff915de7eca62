package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var sourceType string
	var includeTrivia bool
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file and dump its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(args[0], sourceType)
			if err != nil {
				return err
			}
			t, err := in.parse()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch outputFormat {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(t); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				return nil
			case "tree":
				switch {
				case includePositions:
					fmt.Fprint(out, t.Root.StringWithPositions())
				case includeTrivia:
					fmt.Fprint(out, t.Root.String())
				default:
					fmt.Fprint(out, t.Root.StringWithoutTrivia())
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			return printDiagnostics(cmd.ErrOrStderr(), in.name, in.source, t.Diagnostics)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json)")
	cmd.Flags().StringVarP(&sourceType, "source-type", "t", "", "source type (js, script, jsx, ts, tsx, d.ts); defaults to the file extension")
	cmd.Flags().BoolVar(&includeTrivia, "trivia", true, "include whitespace and comments in tree output")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include byte ranges in tree output")

	return cmd
}
