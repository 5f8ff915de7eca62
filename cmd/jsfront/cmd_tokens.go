package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jsfront/js/tree"
)

func newTokensCmd() *cobra.Command {
	var sourceType string
	var includeTrivia bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens of a file, one per line",
		Long: "Print the tokens of a file in source order. Tokens are taken from the\n" +
			"parsed tree, so regular expressions, template parts and JSX text are\n" +
			"lexed the way the parser saw them.",
		Args: cobra.ExactArgs(1),
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
			t.Root.Walk(func(n *tree.Node) bool {
				if !n.IsToken() || (n.IsTrivia() && !includeTrivia) {
					return true
				}
				fmt.Fprintf(out, "%-24s %-10s %q\n", n.Kind, n.Range, n.Token)
				return true
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceType, "source-type", "t", "", "source type (js, script, jsx, ts, tsx, d.ts); defaults to the file extension")
	cmd.Flags().BoolVar(&includeTrivia, "trivia", false, "include whitespace and comments")

	return cmd
}
