package main

import (
	"fmt"
	"os"

	"github.com/cmkilger/goabnf/parser"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "check <grammar-file>",
		Short:   "Check that a grammar file is well-formed ABNF",
		Example: `  abnf check name-part.abnf`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCheck,
	}
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(cmd, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "ok: %d rule(s)\n", len(g.Rules))
	return nil
}
