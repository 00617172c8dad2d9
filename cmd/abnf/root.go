package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "abnf",
	Short: "Parse and validate against RFC 5234/7405 ABNF grammars",
	Long: `abnf provides two features:
- Checks that a grammar file is well-formed ABNF.
- Validates an input string against a rule of the grammar, printing the
  resulting parse tree or a precise diagnostic.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().Bool("no-unix-newlines", false, "require CRLF line endings in the grammar and core CRLF rule")
	rootCmd.PersistentFlags().String("encoding", "ascii", "character encoding: ascii, latin1, or unicode")
}
