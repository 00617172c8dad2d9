package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cmkilger/goabnf/validator"
	"github.com/spf13/cobra"
)

var validateFlags = struct {
	entry *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "validate <grammar-file> <input-file>",
		Short:   "Validate an input file against a rule of a grammar",
		Example: `  abnf validate name-part.abnf name.txt --entry name-part`,
		Args:    cobra.ExactArgs(2),
		RunE:    runValidate,
	}
	validateFlags.entry = cmd.Flags().String("entry", "", "entry rule name (default: the first rule in the grammar)")
	rootCmd.AddCommand(cmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(cmd, args[0])
	if err != nil {
		return err
	}

	input, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("cannot open input file %s: %w", args[1], err)
	}

	unix, err := unixNewlinesFromFlags(cmd)
	if err != nil {
		return err
	}
	enc, err := encodingFromFlags(cmd)
	if err != nil {
		return err
	}

	opts := []validator.Option{validator.WithUnixNewlines(unix), validator.WithEncoding(enc)}
	if *validateFlags.entry != "" {
		opts = append(opts, validator.WithEntry(*validateFlags.entry))
	}

	tree, err := validator.Validate(g, string(input), opts...)
	if err != nil {
		return err
	}

	printTree(os.Stdout, tree, 0)
	return nil
}

func printTree(w *os.File, t *validator.ParseTree, depth int) {
	fmt.Fprintf(w, "%s%s %d-%d %q\n", strings.Repeat("  ", depth), t.Element.Kind, t.Start, t.End, t.MatchedText)
	for _, c := range t.Children {
		printTree(w, c, depth+1)
	}
}
