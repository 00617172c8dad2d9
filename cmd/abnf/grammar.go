package main

import (
	"fmt"
	"os"

	"github.com/cmkilger/goabnf/element"
	"github.com/cmkilger/goabnf/parser"
	"github.com/spf13/cobra"
)

func readGrammar(cmd *cobra.Command, path string) (*element.Grammar, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open grammar file %s: %w", path, err)
	}

	unix, err := unixNewlinesFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	enc, err := encodingFromFlags(cmd)
	if err != nil {
		return nil, err
	}

	return parser.Parse(string(src), parser.WithUnixNewlines(unix), parser.WithEncoding(enc))
}
