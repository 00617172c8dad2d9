package main

import (
	"fmt"

	"github.com/cmkilger/goabnf/corerule"
	"github.com/spf13/cobra"
)

func encodingFromFlags(cmd *cobra.Command) (corerule.Encoding, error) {
	name, err := cmd.Flags().GetString("encoding")
	if err != nil {
		return 0, err
	}
	switch name {
	case "ascii", "":
		return corerule.EncodingASCII, nil
	case "latin1":
		return corerule.EncodingLatin1, nil
	case "unicode":
		return corerule.EncodingUnicode, nil
	default:
		return 0, fmt.Errorf("unknown encoding %q: want ascii, latin1, or unicode", name)
	}
}

func unixNewlinesFromFlags(cmd *cobra.Command) (bool, error) {
	no, err := cmd.Flags().GetBool("no-unix-newlines")
	if err != nil {
		return false, err
	}
	return !no, nil
}
