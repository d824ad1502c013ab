package driver

import (
	"strings"

	"github.com/nihei9/laviz/grammar"
)

// tokenize splits the input into terminal tokens and appends the
// end-of-input marker. A pre-pass inserts whitespace around `,` so
// grammars using the comma as a lexical token do not require pre-spaced
// input; no other lexical rewriting is performed.
func tokenize(src string) []string {
	src = strings.ReplaceAll(src, ",", " , ")
	toks := strings.Fields(src)
	return append(toks, grammar.SymbolEOF)
}
