// Package laviz builds canonical LR(1) parsers from context-free grammars
// and exposes every intermediate artifact — FIRST sets, the LR(1) item
// graph, the subset-construction DFA, the ACTION/GOTO tables, and the
// step-by-step parse run — in a form suitable for visualisation.
package laviz

import (
	"github.com/nihei9/laviz/driver"
	"github.com/nihei9/laviz/grammar"
	"github.com/nihei9/laviz/spec"
)

// Analyze runs the full pipeline: grammar loading, item-graph and DFA
// construction, table synthesis, and one parse of the input. Construction
// failures (malformed grammars, conflicts, oversize builds) return an
// error; a rejected input does not — the rejection lives inside the
// bundle's parse result, trace included.
func Analyze(grammarSrc, input string) (*spec.Bundle, error) {
	g, err := grammar.Load(grammarSrc)
	if err != nil {
		return nil, err
	}

	nfa, err := grammar.GenNFA(g)
	if err != nil {
		return nil, err
	}

	dfa, err := grammar.GenDFA(g, nfa)
	if err != nil {
		return nil, err
	}

	ptab, err := grammar.GenParsingTable(g, dfa)
	if err != nil {
		return nil, err
	}

	bundle := grammar.GenReport(g, dfa, ptab)
	bundle.ParseResult = driver.NewParser(ptab).Parse(input)

	return bundle, nil
}
