package grammar

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/emirpasic/gods/sets/treeset"

	lverror "github.com/nihei9/laviz/error"
)

const (
	// SymbolEOF is the end-of-input marker. It is always a member of the
	// terminal set and is the only symbol the ACTION table accepts after
	// the last input token.
	SymbolEOF = "$"

	// SymbolEmpty is the empty-string marker. It may appear in production
	// bodies and FIRST sets but never labels a transition and never
	// indexes the ACTION table.
	SymbolEmpty = "ε"

	emptyAltToken = "''"
	arrowToken    = "->"
	altSeparator  = "|"
)

// Grammar is a context-free grammar augmented with a fresh start symbol.
// It is built once per analysis and read-only afterwards.
type Grammar struct {
	prods         *productionSet
	startSymbol   string // the augmented start symbol S'
	originalStart string
	terminals     *treeset.Set
	nonTerminals  *treeset.Set
	first         *firstSet
}

// Load parses grammar source text. A line is blank (ignored), free text
// without "->" (ignored), or `HEAD -> ALT ( | ALT )*` where each ALT is a
// whitespace-separated symbol sequence or '' denoting ε.
func Load(src string) (*Grammar, error) {
	prods := newProductionSet()
	hasEmptyProd := false

	for row, rawLine := range strings.Split(src, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || !strings.Contains(line, arrowToken) {
			continue
		}

		lhsText, rhsText, _ := strings.Cut(line, arrowToken)
		head := strings.TrimSpace(lhsText)
		if head == "" {
			return nil, &lverror.SpecError{
				Cause: &InvalidGrammarError{Reason: "a rule line has an empty head"},
				Row:   row + 1,
				Line:  line,
			}
		}

		for _, altText := range strings.Split(rhsText, altSeparator) {
			syms := strings.Fields(altText)
			if len(syms) == 0 || (len(syms) == 1 && syms[0] == emptyAltToken) {
				syms = nil
				hasEmptyProd = true
			}

			prod, err := newProduction(head, syms)
			if err != nil {
				return nil, err
			}
			prods.append(prod)
		}
	}

	if len(prods.heads) == 0 {
		return nil, &InvalidGrammarError{Reason: "no rules are defined"}
	}

	nonTerminals := treeset.NewWithStringComparator()
	for _, head := range prods.heads {
		nonTerminals.Add(head)
	}

	terminals := treeset.NewWithStringComparator()
	terminals.Add(SymbolEOF)
	if hasEmptyProd {
		terminals.Add(SymbolEmpty)
	}
	for _, prod := range prods.getAllProductions() {
		for _, sym := range prod.rhs {
			if !nonTerminals.Contains(sym) {
				terminals.Add(sym)
			}
		}
	}

	// Augment the grammar with a fresh start symbol. When the declared
	// start already ends in an apostrophe the suffix is extended until
	// the name is unused.
	originalStart := prods.heads[0]
	startSymbol := originalStart + "'"
	for nonTerminals.Contains(startSymbol) || terminals.Contains(startSymbol) {
		startSymbol += "'"
	}
	nonTerminals.Add(startSymbol)

	startProd, err := newProduction(startSymbol, []string{originalStart})
	if err != nil {
		return nil, err
	}
	prods.append(startProd)

	first, err := genFirstSet(prods)
	if err != nil {
		return nil, err
	}

	log.Debug("grammar loaded",
		"non_terminals", nonTerminals.Size(),
		"terminals", terminals.Size(),
		"start", startSymbol)

	return &Grammar{
		prods:         prods,
		startSymbol:   startSymbol,
		originalStart: originalStart,
		terminals:     terminals,
		nonTerminals:  nonTerminals,
		first:         first,
	}, nil
}

// StartSymbol returns the augmented start symbol S'.
func (g *Grammar) StartSymbol() string {
	return g.startSymbol
}

// OriginalStart returns the head of the first declared rule.
func (g *Grammar) OriginalStart() string {
	return g.originalStart
}

func (g *Grammar) IsNonTerminal(sym string) bool {
	return g.nonTerminals.Contains(sym)
}

func (g *Grammar) IsTerminal(sym string) bool {
	return g.terminals.Contains(sym)
}

// Terminals returns the terminal symbols in sorted order, including the
// end-of-input marker.
func (g *Grammar) Terminals() []string {
	return symbolSlice(g.terminals)
}

// NonTerminals returns the non-terminal symbols in sorted order,
// including the augmented start symbol.
func (g *Grammar) NonTerminals() []string {
	return symbolSlice(g.nonTerminals)
}

func symbolSlice(set *treeset.Set) []string {
	syms := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		syms = append(syms, v.(string))
	}
	return syms
}
