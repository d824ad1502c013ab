package grammar

import (
	"sort"
	"strings"

	"github.com/nihei9/laviz/spec"
)

// GenReport projects the grammar, the canonical collection, and the
// parsing table onto the serialisable artifact types. Every ordered field
// is emitted from sorted or declaration-ordered data, so rebuilding the
// same grammar yields byte-identical JSON.
func GenReport(g *Grammar, dfa *DFA, ptab *ParsingTable) *spec.Bundle {
	return &spec.Bundle{
		Grammar:      genGrammarReport(g),
		DFA:          genDFAReport(dfa),
		ParsingTable: genParsingTableReport(ptab),
	}
}

func genGrammarReport(g *Grammar) *spec.Grammar {
	prods := map[string][]string{}
	for _, head := range g.prods.heads {
		bodies, _ := g.prods.findByLHS(head)
		rendered := make([]string, 0, len(bodies))
		for _, prod := range bodies {
			rendered = append(rendered, strings.Join(prod.renderedRHS(), " "))
		}
		prods[head] = rendered
	}

	first := map[string][]string{}
	for _, nt := range g.NonTerminals() {
		first[nt] = g.first.findBySymbol(nt).sortedSymbols()
	}

	return &spec.Grammar{
		StartSymbol:  g.startSymbol,
		NonTerminals: g.NonTerminals(),
		Terminals:    g.Terminals(),
		Productions:  prods,
		First:        first,
	}
}

func genDFAReport(dfa *DFA) []*spec.DFAState {
	states := make([]*spec.DFAState, 0, dfa.States())
	for _, state := range dfa.states {
		items := make([]*spec.Item, 0, len(state.items))
		for _, item := range state.items {
			items = append(items, &spec.Item{
				Head:         item.prod.lhs,
				Body:         item.prod.renderedRHS(),
				DotPos:       item.dot,
				SearchSymbol: item.lookAhead,
			})
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].Head != items[j].Head {
				return items[i].Head < items[j].Head
			}
			if bi, bj := strings.Join(items[i].Body, " "), strings.Join(items[j].Body, " "); bi != bj {
				return bi < bj
			}
			if items[i].DotPos != items[j].DotPos {
				return items[i].DotPos < items[j].DotPos
			}
			return items[i].SearchSymbol < items[j].SearchSymbol
		})

		transitions := map[string]int{}
		for sym, target := range state.next {
			transitions[sym] = target.Int()
		}

		reductions := map[string]*spec.Reduction{}
		for la, item := range state.reductions {
			reductions[la] = &spec.Reduction{
				Head: item.prod.lhs,
				Body: item.prod.renderedRHS(),
			}
		}

		states = append(states, &spec.DFAState{
			ID:          state.num.Int(),
			Items:       items,
			Transitions: transitions,
			Reductions:  reductions,
		})
	}
	return states
}

func genParsingTableReport(ptab *ParsingTable) *spec.ParsingTable {
	action := map[int]map[string]string{}
	goTo := map[int]map[string]any{}
	for state := 0; state < ptab.StateCount(); state++ {
		actionRow := map[string]string{}
		for _, term := range ptab.Terminals() {
			actionRow[term] = ptab.ActionCell(state, term)
		}
		action[state] = actionRow

		goToRow := map[string]any{}
		for _, nt := range ptab.NonTerminals() {
			if registered, next := ptab.GoTo(state, nt); registered {
				goToRow[nt] = next
			} else {
				goToRow[nt] = ""
			}
		}
		goTo[state] = goToRow
	}

	rules := make([]*spec.Rule, 0, ptab.RuleCount())
	for num := 0; num < ptab.RuleCount(); num++ {
		head, _ := ptab.Rule(num)
		rules = append(rules, &spec.Rule{
			Num:  num,
			Head: head,
			Body: ptab.RuleBody(num),
		})
	}

	return &spec.ParsingTable{
		Action: action,
		GoTo:   goTo,
		Rules:  rules,
	}
}
