package grammar

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/emirpasic/gods/sets/hashset"
)

// maxDFAStates bounds the canonical collection size for one build.
const maxDFAStates = 5000

// dfaState is one state of the canonical LR(1) collection: a non-empty set
// of item states, frozen into an identity over the full items (lookaheads
// included — no LALR merging). num is assigned in discovery order.
type dfaState struct {
	num        stateNum
	setID      itemSetID
	items      []*lrItem // sorted by item ID
	nfaStates  []*nfaState
	next       map[string]stateNum
	reductions map[string]*lrItem
}

// hasAcceptItem reports whether the state contains [S' → S・, $].
func (s *dfaState) hasAcceptItem(startSymbol string) bool {
	for _, item := range s.items {
		if item.prod.lhs == startSymbol && item.reducible && item.lookAhead == SymbolEOF {
			return true
		}
	}
	return false
}

// DFA is the canonical collection of LR(1) item sets. States are indexed
// by their number; numbers are contiguous from 0 in discovery order.
type DFA struct {
	states []*dfaState
}

// States returns the number of states in the collection.
func (d *DFA) States() int {
	return len(d.states)
}

type dfaBuilder struct {
	g     *Grammar
	known map[itemSetID]*dfaState
	all   []*dfaState
}

// GenDFA subset-constructs the canonical collection from the item graph.
func GenDFA(g *Grammar, nfa *NFA) (*DFA, error) {
	b := &dfaBuilder{
		g:     g,
		known: map[itemSetID]*dfaState{},
	}

	initial := b.getOrCreateState(epsilonClosure([]*nfaState{nfa.initial}))

	queue := []*dfaState{initial}
	processed := map[itemSetID]struct{}{}
	for len(queue) > 0 {
		state := queue[0]
		queue = queue[1:]

		if _, done := processed[state.setID]; done {
			continue
		}
		processed[state.setID] = struct{}{}

		if len(b.all) > maxDFAStates {
			return nil, &OversizeError{Kind: "DFA states", Limit: maxDFAStates}
		}

		// The candidate transition labels are the shift labels leaving any
		// member item. Sorted iteration keeps state numbering reproducible
		// between runs.
		labels := map[string]struct{}{}
		for _, ns := range state.nfaStates {
			if ns.shiftSymbol != "" {
				labels[ns.shiftSymbol] = struct{}{}
			}
		}
		symbols := make([]string, 0, len(labels))
		for sym := range labels {
			symbols = append(symbols, sym)
		}
		sort.Strings(symbols)

		for _, sym := range symbols {
			var moved []*nfaState
			for _, ns := range state.nfaStates {
				if ns.shiftSymbol == sym {
					moved = append(moved, ns.shift)
				}
			}

			target := b.getOrCreateState(epsilonClosure(moved))
			state.next[sym] = target.num
			queue = append(queue, target)
		}
	}

	log.Debug("DFA built", "states", len(b.all))

	return &DFA{states: b.all}, nil
}

// epsilonClosure is the least superset of the given states closed under
// ε-edges.
func epsilonClosure(states []*nfaState) []*nfaState {
	closure := hashset.New()
	var order []*nfaState

	queue := append([]*nfaState{}, states...)
	for _, s := range states {
		closure.Add(s)
	}
	for len(queue) > 0 {
		state := queue[0]
		queue = queue[1:]
		order = append(order, state)

		for _, target := range state.epsilons {
			if closure.Contains(target) {
				continue
			}
			closure.Add(target)
			queue = append(queue, target)
		}
	}

	return order
}

func (b *dfaBuilder) getOrCreateState(nfaStates []*nfaState) *dfaState {
	items := make([]*lrItem, 0, len(nfaStates))
	for _, ns := range nfaStates {
		items = append(items, ns.item)
	}
	items = sortItems(items)
	setID := genItemSetID(items)

	if state, ok := b.known[setID]; ok {
		return state
	}

	// Reduce bindings: every member item with the dot at the end of a
	// non-start production reduces on its lookahead. Competing bindings on
	// one lookahead surface as a reduce/reduce conflict during table
	// construction; the binding map itself keeps the last item in item-ID
	// order, which is deterministic.
	reductions := map[string]*lrItem{}
	for _, item := range items {
		if item.reducible && item.prod.lhs != b.g.startSymbol {
			reductions[item.lookAhead] = item
		}
	}

	state := &dfaState{
		num:        stateNum(len(b.all)),
		setID:      setID,
		items:      items,
		nfaStates:  nfaStates,
		next:       map[string]stateNum{},
		reductions: reductions,
	}
	b.known[setID] = state
	b.all = append(b.all, state)
	return state
}
