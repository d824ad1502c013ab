package grammar

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
)

// maxNFAItems bounds the item universe explored by one build. The limit is
// far above anything a hand-written teaching grammar produces.
const maxNFAItems = 20000

// nfaState wraps exactly one LR(1) item. It carries at most one labelled
// shift edge (over the symbol right of the dot) and the set of ε-edges to
// the closure items. Identity is the item's identity.
type nfaState struct {
	item        *lrItem
	shiftSymbol string
	shift       *nfaState
	epsilons    []*nfaState
}

// NFA is the non-deterministic LR(1) item graph. States are listed in
// discovery order; the graph may contain cycles through ε-edges, so
// traversals use visited sets rather than ownership.
type NFA struct {
	initial *nfaState
	states  []*nfaState
}

// States returns the number of item states in the graph.
func (n *NFA) States() int {
	return len(n.states)
}

type nfaBuilder struct {
	g      *Grammar
	states map[lrItemID]*nfaState
	order  []*nfaState
}

// GenNFA builds the LR(1) item graph for a grammar, starting from the
// initial item [S' →・S, $].
func GenNFA(g *Grammar) (*NFA, error) {
	b := &nfaBuilder{
		g:      g,
		states: map[lrItemID]*nfaState{},
	}

	startProds, ok := g.prods.findByLHS(g.startSymbol)
	if !ok || len(startProds) == 0 {
		return nil, fmt.Errorf("the start production was not found; start symbol: %v", g.startSymbol)
	}
	initialItem, err := newLRItem(startProds[0], 0, SymbolEOF)
	if err != nil {
		return nil, err
	}
	initial := b.getOrCreateState(initialItem)

	queue := []*nfaState{initial}
	processed := map[lrItemID]struct{}{}
	for len(queue) > 0 {
		state := queue[0]
		queue = queue[1:]

		if _, done := processed[state.item.id]; done {
			continue
		}
		processed[state.item.id] = struct{}{}

		if len(b.order) > maxNFAItems {
			return nil, &OversizeError{Kind: "LR(1) items", Limit: maxNFAItems}
		}

		item := state.item
		if item.dottedSymbol == "" {
			continue
		}

		// Shift edge: advance the dot over the dotted symbol.
		next, err := newLRItem(item.prod, item.dot+1, item.lookAhead)
		if err != nil {
			return nil, err
		}
		target := b.getOrCreateState(next)
		state.shiftSymbol = item.dottedSymbol
		state.shift = target
		queue = append(queue, target)

		// Closure edges: for an item [A → α・X β, a] with X a
		// non-terminal, spawn [X →・γ, b] for every production X → γ and
		// every b ∈ FIRST(β a) \ {ε}.
		if !g.IsNonTerminal(item.dottedSymbol) {
			continue
		}

		seq := append([]string{}, item.prod.rhs[item.dot+1:]...)
		seq = append(seq, item.lookAhead)
		lookAheads := g.first.sequence(seq)

		las := make([]string, 0, len(lookAheads.symbols))
		for la := range lookAheads.symbols {
			las = append(las, la)
		}
		sort.Strings(las)

		prods, _ := g.prods.findByLHS(item.dottedSymbol)
		for _, prod := range prods {
			for _, la := range las {
				closureItem, err := newLRItem(prod, 0, la)
				if err != nil {
					return nil, err
				}
				closureTarget := b.getOrCreateState(closureItem)
				state.epsilons = append(state.epsilons, closureTarget)
				queue = append(queue, closureTarget)
			}
		}
	}

	log.Debug("NFA built", "items", len(b.order))

	return &NFA{
		initial: initial,
		states:  b.order,
	}, nil
}

func (b *nfaBuilder) getOrCreateState(item *lrItem) *nfaState {
	if state, ok := b.states[item.id]; ok {
		return state
	}
	state := &nfaState{item: item}
	b.states[item.id] = state
	b.order = append(b.order, state)
	return state
}
