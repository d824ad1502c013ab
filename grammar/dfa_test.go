package grammar

import (
	"testing"
)

func genDFAForTest(t *testing.T, src string) (*Grammar, *DFA) {
	t.Helper()
	g, err := Load(src)
	if err != nil {
		t.Fatal(err)
	}
	nfa, err := GenNFA(g)
	if err != nil {
		t.Fatal(err)
	}
	dfa, err := GenDFA(g, nfa)
	if err != nil {
		t.Fatal(err)
	}
	return g, dfa
}

func TestGenDFA(t *testing.T) {
	g, dfa := genDFAForTest(t, `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`)

	if dfa.States() == 0 {
		t.Fatal("the DFA must have at least one state")
	}

	for i, state := range dfa.states {
		if state.num.Int() != i {
			t.Errorf("state numbers must be contiguous from 0; index: %v, num: %v", i, state.num)
		}
		if len(state.items) == 0 {
			t.Errorf("state %v has no items", state.num)
		}
		for sym, target := range state.next {
			if target.Int() < 0 || target.Int() >= dfa.States() {
				t.Errorf("transition target out of range; state: %v, symbol: %v, target: %v", state.num, sym, target)
			}
			if sym == SymbolEmpty {
				t.Errorf("ε must never label a transition; state: %v", state.num)
			}
		}
		for la, item := range state.reductions {
			if !item.reducible {
				t.Errorf("a reduce binding must point at a completed item; state: %v, lookahead: %v", state.num, la)
			}
			if item.prod.lhs == g.StartSymbol() {
				t.Errorf("the start production must never be a reduce binding; state: %v", state.num)
			}
		}
	}

	// The initial state holds [E' →・E, $].
	initialHasStartItem := false
	for _, item := range dfa.states[0].items {
		if item.prod.lhs == g.StartSymbol() && item.dot == 0 {
			initialHasStartItem = true
		}
	}
	if !initialHasStartItem {
		t.Errorf("state 0 must contain the initial item")
	}

	// Exactly one state accepts.
	acceptStates := 0
	for _, state := range dfa.states {
		if state.hasAcceptItem(g.StartSymbol()) {
			acceptStates++
		}
	}
	if acceptStates != 1 {
		t.Errorf("unexpected number of accepting states; want: %v, got: %v", 1, acceptStates)
	}
}

// States that differ only in lookaheads stay distinct: the canonical
// collection performs no LALR merging. The grammar below reaches the
// completed item [A → d・] in two states, with lookahead a after d and
// with lookahead c after b d; each state keeps its own lookahead.
func TestGenDFA_NoLALRMerging(t *testing.T) {
	_, dfa := genDFAForTest(t, `
S -> A a | b A c | d c | b d a
A -> d
`)

	var reduceLookaheads []map[string]bool
	for _, state := range dfa.states {
		las := map[string]bool{}
		for _, item := range state.items {
			if item.prod.lhs == "A" && item.reducible {
				las[item.lookAhead] = true
			}
		}
		if len(las) > 0 {
			reduceLookaheads = append(reduceLookaheads, las)
		}
	}

	if len(reduceLookaheads) < 2 {
		t.Fatalf("the [A -> d・] core must appear in at least two states; got: %v", len(reduceLookaheads))
	}
	if reduceLookaheads[0]["a"] == reduceLookaheads[1]["a"] && reduceLookaheads[0]["c"] == reduceLookaheads[1]["c"] {
		t.Errorf("states with the [A -> d・] core must carry distinct lookaheads; got: %v", reduceLookaheads)
	}
}

func TestGenDFA_Deterministic(t *testing.T) {
	src := `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`
	_, dfa1 := genDFAForTest(t, src)
	_, dfa2 := genDFAForTest(t, src)

	if dfa1.States() != dfa2.States() {
		t.Fatalf("unexpected state count; want: %v, got: %v", dfa1.States(), dfa2.States())
	}
	for i := range dfa1.states {
		if dfa1.states[i].setID != dfa2.states[i].setID {
			t.Fatalf("state numbering differs at %v", i)
		}
	}
}
