package grammar

import (
	"testing"
)

type first struct {
	lhs     string
	symbols []string
	empty   bool
}

func TestGenFirstSet(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		first   []first
	}{
		{
			caption: "productions contain only non-empty productions",
			src: `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`,
			first: []first{
				{lhs: "E'", symbols: []string{"(", "id"}},
				{lhs: "E", symbols: []string{"(", "id"}},
				{lhs: "T", symbols: []string{"(", "id"}},
				{lhs: "F", symbols: []string{"(", "id"}},
			},
		},
		{
			caption: "an ε-production admits the empty string",
			src:     `S -> ( S ) | ''`,
			first: []first{
				{lhs: "S'", symbols: []string{"("}, empty: true},
				{lhs: "S", symbols: []string{"("}, empty: true},
			},
		},
		{
			caption: "a nullable prefix exposes the following symbol",
			src: `
S -> A B
A -> a | ''
B -> b
`,
			first: []first{
				{lhs: "S'", symbols: []string{"a", "b"}},
				{lhs: "S", symbols: []string{"a", "b"}},
				{lhs: "A", symbols: []string{"a"}, empty: true},
				{lhs: "B", symbols: []string{"b"}},
			},
		},
		{
			caption: "a fully nullable body admits the empty string",
			src: `
S -> A A
A -> ''
`,
			first: []first{
				{lhs: "S'", symbols: []string{}, empty: true},
				{lhs: "S", symbols: []string{}, empty: true},
				{lhs: "A", symbols: []string{}, empty: true},
			},
		},
		{
			caption: "left recursion terminates",
			src:     `L -> L , id | id`,
			first: []first{
				{lhs: "L'", symbols: []string{"id"}},
				{lhs: "L", symbols: []string{"id"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g, err := Load(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			for _, want := range tt.first {
				e := g.first.findBySymbol(want.lhs)
				if e == nil {
					t.Fatalf("a FIRST entry was not found; symbol: %v", want.lhs)
				}
				if e.empty != want.empty {
					t.Errorf("unexpected ε membership for %v; want: %v, got: %v", want.lhs, want.empty, e.empty)
				}
				if len(e.symbols) != len(want.symbols) {
					t.Fatalf("unexpected FIRST(%v); want: %v, got: %v", want.lhs, want.symbols, e.sortedSymbols())
				}
				for _, sym := range want.symbols {
					if _, ok := e.symbols[sym]; !ok {
						t.Errorf("FIRST(%v) must contain %v; got: %v", want.lhs, sym, e.sortedSymbols())
					}
				}
			}
		})
	}
}

func TestFirstSequence(t *testing.T) {
	g, err := Load(`
S -> A B
A -> a | ''
B -> b
`)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		caption string
		seq     []string
		symbols []string
		empty   bool
	}{
		{
			caption: "the empty sequence has FIRST = {ε}",
			seq:     nil,
			symbols: []string{},
			empty:   true,
		},
		{
			caption: "a terminal contributes itself and stops the scan",
			seq:     []string{"b", "a"},
			symbols: []string{"b"},
		},
		{
			caption: "a nullable symbol exposes its successor",
			seq:     []string{"A", "b"},
			symbols: []string{"a", "b"},
		},
		{
			caption: "a sequence of nullable symbols admits the empty string",
			seq:     []string{"A", "A"},
			symbols: []string{"a"},
			empty:   true,
		},
		{
			caption: "appending the lookahead makes the set ε-free",
			seq:     []string{"A", "$"},
			symbols: []string{"a", "$"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			e := g.first.sequence(tt.seq)
			if e.empty != tt.empty {
				t.Errorf("unexpected ε membership; want: %v, got: %v", tt.empty, e.empty)
			}
			if len(e.symbols) != len(tt.symbols) {
				t.Fatalf("unexpected FIRST set; want: %v, got: %v", tt.symbols, e.sortedSymbols())
			}
			for _, sym := range tt.symbols {
				if _, ok := e.symbols[sym]; !ok {
					t.Errorf("FIRST set must contain %v; got: %v", sym, e.sortedSymbols())
				}
			}
		})
	}
}
