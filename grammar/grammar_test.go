package grammar

import (
	"errors"
	"testing"

	lverror "github.com/nihei9/laviz/error"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		caption       string
		src           string
		startSymbol   string
		originalStart string
		nonTerminals  []string
		terminals     []string
	}{
		{
			caption: "the classic arithmetic grammar",
			src: `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`,
			startSymbol:   "E'",
			originalStart: "E",
			nonTerminals:  []string{"E", "E'", "F", "T"},
			terminals:     []string{"$", "(", ")", "*", "+", "id"},
		},
		{
			caption:       "an ε-alternative adds the ε marker to the terminal set",
			src:           `S -> ( S ) | ''`,
			startSymbol:   "S'",
			originalStart: "S",
			nonTerminals:  []string{"S", "S'"},
			terminals:     []string{"$", "(", ")", "ε"},
		},
		{
			caption: "the augmented start symbol extends its suffix until it is fresh",
			src: `
S -> S' a
S' -> b
`,
			startSymbol:   "S''",
			originalStart: "S",
			nonTerminals:  []string{"S", "S'", "S''"},
			terminals:     []string{"$", "a", "b"},
		},
		{
			caption:       "free text without an arrow is ignored",
			src:           "a comment line\nS -> a\n",
			startSymbol:   "S'",
			originalStart: "S",
			nonTerminals:  []string{"S", "S'"},
			terminals:     []string{"$", "a"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g, err := Load(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			if g.StartSymbol() != tt.startSymbol {
				t.Errorf("unexpected start symbol; want: %v, got: %v", tt.startSymbol, g.StartSymbol())
			}
			if g.OriginalStart() != tt.originalStart {
				t.Errorf("unexpected original start; want: %v, got: %v", tt.originalStart, g.OriginalStart())
			}
			testStringSlice(t, "non-terminals", tt.nonTerminals, g.NonTerminals())
			testStringSlice(t, "terminals", tt.terminals, g.Terminals())
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		caption string
		src     string
	}{
		{
			caption: "empty source",
			src:     "",
		},
		{
			caption: "source without rule lines",
			src:     "just\nsome\ntext\n",
		},
		{
			caption: "a rule line with an empty head",
			src:     "-> a b\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			_, err := Load(tt.src)
			if err == nil {
				t.Fatal("an error must occur")
			}
			var invalid *InvalidGrammarError
			if !errors.As(err, &invalid) {
				t.Fatalf("unexpected error type: %T (%v)", err, err)
			}
		})
	}
}

func TestLoad_EmptyHeadReportsRow(t *testing.T) {
	_, err := Load("S -> a\n-> b\n")
	if err == nil {
		t.Fatal("an error must occur")
	}
	var specErr *lverror.SpecError
	if !errors.As(err, &specErr) {
		t.Fatalf("unexpected error type: %T (%v)", err, err)
	}
	if specErr.Row != 2 {
		t.Errorf("unexpected row; want: %v, got: %v", 2, specErr.Row)
	}
}

func TestLoad_ClassifiesSymbolsByHead(t *testing.T) {
	g, err := Load("S -> a S b | ''")
	if err != nil {
		t.Fatal(err)
	}
	if !g.IsNonTerminal("S") || g.IsTerminal("S") {
		t.Errorf("S must be a non-terminal")
	}
	if !g.IsTerminal("a") || g.IsNonTerminal("a") {
		t.Errorf("a must be a terminal")
	}
	if !g.IsTerminal(SymbolEOF) {
		t.Errorf("%v must always be a terminal", SymbolEOF)
	}
}

func testStringSlice(t *testing.T, name string, want, got []string) {
	t.Helper()
	if len(want) != len(got) {
		t.Errorf("unexpected %v; want: %v, got: %v", name, want, got)
		return
	}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("unexpected %v; want: %v, got: %v", name, want, got)
			return
		}
	}
}
