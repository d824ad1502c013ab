package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/nihei9/laviz"
	"github.com/nihei9/laviz/spec"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show <grammar file path>",
		Short:   "Print the FIRST sets, DFA, and parsing table in a readable format",
		Example: `  laviz show grammar.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read the grammar file %s: %w", args[0], err)
	}

	bundle, err := laviz.Analyze(string(src), "")
	if err != nil {
		return err
	}

	writeGrammar(bundle.Grammar)
	writeDFA(bundle.DFA)
	writeParsingTable(bundle.Grammar, bundle.ParsingTable)

	return nil
}

func writeGrammar(g *spec.Grammar) {
	pterm.DefaultSection.Println("Grammar")
	pterm.Printfln("start symbol: %v", g.StartSymbol)
	pterm.Printfln("terminals:    %v", strings.Join(g.Terminals, " "))

	data := pterm.TableData{{"NON-TERMINAL", "FIRST"}}
	for _, nt := range g.NonTerminals {
		data = append(data, []string{nt, strings.Join(g.First[nt], " ")})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func writeDFA(states []*spec.DFAState) {
	pterm.DefaultSection.Println("DFA")
	for _, state := range states {
		pterm.Printfln("state %v", state.ID)
		for _, item := range state.Items {
			body := append([]string{}, item.Body...)
			body = append(body[:item.DotPos:item.DotPos], append([]string{"・"}, body[item.DotPos:]...)...)
			pterm.Printfln("    [%v -> %v, %v]", item.Head, strings.Join(body, " "), item.SearchSymbol)
		}
		syms := make([]string, 0, len(state.Transitions))
		for sym := range state.Transitions {
			syms = append(syms, sym)
		}
		sort.Strings(syms)
		for _, sym := range syms {
			pterm.Printfln("    --%v--> %v", sym, state.Transitions[sym])
		}
	}
}

func writeParsingTable(g *spec.Grammar, t *spec.ParsingTable) {
	pterm.DefaultSection.Println("ACTION")

	terminals := []string{}
	for term := range t.Action[0] {
		terminals = append(terminals, term)
	}
	sort.Strings(terminals)

	data := pterm.TableData{append([]string{"STATE"}, terminals...)}
	for state := 0; state < len(t.Action); state++ {
		row := []string{fmt.Sprintf("%v", state)}
		for _, term := range terminals {
			row = append(row, t.Action[state][term])
		}
		data = append(data, row)
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	pterm.DefaultSection.Println("GOTO")

	nonTerminals := []string{}
	for nt := range t.GoTo[0] {
		nonTerminals = append(nonTerminals, nt)
	}
	sort.Strings(nonTerminals)

	data = pterm.TableData{append([]string{"STATE"}, nonTerminals...)}
	for state := 0; state < len(t.GoTo); state++ {
		row := []string{fmt.Sprintf("%v", state)}
		for _, nt := range nonTerminals {
			row = append(row, fmt.Sprintf("%v", t.GoTo[state][nt]))
		}
		data = append(data, row)
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	pterm.DefaultSection.Println("Rules")
	for _, rule := range t.Rules {
		pterm.Printfln("%3d: %v -> %v", rule.Num, rule.Head, strings.Join(rule.Body, " "))
	}
}
