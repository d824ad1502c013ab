package grammar

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
)

type ActionType string

const (
	ActionTypeShift  = ActionType("shift")
	ActionTypeReduce = ActionType("reduce")
	ActionTypeAccept = ActionType("accept")
	ActionTypeError  = ActionType("error")
)

// actionEntry packs one ACTION cell into an int:
//
// Entry | Meaning
// ------+--------------------------
// 0     | empty cell
// < 0   | shift to state -entry
// 1     | accept (rule 0's slot)
// > 1   | reduce rule entry-1
//
// State 0 and rule 0 never appear as shift/reduce targets: state 0 holds
// the initial item and rule 0 is the augmented start production, whose
// completion is the accept action.
type actionEntry int

const actionEntryEmpty = actionEntry(0)

func newShiftActionEntry(state stateNum) actionEntry {
	return actionEntry(-state.Int())
}

func newReduceActionEntry(ruleNum int) actionEntry {
	return actionEntry(ruleNum + 1)
}

func newAcceptActionEntry() actionEntry {
	return newReduceActionEntry(0)
}

func (e actionEntry) isEmpty() bool {
	return e == actionEntryEmpty
}

func (e actionEntry) describe() (ActionType, stateNum, int) {
	switch {
	case e == actionEntryEmpty:
		return ActionTypeError, stateNumInitial, 0
	case e < 0:
		return ActionTypeShift, stateNum(-e), 0
	case e == 1:
		return ActionTypeAccept, stateNumInitial, 0
	default:
		return ActionTypeReduce, stateNumInitial, int(e) - 1
	}
}

type goToEntry int

const goToEntryEmpty = goToEntry(0)

func newGoToEntry(state stateNum) goToEntry {
	return goToEntry(state)
}

func (e goToEntry) describe() (bool, stateNum) {
	if e == goToEntryEmpty {
		return false, stateNumInitial
	}
	return true, stateNum(e)
}

// ParsingTable is the ACTION/GOTO projection of the canonical collection,
// plus the global rule list that fixes reduce numbering. ACTION is indexed
// by state and terminal (ε excluded, $ included); GOTO by state and
// non-terminal (S' excluded).
type ParsingTable struct {
	actionTable []actionEntry
	goToTable   []goToEntry

	stateCount int

	terminals []string
	termIdx   map[string]int

	nonTerminals []string
	nonTermIdx   map[string]int

	rules []*production

	InitialState stateNum
}

func (t *ParsingTable) readAction(state stateNum, termIdx int) actionEntry {
	return t.actionTable[state.Int()*len(t.terminals)+termIdx]
}

func (t *ParsingTable) writeAction(state stateNum, termIdx int, act actionEntry) {
	t.actionTable[state.Int()*len(t.terminals)+termIdx] = act
}

// Action looks up the ACTION cell for a state and terminal. An unknown
// terminal yields the error action.
func (t *ParsingTable) Action(state int, terminal string) (ActionType, int, int) {
	idx, ok := t.termIdx[terminal]
	if !ok {
		return ActionTypeError, 0, 0
	}
	ty, next, rule := t.readAction(stateNum(state), idx).describe()
	return ty, next.Int(), rule
}

// GoTo looks up the GOTO cell for a state and non-terminal.
func (t *ParsingTable) GoTo(state int, nonTerminal string) (bool, int) {
	idx, ok := t.nonTermIdx[nonTerminal]
	if !ok {
		return false, 0
	}
	registered, next := t.goToTable[state*len(t.nonTerminals)+idx].describe()
	return registered, next.Int()
}

// StateCount returns the number of DFA states the table covers.
func (t *ParsingTable) StateCount() int {
	return t.stateCount
}

// Terminals returns the ACTION column symbols in sorted order.
func (t *ParsingTable) Terminals() []string {
	return t.terminals
}

// NonTerminals returns the GOTO column symbols in sorted order.
func (t *ParsingTable) NonTerminals() []string {
	return t.nonTerminals
}

// RuleCount returns the number of rules, the augmented start rule
// included.
func (t *ParsingTable) RuleCount() int {
	return len(t.rules)
}

// Rule returns the head and the logical body length of a numbered rule.
// Reducing an ε-rule pops nothing.
func (t *ParsingTable) Rule(num int) (string, int) {
	prod := t.rules[num]
	return prod.lhs, prod.rhsLen
}

// RuleBody returns the rendered body of a numbered rule.
func (t *ParsingTable) RuleBody(num int) []string {
	return t.rules[num].renderedRHS()
}

// ActionCell renders an ACTION cell the way the artifact bundle and the
// step trace spell actions: "s<state>", "r<rule>", "acc", or "".
func (t *ParsingTable) ActionCell(state int, terminal string) string {
	ty, next, rule := t.Action(state, terminal)
	switch ty {
	case ActionTypeShift:
		return fmt.Sprintf("s%v", next)
	case ActionTypeReduce:
		return fmt.Sprintf("r%v", rule)
	case ActionTypeAccept:
		return "acc"
	default:
		return ""
	}
}

type lrTableBuilder struct {
	g        *Grammar
	dfa      *DFA
	ruleNums map[productionID]int
}

// GenParsingTable projects the canonical collection onto the ACTION and
// GOTO tables. Any two competing actions in one cell abort construction
// with a conflict error: the grammar is not LR(1).
func GenParsingTable(g *Grammar, dfa *DFA) (*ParsingTable, error) {
	b := &lrTableBuilder{
		g:   g,
		dfa: dfa,
	}

	var ptab *ParsingTable
	{
		terminals := make([]string, 0, g.terminals.Size())
		for _, sym := range g.Terminals() {
			if sym == SymbolEmpty {
				continue
			}
			terminals = append(terminals, sym)
		}
		termIdx := map[string]int{}
		for i, sym := range terminals {
			termIdx[sym] = i
		}

		nonTerminals := make([]string, 0, g.nonTerminals.Size())
		for _, sym := range g.NonTerminals() {
			if sym == g.startSymbol {
				continue
			}
			nonTerminals = append(nonTerminals, sym)
		}
		nonTermIdx := map[string]int{}
		for i, sym := range nonTerminals {
			nonTermIdx[sym] = i
		}

		rules, ruleNums := b.numberRules()

		ptab = &ParsingTable{
			actionTable:  make([]actionEntry, dfa.States()*len(terminals)),
			goToTable:    make([]goToEntry, dfa.States()*len(nonTerminals)),
			stateCount:   dfa.States(),
			terminals:    terminals,
			termIdx:      termIdx,
			nonTerminals: nonTerminals,
			nonTermIdx:   nonTermIdx,
			rules:        rules,
			InitialState: stateNumInitial,
		}
		b.ruleNums = ruleNums
	}

	for _, state := range b.dfa.states {
		nextSyms := make([]string, 0, len(state.next))
		for sym := range state.next {
			nextSyms = append(nextSyms, sym)
		}
		sort.Strings(nextSyms)

		for _, sym := range nextSyms {
			nextState := state.next[sym]
			if g.IsNonTerminal(sym) {
				ptab.goToTable[state.num.Int()*len(ptab.nonTerminals)+ptab.nonTermIdx[sym]] = newGoToEntry(nextState)
				continue
			}
			err := b.writeShiftAction(ptab, state.num, sym, nextState)
			if err != nil {
				return nil, err
			}
		}

		for _, item := range state.items {
			if !item.reducible || item.prod.lhs == g.startSymbol {
				continue
			}
			err := b.writeReduceAction(ptab, state.num, item.lookAhead, b.ruleNums[item.prod.id])
			if err != nil {
				return nil, err
			}
		}

		if state.hasAcceptItem(g.startSymbol) {
			err := b.writeAcceptAction(ptab, state.num)
			if err != nil {
				return nil, err
			}
		}
	}

	log.Debug("parsing table built",
		"states", ptab.stateCount,
		"terminals", len(ptab.terminals),
		"rules", len(ptab.rules))

	return ptab, nil
}

// numberRules fixes the global rule numbering: rule 0 is the augmented
// start production, the rest follow by sorted head and declaration order.
func (b *lrTableBuilder) numberRules() ([]*production, map[productionID]int) {
	startProds, _ := b.g.prods.findByLHS(b.g.startSymbol)
	rules := []*production{startProds[0]}

	heads := make([]string, 0, len(b.g.prods.heads))
	heads = append(heads, b.g.prods.heads...)
	sort.Strings(heads)

	for _, head := range heads {
		if head == b.g.startSymbol {
			continue
		}
		prods, _ := b.g.prods.findByLHS(head)
		rules = append(rules, prods...)
	}

	ruleNums := map[productionID]int{}
	for num, prod := range rules {
		ruleNums[prod.id] = num
	}
	return rules, ruleNums
}

func (b *lrTableBuilder) writeShiftAction(tab *ParsingTable, state stateNum, sym string, nextState stateNum) error {
	idx := tab.termIdx[sym]
	act := tab.readAction(state, idx)
	if !act.isEmpty() {
		ty, _, rule := act.describe()
		if ty == ActionTypeReduce {
			return &ShiftReduceConflictError{
				State:     state.Int(),
				Symbol:    sym,
				NextState: nextState.Int(),
				RuleNum:   rule,
			}
		}
		return nil
	}
	tab.writeAction(state, idx, newShiftActionEntry(nextState))
	return nil
}

func (b *lrTableBuilder) writeReduceAction(tab *ParsingTable, state stateNum, sym string, ruleNum int) error {
	idx, ok := tab.termIdx[sym]
	if !ok {
		return fmt.Errorf("a lookahead is not a terminal of the grammar; state: %v, symbol: %v", state, sym)
	}
	act := tab.readAction(state, idx)
	if !act.isEmpty() {
		ty, next, rule := act.describe()
		switch ty {
		case ActionTypeReduce:
			if rule == ruleNum {
				return nil
			}
			return &ReduceReduceConflictError{
				State:    state.Int(),
				Symbol:   sym,
				RuleNum1: rule,
				RuleNum2: ruleNum,
			}
		case ActionTypeAccept:
			return &ReduceReduceConflictError{
				State:    state.Int(),
				Symbol:   sym,
				RuleNum1: 0,
				RuleNum2: ruleNum,
			}
		default:
			return &ShiftReduceConflictError{
				State:     state.Int(),
				Symbol:    sym,
				NextState: next.Int(),
				RuleNum:   ruleNum,
			}
		}
	}
	tab.writeAction(state, idx, newReduceActionEntry(ruleNum))
	return nil
}

func (b *lrTableBuilder) writeAcceptAction(tab *ParsingTable, state stateNum) error {
	idx := tab.termIdx[SymbolEOF]
	act := tab.readAction(state, idx)
	if !act.isEmpty() {
		_, _, rule := act.describe()
		return &ReduceReduceConflictError{
			State:    state.Int(),
			Symbol:   SymbolEOF,
			RuleNum1: rule,
			RuleNum2: 0,
		}
	}
	tab.writeAction(state, idx, newAcceptActionEntry())
	return nil
}
