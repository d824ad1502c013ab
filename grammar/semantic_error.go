package grammar

import "fmt"

// InvalidGrammarError indicates that the grammar source text is malformed:
// it contains no rule lines, or a rule line has an empty head.
type InvalidGrammarError struct {
	Reason string
}

func (e *InvalidGrammarError) Error() string {
	return fmt.Sprintf("invalid grammar: %v", e.Reason)
}

// OversizeError indicates that a build exceeded one of the work limits
// that bound runtime on adversarial grammars.
type OversizeError struct {
	Kind  string
	Limit int
}

func (e *OversizeError) Error() string {
	return fmt.Sprintf("grammar is too large: the number of %v exceeds the limit %v", e.Kind, e.Limit)
}

// ShiftReduceConflictError reports two competing actions in one ACTION
// cell. The grammar is not LR(1); table construction aborts.
type ShiftReduceConflictError struct {
	State     int
	Symbol    string
	NextState int
	RuleNum   int
}

func (e *ShiftReduceConflictError) Error() string {
	return fmt.Sprintf("shift/reduce conflict in state %v on symbol %q: shift %v vs. reduce %v",
		e.State, e.Symbol, e.NextState, e.RuleNum)
}

// ReduceReduceConflictError reports two reductions competing for the same
// lookahead in one state.
type ReduceReduceConflictError struct {
	State    int
	Symbol   string
	RuleNum1 int
	RuleNum2 int
}

func (e *ReduceReduceConflictError) Error() string {
	return fmt.Sprintf("reduce/reduce conflict in state %v on symbol %q: reduce %v vs. reduce %v",
		e.State, e.Symbol, e.RuleNum1, e.RuleNum2)
}
