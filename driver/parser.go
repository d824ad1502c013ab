package driver

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nihei9/laviz/grammar"
	"github.com/nihei9/laviz/spec"
)

// maxSteps bounds a single run. A canonical LR(1) table terminates on its
// own, but the guard keeps a defective table from looping a request.
const maxSteps = 100000

// Parser drives a parsing table against a tokenised input and records
// every configuration it passes through. Parse-time failures are not Go
// errors: they are embedded in the result so the trace up to and including
// the failing step survives.
type Parser struct {
	tab        *grammar.ParsingTable
	stateStack []int
	symStack   []string
	steps      []*spec.Step
}

func NewParser(tab *grammar.ParsingTable) *Parser {
	return &Parser{
		tab: tab,
	}
}

// Parse runs the shift/reduce loop over the input string.
func (p *Parser) Parse(input string) *spec.ParseResult {
	toks := tokenize(input)

	p.stateStack = p.stateStack[:0]
	p.symStack = p.symStack[:0]
	// The step slice is handed out with the result, so a fresh run must
	// not truncate and overwrite it.
	p.steps = nil
	p.push("", p.tab.InitialState.Int())

	pos := 0
	for {
		if len(p.steps) >= maxSteps {
			return p.reject(fmt.Sprintf("the run exceeded the step limit %v", maxSteps))
		}

		state := p.top()
		tok := toks[pos]

		act, next, ruleNum := p.tab.Action(state, tok)
		p.record(p.tab.ActionCell(state, tok), toks[pos:])

		switch act {
		case grammar.ActionTypeShift:
			p.push(tok, next)
			pos++
		case grammar.ActionTypeReduce:
			lhs, bodyLen := p.tab.Rule(ruleNum)
			p.pop(bodyLen)
			registered, next := p.tab.GoTo(p.top(), lhs)
			if !registered {
				return p.reject(fmt.Sprintf("no goto defined for state %v and symbol %q", p.top(), lhs))
			}
			p.push(lhs, next)
		case grammar.ActionTypeAccept:
			log.Debug("input accepted", "steps", len(p.steps))
			return &spec.ParseResult{
				Accepted: true,
				Steps:    p.steps,
			}
		case grammar.ActionTypeError:
			return p.reject(fmt.Sprintf("no action defined for state %v and symbol %q", state, tok))
		default:
			return p.reject(fmt.Sprintf("unknown action %q in state %v on symbol %q", act, state, tok))
		}
	}
}

func (p *Parser) reject(msg string) *spec.ParseResult {
	log.Debug("input rejected", "reason", msg, "steps", len(p.steps))
	return &spec.ParseResult{
		Accepted: false,
		Steps:    p.steps,
		Error:    msg,
	}
}

// record snapshots the current configuration. The stack rendering
// interleaves state numbers and grammar symbols with state 0 at the bottom
// and the current state on top.
func (p *Parser) record(action string, remaining []string) {
	stack := make([]string, 0, len(p.stateStack)*2-1)
	for i, state := range p.stateStack {
		if i > 0 {
			stack = append(stack, p.symStack[i])
		}
		stack = append(stack, fmt.Sprintf("%v", state))
	}

	input := make([]string, len(remaining))
	copy(input, remaining)

	p.steps = append(p.steps, &spec.Step{
		Step:   len(p.steps),
		Stack:  stack,
		Input:  input,
		Action: action,
	})
}

func (p *Parser) top() int {
	return p.stateStack[len(p.stateStack)-1]
}

func (p *Parser) push(sym string, state int) {
	p.symStack = append(p.symStack, sym)
	p.stateStack = append(p.stateStack, state)
}

func (p *Parser) pop(n int) {
	p.stateStack = p.stateStack[:len(p.stateStack)-n]
	p.symStack = p.symStack[:len(p.symStack)-n]
}
