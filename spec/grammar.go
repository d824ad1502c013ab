package spec

// Bundle is the full artifact set produced by one analysis run. It is the
// shape the visualisation front end consumes, so every field is serialised
// even when the parse failed.
type Bundle struct {
	Grammar      *Grammar      `json:"grammar"`
	DFA          []*DFAState   `json:"dfa"`
	ParsingTable *ParsingTable `json:"parsing_table"`
	ParseResult  *ParseResult  `json:"parse_result"`
}

type Grammar struct {
	StartSymbol  string              `json:"start_symbol"`
	NonTerminals []string            `json:"non_terminals"`
	Terminals    []string            `json:"terminals"`
	Productions  map[string][]string `json:"productions"`
	First        map[string][]string `json:"first"`
}

// Item is an LR(1) item. An empty production body is rendered as ["ε"]
// with the dot at position 0.
type Item struct {
	Head         string   `json:"head"`
	Body         []string `json:"body"`
	DotPos       int      `json:"dot_pos"`
	SearchSymbol string   `json:"search_symbol"`
}

type Reduction struct {
	Head string   `json:"head"`
	Body []string `json:"body"`
}

type DFAState struct {
	ID          int                   `json:"id"`
	Items       []*Item               `json:"items"`
	Transitions map[string]int        `json:"transitions"`
	Reductions  map[string]*Reduction `json:"reductions"`
}

// ParsingTable holds the ACTION and GOTO projections. ACTION cells are
// "s<state>", "r<rule>", "acc", or "". GOTO cells are state numbers or "".
type ParsingTable struct {
	Action map[int]map[string]string `json:"action"`
	GoTo   map[int]map[string]any    `json:"goto"`
	Rules  []*Rule                   `json:"rules"`
}

type Rule struct {
	Num  int      `json:"num"`
	Head string   `json:"head"`
	Body []string `json:"body"`
}

type Step struct {
	Step   int      `json:"step"`
	Stack  []string `json:"stack"`
	Input  []string `json:"input"`
	Action string   `json:"action"`
}

type ParseResult struct {
	Accepted bool    `json:"accepted"`
	Steps    []*Step `json:"steps"`
	Error    string  `json:"error,omitempty"`
}
