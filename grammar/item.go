package grammar

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type lrItemID [32]byte

func (id lrItemID) String() string {
	return fmt.Sprintf("%x", id.num())
}

func (id lrItemID) num() uint32 {
	return binary.LittleEndian.Uint32(id[:])
}

// lrItem is a canonical LR(1) item: a production, a dot position, and a
// single terminal lookahead. Items are value-identified by their ID, which
// covers the full triple.
type lrItem struct {
	id   lrItemID
	prod *production

	// E → E + T
	//
	// Dot | Dotted Symbol | Item
	// ----+---------------+------------
	// 0   | E             | E →・E + T
	// 1   | +             | E → E・+ T
	// 2   | T             | E → E +・T
	// 3   | (none)        | E → E + T・
	dot          int
	dottedSymbol string

	// lookAhead is a single terminal, never ε, possibly the end-of-input
	// marker.
	lookAhead string

	// When reducible is true, the dot is at the end of the body. An
	// ε-production is reducible at dot 0.
	reducible bool
}

func newLRItem(prod *production, dot int, lookAhead string) (*lrItem, error) {
	if prod == nil {
		return nil, fmt.Errorf("production must be non-nil")
	}
	if dot < 0 || dot > prod.rhsLen {
		return nil, fmt.Errorf("dot must be between 0 and %v", prod.rhsLen)
	}
	if lookAhead == "" || lookAhead == SymbolEmpty {
		return nil, fmt.Errorf("lookahead must be a terminal symbol; passed: %q", lookAhead)
	}

	var id lrItemID
	{
		b := []byte{}
		b = append(b, prod.id[:]...)
		bDot := make([]byte, 8)
		binary.LittleEndian.PutUint64(bDot, uint64(dot))
		b = append(b, bDot...)
		b = append(b, []byte(lookAhead)...)
		id = sha256.Sum256(b)
	}

	dottedSymbol := ""
	if dot < prod.rhsLen {
		dottedSymbol = prod.rhs[dot]
	}

	return &lrItem{
		id:           id,
		prod:         prod,
		dot:          dot,
		dottedSymbol: dottedSymbol,
		lookAhead:    lookAhead,
		reducible:    dot == prod.rhsLen,
	}, nil
}

func (i *lrItem) String() string {
	var body []string
	if !i.prod.isEmpty() {
		body = append(body, i.prod.rhs...)
	}
	dotted := append(body[:i.dot:i.dot], append([]string{"・"}, body[i.dot:]...)...)
	return fmt.Sprintf("[%v -> %v, %v]", i.prod.lhs, strings.Join(dotted, " "), i.lookAhead)
}

type itemSetID [32]byte

func (id itemSetID) String() string {
	return fmt.Sprintf("%x", binary.LittleEndian.Uint32(id[:]))
}

// sortItems orders items by their ID and removes duplicates. The order has
// no grammatical meaning but freezes the set for identity hashing.
func sortItems(items []*lrItem) []*lrItem {
	m := map[lrItemID]*lrItem{}
	for _, item := range items {
		m[item.id] = item
	}
	sorted := make([]*lrItem, 0, len(m))
	for _, item := range m {
		sorted = append(sorted, item)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].id[:], sorted[j].id[:]) < 0
	})
	return sorted
}

// genItemSetID freezes a sorted item slice into the identity of a DFA
// state. Two states are the same exactly when their item sets, lookaheads
// included, are equal.
func genItemSetID(sortedItems []*lrItem) itemSetID {
	b := []byte{}
	for _, item := range sortedItems {
		b = append(b, item.id[:]...)
	}
	return itemSetID(sha256.Sum256(b))
}

type stateNum int

const stateNumInitial = stateNum(0)

func (n stateNum) Int() int {
	return int(n)
}

func (n stateNum) String() string {
	return strconv.Itoa(int(n))
}

func (n stateNum) next() stateNum {
	return stateNum(n + 1)
}
