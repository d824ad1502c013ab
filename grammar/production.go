package grammar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

type productionID [32]byte

func (id productionID) String() string {
	return hex.EncodeToString(id[:])
}

func genProductionID(lhs string, rhs []string) productionID {
	seq := []byte(lhs)
	for _, sym := range rhs {
		seq = append(seq, 0x00)
		seq = append(seq, []byte(sym)...)
	}
	return productionID(sha256.Sum256(seq))
}

// production is one alternative of a grammar rule. An ε-alternative is
// stored with an empty RHS; rhsLen is the logical length used when the
// production is reduced.
type production struct {
	id     productionID
	lhs    string
	rhs    []string
	rhsLen int
}

func newProduction(lhs string, rhs []string) (*production, error) {
	if lhs == "" {
		return nil, fmt.Errorf("LHS must be a non-empty symbol; RHS: %v", rhs)
	}
	for _, sym := range rhs {
		if sym == "" {
			return nil, fmt.Errorf("a symbol of RHS must be non-empty; LHS: %v, RHS: %v", lhs, rhs)
		}
	}

	return &production{
		id:     genProductionID(lhs, rhs),
		lhs:    lhs,
		rhs:    rhs,
		rhsLen: len(rhs),
	}, nil
}

func (p *production) isEmpty() bool {
	return p.rhsLen == 0
}

// renderedRHS is the body as it appears in artifacts; an empty body shows
// the ε marker the way the source grammar wrote it.
func (p *production) renderedRHS() []string {
	if p.isEmpty() {
		return []string{SymbolEmpty}
	}
	return p.rhs
}

func (p *production) String() string {
	return fmt.Sprintf("%v -> %v", p.lhs, strings.Join(p.renderedRHS(), " "))
}

type productionSet struct {
	lhs2Prods map[string][]*production
	id2Prod   map[productionID]*production
	heads     []string // LHS symbols in first-seen order
}

func newProductionSet() *productionSet {
	return &productionSet{
		lhs2Prods: map[string][]*production{},
		id2Prod:   map[productionID]*production{},
	}
}

func (ps *productionSet) append(prod *production) bool {
	if _, ok := ps.id2Prod[prod.id]; ok {
		return false
	}

	if prods, ok := ps.lhs2Prods[prod.lhs]; ok {
		ps.lhs2Prods[prod.lhs] = append(prods, prod)
	} else {
		ps.lhs2Prods[prod.lhs] = []*production{prod}
		ps.heads = append(ps.heads, prod.lhs)
	}
	ps.id2Prod[prod.id] = prod

	return true
}

func (ps *productionSet) findByID(id productionID) (*production, bool) {
	prod, ok := ps.id2Prod[id]
	return prod, ok
}

func (ps *productionSet) findByLHS(lhs string) ([]*production, bool) {
	if lhs == "" {
		return nil, false
	}

	prods, ok := ps.lhs2Prods[lhs]
	return prods, ok
}

func (ps *productionSet) getAllProductions() map[productionID]*production {
	return ps.id2Prod
}
