// Package generate drives the typed enumerative search: it computes the
// applicable actions for a configuration, lets the agent pick one, and
// exposes the resulting lazy sequence of complete program graphs.
package generate

import (
	"github.com/smilemakc/progsynth/internal/agent"
	"github.com/smilemakc/progsynth/internal/domain"
	"github.com/smilemakc/progsynth/internal/program"
)

// fillOptions returns the empty blanks of a graph in traversal order,
// with the contents that can legally fill each of them in DSL
// declaration order.
func fillOptions(g *program.Graph, contents []domain.Content) ([]domain.Blank, [][]domain.Content) {
	blanks := g.EmptyBlanks()
	options := make([][]domain.Content, len(blanks))
	for i, b := range blanks {
		for _, c := range contents {
			if typeMatches(g, b, c) {
				options[i] = append(options[i], c)
			}
		}
	}
	return blanks, options
}

// typeMatches applies the fill rules: variables and operations must
// produce a subtype of the blank's type; if-branching always matches
// except directly under another if-branching.
func typeMatches(g *program.Graph, b domain.Blank, c domain.Content) bool {
	switch c.Kind() {
	case domain.KindInput, domain.KindConstant, domain.KindOperation:
		return c.Type().AssignableTo(b.Type)
	case domain.KindIf:
		if parent, ok := g.ParentBlank(b); ok {
			if parentContent, filled := g.Content(parent); filled && parentContent.Kind() == domain.KindIf {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// emitProduct walks the Cartesian product of the per-blank option lists
// in deterministic order, the last blank varying fastest. An empty
// option list for any blank makes the whole product empty.
func emitProduct(blanks []domain.Blank, options [][]domain.Content, emit func(pairs []agent.BlankFill)) {
	for _, opts := range options {
		if len(opts) == 0 {
			return
		}
	}

	indices := make([]int, len(blanks))
	for {
		pairs := make([]agent.BlankFill, len(blanks))
		for i := range blanks {
			pairs[i] = agent.BlankFill{Blank: blanks[i], Content: options[i][indices[i]]}
		}
		emit(pairs)

		pos := len(indices) - 1
		for pos >= 0 {
			indices[pos]++
			if indices[pos] < len(options[pos]) {
				break
			}
			indices[pos] = 0
			pos--
		}
		if pos < 0 {
			return
		}
	}
}

// frontier is the ordered set of discovered, unexplored, incomplete
// configurations.
type frontier struct {
	order  []program.Hash
	member map[program.Hash]bool
}

func newFrontier() *frontier {
	return &frontier{member: make(map[program.Hash]bool)}
}

func (f *frontier) add(hash program.Hash) {
	if f.member[hash] {
		return
	}
	f.member[hash] = true
	f.order = append(f.order, hash)
}

func (f *frontier) remove(hash program.Hash) {
	if !f.member[hash] {
		return
	}
	delete(f.member, hash)
	kept := f.order[:0]
	for _, h := range f.order {
		if f.member[h] {
			kept = append(kept, h)
		}
	}
	f.order = kept
}

func (f *frontier) hashes() []program.Hash {
	hashes := make([]program.Hash, len(f.order))
	copy(hashes, f.order)
	return hashes
}
