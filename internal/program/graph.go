// Package program holds the typed blank/content tree at the heart of a
// candidate program, its canonical configuration hashing, and the
// renderer that turns a completed tree into a source artifact.
package program

import (
	"strings"

	"github.com/smilemakc/progsynth/internal/domain"
	"github.com/smilemakc/progsynth/internal/domain/errors"
)

// Hash is the canonical identity of a program configuration. Two graphs
// share a Hash iff their configurations are pair-wise equal.
type Hash string

// ConfigEntry is one (blank, optional content) pair of a configuration.
type ConfigEntry struct {
	Blank   domain.Blank
	Content domain.Content
}

// Graph is a rooted tree of blanks and their contents. The root is a
// blank with id "return" typed with the expected output type. Each blank
// holds at most one content; operation and if contents expose fresh
// typed sub-blanks. Graphs are value-cloneable; clones share nothing.
type Graph struct {
	outputType domain.ValueType

	// blanks maps blank id to the blank itself
	blanks map[string]domain.Blank

	// order records blank ids in insertion order: root first, then each
	// fill wave's sub-blanks in argument order. This order is canonical
	// for every reachable configuration and drives config iteration.
	order []string

	// contents maps a filled blank id to its content
	contents map[string]domain.Content

	// children maps a filled blank id to its content's sub-blank ids in
	// argument order
	children map[string][]string

	// parents maps a sub-blank id to the blank whose content created it
	parents map[string]string
}

// New creates a program graph with a single empty root blank typed with
// the expected output type.
func New(outputType domain.ValueType) *Graph {
	root := domain.Blank{ID: domain.RootBlankID, Type: outputType, Depth: 0}
	return &Graph{
		outputType: outputType,
		blanks:     map[string]domain.Blank{root.ID: root},
		order:      []string{root.ID},
		contents:   make(map[string]domain.Content),
		children:   make(map[string][]string),
		parents:    make(map[string]string),
	}
}

// OutputType returns the expected output type of the program.
func (g *Graph) OutputType() domain.ValueType { return g.outputType }

// Root returns the root blank.
func (g *Graph) Root() domain.Blank { return g.blanks[domain.RootBlankID] }

// Blank returns the blank with the given id.
func (g *Graph) Blank(id string) (domain.Blank, bool) {
	b, ok := g.blanks[id]
	return b, ok
}

// FillBlank fills an empty blank with the given content. For operation
// and if contents it creates the content's sub-blanks with fresh keys at
// depth(b)+1. It fails with a StateError when the blank is unknown or
// already filled.
func (g *Graph) FillBlank(b domain.Blank, c domain.Content) error {
	blank, ok := g.blanks[b.ID]
	if !ok {
		return errors.NewStateError(b.ID, "cannot fill a blank that is not part of the graph")
	}
	if _, filled := g.contents[blank.ID]; filled {
		return errors.NewStateError(blank.ID, "cannot fill an already filled blank")
	}

	g.contents[blank.ID] = c
	contentKey := blank.ID + domain.BlankIDSeparator + c.Name()

	switch c.Kind() {
	case domain.KindOperation:
		op := c.(domain.Operation)
		subIDs := make([]string, 0, op.Arity())
		for _, param := range op.Params() {
			sub := domain.Blank{
				ID:    contentKey + domain.BlankIDSeparator + param.Name,
				Type:  param.Type,
				Depth: blank.Depth + 1,
			}
			g.addBlank(sub, blank.ID)
			subIDs = append(subIDs, sub.ID)
		}
		g.children[blank.ID] = subIDs
	case domain.KindIf:
		subIDs := make([]string, 0, 3)
		for _, part := range []struct {
			name string
			typ  domain.ValueType
		}{
			{name: "test", typ: domain.TypeBool},
			{name: "body", typ: blank.Type},
			{name: "else", typ: blank.Type},
		} {
			sub := domain.Blank{
				ID:    contentKey + domain.BlankIDSeparator + part.name,
				Type:  part.typ,
				Depth: blank.Depth + 1,
			}
			g.addBlank(sub, blank.ID)
			subIDs = append(subIDs, sub.ID)
		}
		g.children[blank.ID] = subIDs
	}

	return nil
}

func (g *Graph) addBlank(b domain.Blank, parentID string) {
	g.blanks[b.ID] = b
	g.order = append(g.order, b.ID)
	g.parents[b.ID] = parentID
}

// EmptyBlank removes the blank's content and all its descendants; the
// blank itself returns to the empty state. Emptying an already empty
// blank is a no-op.
func (g *Graph) EmptyBlank(b domain.Blank) {
	if _, ok := g.blanks[b.ID]; !ok {
		return
	}
	if _, filled := g.contents[b.ID]; !filled {
		return
	}

	removed := make(map[string]bool)
	g.dropSubtree(b.ID, removed)
	delete(g.contents, b.ID)
	delete(g.children, b.ID)

	if len(removed) == 0 {
		return
	}
	kept := g.order[:0]
	for _, id := range g.order {
		if !removed[id] {
			kept = append(kept, id)
		}
	}
	g.order = kept
}

// dropSubtree removes every blank below blankID's content, collecting
// removed ids so the insertion order can be rebuilt in one pass.
func (g *Graph) dropSubtree(blankID string, removed map[string]bool) {
	for _, subID := range g.children[blankID] {
		g.dropSubtree(subID, removed)
		delete(g.contents, subID)
		delete(g.children, subID)
		delete(g.blanks, subID)
		delete(g.parents, subID)
		removed[subID] = true
	}
}

// ReplaceBlank empties the blank (when filled) and fills it with the
// given content. Observers only ever see the final state.
func (g *Graph) ReplaceBlank(b domain.Blank, c domain.Content) error {
	g.EmptyBlank(b)
	return g.FillBlank(b, c)
}

// Content returns the content of a blank, or false when the blank is
// empty or unknown.
func (g *Graph) Content(b domain.Blank) (domain.Content, bool) {
	c, ok := g.contents[b.ID]
	return c, ok
}

// SubBlanks returns the sub-blanks of a filled blank's operation or if
// content, in argument order (for if: test, body, else).
func (g *Graph) SubBlanks(b domain.Blank) []domain.Blank {
	subIDs := g.children[b.ID]
	subs := make([]domain.Blank, 0, len(subIDs))
	for _, id := range subIDs {
		subs = append(subs, g.blanks[id])
	}
	return subs
}

// ParentBlank returns the blank whose content created b, or false for
// the root.
func (g *Graph) ParentBlank(b domain.Blank) (domain.Blank, bool) {
	parentID, ok := g.parents[b.ID]
	if !ok {
		return domain.Blank{}, false
	}
	parent, ok := g.blanks[parentID]
	return parent, ok
}

// Blanks returns every blank in insertion order.
func (g *Graph) Blanks() []domain.Blank {
	blanks := make([]domain.Blank, 0, len(g.order))
	for _, id := range g.order {
		blanks = append(blanks, g.blanks[id])
	}
	return blanks
}

// EmptyBlanks returns the blanks without content, in insertion order.
func (g *Graph) EmptyBlanks() []domain.Blank {
	var empty []domain.Blank
	for _, id := range g.order {
		if _, filled := g.contents[id]; !filled {
			empty = append(empty, g.blanks[id])
		}
	}
	return empty
}

// Complete reports whether every blank is filled.
func (g *Graph) Complete() bool {
	for _, id := range g.order {
		if _, filled := g.contents[id]; !filled {
			return false
		}
	}
	return true
}

// Config returns the canonical configuration: every (blank, content?)
// pair in insertion order.
func (g *Graph) Config() []ConfigEntry {
	config := make([]ConfigEntry, 0, len(g.order))
	for _, id := range g.order {
		entry := ConfigEntry{Blank: g.blanks[id]}
		if c, ok := g.contents[id]; ok {
			entry.Content = c
		}
		config = append(config, entry)
	}
	return config
}

// HashableConfig returns the program hash of the canonical configuration.
func (g *Graph) HashableConfig() Hash {
	var sb strings.Builder
	for _, id := range g.order {
		sb.WriteString(id)
		sb.WriteByte(':')
		sb.WriteString(string(g.blanks[id].Type))
		sb.WriteByte('=')
		if c, ok := g.contents[id]; ok {
			sb.WriteString(c.ID())
		}
		sb.WriteByte(';')
	}
	return Hash(sb.String())
}

// Clone returns an independent deep copy of the graph in O(size).
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		outputType: g.outputType,
		blanks:     make(map[string]domain.Blank, len(g.blanks)),
		order:      make([]string, len(g.order)),
		contents:   make(map[string]domain.Content, len(g.contents)),
		children:   make(map[string][]string, len(g.children)),
		parents:    make(map[string]string, len(g.parents)),
	}
	copy(clone.order, g.order)
	for id, b := range g.blanks {
		clone.blanks[id] = b
	}
	for id, c := range g.contents {
		clone.contents[id] = c
	}
	for id, subIDs := range g.children {
		subs := make([]string, len(subIDs))
		copy(subs, subIDs)
		clone.children[id] = subs
	}
	for id, parentID := range g.parents {
		clone.parents[id] = parentID
	}
	return clone
}
