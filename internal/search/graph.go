// Package search maintains the search-state graph: one node per visited
// or discovered program configuration, with the minimal depth at which
// it was found, an explored flag, and action-labelled edges.
package search

import (
	"github.com/smilemakc/progsynth/internal/agent"
	"github.com/smilemakc/progsynth/internal/program"
)

// Node is one discovered program configuration.
type Node struct {
	// Hash is the canonical program hash of the configuration
	Hash program.Hash

	// Graph is the canonical stored graph realizing the hash. It is a
	// private clone; callers clone again before mutating.
	Graph *program.Graph

	// Depth is the minimal discovered depth of the configuration
	Depth int

	// Explored reports whether the orchestrator already visited the node
	Explored bool

	// Complete reports whether the configuration has no empty blank
	Complete bool
}

// Edge records an action applicable (or applied) from one configuration
// to another.
type Edge struct {
	From   program.Hash
	To     program.Hash
	Action agent.Action
}

// Graph is a directed multigraph over program hashes.
type Graph struct {
	nodes map[program.Hash]*Node

	// order keeps node hashes in discovery order for deterministic walks
	order []program.Hash

	// forwardEdges maps a source hash to its outgoing edges
	forwardEdges map[program.Hash][]Edge

	// reverseEdges maps a target hash to its incoming source hashes
	reverseEdges map[program.Hash][]program.Hash
}

// NewGraph creates an empty search-state graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:        make(map[program.Hash]*Node),
		forwardEdges: make(map[program.Hash][]Edge),
		reverseEdges: make(map[program.Hash][]program.Hash),
	}
}

// Add inserts a node for the given configuration, storing its own clone
// of the graph. When the node already exists its depth is tightened to
// the minimum of both discoveries and the existing node is returned.
func (g *Graph) Add(graph *program.Graph, depth int) *Node {
	hash := graph.HashableConfig()
	if node, ok := g.nodes[hash]; ok {
		if depth < node.Depth {
			node.Depth = depth
		}
		return node
	}
	node := &Node{
		Hash:     hash,
		Graph:    graph.Clone(),
		Depth:    depth,
		Complete: graph.Complete(),
	}
	g.nodes[hash] = node
	g.order = append(g.order, hash)
	return node
}

// Node returns the node for a hash.
func (g *Graph) Node(hash program.Hash) (*Node, bool) {
	node, ok := g.nodes[hash]
	return node, ok
}

// MarkExplored flags the node for a hash as visited.
func (g *Graph) MarkExplored(hash program.Hash) {
	if node, ok := g.nodes[hash]; ok {
		node.Explored = true
	}
}

// AddEdge records an action-labelled edge between two configurations.
func (g *Graph) AddEdge(from, to program.Hash, action agent.Action) {
	g.forwardEdges[from] = append(g.forwardEdges[from], Edge{From: from, To: to, Action: action})
	g.reverseEdges[to] = append(g.reverseEdges[to], from)
}

// OutgoingEdges returns the edges leaving a configuration.
func (g *Graph) OutgoingEdges(hash program.Hash) []Edge {
	return g.forwardEdges[hash]
}

// Predecessors returns the configurations with an edge into the given
// one.
func (g *Graph) Predecessors(hash program.Hash) []program.Hash {
	return g.reverseEdges[hash]
}

// Len returns the number of discovered configurations.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Hashes returns every discovered hash in discovery order.
func (g *Graph) Hashes() []program.Hash {
	hashes := make([]program.Hash, len(g.order))
	copy(hashes, g.order)
	return hashes
}
