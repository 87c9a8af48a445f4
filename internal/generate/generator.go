package generate

import (
	"github.com/smilemakc/progsynth/internal/agent"
	"github.com/smilemakc/progsynth/internal/domain"
	"github.com/smilemakc/progsynth/internal/domain/errors"
	"github.com/smilemakc/progsynth/internal/dsl"
	"github.com/smilemakc/progsynth/internal/program"
	"github.com/smilemakc/progsynth/internal/search"
)

// Generator enumerates the program graphs expressible in a DSL for an
// expected output type, in the deterministic order induced by the
// candidate computation and the agent's policy.
type Generator struct {
	dsl        *dsl.DomainSpecificLanguage
	outputType domain.ValueType
	agent      agent.SynthesisAgent
}

// New creates a Generator. A nil agent defaults to TopDownBFS.
func New(d *dsl.DomainSpecificLanguage, outputType domain.ValueType, ag agent.SynthesisAgent) *Generator {
	if ag == nil {
		ag = agent.NewTopDownBFS()
	}
	return &Generator{dsl: d, outputType: outputType, agent: ag}
}

// Enumerate starts an enumeration bounded by maxDepth. It fails with a
// SynthesisError when no available content can fill the root blank: the
// DSL has no way to produce the output type at all.
func (g *Generator) Enumerate(maxDepth int) (*Enumeration, error) {
	contents := g.dsl.Contents()
	current := program.New(g.outputType)

	_, options := fillOptions(current, contents)
	if len(options) == 0 || len(options[0]) == 0 {
		return nil, errors.NewSynthesisError(string(g.outputType), "no available content can produce the output type")
	}

	e := &Enumeration{
		agent:    g.agent,
		contents: contents,
		maxDepth: maxDepth,
		state:    search.NewGraph(),
		frontier: newFrontier(),
		current:  current,
	}
	e.state.Add(current, 0)
	e.frontier.add(current.HashableConfig())
	e.refreshCandidates()
	return e, nil
}

// Enumeration is the pull-based sequence of complete program graphs. Its
// internal state is the search-state graph, the frontier, the current
// graph and the pending action-to-target map. The consumer drives it;
// ceasing consumption cancels the search.
type Enumeration struct {
	agent    agent.SynthesisAgent
	contents []domain.Content
	maxDepth int

	state    *search.Graph
	frontier *frontier
	current  *program.Graph

	candidates []agent.Action
	targets    map[string]*program.Graph
	done       bool
}

// Next returns the next complete program graph, or false when the
// enumeration is exhausted. Every returned graph is unique by program
// hash and has no blank deeper than the depth bound.
func (e *Enumeration) Next() (*program.Graph, bool) {
	for !e.done {
		action := e.agent.Act(e.candidates, e.current)
		if action.Kind == agent.ActionStop {
			e.done = true
			break
		}
		target, ok := e.targets[action.Key()]
		if !ok {
			// The agent picked an action outside the candidate set.
			e.done = true
			break
		}

		e.current = target.Clone()
		hash := e.current.HashableConfig()
		firstVisit := true
		if node, ok := e.state.Node(hash); ok && node.Explored {
			firstVisit = false
		}

		e.refreshCandidates()

		if firstVisit && e.current.Complete() {
			return e.current.Clone(), true
		}
	}
	return nil, false
}

// SearchSpaceSize returns the number of configurations discovered so far.
func (e *Enumeration) SearchSpaceSize() int {
	return e.state.Len()
}

// refreshCandidates recomputes the applicable actions at the current
// configuration and updates the search-state bookkeeping: the current
// node is marked explored and leaves the frontier, target nodes are
// added or depth-tightened, and newly discovered incomplete nodes join
// the frontier.
func (e *Enumeration) refreshCandidates() {
	cur := e.current
	hash := cur.HashableConfig()

	node, ok := e.state.Node(hash)
	if !ok {
		node = e.state.Add(cur, 0)
	}
	node.Explored = true
	e.frontier.remove(hash)

	var actions []agent.Action
	targets := make(map[string]*program.Graph)
	reachedByMutation := make(map[program.Hash]bool)

	// Fill product over all empty blanks.
	blanks, options := fillOptions(cur, e.contents)
	if len(blanks) > 0 {
		emitProduct(blanks, options, func(pairs []agent.BlankFill) {
			action := agent.NewFill(pairs)
			target := cur.Clone()
			for _, pair := range pairs {
				if err := target.FillBlank(pair.Blank, pair.Content); err != nil {
					return
				}
			}

			cost := 1
			if action.AllConstants() {
				cost = 0
			}
			targetDepth := node.Depth + cost

			targetHash := target.HashableConfig()
			targetNode, exists := e.state.Node(targetHash)
			if !exists {
				if targetDepth > e.maxDepth {
					return
				}
				targetNode = e.state.Add(target, targetDepth)
				if !targetNode.Complete {
					e.frontier.add(targetHash)
				}
			} else if targetDepth < targetNode.Depth {
				targetNode.Depth = targetDepth
			}

			e.state.AddEdge(hash, targetHash, action)
			reachedByMutation[targetHash] = true
			if targetNode.Explored {
				// Re-filling into an explored configuration can only
				// reproduce an already yielded program.
				return
			}
			actions = append(actions, action)
			targets[action.Key()] = targetNode.Graph
		})
	}

	// Empty the sub-blanks of each partially filled operation or if.
	for _, b := range cur.Blanks() {
		content, filled := cur.Content(b)
		if !filled || (content.Kind() != domain.KindOperation && content.Kind() != domain.KindIf) {
			continue
		}
		subs := cur.SubBlanks(b)
		anyFilled := false
		for _, sub := range subs {
			if _, ok := cur.Content(sub); ok {
				anyFilled = true
				break
			}
		}
		if !anyFilled {
			continue
		}

		parent := b
		action := agent.NewEmpty(&parent, subs...)
		target := cur.Clone()
		for _, sub := range subs {
			target.EmptyBlank(sub)
		}
		e.registerNavigation(action, target, node, hash, &actions, targets, reachedByMutation)
	}

	// Empty the root when filled.
	root := cur.Root()
	if _, filled := cur.Content(root); filled {
		action := agent.NewEmpty(nil, root)
		target := cur.Clone()
		target.EmptyBlank(root)
		e.registerNavigation(action, target, node, hash, &actions, targets, reachedByMutation)
	}

	// Jump to every frontier entry not already reachable by a fill or
	// empty action computed above.
	for _, frontierHash := range e.frontier.hashes() {
		frontierNode, ok := e.state.Node(frontierHash)
		if !ok || frontierNode.Depth > e.maxDepth || reachedByMutation[frontierHash] {
			continue
		}
		action := agent.NewJump(frontierHash)
		e.state.AddEdge(hash, frontierHash, action)
		actions = append(actions, action)
		targets[action.Key()] = frontierNode.Graph
	}

	actions = append(actions, agent.NewStop())
	e.candidates = actions
	e.targets = targets
}

// registerNavigation books an empty action. Empties are pure navigation:
// they are never dropped, even into explored configurations.
func (e *Enumeration) registerNavigation(
	action agent.Action,
	target *program.Graph,
	node *search.Node,
	hash program.Hash,
	actions *[]agent.Action,
	targets map[string]*program.Graph,
	reachedByMutation map[program.Hash]bool,
) {
	targetHash := target.HashableConfig()
	targetNode, exists := e.state.Node(targetHash)
	if !exists {
		targetNode = e.state.Add(target, node.Depth)
		if !targetNode.Complete && !targetNode.Explored {
			e.frontier.add(targetHash)
		}
	} else if node.Depth < targetNode.Depth {
		targetNode.Depth = node.Depth
	}

	e.state.AddEdge(hash, targetHash, action)
	reachedByMutation[targetHash] = true
	*actions = append(*actions, action)
	targets[action.Key()] = targetNode.Graph
}
