package agent

import (
	"github.com/smilemakc/progsynth/internal/program"
)

// SynthesisAgent chooses one action among the candidates computed for
// the current program graph. Candidate order is deterministic and
// meaningful: it reflects the generator's traversal order.
type SynthesisAgent interface {
	Act(candidates []Action, graph *program.Graph) Action
}

// TopDownBFS is the default strategy: a top down enumeration of all
// programs. It fills all empty blanks with the first available options,
// prioritizing variables so configurations of the same depth are
// exhausted before descending.
//
// When several all-constants fills exist for the same blank tuple, the
// tuple is remembered; after the chosen fill completes a program, the
// remembered tuple makes the agent empty those blanks again so the next
// round picks the next constant combination.
type TopDownBFS struct {
	blanksWithOtherConstants map[string]bool
}

// NewTopDownBFS creates a new TopDownBFS agent.
func NewTopDownBFS() *TopDownBFS {
	return &TopDownBFS{blanksWithOtherConstants: make(map[string]bool)}
}

// Act implements SynthesisAgent.
func (a *TopDownBFS) Act(candidates []Action, graph *program.Graph) Action {
	var fills, empties, jumps []Action
	stop := NewStop()
	for _, candidate := range candidates {
		switch candidate.Kind {
		case ActionFill:
			fills = append(fills, candidate)
		case ActionEmpty:
			empties = append(empties, candidate)
		case ActionJump:
			jumps = append(jumps, candidate)
		case ActionStop:
			stop = candidate
		}
	}

	var constantFills []Action
	for _, fill := range fills {
		if fill.AllConstants() {
			constantFills = append(constantFills, fill)
		}
	}

	if len(constantFills) > 0 {
		chosen := constantFills[0]
		chosenKey := chosen.BlanksKey()
		for _, other := range constantFills[1:] {
			if other.BlanksKey() == chosenKey {
				a.blanksWithOtherConstants[chosenKey] = true
				break
			}
		}
		return chosen
	}

	for _, empty := range empties {
		key := empty.BlanksKey()
		if a.blanksWithOtherConstants[key] {
			delete(a.blanksWithOtherConstants, key)
			return empty
		}
	}

	if len(jumps) > 0 {
		a.blanksWithOtherConstants = make(map[string]bool)
		return jumps[0]
	}

	if len(empties) > 0 {
		return empties[0]
	}

	return stop
}
