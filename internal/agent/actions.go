// Package agent holds the search action algebra and the decision
// strategies choosing among candidate actions during enumeration.
package agent

import (
	"strings"

	"github.com/smilemakc/progsynth/internal/domain"
	"github.com/smilemakc/progsynth/internal/program"
)

// ActionKind discriminates the variants of the Action sum
type ActionKind string

const (
	// ActionFill fills every empty blank with one chosen content each
	ActionFill ActionKind = "fill"

	// ActionEmpty empties a tuple of blanks, dropping their subtrees
	ActionEmpty ActionKind = "empty"

	// ActionJump moves the search to an unexplored frontier configuration
	ActionJump ActionKind = "jump"

	// ActionStop terminates the enumeration
	ActionStop ActionKind = "stop"
)

// IsValid checks if the ActionKind is valid
func (ak ActionKind) IsValid() bool {
	switch ak {
	case ActionFill, ActionEmpty, ActionJump, ActionStop:
		return true
	default:
		return false
	}
}

// String returns string representation of ActionKind
func (ak ActionKind) String() string {
	return string(ak)
}

// BlankFill pairs one blank with the content chosen to fill it.
type BlankFill struct {
	Blank   domain.Blank
	Content domain.Content
}

// Action is one applicable search step. The populated payload depends on
// Kind: Pairs for fills, Parent/Blanks for empties, Target for jumps.
type Action struct {
	Kind ActionKind

	// Pairs is the ordered (blank, content) tuple of a fill
	Pairs []BlankFill

	// Parent is the blank whose content's sub-blanks are emptied, nil
	// when emptying the root
	Parent *domain.Blank

	// Blanks is the tuple of blanks an empty action clears
	Blanks []domain.Blank

	// Target is the program hash a jump moves to
	Target program.Hash
}

// NewFill creates a fill action over the given pairs.
func NewFill(pairs []BlankFill) Action {
	return Action{Kind: ActionFill, Pairs: pairs}
}

// NewEmpty creates an empty action over the given blanks.
func NewEmpty(parent *domain.Blank, blanks ...domain.Blank) Action {
	return Action{Kind: ActionEmpty, Parent: parent, Blanks: blanks}
}

// NewJump creates a jump action to the given frontier hash.
func NewJump(target program.Hash) Action {
	return Action{Kind: ActionJump, Target: target}
}

// NewStop creates the stop action.
func NewStop() Action {
	return Action{Kind: ActionStop}
}

// AllConstants reports whether a fill consists only of inputs and
// constants. All-constants fills do not increase program depth.
func (a Action) AllConstants() bool {
	if a.Kind != ActionFill {
		return false
	}
	for _, pair := range a.Pairs {
		if !domain.IsVariable(pair.Content) {
			return false
		}
	}
	return true
}

// BlanksKey returns the identity of the blank tuple an action touches.
// It is the memory key of the TopDownBFS constants backtracking.
func (a Action) BlanksKey() string {
	switch a.Kind {
	case ActionFill:
		ids := make([]string, 0, len(a.Pairs))
		for _, pair := range a.Pairs {
			ids = append(ids, pair.Blank.ID)
		}
		return strings.Join(ids, "|")
	case ActionEmpty:
		ids := make([]string, 0, len(a.Blanks))
		for _, b := range a.Blanks {
			ids = append(ids, b.ID)
		}
		return strings.Join(ids, "|")
	default:
		return ""
	}
}

// Key returns a deterministic label identifying the action. It is used
// as the edge label in the search-state graph and as the lookup key of
// the action-to-target map.
func (a Action) Key() string {
	var sb strings.Builder
	sb.WriteString(string(a.Kind))
	switch a.Kind {
	case ActionFill:
		for _, pair := range a.Pairs {
			sb.WriteByte(':')
			sb.WriteString(pair.Blank.ID)
			sb.WriteByte('=')
			sb.WriteString(pair.Content.ID())
		}
	case ActionEmpty:
		for _, b := range a.Blanks {
			sb.WriteByte(':')
			sb.WriteString(b.ID)
		}
	case ActionJump:
		sb.WriteByte(':')
		sb.WriteString(string(a.Target))
	}
	return sb.String()
}
