package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilemakc/progsynth/internal/domain"
	"github.com/smilemakc/progsynth/internal/program"
)

var (
	rootBlank = domain.Blank{ID: "return", Type: domain.TypeInt}
	numberIn  = domain.NewInput("number", domain.TypeInt)
	nConst    = domain.NewConstant("N", 42)
	addOneOp  = domain.NewOperation("add_one", domain.TypeInt, []domain.Param{
		{Name: "number", Type: domain.TypeInt},
	}, "number + 1")
)

func fill(content domain.Content) Action {
	return NewFill([]BlankFill{{Blank: rootBlank, Content: content}})
}

func TestActionAllConstants(t *testing.T) {
	assert.True(t, fill(numberIn).AllConstants())
	assert.True(t, fill(nConst).AllConstants())
	assert.False(t, fill(addOneOp).AllConstants())
	assert.False(t, NewStop().AllConstants())
	assert.False(t, NewFill([]BlankFill{
		{Blank: rootBlank, Content: numberIn},
		{Blank: domain.Blank{ID: "return>add_one>number", Type: domain.TypeInt}, Content: addOneOp},
	}).AllConstants())
}

func TestActionKeysAreDeterministic(t *testing.T) {
	assert.Equal(t, fill(numberIn).Key(), fill(numberIn).Key())
	assert.NotEqual(t, fill(numberIn).Key(), fill(nConst).Key())
	assert.NotEqual(t, NewEmpty(nil, rootBlank).Key(), NewJump(program.Hash("h")).Key())
	assert.Equal(t, "stop", NewStop().Key())
}

func TestTopDownBFS_PrefersConstantFills(t *testing.T) {
	a := NewTopDownBFS()
	g := program.New(domain.TypeInt)

	candidates := []Action{fill(numberIn), fill(nConst), fill(addOneOp), NewStop()}
	chosen := a.Act(candidates, g)
	assert.Equal(t, fill(numberIn).Key(), chosen.Key())
}

func TestTopDownBFS_BacktracksRememberedConstantGroups(t *testing.T) {
	a := NewTopDownBFS()
	g := program.New(domain.TypeInt)

	// Two all-constants fills over the same blank tuple: the tuple is
	// remembered when the first is chosen.
	chosen := a.Act([]Action{fill(numberIn), fill(nConst), NewStop()}, g)
	assert.Equal(t, fill(numberIn).Key(), chosen.Key())

	// Next round offers only navigation: the remembered tuple makes the
	// agent empty those blanks to reach the other constant.
	emptyRoot := NewEmpty(nil, rootBlank)
	jump := NewJump(program.Hash("elsewhere"))
	chosen = a.Act([]Action{emptyRoot, jump, NewStop()}, g)
	assert.Equal(t, emptyRoot.Key(), chosen.Key())

	// The memory is consumed: now the jump wins over the empty.
	chosen = a.Act([]Action{emptyRoot, jump, NewStop()}, g)
	assert.Equal(t, jump.Key(), chosen.Key())
}

func TestTopDownBFS_SingleConstantChoiceLeavesNoMemory(t *testing.T) {
	a := NewTopDownBFS()
	g := program.New(domain.TypeInt)

	chosen := a.Act([]Action{fill(numberIn), fill(addOneOp), NewStop()}, g)
	assert.Equal(t, fill(numberIn).Key(), chosen.Key())

	emptyRoot := NewEmpty(nil, rootBlank)
	jump := NewJump(program.Hash("elsewhere"))
	chosen = a.Act([]Action{emptyRoot, jump, NewStop()}, g)
	assert.Equal(t, jump.Key(), chosen.Key())
}

func TestTopDownBFS_JumpClearsMemory(t *testing.T) {
	a := NewTopDownBFS()
	g := program.New(domain.TypeInt)

	a.Act([]Action{fill(numberIn), fill(nConst), NewStop()}, g)

	// A jump resets the constants memory.
	jump := NewJump(program.Hash("elsewhere"))
	chosen := a.Act([]Action{jump, NewStop()}, g)
	assert.Equal(t, jump.Key(), chosen.Key())

	emptyRoot := NewEmpty(nil, rootBlank)
	chosen = a.Act([]Action{emptyRoot, NewJump(program.Hash("other")), NewStop()}, g)
	assert.Equal(t, ActionJump, chosen.Kind)
}

func TestTopDownBFS_FallsBackToEmptyThenStop(t *testing.T) {
	a := NewTopDownBFS()
	g := program.New(domain.TypeInt)

	emptyRoot := NewEmpty(nil, rootBlank)
	chosen := a.Act([]Action{emptyRoot, NewStop()}, g)
	assert.Equal(t, emptyRoot.Key(), chosen.Key())

	chosen = a.Act([]Action{NewStop()}, g)
	require.Equal(t, ActionStop, chosen.Kind)
}
