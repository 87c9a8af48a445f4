package program

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilemakc/progsynth/internal/domain"
	syntherrors "github.com/smilemakc/progsynth/internal/domain/errors"
)

func addOneOperation() domain.Operation {
	return domain.NewOperation("add_one", domain.TypeInt, []domain.Param{
		{Name: "number", Type: domain.TypeInt},
	}, "number + 1")
}

func TestRenderConstantReturn(t *testing.T) {
	g := New(domain.TypeInt)
	require.NoError(t, g.FillBlank(g.Root(), domain.NewConstant("N", 42)))

	artifact, err := Render(g, "generated_func", []domain.Input{
		domain.NewInput("number", domain.TypeInt),
		domain.NewInput("desc", domain.TypeString),
	})
	require.NoError(t, err)

	assert.Equal(t, "generated_func", artifact.Name)
	assert.Equal(t, strings.Join([]string{
		"// func generated_func(number: int, desc: string) -> int",
		"let N = 42;",
		"N",
	}, "\n")+"\n", artifact.Source)
	assert.Equal(t, len(artifact.Source), artifact.Len())
}

func TestRenderNestedOperationsHoistIntermediates(t *testing.T) {
	addOne := addOneOperation()
	number := domain.NewInput("number", domain.TypeInt)

	g := New(domain.TypeInt)
	require.NoError(t, g.FillBlank(g.Root(), addOne))
	level1 := g.SubBlanks(g.Root())[0]
	require.NoError(t, g.FillBlank(level1, addOne))
	level2 := g.SubBlanks(level1)[0]
	require.NoError(t, g.FillBlank(level2, addOne))
	level3 := g.SubBlanks(level2)[0]
	require.NoError(t, g.FillBlank(level3, number))

	artifact, err := Render(g, "generated_func", []domain.Input{number})
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"// func generated_func(number: int) -> int",
		"// add_one(number: int) -> int = number + 1",
		"let x1 = add_one(number);",
		"let x0 = add_one(x1);",
		"add_one(x0)",
	}, "\n")+"\n", artifact.Source)
}

func TestRenderOperationDeclarationsSorted(t *testing.T) {
	concat := domain.NewOperation("concat", domain.TypeString, []domain.Param{
		{Name: "string", Type: domain.TypeString},
		{Name: "other", Type: domain.TypeString},
	}, "string + other")
	repeat := domain.NewOperation("repeat", domain.TypeString, []domain.Param{
		{Name: "string", Type: domain.TypeString},
		{Name: "times", Type: domain.TypeInt},
	}, "repeat(string, times)")
	desc := domain.NewInput("desc", domain.TypeString)
	number := domain.NewInput("number", domain.TypeInt)

	g := New(domain.TypeString)
	require.NoError(t, g.FillBlank(g.Root(), repeat))
	subs := g.SubBlanks(g.Root())
	require.NoError(t, g.FillBlank(subs[0], concat))
	require.NoError(t, g.FillBlank(subs[1], number))
	for _, sub := range g.SubBlanks(subs[0]) {
		require.NoError(t, g.FillBlank(sub, desc))
	}

	artifact, err := Render(g, "generated_func", []domain.Input{number, desc})
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"// func generated_func(number: int, desc: string) -> string",
		"// concat(string: string, other: string) -> string = string + other",
		"// repeat(string: string, times: int) -> string = repeat(string, times)",
		"let x0 = concat(desc, desc);",
		"repeat(x0, number)",
	}, "\n")+"\n", artifact.Source)
}

func TestRenderIfBranching(t *testing.T) {
	isEven := domain.NewOperation("is_even", domain.TypeBool, []domain.Param{
		{Name: "number", Type: domain.TypeInt},
	}, "number % 2 == 0")
	number := domain.NewInput("number", domain.TypeInt)

	g := New(domain.TypeString)
	require.NoError(t, g.FillBlank(g.Root(), domain.IfBranching{}))
	subs := g.SubBlanks(g.Root())
	require.NoError(t, g.FillBlank(subs[0], isEven))
	require.NoError(t, g.FillBlank(subs[1], domain.NewConstant("EVEN", "even")))
	require.NoError(t, g.FillBlank(subs[2], domain.NewConstant("ODD", "odd")))
	require.NoError(t, g.FillBlank(g.SubBlanks(subs[0])[0], number))

	artifact, err := Render(g, "generated_func", []domain.Input{number})
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"// func generated_func(number: int) -> string",
		"// is_even(number: int) -> bool = number % 2 == 0",
		"let EVEN = \"even\";",
		"let ODD = \"odd\";",
		"let x0 = is_even(number);",
		"x0 ? EVEN : ODD",
	}, "\n")+"\n", artifact.Source)
}

func TestRenderIncompleteGraphFails(t *testing.T) {
	g := New(domain.TypeInt)
	require.NoError(t, g.FillBlank(g.Root(), addOneOperation()))

	_, err := Render(g, "generated_func", nil)
	require.Error(t, err)
	var renderErr *syntherrors.RenderError
	assert.ErrorAs(t, err, &renderErr)
}
