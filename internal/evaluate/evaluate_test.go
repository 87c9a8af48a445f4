package evaluate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilemakc/progsynth/internal/domain"
	"github.com/smilemakc/progsynth/internal/dsl"
	"github.com/smilemakc/progsynth/internal/program"
	"github.com/smilemakc/progsynth/internal/task"
)

func stringTask(t *testing.T) *task.Task {
	t.Helper()
	tk, err := task.New([]task.Example{
		{Inputs: map[string]any{"input_string": "abc"}, Output: "abcabcabc"},
		{Inputs: map[string]any{"input_string": "ab"}, Output: "ababab"},
		{Inputs: map[string]any{"input_string": "abcd"}, Output: "abcdabcdabcd"},
	}, "input_string")
	require.NoError(t, err)
	return tk
}

func TestEvaluateSuccessfulArtifact(t *testing.T) {
	d := dsl.New().
		AddInput("input_string", domain.TypeString).
		AddConstant("THREE", 3).
		AddOperation(domain.NewOperation("repeat", domain.TypeString, []domain.Param{
			{Name: "string", Type: domain.TypeString},
			{Name: "times", Type: domain.TypeInt},
		}, "repeat(string, times)"))

	evaluator, err := New(d)
	require.NoError(t, err)

	artifact := program.Artifact{
		Name: "generated_func",
		Source: "// func generated_func(input_string: string) -> string\n" +
			"// repeat(string: string, times: int) -> string = repeat(string, times)\n" +
			"let THREE = 3;\n" +
			"repeat(input_string, THREE)\n",
	}

	result, err := evaluator.Evaluate(artifact, stringTask(t))
	require.NoError(t, err)
	assert.True(t, result.FullSuccess())
	require.Len(t, result.IndividualResults, 3)
	assert.Equal(t, "abcabcabc", result.IndividualResults[0].Result)
}

func TestEvaluateFailingArtifact(t *testing.T) {
	d := dsl.New().
		AddInput("input_string", domain.TypeString).
		AddOperation(domain.NewOperation("concat", domain.TypeString, []domain.Param{
			{Name: "string", Type: domain.TypeString},
			{Name: "other", Type: domain.TypeString},
		}, "string + other"))

	evaluator, err := New(d)
	require.NoError(t, err)

	artifact := program.Artifact{
		Name:   "generated_func",
		Source: "concat(input_string, input_string)\n",
	}

	result, err := evaluator.Evaluate(artifact, stringTask(t))
	require.NoError(t, err)
	assert.False(t, result.FullSuccess())
	for _, exampleResult := range result.IndividualResults {
		assert.NoError(t, exampleResult.Err)
		assert.False(t, exampleResult.Success())
	}
}

func TestEvaluateIfBranchingArtifact(t *testing.T) {
	d := dsl.New().
		AddInput("number", domain.TypeInt).
		AddConstant("EVEN", "even").
		AddConstant("ODD", "odd").
		AddOperation(domain.NewOperation("is_even", domain.TypeBool, []domain.Param{
			{Name: "number", Type: domain.TypeInt},
		}, "number % 2 == 0"))

	evaluator, err := New(d)
	require.NoError(t, err)

	tk, err := task.New([]task.Example{
		{Inputs: map[string]any{"number": 2}, Output: "even"},
		{Inputs: map[string]any{"number": 3}, Output: "odd"},
	}, "number")
	require.NoError(t, err)

	artifact := program.Artifact{
		Name: "generated_func",
		Source: "let EVEN = \"even\";\n" +
			"let ODD = \"odd\";\n" +
			"let x0 = is_even(number);\n" +
			"x0 ? EVEN : ODD\n",
	}

	result, err := evaluator.Evaluate(artifact, tk)
	require.NoError(t, err)
	assert.True(t, result.FullSuccess())
}

func TestEvaluateReflectedOperation(t *testing.T) {
	addOne, err := domain.OperationFromFunc("add_one", func(number int) int { return number + 1 }, "number")
	require.NoError(t, err)

	d := dsl.New().
		AddInput("number", domain.TypeInt).
		AddOperation(addOne)

	evaluator, err := New(d)
	require.NoError(t, err)

	tk, err := task.New([]task.Example{
		{Inputs: map[string]any{"number": 1}, Output: 2},
		{Inputs: map[string]any{"number": 4}, Output: 5},
	}, "number")
	require.NoError(t, err)

	artifact := program.Artifact{Name: "generated_func", Source: "add_one(number)\n"}

	result, err := evaluator.Evaluate(artifact, tk)
	require.NoError(t, err)
	assert.True(t, result.FullSuccess())
}

func TestOperationFailureIsRecordedPerExample(t *testing.T) {
	divide, err := domain.OperationFromFunc("divide", func(a, b int) int { return a / b }, "a", "b")
	require.NoError(t, err)

	d := dsl.New().
		AddInput("a", domain.TypeInt).
		AddInput("b", domain.TypeInt).
		AddOperation(divide)

	evaluator, err := New(d)
	require.NoError(t, err)

	tk, err := task.New([]task.Example{
		{Inputs: map[string]any{"a": 4, "b": 2}, Output: 2},
		{Inputs: map[string]any{"a": 4, "b": 0}, Output: 0},
	}, "a", "b")
	require.NoError(t, err)

	artifact := program.Artifact{Name: "generated_func", Source: "divide(a, b)\n"}

	result, err := evaluator.Evaluate(artifact, tk)
	require.NoError(t, err)

	require.Len(t, result.IndividualResults, 2)
	assert.True(t, result.IndividualResults[0].Success())
	assert.Error(t, result.IndividualResults[1].Err)
	assert.False(t, result.FullSuccess())
}

func TestNumericWidthsCompareEqual(t *testing.T) {
	assert.True(t, valuesEqual(int64(3), 3))
	assert.True(t, valuesEqual(3.0, float64(3)))
	assert.False(t, valuesEqual(3, "3"))
	assert.False(t, valuesEqual(int64(3), 3.0))
}
