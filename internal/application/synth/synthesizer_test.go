package synth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilemakc/progsynth/internal/domain"
	syntherrors "github.com/smilemakc/progsynth/internal/domain/errors"
	"github.com/smilemakc/progsynth/internal/dsl"
	"github.com/smilemakc/progsynth/internal/infrastructure/storage"
	"github.com/smilemakc/progsynth/internal/task"
)

func quickstartDSL() *dsl.DomainSpecificLanguage {
	return dsl.New().
		AddConstant("TWO", 2).
		AddConstant("THREE", 3).
		AddOperation(domain.NewOperation("repeat", domain.TypeString, []domain.Param{
			{Name: "string", Type: domain.TypeString},
			{Name: "times", Type: domain.TypeInt},
		}, "repeat(string, times)")).
		AddOperation(domain.NewOperation("concat", domain.TypeString, []domain.Param{
			{Name: "string", Type: domain.TypeString},
			{Name: "other", Type: domain.TypeString},
		}, "string + other"))
}

func quickstartTask(t *testing.T) *task.Task {
	t.Helper()
	tk, err := task.New([]task.Example{
		{Inputs: map[string]any{"input_string": "abc"}, Output: "abcabcabc"},
		{Inputs: map[string]any{"input_string": "ab"}, Output: "ababab"},
		{Inputs: map[string]any{"input_string": "abcd"}, Output: "abcdabcdabcd"},
	}, "input_string")
	require.NoError(t, err)
	return tk
}

func TestRunFindsTriplingPrograms(t *testing.T) {
	s := New(quickstartDSL(), quickstartTask(t))

	result, err := s.Run(context.Background(), RunOptions{MaxDepth: 2})
	require.NoError(t, err)

	require.NotEmpty(t, result.SuccessfulPrograms)
	assert.Equal(t, len(result.SuccessfulPrograms), result.Stats.NSuccessful)
	assert.Greater(t, result.Stats.NGenerated, result.Stats.NSuccessful)

	var sources []string
	for _, artifact := range result.SuccessfulPrograms {
		assert.Equal(t, DefaultProgramName, artifact.Name)
		sources = append(sources, artifact.Source)
	}

	found := false
	for _, source := range sources {
		if strings.Contains(source, "repeat(input_string, THREE)") {
			found = true
			break
		}
	}
	assert.True(t, found, "repeat(input_string, THREE) should satisfy every example, got:\n%s",
		strings.Join(sources, "\n---\n"))

	smallest, ok := result.Smallest()
	require.True(t, ok)
	assert.Contains(t, smallest.Source, "repeat(input_string, THREE)")
}

func TestRunIsDeterministic(t *testing.T) {
	first, err := New(quickstartDSL(), quickstartTask(t)).Run(context.Background(), RunOptions{MaxDepth: 2})
	require.NoError(t, err)
	second, err := New(quickstartDSL(), quickstartTask(t)).Run(context.Background(), RunOptions{MaxDepth: 2})
	require.NoError(t, err)

	require.Equal(t, first.Stats.NGenerated, second.Stats.NGenerated)
	require.Len(t, second.SuccessfulPrograms, len(first.SuccessfulPrograms))
	for i := range first.SuccessfulPrograms {
		assert.Equal(t, first.SuccessfulPrograms[i].Source, second.SuccessfulPrograms[i].Source)
	}
}

func TestRunPersistsRunAndArtifacts(t *testing.T) {
	store := storage.NewMemoryStore()
	s := New(quickstartDSL(), quickstartTask(t), WithStore(store))

	result, err := s.Run(context.Background(), RunOptions{MaxDepth: 1})
	require.NoError(t, err)

	ctx := context.Background()
	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, result.Stats.NGenerated, runs[0].NGenerated)
	assert.Equal(t, result.Stats.NSuccessful, runs[0].NSuccessful)
	assert.Equal(t, 1, runs[0].MaxDepth)
	assert.Equal(t, domain.TypeString.String(), runs[0].OutputType)

	artifacts, err := store.ListArtifactsByRun(ctx, runs[0].ID)
	require.NoError(t, err)
	require.Len(t, artifacts, result.Stats.NGenerated)

	successful := 0
	for i, artifact := range artifacts {
		assert.Equal(t, i, artifact.Position)
		if artifact.Successful {
			successful++
		}
	}
	assert.Equal(t, result.Stats.NSuccessful, successful)
}

func TestRunSurfacesSynthesisError(t *testing.T) {
	d := dsl.New().AddConstant("N", 42)
	tk, err := task.New([]task.Example{
		{Inputs: map[string]any{"flag": true}, Output: "yes"},
	}, "flag")
	require.NoError(t, err)

	_, err = New(d, tk).Run(context.Background(), RunOptions{MaxDepth: 2})
	require.Error(t, err)
	var synthErr *syntherrors.SynthesisError
	assert.ErrorAs(t, err, &synthErr)
}

func TestRunRejectsSymbolCollisionWithTaskInputs(t *testing.T) {
	d := dsl.New().AddConstant("number", 42)
	tk, err := task.New([]task.Example{
		{Inputs: map[string]any{"number": 1}, Output: 1},
	}, "number")
	require.NoError(t, err)

	_, err = New(d, tk).Run(context.Background(), RunOptions{MaxDepth: 1})
	require.Error(t, err)
}

func TestCancelledContextStopsEnumeration(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(quickstartDSL(), quickstartTask(t)).Run(ctx, RunOptions{MaxDepth: 2})
	require.NoError(t, err)
	assert.Zero(t, result.Stats.NGenerated)
}
