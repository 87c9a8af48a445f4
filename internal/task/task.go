// Package task models a synthesis task: input/output examples with the
// input and output types derived from them.
package task

import (
	"fmt"
	"sort"
	"strings"

	"github.com/smilemakc/progsynth/internal/domain"
)

// Example is one observed mapping from named inputs to the expected
// output.
type Example struct {
	Inputs map[string]any
	Output any
}

// Task is a set of examples sharing input names, input types and an
// output type. The first example is the defining one: types derive from
// it and every other example must be compatible.
type Task struct {
	examples   []Example
	inputOrder []string
	inputTypes map[string]domain.ValueType
	outputType domain.ValueType
}

// New creates a task from examples. The input order is declaration
// order for the synthesized program's parameters; when omitted it
// defaults to the defining example's names in lexicographic order.
func New(examples []Example, inputOrder ...string) (*Task, error) {
	if len(examples) == 0 {
		return nil, fmt.Errorf("a task needs at least one example")
	}

	defining := examples[0]

	if len(inputOrder) == 0 {
		inputOrder = sortedNames(defining.Inputs)
	}
	if len(inputOrder) != len(defining.Inputs) {
		return nil, fmt.Errorf("input order names %d inputs, defining example has %d", len(inputOrder), len(defining.Inputs))
	}

	inputTypes := make(map[string]domain.ValueType, len(inputOrder))
	for _, name := range inputOrder {
		value, ok := defining.Inputs[name]
		if !ok {
			return nil, fmt.Errorf("input %q is not present in the defining example", name)
		}
		inputTypes[name] = domain.InferType(value)
	}
	outputType := domain.InferType(defining.Output)

	seen := make(map[string]int)
	for i, example := range examples {
		for name, value := range example.Inputs {
			expected, ok := inputTypes[name]
			if !ok {
				return nil, fmt.Errorf("example %d has unknown argument %q", i, name)
			}
			if got := domain.InferType(value); got != expected {
				return nil, fmt.Errorf("example %d argument %q is %s, defining example has %s", i, name, got, expected)
			}
		}
		if len(example.Inputs) != len(inputTypes) {
			return nil, fmt.Errorf("example %d has %d inputs, defining example has %d", i, len(example.Inputs), len(inputTypes))
		}
		if got := domain.InferType(example.Output); got != outputType {
			return nil, fmt.Errorf("example %d output is %s, defining example has %s", i, got, outputType)
		}

		key := exampleKey(inputOrder, example.Inputs)
		if previous, dup := seen[key]; dup {
			return nil, fmt.Errorf("example %d repeats the inputs of example %d", i, previous)
		}
		seen[key] = i
	}

	kept := make([]Example, len(examples))
	copy(kept, examples)

	return &Task{
		examples:   kept,
		inputOrder: inputOrder,
		inputTypes: inputTypes,
		outputType: outputType,
	}, nil
}

func sortedNames(inputs map[string]any) []string {
	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func exampleKey(order []string, inputs map[string]any) string {
	parts := make([]string, 0, len(order))
	for _, name := range order {
		parts = append(parts, fmt.Sprintf("%s=%v", name, inputs[name]))
	}
	return strings.Join(parts, "|")
}

// Examples returns every example, defining one included.
func (t *Task) Examples() []Example {
	examples := make([]Example, len(t.examples))
	copy(examples, t.examples)
	return examples
}

// InputNames returns the input names in declaration order.
func (t *Task) InputNames() []string {
	names := make([]string, len(t.inputOrder))
	copy(names, t.inputOrder)
	return names
}

// InputType returns the type of a named input.
func (t *Task) InputType(name string) (domain.ValueType, bool) {
	vt, ok := t.inputTypes[name]
	return vt, ok
}

// OutputType returns the expected output type.
func (t *Task) OutputType() domain.ValueType {
	return t.outputType
}
