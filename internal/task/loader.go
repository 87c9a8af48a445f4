package task

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// taskDoc is the YAML shape of a task file. Inputs are decoded through
// a yaml.Node so the defining example's declaration order is preserved.
type taskDoc struct {
	Examples []exampleDoc `yaml:"examples"`
}

type exampleDoc struct {
	Inputs yaml.Node `yaml:"inputs"`
	Output yaml.Node `yaml:"output"`
}

// Load parses a textual task document.
func Load(source []byte) (*Task, error) {
	var doc taskDoc
	if err := yaml.Unmarshal(source, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse task: %w", err)
	}
	if len(doc.Examples) == 0 {
		return nil, fmt.Errorf("a task needs at least one example")
	}

	var inputOrder []string
	examples := make([]Example, 0, len(doc.Examples))
	for i, exDoc := range doc.Examples {
		inputs, order, err := decodeInputs(&exDoc.Inputs)
		if err != nil {
			return nil, fmt.Errorf("example %d: %w", i, err)
		}
		if i == 0 {
			inputOrder = order
		}

		var output any
		if err := exDoc.Output.Decode(&output); err != nil {
			return nil, fmt.Errorf("example %d: failed to decode output: %w", i, err)
		}
		examples = append(examples, Example{Inputs: inputs, Output: output})
	}

	return New(examples, inputOrder...)
}

// LoadFile loads a task from a file.
func LoadFile(path string) (*Task, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task %s: %w", path, err)
	}
	return Load(source)
}

func decodeInputs(node *yaml.Node) (map[string]any, []string, error) {
	if node.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("inputs must be a mapping of name to value")
	}
	inputs := make(map[string]any, len(node.Content)/2)
	order := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		var value any
		if err := valueNode.Decode(&value); err != nil {
			return nil, nil, fmt.Errorf("failed to decode input %q: %w", keyNode.Value, err)
		}
		inputs[keyNode.Value] = value
		order = append(order, keyNode.Value)
	}
	return inputs, order, nil
}
