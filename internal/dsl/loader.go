package dsl

import (
	"fmt"
	"os"

	"github.com/expr-lang/expr"
	"gopkg.in/yaml.v3"

	"github.com/smilemakc/progsynth/internal/domain"
	"github.com/smilemakc/progsynth/internal/domain/errors"
)

// moduleDoc is the YAML shape of a DSL module. Constants are decoded
// through a yaml.Node so their document order is preserved.
type moduleDoc struct {
	Constants          yaml.Node      `yaml:"constants"`
	Operations         []operationDoc `yaml:"operations"`
	StandardOperations []string       `yaml:"standard_operations"`
}

type operationDoc struct {
	Name    string     `yaml:"name"`
	Params  []paramDoc `yaml:"params"`
	Returns string     `yaml:"returns"`
	Source  string     `yaml:"source"`
}

type paramDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// LoadModule parses a textual DSL module. Every operation must declare a
// type for each parameter and for its return value; a missing or unknown
// annotation fails with AnnotationMissingError. Operation sources are
// compile-checked at load time.
func LoadModule(source []byte) (*DomainSpecificLanguage, error) {
	var doc moduleDoc
	if err := yaml.Unmarshal(source, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse DSL module: %w", err)
	}

	d := New()

	if err := decodeConstants(&doc.Constants, d); err != nil {
		return nil, err
	}

	for _, opDoc := range doc.Operations {
		op, err := decodeOperation(opDoc)
		if err != nil {
			return nil, err
		}
		d.AddOperation(op)
	}

	for _, std := range doc.StandardOperations {
		switch std {
		case "if":
			d.WithIfBranching()
		default:
			return nil, fmt.Errorf("unknown standard operation %q", std)
		}
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadModuleFile loads a DSL module from a file.
func LoadModuleFile(path string) (*DomainSpecificLanguage, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read DSL module %s: %w", path, err)
	}
	return LoadModule(source)
}

// decodeConstants walks the constants mapping node in document order.
func decodeConstants(node *yaml.Node, d *DomainSpecificLanguage) error {
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("constants must be a mapping of name to value")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		var value any
		if err := valueNode.Decode(&value); err != nil {
			return fmt.Errorf("failed to decode constant %q: %w", keyNode.Value, err)
		}
		d.AddConstant(keyNode.Value, value)
	}
	return nil
}

func decodeOperation(doc operationDoc) (domain.Operation, error) {
	if doc.Name == "" {
		return domain.Operation{}, fmt.Errorf("operation without a name")
	}
	if doc.Source == "" {
		return domain.Operation{}, fmt.Errorf("operation %q has no source", doc.Name)
	}
	if doc.Returns == "" {
		return domain.Operation{}, errors.NewAnnotationMissingError(doc.Name, "missing return type annotation")
	}

	output, ok := domain.ParseValueType(doc.Returns)
	if !ok {
		return domain.Operation{}, errors.NewAnnotationMissingError(
			doc.Name, fmt.Sprintf("unknown return type %q", doc.Returns))
	}

	params := make([]domain.Param, 0, len(doc.Params))
	for _, p := range doc.Params {
		if p.Name == "" {
			return domain.Operation{}, errors.NewAnnotationMissingError(doc.Name, "parameter without a name")
		}
		if p.Type == "" {
			return domain.Operation{}, errors.NewAnnotationMissingError(
				doc.Name, fmt.Sprintf("missing type annotation of parameter %q", p.Name))
		}
		typ, ok := domain.ParseValueType(p.Type)
		if !ok {
			return domain.Operation{}, errors.NewAnnotationMissingError(
				doc.Name, fmt.Sprintf("unknown type %q of parameter %q", p.Type, p.Name))
		}
		params = append(params, domain.Param{Name: p.Name, Type: typ})
	}

	// Declaring the parameters lets them shadow expression builtins of
	// the same name (e.g. a parameter called `string`).
	declared := make(map[string]any, len(params))
	for _, p := range params {
		declared[p.Name] = nil
	}
	if _, err := expr.Compile(doc.Source, expr.Env(declared)); err != nil {
		return domain.Operation{}, fmt.Errorf("operation %q has an invalid source: %w", doc.Name, err)
	}

	return domain.NewOperation(doc.Name, output, params, doc.Source), nil
}
