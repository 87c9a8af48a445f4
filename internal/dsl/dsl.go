// Package dsl defines the domain-specific language handed to the
// synthesizer: the inputs, constants, operations and standard operations
// available as blank contents, and the loader for textual DSL modules.
package dsl

import (
	"fmt"

	"github.com/smilemakc/progsynth/internal/domain"
)

// DomainSpecificLanguage is the set of symbols available to fill blanks.
// Declaration order is preserved and meaningful: it drives the
// deterministic candidate enumeration order.
type DomainSpecificLanguage struct {
	inputs     []domain.Input
	constants  []domain.Constant
	operations []domain.Operation
	standard   []domain.Content
}

// New creates an empty DSL.
func New() *DomainSpecificLanguage {
	return &DomainSpecificLanguage{}
}

// AddInput appends a named typed input.
func (d *DomainSpecificLanguage) AddInput(name string, typ domain.ValueType) *DomainSpecificLanguage {
	d.inputs = append(d.inputs, domain.NewInput(name, typ))
	return d
}

// AddConstant appends a named constant; its type derives from the value.
func (d *DomainSpecificLanguage) AddConstant(name string, value any) *DomainSpecificLanguage {
	d.constants = append(d.constants, domain.NewConstant(name, value))
	return d
}

// AddOperation appends an operation.
func (d *DomainSpecificLanguage) AddOperation(op domain.Operation) *DomainSpecificLanguage {
	d.operations = append(d.operations, op)
	return d
}

// WithIfBranching enables the if-branching standard operation.
func (d *DomainSpecificLanguage) WithIfBranching() *DomainSpecificLanguage {
	for _, std := range d.standard {
		if std.Kind() == domain.KindIf {
			return d
		}
	}
	d.standard = append(d.standard, domain.IfBranching{})
	return d
}

// Inputs returns the declared inputs in order.
func (d *DomainSpecificLanguage) Inputs() []domain.Input {
	inputs := make([]domain.Input, len(d.inputs))
	copy(inputs, d.inputs)
	return inputs
}

// Constants returns the declared constants in order.
func (d *DomainSpecificLanguage) Constants() []domain.Constant {
	constants := make([]domain.Constant, len(d.constants))
	copy(constants, d.constants)
	return constants
}

// Operations returns the declared operations in order.
func (d *DomainSpecificLanguage) Operations() []domain.Operation {
	operations := make([]domain.Operation, len(d.operations))
	copy(operations, d.operations)
	return operations
}

// StandardOperations returns the enabled standard operations.
func (d *DomainSpecificLanguage) StandardOperations() []domain.Content {
	standard := make([]domain.Content, len(d.standard))
	copy(standard, d.standard)
	return standard
}

// Contents returns every available content in candidate order: inputs,
// constants, operations, then standard operations.
func (d *DomainSpecificLanguage) Contents() []domain.Content {
	contents := make([]domain.Content, 0, len(d.inputs)+len(d.constants)+len(d.operations)+len(d.standard))
	for _, in := range d.inputs {
		contents = append(contents, in)
	}
	for _, c := range d.constants {
		contents = append(contents, c)
	}
	for _, op := range d.operations {
		contents = append(contents, op)
	}
	contents = append(contents, d.standard...)
	return contents
}

// Clone returns an independent copy of the DSL.
func (d *DomainSpecificLanguage) Clone() *DomainSpecificLanguage {
	clone := New()
	clone.inputs = append(clone.inputs, d.inputs...)
	clone.constants = append(clone.constants, d.constants...)
	clone.operations = append(clone.operations, d.operations...)
	clone.standard = append(clone.standard, d.standard...)
	return clone
}

// Augment merges another DSL into this one. Symbols are equal by name;
// merging two different symbols under one name is rejected loudly
// instead of silently colliding.
func (d *DomainSpecificLanguage) Augment(other *DomainSpecificLanguage) error {
	merged := d.Clone()
	merged.inputs = append(merged.inputs, other.inputs...)
	merged.constants = append(merged.constants, other.constants...)
	merged.operations = append(merged.operations, other.operations...)
	for _, std := range other.standard {
		if std.Kind() == domain.KindIf {
			merged.WithIfBranching()
		}
	}
	if err := merged.Validate(); err != nil {
		return err
	}
	*d = *merged
	return nil
}

// Validate checks that no two symbols share a name.
func (d *DomainSpecificLanguage) Validate() error {
	seen := make(map[string]string)
	check := func(name, kind string) error {
		if existing, ok := seen[name]; ok {
			return fmt.Errorf("duplicate symbol %q: declared as both %s and %s", name, existing, kind)
		}
		seen[name] = kind
		return nil
	}
	for _, in := range d.inputs {
		if err := check(in.Name(), "input"); err != nil {
			return err
		}
	}
	for _, c := range d.constants {
		if err := check(c.Name(), "constant"); err != nil {
			return err
		}
	}
	for _, op := range d.operations {
		if err := check(op.Name(), "operation"); err != nil {
			return err
		}
	}
	return nil
}
