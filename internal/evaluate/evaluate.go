// Package evaluate runs rendered artifacts against a task's examples
// using the expression backend.
package evaluate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/smilemakc/progsynth/internal/domain"
	"github.com/smilemakc/progsynth/internal/domain/errors"
	"github.com/smilemakc/progsynth/internal/dsl"
	"github.com/smilemakc/progsynth/internal/program"
	"github.com/smilemakc/progsynth/internal/task"
)

// ExampleResult is the outcome of one artifact run on one example. An
// operation failure is recorded here as an EvalError; it never aborts
// the enumeration.
type ExampleResult struct {
	Example task.Example
	Result  any
	Err     error
}

// Success reports whether the run produced the expected output.
func (r ExampleResult) Success() bool {
	return r.Err == nil && valuesEqual(r.Result, r.Example.Output)
}

// ValidationResult aggregates an artifact's results over every example.
type ValidationResult struct {
	IndividualResults []ExampleResult
}

// FullSuccess reports whether every example succeeded.
func (v ValidationResult) FullSuccess() bool {
	for _, result := range v.IndividualResults {
		if !result.Success() {
			return false
		}
	}
	return true
}

// Evaluator compiles and runs artifacts. Operation bindings are built
// once per DSL; compiled artifact bodies are cached by source.
type Evaluator struct {
	operations map[string]any
	compiled   map[string]*vm.Program
}

// New builds an evaluator for a DSL, binding every operation into the
// evaluation environment: reflected operations call their retained Go
// callable, sourced operations run their compiled expression with the
// call arguments bound to the parameter names.
func New(d *dsl.DomainSpecificLanguage) (*Evaluator, error) {
	operations := make(map[string]any)
	for _, op := range d.Operations() {
		binding, err := bindOperation(op)
		if err != nil {
			return nil, err
		}
		operations[op.Name()] = binding
	}
	return &Evaluator{
		operations: operations,
		compiled:   make(map[string]*vm.Program),
	}, nil
}

func bindOperation(op domain.Operation) (func(args ...any) (any, error), error) {
	if fn := op.Func(); fn != nil {
		fnValue := reflect.ValueOf(fn)
		fnType := fnValue.Type()
		name := op.Name()
		return func(args ...any) (any, error) {
			if len(args) != fnType.NumIn() {
				return nil, fmt.Errorf("%s expects %d arguments, got %d", name, fnType.NumIn(), len(args))
			}
			in := make([]reflect.Value, len(args))
			for i, arg := range args {
				value := reflect.ValueOf(arg)
				if !value.Type().AssignableTo(fnType.In(i)) {
					if !value.Type().ConvertibleTo(fnType.In(i)) {
						return nil, fmt.Errorf("%s argument %d: cannot use %T", name, i, arg)
					}
					value = value.Convert(fnType.In(i))
				}
				in[i] = value
			}
			return fnValue.Call(in)[0].Interface(), nil
		}, nil
	}

	params := op.Params()
	declared := make(map[string]any, len(params))
	for _, param := range params {
		declared[param.Name] = nil
	}
	compiled, err := expr.Compile(op.Source(), expr.Env(declared))
	if err != nil {
		return nil, fmt.Errorf("failed to compile operation %q: %w", op.Name(), err)
	}
	name := op.Name()
	return func(args ...any) (any, error) {
		if len(args) != len(params) {
			return nil, fmt.Errorf("%s expects %d arguments, got %d", name, len(params), len(args))
		}
		env := make(map[string]any, len(params))
		for i, param := range params {
			env[param.Name] = args[i]
		}
		return expr.Run(compiled, env)
	}, nil
}

// Evaluate runs an artifact on every example of the task. Compilation
// failures abort (the artifact is a renderer product and must compile);
// per-example operation failures are recorded as that example's failure.
func (e *Evaluator) Evaluate(artifact program.Artifact, t *task.Task) (ValidationResult, error) {
	body := stripDeclarationComments(artifact.Source)
	compiled, ok := e.compiled[body]
	if !ok {
		// Compiling against the operation bindings and the input names
		// makes DSL operations take precedence over expression builtins
		// of the same name (e.g. repeat, concat).
		declared := make(map[string]any, len(e.operations))
		for opName, binding := range e.operations {
			declared[opName] = binding
		}
		for _, example := range t.Examples() {
			for inputName := range example.Inputs {
				declared[inputName] = nil
			}
		}
		var err error
		compiled, err = expr.Compile(body, expr.Env(declared))
		if err != nil {
			return ValidationResult{}, fmt.Errorf("failed to compile artifact %q: %w", artifact.Name, err)
		}
		e.compiled[body] = compiled
	}

	results := make([]ExampleResult, 0, len(t.Examples()))
	for _, example := range t.Examples() {
		result, err := e.runExample(compiled, artifact.Name, example)
		results = append(results, ExampleResult{Example: example, Result: result, Err: err})
	}
	return ValidationResult{IndividualResults: results}, nil
}

func (e *Evaluator) runExample(compiled *vm.Program, name string, example task.Example) (result any, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			result = nil
			err = errors.NewEvalError(name, fmt.Errorf("panic: %v", recovered))
		}
	}()

	env := make(map[string]any, len(e.operations)+len(example.Inputs))
	for opName, binding := range e.operations {
		env[opName] = binding
	}
	for inputName, value := range example.Inputs {
		env[inputName] = value
	}

	out, runErr := expr.Run(compiled, env)
	if runErr != nil {
		return nil, errors.NewEvalError(name, runErr)
	}
	return out, nil
}

// stripDeclarationComments drops the renderer's declaration comment
// lines, leaving the runnable body.
func stripDeclarationComments(source string) string {
	lines := strings.Split(source, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// valuesEqual compares an evaluation result with an expected output,
// normalizing numeric widths first.
func valuesEqual(a, b any) bool {
	return reflect.DeepEqual(normalize(a), normalize(b))
}

func normalize(v any) any {
	if v == nil {
		return nil
	}
	value := reflect.ValueOf(v)
	switch value.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(value.Uint())
	case reflect.Float32, reflect.Float64:
		return value.Float()
	default:
		return v
	}
}
