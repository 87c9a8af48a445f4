// Package progsynth performs inductive program synthesis by typed
// enumerative search over a domain-specific language. Given a DSL of
// inputs, constants and typed operations plus a set of input/output
// examples, it enumerates candidate programs up to a bounded depth,
// renders each as a source artifact and returns the ones satisfying
// every example.
package progsynth

import (
	"github.com/smilemakc/progsynth/internal/agent"
	"github.com/smilemakc/progsynth/internal/application/synth"
	"github.com/smilemakc/progsynth/internal/domain"
	"github.com/smilemakc/progsynth/internal/dsl"
	"github.com/smilemakc/progsynth/internal/evaluate"
	"github.com/smilemakc/progsynth/internal/program"
	"github.com/smilemakc/progsynth/internal/task"
)

// ValueType is the type of a value flowing through a synthesized
// program.
type ValueType = domain.ValueType

// Value type constants.
const (
	TypeString = domain.TypeString
	TypeInt    = domain.TypeInt
	TypeFloat  = domain.TypeFloat
	TypeBool   = domain.TypeBool
	TypeAny    = domain.TypeAny
)

// Operation is a named typed callable available as blank content.
type Operation = domain.Operation

// Param is one named typed argument of an operation.
type Param = domain.Param

// DomainSpecificLanguage is the symbol set available to the
// synthesizer.
type DomainSpecificLanguage = dsl.DomainSpecificLanguage

// Task is a set of input/output examples with derived types.
type Task = task.Task

// Example is one observed input/output mapping.
type Example = task.Example

// Artifact is a rendered program.
type Artifact = program.Artifact

// ValidationResult aggregates an artifact's evaluation over a task.
type ValidationResult = evaluate.ValidationResult

// SynthesisAgent chooses among candidate search actions.
type SynthesisAgent = agent.SynthesisAgent

// Synthesizer runs enumerative synthesis for one DSL and task.
type Synthesizer = synth.Synthesizer

// SynthesisResult is the outcome of one synthesis run.
type SynthesisResult = synth.Result

// SynthesisStats describes one synthesis run.
type SynthesisStats = synth.Stats

// RunOptions parameterize one synthesis run.
type RunOptions = synth.RunOptions

// Namer names generated programs.
type Namer = synth.Namer

// Option configures a Synthesizer.
type Option = synth.Option

// Synthesizer options.
var (
	WithAgent  = synth.WithAgent
	WithStore  = synth.WithStore
	WithLogger = synth.WithLogger
)

// NewDSL creates an empty DSL.
func NewDSL() *DomainSpecificLanguage {
	return dsl.New()
}

// LoadDSL parses a textual DSL module.
func LoadDSL(source []byte) (*DomainSpecificLanguage, error) {
	return dsl.LoadModule(source)
}

// LoadDSLFile loads a DSL module from a file.
func LoadDSLFile(path string) (*DomainSpecificLanguage, error) {
	return dsl.LoadModuleFile(path)
}

// NewOperation creates an operation from explicit parts; the source is
// an expression over the parameter names.
func NewOperation(name string, output ValueType, params []Param, source string) Operation {
	return domain.NewOperation(name, output, params, source)
}

// OperationFromFunc derives an operation from a typed Go callable.
func OperationFromFunc(name string, fn any, argNames ...string) (Operation, error) {
	return domain.OperationFromFunc(name, fn, argNames...)
}

// NewTask creates a task from examples.
func NewTask(examples []Example, inputOrder ...string) (*Task, error) {
	return task.New(examples, inputOrder...)
}

// LoadTaskFile loads a task from a file.
func LoadTaskFile(path string) (*Task, error) {
	return task.LoadFile(path)
}

// NewSynthesizer creates a Synthesizer.
func NewSynthesizer(d *DomainSpecificLanguage, t *Task, opts ...Option) *Synthesizer {
	return synth.New(d, t, opts...)
}

// DefaultRunOptions returns the standard run parameters.
func DefaultRunOptions() RunOptions {
	return synth.DefaultRunOptions()
}

// NewTopDownBFS creates the default deterministic search agent.
func NewTopDownBFS() SynthesisAgent {
	return agent.NewTopDownBFS()
}

// NewLLMAdvisedAgent creates the OpenAI-advised search agent. It is not
// deterministic and falls back to the given agent on any API failure.
func NewLLMAdvisedAgent(apiKey, model string, fallback SynthesisAgent) SynthesisAgent {
	return agent.NewLLMAdvised(apiKey, model, fallback)
}
