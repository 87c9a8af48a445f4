// Package synth is the synthesis driver: it augments the DSL with the
// task inputs, drives the enumeration, renders and evaluates every
// candidate, and collects the successful programs with run statistics.
package synth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/smilemakc/progsynth/internal/agent"
	"github.com/smilemakc/progsynth/internal/dsl"
	"github.com/smilemakc/progsynth/internal/evaluate"
	"github.com/smilemakc/progsynth/internal/generate"
	"github.com/smilemakc/progsynth/internal/infrastructure/monitoring"
	"github.com/smilemakc/progsynth/internal/infrastructure/storage"
	"github.com/smilemakc/progsynth/internal/program"
	"github.com/smilemakc/progsynth/internal/task"
)

// DefaultMaxDepth bounds enumeration when the caller does not choose.
const DefaultMaxDepth = 3

// DefaultProgramName is the name given to every program by the default
// namer.
const DefaultProgramName = "generated_func"

// Namer names a program from its completed graph.
type Namer interface {
	Name(graph *program.Graph) string
}

type defaultNamer struct{}

func (defaultNamer) Name(*program.Graph) string { return DefaultProgramName }

// DefaultNamer names every program "generated_func".
func DefaultNamer() Namer { return defaultNamer{} }

// Stats describes one synthesis run.
type Stats struct {
	// NGenerated is the number of complete programs enumerated
	NGenerated int

	// NSuccessful is the number of programs satisfying every example
	NSuccessful int

	// Runtime is the wall clock duration of the run
	Runtime time.Duration
}

// Result is the outcome of one synthesis run.
type Result struct {
	// SuccessfulPrograms holds the satisfying artifacts in enumeration
	// order
	SuccessfulPrograms []program.Artifact

	// Stats describes the run
	Stats Stats
}

// Smallest returns the successful artifact with the shortest source,
// ties broken by enumeration order.
func (r *Result) Smallest() (program.Artifact, bool) {
	if len(r.SuccessfulPrograms) == 0 {
		return program.Artifact{}, false
	}
	smallest := r.SuccessfulPrograms[0]
	for _, artifact := range r.SuccessfulPrograms[1:] {
		if artifact.Len() < smallest.Len() {
			smallest = artifact
		}
	}
	return smallest, true
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithAgent overrides the default TopDownBFS agent.
func WithAgent(a agent.SynthesisAgent) Option {
	return func(s *Synthesizer) { s.agent = a }
}

// WithStore persists runs and artifacts after each run. Persistence is
// best effort: store failures are logged, never returned.
func WithStore(store storage.Store) Option {
	return func(s *Synthesizer) { s.store = store }
}

// WithLogger overrides the default no-op logger.
func WithLogger(logger *monitoring.SynthesisLogger) Option {
	return func(s *Synthesizer) { s.logger = logger }
}

// Synthesizer runs enumerative synthesis for one DSL and task.
type Synthesizer struct {
	dsl    *dsl.DomainSpecificLanguage
	task   *task.Task
	agent  agent.SynthesisAgent
	store  storage.Store
	logger *monitoring.SynthesisLogger
}

// New creates a Synthesizer.
func New(d *dsl.DomainSpecificLanguage, t *task.Task, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		dsl:    d,
		task:   t,
		logger: monitoring.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.agent == nil {
		s.agent = agent.NewTopDownBFS()
	}
	return s
}

// RunOptions parameterize one run.
type RunOptions struct {
	// MaxDepth bounds the program depth in blanks from the root
	MaxDepth int

	// Namer names the generated programs; nil uses the default namer
	Namer Namer
}

// DefaultRunOptions returns the standard run parameters.
func DefaultRunOptions() RunOptions {
	return RunOptions{MaxDepth: DefaultMaxDepth, Namer: DefaultNamer()}
}

// Run enumerates, renders and evaluates every candidate program within
// the depth bound and returns the satisfying ones with run statistics.
// Cancelling the context stops the enumeration at the next candidate.
func (s *Synthesizer) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if opts.Namer == nil {
		opts.Namer = DefaultNamer()
	}

	augmented := s.dsl.Clone()
	for _, name := range s.task.InputNames() {
		if inputType, ok := s.task.InputType(name); ok {
			augmented.AddInput(name, inputType)
		}
	}
	if err := augmented.Validate(); err != nil {
		return nil, err
	}

	evaluator, err := evaluate.New(augmented)
	if err != nil {
		return nil, err
	}

	runID := uuid.New()
	s.logger.RunStarted(runID.String(), s.task.OutputType().String(), opts.MaxDepth)

	enumeration, err := generate.New(augmented, s.task.OutputType(), s.agent).Enumerate(opts.MaxDepth)
	if err != nil {
		return nil, err
	}

	var (
		successful []program.Artifact
		stored     []storage.Artifact
		generated  int
	)

	start := time.Now()
	for ctx.Err() == nil {
		graph, ok := enumeration.Next()
		if !ok {
			break
		}
		generated++

		artifact, err := program.Render(graph, opts.Namer.Name(graph), augmented.Inputs())
		if err != nil {
			return nil, err
		}
		s.logger.ProgramGenerated(runID.String(), generated, string(graph.HashableConfig()), artifact.Len())

		validation, err := evaluator.Evaluate(artifact, s.task)
		if err != nil {
			return nil, err
		}
		fullSuccess := validation.FullSuccess()
		if fullSuccess {
			successful = append(successful, artifact)
			s.logger.ProgramSucceeded(runID.String(), artifact.Name, artifact.Len())
		} else {
			for _, exampleResult := range validation.IndividualResults {
				if exampleResult.Err != nil {
					s.logger.EvaluationFailed(runID.String(), artifact.Name, exampleResult.Err)
					break
				}
			}
		}

		if s.store != nil {
			stored = append(stored, storage.Artifact{
				ID:         uuid.New(),
				RunID:      runID,
				Name:       artifact.Name,
				Source:     artifact.Source,
				Hash:       string(graph.HashableConfig()),
				Successful: fullSuccess,
				Position:   generated - 1,
				CreatedAt:  time.Now(),
			})
		}
	}
	runtime := time.Since(start)

	s.logger.RunCompleted(runID.String(), generated, len(successful), runtime)

	if s.store != nil {
		run := storage.Run{
			ID:          runID,
			OutputType:  s.task.OutputType().String(),
			MaxDepth:    opts.MaxDepth,
			NGenerated:  generated,
			NSuccessful: len(successful),
			Runtime:     runtime,
			CreatedAt:   time.Now(),
		}
		if err := s.store.SaveRun(ctx, run); err != nil {
			s.logger.StoreError(runID.String(), err)
		} else if err := s.store.SaveArtifacts(ctx, stored); err != nil {
			s.logger.StoreError(runID.String(), err)
		}
	}

	return &Result{
		SuccessfulPrograms: successful,
		Stats: Stats{
			NGenerated:  generated,
			NSuccessful: len(successful),
			Runtime:     runtime,
		},
	}, nil
}
