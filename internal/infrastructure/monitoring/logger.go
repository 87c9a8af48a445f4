// Package monitoring provides structured logging for synthesis runs.
package monitoring

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// SynthesisLogger logs run lifecycle events with context.
type SynthesisLogger struct {
	log zerolog.Logger
}

// NewSynthesisLogger creates a logger writing to w. Verbose enables
// per-program debug events.
func NewSynthesisLogger(w io.Writer, verbose bool) *SynthesisLogger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return &SynthesisLogger{
		log: zerolog.New(w).Level(level).With().Timestamp().Logger(),
	}
}

// Nop creates a logger that discards everything.
func Nop() *SynthesisLogger {
	return &SynthesisLogger{log: zerolog.Nop()}
}

// RunStarted logs the start of a synthesis run.
func (l *SynthesisLogger) RunStarted(runID, outputType string, maxDepth int) {
	l.log.Info().
		Str("run_id", runID).
		Str("output_type", outputType).
		Int("max_depth", maxDepth).
		Msg("synthesis run started")
}

// ProgramGenerated logs one enumerated complete program.
func (l *SynthesisLogger) ProgramGenerated(runID string, n int, hash string, size int) {
	l.log.Debug().
		Str("run_id", runID).
		Int("n", n).
		Str("hash", hash).
		Int("size", size).
		Msg("program generated")
}

// ProgramSucceeded logs a program satisfying every example.
func (l *SynthesisLogger) ProgramSucceeded(runID, name string, size int) {
	l.log.Info().
		Str("run_id", runID).
		Str("program", name).
		Int("size", size).
		Msg("program satisfies all examples")
}

// EvaluationFailed logs an artifact whose evaluation errored.
func (l *SynthesisLogger) EvaluationFailed(runID, name string, err error) {
	l.log.Debug().
		Str("run_id", runID).
		Str("program", name).
		Err(err).
		Msg("program evaluation failed")
}

// RunCompleted logs the end of a synthesis run.
func (l *SynthesisLogger) RunCompleted(runID string, generated, successful int, runtime time.Duration) {
	l.log.Info().
		Str("run_id", runID).
		Int("generated", generated).
		Int("successful", successful).
		Dur("runtime", runtime).
		Msg("synthesis run completed")
}

// StoreError logs a persistence failure. Persistence is best effort and
// never fails a run.
func (l *SynthesisLogger) StoreError(runID string, err error) {
	l.log.Error().
		Str("run_id", runID).
		Err(err).
		Msg("failed to persist synthesis run")
}
