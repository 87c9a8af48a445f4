package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/smilemakc/progsynth"
	"github.com/smilemakc/progsynth/internal/infrastructure/config"
	"github.com/smilemakc/progsynth/internal/infrastructure/logger"
)

func main() {
	// Parse command line flags
	var (
		dslPath  = flag.String("dsl", "", "Path to the DSL module (YAML)")
		taskPath = flag.String("task", "", "Path to the task file (YAML)")
		maxDepth = flag.Int("max-depth", 3, "Maximum program depth in blanks from the root")
		useStore = flag.Bool("store", false, "Persist the run to PostgreSQL (DATABASE_DSN)")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	// Setup logger
	logLevel := cfg.LogLevel
	if *verbose {
		logLevel = "debug"
	}
	log := logger.Setup(logLevel)

	if *dslPath == "" || *taskPath == "" {
		fmt.Fprintln(os.Stderr, "usage: progsynth -dsl <module.yaml> -task <task.yaml> [-max-depth N] [-store]")
		os.Exit(2)
	}

	dsl, err := progsynth.LoadDSLFile(*dslPath)
	if err != nil {
		log.Error("failed to load DSL module", "path", *dslPath, "error", err)
		os.Exit(1)
	}

	task, err := progsynth.LoadTaskFile(*taskPath)
	if err != nil {
		log.Error("failed to load task", "path", *taskPath, "error", err)
		os.Exit(1)
	}
	log.Info("task loaded",
		"inputs", strings.Join(task.InputNames(), ", "),
		"output_type", task.OutputType().String(),
		"examples", len(task.Examples()),
	)

	opts := []progsynth.Option{
		progsynth.WithLogger(progsynth.NewSynthesisLogger(os.Stderr, *verbose)),
	}
	if *useStore {
		if cfg.DatabaseDSN == "" {
			log.Error("persistence requested but DATABASE_DSN is empty")
			os.Exit(1)
		}
		store := progsynth.NewPostgresStorage(cfg.DatabaseDSN)
		log.Info("using PostgreSQL storage", "dsn", maskDSN(cfg.DatabaseDSN))
		opts = append(opts, progsynth.WithStore(store))
	}

	synthesizer := progsynth.NewSynthesizer(dsl, task, opts...)
	result, err := synthesizer.Run(context.Background(), progsynth.RunOptions{MaxDepth: *maxDepth})
	if err != nil {
		log.Error("synthesis failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("generated %d programs, %d successful (%.3fs)\n",
		result.Stats.NGenerated, result.Stats.NSuccessful, result.Stats.Runtime.Seconds())

	for i, artifact := range result.SuccessfulPrograms {
		fmt.Printf("\n--- program %d (%d bytes) ---\n%s", i+1, artifact.Len(), artifact.Source)
	}

	if smallest, ok := result.Smallest(); ok {
		fmt.Printf("\n=== smallest program (%d bytes) ===\n%s", smallest.Len(), smallest.Source)
	}
}

// maskDSN hides credentials when logging a connection string.
func maskDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	if at == -1 {
		return dsn
	}
	scheme := strings.Index(dsn, "://")
	if scheme == -1 {
		return "***" + dsn[at:]
	}
	return dsn[:scheme+3] + "***" + dsn[at:]
}
