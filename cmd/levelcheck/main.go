// Command levelcheck generates many levels for every strategy in parallel
// and reports each one that fails validation.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/zeusync/dungeoncore/internal/core/config"
	"github.com/zeusync/dungeoncore/internal/core/level/generator"
	"github.com/zeusync/dungeoncore/internal/core/observability/log"
	"github.com/zeusync/dungeoncore/pkg/concurrent"
)

var (
	configPath = flag.String("config", "", "YAML config file (defaults when empty)")
	count      = flag.Int("n", 200, "levels per strategy")
	first      = flag.Int64("from", 1, "first seed")
	workers    = flag.Int("workers", runtime.GOMAXPROCS(0), "parallel generators")
	only       = flag.String("strategy", "", "check a single strategy")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "levelcheck:", err)
			os.Exit(2)
		}
		cfg = loaded
	}
	logger, err := log.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "levelcheck:", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	strategies := generator.Strategies()
	if *only != "" {
		strategies = []string{*only}
	}

	failed := 0
	for _, name := range strategies {
		rep, err := check(ctx, name, cfg.Level.Options(), *first, *count, *workers, logger)
		if err != nil {
			logger.Error("check aborted", log.String("strategy", name), log.Error(err))
			os.Exit(1)
		}
		logger.Info("strategy checked",
			log.String("strategy", name),
			log.Int("levels", rep.Levels),
			log.Int("failed", len(rep.Failures)),
			log.Int("warnings", rep.Warnings),
		)
		for _, f := range rep.Failures {
			logger.Warn("level failed", log.String("strategy", name), log.Seed(f.Seed), log.String("reason", f.Reason))
		}
		failed += len(rep.Failures)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

type failure struct {
	Seed   int64
	Reason string
}

type report struct {
	Levels   int
	Warnings int
	Failures []failure
}

type outcome struct {
	seed     int64
	warnings int
	reason   string
}

// check generates n levels from consecutive seeds. Generation errors abort
// the run; unsolvable levels are collected.
func check(ctx context.Context, strategy string, opts generator.Options, from int64, n, workers int, logger log.Log) (report, error) {
	gen, err := generator.New(strategy, opts, logger)
	if err != nil {
		return report{}, err
	}
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = from + int64(i)
	}

	outcomes, err := concurrent.Map(ctx, seeds, workers, func(ctx context.Context, seed int64) (outcome, error) {
		if err := ctx.Err(); err != nil {
			return outcome{}, err
		}
		data, err := gen.GenerateSeed(seed)
		if err != nil {
			return outcome{}, fmt.Errorf("seed %d: %w", seed, err)
		}
		return outcome{seed: seed, warnings: len(data.Warnings), reason: validate(data)}, nil
	})
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return report{Levels: n}, err
	}

	rep := report{Levels: n}
	for _, o := range outcomes {
		rep.Warnings += o.warnings
		if o.reason != "" {
			rep.Failures = append(rep.Failures, failure{Seed: o.seed, Reason: o.reason})
		}
	}
	return rep, nil
}
