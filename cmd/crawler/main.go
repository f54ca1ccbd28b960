// Command crawler plays one generated level headlessly: it builds a
// session from a config file, drives it with a scripted autopilot and logs
// every simulation event.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/zeusync/dungeoncore/internal/core/config"
	"github.com/zeusync/dungeoncore/internal/core/events/bus"
	"github.com/zeusync/dungeoncore/internal/core/observability/log"
	"github.com/zeusync/dungeoncore/internal/core/sim"
	"github.com/zeusync/dungeoncore/internal/injector"
)

var (
	configPath = flag.String("config", "", "YAML config file (defaults when empty)")
	seed       = flag.Int64("seed", 0, "level seed, 0 for the config or clock")
	phrase     = flag.String("phrase", "", "seed phrase, wins over -seed")
	strategy   = flag.String("strategy", "", "generation strategy: critical-path|corridor|quadrant")
	ticks      = flag.Int("ticks", 60*60*5, "maximum ticks to run")
	rate       = flag.Int("rate", 60, "ticks per simulated second")
	realtime   = flag.Bool("realtime", false, "pace ticks to the wall clock")
	verbose    = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "crawler:", err)
		os.Exit(2)
	}

	app, cleanup, err := injector.InitializeApp(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "crawler:", err)
		os.Exit(1)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, app); err != nil {
		app.Log.Error("crawl failed", log.Error(err))
		cleanup()
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.Level.Seed = *seed
	}
	if *phrase != "" {
		cfg.Level.SeedPhrase = *phrase
	}
	if *strategy != "" {
		cfg.Level.Strategy = *strategy
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, app *injector.App) error {
	logger := app.Log.Named("crawler")
	counts := make(map[string]int)
	sub, err := app.Bus.Subscribe(bus.Any, func(e bus.Event) error {
		counts[e.Type()]++
		logEvent(logger, e)
		return nil
	})
	if err != nil {
		return err
	}
	defer func() { _ = sub.Cancel() }()

	s := app.Sim
	if err := s.GenerateLevel(); err != nil {
		return err
	}
	if err := s.Start(); err != nil {
		return err
	}

	dt := 1 / float64(*rate)
	pilot := newAutopilot(s.Snapshot())
	var pace <-chan time.Time
	if *realtime {
		ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
		defer ticker.Stop()
		pace = ticker.C
	}

	snap := s.Snapshot()
	for i := 0; i < *ticks && !snap.State.Finished(); i++ {
		if pace != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-pace:
			}
		} else if ctx.Err() != nil {
			return ctx.Err()
		}

		for _, in := range pilot.next(snap) {
			s.Enqueue(in)
		}
		if err := s.Tick(dt); err != nil {
			logger.Warn("tick reported handler errors", log.Error(err))
		}
		snap = s.Snapshot()
	}

	summarize(logger, snap, counts)
	return nil
}

func logEvent(logger log.Log, e bus.Event) {
	fields := []log.Field{log.String("source", e.Source()), log.Float64("at", e.At())}
	switch data := e.Data().(type) {
	case sim.StateEvent:
		logger.Info("state", append(fields, log.Stringer("from", data.From), log.Stringer("to", data.To))...)
	case sim.KeyEvent:
		logger.Info("key picked up", append(fields, log.String("color", string(data.Color)), log.Cell(data.Cell.X, data.Cell.Y))...)
	case sim.DoorEvent:
		logger.Info(e.Type(), append(fields, log.Int("door", data.Door), log.String("color", string(data.Color)))...)
	case sim.EnemyDeathEvent:
		logger.Info("enemy destroyed", append(fields, log.Int("enemy", data.Enemy), log.Stringer("kind", data.Kind))...)
	case sim.WarningEvent:
		logger.Warn("generation warning", append(fields, log.String("warning", data.Warning.String()))...)
	case sim.CellEvent:
		logger.Info(e.Type(), append(fields, log.Cell(data.Cell.X, data.Cell.Y))...)
	default:
		logger.Debug(e.Type(), fields...)
	}
}

func summarize(logger log.Log, snap sim.Snapshot, counts map[string]int) {
	held := 0
	for _, ok := range snap.UI.Keys {
		if ok {
			held++
		}
	}
	fields := []log.Field{
		log.String("session", snap.Session),
		log.Seed(snap.Seed),
		log.Stringer("state", snap.State),
		log.Uint64("ticks", snap.Tick),
		log.Float64("time", snap.Time),
		log.Float64("health", snap.UI.Health),
		log.Int("keys", held),
		log.Int("enemies_left", len(snap.Enemies)),
		log.String("objective", snap.UI.Objective),
	}
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fields = append(fields, log.Int("events."+t, counts[t]))
	}
	logger.Info("crawl finished", fields...)
}
