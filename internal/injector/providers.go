package injector

import (
	"math/rand"

	"github.com/google/wire"

	"github.com/zeusync/dungeoncore/internal/core/config"
	"github.com/zeusync/dungeoncore/internal/core/events/bus"
	"github.com/zeusync/dungeoncore/internal/core/level/generator"
	"github.com/zeusync/dungeoncore/internal/core/observability/log"
	"github.com/zeusync/dungeoncore/internal/core/sim"
)

// App is a fully wired session with the collaborators a runner needs.
type App struct {
	Config *config.Config
	Log    log.Log
	Bus    bus.EventBus
	Sim    *sim.Simulation
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideGenerator,
	bus.New,
	ProvideSimulation,
	wire.Struct(new(App), "*"),
)

// ProvideLogger builds the process logger. The cleanup flushes it.
func ProvideLogger(cfg *config.Config) (log.Log, func(), error) {
	logger, err := log.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func ProvideGenerator(cfg *config.Config, logger log.Log) (generator.Generator, error) {
	return generator.New(cfg.Level.Strategy, cfg.Level.Options(), logger)
}

// ProvideSimulation seeds the session's own random source from the level
// seed when one is configured, so a seeded run replays exactly.
func ProvideSimulation(cfg *config.Config, gen generator.Generator, eventBus bus.EventBus, logger log.Log) *sim.Simulation {
	var opts []sim.Option
	if seed := cfg.Level.ResolvedSeed(); seed != 0 {
		opts = append(opts, sim.WithRand(rand.New(rand.NewSource(seed))))
	}
	return sim.New(cfg, gen, eventBus, logger, opts...)
}
