package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/olivierh59500/sparkle-fountain-go/config"
	"github.com/olivierh59500/sparkle-fountain-go/particles"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", os.Getenv("SPARKLE_CONFIG"), "path to a TOML or YAML config file")
	renderer := flag.String("renderer", "window", "renderer: window or terminal")
	count := flag.Int("count", -1, "particle count, overrides the config")
	flag.Parse()

	cfg := config.Defaults()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if *count >= 0 {
		cfg.Simulation.Count = *count
	}
	// The terminal renderer owns the tty
	if *renderer == "terminal" && cfg.Logging.File == "" {
		cfg.Logging.File = terminalLogFile
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	sim := newSimulator(cfg.Simulation, log)
	if err := sim.Initialize(cfg.Simulation.Count); err != nil {
		return fmt.Errorf("initialize particles: %w", err)
	}
	defer sim.Teardown()

	log.Info("simulation ready",
		zap.Int("particles", sim.Count()),
		zap.String("renderer", *renderer),
	)

	switch *renderer {
	case "window":
		return runWindow(sim, cfg, log)
	case "terminal":
		return runTerminal(sim, cfg, log)
	default:
		return fmt.Errorf("unknown renderer %q", *renderer)
	}
}

func newSimulator(cfg config.SimulationConfig, log *zap.Logger) *particles.Simulator {
	opts := []particles.Option{
		particles.WithLogger(log.Named("particles")),
		particles.WithMaxParticles(cfg.MaxParticles),
	}
	if cfg.Seed != 0 {
		opts = append(opts, particles.WithSeed(cfg.Seed), particles.WithNoiseSeed(cfg.Seed))
	}
	return particles.New(opts...)
}
