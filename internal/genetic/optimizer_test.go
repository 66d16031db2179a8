package genetic_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/genetic"
	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/sim"
)

func testEnv() sim.SearchEnvironment {
	env := sim.DefaultSearchEnvironment()
	env.AreaSizeM2 = 40_000 // small area keeps routes short
	env.MissionDuration = 2 * time.Minute
	return env
}

func testConfig() genetic.Config {
	cfg := genetic.DefaultConfig()
	cfg.PopulationSize = 10
	cfg.Generations = 3
	cfg.EliteSize = 2
	cfg.Parallelism = 2
	cfg.Seed = 99
	return cfg
}

func TestNewRejectsBadConfig(t *testing.T) {
	cases := []func(*genetic.Config){
		func(c *genetic.Config) { c.PopulationSize = 0 },
		func(c *genetic.Config) { c.Generations = -1 },
		func(c *genetic.Config) { c.MutationRate = 1.5 },
		func(c *genetic.Config) { c.CrossoverRate = -0.1 },
		func(c *genetic.Config) { c.EliteSize = 10 }, // equals population
	}
	for i, mutate := range cases {
		cfg := testConfig()
		mutate(&cfg)
		_, err := genetic.New(testEnv(), sim.DefaultConfiguration(), nil, cfg)
		if err == nil {
			t.Fatalf("case %d: expected config error", i)
		}
		var ce *genetic.ConfigError
		if !errors.As(err, &ce) {
			t.Fatalf("case %d: expected *ConfigError, got %T", i, err)
		}
	}
}

func TestNewRejectsBadAirframe(t *testing.T) {
	phys := sim.DefaultConfiguration()
	phys.MassKg = -1
	if _, err := genetic.New(testEnv(), phys, nil, testConfig()); err == nil {
		t.Fatalf("expected airframe validation error")
	}
}

func TestOptimizeProducesValidBest(t *testing.T) {
	opt, err := genetic.New(testEnv(), sim.DefaultConfiguration(), nil, testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	best, err := opt.Optimize(context.Background())
	if err != nil {
		t.Fatalf("optimize failed: %v", err)
	}
	if !best.Evaluated() {
		t.Fatalf("best individual carries no fitness")
	}
	if best.Fitness < 0 || best.Fitness > 1 {
		t.Fatalf("fitness out of range: %v", best.Fitness)
	}
	if !best.Kind.Valid() {
		t.Fatalf("best individual has invalid kind %q", best.Kind)
	}
	if !best.InBounds() {
		t.Fatalf("best individual out of bounds: %v", best.Values)
	}
}

func TestOptimizeHistory(t *testing.T) {
	cfg := testConfig()
	opt, err := genetic.New(testEnv(), sim.DefaultConfiguration(), nil, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	best, err := opt.Optimize(context.Background())
	if err != nil {
		t.Fatalf("optimize failed: %v", err)
	}

	history := opt.History()
	if len(history) != cfg.Generations+1 {
		t.Fatalf("expected %d history entries, got %d", cfg.Generations+1, len(history))
	}
	for i, f := range history {
		if f < 0 || f > 1 {
			t.Fatalf("generation %d fitness out of range: %v", i, f)
		}
		// Elites carry their score forward, so the per-generation best
		// never regresses.
		if i > 0 && f < history[i-1] {
			t.Fatalf("best fitness regressed at generation %d: %v -> %v", i, history[i-1], f)
		}
		if f > best.Fitness {
			t.Fatalf("generation %d fitness %v exceeds reported best %v", i, f, best.Fitness)
		}
	}
}

func TestOptimizeDeterministicWithSeed(t *testing.T) {
	run := func() float64 {
		opt, err := genetic.New(testEnv(), sim.DefaultConfiguration(), nil, testConfig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		best, err := opt.Optimize(context.Background())
		if err != nil {
			t.Fatalf("optimize failed: %v", err)
		}
		return best.Fitness
	}
	if a, b := run(), run(); a != b {
		t.Fatalf("seeded runs diverged: %v vs %v", a, b)
	}
}

func TestOptimizeCancellation(t *testing.T) {
	cfg := testConfig()
	cfg.Generations = 1000
	opt, err := genetic.New(testEnv(), sim.DefaultConfiguration(), nil, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	best, err := opt.Optimize(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	// The initial generation is scored before the first cancellation check.
	if !best.Evaluated() {
		t.Fatalf("expected a best-so-far individual on cancellation")
	}
}

func TestDiagnosticsAfterRun(t *testing.T) {
	cfg := testConfig()
	opt, err := genetic.New(testEnv(), sim.DefaultConfiguration(), nil, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := opt.Optimize(context.Background()); err != nil {
		t.Fatalf("optimize failed: %v", err)
	}

	d := opt.Diagnostics()
	if d.Running {
		t.Fatalf("diagnostics report running after completion")
	}
	if d.Generation != cfg.Generations {
		t.Fatalf("expected generation %d, got %d", cfg.Generations, d.Generation)
	}
	if d.Simulations < int64(cfg.PopulationSize) {
		t.Fatalf("expected at least %d simulations, got %d", cfg.PopulationSize, d.Simulations)
	}
	if d.BestFitness < 0 || d.BestFitness > 1 {
		t.Fatalf("diagnostics best fitness out of range: %v", d.BestFitness)
	}
}
