// Package genetic evolves search patterns against simulated mission fitness.
package genetic

import (
	"fmt"
	"runtime"
)

// Config are the optimizer run parameters. Validation happens once, before
// any simulation work; nothing below Optimize raises for data-dependent
// reasons.
type Config struct {
	PopulationSize int
	Generations    int
	MutationRate   float64 // probability an offspring is mutated
	CrossoverRate  float64 // probability a parent pair recombines
	EliteSize      int     // individuals carried over unchanged
	Parallelism    int     // concurrent fitness evaluations
	Seed           int64   // 0 draws a random seed
}

// DefaultConfig mirrors the planner's production settings.
func DefaultConfig() Config {
	return Config{
		PopulationSize: 20,
		Generations:    15,
		MutationRate:   0.2,
		CrossoverRate:  0.7,
		EliteSize:      2,
		Parallelism:    runtime.NumCPU(),
	}
}

// ConfigError reports an invalid optimizer configuration.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("optimizer config: %s %s", e.Field, e.Reason)
}

// Validate returns the first configuration fault, if any.
func (c Config) Validate() error {
	switch {
	case c.PopulationSize <= 0:
		return &ConfigError{Field: "population_size", Reason: fmt.Sprintf("must be positive, got %d", c.PopulationSize)}
	case c.Generations <= 0:
		return &ConfigError{Field: "generations", Reason: fmt.Sprintf("must be positive, got %d", c.Generations)}
	case c.MutationRate < 0 || c.MutationRate > 1:
		return &ConfigError{Field: "mutation_rate", Reason: fmt.Sprintf("must be in [0,1], got %g", c.MutationRate)}
	case c.CrossoverRate < 0 || c.CrossoverRate > 1:
		return &ConfigError{Field: "crossover_rate", Reason: fmt.Sprintf("must be in [0,1], got %g", c.CrossoverRate)}
	case c.EliteSize < 0:
		return &ConfigError{Field: "elite_size", Reason: fmt.Sprintf("must be non-negative, got %d", c.EliteSize)}
	case c.EliteSize >= c.PopulationSize:
		return &ConfigError{Field: "elite_size", Reason: fmt.Sprintf("must be smaller than population size, got %d of %d", c.EliteSize, c.PopulationSize)}
	}
	return nil
}
