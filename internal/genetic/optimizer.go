package genetic

import (
	"context"
	"log"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/pattern"
	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/sim"
)

const tournamentSize = 3

// per-parameter redraw chance inside a mutation, and the chance a mutation
// switches the pattern kind outright
const (
	paramMutationChance = 0.30
	kindSwitchChance    = 0.10
)

// Population is one generation of individuals. Generations are replaced
// wholesale; elites are copied forward, never aliased.
type Population struct {
	Members    []pattern.SearchPattern
	Generation int
}

// Optimizer evolves search patterns for one environment. Fitness evaluation
// is embarrassingly parallel per generation: each worker constructs its own
// simulator, so no locking guards the simulation path.
type Optimizer struct {
	cfg       Config
	env       sim.SearchEnvironment
	phys      sim.PhysicalConfiguration
	predictor sim.DiscoveryPredictor
	rng       *rand.Rand
	sem       chan struct{}

	simulations atomic.Int64

	mu         sync.Mutex
	generation int
	best       pattern.SearchPattern
	hasBest    bool
	history    []float64
	running    bool
}

// New validates the configuration and builds an optimizer. This is the only
// place the package raises: every later fault is absorbed into fitness 0.
func New(env sim.SearchEnvironment, phys sim.PhysicalConfiguration, pred sim.DiscoveryPredictor, cfg Config) (*Optimizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := phys.Validate(); err != nil {
		return nil, err
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = 1
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if pred == nil {
		pred = sim.NewRuleTablePredictor(seed)
	}
	return &Optimizer{
		cfg:       cfg,
		env:       env,
		phys:      phys,
		predictor: pred,
		rng:       rand.New(rand.NewSource(seed)),
		sem:       make(chan struct{}, cfg.Parallelism),
	}, nil
}

// Optimize runs the full evolution loop and returns the best individual.
// Cancellation is cooperative: the context is checked at generation
// boundaries and in-flight evaluations are allowed to finish, so the
// returned pattern is always a consistent best-so-far.
func (o *Optimizer) Optimize(ctx context.Context) (pattern.SearchPattern, error) {
	o.setRunning(true)
	defer o.setRunning(false)

	pop := o.initialize()
	o.evaluate(pop)
	o.record(pop)

	for gen := 1; gen <= o.cfg.Generations; gen++ {
		select {
		case <-ctx.Done():
			return o.bestClone(), ctx.Err()
		default:
		}

		pop = o.evolve(pop)
		o.evaluate(pop)
		o.record(pop)
	}

	return o.bestClone(), nil
}

// initialize draws the first generation uniformly over kinds and bounds.
func (o *Optimizer) initialize() Population {
	members := make([]pattern.SearchPattern, o.cfg.PopulationSize)
	for i := range members {
		members[i] = pattern.Random(pattern.RandomKind(o.rng), o.rng)
	}
	return Population{Members: members}
}

// evaluate scores every individual still carrying the unevaluated sentinel.
// A single individual's failure is logged and scored 0; it never aborts the
// generation.
func (o *Optimizer) evaluate(pop Population) {
	var wg sync.WaitGroup
	for i := range pop.Members {
		if pop.Members[i].Evaluated() {
			continue // carried-over elites keep their score
		}
		wg.Add(1)
		o.sem <- struct{}{}
		go func(p *pattern.SearchPattern) {
			defer wg.Done()
			defer func() { <-o.sem }()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("fitness evaluation failed for %s pattern: %v", p.Kind, r)
					p.Fitness = 0
					p.Scores = pattern.Scores{}
				}
			}()
			o.simulations.Add(1)
			p.Fitness, p.Scores = evaluatePattern(*p, o.env, o.phys, o.predictor)
		}(&pop.Members[i])
	}
	wg.Wait()
}

// evolve produces the next generation: elites copied forward unchanged,
// the rest refilled with offspring, truncated to the configured size.
func (o *Optimizer) evolve(pop Population) Population {
	ranked := make([]pattern.SearchPattern, len(pop.Members))
	copy(ranked, pop.Members)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Fitness > ranked[j].Fitness })

	next := make([]pattern.SearchPattern, 0, o.cfg.PopulationSize)
	for i := 0; i < o.cfg.EliteSize && i < len(ranked); i++ {
		next = append(next, ranked[i].Clone())
	}

	for len(next) < o.cfg.PopulationSize {
		a := o.tournament(pop)
		b := o.tournament(pop)
		c1, c2 := o.crossover(a, b)
		o.mutate(&c1)
		next = append(next, c1)
		if len(next) < o.cfg.PopulationSize {
			o.mutate(&c2)
			next = append(next, c2)
		}
	}

	return Population{Members: next[:o.cfg.PopulationSize], Generation: pop.Generation + 1}
}

// tournament picks the fittest of a small random sample, independently per
// parent.
func (o *Optimizer) tournament(pop Population) pattern.SearchPattern {
	best := pop.Members[o.rng.Intn(len(pop.Members))]
	for i := 1; i < tournamentSize; i++ {
		c := pop.Members[o.rng.Intn(len(pop.Members))]
		if c.Fitness > best.Fitness {
			best = c
		}
	}
	return best
}

// crossover recombines two parents with a per-parameter coin flip, but only
// when both share a pattern kind; mixed kinds pass through unchanged.
func (o *Optimizer) crossover(a, b pattern.SearchPattern) (pattern.SearchPattern, pattern.SearchPattern) {
	c1 := a.Clone()
	c2 := b.Clone()
	c1.Fitness = pattern.UnevaluatedFitness
	c2.Fitness = pattern.UnevaluatedFitness
	c1.Scores = pattern.Scores{}
	c2.Scores = pattern.Scores{}

	if a.Kind != b.Kind || o.rng.Float64() >= o.cfg.CrossoverRate {
		return c1, c2
	}
	for i := range c1.Values {
		if i < len(c2.Values) && o.rng.Float64() < 0.5 {
			c1.Values[i], c2.Values[i] = c2.Values[i], c1.Values[i]
		}
	}
	return c1, c2
}

// mutate perturbs an offspring in place: each parameter has an independent
// redraw chance, and occasionally the kind itself switches with a full
// redraw for the new layout.
func (o *Optimizer) mutate(p *pattern.SearchPattern) {
	if o.rng.Float64() >= o.cfg.MutationRate {
		return
	}

	if o.rng.Float64() < kindSwitchChance {
		*p = pattern.Random(pattern.RandomKind(o.rng), o.rng)
		return
	}

	bounds := pattern.Bounds(p.Kind)
	for i, b := range bounds {
		if i >= len(p.Values) {
			break
		}
		if o.rng.Float64() < paramMutationChance {
			p.Values[i] = b.Min + o.rng.Float64()*(b.Max-b.Min)
		}
	}
	p.Clamp()
	p.Fitness = pattern.UnevaluatedFitness
	p.Scores = pattern.Scores{}
}

// record updates the best individual and the per-generation history.
func (o *Optimizer) record(pop Population) {
	best := pop.Members[0]
	for _, m := range pop.Members[1:] {
		if m.Fitness > best.Fitness {
			best = m
		}
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.generation = pop.Generation
	if !o.hasBest || best.Fitness > o.best.Fitness {
		o.best = best.Clone()
		o.hasBest = true
	}
	o.history = append(o.history, best.Fitness)
}

func (o *Optimizer) setRunning(v bool) {
	o.mu.Lock()
	o.running = v
	o.mu.Unlock()
}

func (o *Optimizer) bestClone() pattern.SearchPattern {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.best.Clone()
}

// Best returns the best individual found so far, if any generation has been
// scored yet.
func (o *Optimizer) Best() (pattern.SearchPattern, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.hasBest {
		return pattern.SearchPattern{}, false
	}
	return o.best.Clone(), true
}

// History returns the best fitness recorded per generation.
func (o *Optimizer) History() []float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]float64(nil), o.history...)
}
