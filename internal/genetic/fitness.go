package genetic

import (
	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/pattern"
	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/sim"
)

// fitness weights, summing to one
const (
	weightCoverage = 0.3
	weightSuccess  = 0.4
	weightEnergy   = 0.2
	weightTime     = 0.1
)

// nominal target count against which discoveries are scored
const expectedTargets = 10.0

// evaluatePattern runs one full mission for the pattern and reduces it to a
// fitness in [0,1]. The caller owns panic recovery; everything here is pure
// computation over the pattern, environment and airframe.
func evaluatePattern(p pattern.SearchPattern, env sim.SearchEnvironment, phys sim.PhysicalConfiguration, pred sim.DiscoveryPredictor) (float64, pattern.Scores) {
	waypoints := pattern.Generate(p, env)

	// Each evaluation constructs its own simulator: the dynamics model
	// reuses integrator buffers and must not be shared across workers.
	ms := sim.NewMissionSimulator(phys)
	res := ms.Simulate(waypoints, env, env.MissionDuration)
	met := sim.ComputeMetrics(res, env, p.Kind.String(), pred)

	var s pattern.Scores
	s.Coverage = clamp01(met.CoverageFraction)

	s.Success = clamp01(met.Discoveries / expectedTargets)
	if p.Kind == pattern.KindAdaptive {
		// Adaptive parameters act on the discovery model, not the route.
		ap := p.Adaptive()
		s.Success = clamp01(s.Success * (0.85 + 0.3*ap.ExplorationRate))
	}

	if phys.CapacityWh > 0 {
		s.Energy = clamp01(1.0 - met.EnergyWh/phys.CapacityWh)
	}
	if budget := env.MissionDuration.Seconds(); budget > 0 {
		s.Time = clamp01(1.0 - met.FlightTimeS/budget)
	}

	fitness := clamp01(weightCoverage*s.Coverage +
		weightSuccess*s.Success +
		weightEnergy*s.Energy +
		weightTime*s.Time)
	return fitness, s
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
