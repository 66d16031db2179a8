package pattern_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/pattern"
	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/sim"
)

func TestGenerateAllKinds(t *testing.T) {
	env := sim.DefaultSearchEnvironment()
	radius := env.AreaRadius()
	rng := rand.New(rand.NewSource(11))

	for _, k := range pattern.Kinds() {
		p := pattern.Random(k, rng)
		waypoints := pattern.Generate(p, env)
		if len(waypoints) == 0 {
			t.Fatalf("kind %q produced an empty route", k)
		}
		for i, wp := range waypoints {
			if math.Hypot(wp.X, wp.Y) > radius+1e-9 {
				t.Fatalf("kind %q waypoint %d outside area: (%v, %v)", k, i, wp.X, wp.Y)
			}
			if wp.AltitudeM != pattern.CruiseAltitudeM {
				t.Fatalf("kind %q waypoint %d at altitude %v", k, i, wp.AltitudeM)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	env := sim.DefaultSearchEnvironment()
	rng := rand.New(rand.NewSource(12))
	p := pattern.Random(pattern.KindSector, rng)

	a := pattern.Generate(p, env)
	b := pattern.Generate(p, env)
	if len(a) != len(b) {
		t.Fatalf("route lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("waypoint %d differs between runs", i)
		}
	}
}

func TestGenerateUnknownKindFallsBack(t *testing.T) {
	env := sim.DefaultSearchEnvironment()
	p := pattern.SearchPattern{Kind: pattern.Kind("zigzag"), Fitness: pattern.UnevaluatedFitness}
	waypoints := pattern.Generate(p, env)
	if len(waypoints) == 0 {
		t.Fatalf("fallback route is empty")
	}
}

func TestGridRouteDensity(t *testing.T) {
	env := sim.DefaultSearchEnvironment() // 1 km2, radius ~564 m
	fine := pattern.SearchPattern{Kind: pattern.KindGrid, Values: []float64{20, 0}, Fitness: pattern.UnevaluatedFitness}
	coarse := pattern.SearchPattern{Kind: pattern.KindGrid, Values: []float64{100, 0}, Fitness: pattern.UnevaluatedFitness}

	if len(pattern.Generate(fine, env)) <= len(pattern.Generate(coarse, env)) {
		t.Fatalf("finer spacing did not yield more waypoints")
	}
}

func TestGridFiftyMeterLattice(t *testing.T) {
	// 1 km2 circle at 50 m spacing holds about a 20x20 lattice.
	env := sim.DefaultSearchEnvironment()
	p := pattern.SearchPattern{Kind: pattern.KindGrid, Values: []float64{50, 0}, Fitness: pattern.UnevaluatedFitness}
	n := len(pattern.Generate(p, env))
	if n < 350 || n > 450 {
		t.Fatalf("expected roughly 400 lattice points, got %d", n)
	}
}

func TestSpiralStaysUnderMaxRadius(t *testing.T) {
	env := sim.DefaultSearchEnvironment()
	env.AreaSizeM2 = 10_000_000 // radius ~1784 m, larger than any max_radius_m
	p := pattern.SearchPattern{Kind: pattern.KindSpiral, Values: []float64{25, 20, 300}, Fitness: pattern.UnevaluatedFitness}

	for i, wp := range pattern.Generate(p, env) {
		if r := math.Hypot(wp.X, wp.Y); r > 300+1e-9 {
			t.Fatalf("waypoint %d at radius %v exceeds configured 300 m", i, r)
		}
	}
}

func TestLawnmowerAlternatesDirection(t *testing.T) {
	env := sim.DefaultSearchEnvironment()
	p := pattern.SearchPattern{Kind: pattern.KindLawnmower, Values: []float64{100}, Fitness: pattern.UnevaluatedFitness}
	waypoints := pattern.Generate(p, env)
	if len(waypoints) < 4 {
		t.Fatalf("expected at least two strips, got %d waypoints", len(waypoints))
	}
	// First strip runs left to right, second right to left.
	if !(waypoints[0].X < waypoints[1].X) {
		t.Fatalf("first strip not left-to-right: %v -> %v", waypoints[0].X, waypoints[1].X)
	}
	if !(waypoints[2].X > waypoints[3].X) {
		t.Fatalf("second strip not right-to-left: %v -> %v", waypoints[2].X, waypoints[3].X)
	}
}
