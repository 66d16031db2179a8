package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/pattern"
	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/sim"
)

// Minimal batch runner: fly every pattern kind once with default parameters
// and print one line per flight. Useful for profiling the physics loop
// without the CLI or any persistence.
func main() {
	repeats := flag.Int("repeats", 1, "Flights per pattern kind")
	areaM2 := flag.Float64("area", 1_000_000, "Search area in square meters")
	budget := flag.Duration("budget", 25*time.Minute, "Mission time budget")
	battery := flag.Float64("battery", 100, "Initial battery percentage")
	flag.Parse()

	env := sim.DefaultSearchEnvironment()
	env.AreaSizeM2 = *areaM2
	env.MissionDuration = *budget

	cfg := sim.DefaultConfiguration()

	start := time.Now()
	var flights, steps int
	for _, kind := range pattern.Kinds() {
		p := pattern.SearchPattern{Kind: kind, Fitness: pattern.UnevaluatedFitness}
		p.Clamp()
		waypoints := pattern.Generate(p, env)

		for i := 0; i < *repeats; i++ {
			ms := sim.NewMissionSimulator(cfg)
			ms.SetInitialBattery(*battery)
			res := ms.Simulate(waypoints, env, *budget)
			flights++
			steps += len(res.Samples)

			var finalBattery float64
			if n := len(res.Samples); n > 0 {
				finalBattery = res.Samples[n-1].BatteryPct
			}
			fmt.Printf("%-10s outcome=%-17s waypoints=%3d/%3d energy=%6.1fWh battery=%5.1f%%\n",
				kind, res.Outcome, res.WaypointsVisited, len(waypoints), res.EnergyWh, finalBattery)
		}
	}

	elapsed := time.Since(start)
	fmt.Printf("\n%d flights, %d physics steps in %v (%.0f steps/sec)\n",
		flights, steps, elapsed.Round(time.Millisecond), float64(steps)/elapsed.Seconds())
}
