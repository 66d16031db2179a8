package sim_test

import (
	"testing"
	"time"

	sim "github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/sim"
)

func TestSimulateNoWaypoints(t *testing.T) {
	ms := sim.NewMissionSimulator(sim.DefaultConfiguration())
	res := ms.Simulate(nil, sim.DefaultSearchEnvironment(), 10*time.Minute)

	if res.Outcome != sim.OutcomeCompleted {
		t.Fatalf("expected completed, got %v", res.Outcome)
	}
	if len(res.Samples) != 0 {
		t.Fatalf("expected no telemetry, got %d samples", len(res.Samples))
	}
	if res.EnergyWh != 0 {
		t.Fatalf("expected zero energy, got %v", res.EnergyWh)
	}
}

func TestSimulateCompletesShortRoute(t *testing.T) {
	ms := sim.NewMissionSimulator(sim.DefaultConfiguration())
	waypoints := []sim.Waypoint{
		{X: 3, Y: 0, AltitudeM: 50},
		{X: 6, Y: 0, AltitudeM: 50},
	}
	res := ms.Simulate(waypoints, sim.DefaultSearchEnvironment(), 10*time.Minute)

	if res.Outcome != sim.OutcomeCompleted {
		t.Fatalf("expected completed, got %v after %d samples", res.Outcome, len(res.Samples))
	}
	if res.WaypointsVisited != len(waypoints) {
		t.Fatalf("expected %d waypoints visited, got %d", len(waypoints), res.WaypointsVisited)
	}
	if len(res.Samples) == 0 {
		t.Fatalf("completed route produced no telemetry")
	}
	if res.EnergyWh <= 0 {
		t.Fatalf("expected positive energy use, got %v", res.EnergyWh)
	}
}

func TestSimulateBudgetExceeded(t *testing.T) {
	ms := sim.NewMissionSimulator(sim.DefaultConfiguration())
	waypoints := []sim.Waypoint{{X: 10000, Y: 0, AltitudeM: 50}}
	res := ms.Simulate(waypoints, sim.DefaultSearchEnvironment(), 30*time.Second)

	if res.Outcome != sim.OutcomeBudgetExceeded {
		t.Fatalf("expected budget_exceeded, got %v", res.Outcome)
	}
	if res.WaypointsVisited != 0 {
		t.Fatalf("expected no waypoints visited, got %d", res.WaypointsVisited)
	}
}

func TestSimulateLowBatteryEmergency(t *testing.T) {
	ms := sim.NewMissionSimulator(sim.DefaultConfiguration())
	ms.SetInitialBattery(14)
	waypoints := []sim.Waypoint{{X: 500, Y: 0, AltitudeM: 50}}
	res := ms.Simulate(waypoints, sim.DefaultSearchEnvironment(), 10*time.Minute)

	if res.Outcome != sim.OutcomeBatteryEmergency {
		t.Fatalf("expected battery_emergency, got %v", res.Outcome)
	}
	// Launching below the emergency floor aborts on the first step.
	if len(res.Samples) != 1 {
		t.Fatalf("expected exactly one sample, got %d", len(res.Samples))
	}
}

func TestSimulateSignalEmergency(t *testing.T) {
	ms := sim.NewMissionSimulator(sim.DefaultConfiguration())
	waypoints := []sim.Waypoint{{X: 5000, Y: 0, AltitudeM: 50}}
	res := ms.Simulate(waypoints, sim.DefaultSearchEnvironment(), time.Hour)

	if res.Outcome != sim.OutcomeSignalEmergency {
		t.Fatalf("expected signal_emergency, got %v", res.Outcome)
	}
	last := res.Samples[len(res.Samples)-1]
	if last.SignalStrength >= 0.20 {
		t.Fatalf("final signal %v not below emergency threshold", last.SignalStrength)
	}
}

func TestTelemetryMonotone(t *testing.T) {
	ms := sim.NewMissionSimulator(sim.DefaultConfiguration())
	waypoints := []sim.Waypoint{{X: 200, Y: 100, AltitudeM: 50}}
	res := ms.Simulate(waypoints, sim.DefaultSearchEnvironment(), time.Minute)

	if len(res.Samples) == 0 {
		t.Fatalf("no telemetry collected")
	}
	prevT := 0.0
	prevBatt := 100.0
	for i, s := range res.Samples {
		if s.TimestampS <= prevT {
			t.Fatalf("timestamps not strictly increasing at sample %d", i)
		}
		if s.BatteryPct > prevBatt {
			t.Fatalf("battery increased at sample %d: %v -> %v", i, prevBatt, s.BatteryPct)
		}
		if s.SignalStrength < 0.10 || s.SignalStrength > 1 {
			t.Fatalf("signal out of range at sample %d: %v", i, s.SignalStrength)
		}
		prevT = s.TimestampS
		prevBatt = s.BatteryPct
	}
}
