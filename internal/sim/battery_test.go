package sim_test

import (
	"testing"

	sim "github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/sim"
)

func TestFullStateLevel(t *testing.T) {
	b := sim.NewBatteryModel(sim.DefaultConfiguration())
	st := b.FullState()
	if st.LevelPct != 100 {
		t.Fatalf("expected full charge, got %v", st.LevelPct)
	}
	if st.Depleted() {
		t.Fatalf("full pack reported depleted")
	}
}

func TestStateAtClamps(t *testing.T) {
	b := sim.NewBatteryModel(sim.DefaultConfiguration())
	if st := b.StateAt(-10); st.LevelPct != 0 {
		t.Fatalf("expected clamp to 0, got %v", st.LevelPct)
	}
	if st := b.StateAt(150); st.LevelPct != 100 {
		t.Fatalf("expected clamp to 100, got %v", st.LevelPct)
	}
}

func TestVoltageSagsWithCharge(t *testing.T) {
	cfg := sim.DefaultConfiguration()
	b := sim.NewBatteryModel(cfg)

	full := b.StateAt(100)
	half := b.StateAt(50)
	empty := b.StateAt(0)

	if !(full.VoltageV > half.VoltageV && half.VoltageV > empty.VoltageV) {
		t.Fatalf("voltage not monotone in charge: %v %v %v",
			full.VoltageV, half.VoltageV, empty.VoltageV)
	}
	if full.VoltageV != cfg.NominalVoltageV {
		t.Fatalf("expected nominal voltage at full, got %v", full.VoltageV)
	}
}

func TestConsumeNeverNegative(t *testing.T) {
	cfg := sim.DefaultConfiguration()
	b := sim.NewBatteryModel(cfg)
	forces := sim.Forces{Thrust: sim.Vec3{Z: cfg.MaxThrustN}}
	vel := sim.Vec3{X: cfg.MaxSpeedMS}

	st := b.StateAt(1)
	for i := 0; i < 10000; i++ {
		st = b.Consume(st, forces, sim.Vec3{X: 1, Y: 1, Z: 1}, vel, 1.0)
	}
	if st.LevelPct != 0 {
		t.Fatalf("expected empty pack, got %v", st.LevelPct)
	}
	if !st.Depleted() {
		t.Fatalf("empty pack not reported depleted")
	}
}

func TestConsumeMonotone(t *testing.T) {
	b := sim.NewBatteryModel(sim.DefaultConfiguration())
	forces := sim.Forces{Thrust: sim.Vec3{Z: 51}}

	st := b.FullState()
	prev := st.LevelPct
	for i := 0; i < 100; i++ {
		st = b.Consume(st, forces, sim.Vec3{}, sim.Vec3{Z: 1}, 0.1)
		if st.LevelPct > prev {
			t.Fatalf("charge increased at step %d: %v -> %v", i, prev, st.LevelPct)
		}
		prev = st.LevelPct
	}
	if st.LevelPct >= 100 {
		t.Fatalf("no energy consumed while thrusting")
	}
}

func TestIdleDrawsAvionicsPower(t *testing.T) {
	b := sim.NewBatteryModel(sim.DefaultConfiguration())
	st := b.FullState()
	st = b.Consume(st, sim.Forces{}, sim.Vec3{}, sim.Vec3{}, 3600)
	// 50 W baseline over an hour against a 222 Wh pack.
	if st.LevelPct > 100-50.0/222.0*100+1 || st.LevelPct < 100-50.0/222.0*100-1 {
		t.Fatalf("idle hour drained to %v%%", st.LevelPct)
	}
}
