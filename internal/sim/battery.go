package sim

import (
	"math"
)

const (
	avionicsBaselineW = 50.0 // flight computer, radios, sensors
	momentPowerWPerNm = 2.0
	tempRisePerAmp    = 0.004 // deg C per amp-second, crude motor heating
)

// BatteryState is the pack state carried through one mission run.
type BatteryState struct {
	LevelPct float64 // 0..100 remaining charge
	VoltageV float64
	CurrentA float64
	TempC    float64
}

// BatteryModel converts force and moment demand into energy draw. A depleted
// pack is a signal consumed by the mission loop, never an error.
type BatteryModel struct {
	cfg PhysicalConfiguration
}

func NewBatteryModel(cfg PhysicalConfiguration) *BatteryModel {
	return &BatteryModel{cfg: cfg}
}

// FullState is a fresh pack at ambient temperature.
func (b *BatteryModel) FullState() BatteryState {
	return b.StateAt(100)
}

// StateAt is a rested pack holding the given charge level.
func (b *BatteryModel) StateAt(levelPct float64) BatteryState {
	levelPct = clamp(levelPct, 0, 100)
	return BatteryState{
		LevelPct: levelPct,
		VoltageV: b.voltageAt(levelPct),
		CurrentA: 0,
		TempC:    20,
	}
}

// Consume advances the pack by dt seconds given the net force, body moments
// and current velocity. Level is clamped at zero.
func (b *BatteryModel) Consume(st BatteryState, forces Forces, moments Vec3, velocity Vec3, dt float64) BatteryState {
	thrustPower := forces.Thrust.Length() * velocity.Length() / b.cfg.MotorEfficiency
	momentPower := momentPowerWPerNm * (math.Abs(moments.X) + math.Abs(moments.Y) + math.Abs(moments.Z))
	// Hovering still burns power holding the airframe up.
	holdPower := forces.Thrust.Length() * 1.5 / b.cfg.MotorEfficiency

	power := thrustPower + momentPower + holdPower + avionicsBaselineW

	energyWh := power * dt / 3600.0
	st.LevelPct -= energyWh / b.cfg.CapacityWh * 100.0
	if st.LevelPct < 0 {
		st.LevelPct = 0
	}

	st.VoltageV = b.voltageAt(st.LevelPct)
	st.CurrentA = 0
	if st.VoltageV > 0 {
		st.CurrentA = power / st.VoltageV
	}
	st.TempC += st.CurrentA * tempRisePerAmp * dt
	return st
}

// voltageAt models pack voltage as affine in the remaining charge fraction,
// sagging to 85% of nominal when empty.
func (b *BatteryModel) voltageAt(levelPct float64) float64 {
	frac := clamp(levelPct/100.0, 0, 1)
	return b.cfg.NominalVoltageV * (0.85 + 0.15*frac)
}

// Depleted reports whether the pack can no longer sustain flight.
func (st BatteryState) Depleted() bool { return st.LevelPct <= 0 }
