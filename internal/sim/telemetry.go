package sim

import (
	"math"
)

// TelemetrySample is one timestamped snapshot of a simulated drone. Samples
// are produced append-only by the mission loop; timestamps never decrease.
type TelemetrySample struct {
	TimestampS     float64
	State          KinematicState
	BatteryPct     float64
	BatteryVoltage float64
	CurrentA       float64
	MotorRPM       []float64
	SignalStrength float64 // 0..1 link quality to base
	DistanceDeltaM float64 // ground distance covered this step
	FlightTimeS    float64
}

const maxMotorRPM = 9000.0

// motorRPM approximates per-rotor speed from the throttle fraction. Thrust is
// quadratic in rotor speed, so speed goes with the square root.
func motorRPM(cfg PhysicalConfiguration, throttle float64) []float64 {
	rpm := maxMotorRPM * math.Sqrt(clamp(throttle, 0, 1))
	out := make([]float64, cfg.RotorCount)
	for i := range out {
		out[i] = rpm
	}
	return out
}
