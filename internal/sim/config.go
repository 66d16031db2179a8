package sim

import (
	"fmt"
)

// PhysicalConfiguration describes one airframe. It is immutable and may be
// shared read-only across any number of concurrent mission runs.
type PhysicalConfiguration struct {
	MassKg          float64 // All-up mass
	MaxThrustN      float64 // Total thrust at full throttle
	MaxSpeedMS      float64 // Horizontal speed limit
	DragCoefficient float64
	FrontalAreaM2   float64
	RotorCount      int
	CapacityWh      float64 // Battery capacity
	NominalVoltageV float64
	MotorEfficiency float64 // 0..1 electrical-to-thrust efficiency
}

// DefaultConfiguration models a mid-size hexacopter SAR platform.
func DefaultConfiguration() PhysicalConfiguration {
	return PhysicalConfiguration{
		MassKg:          5.2,
		MaxThrustN:      160.0, // ~3x weight, aggressive climbs in gusts
		MaxSpeedMS:      20.0,
		DragCoefficient: 0.6,
		FrontalAreaM2:   0.15,
		RotorCount:      6,
		CapacityWh:      222.0, // 6S 10Ah pack
		NominalVoltageV: 22.2,
		MotorEfficiency: 0.85,
	}
}

// Validate reports the first non-physical field, if any.
func (c PhysicalConfiguration) Validate() error {
	switch {
	case c.MassKg <= 0:
		return fmt.Errorf("physical configuration: mass must be positive, got %g", c.MassKg)
	case c.MaxThrustN <= 0:
		return fmt.Errorf("physical configuration: max thrust must be positive, got %g", c.MaxThrustN)
	case c.MaxSpeedMS <= 0:
		return fmt.Errorf("physical configuration: max speed must be positive, got %g", c.MaxSpeedMS)
	case c.DragCoefficient <= 0 || c.FrontalAreaM2 <= 0:
		return fmt.Errorf("physical configuration: drag coefficient and frontal area must be positive")
	case c.RotorCount <= 0:
		return fmt.Errorf("physical configuration: rotor count must be positive, got %d", c.RotorCount)
	case c.CapacityWh <= 0 || c.NominalVoltageV <= 0:
		return fmt.Errorf("physical configuration: battery capacity and voltage must be positive")
	case c.MotorEfficiency <= 0 || c.MotorEfficiency > 1:
		return fmt.Errorf("physical configuration: motor efficiency must be in (0,1], got %g", c.MotorEfficiency)
	}
	return nil
}

// HoverThrottle approximates the throttle fraction that balances weight.
func (c PhysicalConfiguration) HoverThrottle() float64 {
	return clamp(c.MassKg*gravity/c.MaxThrustN, 0, 1)
}
