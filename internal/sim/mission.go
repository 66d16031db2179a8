package sim

import (
	"time"
)

// Waypoint is one target of a search trajectory. X/Y are meters from the
// search-area centroid, altitude is meters above ground.
type Waypoint struct {
	X, Y      float64
	AltitudeM float64
}

// Position is the waypoint as a world-frame point.
func (w Waypoint) Position() Vec3 { return Vec3{X: w.X, Y: w.Y, Z: w.AltitudeM} }

// Outcome is the terminal condition of one mission run. Emergencies are
// normal terminal states, not errors.
type Outcome string

const (
	OutcomeCompleted        Outcome = "completed"
	OutcomeBudgetExceeded   Outcome = "budget_exceeded"
	OutcomeBatteryEmergency Outcome = "battery_emergency"
	OutcomeSignalEmergency  Outcome = "signal_emergency"
)

// MissionResult carries the telemetry of one run plus its terminal condition.
// Telemetry is always the partial record collected so far, never discarded.
type MissionResult struct {
	Samples          []TelemetrySample
	Outcome          Outcome
	WaypointsVisited int
	EnergyWh         float64
}

const (
	defaultTimestep    = 0.1 // seconds
	arrivalToleranceM  = 5.0
	cruiseSpeedFactor  = 0.6  // fraction of max speed commanded between waypoints
	batteryEmergency   = 15.0 // percent
	signalEmergency    = 0.20
	signalFloor        = 0.10
	minCommandRangeM   = 2000.0
	commandRangeFactor = 3.0 // times the area radius
)

// MissionSimulator runs Controller -> Dynamics -> Battery over a waypoint
// list. One instance serves one run at a time: the dynamics model reuses its
// integrator buffers, so construct a simulator per concurrent worker.
type MissionSimulator struct {
	cfg        PhysicalConfiguration
	dynamics   *FlightDynamicsModel
	battery    *BatteryModel
	controller *WaypointController
	dt         float64

	startBattery float64 // percent at launch
}

// NewMissionSimulator builds a simulator around one airframe configuration.
func NewMissionSimulator(cfg PhysicalConfiguration) *MissionSimulator {
	return &MissionSimulator{
		cfg:          cfg,
		dynamics:     NewFlightDynamicsModel(cfg),
		battery:      NewBatteryModel(cfg),
		controller:   NewWaypointController(cfg),
		dt:           defaultTimestep,
		startBattery: 100,
	}
}

// SetInitialBattery overrides the launch charge level, clamped to [0,100].
func (m *MissionSimulator) SetInitialBattery(levelPct float64) {
	m.startBattery = clamp(levelPct, 0, 100)
}

// Simulate flies the waypoint list under the given environment until every
// waypoint is visited, the duration budget runs out, or an emergency fires.
// It always returns the telemetry collected so far and never fails for
// data-dependent reasons.
func (m *MissionSimulator) Simulate(waypoints []Waypoint, env SearchEnvironment, budget time.Duration) MissionResult {
	res := MissionResult{Outcome: OutcomeCompleted}
	if len(waypoints) == 0 {
		res.Samples = []TelemetrySample{}
		return res
	}

	commandRange := commandRangeFactor * env.AreaRadius()
	if commandRange < minCommandRangeM {
		commandRange = minCommandRangeM
	}

	state := KinematicState{Position: Vec3{Z: waypoints[0].AltitudeM}}
	batt := m.battery.StateAt(m.startBattery)

	maxSteps := int(budget.Seconds() / m.dt)
	res.Samples = make([]TelemetrySample, 0, maxSteps)

	current := 0
	elapsed := 0.0
	cruise := cruiseSpeedFactor * m.cfg.MaxSpeedMS

	for step := 0; step < maxSteps; step++ {
		wp := waypoints[current]
		toTarget := wp.Position().Sub(state.Position)

		// Command a cruise-speed approach that slows near arrival.
		targetVel := toTarget.NormalizeSafe(1e-6).Mul(cruise)
		if toTarget.Length() < 2*arrivalToleranceM {
			targetVel = targetVel.Mul(0.3)
		}

		controls := m.controller.Control(state, wp.Position(), targetVel)

		prev := state.Position
		var forces Forces
		var moments Vec3
		state, forces, moments = m.dynamics.Step(state, controls, env.Conditions, m.dt)
		batt = m.battery.Consume(batt, forces, moments, state.Velocity, m.dt)
		elapsed += m.dt

		signal := signalStrength(state.Position.HorizontalLength(), commandRange)

		res.Samples = append(res.Samples, TelemetrySample{
			TimestampS:     elapsed,
			State:          state,
			BatteryPct:     batt.LevelPct,
			BatteryVoltage: batt.VoltageV,
			CurrentA:       batt.CurrentA,
			MotorRPM:       motorRPM(m.cfg, controls.Throttle),
			SignalStrength: signal,
			DistanceDeltaM: state.Position.Sub(prev).Length(),
			FlightTimeS:    elapsed,
		})

		if batt.LevelPct < batteryEmergency {
			res.Outcome = OutcomeBatteryEmergency
			break
		}
		if signal < signalEmergency {
			res.Outcome = OutcomeSignalEmergency
			break
		}

		if wp.Position().Sub(state.Position).Length() <= arrivalToleranceM {
			current++
			if current >= len(waypoints) {
				res.Outcome = OutcomeCompleted
				res.WaypointsVisited = current
				res.EnergyWh = m.cfg.CapacityWh * (m.startBattery - batt.LevelPct) / 100.0
				return res
			}
		}
	}

	if res.Outcome == OutcomeCompleted {
		// Loop exhausted the step budget without finishing the route.
		res.Outcome = OutcomeBudgetExceeded
	}
	res.WaypointsVisited = current
	res.EnergyWh = m.cfg.CapacityWh * (m.startBattery - batt.LevelPct) / 100.0
	return res
}

// signalStrength is a linear falloff with range, floored so telemetry keeps a
// residual link value even far outside command range.
func signalStrength(distance, commandRange float64) float64 {
	if commandRange <= 0 {
		return signalFloor
	}
	s := 1.0 - distance/commandRange
	if s < signalFloor {
		return signalFloor
	}
	if s > 1 {
		return 1
	}
	return s
}
