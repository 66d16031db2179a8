package sim

import (
	"math"
)

// Controls are normalized actuator commands for one timestep.
type Controls struct {
	Throttle float64 // 0..1
	Roll     float64 // -1..1, positive rolls right
	Pitch    float64 // -1..1, positive pitches forward (nose down)
	Yaw      float64 // -1..1, positive yaws left
}

// Clamped returns the controls limited to their valid ranges.
func (c Controls) Clamped() Controls {
	return Controls{
		Throttle: clamp(c.Throttle, 0, 1),
		Roll:     clamp(c.Roll, -1, 1),
		Pitch:    clamp(c.Pitch, -1, 1),
		Yaw:      clamp(c.Yaw, -1, 1),
	}
}

// Forces is the per-step force breakdown in world coordinates, Newtons.
type Forces struct {
	Thrust  Vec3
	Gravity Vec3
	Drag    Vec3
	Wind    Vec3
	Net     Vec3
}

const (
	// minimum airspeed below which drag is treated as zero, avoids a
	// division fault when normalizing the velocity direction
	minAirspeed = 0.01

	// moment arm used for the diagonal inertia approximation and for
	// converting attitude commands to torques
	armLengthM = 0.35

	maxTiltRad = math.Pi / 3 // 60 degrees

	angularDamping = 4.0 // 1/s, rotational stability augmentation
)

// FlightDynamicsModel integrates rigid-body motion with a classic fourth-order
// Runge-Kutta scheme. The model owns fixed-size integrator buffers that are
// reused every step, so one instance must not be shared across concurrent runs.
type FlightDynamicsModel struct {
	cfg       PhysicalConfiguration
	inertia   Vec3    // diagonal inertia, kg*m2
	maxMoment float64 // N*m available per attitude axis
	maxYaw    float64 // N*m available about body Z

	// reused RK4 buffers
	y, k1, k2, k3, k4, tmp stateVec
}

// NewFlightDynamicsModel binds a model to one airframe configuration.
func NewFlightDynamicsModel(cfg PhysicalConfiguration) *FlightDynamicsModel {
	// Point-mass rotors on arms dominate the inertia of a multirotor.
	ixy := 0.5 * cfg.MassKg * armLengthM * armLengthM
	iz := 0.8 * cfg.MassKg * armLengthM * armLengthM
	return &FlightDynamicsModel{
		cfg:       cfg,
		inertia:   Vec3{X: ixy, Y: ixy, Z: iz},
		maxMoment: 0.25 * cfg.MaxThrustN * armLengthM,
		maxYaw:    0.05 * cfg.MaxThrustN * armLengthM,
	}
}

// Step advances the state by dt seconds under the given controls and
// environment. It returns the new state plus the force and moment breakdown
// evaluated at the initial state, for battery accounting.
func (m *FlightDynamicsModel) Step(state KinematicState, controls Controls, env EnvironmentalConditions, dt float64) (KinematicState, Forces, Vec3) {
	controls = controls.Clamped()
	rho := env.AirDensity()
	wind := env.WindVector()

	forces := m.forces(state, controls, rho, wind)
	moments := m.moments(state, controls)

	state.pack(&m.y)

	// k1 = f(y)
	m.derive(&m.y, controls, rho, wind, &m.k1)
	// k2 = f(y + dt/2*k1)
	axpy(&m.tmp, &m.y, &m.k1, dt/2)
	m.derive(&m.tmp, controls, rho, wind, &m.k2)
	// k3 = f(y + dt/2*k2)
	axpy(&m.tmp, &m.y, &m.k2, dt/2)
	m.derive(&m.tmp, controls, rho, wind, &m.k3)
	// k4 = f(y + dt*k3)
	axpy(&m.tmp, &m.y, &m.k3, dt)
	m.derive(&m.tmp, controls, rho, wind, &m.k4)

	for i := range m.y {
		m.y[i] += dt / 6 * (m.k1[i] + 2*m.k2[i] + 2*m.k3[i] + m.k4[i])
	}

	next := unpack(&m.y).sanitize()
	next = m.enforceEnvelope(next)
	return next, forces, moments
}

// derive evaluates the state derivative into out.
func (m *FlightDynamicsModel) derive(y *stateVec, c Controls, rho float64, wind Vec3, out *stateVec) {
	s := unpack(y)
	f := m.forces(s, c, rho, wind)
	mom := m.moments(s, c)

	acc := f.Net.Mul(1.0 / m.cfg.MassKg)
	angAcc := Vec3{
		X: mom.X / m.inertia.X,
		Y: mom.Y / m.inertia.Y,
		Z: mom.Z / m.inertia.Z,
	}

	out[0], out[1], out[2] = s.Velocity.X, s.Velocity.Y, s.Velocity.Z
	out[3], out[4], out[5] = acc.X, acc.Y, acc.Z
	out[6], out[7], out[8] = s.AngularVel.X, s.AngularVel.Y, s.AngularVel.Z
	out[9], out[10], out[11] = angAcc.X, angAcc.Y, angAcc.Z
}

// forces computes the world-frame force breakdown at a state.
func (m *FlightDynamicsModel) forces(s KinematicState, c Controls, rho float64, wind Vec3) Forces {
	var f Forces

	// Thrust along body Z rotated into the world frame.
	rot := EulerRotation(s.Roll, s.Pitch, s.Yaw)
	f.Thrust = rot.Apply(Vec3{Z: c.Throttle * m.cfg.MaxThrustN})

	f.Gravity = Vec3{Z: -m.cfg.MassKg * gravity}

	// Drag = 0.5 * rho * v^2 * Cd * A opposing velocity.
	f.Drag = m.quadraticDrag(s.Velocity, rho)

	// Wind pushes with the same law applied to the airflow itself, so the
	// two terms cancel once the airframe drifts at wind speed.
	f.Wind = m.quadraticDrag(wind.Mul(-1), rho)

	f.Net = f.Thrust.Add(f.Gravity).Add(f.Drag).Add(f.Wind)
	return f
}

func (m *FlightDynamicsModel) quadraticDrag(v Vec3, rho float64) Vec3 {
	speed := v.Length()
	if speed < minAirspeed {
		return Vec3{}
	}
	mag := 0.5 * rho * speed * speed * m.cfg.DragCoefficient * m.cfg.FrontalAreaM2
	return v.NormalizeSafe(minAirspeed).Mul(-mag)
}

// moments converts attitude commands to body torques with rate damping.
func (m *FlightDynamicsModel) moments(s KinematicState, c Controls) Vec3 {
	return Vec3{
		X: c.Roll*m.maxMoment - angularDamping*m.inertia.X*s.AngularVel.X,
		Y: c.Pitch*m.maxMoment - angularDamping*m.inertia.Y*s.AngularVel.Y,
		Z: c.Yaw*m.maxYaw - angularDamping*m.inertia.Z*s.AngularVel.Z,
	}
}

// enforceEnvelope applies the airframe speed and attitude limits.
func (m *FlightDynamicsModel) enforceEnvelope(s KinematicState) KinematicState {
	h := s.Velocity.HorizontalLength()
	if h > m.cfg.MaxSpeedMS {
		scale := m.cfg.MaxSpeedMS / h
		s.Velocity.X *= scale
		s.Velocity.Y *= scale
	}
	s.Roll = clamp(s.Roll, -maxTiltRad, maxTiltRad)
	s.Pitch = clamp(s.Pitch, -maxTiltRad, maxTiltRad)
	for s.Yaw > math.Pi {
		s.Yaw -= 2 * math.Pi
	}
	for s.Yaw < -math.Pi {
		s.Yaw += 2 * math.Pi
	}
	if s.Position.Z < 0 {
		s.Position.Z = 0
		if s.Velocity.Z < 0 {
			s.Velocity.Z = 0
		}
	}
	return s
}

// axpy computes out = y + k*scale element-wise.
func axpy(out, y, k *stateVec, scale float64) {
	for i := range out {
		out[i] = y[i] + k[i]*scale
	}
}
