package sim

// KinematicState is the 12-dimensional rigid-body state of one drone. It is
// mutable and exclusively owned by a single mission run.
type KinematicState struct {
	Position   Vec3
	Velocity   Vec3
	Roll       float64 // about body X, radians
	Pitch      float64 // about body Y, radians
	Yaw        float64 // about body Z, radians
	AngularVel Vec3
}

// stateVec is the flat integrator representation:
// [px py pz vx vy vz roll pitch yaw wx wy wz].
type stateVec [12]float64

func (s KinematicState) pack(out *stateVec) {
	out[0], out[1], out[2] = s.Position.X, s.Position.Y, s.Position.Z
	out[3], out[4], out[5] = s.Velocity.X, s.Velocity.Y, s.Velocity.Z
	out[6], out[7], out[8] = s.Roll, s.Pitch, s.Yaw
	out[9], out[10], out[11] = s.AngularVel.X, s.AngularVel.Y, s.AngularVel.Z
}

func unpack(v *stateVec) KinematicState {
	return KinematicState{
		Position:   Vec3{v[0], v[1], v[2]},
		Velocity:   Vec3{v[3], v[4], v[5]},
		Roll:       v[6],
		Pitch:      v[7],
		Yaw:        v[8],
		AngularVel: Vec3{v[9], v[10], v[11]},
	}
}

// sanitize guards against NaN/Inf creeping in through extreme inputs.
func (s KinematicState) sanitize() KinematicState {
	s.Position.X = sanitizeFinite(s.Position.X)
	s.Position.Y = sanitizeFinite(s.Position.Y)
	s.Position.Z = sanitizeFinite(s.Position.Z)
	s.Velocity.X = sanitizeFinite(s.Velocity.X)
	s.Velocity.Y = sanitizeFinite(s.Velocity.Y)
	s.Velocity.Z = sanitizeFinite(s.Velocity.Z)
	s.Roll = sanitizeFinite(s.Roll)
	s.Pitch = sanitizeFinite(s.Pitch)
	s.Yaw = sanitizeFinite(s.Yaw)
	s.AngularVel.X = sanitizeFinite(s.AngularVel.X)
	s.AngularVel.Y = sanitizeFinite(s.AngularVel.Y)
	s.AngularVel.Z = sanitizeFinite(s.AngularVel.Z)
	return s
}
