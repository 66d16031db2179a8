package sim

import (
	"math"
)

// WaypointController is a stateless per-axis proportional-derivative tracker.
// The vertical channel drives throttle, horizontal position error drives
// roll/pitch, and yaw is held constant.
type WaypointController struct {
	cfg PhysicalConfiguration

	// position and velocity gains per channel
	KpVertical   float64
	KdVertical   float64
	KpHorizontal float64
	KdHorizontal float64
}

// NewWaypointController returns a controller with gains tuned for the
// configured airframe.
func NewWaypointController(cfg PhysicalConfiguration) *WaypointController {
	return &WaypointController{
		cfg:          cfg,
		KpVertical:   0.12,
		KdVertical:   0.20,
		KpHorizontal: 0.08,
		KdHorizontal: 0.14,
	}
}

// Control computes the commands that steer the state toward the target
// position and velocity. Outputs are clamped to their valid ranges.
func (w *WaypointController) Control(state KinematicState, targetPos, targetVel Vec3) Controls {
	// Vertical: PD correction around the hover throttle.
	ez := targetPos.Z - state.Position.Z
	evz := targetVel.Z - state.Velocity.Z
	throttle := w.cfg.HoverThrottle() + w.KpVertical*ez + w.KdVertical*evz

	// Horizontal: world-frame PD acceleration demand, rotated into the body
	// frame so roll/pitch commands stay meaningful at any heading.
	ex := targetPos.X - state.Position.X
	ey := targetPos.Y - state.Position.Y
	evx := targetVel.X - state.Velocity.X
	evy := targetVel.Y - state.Velocity.Y
	ax := w.KpHorizontal*ex + w.KdHorizontal*evx
	ay := w.KpHorizontal*ey + w.KdHorizontal*evy

	cy, sy := math.Cos(state.Yaw), math.Sin(state.Yaw)
	forward := ax*cy + ay*sy
	right := ax*sy - ay*cy

	return Controls{
		Throttle: throttle,
		Pitch:    forward,
		Roll:     right,
		Yaw:      0, // heading held
	}.Clamped()
}
