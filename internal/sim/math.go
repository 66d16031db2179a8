package sim

import (
	"math"
)

// Vec3 is a 3D vector with X/Y in the ground plane and Z up.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(other Vec3) Vec3     { return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z} }
func (v Vec3) Sub(other Vec3) Vec3     { return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z} }
func (v Vec3) Mul(scalar float64) Vec3 { return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar} }

func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

func (v Vec3) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{0, 0, 0}
	}
	return Vec3{v.X / length, v.Y / length, v.Z / length}
}

// NormalizeSafe normalizes unless |v| < eps, in which case it returns (0,0,0).
func (v Vec3) NormalizeSafe(eps float64) Vec3 {
	if v.Length() < eps {
		return Vec3{0, 0, 0}
	}
	return v.Normalize()
}

// HorizontalLength is the magnitude of the ground-plane projection.
func (v Vec3) HorizontalLength() float64 { return math.Hypot(v.X, v.Y) }

// Mat3 is a 3x3 rotation matrix in row-major order.
type Mat3 [9]float64

// EulerRotation builds the body-to-world rotation R = Rz(yaw)*Ry(pitch)*Rx(roll).
func EulerRotation(roll, pitch, yaw float64) Mat3 {
	cr, sr := math.Cos(roll), math.Sin(roll)
	cp, sp := math.Cos(pitch), math.Sin(pitch)
	cy, sy := math.Cos(yaw), math.Sin(yaw)

	return Mat3{
		cy * cp, cy*sp*sr - sy*cr, cy*sp*cr + sy*sr,
		sy * cp, sy*sp*sr + cy*cr, sy*sp*cr - cy*sr,
		-sp, cp * sr, cp * cr,
	}
}

// Apply rotates v: r = m * v.
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

func DegToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func RadToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func sanitizeFinite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
