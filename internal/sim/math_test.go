package sim_test

import (
	"math"
	"testing"

	sim "github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/sim"
)

func TestVec3Basics(t *testing.T) {
	a := sim.Vec3{X: 1, Y: 2, Z: 3}
	b := sim.Vec3{X: 4, Y: 5, Z: 6}

	sum := a.Add(b)
	if sum.X != 5 || sum.Y != 7 || sum.Z != 9 {
		t.Fatalf("unexpected sum: %+v", sum)
	}
	diff := b.Sub(a)
	if diff.X != 3 || diff.Y != 3 || diff.Z != 3 {
		t.Fatalf("unexpected diff: %+v", diff)
	}
	if got := a.Dot(b); got != 32 {
		t.Fatalf("expected dot 32, got %v", got)
	}
	cross := a.Cross(b)
	if cross.X != -3 || cross.Y != 6 || cross.Z != -3 {
		t.Fatalf("unexpected cross: %+v", cross)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := sim.Vec3{X: 3, Y: 0, Z: 4}
	n := v.Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Fatalf("expected unit length, got %v", n.Length())
	}

	zero := sim.Vec3{}
	if got := zero.NormalizeSafe(1e-9); got.Length() != 0 {
		t.Fatalf("expected zero vector, got %+v", got)
	}
}

func TestHorizontalLength(t *testing.T) {
	v := sim.Vec3{X: 3, Y: 4, Z: 100}
	if got := v.HorizontalLength(); math.Abs(got-5) > 1e-12 {
		t.Fatalf("expected 5, got %v", got)
	}
}

func TestEulerRotationIdentity(t *testing.T) {
	r := sim.EulerRotation(0, 0, 0)
	v := sim.Vec3{X: 1, Y: 2, Z: 3}
	got := r.Apply(v)
	if math.Abs(got.X-1) > 1e-12 || math.Abs(got.Y-2) > 1e-12 || math.Abs(got.Z-3) > 1e-12 {
		t.Fatalf("identity rotation moved vector: %+v", got)
	}
}

func TestEulerRotationYaw(t *testing.T) {
	// 90 degree yaw takes +X to +Y
	r := sim.EulerRotation(0, 0, math.Pi/2)
	got := r.Apply(sim.Vec3{X: 1})
	if math.Abs(got.X) > 1e-12 || math.Abs(got.Y-1) > 1e-12 {
		t.Fatalf("expected (0,1,0), got %+v", got)
	}
}

func TestDegRadRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 45, 90, 180, 360, -30} {
		if got := sim.RadToDeg(sim.DegToRad(deg)); math.Abs(got-deg) > 1e-9 {
			t.Fatalf("round trip of %v gave %v", deg, got)
		}
	}
}
