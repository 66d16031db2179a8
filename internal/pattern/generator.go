package pattern

import (
	"math"

	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/sim"
)

// CruiseAltitudeM is the fixed search altitude for all generated routes.
const CruiseAltitudeM = 50.0

// radial sampling distance for sector legs
const sectorSampleM = 50.0

// Generate expands a pattern into its waypoint route, planar at cruise
// altitude and centered on the search-area centroid. Generation is
// deterministic: identical inputs always yield identical routes. Parameter
// validity is the optimizer's responsibility; an unknown kind falls back to
// a default 50 m grid.
func Generate(p SearchPattern, env sim.SearchEnvironment) []sim.Waypoint {
	radius := env.AreaRadius()
	switch p.Kind {
	case KindGrid:
		g := p.Grid()
		return gridWaypoints(g.SpacingM, g.AngleDeg, radius)
	case KindSpiral:
		s := p.Spiral()
		return spiralWaypoints(s.RadiusStepM, s.AngleStepDeg, math.Min(s.MaxRadiusM, radius))
	case KindSector:
		s := p.Sector()
		return sectorWaypoints(s.SectorCount, s.SectorAngleDeg, math.Min(s.SearchRadiusM, radius))
	case KindLawnmower:
		l := p.Lawnmower()
		return lawnmowerWaypoints(l.StripWidthM, radius)
	case KindAdaptive:
		// Adaptive flies spiral geometry; its parameters steer the
		// discovery model, not the route.
		return spiralWaypoints(25, 20, radius)
	default:
		return gridWaypoints(50, 0, radius)
	}
}

// gridWaypoints lays a lattice at the given spacing, rotated by angle and
// clipped to the area circle. Rows alternate direction to keep legs short.
func gridWaypoints(spacing, angleDeg, radius float64) []sim.Waypoint {
	if spacing <= 0 {
		spacing = 50
	}
	sin, cos := math.Sincos(sim.DegToRad(angleDeg))

	var out []sim.Waypoint
	row := 0
	for y := -radius; y <= radius; y += spacing {
		var line []sim.Waypoint
		for x := -radius; x <= radius; x += spacing {
			if math.Hypot(x, y) > radius {
				continue
			}
			// rotate the lattice about the centroid
			wx := x*cos - y*sin
			wy := x*sin + y*cos
			line = append(line, sim.Waypoint{X: wx, Y: wy, AltitudeM: CruiseAltitudeM})
		}
		if row%2 == 1 {
			for i, j := 0, len(line)-1; i < j; i, j = i+1, j-1 {
				line[i], line[j] = line[j], line[i]
			}
		}
		out = append(out, line...)
		row++
	}
	return out
}

// spiralWaypoints walks an Archimedean spiral outward from the centroid,
// growing by radiusStep every angleStep degrees.
func spiralWaypoints(radiusStep, angleStepDeg, maxRadius float64) []sim.Waypoint {
	if radiusStep <= 0 {
		radiusStep = 25
	}
	if angleStepDeg <= 0 {
		angleStepDeg = 20
	}
	step := sim.DegToRad(angleStepDeg)

	var out []sim.Waypoint
	r := radiusStep
	theta := 0.0
	for r <= maxRadius {
		out = append(out, sim.Waypoint{
			X:         r * math.Cos(theta),
			Y:         r * math.Sin(theta),
			AltitudeM: CruiseAltitudeM,
		})
		theta += step
		r += radiusStep
	}
	return out
}

// sectorWaypoints sweeps wedges around the centroid, sampling each wedge edge
// radially and returning along the far edge.
func sectorWaypoints(count int, sectorAngleDeg, searchRadius float64) []sim.Waypoint {
	if count < 1 {
		count = 1
	}
	halfAngle := sim.DegToRad(sectorAngleDeg)

	var out []sim.Waypoint
	for i := 0; i < count; i++ {
		heading := 2 * math.Pi * float64(i) / float64(count)

		// outbound along the leading edge
		for r := sectorSampleM; r <= searchRadius; r += sectorSampleM {
			out = append(out, sim.Waypoint{
				X:         r * math.Cos(heading),
				Y:         r * math.Sin(heading),
				AltitudeM: CruiseAltitudeM,
			})
		}
		// inbound along the trailing edge
		for r := searchRadius; r >= sectorSampleM; r -= sectorSampleM {
			out = append(out, sim.Waypoint{
				X:         r * math.Cos(heading+halfAngle),
				Y:         r * math.Sin(heading+halfAngle),
				AltitudeM: CruiseAltitudeM,
			})
		}
	}
	return out
}

// lawnmowerWaypoints flies alternating-direction strips across the area
// circle, one out-and-back chord per strip width.
func lawnmowerWaypoints(stripWidth, radius float64) []sim.Waypoint {
	if stripWidth <= 0 {
		stripWidth = 50
	}

	var out []sim.Waypoint
	row := 0
	for y := -radius + stripWidth/2; y <= radius; y += stripWidth {
		chord := radius*radius - y*y
		if chord <= 0 {
			continue
		}
		half := math.Sqrt(chord)
		left := sim.Waypoint{X: -half, Y: y, AltitudeM: CruiseAltitudeM}
		right := sim.Waypoint{X: half, Y: y, AltitudeM: CruiseAltitudeM}
		if row%2 == 0 {
			out = append(out, left, right)
		} else {
			out = append(out, right, left)
		}
		row++
	}
	return out
}
