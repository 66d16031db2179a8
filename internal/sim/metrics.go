package sim

// MissionMetrics are the derived figures callers compute from a run's
// telemetry; the simulator itself only produces samples.
type MissionMetrics struct {
	DistanceM        float64
	FlightTimeS      float64
	EnergyWh         float64
	CoverageFraction float64
	Discoveries      float64
	FalsePositives   float64
}

// ComputeMetrics reduces a mission result to its planning figures. Coverage
// is the traversed bounding-box area over the nominal search-area size.
func ComputeMetrics(res MissionResult, env SearchEnvironment, patternKind string, pred DiscoveryPredictor) MissionMetrics {
	var m MissionMetrics
	m.EnergyWh = res.EnergyWh

	if len(res.Samples) == 0 {
		return m
	}

	first := res.Samples[0].State.Position
	minX, maxX := first.X, first.X
	minY, maxY := first.Y, first.Y
	for _, s := range res.Samples {
		m.DistanceM += s.DistanceDeltaM
		p := s.State.Position
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	m.FlightTimeS = res.Samples[len(res.Samples)-1].FlightTimeS

	if env.AreaSizeM2 > 0 {
		m.CoverageFraction = clamp((maxX-minX)*(maxY-minY)/env.AreaSizeM2, 0, 1)
	}

	if pred != nil {
		m.Discoveries = pred.PredictDiscoveries(patternKind, m.CoverageFraction, env.Urgency, env.Terrain, env.Conditions.Weather)
		m.FalsePositives = m.Discoveries * FalsePositiveRatio
	}
	return m
}
