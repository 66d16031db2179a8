// Package pattern defines the search-pattern genome evolved by the optimizer
// and its expansion into concrete waypoint routes.
package pattern

import (
	"math"
	"math/rand"
)

// Kind tags the five supported pattern geometries.
type Kind string

const (
	KindGrid      Kind = "grid"
	KindSpiral    Kind = "spiral"
	KindSector    Kind = "sector"
	KindLawnmower Kind = "lawnmower"
	KindAdaptive  Kind = "adaptive"
)

// Kinds lists every valid pattern kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindGrid, KindSpiral, KindSector, KindLawnmower, KindAdaptive}
}

// Valid reports whether k names a known pattern kind.
func (k Kind) Valid() bool {
	switch k {
	case KindGrid, KindSpiral, KindSector, KindLawnmower, KindAdaptive:
		return true
	}
	return false
}

func (k Kind) String() string { return string(k) }

// Bound declares the closed interval for one parameter.
type Bound struct {
	Name     string
	Min, Max float64
}

// The bounds table keys parameter layouts by kind. The order of each slice is
// the order of SearchPattern.Values for that kind.
var boundsTable = map[Kind][]Bound{
	KindGrid: {
		{Name: "spacing_m", Min: 20, Max: 100},
		{Name: "angle_deg", Min: 0, Max: 90},
	},
	KindSpiral: {
		{Name: "radius_step_m", Min: 10, Max: 50},
		{Name: "angle_step_deg", Min: 10, Max: 45},
		{Name: "max_radius_m", Min: 100, Max: 1000},
	},
	KindSector: {
		{Name: "sector_count", Min: 4, Max: 12},
		{Name: "sector_angle_deg", Min: 30, Max: 90},
		{Name: "search_radius_m", Min: 100, Max: 800},
	},
	KindLawnmower: {
		{Name: "strip_width_m", Min: 20, Max: 100},
	},
	KindAdaptive: {
		{Name: "exploration_rate", Min: 0.1, Max: 0.9},
		{Name: "adaptation_threshold", Min: 0.3, Max: 0.9},
		{Name: "learning_rate", Min: 0.01, Max: 0.5},
	},
}

// Bounds returns the parameter layout of a kind. Unknown kinds get the grid
// layout, matching the generator's fallback.
func Bounds(k Kind) []Bound {
	if b, ok := boundsTable[k]; ok {
		return b
	}
	return boundsTable[KindGrid]
}

// UnevaluatedFitness is the sentinel marking an individual that has not been
// simulated yet. Evaluated fitness always lands in [0,1].
const UnevaluatedFitness = -1.0

// Scores are the fitness sub-scores, each in [0,1].
type Scores struct {
	Coverage float64 `json:"coverage"`
	Success  float64 `json:"success"`
	Energy   float64 `json:"energy"`
	Time     float64 `json:"time"`
}

// SearchPattern is one individual: a kind tag plus its bounded parameter
// vector, ordered per Bounds(kind).
type SearchPattern struct {
	Kind    Kind      `json:"kind"`
	Values  []float64 `json:"values"`
	Fitness float64   `json:"fitness"`
	Scores  Scores    `json:"scores"`
}

// Random draws a pattern of the given kind with every parameter uniform
// within its bounds.
func Random(k Kind, rng *rand.Rand) SearchPattern {
	bounds := Bounds(k)
	values := make([]float64, len(bounds))
	for i, b := range bounds {
		values[i] = b.Min + rng.Float64()*(b.Max-b.Min)
	}
	return SearchPattern{Kind: k, Values: values, Fitness: UnevaluatedFitness}
}

// RandomKind draws a uniformly random kind.
func RandomKind(rng *rand.Rand) Kind {
	kinds := Kinds()
	return kinds[rng.Intn(len(kinds))]
}

// Clone deep-copies the pattern so generations never alias parameter slices.
func (p SearchPattern) Clone() SearchPattern {
	c := p
	c.Values = append([]float64(nil), p.Values...)
	return c
}

// Evaluated reports whether the pattern carries a real fitness.
func (p SearchPattern) Evaluated() bool { return p.Fitness >= 0 }

// Clamp forces every parameter back inside its declared bounds.
func (p *SearchPattern) Clamp() {
	bounds := Bounds(p.Kind)
	for i := range p.Values {
		if i >= len(bounds) {
			break
		}
		if p.Values[i] < bounds[i].Min {
			p.Values[i] = bounds[i].Min
		} else if p.Values[i] > bounds[i].Max {
			p.Values[i] = bounds[i].Max
		}
	}
}

// InBounds reports whether every parameter lies within its declared bound.
func (p SearchPattern) InBounds() bool {
	bounds := Bounds(p.Kind)
	if len(p.Values) != len(bounds) {
		return false
	}
	for i, b := range bounds {
		if p.Values[i] < b.Min || p.Values[i] > b.Max {
			return false
		}
	}
	return true
}

// Params returns the named parameter map view used for reporting.
func (p SearchPattern) Params() map[string]float64 {
	bounds := Bounds(p.Kind)
	out := make(map[string]float64, len(bounds))
	for i, b := range bounds {
		if i < len(p.Values) {
			out[b.Name] = p.Values[i]
		}
	}
	return out
}

func (p SearchPattern) value(i int, fallback float64) float64 {
	if i < len(p.Values) {
		return p.Values[i]
	}
	return fallback
}

// Typed decodings of the parameter vector. Each is the phenotype view of the
// genome for one kind; calling the wrong decoder yields that kind's defaults.

type GridParams struct {
	SpacingM float64
	AngleDeg float64
}

func (p SearchPattern) Grid() GridParams {
	return GridParams{
		SpacingM: p.value(0, 50),
		AngleDeg: p.value(1, 0),
	}
}

type SpiralParams struct {
	RadiusStepM  float64
	AngleStepDeg float64
	MaxRadiusM   float64
}

func (p SearchPattern) Spiral() SpiralParams {
	return SpiralParams{
		RadiusStepM:  p.value(0, 25),
		AngleStepDeg: p.value(1, 20),
		MaxRadiusM:   p.value(2, 500),
	}
}

type SectorParams struct {
	SectorCount    int
	SectorAngleDeg float64
	SearchRadiusM  float64
}

func (p SearchPattern) Sector() SectorParams {
	return SectorParams{
		SectorCount:    int(math.Round(p.value(0, 6))),
		SectorAngleDeg: p.value(1, 45),
		SearchRadiusM:  p.value(2, 400),
	}
}

type LawnmowerParams struct {
	StripWidthM float64
}

func (p SearchPattern) Lawnmower() LawnmowerParams {
	return LawnmowerParams{StripWidthM: p.value(0, 50)}
}

// AdaptiveParams tune the discovery model only; adaptive geometry reuses the
// spiral defaults.
type AdaptiveParams struct {
	ExplorationRate     float64
	AdaptationThreshold float64
	LearningRate        float64
}

func (p SearchPattern) Adaptive() AdaptiveParams {
	return AdaptiveParams{
		ExplorationRate:     p.value(0, 0.5),
		AdaptationThreshold: p.value(1, 0.6),
		LearningRate:        p.value(2, 0.1),
	}
}
