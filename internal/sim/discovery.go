package sim

import (
	"hash/fnv"
	"math"
	"math/rand"
)

// DiscoveryPredictor estimates how many targets a flown pattern would find.
// Implementations must be deterministic given identical inputs plus any
// randomness they declare through their own seeding.
type DiscoveryPredictor interface {
	PredictDiscoveries(patternKind string, coverage float64, urgency int, terrain TerrainKind, weather WeatherKind) float64
}

// RuleTablePredictor is the default predictor: a deterministic rule table
// over terrain, weather and urgency with a small seeded jitter. Identical
// inputs under the same seed always yield the same estimate, so concurrent
// fitness evaluations stay comparable and whole runs replay exactly.
type RuleTablePredictor struct {
	seed int64
}

func NewRuleTablePredictor(seed int64) *RuleTablePredictor {
	return &RuleTablePredictor{seed: seed}
}

// expected sightings over a fully covered nominal area, by terrain
var terrainDensity = map[TerrainKind]float64{
	TerrainOpen:     12.0,
	TerrainForest:   7.0,
	TerrainMountain: 5.0,
	TerrainUrban:    9.0,
	TerrainWater:    4.0,
}

var weatherFactor = map[WeatherKind]float64{
	WeatherClear: 1.0,
	WeatherWindy: 0.9,
	WeatherRain:  0.7,
	WeatherFog:   0.5,
	WeatherStorm: 0.35,
}

var patternFactor = map[string]float64{
	"grid":      1.0,
	"lawnmower": 1.0,
	"spiral":    0.9,
	"sector":    0.85,
	"adaptive":  1.15,
}

// PredictDiscoveries combines the rule table with jitter drawn from a stream
// keyed on all inputs.
func (p *RuleTablePredictor) PredictDiscoveries(patternKind string, coverage float64, urgency int, terrain TerrainKind, weather WeatherKind) float64 {
	density, ok := terrainDensity[terrain]
	if !ok {
		density = terrainDensity[TerrainOpen]
	}
	wf, ok := weatherFactor[weather]
	if !ok {
		wf = 1.0
	}
	pf, ok := patternFactor[patternKind]
	if !ok {
		pf = 1.0
	}
	if urgency < 1 {
		urgency = 1
	}
	if urgency > 5 {
		urgency = 5
	}

	coverage = clamp(coverage, 0, 1)
	// Higher urgency missions fly denser sensor sweeps.
	urgencyFactor := 0.8 + 0.1*float64(urgency)

	expected := coverage * density * wf * pf * urgencyFactor
	jitter := p.jitter(patternKind, coverage, urgency, terrain, weather)

	return math.Max(0, expected+jitter)
}

// jitter draws uniform(-2,2) from an rng seeded by hashing the inputs with
// the predictor seed. Purely input-derived randomness keeps the contract
// deterministic without shared rng state across goroutines.
func (p *RuleTablePredictor) jitter(kind string, coverage float64, urgency int, terrain TerrainKind, weather WeatherKind) float64 {
	h := fnv.New64a()
	h.Write([]byte(kind))
	h.Write([]byte(terrain))
	h.Write([]byte(weather))
	// quantize coverage so float noise cannot flip the stream
	q := uint64(coverage * 10000)
	var buf [16]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(q >> (8 * i))
		buf[8+i] = byte(uint64(urgency) >> (8 * i))
	}
	h.Write(buf[:])

	rng := rand.New(rand.NewSource(p.seed ^ int64(h.Sum64())))
	return rng.Float64()*4.0 - 2.0
}

// FalsePositiveRatio is the fixed fraction of discoveries expected to be
// spurious sensor hits.
const FalsePositiveRatio = 0.25
