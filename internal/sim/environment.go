package sim

import (
	"math"
	"time"
)

// WeatherKind is the coarse weather category of a mission.
type WeatherKind string

const (
	WeatherClear WeatherKind = "clear"
	WeatherWindy WeatherKind = "windy"
	WeatherRain  WeatherKind = "rain"
	WeatherFog   WeatherKind = "fog"
	WeatherStorm WeatherKind = "storm"
)

// TerrainKind is the dominant terrain of the search area.
type TerrainKind string

const (
	TerrainOpen     TerrainKind = "open"
	TerrainForest   TerrainKind = "forest"
	TerrainMountain TerrainKind = "mountain"
	TerrainUrban    TerrainKind = "urban"
	TerrainWater    TerrainKind = "water"
)

// TargetKind is what the mission is searching for.
type TargetKind string

const (
	TargetPerson  TargetKind = "person"
	TargetVehicle TargetKind = "vehicle"
	TargetVessel  TargetKind = "vessel"
)

// EnvironmentalConditions are set once per mission run and read-only thereafter.
type EnvironmentalConditions struct {
	WindSpeedMS      float64
	WindDirectionDeg float64 // direction the wind blows toward, from +X
	TemperatureC     float64
	PressureHPa      float64
	HumidityPct      float64
	VisibilityKM     float64
	Weather          WeatherKind
}

// DefaultConditions is a calm sea-level standard atmosphere.
func DefaultConditions() EnvironmentalConditions {
	return EnvironmentalConditions{
		WindSpeedMS:      0,
		WindDirectionDeg: 0,
		TemperatureC:     15.0,
		PressureHPa:      1013.25,
		HumidityPct:      50,
		VisibilityKM:     10,
		Weather:          WeatherClear,
	}
}

// specific gas constant for dry air, J/(kg*K)
const gasConstantAir = 287.05

const gravity = 9.81

// AirDensity derives density from temperature and pressure via the ideal-gas law.
func (e EnvironmentalConditions) AirDensity() float64 {
	t := e.TemperatureC + 273.15
	if t <= 0 {
		t = 1
	}
	p := e.PressureHPa * 100.0
	if p <= 0 {
		p = 101325.0
	}
	return p / (gasConstantAir * t)
}

// WindVector is the wind velocity in world coordinates (planar).
func (e EnvironmentalConditions) WindVector() Vec3 {
	rad := DegToRad(e.WindDirectionDeg)
	return Vec3{
		X: e.WindSpeedMS * math.Cos(rad),
		Y: e.WindSpeedMS * math.Sin(rad),
	}
}

// SearchEnvironment is constant across one optimization run.
type SearchEnvironment struct {
	Terrain         TerrainKind
	Conditions      EnvironmentalConditions
	AreaSizeM2      float64
	Target          TargetKind
	Urgency         int // 1 (routine) .. 5 (critical)
	DroneCount      int
	MissionDuration time.Duration
}

// DefaultSearchEnvironment is a 1 km2 open-terrain person search.
func DefaultSearchEnvironment() SearchEnvironment {
	return SearchEnvironment{
		Terrain:         TerrainOpen,
		Conditions:      DefaultConditions(),
		AreaSizeM2:      1_000_000,
		Target:          TargetPerson,
		Urgency:         3,
		DroneCount:      1,
		MissionDuration: 25 * time.Minute,
	}
}

// AreaRadius is the radius of the circle with the configured area.
func (s SearchEnvironment) AreaRadius() float64 {
	if s.AreaSizeM2 <= 0 {
		return 0
	}
	return math.Sqrt(s.AreaSizeM2 / math.Pi)
}
