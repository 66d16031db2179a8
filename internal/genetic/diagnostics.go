package genetic

// Diagnostics is a read-only snapshot for operational dashboards. It has no
// core-logic dependency: the optimizer never reads it back.
type Diagnostics struct {
	PopulationSize int       `json:"population_size"`
	Generation     int       `json:"generation"`
	Simulations    int64     `json:"simulations"`
	BestFitness    float64   `json:"best_fitness"`
	RecentFitness  []float64 `json:"recent_fitness"`
	Running        bool      `json:"running"`
}

// how many trailing generations the snapshot carries
const recentWindow = 10

// Diagnostics captures the optimizer's current progress.
func (o *Optimizer) Diagnostics() Diagnostics {
	o.mu.Lock()
	defer o.mu.Unlock()

	recent := o.history
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}

	d := Diagnostics{
		PopulationSize: o.cfg.PopulationSize,
		Generation:     o.generation,
		Simulations:    o.simulations.Load(),
		RecentFitness:  append([]float64(nil), recent...),
		Running:        o.running,
	}
	if o.hasBest {
		d.BestFitness = o.best.Fitness
	}
	return d
}
