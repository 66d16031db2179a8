package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/api"
	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/db"
	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/genetic"
	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/pattern"
	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/report"
	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/sim"
)

// environment flags shared by optimize, simulate and serve.
type envFlags struct {
	terrain  string
	weather  string
	areaM2   float64
	urgency  int
	windMS   float64
	duration time.Duration
}

func (f *envFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.terrain, "terrain", "open", "Terrain kind (open, forest, mountain, urban, water)")
	cmd.Flags().StringVar(&f.weather, "weather", "clear", "Weather kind (clear, windy, rain, fog, storm)")
	cmd.Flags().Float64Var(&f.areaM2, "area", 1_000_000, "Search area in square meters")
	cmd.Flags().IntVar(&f.urgency, "urgency", 3, "Mission urgency, 1 (routine) to 5 (critical)")
	cmd.Flags().Float64Var(&f.windMS, "wind", 0, "Wind speed in m/s")
	cmd.Flags().DurationVar(&f.duration, "duration", 25*time.Minute, "Mission time budget")
}

func (f *envFlags) build() (sim.SearchEnvironment, error) {
	env := sim.DefaultSearchEnvironment()
	env.Terrain = sim.TerrainKind(f.terrain)
	env.Conditions.Weather = sim.WeatherKind(f.weather)
	env.Conditions.WindSpeedMS = f.windMS
	env.AreaSizeM2 = f.areaM2
	env.Urgency = f.urgency
	env.MissionDuration = f.duration

	switch env.Terrain {
	case sim.TerrainOpen, sim.TerrainForest, sim.TerrainMountain, sim.TerrainUrban, sim.TerrainWater:
	default:
		return env, fmt.Errorf("unknown terrain %q", f.terrain)
	}
	switch env.Conditions.Weather {
	case sim.WeatherClear, sim.WeatherWindy, sim.WeatherRain, sim.WeatherFog, sim.WeatherStorm:
	default:
		return env, fmt.Errorf("unknown weather %q", f.weather)
	}
	if env.Urgency < 1 || env.Urgency > 5 {
		return env, fmt.Errorf("urgency must be 1..5, got %d", env.Urgency)
	}
	return env, nil
}

// gaFlags configure the optimizer.
type gaFlags struct {
	population  int
	generations int
	mutation    float64
	crossover   float64
	elite       int
	parallel    int
	seed        int64
}

func (f *gaFlags) register(cmd *cobra.Command) {
	def := genetic.DefaultConfig()
	cmd.Flags().IntVar(&f.population, "population", def.PopulationSize, "Population size")
	cmd.Flags().IntVar(&f.generations, "generations", def.Generations, "Number of generations")
	cmd.Flags().Float64Var(&f.mutation, "mutation", def.MutationRate, "Mutation rate")
	cmd.Flags().Float64Var(&f.crossover, "crossover", def.CrossoverRate, "Crossover rate")
	cmd.Flags().IntVar(&f.elite, "elite", def.EliteSize, "Elite individuals carried over unchanged")
	cmd.Flags().IntVar(&f.parallel, "parallel", 0, "Concurrent fitness evaluations (0 = NumCPU)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "Random seed (0 = time-based)")
}

func (f *gaFlags) build() genetic.Config {
	cfg := genetic.DefaultConfig()
	cfg.PopulationSize = f.population
	cfg.Generations = f.generations
	cfg.MutationRate = f.mutation
	cfg.CrossoverRate = f.crossover
	cfg.EliteSize = f.elite
	cfg.Parallelism = f.parallel
	cfg.Seed = f.seed
	return cfg
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "sarplan",
		Short: "Search-and-rescue pattern planner",
		Long: `Simulates multirotor search missions against a physics model and evolves
the search-pattern geometry that covers the most area on the least energy.
Results can be recorded in SQLite and exported as Excel workbooks.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(optimizeCmd())
	rootCmd.AddCommand(simulateCmd())
	rootCmd.AddCommand(patternsCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(runsCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// signalContext cancels on SIGINT/SIGTERM so a long optimization still
// reports its best pattern so far.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func optimizeCmd() *cobra.Command {
	var ef envFlags
	var gf gaFlags
	var dbPath string
	var reportPath string

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Evolve the best search pattern for a mission",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ef.build()
			if err != nil {
				return err
			}
			cfg := gf.build()

			opt, err := genetic.New(env, sim.DefaultConfiguration(), nil, cfg)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			fmt.Printf("Optimizing %s/%s search over %.1f km2 (urgency %d)\n",
				env.Terrain, env.Conditions.Weather, env.AreaSizeM2/1e6, env.Urgency)
			fmt.Printf("Population %d, %d generations\n\n", cfg.PopulationSize, cfg.Generations)

			start := time.Now()
			best, optErr := opt.Optimize(ctx)
			elapsed := time.Since(start)
			if optErr != nil && !best.Evaluated() {
				return optErr
			}
			if optErr != nil {
				fmt.Printf("Interrupted after %v, reporting best so far\n\n", elapsed.Round(time.Millisecond))
			}

			printPattern(best)
			diag := opt.Diagnostics()
			fmt.Printf("\n%d simulations in %v (%.0f sims/sec)\n",
				diag.Simulations, elapsed.Round(time.Millisecond),
				float64(diag.Simulations)/elapsed.Seconds())

			run := db.Run{
				ID:          uuid.New().String(),
				CreatedAt:   time.Now(),
				Terrain:     string(env.Terrain),
				Weather:     string(env.Conditions.Weather),
				AreaM2:      env.AreaSizeM2,
				Urgency:     env.Urgency,
				Population:  cfg.PopulationSize,
				Generations: cfg.Generations,
				BestKind:    best.Kind.String(),
				BestFitness: best.Fitness,
			}

			if dbPath != "" {
				if err := recordRun(dbPath, run, best, opt.History(), env); err != nil {
					return fmt.Errorf("record run: %w", err)
				}
				fmt.Printf("Recorded run %s in %s\n", run.ID, dbPath)
			}

			if reportPath != "" {
				if err := writeReport(reportPath, run, best, opt.History(), env); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				fmt.Printf("Report written to %s\n", reportPath)
			}

			return nil
		},
	}

	ef.register(cmd)
	gf.register(cmd)
	cmd.Flags().StringVar(&dbPath, "db", "", "Record the run in this SQLite database")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write an .xlsx report to this path")
	return cmd
}

// recordRun stores the run header, history and a replay of the best
// pattern's telemetry.
func recordRun(dbPath string, run db.Run, best pattern.SearchPattern, history []float64, env sim.SearchEnvironment) error {
	database, err := db.New(dbPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.InsertRun(run, best, history); err != nil {
		return err
	}

	res := replayBest(best, env)
	_, err = database.InsertTelemetryBatch(run.ID, res.Samples)
	return err
}

func writeReport(path string, run db.Run, best pattern.SearchPattern, history []float64, env sim.SearchEnvironment) error {
	wb, err := report.NewWorkbook()
	if err != nil {
		return err
	}
	if err := wb.WriteRun(run); err != nil {
		return err
	}
	if err := wb.WriteHistory(history); err != nil {
		return err
	}
	if err := wb.WriteBestPattern(best); err != nil {
		return err
	}
	res := replayBest(best, env)
	if err := wb.WriteTelemetry(res.Samples); err != nil {
		return err
	}
	return wb.Save(path)
}

// replayBest reruns the winning pattern once to regenerate its telemetry.
// Simulation is deterministic so the replay matches the scored flight.
func replayBest(best pattern.SearchPattern, env sim.SearchEnvironment) sim.MissionResult {
	waypoints := pattern.Generate(best, env)
	ms := sim.NewMissionSimulator(sim.DefaultConfiguration())
	return ms.Simulate(waypoints, env, env.MissionDuration)
}

func printPattern(p pattern.SearchPattern) {
	fmt.Printf("Best pattern: %s (fitness %.4f)\n", p.Kind, p.Fitness)
	fmt.Printf("  coverage %.3f  success %.3f  energy %.3f  time %.3f\n",
		p.Scores.Coverage, p.Scores.Success, p.Scores.Energy, p.Scores.Time)
	for _, b := range pattern.Bounds(p.Kind) {
		fmt.Printf("  %-24s %.2f\n", b.Name, p.Params()[b.Name])
	}
}

func simulateCmd() *cobra.Command {
	var ef envFlags
	var kindName string
	var seed int64
	var battery float64

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Fly one pattern through the mission simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ef.build()
			if err != nil {
				return err
			}
			kind := pattern.Kind(kindName)
			if !kind.Valid() {
				return fmt.Errorf("unknown pattern %q", kindName)
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			rng := rand.New(rand.NewSource(seed))
			p := pattern.Random(kind, rng)
			waypoints := pattern.Generate(p, env)

			ms := sim.NewMissionSimulator(sim.DefaultConfiguration())
			ms.SetInitialBattery(battery)
			res := ms.Simulate(waypoints, env, env.MissionDuration)

			pred := sim.NewRuleTablePredictor(seed)
			metrics := sim.ComputeMetrics(res, env, kind.String(), pred)

			fmt.Printf("Pattern %s, %d waypoints, seed %d\n", kind, len(waypoints), seed)
			for name, value := range p.Params() {
				fmt.Printf("  %-24s %.2f\n", name, value)
			}
			fmt.Println()
			fmt.Printf("Outcome:            %s\n", res.Outcome)
			fmt.Printf("Waypoints visited:  %d/%d\n", res.WaypointsVisited, len(waypoints))
			fmt.Printf("Flight time:        %.1f s\n", metrics.FlightTimeS)
			fmt.Printf("Distance:           %.0f m\n", metrics.DistanceM)
			fmt.Printf("Energy:             %.1f Wh\n", metrics.EnergyWh)
			fmt.Printf("Coverage:           %.1f%%\n", metrics.CoverageFraction*100)
			fmt.Printf("Expected finds:     %.2f (%.2f false positives)\n",
				metrics.Discoveries, metrics.FalsePositives)

			if n := len(res.Samples); n > 0 {
				last := res.Samples[n-1]
				fmt.Printf("Final battery:      %.1f%% (%.1f V)\n", last.BatteryPct, last.BatteryVoltage)
			}
			return nil
		},
	}

	ef.register(cmd)
	cmd.Flags().StringVar(&kindName, "pattern", "lawnmower", "Pattern kind to fly")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for parameter draw (0 = time-based)")
	cmd.Flags().Float64Var(&battery, "battery", 100, "Initial battery percentage")
	return cmd
}

func patternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List pattern kinds and their parameter ranges",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, kind := range pattern.Kinds() {
				fmt.Printf("%s\n", kind)
				for _, b := range pattern.Bounds(kind) {
					fmt.Printf("  %-24s %8.2f .. %.2f\n", b.Name, b.Min, b.Max)
				}
			}
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var ef envFlags
	var gf gaFlags
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an optimization with a live diagnostics API",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ef.build()
			if err != nil {
				return err
			}
			cfg := gf.build()

			opt, err := genetic.New(env, sim.DefaultConfiguration(), nil, cfg)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			done := make(chan struct{})
			go func() {
				defer close(done)
				best, err := opt.Optimize(ctx)
				if err != nil {
					fmt.Printf("\nOptimization stopped: %v\n", err)
				}
				if best.Evaluated() {
					fmt.Println()
					printPattern(best)
				}
			}()

			server := api.NewServer(opt)
			addr := fmt.Sprintf(":%d", port)
			httpServer := &http.Server{Addr: addr, Handler: server.Router()}

			fmt.Printf("Diagnostics API on http://localhost%s\n", addr)
			fmt.Println("  GET /health")
			fmt.Println("  GET /api/v1/status")
			fmt.Println("  GET /api/v1/history")
			fmt.Println("  GET /api/v1/best")
			fmt.Println()

			go func() {
				// Keep serving after the run finishes so the final
				// result stays queryable until interrupted.
				<-ctx.Done()
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				httpServer.Shutdown(shutdownCtx)
			}()

			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			<-done
			return nil
		},
	}

	ef.register(cmd)
	gf.register(cmd)
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Server port")
	return cmd
}

func runsCmd() *cobra.Command {
	var dbPath string
	var limit int
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded optimization runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.New(dbPath)
			if err != nil {
				return fmt.Errorf("database error: %w", err)
			}
			defer database.Close()

			runs, err := database.ListRuns(limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No runs recorded. Use 'sarplan optimize --db' to record one.")
				return nil
			}

			if outputFormat == "json" {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(runs)
			}

			fmt.Printf("%-36s %-20s %-9s %-7s %-10s %s\n",
				"ID", "Created", "Terrain", "Weather", "Pattern", "Fitness")
			for _, r := range runs {
				fmt.Printf("%-36s %-20s %-9s %-7s %-10s %.4f\n",
					r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"),
					r.Terrain, r.Weather, r.BestKind, r.BestFitness)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "sarplan.db", "Path to SQLite database")
	cmd.Flags().IntVarP(&limit, "limit", "l", 50, "Maximum runs to list")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, json)")
	return cmd
}

func exportCmd() *cobra.Command {
	var dbPath string
	var outPath string

	cmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "Export a recorded run as an .xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.New(dbPath)
			if err != nil {
				return fmt.Errorf("database error: %w", err)
			}
			defer database.Close()

			runID := args[0]
			run, err := database.GetRun(runID)
			if err != nil {
				return err
			}
			history, err := database.GetHistory(runID)
			if err != nil {
				return err
			}
			params, err := database.GetBestParams(runID)
			if err != nil {
				return err
			}

			best := patternFromParams(pattern.Kind(run.BestKind), params)
			best.Fitness = run.BestFitness

			env := sim.DefaultSearchEnvironment()
			env.Terrain = sim.TerrainKind(run.Terrain)
			env.Conditions.Weather = sim.WeatherKind(run.Weather)
			env.AreaSizeM2 = run.AreaM2
			env.Urgency = run.Urgency

			if outPath == "" {
				outPath = fmt.Sprintf("run-%s.xlsx", runID[:8])
			}
			if err := writeReport(outPath, *run, best, history, env); err != nil {
				return err
			}
			fmt.Printf("Exported run %s to %s\n", runID, outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "sarplan.db", "Path to SQLite database")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output path (default run-<id>.xlsx)")
	return cmd
}

// patternFromParams rebuilds a pattern from its stored name/value pairs,
// using the parameter layout of its kind.
func patternFromParams(kind pattern.Kind, params map[string]float64) pattern.SearchPattern {
	bounds := pattern.Bounds(kind)
	values := make([]float64, len(bounds))
	for i, b := range bounds {
		if v, ok := params[b.Name]; ok {
			values[i] = v
		} else {
			values[i] = b.Min
		}
	}
	p := pattern.SearchPattern{Kind: kind, Values: values, Fitness: pattern.UnevaluatedFitness}
	p.Clamp()
	return p
}
