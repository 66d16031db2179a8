package report_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/db"
	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/pattern"
	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/report"
	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/sim"
)

func TestWorkbookRoundTrip(t *testing.T) {
	wb, err := report.NewWorkbook()
	if err != nil {
		t.Fatalf("new workbook: %v", err)
	}

	run := db.Run{
		ID:          "run-xyz",
		CreatedAt:   time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Terrain:     "mountain",
		Weather:     "windy",
		AreaM2:      1_000_000,
		Urgency:     5,
		Population:  20,
		Generations: 15,
		BestKind:    "spiral",
		BestFitness: 0.69,
	}
	best := pattern.SearchPattern{
		Kind:    pattern.KindSpiral,
		Values:  []float64{30, 25, 450},
		Fitness: 0.69,
		Scores:  pattern.Scores{Coverage: 0.8, Success: 0.6, Energy: 0.7, Time: 0.65},
	}
	history := []float64{0.5, 0.62, 0.69}
	samples := []sim.TelemetrySample{
		{TimestampS: 0.1, BatteryPct: 99.9, BatteryVoltage: 22.1, SignalStrength: 1.0},
	}

	if err := wb.WriteRun(run); err != nil {
		t.Fatalf("write run: %v", err)
	}
	if err := wb.WriteHistory(history); err != nil {
		t.Fatalf("write history: %v", err)
	}
	if err := wb.WriteBestPattern(best); err != nil {
		t.Fatalf("write best: %v", err)
	}
	if err := wb.WriteTelemetry(samples); err != nil {
		t.Fatalf("write telemetry: %v", err)
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := wb.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue("Run", "B1"); got != "run-xyz" {
		t.Fatalf("unexpected run id cell: %q", got)
	}
	if got, _ := f.GetCellValue("Generations", "A1"); got != "Generation" {
		t.Fatalf("unexpected history header: %q", got)
	}
	if got, _ := f.GetCellValue("Best_Pattern", "B1"); got != "spiral" {
		t.Fatalf("unexpected best kind cell: %q", got)
	}
	if got, _ := f.GetCellValue("Telemetry", "A1"); got != "Time (s)" {
		t.Fatalf("unexpected telemetry header: %q", got)
	}
}
