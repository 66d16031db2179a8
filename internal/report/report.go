// Package report writes optimization results to an Excel workbook so mission
// planners can review a run without any tooling beyond a spreadsheet.
package report

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/db"
	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/pattern"
	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/sim"
)

const (
	sheetRun         = "Run"
	sheetGenerations = "Generations"
	sheetBestPattern = "Best_Pattern"
	sheetTelemetry   = "Telemetry"
)

// Workbook accumulates run data and saves it as a .xlsx file.
type Workbook struct {
	file *excelize.File
}

// NewWorkbook creates an empty report with the standard sheet layout.
func NewWorkbook() (*Workbook, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", sheetRun); err != nil {
		return nil, fmt.Errorf("rename default sheet: %w", err)
	}
	for _, name := range []string{sheetGenerations, sheetBestPattern, sheetTelemetry} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}
	return &Workbook{file: f}, nil
}

// WriteRun fills the Run sheet with the run header.
func (w *Workbook) WriteRun(run db.Run) error {
	rows := [][]interface{}{
		{"Run ID", run.ID},
		{"Created", run.CreatedAt.Format("2006-01-02 15:04:05")},
		{"Terrain", run.Terrain},
		{"Weather", run.Weather},
		{"Area (m2)", run.AreaM2},
		{"Urgency", run.Urgency},
		{"Population", run.Population},
		{"Generations", run.Generations},
		{"Best pattern", run.BestKind},
		{"Best fitness", run.BestFitness},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := w.file.SetSheetRow(sheetRun, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// WriteHistory fills the Generations sheet with best fitness per generation.
func (w *Workbook) WriteHistory(history []float64) error {
	header := []interface{}{"Generation", "Best fitness"}
	if err := w.file.SetSheetRow(sheetGenerations, "A1", &header); err != nil {
		return err
	}
	for i, f := range history {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{i, f}
		if err := w.file.SetSheetRow(sheetGenerations, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// WriteBestPattern fills the Best_Pattern sheet with the winning geometry and
// its component scores.
func (w *Workbook) WriteBestPattern(best pattern.SearchPattern) error {
	rows := [][]interface{}{
		{"Kind", best.Kind.String()},
		{"Fitness", best.Fitness},
		{"Coverage score", best.Scores.Coverage},
		{"Success score", best.Scores.Success},
		{"Energy score", best.Scores.Energy},
		{"Time score", best.Scores.Time},
	}

	params := best.Params()
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rows = append(rows, []interface{}{name, params[name]})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := w.file.SetSheetRow(sheetBestPattern, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// WriteTelemetry fills the Telemetry sheet with flight samples from the best
// pattern's mission.
func (w *Workbook) WriteTelemetry(samples []sim.TelemetrySample) error {
	header := []interface{}{"Time (s)", "X (m)", "Y (m)", "Alt (m)", "Battery (%)", "Voltage (V)", "Signal"}
	if err := w.file.SetSheetRow(sheetTelemetry, "A1", &header); err != nil {
		return err
	}
	for i, s := range samples {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		p := s.State.Position
		row := []interface{}{s.TimestampS, p.X, p.Y, p.Z, s.BatteryPct, s.BatteryVoltage, s.SignalStrength}
		if err := w.file.SetSheetRow(sheetTelemetry, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the workbook to disk and releases its resources.
func (w *Workbook) Save(path string) error {
	defer w.file.Close()
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("save report %s: %w", path, err)
	}
	return nil
}
