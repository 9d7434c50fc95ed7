// Package store exports traced trajectories to JSON, CSV and PNG.
package store

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"

	"github.com/san-kum/fieldtrace/internal/flow"
	"github.com/san-kum/fieldtrace/internal/trace"
)

type ExportData struct {
	Problem    string      `json:"problem"`
	Integrator string      `json:"integrator"`
	Dt         float64     `json:"dt"`
	Duration   float64     `json:"duration"`
	Steps      int         `json:"steps"`
	Extended   bool        `json:"extended"`
	Times      []float64   `json:"times"`
	States     [][]float64 `json:"states"`
	Error      string      `json:"error,omitempty"`
}

func exportData(problem, integrator string, dt, duration float64, result *trace.Result) ExportData {
	data := ExportData{
		Problem:    problem,
		Integrator: integrator,
		Dt:         dt,
		Duration:   duration,
		Steps:      result.StepsTaken,
		Extended:   result.Extended,
		Times:      result.Times,
		States:     make([][]float64, len(result.States)),
	}
	for i, s := range result.States {
		data.States[i] = s
	}
	if result.Err != nil {
		data.Error = result.Err.Error()
	}
	return data
}

func ExportJSON(path, problem, integrator string, dt, duration float64, result *trace.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(problem, integrator, dt, duration, result))
}

// ExportCSV writes one row per recorded point: time, state components,
// and for extended runs the flattened tangent entries.
func ExportCSV(path string, info flow.PlotInfo, result *trace.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"t"}
	n := result.Size
	for i := 0; i < n; i++ {
		switch i {
		case info.XIndex:
			header = append(header, info.XLabel)
		case info.YIndex:
			header = append(header, info.YLabel)
		default:
			header = append(header, "x"+strconv.Itoa(i))
		}
	}
	if result.Extended {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				header = append(header, "m"+strconv.Itoa(i)+strconv.Itoa(j))
			}
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, 0, len(header))
	for i, s := range result.States {
		row = row[:0]
		row = append(row, strconv.FormatFloat(result.Times[i], 'g', -1, 64))
		for _, v := range s {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
