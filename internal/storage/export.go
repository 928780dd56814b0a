package storage

import (
	"encoding/json"
	"io"
	"os"

	"chemsim/internal/ode"
)

type ExportData struct {
	Scenario    string             `json:"scenario"`
	Reactions   []string           `json:"reactions"`
	Species     []string           `json:"species"`
	Integrator  string             `json:"integrator"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Temperature string             `json:"temperature"`
	Steps       int                `json:"steps"`
	Times       []float64          `json:"times"`
	States      [][]float64        `json:"states"`
	Metrics     map[string]float64 `json:"metrics"`
}

func exportData(meta RunMetadata, result *ode.Result) ExportData {
	data := ExportData{
		Scenario:    meta.Scenario,
		Reactions:   meta.Reactions,
		Species:     meta.Species,
		Integrator:  meta.Integrator,
		Dt:          meta.Dt,
		Duration:    meta.Duration,
		Temperature: meta.Temperature,
		Steps:       len(result.Times),
		Times:       result.Times,
		States:      make([][]float64, len(result.States)),
		Metrics:     result.Metrics,
	}
	for i, s := range result.States {
		data.States[i] = s
	}
	return data
}

// ExportJSON writes the full trajectory with its scenario context.
func ExportJSON(w io.Writer, meta RunMetadata, result *ode.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(meta, result))
}

// ExportJSONFile is ExportJSON to a created file.
func ExportJSONFile(path string, meta RunMetadata, result *ode.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, result)
}
