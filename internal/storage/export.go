package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/san-kum/rcsaid/internal/sim"
)

var baseColumns = []string{
	"time", "wx", "wy", "wz", "ux", "uy", "uz",
	"dv", "burn_time", "isp", "resource_mass", "thrust", "sane", "degenerate", "cd",
}

// TelemetryHeader is the fixed columns followed by the samples' readings,
// sorted by name.
func TelemetryHeader(samples []sim.Sample) []string {
	header := append([]string(nil), baseColumns...)
	if len(samples) == 0 {
		return header
	}
	return append(header, readingNames(samples[0])...)
}

func readingNames(s sim.Sample) []string {
	names := make([]string, 0, len(s.Readings))
	for name := range s.Readings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func telemetryRow(s sim.Sample, readings []string) []float64 {
	var u [3]float64
	copy(u[:], s.Control)
	e := s.Estimate

	row := []float64{
		s.Time,
		s.AngularVelocity[0], s.AngularVelocity[1], s.AngularVelocity[2],
		u[0], u[1], u[2],
		e.DeltaV, e.BurnTime, e.Isp, e.ResourceMass, e.Thrust,
		boolFloat(e.Sane), boolFloat(e.Degenerate),
		s.DragCoefficient,
	}
	for _, name := range readings {
		row = append(row, s.Readings[name])
	}
	return row
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// WriteTelemetry writes one CSV row per sample.
func WriteTelemetry(w io.Writer, samples []sim.Sample) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(TelemetryHeader(samples)); err != nil {
		return err
	}

	var readings []string
	if len(samples) > 0 {
		readings = readingNames(samples[0])
	}

	record := make([]string, 0, len(baseColumns)+len(readings))
	for _, s := range samples {
		record = record[:0]
		for _, v := range telemetryRow(s, readings) {
			record = append(record, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

type ExportData struct {
	Scenario   string             `json:"scenario"`
	Mode       string             `json:"mode"`
	Integrator string             `json:"integrator"`
	Controller string             `json:"controller"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Columns    []string           `json:"columns"`
	Rows       [][]float64        `json:"rows"`
	Metrics    map[string]float64 `json:"metrics"`
	Final      EstimateRecord     `json:"final"`
}

func NewExportData(info RunInfo, result *sim.Result) ExportData {
	var readings []string
	if len(result.Samples) > 0 {
		readings = readingNames(result.Samples[0])
	}

	rows := make([][]float64, len(result.Samples))
	for i, s := range result.Samples {
		rows[i] = telemetryRow(s, readings)
	}

	return ExportData{
		Scenario:   info.Scenario,
		Mode:       info.Mode,
		Integrator: info.Integrator,
		Controller: info.Controller,
		Dt:         info.Dt,
		Duration:   info.Duration,
		Steps:      result.StepsTaken,
		Columns:    TelemetryHeader(result.Samples),
		Rows:       rows,
		Metrics:    result.Metrics,
		Final:      NewEstimateRecord(result.Final),
	}
}

func ExportJSON(path string, info RunInfo, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return EncodeJSON(file, info, result)
}

func ExportJSONStdout(info RunInfo, result *sim.Result) error {
	return EncodeJSON(os.Stdout, info, result)
}

func EncodeJSON(w io.Writer, info RunInfo, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(info, result))
}

func ExportCSV(path string, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteTelemetry(file, result.Samples)
}
