package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/rcsaid/internal/deltav"
	"github.com/san-kum/rcsaid/internal/sim"
)

const (
	metadataFile  = "metadata.json"
	telemetryFile = "telemetry.csv"
)

var ErrRunNotFound = errors.New("run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// RunInfo names a run and the scenario it came from. An empty ID is filled
// from the scenario name and the clock.
type RunInfo struct {
	ID         string
	Scenario   string
	Mode       string
	Seed       int64
	Dt         float64
	Duration   float64
	Integrator string
	Controller string
}

// EstimateRecord is deltav.Estimate as stored on disk.
type EstimateRecord struct {
	Mode         string  `json:"mode"`
	DeltaV       float64 `json:"delta_v"`
	BurnTime     float64 `json:"burn_time"`
	Isp          float64 `json:"isp"`
	ResourceMass float64 `json:"resource_mass"`
	Thrust       float64 `json:"thrust"`
	Sane         bool    `json:"sane"`
	Degenerate   bool    `json:"degenerate"`
}

func NewEstimateRecord(e deltav.Estimate) EstimateRecord {
	return EstimateRecord{
		Mode:         e.Mode.String(),
		DeltaV:       e.DeltaV,
		BurnTime:     e.BurnTime,
		Isp:          e.Isp,
		ResourceMass: e.ResourceMass,
		Thrust:       e.Thrust,
		Sane:         e.Sane,
		Degenerate:   e.Degenerate,
	}
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Scenario   string             `json:"scenario"`
	Mode       string             `json:"mode"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Integrator string             `json:"integrator"`
	Controller string             `json:"controller"`
	Steps      int                `json:"steps"`
	Metrics    map[string]float64 `json:"metrics"`
	Final      EstimateRecord     `json:"final"`
}

func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	now := time.Now()
	runID := info.ID
	if runID == "" {
		runID = fmt.Sprintf("%s_%d", info.Scenario, now.UnixNano())
	}
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Scenario:   info.Scenario,
		Mode:       info.Mode,
		Timestamp:  now,
		Seed:       info.Seed,
		Dt:         info.Dt,
		Duration:   info.Duration,
		Integrator: info.Integrator,
		Controller: info.Controller,
		Steps:      result.StepsTaken,
		Metrics:    result.Metrics,
		Final:      NewEstimateRecord(result.Final),
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, telemetryFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteTelemetry(f, result.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// Telemetry is a run's per-tick table.
type Telemetry struct {
	Header []string
	Rows   [][]float64
}

func (t *Telemetry) Len() int { return len(t.Rows) }

// Column returns one named column, or false if the run did not record it.
func (t *Telemetry) Column(name string) ([]float64, bool) {
	idx := -1
	for i, h := range t.Header {
		if h == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}

	col := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		if idx < len(row) {
			col = append(col, row[idx])
		}
	}
	return col, true
}

func (s *Store) LoadTelemetry(runID string) (*Telemetry, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, telemetryFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	tel := &Telemetry{Rows: [][]float64{}}
	if len(records) == 0 {
		return tel, nil
	}
	tel.Header = records[0]

	for _, record := range records[1:] {
		row := make([]float64, 0, len(record))
		for _, field := range record {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				val = 0
			}
			row = append(row, val)
		}
		tel.Rows = append(tel.Rows, row)
	}

	return tel, nil
}
