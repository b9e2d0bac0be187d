package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gravlab/nbody/internal/sim"
)

// Store persists runs under a base directory, one subdirectory per
// run: metadata.json plus the sampled trajectory as trajectory.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Timestamp   time.Time `json:"timestamp"`
	G           float64   `json:"g"`
	Dt          float64   `json:"dt"`
	Duration    float64   `json:"duration"`
	SampleEvery int       `json:"sample_every"`
	Seed        int64     `json:"seed"`
	Kernel      string    `json:"kernel"`
	Bodies      int       `json:"bodies"`
	StepsTaken  int       `json:"steps_taken"`
	StepsPerSec float64   `json:"steps_per_sec"`
	EnergyDrift float64   `json:"energy_drift"`
	Final       []string  `json:"final"`
}

func (s *Store) Save(name, kernel string, cfg sim.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Name:        name,
		Timestamp:   time.Now(),
		G:           cfg.G,
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		SampleEvery: cfg.SampleEvery,
		Seed:        cfg.Seed,
		Kernel:      kernel,
		Bodies:      len(result.Final),
		StepsTaken:  result.StepsTaken,
		StepsPerSec: result.StepsPerSec,
		EnergyDrift: result.EnergyDrift,
		Final:       result.Describe(),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Snapshots) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := range result.Snapshots[0] {
		header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, snap := range result.Snapshots {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, p := range snap {
			row = append(row,
				strconv.FormatFloat(p.X, 'g', 17, 64),
				strconv.FormatFloat(p.Y, 'g', 17, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// TrajectoryPath returns the on-disk CSV path for a stored run.
func (s *Store) TrajectoryPath(runID string) string {
	return filepath.Join(s.baseDir, runID, "trajectory.csv")
}

// LoadTrajectory reads back the sampled snapshots of a stored run.
func (s *Store) LoadTrajectory(runID string) ([]sim.Snapshot, []float64, error) {
	file, err := os.Open(s.TrajectoryPath(runID))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []sim.Snapshot{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	snaps := make([]sim.Snapshot, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		snap := make(sim.Snapshot, 0, (len(record)-1)/2)
		for j := 1; j+1 < len(record); j += 2 {
			x, errX := strconv.ParseFloat(record[j], 64)
			y, errY := strconv.ParseFloat(record[j+1], 64)
			if errX != nil || errY != nil {
				continue
			}
			snap = append(snap, sim.Point{X: x, Y: y})
		}

		times = append(times, t)
		snaps = append(snaps, snap)
	}

	return snaps, times, nil
}
