// Package storage persists finished runs as one directory per run holding
// metadata.json and an energy.csv trajectory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mkumar097/MonteCarloProject/internal/config"
	"github.com/mkumar097/MonteCarloProject/internal/sim"
	"github.com/mkumar097/MonteCarloProject/internal/system"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "energy.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

type RunMetadata struct {
	ID                string             `json:"id"`
	Label             string             `json:"label"`
	Timestamp         time.Time          `json:"timestamp"`
	Seed              int64              `json:"seed"`
	NumParticles      int                `json:"num_particles"`
	Density           float64            `json:"density"`
	Temperature       float64            `json:"temperature"`
	BoxLength         float64            `json:"box_length"`
	Cutoff            float64            `json:"cutoff"`
	Steps             int                `json:"steps"`
	Equilibration     int                `json:"equilibration"`
	TuneDisplacement  bool               `json:"tune_displacement"`
	MaxDisplacement   float64            `json:"max_displacement"`
	InitialPairEnergy float64            `json:"initial_pair_energy"`
	PairEnergy        float64            `json:"pair_energy"`
	TailCorrection    float64            `json:"tail_correction"`
	FinalEnergy       float64            `json:"final_energy"`
	AcceptanceRatio   float64            `json:"acceptance_ratio"`
	EnergyDrift       float64            `json:"energy_drift"`
	Metrics           map[string]float64 `json:"metrics"`
}

// Save writes the run under a new directory named after label and the
// current time, and returns the run ID.
func (s *Store) Save(label string, cfg *config.Config, sys *system.System, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", label, now.UnixNano())
	runDir := s.Dir(runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:                runID,
		Label:             label,
		Timestamp:         now,
		Seed:              cfg.Seed,
		NumParticles:      sys.N(),
		Density:           sys.Density(),
		Temperature:       sys.Temperature,
		BoxLength:         sys.BoxLength,
		Cutoff:            sys.Cutoff,
		Steps:             result.StepsTaken,
		Equilibration:     cfg.Run.Equilibration,
		TuneDisplacement:  cfg.Run.TuneDisplacement,
		MaxDisplacement:   result.Displacement.Max,
		InitialPairEnergy: result.InitialPairEnergy,
		PairEnergy:        result.PairEnergy,
		TailCorrection:    result.TailCorrection,
		FinalEnergy:       result.TotalEnergy(),
		AcceptanceRatio:   result.AcceptanceRatio(),
		EnergyDrift:       result.EnergyDrift,
		Metrics:           result.Metrics,
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := WriteTrajectoryCSV(filepath.Join(runDir, trajectoryFile), result.Trajectory); err != nil {
		return "", err
	}

	return runID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func WriteTrajectoryCSV(path string, trajectory []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return WriteTrajectory(f, trajectory)
}

// WriteTrajectory writes a "step,energy" header and one row per sample.
func WriteTrajectory(out io.Writer, trajectory []float64) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"step", "energy"}); err != nil {
		return err
	}
	for i, e := range trajectory {
		row := []string{strconv.Itoa(i), strconv.FormatFloat(e, 'g', -1, 64)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the metadata of every readable run, oldest first.
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
			logrus.Warnf("skipping run directory %s: %v", entry.Name(), err)
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectory reads the energy column of a run. Rows are expected in
// step order.
func (s *Store) LoadTrajectory(runID string) ([]float64, error) {
	file, err := os.Open(filepath.Join(s.Dir(runID), trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []float64{}, nil
	}

	energies := make([]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) < 2 {
			return nil, fmt.Errorf("%s row %d: expected step and energy", runID, i+1)
		}
		e, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", runID, i+1, err)
		}
		energies = append(energies, e)
	}

	return energies, nil
}
