package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/mkumar097/MonteCarloProject/internal/storage"
)

type ExportData struct {
	Run        storage.RunMetadata `json:"run"`
	Steps      int                 `json:"steps"`
	Trajectory []float64           `json:"trajectory"`
}

func WriteJSON(w io.Writer, meta storage.RunMetadata, trajectory []float64) error {
	if trajectory == nil {
		trajectory = []float64{}
	}
	data := ExportData{
		Run:        meta,
		Steps:      len(trajectory),
		Trajectory: trajectory,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, meta storage.RunMetadata, trajectory []float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, meta, trajectory)
}
