package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/geodyn/internal/geometry"
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

type RunMetadata struct {
	ID             string     `json:"id"`
	Scenario       string     `json:"scenario"`
	Timestamp      time.Time  `json:"timestamp"`
	StepSize       float64    `json:"step_size"`
	ParameterRange float64    `json:"parameter_range"`
	Integrator     string     `json:"integrator"`
	Density        [4]float64 `json:"density"`
	RicciScalar    float64    `json:"ricci_scalar"`
	Singularities  int        `json:"singularities"`
}

func (s *Store) Save(meta RunMetadata, path *geometry.GeodesicPath) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "trajectory.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"tau", "t", "x", "y", "z"}); err != nil {
		return "", err
	}

	if path == nil || len(path.Points) == 0 {
		return runID, nil
	}

	n := len(path.Points)
	for i, p := range path.Points {
		tau := 0.0
		if n > 1 {
			tau = path.TotalParameter * float64(i) / float64(n-1)
		}
		row := []string{
			strconv.FormatFloat(tau, 'f', 6, 64),
			strconv.FormatFloat(p.T, 'f', 6, 64),
			strconv.FormatFloat(p.Spatial[0], 'f', 6, 64),
			strconv.FormatFloat(p.Spatial[1], 'f', 6, 64),
			strconv.FormatFloat(p.Spatial[2], 'f', 6, 64),
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
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
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadPath(runID string) (*geometry.GeodesicPath, error) {
	csvPath := filepath.Join(s.baseDir, runID, "trajectory.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	path := &geometry.GeodesicPath{Points: []geometry.GeodesicPoint{}}
	if len(records) < 2 {
		return path, nil
	}

	lastTau := 0.0
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 5 {
			continue
		}

		vals := make([]float64, 5)
		ok := true
		for j := 0; j < 5; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		lastTau = vals[0]
		path.Points = append(path.Points, geometry.GeodesicPoint{
			T:       vals[1],
			Spatial: [3]float64{vals[2], vals[3], vals[4]},
		})
	}

	path.TotalParameter = lastTau
	path.ProperTime = lastTau
	return path, nil
}
