// Package storage keeps recorded practical sessions on disk, one directory
// per session holding metadata.json and readings.csv.
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

	"github.com/google/uuid"
	"github.com/san-kum/virtuallab/internal/results"
)

var ErrNotFound = errors.New("storage: session not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type SessionMetadata struct {
	ID         string             `json:"id"`
	Practical  string             `json:"practical"`
	Mode       string             `json:"mode"`
	Timestamp  time.Time          `json:"timestamp"`
	Speed      int                `json:"speed"`
	Rows       int                `json:"rows"`
	Result     map[string]float64 `json:"result,omitempty"`
	Unit       string             `json:"unit,omitempty"`
	Annotation string             `json:"annotation,omitempty"`
}

// Save writes the table as a new session and returns its id. When the table
// can be analysed the derived constant is stored with it.
func (s *Store) Save(mode string, speed int, table *results.Table) (string, error) {
	id := uuid.New().String()
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := SessionMetadata{
		ID:        id,
		Practical: string(table.Experiment()),
		Mode:      mode,
		Timestamp: time.Now(),
		Speed:     speed,
		Rows:      table.Len(),
	}
	if r, err := results.Analyse(table); err == nil {
		meta.Result = map[string]float64{
			"gradient":  r.Fit.Gradient,
			"intercept": r.Fit.Intercept,
			r.Symbol:    r.Value,
			"error_pct": r.Error,
		}
		meta.Unit = r.Unit
	}

	if err := writeJSON(filepath.Join(dir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeReadings(filepath.Join(dir, "readings.csv"), table); err != nil {
		return "", err
	}
	return id, nil
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

func writeReadings(path string, table *results.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.Headers()); err != nil {
		return err
	}
	for _, r := range table.Rows() {
		rec := make([]string, 0, 2+results.MaxReadings)
		rec = append(rec, strconv.FormatFloat(r.Key, 'f', -1, 64))
		for i := 0; i < results.MaxReadings; i++ {
			if i < len(r.Readings) {
				rec = append(rec, strconv.FormatFloat(r.Readings[i], 'f', -1, 64))
			} else {
				rec = append(rec, "")
			}
		}
		avg := ""
		if r.Averaged {
			avg = strconv.FormatFloat(r.Average, 'f', -1, 64)
		}
		rec = append(rec, avg)
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable session, newest first.
func (s *Store) List() ([]SessionMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SessionMetadata{}, nil
		}
		return nil, err
	}

	sessions := make([]SessionMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		sessions = append(sessions, *meta)
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Timestamp.After(sessions[j].Timestamp)
	})
	return sessions, nil
}

func (s *Store) Load(id string) (*SessionMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var meta SessionMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Annotate stores a free text note with the session.
func (s *Store) Annotate(id, note string) error {
	meta, err := s.Load(id)
	if err != nil {
		return err
	}
	meta.Annotation = note
	return writeJSON(filepath.Join(s.baseDir, id, "metadata.json"), meta)
}

// LoadTable rebuilds the results table of a session.
func (s *Store) LoadTable(id string) (*results.Table, error) {
	meta, err := s.Load(id)
	if err != nil {
		return nil, err
	}
	exp, err := results.ParseExperiment(meta.Practical)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, id, "readings.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	rows := make([]results.Row, 0, len(records))
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) == 0 {
			continue
		}
		key, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: readings.csv line %d: %w", i+1, err)
		}
		row := results.Row{Key: key}
		for j := 1; j < len(rec) && j <= results.MaxReadings; j++ {
			if rec[j] == "" {
				continue
			}
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, fmt.Errorf("storage: readings.csv line %d: %w", i+1, err)
			}
			row.Readings = append(row.Readings, v)
		}
		rows = append(rows, row)
	}
	return results.FromRows(exp, rows)
}

func (s *Store) Delete(id string) error {
	if _, err := s.Load(id); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.baseDir, id))
}
