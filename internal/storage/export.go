package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/virtuallab/internal/results"
)

type ExportData struct {
	Session SessionMetadata `json:"session"`
	Headers []string        `json:"headers"`
	Rows    []results.Row   `json:"rows"`
	X       []float64       `json:"x"`
	Y       []float64       `json:"y"`
}

// ExportJSON writes a session with its readings and graph points to w.
func (s *Store) ExportJSON(w io.Writer, id string) error {
	meta, err := s.Load(id)
	if err != nil {
		return err
	}
	table, err := s.LoadTable(id)
	if err != nil {
		return err
	}
	x, y := table.Points()
	data := ExportData{
		Session: *meta,
		Headers: table.Headers(),
		Rows:    table.Rows(),
		X:       x,
		Y:       y,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
