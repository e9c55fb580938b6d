// Package results holds the measurement table filled in during a practical
// and the analysis run over it.
package results

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/san-kum/virtuallab/internal/mergesort"
)

const (
	MaxRows     = 7
	MaxReadings = 3
)

// Experiment selects the columns and analysis of a table.
type Experiment string

const (
	Vertical Experiment = "vertical"
	Ramp     Experiment = "ramp"
	Planck   Experiment = "planck"
)

func ParseExperiment(s string) (Experiment, error) {
	switch e := Experiment(strings.ToLower(strings.TrimSpace(s))); e {
	case Vertical, Ramp, Planck:
		return e, nil
	}
	return "", fmt.Errorf("results: unknown experiment %q", s)
}

// Row is one independent value with its repeat readings. Drop practicals
// store time squared in seconds squared; the LED practical stores volts.
type Row struct {
	Key      float64   `json:"key"`
	Readings []float64 `json:"readings"`
	Average  float64   `json:"average"`
	Averaged bool      `json:"averaged"`
}

// Mean returns the mean of the readings, rounded to three places, and false
// when there are none.
func (r Row) Mean() (float64, bool) {
	if len(r.Readings) == 0 {
		return 0, false
	}
	total := 0.0
	for _, v := range r.Readings {
		total += v
	}
	return round(total/float64(len(r.Readings)), 3), true
}

// Table keeps rows in the order they were entered until sorted.
type Table struct {
	exp   Experiment
	limit int
	rows  *orderedmap.OrderedMap[float64, *Row]
}

func NewTable(exp Experiment) *Table {
	return &Table{
		exp:   exp,
		limit: MaxRows,
		rows:  orderedmap.NewOrderedMap[float64, *Row](),
	}
}

func (t *Table) Experiment() Experiment { return t.exp }

func (t *Table) Len() int { return t.rows.Len() }

func (t *Table) Empty() bool { return t.rows.Len() == 0 }

// Headers returns the column titles.
func (t *Table) Headers() []string {
	if t.exp == Planck {
		return []string{"Wavelength (x 10^-9 m)", "1: Voltage (V)", "2: Voltage (V)", "3: Voltage (V)", "Average Voltage (V)"}
	}
	return []string{"Distance (m)", "1: time² (s²)", "2: time² (s²)", "3: time² (s²)", "Average time² (s²)"}
}

// KeyTip is the hint shown beside the first entry box.
func (t *Table) KeyTip() string {
	if t.exp == Planck {
		return "Tip: Enter Wavelength in x 10^-9 nanometres (nm)"
	}
	return "Tip: Measure Height from the bottom of the ball"
}

// AddKey parses text as a new row's independent value and appends the row.
func (t *Table) AddKey(text string) (float64, error) {
	v, err := parse(text)
	if err != nil {
		tip := "Error: Incorrect form entered, Enter height as a number in metres"
		if t.exp == Planck {
			tip = "Error: Incorrect form entered, Enter wavelength as a number in x 10^-9 nanometres"
		}
		return 0, &InputError{Input: text, Tip: tip, Wrapped: err}
	}
	return v, t.Insert(v)
}

// Insert appends an empty row for key.
func (t *Table) Insert(key float64) error {
	if _, ok := t.rows.Get(key); ok {
		return fmt.Errorf("%w: %g", ErrDuplicateRow, key)
	}
	if t.rows.Len() >= t.limit {
		return ErrTableFull
	}
	t.rows.Set(key, &Row{Key: key})
	return nil
}

// AddReading parses text as a measurement for the row keyed by key. Drop
// practicals take a time in seconds and store its square rounded to three
// places.
func (t *Table) AddReading(key float64, text string) error {
	v, err := parse(text)
	if err != nil {
		tip := "Error: Incorrect form entered, Enter time as a number in seconds"
		if t.exp == Planck {
			tip = "Error: Incorrect form entered, Enter voltage as a number"
		}
		return &InputError{Input: text, Tip: tip, Wrapped: err}
	}
	if t.exp != Planck {
		v = round(v*v, 3)
	}
	return t.Record(key, v)
}

// Record stores an already converted reading.
func (t *Table) Record(key, value float64) error {
	if t.Empty() {
		return ErrNoRows
	}
	row, ok := t.rows.Get(key)
	if !ok {
		return fmt.Errorf("%w: %g", ErrUnknownRow, key)
	}
	if len(row.Readings) >= MaxReadings {
		return fmt.Errorf("%w: %g", ErrRowFull, key)
	}
	row.Readings = append(row.Readings, value)
	return nil
}

// NoRowsTip is the hint shown when a reading arrives before any row.
func (t *Table) NoRowsTip() string {
	if t.exp == Planck {
		return "Tip: Enter some wavelengths first"
	}
	return "Tip: Enter some heights first"
}

// CalcAverages fills in the average of every row with readings.
func (t *Table) CalcAverages() {
	for el := t.rows.Front(); el != nil; el = el.Next() {
		if avg, ok := el.Value.Mean(); ok {
			el.Value.Average = avg
			el.Value.Averaged = true
		}
	}
}

// Sort reorders the rows by ascending key.
func (t *Table) Sort() {
	keys := make([]float64, 0, t.rows.Len())
	for el := t.rows.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Key)
	}
	sorted := orderedmap.NewOrderedMap[float64, *Row]()
	for _, k := range mergesort.Sort(keys) {
		row, _ := t.rows.Get(k)
		sorted.Set(k, row)
	}
	t.rows = sorted
}

// Remove deletes the row keyed by key.
func (t *Table) Remove(key float64) bool {
	return t.rows.Delete(key)
}

func (t *Table) Clear() {
	t.rows = orderedmap.NewOrderedMap[float64, *Row]()
}

// Rows returns copies of the rows in table order.
func (t *Table) Rows() []Row {
	out := make([]Row, 0, t.rows.Len())
	for el := t.rows.Front(); el != nil; el = el.Next() {
		r := *el.Value
		r.Readings = append([]float64(nil), r.Readings...)
		out = append(out, r)
	}
	return out
}

// Points returns the graph coordinates of every averaged row. Drop
// practicals plot distance against time squared; the LED practical plots
// voltage against 1/λ in m⁻¹.
func (t *Table) Points() (x, y []float64) {
	for el := t.rows.Front(); el != nil; el = el.Next() {
		r := el.Value
		if !r.Averaged {
			continue
		}
		if t.exp == Planck {
			x = append(x, 1/(r.Key*1e-9))
			y = append(y, r.Average)
		} else {
			x = append(x, r.Average)
			y = append(y, r.Key)
		}
	}
	return x, y
}

func parse(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidInput
	}
	return v, nil
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
