package results

// Worked readings shown by the example walkthroughs.
var (
	verticalExample = []Row{
		{Key: 0.25, Readings: []float64{0.051, 0.050, 0.048}},
		{Key: 0.50, Readings: []float64{0.102, 0.099, 0.103}},
		{Key: 0.75, Readings: []float64{0.153, 0.152, 0.156}},
		{Key: 1.00, Readings: []float64{0.204, 0.210, 0.216}},
		{Key: 1.25, Readings: []float64{0.255, 0.249, 0.258}},
		{Key: 1.50, Readings: []float64{0.306, 0.312, 0.307}},
		{Key: 1.75, Readings: []float64{0.357, 0.350, 0.363}},
		{Key: 2.00, Readings: []float64{0.408, 0.415, 0.413}},
	}

	planckExample = []Row{
		{Key: 700, Readings: []float64{1.78, 1.76, 1.77}},
		{Key: 630, Readings: []float64{1.97, 1.98, 1.96}},
		{Key: 580, Readings: []float64{2.14, 2.12, 2.10}},
		{Key: 520, Readings: []float64{2.39, 2.41, 2.43}},
		{Key: 450, Readings: []float64{2.76, 2.75, 2.74}},
		{Key: 420, Readings: []float64{2.96, 2.98, 2.98}},
		{Key: 380, Readings: []float64{3.27, 3.27, 3.24}},
	}
)

// Example returns the filled example table of exp. The ramp practical has
// no example table and gets an empty one.
func Example(exp Experiment) *Table {
	var rows []Row
	switch exp {
	case Vertical:
		rows = verticalExample
	case Planck:
		rows = planckExample
	}
	t := NewTable(exp)
	if len(rows) > t.limit {
		t.limit = len(rows)
	}
	for _, r := range rows {
		_ = t.Insert(r.Key)
		for _, v := range r.Readings {
			_ = t.Record(r.Key, v)
		}
	}
	t.CalcAverages()
	return t
}

// FromRows rebuilds a table from stored rows, ignoring the row limit.
func FromRows(exp Experiment, rows []Row) (*Table, error) {
	t := NewTable(exp)
	if len(rows) > t.limit {
		t.limit = len(rows)
	}
	for _, r := range rows {
		if err := t.Insert(r.Key); err != nil {
			return nil, err
		}
		for _, v := range r.Readings {
			if err := t.Record(r.Key, v); err != nil {
				return nil, err
			}
		}
	}
	t.CalcAverages()
	return t, nil
}
