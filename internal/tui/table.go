package tui

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/virtuallab/internal/mergesort"
	"github.com/san-kum/virtuallab/internal/results"
)

func (m model) tableKey(msg tea.KeyMsg) model {
	key := msg.String()
	switch key {
	case "esc", "q":
		m.screen = screenLab
		return m
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
		return m
	case "tab":
		m.keyField = !m.keyField
		m.tip = m.fieldTip()
		return m
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
		return m
	case "down", "j":
		if m.row < m.table.Len()-1 {
			m.row++
		}
		return m
	case "enter":
		m.submit()
		return m
	case "a":
		m.table.CalcAverages()
	case "s":
		m.table.Sort()
	case "c":
		m.table.Clear()
		m.row = 0
		m.result = ""
	case "e":
		m.table = results.Example(m.table.Experiment())
		m.row = 0
	case "f":
		m.analyse()
	case "w":
		m.save()
	default:
		if len(key) == 1 {
			ch := key[0]
			if (ch >= '0' && ch <= '9') || ch == '.' || ch == '-' {
				m.editBuf += key
			}
		}
	}
	return m
}

func (m *model) fieldTip() string {
	if m.keyField {
		return m.table.KeyTip()
	}
	if m.table.Experiment() == results.Planck {
		return "Tip: Press Enter to add voltage (V) into the table"
	}
	return "Tip: Press Enter to add time² (s²) into the table"
}

func (m *model) submit() {
	text := m.editBuf
	m.editBuf = ""
	var err error
	if m.keyField {
		_, err = m.table.AddKey(text)
		if err == nil {
			m.row = m.table.Len() - 1
		}
	} else {
		rows := m.table.Rows()
		if len(rows) == 0 {
			m.tip = m.table.NoRowsTip()
			return
		}
		if m.row >= len(rows) {
			m.row = len(rows) - 1
		}
		err = m.table.AddReading(rows[m.row].Key, text)
	}
	var inErr *results.InputError
	switch {
	case err == nil:
		m.tip = m.fieldTip()
	case errors.As(err, &inErr):
		m.tip = inErr.Tip
	case errors.Is(err, results.ErrNoRows):
		m.tip = m.table.NoRowsTip()
	default:
		m.tip = "Error: " + err.Error()
	}
}

func (m *model) analyse() {
	r, err := results.Analyse(m.table)
	if err != nil {
		m.result = ""
		if errors.Is(err, results.ErrNoRows) {
			m.tip = "Error: No Data has been input into the table"
		} else {
			m.tip = "Error: " + err.Error()
		}
		return
	}
	m.tip = r.Tip
	m.result = fmt.Sprintf("gradient %.4g   %s", r.Fit.Gradient, r)
}

func (m *model) save() {
	if m.store == nil {
		m.tip = "Error: no data directory configured"
		return
	}
	mode := "example"
	if m.sess != nil {
		mode = m.sess.Machine().Mode().String()
	}
	id, err := m.store.Save(mode, m.raw, m.table)
	if err != nil {
		m.log.WithError(err).Warn("save session")
		m.tip = "Error: " + err.Error()
		return
	}
	m.log.WithField("id", id).Info("saved session")
	m.tip = "Saved session " + id
}

func (m model) viewTable() string {
	var b strings.Builder
	b.WriteString("\n   " + header.Render("Results: "+string(m.table.Experiment())) + "\n\n")

	var t strings.Builder
	for i, h := range m.table.Headers() {
		if i == 0 {
			t.WriteString(fmt.Sprintf("%-24s", h))
		} else {
			t.WriteString(fmt.Sprintf("%-20s", h))
		}
	}
	t.WriteString("\n")
	for i, r := range m.table.Rows() {
		cells := []string{fmt.Sprintf("%-24g", r.Key)}
		for j := 0; j < results.MaxReadings; j++ {
			if j < len(r.Readings) {
				cells = append(cells, fmt.Sprintf("%-20g", r.Readings[j]))
			} else {
				cells = append(cells, fmt.Sprintf("%-20s", ""))
			}
		}
		if r.Averaged {
			cells = append(cells, fmt.Sprintf("%-20g", r.Average))
		}
		line := strings.Join(cells, "")
		if i == m.row {
			t.WriteString(cyan.Render("▸ "+line) + "\n")
		} else {
			t.WriteString("  " + line + "\n")
		}
	}
	b.WriteString(panel.Render(t.String()) + "\n")

	field := "key"
	if !m.keyField {
		field = "reading"
	}
	b.WriteString(fmt.Sprintf("\n   %s %s\n", dim.Render(field+" ›"), magenta.Render(m.editBuf+"▋")))
	b.WriteString("   " + yellow.Render(m.tip) + "\n")

	if m.result != "" {
		b.WriteString("\n   " + green.Render(m.result) + "\n")
		if x, y := m.table.Points(); len(y) > 1 {
			b.WriteString(plotPoints(x, y) + "\n")
		}
	}

	b.WriteString("\n" + dim.Render("   enter add  tab key/reading  ↑↓ row  a average  s sort  f fit  e example  w save  c clear  esc back") + "\n")
	return b.String()
}

// plotPoints charts y in order of increasing x.
func plotPoints(x, y []float64) string {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	order := mergesort.SortFunc(idx, func(a, b int) int { return cmp.Compare(x[a], x[b]) })
	series := make([]float64, len(order))
	for i, k := range order {
		series[i] = y[k]
	}
	return asciigraph.Plot(series,
		asciigraph.Height(8),
		asciigraph.Width(40),
		asciigraph.Offset(5),
		asciigraph.Caption("readings by increasing x"))
}
