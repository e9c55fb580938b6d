package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/virtuallab/internal/export"
	"github.com/san-kum/virtuallab/internal/results"
	"github.com/san-kum/virtuallab/internal/storage"
)

func recordSession(cmd *cobra.Command, args []string) error {
	exp, err := results.ParseExperiment(args[0])
	if err != nil {
		return err
	}
	example, _ := cmd.Flags().GetBool("example")

	var table *results.Table
	if example {
		table = results.Example(exp)
	} else {
		table = results.NewTable(exp)
		for _, row := range rows {
			if err := addRow(table, row); err != nil {
				return err
			}
		}
	}
	if table.Empty() {
		return fmt.Errorf("no rows given, use --row or --example")
	}
	table.Sort()

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(recordMode, cfg.Speed, table)
	if err != nil {
		return err
	}
	if note != "" {
		if err := st.Annotate(id, note); err != nil {
			return err
		}
	}
	log.WithField("id", id).Debug("saved session")
	fmt.Printf("session id: %s\n", id)
	fmt.Printf("rows: %d\n", table.Len())
	return nil
}

// addRow parses key:r1,r2,r3 into the table.
func addRow(table *results.Table, spec string) error {
	key, readings, _ := strings.Cut(spec, ":")
	k, err := table.AddKey(key)
	if err != nil {
		return rowError(spec, err)
	}
	if readings == "" {
		return nil
	}
	for _, r := range strings.Split(readings, ",") {
		if err := table.AddReading(k, r); err != nil {
			return rowError(spec, err)
		}
	}
	return nil
}

func rowError(spec string, err error) error {
	if tip := inputTip(err); tip != "" {
		return fmt.Errorf("row %q: %s: %w", spec, tip, err)
	}
	return fmt.Errorf("row %q: %w", spec, err)
}

func inputTip(err error) string {
	var ie *results.InputError
	if errors.As(err, &ie) {
		return ie.Tip
	}
	return ""
}

func fitSession(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	table, err := st.LoadTable(args[0])
	if err != nil {
		return err
	}
	r, err := results.Analyse(table)
	if errors.Is(err, results.ErrNoRows) {
		fmt.Println("Error: No Data has been input into the table")
		return err
	}
	if err != nil {
		return fmt.Errorf("fit %s: %w", args[0], err)
	}

	fmt.Printf("session: %s\n", meta.ID)
	fmt.Printf("practical: %s\n", meta.Practical)
	fmt.Printf("points: %d\n\n", r.Fit.N)
	fmt.Printf("gradient: %.6g\n", r.Fit.Gradient)
	fmt.Printf("intercept: %.6g\n", r.Fit.Intercept)
	fmt.Println(r.Tip)
	fmt.Println(r)
	return nil
}

func plotSession(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	table, err := st.LoadTable(args[0])
	if err != nil {
		return err
	}
	table.Sort()
	table.CalcAverages()
	x, y := table.Points()
	if len(y) == 0 {
		return fmt.Errorf("no data to plot")
	}

	caption := "distance (m) against time² (s²)"
	if table.Experiment() == results.Planck {
		caption = "voltage (V) against 1/λ"
	}
	fmt.Printf("x: %v\n\n", x)
	graph := asciigraph.Plot(y,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)

	if r, err := results.Analyse(table); err == nil {
		fit := make([]float64, len(x))
		for i := range x {
			fit[i] = r.Fit.At(x[i])
		}
		fmt.Println()
		fmt.Println(asciigraph.PlotMany([][]float64{y, fit},
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Red),
			asciigraph.Caption("readings and best fit"),
		))
	}
	return nil
}

func exportSession(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	out := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if !asSVG {
		return st.ExportJSON(out, args[0])
	}
	table, err := st.LoadTable(args[0])
	if err != nil {
		return err
	}
	svg, err := export.TableSVG(table, 640, 480)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, svg)
	return err
}
