package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/virtuallab/internal/circuit"
	"github.com/san-kum/virtuallab/internal/config"
	"github.com/san-kum/virtuallab/internal/kinematics"
	"github.com/san-kum/virtuallab/internal/mergesort"
	"github.com/san-kum/virtuallab/internal/storage"
	"github.com/san-kum/virtuallab/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	walkMode   string
	walkSpeed  int
	height     float64
	durSpeed   int
	recordMode string
	rows       []string
	note       string
	outFile    string
	asSVG      bool
)

var (
	cfg     *config.Config
	log     = logrus.New()
	logFile *os.File
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "virtuallab",
		Short: "virtual physics practicals",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, args)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeLog()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.LogFile == "" {
				log.SetOutput(io.Discard)
			}
			st := storage.New(cfg.DataDir)
			if err := st.Init(); err != nil {
				return err
			}
			return tui.Run(cfg, st, log)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default from config)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	walkCmd := &cobra.Command{
		Use:   "walk [practical]",
		Short: "run a practical headless and print each step",
		Args:  cobra.ExactArgs(1),
		RunE:  walkPractical,
	}
	walkCmd.Flags().StringVar(&walkMode, "mode", "", "example or diy (default from config)")
	walkCmd.Flags().IntVar(&walkSpeed, "speed", 0, "raw speed 1-10 (default from config)")
	walkCmd.Flags().Float64Var(&height, "height", 1.0, "DIY drop height in metres")

	durationCmd := &cobra.Command{
		Use:   "duration [vertical|ramp] [metres]",
		Short: "time a drop of the given height or ramp length",
		Args:  cobra.ExactArgs(2),
		RunE:  dropDuration,
	}
	durationCmd.Flags().IntVar(&durSpeed, "speed", 10, "raw speed 1-10")

	speedCmd := &cobra.Command{
		Use:   "speed [raw]",
		Short: "show the duration factor of a raw speed setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("speed must be an integer: %w", err)
			}
			fmt.Printf("raw %d: factor %d, tick every %v\n", raw, kinematics.SpeedFactor(raw),
				time.Duration(kinematics.SpeedFactor(raw))*10*time.Millisecond)
			return nil
		},
	}

	sortCmd := &cobra.Command{
		Use:   "sort [values...]",
		Short: "merge sort numbers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals := make([]float64, len(args))
			for i, a := range args {
				v, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("not a number: %q", a)
				}
				vals[i] = v
			}
			out := make([]string, 0, len(vals))
			for _, v := range mergesort.Sort(vals) {
				out = append(out, strconv.FormatFloat(v, 'g', -1, 64))
			}
			fmt.Println(strings.Join(out, " "))
			return nil
		},
	}

	circuitCmd := &cobra.Command{
		Use:   "circuit",
		Short: "show the LED circuit and check its canonical wiring",
		RunE:  showCircuit,
	}

	recordCmd := &cobra.Command{
		Use:   "record [practical]",
		Short: "save a session from readings",
		Long: "Each --row is key:r1,r2,r3. Drop practicals take a height or length in metres\n" +
			"and times in seconds; the LED practical takes a wavelength in nm and volts.",
		Args: cobra.ExactArgs(1),
		RunE: recordSession,
	}
	recordCmd.Flags().StringArrayVar(&rows, "row", nil, "key:reading,reading,reading")
	recordCmd.Flags().StringVar(&recordMode, "mode", "diy", "mode recorded with the session")
	recordCmd.Flags().BoolP("example", "e", false, "record the worked example table")
	recordCmd.Flags().StringVar(&note, "note", "", "annotation stored with the session")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list sessions",
		RunE:  listSessions,
	}

	fitCmd := &cobra.Command{
		Use:   "fit [session_id]",
		Short: "fit a session's readings and derive g or h",
		Args:  cobra.ExactArgs(1),
		RunE:  fitSession,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [session_id]",
		Short: "plot a session's readings",
		Args:  cobra.ExactArgs(1),
		RunE:  plotSession,
	}

	exportCmd := &cobra.Command{
		Use:   "export [session_id]",
		Short: "export a session as JSON, or its graph as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSession,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().BoolVar(&asSVG, "svg", false, "write the graph as SVG")

	deleteCmd := &cobra.Command{
		Use:   "delete [session_id]",
		Short: "delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := storage.New(cfg.DataDir).Delete(args[0]); err != nil {
				return err
			}
			log.WithField("id", args[0]).Info("deleted session")
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [practical]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			practicals := []string{"vertical", "ramp", "planck"}
			if len(args) == 1 {
				practicals = args
			}
			for _, p := range practicals {
				presets := config.ListPresets(p)
				if len(presets) == 0 {
					fmt.Printf("no presets for practical: %s\n", p)
					continue
				}
				fmt.Printf("presets for %s:\n", p)
				for _, name := range presets {
					fmt.Printf("  %s\n", name)
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(walkCmd, durationCmd, speedCmd, sortCmd, circuitCmd, recordCmd, listCmd, fitCmd, plotCmd, exportCmd, deleteCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		closeLog()
		os.Exit(1)
	}
}

// setup resolves the configuration and the logger shared by every command.
// A preset replaces the config file; flags override both.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Resolve(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if preset != "" {
		practical := cfg.Practical
		if (cmd.Name() == "walk" || cmd.Name() == "record") && len(args) > 0 {
			practical = args[0]
		}
		p := config.GetPreset(practical, preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(practical))
		}
		if err := p.ApplyEnv(); err != nil {
			return err
		}
		cfg = p
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log: %w", err)
		}
		log.SetOutput(f)
		logFile = f
	}
	log.WithFields(logrus.Fields{"practical": cfg.Practical, "data": cfg.DataDir}).Debug("config resolved")
	return nil
}

// closeLog closes the log file opened by setup, if any. Later entries go to
// stderr.
func closeLog() error {
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

func dropDuration(cmd *cobra.Command, args []string) error {
	metres, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("distance must be a number in metres: %w", err)
	}
	g := cfg.Physics.Gravity
	if g <= 0 {
		g = kinematics.Gravity
	}
	var units float64
	switch args[0] {
	case "vertical":
		units = kinematics.FallTime(metres, g)
	case "ramp":
		units = kinematics.InclineTime(metres, g, kinematics.NewIncline().Angle)
	default:
		return fmt.Errorf("unknown practical: %s (expected vertical or ramp)", args[0])
	}
	factor := kinematics.SpeedFactor(durSpeed)
	fmt.Printf("time: %.3fs\n", units)
	fmt.Printf("animation at speed %d: %v\n", durSpeed, kinematics.Scheduled(units, factor))
	return nil
}

func showCircuit(cmd *cobra.Command, args []string) error {
	g := circuit.Default()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tREGION\tNEIGHBOURS\tREQUIRED")
	for _, c := range g.Components() {
		fmt.Fprintf(w, "%d\t%s\t(%.0f,%.0f)-(%.0f,%.0f)\t%v\t%d\n",
			c.ID, c.Name, c.Region.Min.X(), c.Region.Min.Y(), c.Region.Max.X(), c.Region.Max.Y(),
			c.Neighbors, c.Required)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	edges := g.Edges()
	for _, e := range edges {
		credited := g.Register(g.WireFor(e[0], e[1]))
		log.WithFields(logrus.Fields{"from": e[0], "to": e[1], "credited": credited}).Debug("wire")
	}
	fmt.Printf("\n%d wires, closed: %v\n", len(edges), g.IsClosed())
	return nil
}

func listSessions(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	sessions, err := st.List()
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("no sessions found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRACTICAL\tMODE\tTIME\tROWS\tRESULT\tNOTE")
	for _, s := range sessions {
		result := "-"
		for _, sym := range []string{"g", "h"} {
			if v, ok := s.Result[sym]; ok {
				result = fmt.Sprintf("%s=%.3g %s", sym, v, s.Unit)
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			s.ID,
			s.Practical,
			s.Mode,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Rows,
			result,
			s.Annotation,
		)
	}
	return w.Flush()
}
