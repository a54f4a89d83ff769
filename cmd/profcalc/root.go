package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/planbiir/profcalc/internal/batch"
	"github.com/planbiir/profcalc/internal/config"
	"github.com/planbiir/profcalc/internal/survey"
)

const version = "1.0.0"

// app carries the state shared by every subcommand
type app struct {
	configFile string
	debug      bool
	jsonOut    bool

	cfg config.Analysis
	log *zap.SugaredLogger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "profcalc",
		Short: "Beach profile area and cut/fill calculator",
		Long: `profcalc computes areas under cross-shore beach profiles: above a contour,
inside an elevation band, between two horizontal limits, and the signed
cut/fill between two surveys of the same line.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.startup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "analysis configuration file (.yaml, .yml or .toml)")
	pf.BoolVar(&a.debug, "debug", false, "enable debug logging")
	pf.BoolVar(&a.jsonOut, "json", false, "print results as JSON")
	pf.Int("workers", 0, "profiles evaluated in parallel (default: config or CPU count)")
	pf.String("units", "", "survey units: ft or m")
	pf.Float64("tolerance", 0, "collapse consecutive stations closer than this (0 = exact duplicates only)")

	root.AddCommand(
		newAboveCmd(a),
		newBandCmd(a),
		newXonXoffCmd(a),
		newCutFillCmd(a),
		newAERCmd(a),
		newNormalizeCmd(a),
		newVersionCmd(),
	)
	return root
}

// startup builds the logger and the effective configuration: file values
// first, then any flag the user set explicitly
func (a *app) startup(cmd *cobra.Command) error {
	var err error
	var zapLogger *zap.Logger
	if a.debug {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %v", err)
	}
	a.log = zapLogger.Sugar()

	a.cfg = config.DefaultAnalysis()
	if a.configFile != "" {
		cfg, err := config.Load(a.configFile)
		if err != nil {
			return err
		}
		a.cfg = *cfg
		a.log.Debugw("loaded configuration", "path", a.configFile)
	}

	if err := a.applyFlags(cmd); err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.log.Debugw("effective configuration", "config", a.cfg)
	return nil
}

func (a *app) applyFlags(cmd *cobra.Command) error {
	fs := cmd.Flags()
	floats := map[string]*float64{
		"contour":   &a.cfg.Contour,
		"low":       &a.cfg.BandLow,
		"high":      &a.cfg.BandHigh,
		"datum":     &a.cfg.Datum,
		"tolerance": &a.cfg.Tolerance,
	}
	for name, dst := range floats {
		if fs.Lookup(name) == nil || !fs.Changed(name) {
			continue
		}
		v, err := fs.GetFloat64(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	for _, name := range []string{"xon", "xoff"} {
		if fs.Lookup(name) == nil || !fs.Changed(name) {
			continue
		}
		v, err := fs.GetFloat64(name)
		if err != nil {
			return err
		}
		if name == "xon" {
			a.cfg.XOn = &v
		} else {
			a.cfg.XOff = &v
		}
	}

	if fs.Changed("workers") {
		v, err := fs.GetInt("workers")
		if err != nil {
			return err
		}
		a.cfg.Workers = v
	}
	for name, dst := range map[string]*string{"units": &a.cfg.Units, "policy": &a.cfg.Policy} {
		if fs.Lookup(name) == nil || !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}
	return nil
}

func (a *app) batchOptions() batch.Options {
	return batch.Options{Workers: a.cfg.Workers, Logger: a.log}
}

func (a *app) readSurvey(path string) (*survey.Document, error) {
	doc, err := survey.Parse(path)
	if err != nil {
		return nil, err
	}
	profiles, stations := doc.Stats()
	a.log.Debugw("read survey", "path", path, "profiles", profiles, "stations", stations)
	if profiles == 0 {
		return nil, fmt.Errorf("%s: no profiles found", path)
	}
	return doc, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of profcalc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("profcalc v%s - beach profile calculator\n", version)
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {},
	}
}
