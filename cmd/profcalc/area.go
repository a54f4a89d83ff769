package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planbiir/profcalc/internal/area"
	"github.com/planbiir/profcalc/internal/batch"
	"github.com/planbiir/profcalc/internal/profile"
	"github.com/planbiir/profcalc/internal/survey"
)

func newAboveCmd(a *app) *cobra.Command {
	var selector string
	cmd := &cobra.Command{
		Use:   "above <survey.json>",
		Short: "Area of the profile above a contour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eb := a.cfg.ContourBound()
			req := area.Request{Elevation: &eb, Normalize: a.cfg.NormalizeOptions()}
			return a.runArea(cmd.Context(), args[0], selector, req)
		},
	}
	cmd.Flags().StringVarP(&selector, "profile", "p", "", "profile header to select (default: all profiles)")
	cmd.Flags().Float64("contour", 0, "contour elevation")
	return cmd
}

func newBandCmd(a *app) *cobra.Command {
	var selector string
	cmd := &cobra.Command{
		Use:   "band <survey.json>",
		Short: "Area of the profile between two elevations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eb := a.cfg.BandBound()
			req := area.Request{Elevation: &eb, Normalize: a.cfg.NormalizeOptions()}
			return a.runArea(cmd.Context(), args[0], selector, req)
		},
	}
	cmd.Flags().StringVarP(&selector, "profile", "p", "", "profile header to select (default: all profiles)")
	cmd.Flags().Float64("low", 0, "lower band elevation")
	cmd.Flags().Float64("high", 0, "upper band elevation")
	return cmd
}

func newXonXoffCmd(a *app) *cobra.Command {
	var (
		selector string
		above    bool
	)
	cmd := &cobra.Command{
		Use:   "xonxoff <survey.json>",
		Short: "Area of the profile between two horizontal limits",
		Long: `Area of the profile between xon and xoff. With --policy extend a limit
outside the surveyed range is reached by a flat line at the nearest
endpoint's elevation; with --policy skip such profiles are left out.
With --above only material above --contour is counted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hb, ok, err := a.cfg.HorizontalBound()
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("xonxoff needs both --xon and --xoff (or xon/xoff in the config file)")
			}
			req := area.Request{Horizontal: &hb, Normalize: a.cfg.NormalizeOptions()}
			if above {
				eb := a.cfg.ContourBound()
				req.Elevation = &eb
			}
			return a.runArea(cmd.Context(), args[0], selector, req)
		},
	}
	cmd.Flags().StringVarP(&selector, "profile", "p", "", "profile header to select (default: all profiles)")
	cmd.Flags().Float64("xon", 0, "landward limit")
	cmd.Flags().Float64("xoff", 0, "seaward limit")
	cmd.Flags().String("policy", "", "out-of-range handling: truncate, extend or skip")
	cmd.Flags().BoolVar(&above, "above", false, "only count material above the contour")
	cmd.Flags().Float64("contour", 0, "contour elevation used with --above")
	return cmd
}

type areaRow struct {
	Profile string       `json:"profile"`
	Skipped bool         `json:"skipped,omitempty"`
	Error   string       `json:"error,omitempty"`
	Result  *area.Result `json:"result,omitempty"`
}

func (a *app) runArea(ctx context.Context, path, selector string, req area.Request) error {
	if ctx == nil {
		ctx = context.Background()
	}
	doc, err := a.readSurvey(path)
	if err != nil {
		return err
	}

	profiles := doc.Profiles
	if selector != "" {
		p, err := doc.Find(selector)
		if err != nil {
			return err
		}
		profiles = []survey.Profile{p}
	}

	results, err := batch.Areas(ctx, profiles, req, a.batchOptions())
	if err != nil {
		return err
	}

	rows := make([]areaRow, len(results))
	var failed []batch.Result[area.Result]
	for i, r := range results {
		rows[i].Profile = r.Header
		switch {
		case errors.Is(r.Err, profile.ErrOutOfRange):
			rows[i].Skipped = true
		case r.Err != nil:
			rows[i].Error = r.Err.Error()
			failed = append(failed, r)
		default:
			res := r.Value
			rows[i].Result = &res
		}
	}

	if a.jsonOut {
		if err := printJSON(rows); err != nil {
			return err
		}
	} else {
		printAreaRows(rows, req, a.cfg)
	}
	return batch.Errors(failed)
}

func describeRequest(req area.Request) string {
	var s string
	switch {
	case req.Elevation == nil:
		s = "Area"
	case req.Elevation.Kind == profile.KindBand:
		s = fmt.Sprintf("Area between %.2f and %.2f", req.Elevation.Low, req.Elevation.High)
	default:
		s = fmt.Sprintf("Area above %.2f", req.Elevation.Z)
	}
	if req.Horizontal != nil {
		s += fmt.Sprintf(" from x=%.2f to x=%.2f (%s)", req.Horizontal.X0, req.Horizontal.X1, req.Horizontal.Policy)
	}
	return s
}
