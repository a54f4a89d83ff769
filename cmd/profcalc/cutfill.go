package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planbiir/profcalc/internal/batch"
	"github.com/planbiir/profcalc/internal/cutfill"
	"github.com/planbiir/profcalc/internal/survey"
)

// pairFlags selects the surveys to compare
type pairFlags struct {
	from, to string
}

func (f *pairFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "header of the earlier survey")
	cmd.Flags().StringVar(&f.to, "to", "", "header of the later survey")
}

// pairs returns the explicit --from/--to pair, or every consecutive pair of
// dated surveys of the same line when neither is given
func (f *pairFlags) pairs(doc *survey.Document) ([]batch.Pair, error) {
	if f.from == "" && f.to == "" {
		pairs := batch.Pairs(doc.Profiles)
		if len(pairs) == 0 {
			return nil, errors.New("no profile line has two dated surveys; use --from and --to")
		}
		return pairs, nil
	}
	if f.from == "" || f.to == "" {
		return nil, errors.New("--from and --to must be given together")
	}
	before, err := doc.Find(f.from)
	if err != nil {
		return nil, err
	}
	after, err := doc.Find(f.to)
	if err != nil {
		return nil, err
	}
	return []batch.Pair{{Before: before, After: after}}, nil
}

func newCutFillCmd(a *app) *cobra.Command {
	var (
		pf      pairFlags
		bounded string
		cells   bool
	)
	cmd := &cobra.Command{
		Use:   "cutfill <survey.json>",
		Short: "Signed cut/fill between two surveys of a profile line",
		Long: `Compares two surveys over the range both cover. Positive is fill (the
later survey is higher), negative is cut. --bound contour or --bound band
only counts material above the contour or inside the band.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cutfill.Options{Datum: a.cfg.Datum}
			switch bounded {
			case "", "none":
			case "contour":
				eb := a.cfg.ContourBound()
				opts.Bound = &eb
			case "band":
				eb := a.cfg.BandBound()
				opts.Bound = &eb
			default:
				return fmt.Errorf("unknown --bound %q (want none, contour or band)", bounded)
			}
			_, results, err := a.runPairs(cmd.Context(), args[0], pf, opts)
			if err != nil {
				return err
			}
			if a.jsonOut {
				if err := printJSON(results); err != nil {
					return err
				}
			} else {
				printChanges(results, a.cfg, cells)
			}
			return batch.Errors(results)
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVar(&bounded, "bound", "none", "restrict the change: none, contour or band")
	cmd.Flags().Float64("contour", 0, "contour elevation for --bound contour")
	cmd.Flags().Float64("low", 0, "lower band elevation for --bound band")
	cmd.Flags().Float64("high", 0, "upper band elevation for --bound band")
	cmd.Flags().Float64("datum", 0, "datum for the shoreline and the above/below split")
	cmd.Flags().BoolVar(&cells, "cells", false, "print the per-cell table")
	return cmd
}

type rateRow struct {
	Pair  string   `json:"pair"`
	Net   float64  `json:"net"`
	Years float64  `json:"years"`
	Rate  *float64 `json:"annual_erosion_rate,omitempty"`
	Error string   `json:"error,omitempty"`
}

func newAERCmd(a *app) *cobra.Command {
	var pf pairFlags
	cmd := &cobra.Command{
		Use:   "aer <survey.json>",
		Short: "Annual erosion rate between dated surveys",
		Long: `Annual erosion rate is the net loss between two surveys divided by the
time between them in 365.25-day years. Positive means erosion.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, results, err := a.runPairs(cmd.Context(), args[0], pf, cutfill.Options{Datum: a.cfg.Datum})
			if err != nil {
				return err
			}

			rows := make([]rateRow, len(results))
			var failed []error
			for i, r := range results {
				rows[i] = rateRow{Pair: r.Header, Net: r.Value.Report.Net, Rate: r.Value.Rate}
				t0, err0 := pairs[i].Before.Time()
				t1, err1 := pairs[i].After.Time()
				var rowErr error
				switch {
				case r.Err != nil:
					rowErr = r.Err
				case err0 != nil || err1 != nil:
					rowErr = errors.Join(err0, err1)
				default:
					rows[i].Years = cutfill.YearsBetween(t0, t1)
					if rows[i].Rate == nil {
						rowErr = cutfill.ErrNoInterval
					}
				}
				if rowErr != nil {
					rows[i].Error = rowErr.Error()
					failed = append(failed, fmt.Errorf("%s: %w", r.Header, rowErr))
				}
			}

			if a.jsonOut {
				if err := printJSON(rows); err != nil {
					return err
				}
				return errors.Join(failed...)
			}
			unit := areaUnit(a.cfg)
			fmt.Printf("\n⏱️  Annual erosion rates\n%s\n", rule)
			for _, row := range rows {
				if row.Error != "" {
					fmt.Printf("❌ %s: %s\n", row.Pair, row.Error)
					continue
				}
				fmt.Printf("📍 %s\n", row.Pair)
				fmt.Printf("   Net: %.2f %s over %.2f years → %.2f %s/yr\n", row.Net, unit, row.Years, *row.Rate, unit)
			}
			fmt.Printf("%s\n", rule)
			return errors.Join(failed...)
		},
	}
	pf.register(cmd)
	return cmd
}

func (a *app) runPairs(ctx context.Context, path string, pf pairFlags, opts cutfill.Options) ([]batch.Pair, []batch.Result[batch.Change], error) {
	doc, err := a.readSurvey(path)
	if err != nil {
		return nil, nil, err
	}
	pairs, err := pf.pairs(doc)
	if err != nil {
		return nil, nil, err
	}
	a.log.Debugw("comparing surveys", "pairs", len(pairs), "datum", opts.Datum)

	results, err := batch.CutFill(ctx, pairs, a.cfg.NormalizeOptions(), opts, a.batchOptions())
	return pairs, results, err
}
