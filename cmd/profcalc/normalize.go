package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/planbiir/profcalc/internal/survey"
)

func newNormalizeCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "normalize <survey.json>",
		Short: "Drop consecutive duplicate stations and write the cleaned survey",
		Long: `Reads a survey, removes consecutive duplicate stations from every
profile (see --tolerance) and writes the result. Station order is kept.
Without -o the input file is left untouched and only the counts are printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.readSurvey(args[0])
			if err != nil {
				return err
			}

			out := &survey.Document{Creator: doc.Creator, Profiles: make([]survey.Profile, 0, len(doc.Profiles))}
			var failed []error
			for _, p := range doc.Profiles {
				s, err := p.Series(a.cfg.NormalizeOptions())
				if err != nil {
					failed = append(failed, err)
					fmt.Printf("❌ %s: %v\n", p.Header(), err)
					continue
				}
				clean := survey.FromSeries(p.Name, p.Date, s)
				clean.Description = p.Description
				out.Profiles = append(out.Profiles, clean)

				xs, zs := s.Xs(), s.Zs()
				fmt.Printf("📍 %s: %d → %d stations (x %.2f → %.2f, z %.2f → %.2f)\n",
					p.Header(), len(p.Stations), len(s),
					floats.Min(xs), floats.Max(xs), floats.Min(zs), floats.Max(zs))
			}

			before, _ := doc.Stats()
			_, after := out.Stats()
			a.log.Debugw("normalized survey", "profiles", before, "stations", after)

			if output != "" {
				if err := out.Write(output); err != nil {
					return err
				}
				fmt.Printf("✅ Wrote %d profiles to %s\n", len(out.Profiles), output)
			}
			return errors.Join(failed...)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the cleaned survey to this file")
	return cmd
}
