package main

import (
	"encoding/json"
	"fmt"

	"github.com/planbiir/profcalc/internal/area"
	"github.com/planbiir/profcalc/internal/batch"
	"github.com/planbiir/profcalc/internal/config"
	"github.com/planbiir/profcalc/internal/cutfill"
)

const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

func printJSON(v any) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling results: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}

func areaUnit(cfg config.Analysis) string {
	if cfg.Units == config.UnitsMeters {
		return "m²"
	}
	return "ft²"
}

func printAreaRows(rows []areaRow, req area.Request, cfg config.Analysis) {
	fmt.Printf("\n📐 %s\n", describeRequest(req))
	fmt.Printf("%s\n", rule)
	for _, row := range rows {
		switch {
		case row.Skipped:
			fmt.Printf("⏭️  %s: skipped (limits outside surveyed range)\n", row.Profile)
		case row.Error != "":
			fmt.Printf("❌ %s: %s\n", row.Profile, row.Error)
		default:
			res := row.Result
			vol, volUnit := cfg.VolumePerLength(res.Area)
			fmt.Printf("📍 %s\n", row.Profile)
			fmt.Printf("   Stations: %d (x %.2f → %.2f)\n", res.Stations, res.XMin, res.XMax)
			fmt.Printf("   Area: %.2f %s (%.2f %s)\n", res.Area, areaUnit(cfg), vol, volUnit)
			if res.ContourX != nil {
				fmt.Printf("   Contour position: x=%.2f\n", *res.ContourX)
			}
		}
	}
	fmt.Printf("%s\n", rule)
}

func printChanges(results []batch.Result[batch.Change], cfg config.Analysis, showCells bool) {
	unit := areaUnit(cfg)
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("❌ %s: %v\n", r.Header, r.Err)
			continue
		}
		rep := r.Value.Report
		net, volUnit := cfg.VolumePerLength(rep.Net)

		fmt.Printf("\n📊 %s\n", r.Header)
		fmt.Printf("%s\n", rule)
		fmt.Printf("📏 Common range: x %.2f → %.2f\n", rep.XOn, rep.XOff)
		fmt.Printf("⚖️  Net change: %.2f %s (%.2f %s)\n", rep.Net, unit, net, volUnit)
		fmt.Printf("   • Fill: %.2f %s\n", rep.Fill, unit)
		fmt.Printf("   • Cut: %.2f %s\n", rep.Cut, unit)
		fmt.Printf("   • Above datum %.2f: %.2f %s\n", cfg.Datum, rep.AboveDatum, unit)
		fmt.Printf("   • Below datum %.2f: %.2f %s\n", cfg.Datum, rep.BelowDatum, unit)
		if rep.ShorelineChange != nil {
			fmt.Printf("🌊 Shoreline: x %.2f → %.2f (%+.2f)\n", *rep.ShorelineA, *rep.ShorelineB, *rep.ShorelineChange)
		}
		if r.Value.Rate != nil {
			fmt.Printf("⏱️  Annual erosion rate: %.2f %s/yr\n", *r.Value.Rate, unit)
		}
		if showCells {
			printCells(rep.Cells)
		}
		fmt.Printf("%s\n", rule)
	}
}

func printCells(cells []cutfill.Cell) {
	fmt.Printf("   %10s %10s %10s %12s %10s %12s %12s\n",
		"start_x", "end_x", "end_z2", "area", "thick", "cum_net", "cum_gross")
	for _, c := range cells {
		fmt.Printf("   %10.2f %10.2f %10.2f %12.3f %10.3f %12.3f %12.3f\n",
			c.StartX, c.EndX, c.EndZB, c.Area, c.Thickness, c.Net, c.Gross)
	}
}
