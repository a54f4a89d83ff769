// Package batch evaluates many survey profiles concurrently. A failure on
// one profile is recorded against that profile and does not stop the rest.
package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/planbiir/profcalc/internal/area"
	"github.com/planbiir/profcalc/internal/cutfill"
	"github.com/planbiir/profcalc/internal/profile"
	"github.com/planbiir/profcalc/internal/survey"
)

// Options controls a batch run
type Options struct {
	Workers int // 0 means one per CPU
	Logger  *zap.SugaredLogger
}

// Result is the outcome for one item
type Result[T any] struct {
	Header string
	Value  T
	Err    error
}

type resultJSON[T any] struct {
	Header string `json:"profile"`
	Value  *T     `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// MarshalJSON reports either the value or the error message
func (r Result[T]) MarshalJSON() ([]byte, error) {
	out := resultJSON[T]{Header: r.Header}
	if r.Err != nil {
		out.Error = r.Err.Error()
	} else {
		out.Value = &r.Value
	}
	return json.Marshal(out)
}

// Item is anything a batch can process and report on by name
type Item interface {
	Header() string
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

func (o Options) logger() *zap.SugaredLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop().Sugar()
}

// Run applies fn to every item with at most opts.Workers in flight.
// Results keep the order of items. The returned error is non-nil only
// when ctx ends before every item was processed; items not reached
// carry the context error.
func Run[I Item, T any](ctx context.Context, items []I, opts Options, fn func(context.Context, I) (T, error)) ([]Result[T], error) {
	log := opts.logger()
	results := make([]Result[T], len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())

	start := time.Now()
	for i, item := range items {
		results[i].Header = item.Header()
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return err
			}
			v, err := fn(gctx, item)
			results[i].Value = v
			results[i].Err = err
			if err != nil {
				log.Warnw("profile failed", "profile", results[i].Header, "error", err)
				return nil
			}
			log.Debugw("profile done", "profile", results[i].Header)
			return nil
		})
	}

	err := g.Wait()
	log.Infow("batch complete",
		"items", len(items),
		"failed", len(Failed(results)),
		"elapsed", time.Since(start))
	if err != nil {
		return results, fmt.Errorf("batch: %w", err)
	}
	return results, nil
}

// Failed returns the results that carry an error
func Failed[T any](results []Result[T]) []Result[T] {
	var out []Result[T]
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Errors joins every per-profile error, prefixed with the profile header
func Errors[T any](results []Result[T]) error {
	var errs []error
	for _, r := range Failed(results) {
		errs = append(errs, fmt.Errorf("%s: %w", r.Header, r.Err))
	}
	return errors.Join(errs...)
}

// Areas evaluates req against every profile
func Areas(ctx context.Context, profiles []survey.Profile, req area.Request, opts Options) ([]Result[area.Result], error) {
	return Run(ctx, profiles, opts, func(_ context.Context, p survey.Profile) (area.Result, error) {
		return area.Evaluate(p.Raw(), req)
	})
}

// Pair is two surveys of the same profile line, earlier first
type Pair struct {
	Before, After survey.Profile
}

// Header names the pair as "BEFORE -> AFTER"
func (p Pair) Header() string {
	return p.Before.Header() + " -> " + p.After.Header()
}

// Pairs groups profiles by name and pairs each survey with the next one in
// date order. Profiles without a usable date are skipped.
func Pairs(profiles []survey.Profile) []Pair {
	type dated struct {
		p survey.Profile
		t time.Time
	}
	byName := make(map[string][]dated)
	var names []string
	for _, p := range profiles {
		t, err := p.Time()
		if err != nil {
			continue
		}
		if _, seen := byName[p.Name]; !seen {
			names = append(names, p.Name)
		}
		byName[p.Name] = append(byName[p.Name], dated{p, t})
	}

	var out []Pair
	for _, name := range names {
		list := byName[name]
		sort.SliceStable(list, func(i, j int) bool { return list[i].t.Before(list[j].t) })
		for i := 1; i < len(list); i++ {
			out = append(out, Pair{Before: list[i-1].p, After: list[i].p})
		}
	}
	return out
}

// Change is the cut/fill outcome for one pair
type Change struct {
	Report cutfill.Report `json:"report"`
	Rate   *float64       `json:"annual_erosion_rate,omitempty"`
}

// CutFill runs the detailed comparison for every pair
func CutFill(ctx context.Context, pairs []Pair, norm profile.NormalizeOptions, cf cutfill.Options, opts Options) ([]Result[Change], error) {
	return Run(ctx, pairs, opts, func(_ context.Context, p Pair) (Change, error) {
		return Compare(p, norm, cf)
	})
}

// Compare normalizes both surveys of a pair, compares them and, when both
// are dated, derives the annual erosion rate
func Compare(p Pair, norm profile.NormalizeOptions, cf cutfill.Options) (Change, error) {
	a, err := p.Before.Series(norm)
	if err != nil {
		return Change{}, err
	}
	b, err := p.After.Series(norm)
	if err != nil {
		return Change{}, err
	}
	rep, err := cutfill.Detailed(a, b, cf)
	if err != nil {
		return Change{}, err
	}

	ch := Change{Report: rep}
	t0, err0 := p.Before.Time()
	t1, err1 := p.After.Time()
	if err0 == nil && err1 == nil {
		if rate, err := cutfill.AnnualRate(rep.Net, t0, t1); err == nil {
			ch.Rate = &rate
		}
	}
	return ch, nil
}
