// Package batch measures a list of map sources, isolating failures per map.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/stuarthighley/bsp"
	"github.com/stuarthighley/bsp/internal/archive"
)

// Options controls a batch run.
type Options struct {
	Workers  int
	Decoding bsp.Decoding
	// FirstLabel is the number given to the first map. Zero means 1.
	FirstLabel int
}

// Failure records a map that could not be measured.
type Failure struct {
	Label string
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Label, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Result holds the outcome of a run. Reports keep input order and only
// include maps that were measured.
type Result struct {
	Reports  []bsp.MapReport
	Failures []Failure
	Skipped  int // maps with no spawn points
	Canceled bool
}

// Run processes every source. Labels are numbered in input order before any
// work starts, so numbering does not depend on scheduling. A failing map is
// logged and recorded, and the rest keep going. ctx is checked before each map.
func Run(ctx context.Context, sources []archive.Source, opts Options) Result {
	workers := max(opts.Workers, 1)
	first := opts.FirstLabel
	if first == 0 {
		first = 1
	}

	type outcome struct {
		report bsp.MapReport
		err    error
		done   bool
	}
	outcomes := make([]outcome, len(sources))
	var skipped atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, src := range sources {
		if ctx.Err() != nil {
			break
		}
		label := bsp.FormatLabel(first+i, src.Name)
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			report, err := processSource(label, src, opts.Decoding)
			if err != nil {
				slog.Error("map failed", "map", label, "err", err)
			} else if report.Empty {
				slog.Info("no spawn points found in map, skipped", "map", label)
				skipped.Add(1)
			}
			outcomes[i] = outcome{report: report, err: err, done: true}
			return nil
		})
	}
	_ = g.Wait()

	res := Result{Skipped: int(skipped.Load()), Canceled: ctx.Err() != nil}
	for i, o := range outcomes {
		switch {
		case !o.done:
		case o.err != nil:
			res.Failures = append(res.Failures, Failure{Label: bsp.FormatLabel(first+i, sources[i].Name), Err: o.err})
		default:
			res.Reports = append(res.Reports, o.report)
		}
	}
	return res
}

func processSource(label string, src archive.Source, dec bsp.Decoding) (bsp.MapReport, error) {
	slog.Debug("processing spawn points", "map", label)
	r, err := src.Open()
	if err != nil {
		return bsp.MapReport{}, err
	}
	defer r.Close()
	return bsp.ProcessMap(label, r, dec)
}
