package pipeline

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/errors"
)

// MaxSweepSteps bounds the number of frames a single sweep may render.
const MaxSweepSteps = 1000

// SweepOffsets returns steps offsets evenly spaced from from to to,
// both inclusive. One step yields just from.
func SweepOffsets(from, to float64, steps int) []float64 {
	if steps <= 0 {
		return nil
	}
	out := make([]float64, steps)
	if steps == 1 {
		out[0] = from
		return out
	}
	step := (to - from) / float64(steps-1)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	out[steps-1] = to
	return out
}

// Sweep runs the pipeline at evenly spaced offsets between from and to and
// returns the results in offset order. Index and Snap in opts are ignored.
func (r *Runner) Sweep(ctx context.Context, car *carousel.Carousel, opts Options, from, to float64, steps int) ([]*Result, error) {
	if steps < 1 || steps > MaxSweepSteps {
		return nil, errors.New(errors.ErrCodeInvalidInput, "steps must be in [1, %d], got %d", MaxSweepSteps, steps)
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	opts.Index = nil
	opts.Snap = false

	start := time.Now()
	offsets := SweepOffsets(from, to, steps)
	results := make([]*Result, len(offsets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, offset := range offsets {
		o := opts
		o.Offset = offset
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.Execute(ctx, car, o)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	opts.Logger.Info("swept offsets",
		"from", from,
		"to", to,
		"steps", steps,
		"duration", time.Since(start))
	return results, nil
}
