// Package replay feeds recorded sensor packages through the calculators,
// optionally at a fixed cadence to mimic a live tracker.
package replay

import (
	"context"
	"fmt"
	"log/slog"

	"ftracker/internal/logging"
	"ftracker/internal/report"
	"ftracker/internal/workout"

	"golang.org/x/time/rate"
)

// Sink receives each rendered summary in package order.
type Sink func(report.InfoMessage) error

// Replayer processes packages one at a time. A Replayer holds no per-run
// state and may be reused.
type Replayer struct {
	limiter *rate.Limiter
	log     *slog.Logger
}

// Option configures a Replayer.
type Option func(*Replayer)

// WithRate paces packages to perSecond, releasing up to burst at once.
// A non-positive rate leaves the replay unpaced.
func WithRate(perSecond float64, burst int) Option {
	return func(r *Replayer) {
		if perSecond <= 0 {
			r.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		r.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithLogger sets the logger for per-package debug output.
func WithLogger(log *slog.Logger) Option {
	return func(r *Replayer) {
		if log != nil {
			r.log = log
		}
	}
}

// New creates a Replayer.
func New(opts ...Option) *Replayer {
	r := &Replayer{log: logging.Discard()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Paced reports whether the replay waits between packages.
func (r *Replayer) Paced() bool {
	return r.limiter != nil
}

// Run reads every package in order and hands its summary to sink. It stops
// at the first package that cannot be read, at the first sink error, or when
// ctx is done.
func (r *Replayer) Run(ctx context.Context, pkgs []workout.Package, sink Sink) error {
	for i, pkg := range pkgs {
		if err := r.wait(ctx); err != nil {
			return err
		}

		msg, err := Process(pkg)
		if err != nil {
			return fmt.Errorf("package %d: %w", i, err)
		}
		r.log.Debug("package processed",
			slog.Int("index", i),
			slog.String("type", string(pkg.Type)),
			slog.Float64("distance", msg.Distance),
			slog.Float64("speed", msg.Speed),
			slog.Float64("calories", msg.Calories))

		if err := sink(msg); err != nil {
			return fmt.Errorf("package %d: %w", i, err)
		}
	}
	return nil
}

// Collect runs the replay and returns all summaries.
func (r *Replayer) Collect(ctx context.Context, pkgs []workout.Package) ([]report.InfoMessage, error) {
	msgs := make([]report.InfoMessage, 0, len(pkgs))
	err := r.Run(ctx, pkgs, func(m report.InfoMessage) error {
		msgs = append(msgs, m)
		return nil
	})
	return msgs, err
}

func (r *Replayer) wait(ctx context.Context) error {
	if r.limiter == nil {
		return ctx.Err()
	}
	return r.limiter.Wait(ctx)
}

// Process reads a single package and returns its summary.
func Process(pkg workout.Package) (report.InfoMessage, error) {
	t, err := pkg.Read()
	if err != nil {
		return report.InfoMessage{}, err
	}
	return t.ShowTrainingInfo(), nil
}
