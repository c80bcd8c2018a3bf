// Package game drives a World generation by generation until it dies out, settles or is stopped.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/golcore/model"
	"github.com/sheikhrachel/golcore/utils"
)

// Reason explains why a run stopped
type Reason string

const (
	Extinct        Reason = "extinct"
	Stable         Reason = "stable"
	Oscillating    Reason = "oscillating"
	MaxGenerations Reason = "max-generations"
	Interrupted    Reason = "interrupted"
)

// Result describes a finished run
type Result struct {
	Cycles     int
	Population int
	Reason     Reason
}

// Summary returns the closing message for a run
func (r Result) Summary() string {
	msg := fmt.Sprintf("This population configuration survived for %d cycles.", r.Cycles)
	if r.Population > 0 {
		msg += "\nAlthough some subsist, they will stagnate forever."
	}
	return msg
}

// Runner owns a world for the duration of a run
type Runner struct {
	world    *model.World
	renderer model.Renderer
	config   utils.Config
	stats    *utils.Stats
	history  *model.History
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewRunner creates a runner. A nil renderer or quiet config draws nothing.
func NewRunner(world *model.World, renderer model.Renderer, config utils.Config) *Runner {
	if renderer == nil || config.Quiet {
		renderer = model.NopRenderer{}
	}

	r := &Runner{
		world:    world,
		renderer: renderer,
		config:   config,
		stats:    utils.NewStats(),
		sleep:    sleepContext,
	}
	if config.StopOnOscillation {
		r.history = &model.History{}
	}
	return r
}

// Stats returns the performance figures collected so far
func (r *Runner) Stats() *utils.Stats {
	return r.stats
}

// Run cycles the world, drawing each generation, until a stop condition holds.
// At least one cycle runs unless ctx is already done.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	var (
		cycles int
		reason Reason
	)

	if r.history != nil {
		r.history.Record(r.world)
	}

	for {
		if ctx.Err() != nil {
			reason = Interrupted
			break
		}

		if err := r.renderer.Display(r.world); err != nil {
			return r.result(cycles, Interrupted), errors.Wrap(err, "[Run] failed to display world")
		}
		if !r.config.Quiet {
			if err := r.sleep(ctx, r.config.Delay); err != nil {
				reason = Interrupted
				break
			}
		}

		frameStart := time.Now()
		changed := r.world.Cycle()
		cycles++
		r.stats.Update(r.world.Generation(), r.world.Population(), changed, time.Since(frameStart))

		var stop bool
		if reason, stop = r.checkStopConditions(cycles); stop {
			break
		}
	}

	if err := r.renderer.Display(r.world); err != nil {
		return r.result(cycles, reason), errors.Wrap(err, "[Run] failed to display final world")
	}
	return r.result(cycles, reason), nil
}

// checkStopConditions determines if the run should end after the latest cycle
func (r *Runner) checkStopConditions(cycles int) (Reason, bool) {
	if r.world.Population() == 0 {
		return Extinct, true
	}
	if r.world.ChangedCount() == 0 {
		return Stable, true
	}
	if r.history != nil {
		if r.history.Repeats(r.world) {
			return Oscillating, true
		}
		r.history.Record(r.world)
	}
	if r.config.MaxGenerations > 0 && cycles >= r.config.MaxGenerations {
		return MaxGenerations, true
	}
	return "", false
}

func (r *Runner) result(cycles int, reason Reason) Result {
	return Result{
		Cycles:     cycles,
		Population: r.world.Population(),
		Reason:     reason,
	}
}

// sleepContext waits for d or until ctx is done
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
