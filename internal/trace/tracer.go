// Package trace runs trajectories of a [flow.Problem] with a pluggable
// integrator, with optional tangent-map propagation.
package trace

import (
	"context"
	"fmt"

	"github.com/san-kum/fieldtrace/internal/flow"
	"github.com/san-kum/fieldtrace/internal/integrators"
)

type Config struct {
	Dt       float64
	Duration float64

	// Tangent propagates the extended state (tangent matrix seeded to the
	// identity) instead of the plain state.
	Tangent bool

	// Adaptive uses the integrator's StepAdaptive when available.
	Adaptive  bool
	Tolerance float64
}

func DefaultConfig() Config {
	return Config{
		Dt:        0.01,
		Duration:  10.0,
		Tolerance: 1e-8,
	}
}

// Result holds one trajectory. States are plain state vectors unless the
// run propagated tangents, in which case each entry is a full extended
// buffer (use Final/FinalTangent to pick it apart). Err records why the
// trajectory stopped early, if it did; the states up to that point are
// kept.
type Result struct {
	Times      []float64
	States     []flow.State
	StepsTaken int
	Extended   bool
	Size       int
	Err        error
}

// Final returns the last recorded plain state, or nil for a result that
// failed before recording anything (check Err).
func (r *Result) Final() flow.State {
	if len(r.States) == 0 {
		return nil
	}
	last := r.States[len(r.States)-1]
	return last[:r.Size]
}

// FinalTangent returns the tangent matrix of the last recorded state, or
// false for plain runs and for results with no recorded states.
func (r *Result) FinalTangent() (flow.Tangent, bool) {
	if !r.Extended || len(r.States) == 0 {
		return flow.Tangent{}, false
	}
	last := r.States[len(r.States)-1]
	_, m := flow.Extended(last).Split(r.Size)
	return m, true
}

// Run integrates one trajectory. Non-finite RHS output stops the run: a
// singular evaluation is a property of the trajectory, recorded on the
// Result rather than retried.
func Run(ctx context.Context, p flow.Problem, integ integrators.Integrator, x0 flow.State, cfg Config) (*Result, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("trace: dt must be positive, got %g", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("trace: duration must be positive, got %g", cfg.Duration)
	}
	if len(x0) != p.Size() {
		return nil, fmt.Errorf("trace: initial state has %d components, problem size is %d: %w",
			len(x0), p.Size(), flow.ErrDimensionMismatch)
	}

	n := p.Size()
	var rhs flow.RHS
	var x flow.State
	if cfg.Tangent {
		rhs = func(t float64, x flow.State) flow.State {
			return flow.State(p.FTangent(t, flow.Extended(x)))
		}
		x = flow.State(flow.NewExtended(x0))
	} else {
		rhs = p.F
		x = x0.Clone()
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:    make([]float64, 0, steps+1),
		States:   make([]flow.State, 0, steps+1),
		Extended: cfg.Tangent,
		Size:     n,
	}
	result.Times = append(result.Times, 0)
	result.States = append(result.States, x.Clone())

	adaptive, isAdaptive := integ.(integrators.Adaptive)
	t := 0.0
	dt := cfg.Dt

	// The loop runs on remaining time, never on dt: adaptive stepping may
	// grow dt well past cfg.Dt, and a grown suggestion must not end the
	// run short of Duration. The epsilon only absorbs accumulation error
	// in t.
	for cfg.Duration-t > cfg.Dt*1e-9 {
		select {
		case <-ctx.Done():
			result.Err = ctx.Err()
			return result, nil
		default:
		}

		stepDt := dt
		if t+stepDt > cfg.Duration {
			stepDt = cfg.Duration - t
		}

		var next flow.State
		if cfg.Adaptive && isAdaptive {
			var err error
			next, dt, err = adaptive.StepAdaptive(rhs, x, t, stepDt, cfg.Tolerance)
			if err != nil {
				result.Err = err
				return result, nil
			}
		} else {
			next = integ.Step(rhs, x, t, stepDt)
		}

		if !next.IsValid() {
			result.Err = fmt.Errorf("%w at t=%.6g", flow.ErrSingular, t)
			return result, nil
		}

		x = next
		t += stepDt
		result.StepsTaken++
		result.Times = append(result.Times, t)
		result.States = append(result.States, x.Clone())
	}

	return result, nil
}
