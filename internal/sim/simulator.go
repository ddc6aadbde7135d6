package sim

import (
	"context"

	"go.uber.org/zap"

	"github.com/san-kum/racesim/internal/dynamo"
	"github.com/san-kum/racesim/internal/log"
	"github.com/san-kum/racesim/internal/resolve"
	"github.com/san-kum/racesim/internal/stage"
)

type Simulator struct {
	runner    *stage.Runner
	observers []Observer
}

func New(runner *stage.Runner) *Simulator {
	return &Simulator{
		runner:    runner,
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Runner() *stage.Runner { return s.runner }

// Run simulates every vehicle in order. A vehicle whose stage never
// terminates stops there and the run moves on; a numerical failure aborts
// the run with a *RunError.
func (s *Simulator) Run(ctx context.Context, vehicles []resolve.ResolvedVehicle) (*Result, error) {
	result := &Result{Vehicles: make([]*VehicleRun, 0, len(vehicles))}

	for _, v := range vehicles {
		run, err := s.RunVehicle(ctx, v)
		if err != nil {
			return result, err
		}
		result.Vehicles = append(result.Vehicles, run)
	}

	return result, nil
}

// RunVehicle chains A, B, C and D for one vehicle, seeding each stage from
// the previous terminal sample.
func (s *Simulator) RunVehicle(ctx context.Context, v resolve.ResolvedVehicle) (*VehicleRun, error) {
	run := &VehicleRun{
		Vehicle:   v,
		Stages:    make([]*stage.Outcome, 0, len(stage.All)),
		Record:    TerminalRecord{Vehicle: v.Name()},
		Snapshots: make([]TerminalRecord, 0, len(stage.All)),
	}

	var prev *stage.Terminal
	for _, id := range stage.All {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		x0 := s.seed(id, prev)
		out, err := s.runner.Run(id, v.Params(id.Index()), x0)
		if err != nil {
			return nil, &RunError{Vehicle: v.Name(), Stage: id, Err: err}
		}
		run.Stages = append(run.Stages, out)

		if !out.Reached() {
			fields := []zap.Field{
				zap.String("vehicle", v.Name()),
				zap.Stringer("stage", id),
				zap.Error(out.Err()),
			}
			if last, ok := run.Record.LastStage(); ok {
				fields = append(fields, zap.Stringer("completed", last), zap.Float64("elapsed", run.Record.Elapsed))
			}
			log.Logger.Warn("vehicle did not finish", fields...)
			s.notify(v.Name(), out, run.Record)
			return run, nil
		}

		term := out.Terminal
		if id == stage.A {
			run.Record.Elapsed = term.Time
		} else {
			run.Record.Elapsed += term.Time
		}
		run.Record.Position = term.Position
		run.Record.Velocity = term.Velocity
		run.Record.Completed++
		run.Snapshots = append(run.Snapshots, run.Record)

		s.notify(v.Name(), out, run.Record)
		prev = term
	}

	run.Record.Finished = true
	run.Snapshots[len(run.Snapshots)-1].Finished = true
	return run, nil
}

// seed maps the previous stage's reported terminal values to the initial
// state of the next one.
func (s *Simulator) seed(id stage.ID, prev *stage.Terminal) dynamo.State {
	switch id {
	case stage.B:
		return dynamo.State{0, prev.Velocity / s.runner.Env.Radius}
	case stage.C:
		return dynamo.State{stage.JumpStartX, stage.JumpStartZ, prev.Velocity, 0}
	case stage.D:
		return dynamo.State{prev.Position, prev.Velocity}
	default:
		return dynamo.State{0, 0}
	}
}

func (s *Simulator) notify(vehicle string, out *stage.Outcome, rec TerminalRecord) {
	for _, o := range s.observers {
		o.OnStage(vehicle, out, rec)
	}
}
