package sim

import (
	"fmt"

	"github.com/san-kum/racesim/internal/resolve"
	"github.com/san-kum/racesim/internal/stage"
)

// TerminalRecord carries one vehicle through the stages. Elapsed time adds
// up across stages; position and velocity are those of the last completed
// stage.
type TerminalRecord struct {
	Vehicle   string
	Elapsed   float64
	Position  float64
	Velocity  float64
	Completed int
	Finished  bool
}

// LastStage returns the last stage the vehicle completed, if any.
func (r TerminalRecord) LastStage() (stage.ID, bool) {
	if r.Completed == 0 {
		return 0, false
	}
	return stage.All[r.Completed-1], true
}

type VehicleRun struct {
	Vehicle resolve.ResolvedVehicle
	Stages  []*stage.Outcome
	Record  TerminalRecord
	// Snapshots[i] is the record right after stage i completed.
	Snapshots []TerminalRecord
}

// Outcome returns the vehicle's outcome for a stage, or nil if the stage was
// skipped.
func (v *VehicleRun) Outcome(id stage.ID) *stage.Outcome {
	for _, o := range v.Stages {
		if o.Stage == id {
			return o
		}
	}
	return nil
}

// Err is the not-terminated error of the stage that stopped the vehicle.
func (v *VehicleRun) Err() error {
	if v.Record.Finished || len(v.Stages) == 0 {
		return nil
	}
	return v.Stages[len(v.Stages)-1].Err()
}

type Result struct {
	Vehicles []*VehicleRun
}

func (r *Result) Records() []TerminalRecord {
	out := make([]TerminalRecord, len(r.Vehicles))
	for i, v := range r.Vehicles {
		out[i] = v.Record
	}
	return out
}

// RunError is a numerical failure of one vehicle's stage.
type RunError struct {
	Vehicle string
	Stage   stage.ID
	Err     error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("vehicle %s, stage %s: %v", e.Vehicle, e.Stage, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// Observer is notified after every stage a vehicle runs.
type Observer interface {
	OnStage(vehicle string, out *stage.Outcome, rec TerminalRecord)
}
