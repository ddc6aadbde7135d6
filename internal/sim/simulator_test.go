package sim_test

import (
	"context"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/san-kum/racesim/internal/catalog"
	"github.com/san-kum/racesim/internal/dynamo"
	"github.com/san-kum/racesim/internal/log"
	"github.com/san-kum/racesim/internal/resolve"
	"github.com/san-kum/racesim/internal/sim"
	"github.com/san-kum/racesim/internal/stage"
)

type recorder struct {
	calls []string
}

func (r *recorder) OnStage(vehicle string, out *stage.Outcome, _ sim.TerminalRecord) {
	r.calls = append(r.calls, vehicle+":"+out.Stage.String())
}

func resolved(sel resolve.Selection) []resolve.ResolvedVehicle {
	res, err := resolve.Resolve(sel, catalog.Default())
	Expect(err).NotTo(HaveOccurred())
	return res.Vehicles
}

// stalled cannot climb the ramp: the engine is weaker than friction.
func stalled() resolve.ResolvedVehicle {
	return resolve.ResolvedVehicle{
		Spec: catalog.VehicleSpec{
			Name: "stalled", Mass: 1500, Engine: 0,
			Length: 4, Width: 1.8, Height: 1.3,
			Drag: 0.3, Lift: 0.3, Friction: 0.1,
		},
		Mods: resolve.NeutralModifiers(),
	}
}

var _ = Describe("Simulator", func() {
	var (
		simulator *sim.Simulator
		ctx       context.Context
	)

	BeforeEach(func() {
		simulator = sim.New(stage.DefaultRunner())
		ctx = context.Background()
	})

	Describe("chaining the stages", func() {
		var run *sim.VehicleRun

		BeforeEach(func() {
			result, err := simulator.Run(ctx, resolved(resolve.Selection{Vehicles: []string{"dodge"}}))
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Vehicles).To(HaveLen(1))
			run = result.Vehicles[0]
		})

		It("finishes every stage", func() {
			Expect(run.Stages).To(HaveLen(4))
			Expect(run.Record.Finished).To(BeTrue())
			Expect(run.Record.Completed).To(Equal(4))
			Expect(run.Err()).NotTo(HaveOccurred())

			last, ok := run.Record.LastStage()
			Expect(ok).To(BeTrue())
			Expect(last).To(Equal(stage.D))
		})

		It("seeds the loop with the ramp exit speed over the radius", func() {
			a := run.Outcome(stage.A)
			b := run.Outcome(stage.B)
			Expect(b.Initial).To(Equal(dynamo.State{0, a.Terminal.Velocity / 6}))
		})

		It("launches the jump from the loop exit speed", func() {
			b := run.Outcome(stage.B)
			c := run.Outcome(stage.C)
			Expect(c.Initial).To(Equal(dynamo.State{-9, 1, b.Terminal.Velocity, 0}))
		})

		It("starts the run-out at the landing point", func() {
			c := run.Outcome(stage.C)
			d := run.Outcome(stage.D)
			Expect(d.Initial).To(Equal(dynamo.State{c.Terminal.Position, c.Terminal.Velocity}))
		})

		It("adds elapsed time and overwrites position and velocity", func() {
			var total float64
			for i, o := range run.Stages {
				total += o.Terminal.Time
				Expect(run.Snapshots[i].Elapsed).To(BeNumerically("~", total, 1e-12))
				Expect(run.Snapshots[i].Position).To(Equal(o.Terminal.Position))
				Expect(run.Snapshots[i].Velocity).To(Equal(o.Terminal.Velocity))
			}
			Expect(run.Record.Elapsed).To(BeNumerically("~", total, 1e-12))
			Expect(run.Record.Position).To(BeNumerically(">=", stage.FinishD))
		})

		It("reports the loop in metres", func() {
			b := run.Outcome(stage.B)
			Expect(b.Terminal.Position).To(BeNumerically(">=", 2*3.14159*6))
			Expect(run.Snapshots[1].Position).To(Equal(b.Terminal.Position))
		})
	})

	It("runs the whole default catalog to the finish", func() {
		result, err := simulator.Run(ctx, resolved(resolve.Selection{Vehicles: catalog.Default().Names()}))
		Expect(err).NotTo(HaveOccurred())
		for _, rec := range result.Records() {
			Expect(rec.Finished).To(BeTrue(), rec.Vehicle)
			Expect(rec.Elapsed).To(BeNumerically(">", 5))
		}
	})

	It("is idempotent for identical inputs", func() {
		vehicles := resolved(resolve.Selection{Vehicles: []string{"supra", "rx_7"}, Boost: resolve.BoostB, Wing: true})

		first, err := simulator.Run(ctx, vehicles)
		Expect(err).NotTo(HaveOccurred())
		second, err := sim.New(stage.DefaultRunner()).Run(ctx, vehicles)
		Expect(err).NotTo(HaveOccurred())

		Expect(cmp.Diff(first.Records(), second.Records())).To(BeEmpty())
		Expect(cmp.Diff(first.Vehicles[1].Snapshots, second.Vehicles[1].Snapshots)).To(BeEmpty())
	})

	It("is faster with a boost on the ramp", func() {
		plain, err := simulator.Run(ctx, resolved(resolve.Selection{Vehicles: []string{"camaro"}}))
		Expect(err).NotTo(HaveOccurred())
		boosted, err := simulator.Run(ctx, resolved(resolve.Selection{Vehicles: []string{"camaro"}, Boost: resolve.BoostA}))
		Expect(err).NotTo(HaveOccurred())

		Expect(boosted.Vehicles[0].Snapshots[0].Elapsed).To(BeNumerically("<", plain.Vehicles[0].Snapshots[0].Elapsed))
	})

	It("leaves the catalog untouched", func() {
		before, err := catalog.Default().Lookup("lancer")
		Expect(err).NotTo(HaveOccurred())

		_, err = simulator.Run(ctx, resolved(resolve.Selection{Vehicles: []string{"lancer"}, Wing: true, Skirt: true}))
		Expect(err).NotTo(HaveOccurred())

		after, err := catalog.Default().Lookup("lancer")
		Expect(err).NotTo(HaveOccurred())
		Expect(after).To(Equal(before))
	})

	Describe("a vehicle that never reaches the top of the ramp", func() {
		It("stops that vehicle and keeps running the others", func() {
			rec := &recorder{}
			simulator.AddObserver(rec)

			vehicles := append([]resolve.ResolvedVehicle{stalled()}, resolved(resolve.Selection{Vehicles: []string{"skyline"}})...)
			result, err := simulator.Run(ctx, vehicles)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Vehicles).To(HaveLen(2))

			dnf := result.Vehicles[0]
			Expect(dnf.Stages).To(HaveLen(1))
			Expect(dnf.Record.Finished).To(BeFalse())
			Expect(dnf.Record.Completed).To(BeZero())
			Expect(dnf.Snapshots).To(BeEmpty())
			Expect(dnf.Err()).To(MatchError(stage.ErrNotTerminated))
			Expect(dnf.Outcome(stage.B)).To(BeNil())

			_, ok := dnf.Record.LastStage()
			Expect(ok).To(BeFalse())

			Expect(result.Vehicles[1].Record.Finished).To(BeTrue())
			Expect(rec.calls).To(Equal([]string{"stalled:A", "skyline:A", "skyline:B", "skyline:C", "skyline:D"}))
		})
	})

	Describe("a loop too long for its grid", func() {
		It("reports the last completed stage", func() {
			core, logs := observer.New(zapcore.WarnLevel)
			prev := log.Logger
			log.Logger = zap.New(core)
			DeferCleanup(func() { log.Logger = prev })

			runner := stage.DefaultRunner()
			runner.Grids[stage.B] = stage.Grid{Samples: 10, Span: 0.01}

			result, err := sim.New(runner).Run(ctx, resolved(resolve.Selection{Vehicles: []string{"skyline"}}))
			Expect(err).NotTo(HaveOccurred())

			run := result.Vehicles[0]
			Expect(run.Err()).To(MatchError(stage.ErrNotTerminated))
			last, ok := run.Record.LastStage()
			Expect(ok).To(BeTrue())
			Expect(last).To(Equal(stage.A))

			Expect(logs.Len()).To(Equal(1))
			fields := logs.All()[0].ContextMap()
			Expect(fields).To(HaveKeyWithValue("stage", "B"))
			Expect(fields).To(HaveKeyWithValue("completed", "A"))
			Expect(fields).To(HaveKeyWithValue("elapsed", run.Record.Elapsed))
		})
	})

	Describe("numerical failure", func() {
		It("names the vehicle and the stage", func() {
			broken := stalled()
			broken.Spec.Name = "broken"
			broken.Spec.Mass = 0

			_, err := simulator.Run(ctx, []resolve.ResolvedVehicle{broken})
			Expect(err).To(HaveOccurred())

			var runErr *sim.RunError
			Expect(err).To(BeAssignableToTypeOf(runErr))
			runErr = err.(*sim.RunError)
			Expect(runErr.Vehicle).To(Equal("broken"))
			Expect(runErr.Stage).To(Equal(stage.A))
			Expect(err).To(MatchError(dynamo.ErrInvalidState))
		})
	})

	It("stops between stages when the context is cancelled", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := simulator.Run(cancelled, resolved(resolve.Selection{Vehicles: []string{"dodge"}}))
		Expect(err).To(MatchError(context.Canceled))
	})
})
