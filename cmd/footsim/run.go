package main

import (
	"fmt"
	"math"

	"github.com/milk9111/footfall/ecs"
	"github.com/milk9111/footfall/ecs/entity"
	"github.com/milk9111/footfall/ecs/system"
	"github.com/milk9111/footfall/footstep"
	"github.com/milk9111/footfall/logging"
	"github.com/milk9111/footfall/prefabs"
	"github.com/milk9111/footfall/sfx"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type runOptions struct {
	sim        string
	prefab     string
	dt         float64
	duration   float64
	clipLength float64
	json       bool
	debug      bool
}

// report summarizes one simulation.
type report struct {
	Steps   int
	Fired   int
	Dropped int
	Plays   []sfx.Play
}

func newRunCmd() *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Tick a prefab at a fixed rate and log every footstep",
		Long: `Run loads a simulation file (or a bare prefab) and ticks it with a fixed
delta. The output is a headless recorder that simulates clip length, so
footsteps that land while a clip is still playing are reported as dropped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.New(logging.Options{Debug: opts.debug, JSON: opts.json, Writer: cmd.OutOrStdout()})
			rep, err := simulate(opts, log)
			if err != nil {
				return err
			}
			log.Info().
				Int("steps", rep.Steps).
				Int("fired", rep.Fired).
				Int("dropped", rep.Dropped).
				Msg("simulation finished")
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.sim, "sim", "sim_walk.yaml", "simulation file in prefabs/")
	cmd.Flags().StringVar(&opts.prefab, "prefab", "", "prefab to run, overrides the simulation prefab")
	cmd.Flags().Float64Var(&opts.dt, "dt", 0, "tick delta in seconds, overrides the simulation")
	cmd.Flags().Float64Var(&opts.duration, "duration", 0, "simulated seconds, overrides the simulation")
	cmd.Flags().Float64Var(&opts.clipLength, "clip-length", 0, "fixed clip length in seconds; 0 decodes the clips")
	cmd.Flags().BoolVar(&opts.json, "json", false, "log JSON lines")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log every tick decision")
	return cmd
}

func resolveSimulation(opts runOptions) (prefabs.SimulationSpec, error) {
	var sim prefabs.SimulationSpec
	if opts.sim != "" && opts.prefab == "" {
		spec, err := prefabs.LoadSimulationSpec(opts.sim)
		if err != nil {
			return sim, err
		}
		sim = spec
	}
	if opts.prefab != "" {
		sim.Name = opts.prefab
		sim.Prefab = opts.prefab
	}
	if opts.dt > 0 {
		sim.Dt = opts.dt
	}
	if opts.duration > 0 {
		sim.Duration = opts.duration
	}
	if opts.clipLength > 0 {
		sim.ClipLength = opts.clipLength
	}

	if sim.Prefab == "" {
		return sim, fmt.Errorf("simulation %q names no prefab", sim.Name)
	}
	if sim.Dt <= 0 {
		sim.Dt = 1.0 / 60
	}
	if sim.Duration <= 0 {
		sim.Duration = 5
	}
	return sim, nil
}

func simulate(opts runOptions, log zerolog.Logger) (report, error) {
	sim, err := resolveSimulation(opts)
	if err != nil {
		return report{}, err
	}

	physics := system.NewPhysicsSystem()
	var recorder *sfx.Recorder
	env := entity.Env{
		Output: func(clips []footstep.Clip) (footstep.Output, error) {
			if sim.ClipLength > 0 {
				recorder = sfx.NewRecorder(nil, sim.ClipLength)
				return recorder, nil
			}
			bank, err := sfx.LoadBank(clips)
			if err != nil {
				return nil, err
			}
			recorder = sfx.NewRecorder(bank, 0)
			return recorder, nil
		},
		Physics: physics,
		Log:     logging.Component(log, "entity"),
	}

	w := ecs.NewWorld()
	e, err := entity.BuildEntity(w, sim.Prefab, env)
	if err != nil {
		return report{}, err
	}
	if recorder == nil {
		return report{}, fmt.Errorf("prefab %q has no footstep component", sim.Prefab)
	}

	sched := ecs.NewScheduler(
		system.NewTrackSystem(logging.Component(log, "track")),
		system.NewControllerSystem(),
		physics,
		system.NewFootstepSystem(logging.Component(log, "footstep")),
	)

	log.Info().
		Str("simulation", sim.Name).
		Str("prefab", sim.Prefab).
		Float64("dt", sim.Dt).
		Float64("duration", sim.Duration).
		Msg("simulation started")

	steps := int(math.Round(sim.Duration / sim.Dt))
	held := make([]bool, len(sim.Holds))
	rep := report{Steps: steps}
	now := 0.0
	for i := 0; i < steps; i++ {
		for h, hold := range sim.Holds {
			if !held[h] && hold.At <= now+sim.Dt/2 {
				held[h] = true
				recorder.Hold(hold.Duration)
				log.Debug().Float64("time", now).Float64("duration", hold.Duration).Msg("output held")
			}
		}

		sched.Update(w, sim.Dt)
		recorder.Advance(sim.Dt)
		now += sim.Dt

		for _, ev := range w.Events().Drain() {
			switch data := ev.Data.(type) {
			case system.FootstepEvent:
				rep.Fired++
				log.Info().
					Float64("time", data.Time).
					Str("clip", data.Event.Clip.Name).
					Float64("pitch", data.Event.Pitch).
					Msg("footstep")
			case system.ConsistencyEvent:
				rep.Dropped++
				log.Warn().
					Float64("time", data.Time).
					Float64("cooldown", data.Cooldown).
					Msg("footstep dropped while playing")
			}
		}

		if snap, ok := system.Snapshot(w, e); ok && log.GetLevel() <= zerolog.DebugLevel {
			log.Debug().
				Float64("time", now).
				Floats64("velocity", snap.Velocity[:]).
				Bool("walking", snap.Walking).
				Bool("sprinting", snap.Sprinting).
				Bool("falling", snap.Falling).
				Float64("cooldown", snap.Cooldown).
				Stringer("state", snap.State).
				Msg("tick")
		}
	}

	rep.Plays = recorder.Plays()
	return rep, nil
}
