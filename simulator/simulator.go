// Package simulator drives the tick loop, wiring the domain network, the
// per-street lowlevel stores, and the movement/consistency/signal routines
// together. Grounded on Simulator.h and task/simulet.go's run loop shape.
package simulator

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tsaglam/microsim-go/clock"
	"github.com/tsaglam/microsim-go/config"
	"github.com/tsaglam/microsim-go/domain"
	"github.com/tsaglam/microsim-go/heuristic"
	"github.com/tsaglam/microsim-go/lowlevel"
	"github.com/tsaglam/microsim-go/routines"
)

var log = logrus.WithField("component", "simulator")

// Simulator owns one run's mutable state: the materialized World and the
// clock tracking how many ticks have run.
type Simulator struct {
	World *routines.World
	Clock *clock.Clock

	parallelThreshold int
}

// New materializes network into a World using the store kind control
// selects, seeds initial signal timing from the isolated route
// projection, and sets the green-wave debug mode from control.GreenWave.
func New(network *domain.Network, control config.Control) (*Simulator, error) {
	newStore := func(s *domain.Street) lowlevel.Store {
		var inner lowlevel.Store
		switch control.StoreKind {
		case config.StoreBucket:
			inner = lowlevel.NewBucketStore(s.Lanes, s.Length, s.SpeedLimit)
		default:
			inner = lowlevel.NewNaiveStore(s.Lanes, s.Length, s.SpeedLimit)
		}
		return lowlevel.NewSignalOverlay(inner)
	}

	est := heuristic.Project(network, control.Step)
	var signalErr error
	switch control.SignalStrategy {
	case config.SignalMaxPressure:
		signalErr = heuristic.MaxPressureDurations(network, est, maxSignalDuration(network))
	default:
		signalErr = heuristic.WeightedByProjectedCrossings(network, est, maxSignalDuration(network))
	}
	if signalErr != nil {
		return nil, fmt.Errorf("simulator: seeding initial signal timing: %w", signalErr)
	}

	w, err := routines.NewWorld(network, newStore)
	if err != nil {
		return nil, err
	}
	w.GreenWave = control.GreenWave
	routines.InitSignals(w)

	return &Simulator{
		World:             w,
		Clock:             clock.New(),
		parallelThreshold: control.ParallelThreshold,
	}, nil
}

func maxSignalDuration(network *domain.Network) int {
	max := domain.MinSignalDuration
	for _, j := range network.Junctions() {
		for _, sig := range j.Signals {
			if sig.Duration > max {
				max = sig.Duration
			}
		}
	}
	return max
}

// Step runs one tick: the signal advance pass, the IDM/MOBIL movement
// pass, and the consistency/handoff pass, in that order, then advances the
// clock. Matches Simulator.h's computeStep(): signalingRoutine.perform(),
// then idmRoutine.perform(), then consistencyRoutine.perform().
func (s *Simulator) Step(ctx context.Context) error {
	if err := routines.SignalRoutine(ctx, s.World); err != nil {
		return fmt.Errorf("simulator: signal routine: %w", err)
	}
	if err := routines.MovementRoutine(ctx, s.World, s.parallelThreshold); err != nil {
		return fmt.Errorf("simulator: movement routine: %w", err)
	}
	routines.ConsistencyRoutine(s.World)
	s.Clock.Advance()
	return nil
}

// Run executes steps ticks, logging progress every 100 ticks.
func (s *Simulator) Run(ctx context.Context, steps int) error {
	for i := 0; i < steps; i++ {
		if err := s.Step(ctx); err != nil {
			return err
		}
		if i%100 == 0 {
			log.WithField("tick", s.Clock.Step).Debug("simulation progress")
		}
	}
	return nil
}
