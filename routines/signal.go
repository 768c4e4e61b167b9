package routines

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tsaglam/microsim-go/domain"
)

// SignalRoutine advances every junction's signal program by one tick,
// grounded on routines/TrafficLightRoutine.h. Junctions are independent of
// each other, so this runs one goroutine per junction (embarrassingly
// parallel).
func SignalRoutine(ctx context.Context, w *World) error {
	g, _ := errgroup.WithContext(ctx)
	for _, j := range w.Network.Junctions() {
		j := j
		g.Go(func() error {
			if _, changed := j.Advance(); changed {
				applyPhase(w, j)
			}
			return nil
		})
	}
	return g.Wait()
}

// InitSignals sets every junction's incoming streets to the red/green
// state implied by its first phase. Called once, at world construction,
// before any tick runs.
func InitSignals(w *World) {
	for _, j := range w.Network.Junctions() {
		applyPhase(w, j)
	}
}

func applyPhase(w *World, j *domain.Junction) {
	current := j.CurrentSignal().Direction
	for d, slot := range j.Incoming {
		if !slot.Connected {
			continue
		}
		store := w.Store(slot.StreetID)
		if store == nil {
			continue
		}
		red := domain.CardinalDirection(d) != current
		if w.GreenWave {
			red = false
		}
		store.SetSignal(red)
	}
}
