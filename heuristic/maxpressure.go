package heuristic

import (
	"github.com/tsaglam/microsim-go/domain"
	"github.com/tsaglam/microsim-go/utils/container"
)

// MaxPressureDurations retunes every junction's phase durations by ranking
// phases with a priority queue keyed on projected pressure (how busy the
// phase's street is expected to be), grounded on
// entity/junction/trafficlight/max_pressure.go's core idea of favoring
// whichever phase relieves the most queued traffic, adapted away from that
// file's protobuf-typed lane/phase representation and onto
// heuristic.Estimate's projected crossing counts. The busiest phase gets
// maxPhaseDuration; every other phase is scaled down proportionally to its
// own pressure, floored at domain.MinSignalDuration.
func MaxPressureDurations(network *domain.Network, est *Estimate, maxPhaseDuration int) error {
	for _, j := range network.Junctions() {
		pq := container.NewPriorityQueue[int]() // Value is the phase index, priority is -pressure
		for i, sig := range j.Signals {
			slot := j.Incoming[sig.Direction]
			pressure := 0
			if slot.Connected {
				pressure = est.StreetCrossings[slot.StreetID]
			}
			pq.Push(i, -float64(pressure))
		}
		pq.Heapify()

		durations := make([]int, len(j.Signals))
		topPressure := -1.0
		for pq.Len() > 0 {
			phase, negPressure := pq.HeapPop()
			pressure := -negPressure
			if topPressure < 0 {
				topPressure = pressure
			}
			d := domain.MinSignalDuration
			if topPressure > 0 {
				d = int(pressure / topPressure * float64(maxPhaseDuration))
			}
			if d < domain.MinSignalDuration {
				d = domain.MinSignalDuration
			}
			if d > maxPhaseDuration {
				d = maxPhaseDuration
			}
			durations[phase] = d
		}
		if err := j.SetDurations(durations); err != nil {
			return err
		}
	}
	return nil
}
