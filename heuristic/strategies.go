package heuristic

import (
	"github.com/tsaglam/microsim-go/domain"
)

// InitialTrafficLightsAllFive sets every junction's every phase duration to
// domain.MinSignalDuration, the naive baseline strategy from
// InitialTrafficLightStrategies.h against which priority-weighted signal
// timing is compared.
func InitialTrafficLightsAllFive(network *domain.Network) error {
	for _, j := range network.Junctions() {
		durations := make([]int, len(j.Signals))
		for i := range durations {
			durations[i] = domain.MinSignalDuration
		}
		if err := j.SetDurations(durations); err != nil {
			return err
		}
	}
	return nil
}

// WeightedByProjectedCrossings retunes every junction's phase durations in
// proportion to how busy its incoming streets are projected to be,
// grounded on InitialTrafficLightStrategies.h's crossing-count-weighted
// strategy: a phase serving a heavily-traveled street gets more of the
// junction's cycle than one serving a quiet street, within
// [domain.MinSignalDuration, maxPhaseDuration].
func WeightedByProjectedCrossings(network *domain.Network, est *Estimate, maxPhaseDuration int) error {
	for _, j := range network.Junctions() {
		weights := make([]int, len(j.Signals))
		total := 0
		for i, sig := range j.Signals {
			slot := j.Incoming[sig.Direction]
			w := 1
			if slot.Connected {
				w += est.StreetCrossings[slot.StreetID]
			}
			weights[i] = w
			total += w
		}
		durations := make([]int, len(j.Signals))
		for i, w := range weights {
			d := w * maxPhaseDuration / total
			if d < domain.MinSignalDuration {
				d = domain.MinSignalDuration
			}
			if d > maxPhaseDuration {
				d = maxPhaseDuration
			}
			durations[i] = d
		}
		if err := j.SetDurations(durations); err != nil {
			return err
		}
	}
	return nil
}
