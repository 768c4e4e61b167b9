// Package heuristic implements the isolated route-projection estimator and
// the initial traffic-light strategies built on top of it, grounded on
// Optimizer.h and InitialTrafficLightStrategies.h.
package heuristic

import (
	"github.com/tsaglam/microsim-go/domain"
)

// maxProjectedStreets bounds how many streets a single vehicle's
// projection will walk, guarding against a malformed network whose cyclic
// route never lets the vehicle catch up to the horizon. The scenario
// loader is expected to rule this out, but the estimator runs before any
// simulation tick and shouldn't trust that unconditionally.
const maxProjectedStreets = 100000

// Estimate is the result of projecting every vehicle's route in isolation,
// ignoring all other traffic and every signal: how many times each street
// is projected to be entered within the horizon. Used only to weight
// initial signal phase durations.
type Estimate struct {
	StreetCrossings map[int]int
}

// Project walks every vehicle's fixed turn sequence at its target velocity,
// ignoring interaction with other vehicles and signal state entirely, for
// horizonTicks ticks (one tick = one second), and tallies how many times
// each street is entered: the starting street counts once, and so does a
// street entered but not cleared before the horizon. Grounded on
// Optimizer.h's per-vehicle isolated
// routing pass used to bootstrap priorities before the first real tick.
func Project(network *domain.Network, horizonTicks int) *Estimate {
	est := &Estimate{StreetCrossings: make(map[int]int)}
	for _, v := range network.Vehicles() {
		projectVehicle(network, v, horizonTicks, est)
	}
	return est
}

func projectVehicle(network *domain.Network, v *domain.Vehicle, horizonTicks int, est *Estimate) {
	street := network.Street(v.StartPosition.StreetID)
	if street == nil || v.TargetVelocity <= 0 {
		return
	}
	distance := v.StartPosition.Distance
	remaining := horizonTicks
	cursor := 0

	for i := 0; i < maxProjectedStreets && remaining > 0; i++ {
		est.StreetCrossings[street.ID]++

		ticksToClear := int((street.Length - distance) / v.TargetVelocity)
		if ticksToClear < 1 {
			ticksToClear = 1
		}
		if ticksToClear > remaining {
			return
		}
		remaining -= ticksToClear

		turn := v.Route[cursor%len(v.Route)]
		cursor++
		next, err := network.DestinationForTurn(street, turn)
		if err != nil {
			return
		}
		street = next
		distance = 0
	}
}
