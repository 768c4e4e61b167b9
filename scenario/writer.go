package scenario

import (
	"github.com/tsaglam/microsim-go/lowlevel"
	"github.com/tsaglam/microsim-go/routines"
)

// BuildResult reports every vehicle's final position (resolved back to
// scenario road/direction vocabulary) and the observed crossing count of
// every street that received at least one handoff, for the given number of
// simulated steps. Streets with no handoff are not listed.
func BuildResult(l *Loaded, w *routines.World, steps int) Result {
	result := Result{Steps: steps}

	location := make(map[int]struct {
		streetID int
		car      *lowlevel.Car
	}, len(l.Network.Vehicles()))
	for streetID, store := range w.Stores {
		for _, c := range store.AllIterable() {
			location[c.ID()] = struct {
				streetID int
				car      *lowlevel.Car
			}{streetID, c}
		}
	}

	for _, v := range l.Network.Vehicles() {
		loc, onNetwork := location[v.ID]
		streetID := v.StartPosition.StreetID
		lane := v.StartPosition.Lane
		distance := v.StartPosition.Distance
		if onNetwork {
			streetID = loc.streetID
			lane = loc.car.Lane
			distance = loc.car.Distance
		}
		road, direction, _ := l.RoadAndDirection(streetID)
		result.Vehicles = append(result.Vehicles, VehicleResult{
			ID:             v.ExternalID,
			FinalRoad:      road,
			FinalDirection: direction,
			FinalLane:      lane,
			FinalDistance:  distance,
			TravelDistance: v.TravelDistance,
		})
	}

	for streetID, count := range w.Crossings {
		road, direction, ok := l.RoadAndDirection(streetID)
		if !ok {
			continue
		}
		result.Streets = append(result.Streets, StreetResult{
			Road:             road,
			Direction:        direction,
			VehicleCrossings: count,
		})
	}

	return result
}
