package routines

import "github.com/tsaglam/microsim-go/lowlevel"

// ConsistencyRoutine commits every street's pending state and hands
// vehicles that have driven past their street's end off to their next
// street, grounded on routines/ConsistencyRoutine.h. It runs in three
// strictly ordered passes so that a vehicle handed off this tick is never
// mistaken for already having been beyond its new street's end:
//
//  1. every street commits pending state, re-sorts, and splits off its
//     beyond set (Store.UpdateAndRestoreConsistency)
//  2. every street's beyond set is resolved to a destination street and
//     staged there (Store.InsertCar), without incorporating yet
//  3. every street incorporates whatever was staged in pass 2
//     (Store.IncorporateInsertedCars)
//
// A vehicle staged in pass 2 only becomes visible to queries after pass 3,
// so it cannot be re-detected as beyond its destination street within the
// same tick even if its remaining distance overshoots that street too.
func ConsistencyRoutine(w *World) {
	for _, store := range w.Stores {
		store.UpdateAndRestoreConsistency()
	}

	for _, s := range w.Network.Streets() {
		store := w.Store(s.ID)
		for _, c := range store.BeyondsIterable() {
			dest, err := w.Network.DestinationOf(s, c.Vehicle)
			if err != nil {
				panic("routines: " + err.Error())
			}
			overshoot := c.Distance - s.Length
			destStore := w.Store(dest.ID)
			lane := c.Lane
			if lane >= destStore.LaneCount() {
				lane = destStore.LaneCount() - 1
			}
			destStore.InsertCar(lowlevel.NewCar(c.Vehicle, lane, overshoot, c.Velocity))
			w.Crossings[dest.ID]++
		}
		store.RemoveBeyonds()
	}

	for _, store := range w.Stores {
		store.IncorporateInsertedCars()
	}
}
