package routines

import (
	"context"
	"math"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/tsaglam/microsim-go/domain"
	"github.com/tsaglam/microsim-go/lowlevel"
)

var log = logrus.WithField("component", "routines")

// laneChangeThreshold is the minimum MOBIL indicator improvement required
// to justify a lane change, grounded on IDMRoutine.h's changeThreshold.
const laneChangeThreshold = 1.0

// MovementRoutine runs the two-pass IDM/MOBIL movement step: pass 1
// computes every car's base car-following acceleration in its current
// lane; pass 2 evaluates a lane change against that baseline and writes
// each car's pending next state. A global barrier separates the passes so
// pass 2 never reads a pass-1 result that hasn't been written yet,
// mirroring IDMRoutine.h's two explicit phases.
//
// Streets run in parallel via errgroup; within a street, vehicles also run
// in parallel once the street holds more than parallelThreshold cars,
// generalizing task/simulet.go's flat worker-pool fan-out into a nested
// errgroup.
func MovementRoutine(ctx context.Context, w *World, parallelThreshold int) error {
	streets := w.Network.Streets()

	g, ctx := errgroup.WithContext(ctx)
	for _, s := range streets {
		s := s
		g.Go(func() error { return computeBaseAccelerations(w.Store(s.ID), parallelThreshold) })
	}
	if err := g.Wait(); err != nil {
		return err
	}

	g, ctx = errgroup.WithContext(ctx)
	for _, s := range streets {
		s := s
		g.Go(func() error { return evaluateLaneChangesAndMove(w, s, parallelThreshold) })
	}
	return g.Wait()
}

func computeBaseAccelerations(store lowlevel.Store, parallelThreshold int) error {
	cars := store.AllIterable()
	limit := store.SpeedLimit()
	compute := func(c *lowlevel.Car) {
		front := store.GetNextInFront(c, 0)
		c.SetNextBaseAcceleration(idmAcceleration(c, front, limit))
	}
	if len(cars) <= parallelThreshold {
		for _, c := range cars {
			compute(c)
		}
		return nil
	}
	g := new(errgroup.Group)
	for _, c := range cars {
		c := c
		g.Go(func() error { compute(c); return nil })
	}
	return g.Wait()
}

// idmAcceleration is the Intelligent Driver Model acceleration law,
// grounded on IDMRoutine.h's getAcceleration. front is nil when there is
// no leader (open road), which the model treats as an infinite gap. The
// free-flow term targets whichever is lower, the vehicle's own target
// velocity or the street's speed limit, so a vehicle never accelerates
// past a street it's not allowed to.
func idmAcceleration(c *lowlevel.Car, front *lowlevel.Car, speedLimit float64) float64 {
	v := c.Vehicle
	targetVelocity := math.Min(v.TargetVelocity, speedLimit)
	free := v.MaxAcceleration * (1 - math.Pow(c.Velocity/targetVelocity, 4))
	if front == nil {
		return free
	}
	gap := front.Distance - front.Length() - c.Distance
	gap = lo.Clamp(gap, 1e-3, math.Inf(1))
	deltaV := c.Velocity - front.Velocity
	desiredGap := v.MinDistance + c.Velocity*v.TargetHeadway + (c.Velocity*deltaV)/v.AccelDivisor
	return free - v.MaxAcceleration*math.Pow(desiredGap/gap, 2)
}

func evaluateLaneChangesAndMove(w *World, s *domain.Street, parallelThreshold int) error {
	store := w.Store(s.ID)
	cars := store.AllIterable()
	limit := store.SpeedLimit()
	move := func(c *lowlevel.Car) {
		lane, accel := decideLane(store, s, c, limit)
		velocity := math.Max(0, c.Velocity+accel)
		distance := c.Distance + velocity
		c.SetNext(lane, distance, velocity)
	}
	if len(cars) <= parallelThreshold {
		for _, c := range cars {
			move(c)
		}
		return nil
	}
	g := new(errgroup.Group)
	for _, c := range cars {
		c := c
		g.Go(func() error { move(c); return nil })
	}
	return g.Wait()
}

// decideLane applies the MOBIL lane-change criterion: for each adjacent
// lane with enough space to enter, compute the indicator (the ego's own
// acceleration gain plus the politeness-weighted acceleration change
// imposed on the old and new followers) and change only if it clears
// laneChangeThreshold. The two lane offsets are tried in a fixed order and
// only a strictly greater indicator replaces the current best, so an
// exact tie keeps whichever offset was tried first; IDMRoutine.h's
// evaluateLaneChange doesn't specify a tie-break itself.
func decideLane(store lowlevel.Store, s *domain.Street, c *lowlevel.Car, speedLimit float64) (int, float64) {
	ownAccel := c.NextBaseAcceleration()
	bestLane := c.Lane
	bestAccel := ownAccel
	bestIndicator := 0.0

	for _, offset := range []int{1, -1} {
		lane := c.Lane + offset
		if lane < 0 || lane >= store.LaneCount() {
			continue
		}
		newFront := store.GetNextInFront(c, offset)
		newBack := store.GetNextBehind(c, offset)
		if !hasSpace(c, newFront, newBack) {
			continue
		}
		oldBack := store.GetNextBehind(c, 0)

		newSelfAccel := idmAcceleration(c, newFront, speedLimit)
		indicator := (newSelfAccel - ownAccel) + c.Vehicle.Politeness*followerDelta(store, c, offset, newBack, oldBack, speedLimit)

		if indicator > laneChangeThreshold && indicator > bestIndicator {
			bestIndicator = indicator
			bestLane = lane
			bestAccel = newSelfAccel
		}
	}
	return bestLane, bestAccel
}

// hasSpace is MOBIL's safety gate, grounded on IDMRoutine.h's
// computeIsSpace: a lane change is only a candidate at all if it leaves at
// least minDistance between the ego and the new-lane predecessor, and at
// least minDistance between the new-lane follower and the ego. Without
// this gate the indicator check alone can accept a change into a gap the
// ego or the follower can't physically fit.
func hasSpace(c *lowlevel.Car, newFront, newBack *lowlevel.Car) bool {
	if newFront != nil {
		gap := newFront.Distance - newFront.Length() - c.Distance
		if gap < c.Vehicle.MinDistance {
			return false
		}
	}
	if newBack != nil {
		gap := c.Distance - c.Length() - newBack.Distance
		if gap < newBack.Vehicle.MinDistance {
			return false
		}
	}
	return true
}

// followerDelta estimates the combined acceleration change MOBIL's
// courtesy term charges to the new lane's follower (who must brake to let
// the ego in) and credits to the old lane's follower (who is relieved of
// the ego ahead of it).
func followerDelta(store lowlevel.Store, c *lowlevel.Car, offset int, newBack, oldBack *lowlevel.Car, speedLimit float64) float64 {
	delta := 0.0
	if newBack != nil {
		before := idmAcceleration(newBack, store.GetNextInFront(newBack, 0), speedLimit)
		after := idmAcceleration(newBack, c, speedLimit)
		delta += after - before
	}
	if oldBack != nil {
		before := idmAcceleration(oldBack, c, speedLimit)
		front := store.GetNextInFront(c, 0)
		after := idmAcceleration(oldBack, front, speedLimit)
		delta += after - before
	}
	return delta
}
