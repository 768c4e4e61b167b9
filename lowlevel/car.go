// Package lowlevel implements the per-street spatial index: the
// sorted-vector and bucket street stores, and the signal overlay that
// synthesizes a phantom stop-line vehicle when a street is red.
package lowlevel

import "github.com/tsaglam/microsim-go/domain"

// Car is the dynamic half of a simulated vehicle: current
// lane/distance/velocity, and the pending next-* slots the IDM/lane-change
// routine writes during a tick and Commit applies at the tick boundary.
// Car references its static parameters through Vehicle rather than
// copying them, since current and pending state both belong to the same
// vehicle record and only Commit crosses between them.
type Car struct {
	Vehicle *domain.Vehicle

	// current, read by every other vehicle's computation this tick.
	Lane     int
	Distance float64
	Velocity float64

	// pending, written during this tick, invisible to other vehicles until Commit.
	nextBaseAcceleration float64
	nextLane             int
	nextDistance         float64
	nextVelocity         float64
}

// V satisfies container.IHasVAndLength, letting Car sit in the reference
// container package's generic position-ordered list (NaiveStore's storage).
func (c *Car) V() float64 { return c.Velocity }

// NewCar places v at (lane, distance, velocity) and returns its Car.
func NewCar(v *domain.Vehicle, lane int, distance, velocity float64) *Car {
	if lane < 0 {
		panic("lowlevel: negative lane")
	}
	if distance < 0 {
		panic("lowlevel: negative distance")
	}
	return &Car{Vehicle: v, Lane: lane, Distance: distance, Velocity: velocity}
}

// ID is the vehicle's stable internal identity.
func (c *Car) ID() int { return c.Vehicle.ID }

// ExternalID is the vehicle's scenario-facing identity, used as the sort
// tie-breaker: (distance ascending, externalID descending).
func (c *Car) ExternalID() int { return c.Vehicle.ExternalID }

// Length is the vehicle's length.
func (c *Car) Length() float64 { return c.Vehicle.Length }

// SetNextBaseAcceleration stores pass 1's result, read by every other
// vehicle's pass 2 evaluation of this vehicle as a follower.
func (c *Car) SetNextBaseAcceleration(a float64) { c.nextBaseAcceleration = a }

// NextBaseAcceleration reads pass 1's result.
func (c *Car) NextBaseAcceleration() float64 { return c.nextBaseAcceleration }

// SetNext stores pass 2's result: the lane, distance and velocity this
// vehicle will have once Commit runs.
func (c *Car) SetNext(lane int, distance, velocity float64) {
	c.nextLane = lane
	c.nextDistance = distance
	c.nextVelocity = velocity
}

// Commit copies pending state into current state and accumulates travel
// distance, matching LowLevelCar::applyUpdates in the reference
// implementation. Called once per tick by the street store, never directly
// by the IDM/lane-change routine.
func (c *Car) Commit() {
	if c.nextVelocity < 0 {
		panic("lowlevel: commit with negative next velocity")
	}
	c.Lane = c.nextLane
	c.Distance = c.nextDistance
	c.Velocity = c.nextVelocity
	c.Vehicle.TravelDistance += c.nextVelocity
}

// TrafficLightCar builds the synthetic phantom vehicle a signal overlay
// pins at the stop line of a red street: stationary, in lane 0, the same
// length as a real vehicle.
func TrafficLightCar(streetLength float64) *Car {
	return &Car{
		Vehicle: &domain.Vehicle{
			ID:         -1,
			ExternalID: -1,
			Length:     domain.VehicleLength,
		},
		Lane:     0,
		Distance: streetLength - domain.TrafficLightOffset,
		Velocity: 0,
	}
}
