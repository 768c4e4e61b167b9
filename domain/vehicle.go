package domain

import (
	"fmt"
	"math"
)

// Position locates a vehicle on the network: a street and a place on it.
// Mirrors domainmodel/Vehicle::Position from the reference implementation.
type Position struct {
	StreetID int
	Lane     int
	Distance float64
}

// Vehicle is the persistent, identity-carrying half of a simulated car: the
// static IDM parameters and the fixed cyclic turn sequence that the
// consistency routine consults on every street handoff. The per-tick
// dynamic state (current/pending lane, distance, velocity) lives in
// lowlevel.Car, which references a Vehicle by pointer for its static reads.
type Vehicle struct {
	ID         int
	ExternalID int

	TargetVelocity     float64
	MaxAcceleration    float64
	TargetDeceleration float64
	MinDistance        float64
	TargetHeadway      float64
	Politeness         float64
	Length             float64

	// AccelDivisor is 2*sqrt(MaxAcceleration*TargetDeceleration), precomputed
	// once since every IDM evaluation of this vehicle needs it.
	AccelDivisor float64

	Route       []TurnDirection
	routeCursor int

	StartPosition Position

	// TravelDistance accumulates nextVelocity over every tick the vehicle's
	// lowlevel.Car has been simulated; lowlevel.Car.Commit adds to it each tick.
	TravelDistance float64
}

// NewVehicle validates and constructs a Vehicle. politeness must be in
// [0,1]; route must be non-empty; lane/distance are not validated against
// the starting street here (the scenario loader does that once streets
// exist).
func NewVehicle(
	id, externalID int,
	targetVelocity, maxAcceleration, targetDeceleration, minDistance, targetHeadway, politeness float64,
	route []TurnDirection,
	start Position,
) (*Vehicle, error) {
	if politeness < 0 || politeness > 1 {
		return nil, fmt.Errorf("vehicle %d: politeness %v out of [0,1]", externalID, politeness)
	}
	if len(route) == 0 {
		return nil, fmt.Errorf("vehicle %d: empty route", externalID)
	}
	if start.Distance < 0 {
		return nil, fmt.Errorf("vehicle %d: negative starting distance %v", externalID, start.Distance)
	}
	return &Vehicle{
		ID:                 id,
		ExternalID:         externalID,
		TargetVelocity:     targetVelocity,
		MaxAcceleration:    maxAcceleration,
		TargetDeceleration: targetDeceleration,
		MinDistance:        minDistance,
		TargetHeadway:      targetHeadway,
		Politeness:         politeness,
		Length:             VehicleLength,
		AccelDivisor:       2 * math.Sqrt(maxAcceleration*targetDeceleration),
		Route:              route,
		StartPosition:      start,
	}, nil
}

// NextTurn returns the vehicle's next turn token and advances the cursor
// cyclically: once the route is exhausted it repeats from the start.
func (v *Vehicle) NextTurn() TurnDirection {
	next := v.Route[v.routeCursor]
	v.routeCursor = (v.routeCursor + 1) % len(v.Route)
	return next
}

// VehicleLength is the fixed length assigned to every vehicle (and to the
// signal overlay's synthetic traffic-light vehicle).
const VehicleLength = 5.0

// TrafficLightOffset is the distance back from a street's end at which a
// red signal's phantom vehicle is pinned.
const TrafficLightOffset = 17.5

// MinSignalDuration is the minimum number of ticks a junction phase may last.
const MinSignalDuration = 5

// MaxLanes is the maximum number of lanes a street may have in one direction.
const MaxLanes = 3
