package scenario

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/tsaglam/microsim-go/domain"
)

// streetRef identifies which of a road's two materialized streets a
// street ID corresponds to, so Loaded can translate back from internal
// street IDs to a scenario's (road, direction) vocabulary when reporting
// results.
type streetRef struct {
	road      int
	direction string // "AtoB" or "BtoA"
}

// Loaded is a fully built Network plus the bookkeeping needed to translate
// between scenario IDs and internal ones.
type Loaded struct {
	Network *domain.Network

	streetsByRoad map[int]map[string]int // road -> direction -> street ID
	refByStreet   map[int]streetRef
}

// Load validates and builds a Network from f, returning descriptive errors
// for any malformed reference, since this is untrusted input and a bad
// scenario file should fail to load rather than panic mid-run.
func Load(f *File) (*Loaded, error) {
	network := domain.NewNetwork()

	for _, jd := range f.Junctions {
		sigs, err := buildSignals(jd.Signals)
		if err != nil {
			return nil, fmt.Errorf("junction %d: %w", jd.ID, err)
		}
		j, err := domain.NewJunction(jd.ID, jd.X, jd.Y, sigs)
		if err != nil {
			return nil, err
		}
		if err := network.AddJunction(j); err != nil {
			return nil, err
		}
	}

	l := &Loaded{
		Network:       network,
		streetsByRoad: make(map[int]map[string]int, len(f.Roads)),
		refByStreet:   make(map[int]streetRef, len(f.Roads)*2),
	}

	nextStreetID := 0
	for _, rd := range f.Roads {
		a := network.Junction(rd.JunctionA)
		b := network.Junction(rd.JunctionB)
		if a == nil {
			return nil, fmt.Errorf("road %d: unknown junction A %d", rd.ID, rd.JunctionA)
		}
		if b == nil {
			return nil, fmt.Errorf("road %d: unknown junction B %d", rd.ID, rd.JunctionB)
		}
		length := math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
		speedLimit := rd.SpeedLimitKMH / 3.6
		dirAtoB := directionBetween(a, b)
		dirBtoA := dirAtoB.Rotate(2)

		aToB, err := domain.NewStreet(nextStreetID, rd.Lanes, length, speedLimit, rd.JunctionA, rd.JunctionB)
		if err != nil {
			return nil, err
		}
		if err := network.AddStreet(aToB, dirAtoB, dirBtoA); err != nil {
			return nil, err
		}
		l.register(rd.ID, "AtoB", nextStreetID)
		nextStreetID++

		bToA, err := domain.NewStreet(nextStreetID, rd.Lanes, length, speedLimit, rd.JunctionB, rd.JunctionA)
		if err != nil {
			return nil, err
		}
		if err := network.AddStreet(bToA, dirBtoA, dirAtoB); err != nil {
			return nil, err
		}
		l.register(rd.ID, "BtoA", nextStreetID)
		nextStreetID++
	}

	for _, j := range network.Junctions() {
		if err := j.DropDisconnectedSignals(); err != nil {
			return nil, err
		}
	}

	for i, vd := range f.Vehicles {
		streetID, ok := l.StreetID(vd.StartRoad, vd.StartDirection)
		if !ok {
			return nil, fmt.Errorf("vehicle %d: unknown start road/direction %d/%s", vd.ID, vd.StartRoad, vd.StartDirection)
		}
		route, err := buildRoute(vd.Route)
		if err != nil {
			return nil, fmt.Errorf("vehicle %d: %w", vd.ID, err)
		}
		v, err := domain.NewVehicle(i, vd.ID,
			vd.TargetVelocityKMH/3.6, vd.MaxAcceleration, vd.TargetDeceleration, vd.MinDistance, vd.TargetHeadway, vd.Politeness,
			route, domain.Position{StreetID: streetID, Lane: vd.StartLane, Distance: vd.StartDistance})
		if err != nil {
			return nil, err
		}
		if err := network.AddVehicle(v); err != nil {
			return nil, err
		}
	}

	return l, nil
}

func (l *Loaded) register(road int, direction string, streetID int) {
	if l.streetsByRoad[road] == nil {
		l.streetsByRoad[road] = make(map[string]int, 2)
	}
	l.streetsByRoad[road][direction] = streetID
	l.refByStreet[streetID] = streetRef{road: road, direction: direction}
}

// StreetID resolves a scenario (road, direction) pair to an internal
// street ID.
func (l *Loaded) StreetID(road int, direction string) (int, bool) {
	byDir, ok := l.streetsByRoad[road]
	if !ok {
		return 0, false
	}
	id, ok := byDir[direction]
	return id, ok
}

// RoadAndDirection resolves an internal street ID back to its scenario
// (road, direction) pair.
func (l *Loaded) RoadAndDirection(streetID int) (int, string, bool) {
	ref, ok := l.refByStreet[streetID]
	return ref.road, ref.direction, ok
}

var directionNames = map[string]domain.CardinalDirection{
	"N": domain.North, "E": domain.East, "S": domain.South, "W": domain.West,
}

func buildSignals(defs []SignalDef) ([]domain.Signal, error) {
	out := make([]domain.Signal, len(defs))
	for i, d := range defs {
		dir, ok := directionNames[d.Direction]
		if !ok {
			return nil, fmt.Errorf("bad signal direction %q", d.Direction)
		}
		out[i] = domain.Signal{Direction: dir, Duration: d.Duration}
	}
	return out, nil
}

var turnNames = map[string]domain.TurnDirection{
	"UTURN": domain.UTurn, "LEFT": domain.Left, "STRAIGHT": domain.Straight, "RIGHT": domain.Right,
}

func buildRoute(tokens []string) ([]domain.TurnDirection, error) {
	invalid := lo.Filter(tokens, func(tok string, _ int) bool {
		_, ok := turnNames[tok]
		return !ok
	})
	if len(invalid) > 0 {
		return nil, fmt.Errorf("bad turn(s) %v", invalid)
	}
	return lo.Map(tokens, func(tok string, _ int) domain.TurnDirection {
		return turnNames[tok]
	}), nil
}

// directionBetween infers the cardinal direction a road runs from a to b
// based on their coordinates, snapping to whichever axis has the larger
// delta. Ties snap to the horizontal axis (West when dx is negative, East
// otherwise), so coincident junctions resolve to East. Y
// increases southward, matching the scenario's screen-space convention.
func directionBetween(a, b *domain.Junction) domain.CardinalDirection {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if abs(dx) >= abs(dy) {
		if dx < 0 {
			return domain.West
		}
		return domain.East
	}
	if dy < 0 {
		return domain.North
	}
	return domain.South
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
