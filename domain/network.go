package domain

import "fmt"

// Network is the single root of ownership for the whole scenario: flat
// arenas of junctions, streets and vehicles, cross-referenced by stable
// integer IDs. Nothing outside Network owns a junction, street or vehicle;
// every other package holds non-owning lookups by ID.
type Network struct {
	junctions []*Junction
	streets   []*Street
	vehicles  []*Vehicle

	junctionByID map[int]*Junction
	streetByID   map[int]*Street
	vehicleByID  map[int]*Vehicle
}

// NewNetwork returns an empty network ready to be populated by a loader.
func NewNetwork() *Network {
	return &Network{
		junctionByID: make(map[int]*Junction),
		streetByID:   make(map[int]*Street),
		vehicleByID:  make(map[int]*Vehicle),
	}
}

// AddJunction inserts j, rejecting a duplicate ID.
func (n *Network) AddJunction(j *Junction) error {
	if _, ok := n.junctionByID[j.ID]; ok {
		return fmt.Errorf("duplicate junction id %d", j.ID)
	}
	n.junctionByID[j.ID] = j
	n.junctions = append(n.junctions, j)
	return nil
}

// AddStreet inserts s, rejecting a duplicate ID or a reference to an
// unknown junction, and wires it into its endpoints' connected slots.
func (n *Network) AddStreet(s *Street, sourceDir, targetDir CardinalDirection) error {
	if _, ok := n.streetByID[s.ID]; ok {
		return fmt.Errorf("duplicate street id %d", s.ID)
	}
	source, ok := n.junctionByID[s.SourceJunctionID]
	if !ok {
		return fmt.Errorf("street %d: unknown source junction %d", s.ID, s.SourceJunctionID)
	}
	target, ok := n.junctionByID[s.TargetJunctionID]
	if !ok {
		return fmt.Errorf("street %d: unknown target junction %d", s.ID, s.TargetJunctionID)
	}
	n.streetByID[s.ID] = s
	n.streets = append(n.streets, s)
	source.AddOutgoing(s.ID, sourceDir)
	target.AddIncoming(s.ID, targetDir)
	return nil
}

// AddVehicle inserts v, rejecting a duplicate ID or a start position on an
// unknown street, out-of-range lane, or distance past the street's length.
func (n *Network) AddVehicle(v *Vehicle) error {
	if _, ok := n.vehicleByID[v.ID]; ok {
		return fmt.Errorf("duplicate vehicle id %d", v.ID)
	}
	street, ok := n.streetByID[v.StartPosition.StreetID]
	if !ok {
		return fmt.Errorf("vehicle %d: unknown starting street %d", v.ExternalID, v.StartPosition.StreetID)
	}
	if v.StartPosition.Lane < 0 || v.StartPosition.Lane >= street.Lanes {
		return fmt.Errorf("vehicle %d: lane %d out of range for street %d", v.ExternalID, v.StartPosition.Lane, street.ID)
	}
	if v.StartPosition.Distance > street.Length {
		return fmt.Errorf("vehicle %d: start distance %v beyond street %d length %v",
			v.ExternalID, v.StartPosition.Distance, street.ID, street.Length)
	}
	n.vehicleByID[v.ID] = v
	n.vehicles = append(n.vehicles, v)
	return nil
}

func (n *Network) Junction(id int) *Junction { return n.junctionByID[id] }
func (n *Network) Street(id int) *Street     { return n.streetByID[id] }
func (n *Network) Vehicle(id int) *Vehicle   { return n.vehicleByID[id] }

func (n *Network) Junctions() []*Junction { return n.junctions }
func (n *Network) Streets() []*Street     { return n.streets }
func (n *Network) Vehicles() []*Vehicle   { return n.vehicles }

// DestinationOf resolves where a vehicle departing street s should go next:
// it consults s's target junction for the direction s arrives from, takes
// the vehicle's next turn, and rotates clockwise to the first connected
// outgoing slot starting from that desired direction. Mirrors
// ConsistencyRoutine::calculateOriginDirection + takeTurn from the
// reference implementation, but reads the origin direction directly off the
// junction's incoming slot instead of re-deriving it from coordinates.
func (n *Network) DestinationOf(s *Street, v *Vehicle) (*Street, error) {
	return n.DestinationForTurn(s, v.NextTurn())
}

// DestinationForTurn is DestinationOf with an explicit turn instead of one
// pulled from a vehicle's route cursor, so callers that only want to
// project a route (the heuristic estimator) can resolve turns without
// mutating a Vehicle's cursor.
func (n *Network) DestinationForTurn(s *Street, turn TurnDirection) (*Street, error) {
	target := n.Junction(s.TargetJunctionID)
	origin, ok := target.IncomingDirectionOf(s.ID)
	if !ok {
		return nil, fmt.Errorf("street %d: not registered as incoming on junction %d", s.ID, target.ID)
	}
	desired := origin.Rotate(int(turn))
	conn, ok := target.OutgoingConnectedFrom(desired)
	if !ok {
		return nil, fmt.Errorf("junction %d: no connected outgoing direction for turn %v from street %d", target.ID, turn, s.ID)
	}
	return n.Street(conn.StreetID), nil
}
