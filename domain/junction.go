package domain

import "fmt"

// Signal is one phase of a junction's program: a direction that gets GREEN
// and how many ticks the phase lasts.
type Signal struct {
	Direction CardinalDirection
	Duration  int
}

// ConnectedStreet is one of a junction's four incoming or outgoing slots.
type ConnectedStreet struct {
	Connected bool
	StreetID  int
}

// Junction is a node of the network graph: four incoming and four outgoing
// cardinal slots plus a cyclic signal program. The signal-advance state
// (phase index, remaining ticks) is mutated exclusively by the signal
// routine, once per tick, sequentially-safe since junctions are otherwise
// independent of each other.
type Junction struct {
	ID int
	X  int
	Y  int

	Signals        []Signal
	phaseIndex     int
	remainingTicks int

	Incoming [4]ConnectedStreet
	Outgoing [4]ConnectedStreet
}

// NewJunction validates and constructs a Junction. signals must be
// non-empty after the caller has already dropped disconnected directions;
// every duration must be >= MinSignalDuration.
func NewJunction(id, x, y int, signals []Signal) (*Junction, error) {
	if len(signals) == 0 {
		return nil, fmt.Errorf("junction %d: empty signal list", id)
	}
	for _, s := range signals {
		if s.Direction < North || s.Direction > West {
			return nil, fmt.Errorf("junction %d: bad signal direction %v", id, s.Direction)
		}
		if s.Duration < MinSignalDuration {
			return nil, fmt.Errorf("junction %d: signal duration %d below minimum %d", id, s.Duration, MinSignalDuration)
		}
	}
	j := &Junction{ID: id, X: x, Y: y, Signals: signals}
	j.remainingTicks = signals[0].Duration
	return j, nil
}

// AddIncoming registers street as the junction's incoming slot in direction.
func (j *Junction) AddIncoming(streetID int, direction CardinalDirection) {
	j.Incoming[direction] = ConnectedStreet{Connected: true, StreetID: streetID}
}

// AddOutgoing registers street as the junction's outgoing slot in direction.
func (j *Junction) AddOutgoing(streetID int, direction CardinalDirection) {
	j.Outgoing[direction] = ConnectedStreet{Connected: true, StreetID: streetID}
}

// IncomingDirectionOf returns the cardinal slot under which streetID was
// registered as incoming, used by the consistency routine to compute the
// direction a departing vehicle is arriving from.
func (j *Junction) IncomingDirectionOf(streetID int) (CardinalDirection, bool) {
	for d, c := range j.Incoming {
		if c.Connected && c.StreetID == streetID {
			return CardinalDirection(d), true
		}
	}
	return 0, false
}

// DropDisconnectedSignals removes every phase whose direction has no
// connected incoming street, grounded on the scenario loader's need to
// tolerate a junction program that names a direction nothing actually
// approaches from. Must be called after every street touching this
// junction has been added. Resets the phase countdown to the first
// surviving phase.
func (j *Junction) DropDisconnectedSignals() error {
	kept := j.Signals[:0]
	for _, sig := range j.Signals {
		if j.Incoming[sig.Direction].Connected {
			kept = append(kept, sig)
		}
	}
	if len(kept) == 0 {
		return fmt.Errorf("junction %d: no signal direction has a connected incoming street", j.ID)
	}
	j.Signals = kept
	j.phaseIndex = 0
	j.remainingTicks = j.Signals[0].Duration
	return nil
}

// SetDurations overwrites every phase's duration in place, keyed by phase
// index, and resets the phase-0 countdown. Used by initial-signal
// heuristics to retune a junction's program before the first tick; must
// not be called once a simulation is running.
func (j *Junction) SetDurations(durations []int) error {
	if len(durations) != len(j.Signals) {
		return fmt.Errorf("junction %d: expected %d durations, got %d", j.ID, len(j.Signals), len(durations))
	}
	for i, d := range durations {
		if d < MinSignalDuration {
			return fmt.Errorf("junction %d: duration %d below minimum %d", j.ID, d, MinSignalDuration)
		}
		j.Signals[i].Duration = d
	}
	j.phaseIndex = 0
	j.remainingTicks = j.Signals[0].Duration
	return nil
}

// CurrentSignal returns the active phase.
func (j *Junction) CurrentSignal() Signal {
	return j.Signals[j.phaseIndex]
}

// RemainingTicks returns the number of ticks left in the active phase.
func (j *Junction) RemainingTicks() int {
	return j.remainingTicks
}

// Advance decrements the current phase's remaining-ticks counter and, once
// it hits zero, rotates to the next phase and resets the counter. Returns
// the previous phase and whether a phase change happened, so the caller
// (the signal routine) can flip the correct streets' red/green state.
func (j *Junction) Advance() (previous Signal, changed bool) {
	previous = j.CurrentSignal()
	j.remainingTicks--
	if j.remainingTicks <= 0 {
		j.phaseIndex = (j.phaseIndex + 1) % len(j.Signals)
		j.remainingTicks = j.CurrentSignal().Duration
		return previous, true
	}
	return previous, false
}

// OutgoingConnectedFrom rotates clockwise from start until it finds a
// connected outgoing slot, falling back rather than failing outright when
// the desired turn has no matching street. Returns false only if no
// outgoing slot is connected at all, which indicates a malformed scenario.
func (j *Junction) OutgoingConnectedFrom(start CardinalDirection) (ConnectedStreet, bool) {
	for i := 0; i < 4; i++ {
		d := start.Rotate(i)
		if j.Outgoing[d].Connected {
			return j.Outgoing[d], true
		}
	}
	return ConnectedStreet{}, false
}
