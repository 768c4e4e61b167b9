package lowlevel

// Store is the external contract both street data structures satisfy: a
// container of Cars on one street, sorted by distance, that supports the
// two-phase insert/commit cycle the routines drive every tick. Both
// NaiveStore and BucketStore implement Store identically from the
// caller's point of view; a simulation must be able to pick either
// without changing routine code.
type Store interface {
	LaneCount() int
	Length() float64
	SpeedLimit() float64
	CarCount() int

	// InsertCar stages a car for this street, either a freshly spawned
	// vehicle or one handed off from an upstream street. Staged cars are
	// invisible to queries until IncorporateInsertedCars runs.
	InsertCar(c *Car)

	// IncorporateInsertedCars merges staged cars into the queryable set and
	// re-sorts. Called once per tick by the consistency routine, after
	// every street has finished staging its handoffs.
	IncorporateInsertedCars()

	// UpdateAndRestoreConsistency commits every car's pending state to
	// current state, re-sorts, and separates out cars whose distance has
	// now reached or passed the street's length into the "beyond" set.
	UpdateAndRestoreConsistency()

	// BeyondsIterable returns the cars currently past the end of the
	// street, ascending by distance.
	BeyondsIterable() []*Car

	// RemoveBeyonds drops the beyond set after the consistency routine has
	// handed every car off to its destination street.
	RemoveBeyonds()

	// AllIterable returns every non-beyond car on the street, ascending by
	// distance. The returned slice must not be retained past the next
	// mutating call.
	AllIterable() []*Car

	// GetNextInFront returns the nearest car strictly ahead of cur in
	// lane cur.Lane+laneOffset, or nil if there is none.
	GetNextInFront(cur *Car, laneOffset int) *Car

	// GetNextBehind returns the nearest car strictly behind cur in lane
	// cur.Lane+laneOffset, or nil if there is none.
	GetNextBehind(cur *Car, laneOffset int) *Car

	// SwitchSignal flips the street's stored signal state.
	SwitchSignal()
	// SetSignal forces the street's stored signal state.
	SetSignal(red bool)
	// IsSignalRed reports the street's stored signal state.
	IsSignalRed() bool
}
