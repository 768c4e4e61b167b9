package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsaglam/microsim-go/domain"
)

func loopNetwork(t *testing.T) *domain.Network {
	t.Helper()
	n := domain.NewNetwork()
	j1, err := domain.NewJunction(1, 0, 0, []domain.Signal{{Direction: domain.West, Duration: 5}})
	assert.NoError(t, err)
	j2, err := domain.NewJunction(2, 100, 0, []domain.Signal{{Direction: domain.East, Duration: 5}})
	assert.NoError(t, err)
	assert.NoError(t, n.AddJunction(j1))
	assert.NoError(t, n.AddJunction(j2))

	s1, err := domain.NewStreet(1, 1, 100, 20, 1, 2)
	assert.NoError(t, err)
	assert.NoError(t, n.AddStreet(s1, domain.West, domain.East))
	s2, err := domain.NewStreet(2, 1, 100, 20, 2, 1)
	assert.NoError(t, err)
	assert.NoError(t, n.AddStreet(s2, domain.East, domain.West))
	return n
}

func TestProject_CountsCrossingsAroundLoop(t *testing.T) {
	n := loopNetwork(t)
	v, err := domain.NewVehicle(1, 1, 10, 2, 3, 2, 1.5, 0.3,
		[]domain.TurnDirection{domain.Straight}, domain.Position{StreetID: 1, Lane: 0, Distance: 0})
	assert.NoError(t, err)
	assert.NoError(t, n.AddVehicle(v))

	est := Project(n, 25)
	assert.Equal(t, 2, est.StreetCrossings[1])
	assert.Equal(t, 1, est.StreetCrossings[2])
}

func TestInitialTrafficLightsAllFive(t *testing.T) {
	n := loopNetwork(t)
	assert.NoError(t, InitialTrafficLightsAllFive(n))
	for _, j := range n.Junctions() {
		for _, sig := range j.Signals {
			assert.Equal(t, domain.MinSignalDuration, sig.Duration)
		}
	}
}

func TestWeightedByProjectedCrossings_FavorsBusierStreet(t *testing.T) {
	n := domain.NewNetwork()
	j, err := domain.NewJunction(1, 0, 0, []domain.Signal{
		{Direction: domain.North, Duration: 10},
		{Direction: domain.South, Duration: 10},
	})
	assert.NoError(t, err)
	assert.NoError(t, n.AddJunction(j))
	far, err := domain.NewJunction(2, 0, -100, []domain.Signal{{Direction: domain.North, Duration: 5}})
	assert.NoError(t, err)
	far2, err := domain.NewJunction(3, 0, 100, []domain.Signal{{Direction: domain.South, Duration: 5}})
	assert.NoError(t, err)
	assert.NoError(t, n.AddJunction(far))
	assert.NoError(t, n.AddJunction(far2))

	busy, err := domain.NewStreet(1, 1, 50, 20, 2, 1)
	assert.NoError(t, err)
	assert.NoError(t, n.AddStreet(busy, domain.North, domain.North))
	quiet, err := domain.NewStreet(2, 1, 50, 20, 3, 1)
	assert.NoError(t, err)
	assert.NoError(t, n.AddStreet(quiet, domain.South, domain.South))

	est := &Estimate{StreetCrossings: map[int]int{1: 100, 2: 1}}
	assert.NoError(t, WeightedByProjectedCrossings(n, est, 20))

	j = n.Junction(1)
	assert.Greater(t, j.Signals[0].Duration, j.Signals[1].Duration)
}

func TestMaxPressureDurations_RanksBusiestPhaseHighest(t *testing.T) {
	n := domain.NewNetwork()
	j, err := domain.NewJunction(1, 0, 0, []domain.Signal{
		{Direction: domain.North, Duration: 10},
		{Direction: domain.South, Duration: 10},
		{Direction: domain.East, Duration: 10},
	})
	assert.NoError(t, err)
	assert.NoError(t, n.AddJunction(j))
	far, err := domain.NewJunction(2, 0, -100, []domain.Signal{{Direction: domain.North, Duration: 5}})
	assert.NoError(t, err)
	far2, err := domain.NewJunction(3, 0, 100, []domain.Signal{{Direction: domain.South, Duration: 5}})
	assert.NoError(t, err)
	assert.NoError(t, n.AddJunction(far))
	assert.NoError(t, n.AddJunction(far2))

	busy, err := domain.NewStreet(1, 1, 50, 20, 2, 1)
	assert.NoError(t, err)
	assert.NoError(t, n.AddStreet(busy, domain.North, domain.North))
	quiet, err := domain.NewStreet(2, 1, 50, 20, 3, 1)
	assert.NoError(t, err)
	assert.NoError(t, n.AddStreet(quiet, domain.South, domain.South))
	// East has no incoming street wired at all; DropDisconnectedSignals isn't
	// called here, so its phase stays in the program with zero pressure.

	est := &Estimate{StreetCrossings: map[int]int{1: 40, 2: 4}}
	assert.NoError(t, MaxPressureDurations(n, est, 20))

	j = n.Junction(1)
	assert.Equal(t, 20, j.Signals[0].Duration)
	assert.Greater(t, j.Signals[0].Duration, j.Signals[1].Duration)
	assert.Equal(t, domain.MinSignalDuration, j.Signals[2].Duration)
}
