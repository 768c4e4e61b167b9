package routines

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsaglam/microsim-go/domain"
	"github.com/tsaglam/microsim-go/lowlevel"
)

func straightLine(t *testing.T) *domain.Network {
	t.Helper()
	n := domain.NewNetwork()

	j1, err := domain.NewJunction(1, 0, 0, []domain.Signal{{Direction: domain.West, Duration: 5}})
	assert.NoError(t, err)
	j2, err := domain.NewJunction(2, 100, 0, []domain.Signal{{Direction: domain.West, Duration: 5}})
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

func newTestWorld(t *testing.T, n *domain.Network) *World {
	t.Helper()
	w, err := NewWorld(n, func(s *domain.Street) lowlevel.Store {
		return lowlevel.NewSignalOverlay(lowlevel.NewNaiveStore(s.Lanes, s.Length, s.SpeedLimit))
	})
	assert.NoError(t, err)
	return w
}

func TestMovementRoutine_FreeRoadAccelerates(t *testing.T) {
	n := straightLine(t)
	v, err := domain.NewVehicle(1, 1, 20, 2, 3, 2, 1.5, 0.3,
		[]domain.TurnDirection{domain.Straight}, domain.Position{StreetID: 1, Lane: 0, Distance: 0})
	assert.NoError(t, err)
	assert.NoError(t, n.AddVehicle(v))

	w := newTestWorld(t, n)
	InitSignals(w)

	assert.NoError(t, MovementRoutine(context.Background(), w, 100))
	ConsistencyRoutine(w)

	car := w.Store(1).AllIterable()[0]
	assert.Greater(t, car.Velocity, 0.0)
	assert.Greater(t, car.Distance, 0.0)
}

func TestConsistencyRoutine_HandsOffAtStreetEnd(t *testing.T) {
	n := straightLine(t)
	v, err := domain.NewVehicle(1, 1, 20, 2, 3, 2, 1.5, 0.3,
		[]domain.TurnDirection{domain.Straight}, domain.Position{StreetID: 1, Lane: 0, Distance: 95})
	assert.NoError(t, err)
	assert.NoError(t, n.AddVehicle(v))

	w := newTestWorld(t, n)
	InitSignals(w)

	car := w.Store(1).AllIterable()[0]
	car.SetNext(0, 110, 15)
	ConsistencyRoutine(w)

	assert.Equal(t, 0, w.Store(1).CarCount())
	handed := w.Store(2).AllIterable()
	assert.Len(t, handed, 1)
	assert.InDelta(t, 10, handed[0].Distance, 1e-9)
}

func TestSignalRoutine_AdvancesAndFlipsStreets(t *testing.T) {
	n := domain.NewNetwork()
	j, err := domain.NewJunction(1, 0, 0, []domain.Signal{
		{Direction: domain.North, Duration: 5},
		{Direction: domain.South, Duration: 5},
	})
	assert.NoError(t, err)
	assert.NoError(t, n.AddJunction(j))
	other, err := domain.NewJunction(2, 0, -100, []domain.Signal{{Direction: domain.North, Duration: 5}})
	assert.NoError(t, err)
	assert.NoError(t, n.AddJunction(other))

	s, err := domain.NewStreet(1, 1, 100, 20, 2, 1)
	assert.NoError(t, err)
	assert.NoError(t, n.AddStreet(s, domain.North, domain.North))

	w := newTestWorld(t, n)
	InitSignals(w)
	assert.False(t, w.Store(1).IsSignalRed())

	for i := 0; i < 6; i++ {
		assert.NoError(t, SignalRoutine(context.Background(), w))
	}
	assert.True(t, w.Store(1).IsSignalRed())
}
