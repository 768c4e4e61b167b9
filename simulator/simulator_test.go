package simulator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsaglam/microsim-go/config"
	"github.com/tsaglam/microsim-go/domain"
)

func ringNetwork(t *testing.T) *domain.Network {
	t.Helper()
	n := domain.NewNetwork()
	j1, err := domain.NewJunction(1, 0, 0, []domain.Signal{{Direction: domain.West, Duration: 5}})
	assert.NoError(t, err)
	j2, err := domain.NewJunction(2, 100, 0, []domain.Signal{{Direction: domain.East, Duration: 5}})
	assert.NoError(t, err)
	assert.NoError(t, n.AddJunction(j1))
	assert.NoError(t, n.AddJunction(j2))

	s1, err := domain.NewStreet(1, 1, 100, 15, 1, 2)
	assert.NoError(t, err)
	assert.NoError(t, n.AddStreet(s1, domain.West, domain.East))
	s2, err := domain.NewStreet(2, 1, 100, 15, 2, 1)
	assert.NoError(t, err)
	assert.NoError(t, n.AddStreet(s2, domain.East, domain.West))

	v, err := domain.NewVehicle(1, 1, 12, 2, 3, 2, 1.5, 0.3,
		[]domain.TurnDirection{domain.Straight}, domain.Position{StreetID: 1, Lane: 0, Distance: 0})
	assert.NoError(t, err)
	assert.NoError(t, n.AddVehicle(v))

	return n
}

func TestSimulator_RunsAndVehicleProgresses(t *testing.T) {
	n := ringNetwork(t)
	sim, err := New(n, config.Control{Step: 60, ParallelThreshold: 100})
	assert.NoError(t, err)

	assert.NoError(t, sim.Run(context.Background(), 30))
	assert.Equal(t, 30, sim.Clock.Step)

	v := n.Vehicle(1)
	assert.Greater(t, v.TravelDistance, 0.0)
}

func TestSimulator_BucketStoreAgreesWithDefault(t *testing.T) {
	n1 := ringNetwork(t)
	n2 := ringNetwork(t)

	simNaive, err := New(n1, config.Control{Step: 60, ParallelThreshold: 100, StoreKind: config.StoreNaive})
	assert.NoError(t, err)
	simBucket, err := New(n2, config.Control{Step: 60, ParallelThreshold: 100, StoreKind: config.StoreBucket})
	assert.NoError(t, err)

	assert.NoError(t, simNaive.Run(context.Background(), 30))
	assert.NoError(t, simBucket.Run(context.Background(), 30))

	assert.InDelta(t, n1.Vehicle(1).TravelDistance, n2.Vehicle(1).TravelDistance, 1e-6)
}
