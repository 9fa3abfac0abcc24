package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

func TestCargo_Arithmetic(t *testing.T) {
	// Arrange
	a := shared.Cargo{Ironium: 10, Boranium: 5, Germanium: 2, Colonists: 7}
	b := shared.Cargo{Ironium: 4, Boranium: 5, Germanium: 3}

	// Act & Assert
	assert.Equal(t, 24, a.Total())
	assert.Equal(t, 17, a.MineralTotal())
	assert.False(t, a.CanSubtract(b))
	assert.Equal(t, shared.Cargo{Ironium: 14, Boranium: 10, Germanium: 5, Colonists: 7}, a.Add(b))

	a.Set(shared.Germanium, 3)
	assert.True(t, a.CanSubtract(b))
	assert.Equal(t, 3, a.Get(shared.Germanium))
}

func TestNewCargo_RejectsNegative(t *testing.T) {
	_, err := shared.NewCargo(1, -1, 0, 0)

	var validationErr *shared.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "cargo", validationErr.Field)
}

func TestVector_MoveToward(t *testing.T) {
	from := shared.NewVector(0, 0)
	to := shared.NewVector(30, 40)

	assert.Equal(t, shared.NewVector(6, 8), from.MoveToward(to, 10))
	assert.Equal(t, to, from.MoveToward(to, 100))
	assert.InDelta(t, 50, from.DistanceTo(to), 1e-9)
	assert.True(t, from.InRange(to, 50))
	assert.False(t, from.InRange(to, 49.9))
}

func TestRandom_IsReproducible(t *testing.T) {
	a := shared.NewRandom(42, 2401)
	b := shared.NewRandom(42, 2401)
	c := shared.NewRandom(42, 2402)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
	assert.Equal(t, a.GUID(), b.GUID())
	assert.NotEqual(t, shared.NewRandom(42, 2401).GUID(), c.GUID())
}
