package bsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeExtents(t *testing.T) {
	points := []SpawnPoint{{0, 0, 0}, {10, 0, 0}, {0, 5, 0}, {0, 0, 2}}

	e, err := ComputeExtents(points)
	require.NoError(t, err)
	assert.Equal(t, Extents{
		X: Range{Min: 0, Max: 10},
		Y: Range{Min: 0, Max: 5},
		Z: Range{Min: 0, Max: 2},
	}, e)

	c := ComputeClearance(points[0], e)
	assert.Equal(t, Clearance{Left: 0, Right: 10, Forward: 5, Backward: 0, Up: 2, Down: 0}, c)
}

func TestComputeExtentsSinglePoint(t *testing.T) {
	e, err := ComputeExtents([]SpawnPoint{{-3, 4, 100}})
	require.NoError(t, err)
	assert.Equal(t, Range{Min: -3, Max: -3}, e.X)
	assert.Equal(t, Clearance{}, ComputeClearance(SpawnPoint{-3, 4, 100}, e))
}

func TestComputeExtentsEmpty(t *testing.T) {
	_, err := ComputeExtents(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = ComputeExtents([]SpawnPoint{})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestComputeExtentsNaN(t *testing.T) {
	e, err := ComputeExtents([]SpawnPoint{{math.NaN(), 1, 1}, {2, 1, 1}, {-2, 1, 1}})
	require.NoError(t, err)
	assert.Equal(t, Range{Min: -2, Max: 2}, e.X)

	c := ComputeClearance(SpawnPoint{math.NaN(), 1, 1}, e)
	assert.True(t, math.IsNaN(c.Left))
	assert.True(t, math.IsNaN(c.Right))
	assert.Equal(t, 0.0, c.Up)
}

func TestComputeClearanceInside(t *testing.T) {
	e := Extents{
		X: Range{Min: -100, Max: 100},
		Y: Range{Min: -50, Max: 150},
		Z: Range{Min: 0, Max: 64},
	}
	assert.Equal(t,
		Clearance{Left: 125, Right: 75, Forward: 140, Backward: 60, Up: 48, Down: 16},
		ComputeClearance(SpawnPoint{X: 25, Y: 10, Z: 16}, e))
}

func TestLowerUpper(t *testing.T) {
	assert.Equal(t, 1.0, lower(2.0, 1.0))
	assert.Equal(t, 2.0, upper(2.0, 1.0))
	assert.Equal(t, float32(1), lower(float32(1), float32(math.NaN())))
	assert.Equal(t, float32(1), upper(float32(1), float32(math.NaN())))
}
