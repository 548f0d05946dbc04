package bsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReportEmpty(t *testing.T) {
	for _, points := range [][]SpawnPoint{nil, {}} {
		r := BuildReport("Map 4 - dm.bsp", points)
		assert.Equal(t, MapReport{Label: "Map 4 - dm.bsp", Empty: true, Notice: NoSpawnPointsNotice}, r)
	}
}

func TestBuildReport(t *testing.T) {
	points := []SpawnPoint{{0, 0, 0}, {10, 0, 0}, {0, 5, 0}, {0, 0, 2}}

	r := BuildReport("Map 1 - box.bsp", points)
	assert.False(t, r.Empty)
	assert.Empty(t, r.Notice)
	require.NotNil(t, r.Extents)
	assert.Equal(t, Range{Min: 0, Max: 10}, r.Extents.X)

	require.Len(t, r.Spawns, len(points))
	for i, s := range r.Spawns {
		assert.Equal(t, points[i], s.Point)
		assert.Equal(t, ComputeClearance(points[i], *r.Extents), s.Clearance)
	}
	assert.Equal(t, Clearance{Left: 10, Right: 0, Forward: 5, Backward: 0, Up: 2, Down: 0}, r.Spawns[1].Clearance)
}

func TestBuildReportIdempotent(t *testing.T) {
	points := []SpawnPoint{{1, 2, 3}, {-4, 5, -6}}
	assert.Equal(t, BuildReport("Map 2 - x.bsp", points), BuildReport("Map 2 - x.bsp", points))
}
