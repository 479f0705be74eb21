package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTreeAtDeterministic verifies tree placement depends only on seed and column
func TestTreeAtDeterministic(t *testing.T) {
	a, b := NewNoiseGenerator(42), NewNoiseGenerator(42)
	for wz := -64; wz < 64; wz++ {
		for wx := -64; wx < 64; wx++ {
			if a.treeAt(wx, wz) != b.treeAt(wx, wz) {
				t.Fatalf("treeAt(%d,%d) differs between identical generators", wx, wz)
			}
		}
	}
}

// TestTreeAtDensity checks the hash roughly honors the configured chance
func TestTreeAtDensity(t *testing.T) {
	g := NewNoiseGenerator(7)
	trees := 0
	const side = 256
	for wz := 0; wz < side; wz++ {
		for wx := 0; wx < side; wx++ {
			if g.treeAt(wx, wz) {
				trees++
			}
		}
	}
	expected := float64(side*side) * float64(g.treeChance) / 1024
	assert.InDelta(t, expected, float64(trees), expected*0.3)
}

func TestHeightAtNonNegative(t *testing.T) {
	g := NewNoiseGenerator(3)
	for wz := -100; wz < 100; wz += 7 {
		for wx := -100; wx < 100; wx += 7 {
			assert.GreaterOrEqual(t, g.HeightAt(wx, wz), 0)
		}
	}
}

func TestPlantTreeKeepsTerrainAndClips(t *testing.T) {
	g := NewNoiseGenerator(1)
	c := NewChunk(ChunkCoord{})
	c.SetBlock(1, 4, 0, Grass)

	// Trunk at the chunk corner: leaves at x=-1 and z=-1 fall outside and
	// are skipped; the grass cell at (1,4,0) is not overwritten.
	require.NotPanics(t, func() { g.plantTree(c, 0, 1, 0) })

	for y := 1; y <= 3; y++ {
		assert.Equal(t, Wood, c.GetBlock(0, y, 0))
	}
	assert.Equal(t, Grass, c.GetBlock(1, 4, 0))
	assert.Equal(t, Leaves, c.GetBlock(1, 4, 1))
	assert.Equal(t, Leaves, c.GetBlock(0, 5, 0))
}

func TestPlantTreeNearTopClips(t *testing.T) {
	g := NewNoiseGenerator(1)
	c := NewChunk(ChunkCoord{})
	require.NotPanics(t, func() { g.plantTree(c, 8, ChunkSize-2, 8) })
	assert.Equal(t, Wood, c.GetBlock(8, ChunkSize-2, 8))
	assert.Equal(t, Wood, c.GetBlock(8, ChunkSize-1, 8))
}
