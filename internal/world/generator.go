package world

import (
	"fmt"
)

// Generator populates a freshly created chunk. Implementations must leave
// every cell holding a valid Block; order and pattern are up to them.
type Generator interface {
	Populate(c *Chunk)
}

// Generator kinds accepted by NewGenerator
const (
	GeneratorFlat  = "flat"
	GeneratorNoise = "noise"
)

// NewGenerator builds a generator by name.
func NewGenerator(kind string, seed int64) (Generator, error) {
	switch kind {
	case GeneratorFlat, "":
		return NewFlatGenerator(DefaultFlatHeight), nil
	case GeneratorNoise:
		return NewNoiseGenerator(seed), nil
	default:
		return nil, fmt.Errorf("unknown generator %q", kind)
	}
}

// DefaultFlatHeight is the grass layer of the reference flat chunk.
const DefaultFlatHeight = 4

// FlatGenerator fills every column with dirt below Height, grass at Height
// and air above, in local chunk coordinates.
type FlatGenerator struct {
	Height int
}

// NewFlatGenerator creates a flat generator with the grass layer at height.
func NewFlatGenerator(height int) *FlatGenerator {
	return &FlatGenerator{Height: height}
}

// Populate fills the chunk with the flat pattern.
func (g *FlatGenerator) Populate(c *Chunk) {
	for z := 0; z < ChunkSize; z++ {
		for y := 0; y < ChunkSize; y++ {
			for x := 0; x < ChunkSize; x++ {
				switch {
				case y < g.Height:
					c.SetBlock(x, y, z, Dirt)
				case y == g.Height:
					c.SetBlock(x, y, z, Grass)
				default:
					c.SetBlock(x, y, z, Air)
				}
			}
		}
	}
}
