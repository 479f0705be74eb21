package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// ChunkSize is the edge length of a cubic chunk. The mesher reads the same constant.
	ChunkSize = 16

	// ChunkVolume is the number of cells in one chunk.
	ChunkVolume = ChunkSize * ChunkSize * ChunkSize
)

// ChunkCoord is a chunk-space grid coordinate.
type ChunkCoord struct {
	X, Y, Z int
}

// WorldOrigin returns the world-space corner of the chunk (coord * ChunkSize).
func (c ChunkCoord) WorldOrigin() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(c.X) * ChunkSize,
		float32(c.Y) * ChunkSize,
		float32(c.Z) * ChunkSize,
	}
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Chunk is a ChunkSize^3 grid of blocks backed by a flat slice.
type Chunk struct {
	Position ChunkCoord
	blocks   []Block
}

// NewChunk creates an air-filled chunk at the given chunk coordinates
func NewChunk(pos ChunkCoord) *Chunk {
	c := &Chunk{
		Position: pos,
		blocks:   make([]Block, ChunkVolume),
	}
	c.Fill(Air)
	return c
}

// Index converts local coordinates to the flat index: x + N*(y + N*z).
// Serialized chunks depend on this nesting order.
func Index(x, y, z int) int {
	return x + ChunkSize*(y+ChunkSize*z)
}

// checkBounds panics on coordinates outside [0, ChunkSize). The flat index
// alone would alias e.g. (16,0,0) onto (0,1,0), so each axis is tested.
func checkBounds(x, y, z int) {
	if x < 0 || x >= ChunkSize || y < 0 || y >= ChunkSize || z < 0 || z >= ChunkSize {
		panic(fmt.Sprintf("world: chunk coordinate (%d,%d,%d) out of range [0,%d)", x, y, z, ChunkSize))
	}
}

// SetBlock writes b at the local coordinates. Out-of-range coordinates panic.
func (c *Chunk) SetBlock(x, y, z int, b Block) {
	checkBounds(x, y, z)
	c.blocks[Index(x, y, z)] = b
}

// GetBlock returns the block at the local coordinates. Out-of-range coordinates panic.
func (c *Chunk) GetBlock(x, y, z int) Block {
	checkBounds(x, y, z)
	return c.blocks[Index(x, y, z)]
}

// Fill overwrites every cell with b.
func (c *Chunk) Fill(b Block) {
	for i := range c.blocks {
		c.blocks[i] = b
	}
}

// SolidCount returns the number of non-air cells.
func (c *Chunk) SolidCount() int {
	n := 0
	for i := range c.blocks {
		if !c.blocks[i].IsAir() {
			n++
		}
	}
	return n
}

// Clone returns an independent copy, used as a read-only snapshot for
// background meshing.
func (c *Chunk) Clone() *Chunk {
	blocks := make([]Block, len(c.blocks))
	copy(blocks, c.blocks)
	return &Chunk{Position: c.Position, blocks: blocks}
}
