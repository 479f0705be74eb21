package world

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// NoiseGenerator builds rolling terrain from a 2D perlin heightmap:
// stone core, dirt band, grass (or sand near the water line) on top,
// water filling low columns and sparse trees on grass.
type NoiseGenerator struct {
	seed       int64
	noise      *perlin.Perlin
	scale      float64
	baseHeight int
	amp        float64
	waterLevel int
	dirtDepth  int
	treeChance uint64 // out of 1024
}

// NewNoiseGenerator creates a noise generator with default settings.
func NewNoiseGenerator(seed int64) *NoiseGenerator {
	return &NoiseGenerator{
		seed:       seed,
		noise:      perlin.NewPerlin(2.0, 2.0, 3, seed),
		scale:      1.0 / 32.0,
		baseHeight: 6,
		amp:        5,
		waterLevel: 4,
		dirtDepth:  3,
		treeChance: 12,
	}
}

// HeightAt computes the surface height (world Y) at world X,Z.
func (g *NoiseGenerator) HeightAt(worldX, worldZ int) int {
	n := g.noise.Noise2D(float64(worldX)*g.scale, float64(worldZ)*g.scale)
	h := float64(g.baseHeight) + n*2*g.amp
	if h < 0 {
		h = 0
	}
	return int(math.Floor(h))
}

// Populate fills the chunk from the heightmap.
func (g *NoiseGenerator) Populate(c *Chunk) {
	c.Fill(Air)
	baseX := c.Position.X * ChunkSize
	baseY := c.Position.Y * ChunkSize
	baseZ := c.Position.Z * ChunkSize

	for lz := 0; lz < ChunkSize; lz++ {
		for lx := 0; lx < ChunkSize; lx++ {
			wx, wz := baseX+lx, baseZ+lz
			height := g.HeightAt(wx, wz)

			for ly := 0; ly < ChunkSize; ly++ {
				wy := baseY + ly
				switch {
				case wy < height-g.dirtDepth:
					c.SetBlock(lx, ly, lz, Stone)
				case wy < height:
					c.SetBlock(lx, ly, lz, Dirt)
				case wy == height && height <= g.waterLevel:
					c.SetBlock(lx, ly, lz, Sand)
				case wy == height:
					c.SetBlock(lx, ly, lz, Grass)
				case wy <= g.waterLevel:
					c.SetBlock(lx, ly, lz, Water)
				}
			}

			if height > g.waterLevel && g.treeAt(wx, wz) {
				g.plantTree(c, lx, height-baseY+1, lz)
			}
		}
	}
}

// treeAt hashes the column so tree placement is stable per seed.
func (g *NoiseGenerator) treeAt(wx, wz int) bool {
	v := uint64(int64(wx))*0x9E3779B97F4A7C15 ^ uint64(int64(wz))*0xC2B2AE3D27D4EB4F ^ uint64(g.seed)
	v ^= v >> 33
	v *= 0xFF51AFD7ED558CCD
	v ^= v >> 33
	return v%1024 < g.treeChance
}

// plantTree writes a trunk and a leaf cap starting at local (x, y, z).
// Cells outside this chunk or already occupied are skipped.
func (g *NoiseGenerator) plantTree(c *Chunk, x, y, z int) {
	const trunk = 3
	set := func(x, y, z int, b Block) {
		if x < 0 || x >= ChunkSize || y < 0 || y >= ChunkSize || z < 0 || z >= ChunkSize {
			return
		}
		if c.GetBlock(x, y, z).IsAir() {
			c.SetBlock(x, y, z, b)
		}
	}
	for dy := 0; dy < trunk; dy++ {
		set(x, y+dy, z, Wood)
	}
	top := y + trunk
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			set(x+dx, top, z+dz, Leaves)
		}
	}
	set(x, top+1, z, Leaves)
}
