package meshing

import (
	"sort"
	"testing"

	"gamecraft/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const n = world.ChunkSize

func chunkWith(pos world.ChunkCoord, cells ...[3]int) *world.Chunk {
	c := world.NewChunk(pos)
	for _, p := range cells {
		c.SetBlock(p[0], p[1], p[2], world.Stone)
	}
	return c
}

// normalCounts groups quads by their normal.
func normalCounts(t *testing.T, m *ChunkMesh) map[mgl32.Vec3]int {
	t.Helper()
	require.Zero(t, len(m.Positions)%4)
	out := make(map[mgl32.Vec3]int)
	for q := 0; q < m.QuadCount(); q++ {
		nrm := m.Normals[q*4]
		for i := 1; i < 4; i++ {
			require.Equal(t, nrm, m.Normals[q*4+i], "normal must be constant across a quad")
		}
		out[nrm]++
	}
	return out
}

func assertParallelAttributes(t *testing.T, m *ChunkMesh) {
	t.Helper()
	v := len(m.Positions)
	assert.Len(t, m.Normals, v)
	assert.Len(t, m.UVs, v)
	assert.Len(t, m.Colors, v)
	assert.Len(t, m.Indices, v/4*6)
	for _, idx := range m.Indices {
		require.Less(t, int(idx), v)
	}
}

func TestEmptyChunkProducesNoGeometry(t *testing.T) {
	m := GenerateMesh(world.NewChunk(world.ChunkCoord{}))
	assert.Zero(t, m.VertexCount())
	assert.Empty(t, m.Indices)
	assert.True(t, m.IsEmpty())
}

func TestSingleBlockEmitsSixFaces(t *testing.T) {
	m := GenerateMesh(chunkWith(world.ChunkCoord{}, [3]int{5, 6, 7}))

	assert.Equal(t, 24, m.VertexCount())
	assert.Len(t, m.Indices, 36)
	assertParallelAttributes(t, m)

	counts := normalCounts(t, m)
	require.Len(t, counts, 6)
	for _, f := range Faces {
		assert.Equal(t, 1, counts[f.Normal()], "face %s", f)
	}
}

func TestSingleBlockAtEveryCornerEmitsSixFaces(t *testing.T) {
	for _, p := range [][3]int{{0, 0, 0}, {n - 1, 0, 0}, {0, n - 1, 0}, {0, 0, n - 1}, {n - 1, n - 1, n - 1}} {
		m := GenerateMesh(chunkWith(world.ChunkCoord{}, p))
		assert.Equal(t, 6, m.QuadCount(), "block at %v", p)
	}
}

func TestAdjacentBlocksShareNoFace(t *testing.T) {
	cases := []struct {
		name string
		a, b [3]int
		hide mgl32.Vec3
	}{
		{"x", [3]int{3, 3, 3}, [3]int{4, 3, 3}, mgl32.Vec3{1, 0, 0}},
		{"y", [3]int{3, 3, 3}, [3]int{3, 4, 3}, mgl32.Vec3{0, 1, 0}},
		{"z", [3]int{3, 3, 3}, [3]int{3, 3, 4}, mgl32.Vec3{0, 0, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := GenerateMesh(chunkWith(world.ChunkCoord{}, tc.a, tc.b))
			assert.Equal(t, 10, m.QuadCount())
			assert.Equal(t, 40, m.VertexCount())
			assert.Len(t, m.Indices, 60)

			counts := normalCounts(t, m)
			assert.Equal(t, 1, counts[tc.hide])
			assert.Equal(t, 1, counts[tc.hide.Mul(-1)])
		})
	}
}

func TestSeparatedBlocksKeepAllFaces(t *testing.T) {
	m := GenerateMesh(chunkWith(world.ChunkCoord{}, [3]int{0, 0, 0}, [3]int{2, 0, 0}))
	assert.Equal(t, 12, m.QuadCount())
}

func TestWindingMatchesNormal(t *testing.T) {
	// A lone block exercises all six faces.
	m := GenerateMesh(chunkWith(world.ChunkCoord{X: -2, Y: 1, Z: 3}, [3]int{8, 8, 8}))
	require.Len(t, m.Indices, 36)

	seen := make(map[mgl32.Vec3]bool)
	for i := 0; i < len(m.Indices); i += 3 {
		ia, ib, ic := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		a, b, c := m.Positions[ia], m.Positions[ib], m.Positions[ic]
		cross := b.Sub(a).Cross(c.Sub(a))
		nrm := m.Normals[ia]

		assert.Greater(t, cross.Dot(nrm), float32(0), "triangle %d winds inward for normal %v", i/3, nrm)
		assert.InDelta(t, 1.0, cross.Normalize().Dot(nrm), 1e-6)
		seen[nrm] = true
	}
	assert.Len(t, seen, 6)
}

func TestFaceCornersLieOnFacePlane(t *testing.T) {
	for _, f := range Faces {
		nrm := f.Normal()
		for _, corner := range faceCorners[f] {
			// Outward faces sit at 1 on their axis, inward faces at 0.
			for a := 0; a < 3; a++ {
				if nrm[a] > 0 {
					assert.Equal(t, float32(1), corner[a], "face %s", f)
				} else if nrm[a] < 0 {
					assert.Equal(t, float32(0), corner[a], "face %s", f)
				}
			}
		}
	}
}

func TestChunkBoundaryAlwaysExposed(t *testing.T) {
	// Blocks at the +X edge of chunk (0,0,0) and at the -X edge of chunk (1,0,0)
	// would touch in world space. Each mesh still keeps its boundary face.
	left := chunkWith(world.ChunkCoord{X: 0}, [3]int{n - 1, 0, 0})
	right := chunkWith(world.ChunkCoord{X: 1}, [3]int{0, 0, 0})

	lm := GenerateMesh(left)
	rm := GenerateMesh(right)
	assert.Equal(t, 6, lm.QuadCount())
	assert.Equal(t, 6, rm.QuadCount())
	assert.Equal(t, 1, normalCounts(t, lm)[mgl32.Vec3{1, 0, 0}])
	assert.Equal(t, 1, normalCounts(t, rm)[mgl32.Vec3{-1, 0, 0}])
}

func TestFullChunkEmitsOnlyOuterShell(t *testing.T) {
	c := world.NewChunk(world.ChunkCoord{})
	c.Fill(world.Dirt)
	m := GenerateMesh(c)
	assert.Equal(t, 6*n*n, m.QuadCount())
}

func TestCheckerboardIsFullyExposed(t *testing.T) {
	c := world.NewChunk(world.ChunkCoord{})
	solid := 0
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				if (x+y+z)%2 == 0 {
					c.SetBlock(x, y, z, world.Sand)
					solid++
				}
			}
		}
	}
	m := GenerateMesh(c)
	assert.Equal(t, solid*6, m.QuadCount())
	assert.LessOrEqual(t, m.VertexCount(), 6*4*world.ChunkVolume)
}

func TestPositionsAreWorldSpace(t *testing.T) {
	pos := world.ChunkCoord{X: 2, Y: -1, Z: 5}
	m := GenerateMesh(chunkWith(pos, [3]int{1, 2, 3}))

	lo, hi := m.Bounds()
	origin := pos.WorldOrigin()
	assert.Equal(t, origin.Add(mgl32.Vec3{1, 2, 3}), lo)
	assert.Equal(t, origin.Add(mgl32.Vec3{2, 3, 4}), hi)
}

func TestUVsSpanUnitSquare(t *testing.T) {
	m := GenerateMesh(chunkWith(world.ChunkCoord{}, [3]int{0, 0, 0}))
	want := []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for q := 0; q < m.QuadCount(); q++ {
		assert.Equal(t, want, m.UVs[q*4:q*4+4])
	}
}

func TestColorPropagation(t *testing.T) {
	c := world.NewChunk(world.ChunkCoord{})
	c.SetBlock(4, 4, 4, world.Grass)
	c.SetBlock(5, 4, 4, world.Water)
	custom := world.Block{ID: 200, Name: "custom", Color: mgl32.Vec4{0.1, 0.2, 0.3, 0.4}}
	c.SetBlock(9, 9, 9, custom)

	m := GenerateMesh(c)
	byColor := make(map[mgl32.Vec4]int)
	for q := 0; q < m.QuadCount(); q++ {
		col := m.Colors[q*4]
		for i := 1; i < 4; i++ {
			require.Equal(t, col, m.Colors[q*4+i])
		}
		byColor[col]++
	}
	assert.Equal(t, map[mgl32.Vec4]int{
		world.Grass.Color: 5,
		world.Water.Color: 5,
		custom.Color:      6,
	}, byColor)
}

func TestGenerateMeshIsIdempotent(t *testing.T) {
	c := world.NewChunk(world.ChunkCoord{X: 1, Z: -1})
	world.NewNoiseGenerator(42).Populate(c)

	a := GenerateMesh(c)
	b := GenerateMesh(c)
	assert.Equal(t, a, b)
	assert.Equal(t, sortedVertices(a), sortedVertices(b))
}

func TestReferenceFlatChunk(t *testing.T) {
	c := world.NewChunk(world.ChunkCoord{})
	world.NewFlatGenerator(world.DefaultFlatHeight).Populate(c)
	m := GenerateMesh(c)

	// A 16x5x16 slab: top and bottom layers plus four side walls.
	h := world.DefaultFlatHeight + 1
	assert.Equal(t, 2*n*n+4*n*h, m.QuadCount())

	counts := normalCounts(t, m)
	assert.Equal(t, n*n, counts[mgl32.Vec3{0, 1, 0}])
	assert.Equal(t, n*n, counts[mgl32.Vec3{0, -1, 0}])
}

func TestInterleavedLayout(t *testing.T) {
	m := GenerateMesh(chunkWith(world.ChunkCoord{}, [3]int{0, 0, 0}))
	data := m.Interleaved()
	require.Len(t, data, m.VertexCount()*VertexStride)

	for i := 0; i < m.VertexCount(); i++ {
		v := data[i*VertexStride : (i+1)*VertexStride]
		assert.Equal(t, m.Positions[i][:], v[0:3])
		assert.Equal(t, m.Normals[i][:], v[3:6])
		assert.Equal(t, m.UVs[i][:], v[6:8])
		assert.Equal(t, m.Colors[i][:], v[8:12])
	}
}

type vertex struct {
	p, n mgl32.Vec3
	uv   mgl32.Vec2
	c    mgl32.Vec4
}

func sortedVertices(m *ChunkMesh) []vertex {
	out := make([]vertex, m.VertexCount())
	for i := range out {
		out[i] = vertex{m.Positions[i], m.Normals[i], m.UVs[i], m.Colors[i]}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		for k := 0; k < 3; k++ {
			if a.p[k] != b.p[k] {
				return a.p[k] < b.p[k]
			}
		}
		for k := 0; k < 3; k++ {
			if a.n[k] != b.n[k] {
				return a.n[k] < b.n[k]
			}
		}
		return a.uv[0]+2*a.uv[1] < b.uv[0]+2*b.uv[1]
	})
	return out
}
