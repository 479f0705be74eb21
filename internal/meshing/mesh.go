package meshing

import (
	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is number of float32 per interleaved vertex (pos.xyz + normal.xyz + uv + rgba)
const VertexStride = 12

// ChunkMesh is the render-ready output for one chunk: four parallel vertex
// attribute slices indexed identically, plus a triangle list.
// It is disposable; any chunk change requires a fresh mesh.
type ChunkMesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Colors    []mgl32.Vec4
	Indices   []uint32
}

func newChunkMesh(vertexCap int) *ChunkMesh {
	return &ChunkMesh{
		Positions: make([]mgl32.Vec3, 0, vertexCap),
		Normals:   make([]mgl32.Vec3, 0, vertexCap),
		UVs:       make([]mgl32.Vec2, 0, vertexCap),
		Colors:    make([]mgl32.Vec4, 0, vertexCap),
		Indices:   make([]uint32, 0, vertexCap/4*6),
	}
}

// VertexCount returns the number of vertices.
func (m *ChunkMesh) VertexCount() int {
	return len(m.Positions)
}

// QuadCount returns the number of emitted faces.
func (m *ChunkMesh) QuadCount() int {
	return len(m.Positions) / 4
}

// IsEmpty reports whether the mesh has no geometry.
func (m *ChunkMesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// Interleaved packs the attributes as pos3 normal3 uv2 color4 per vertex,
// matching VertexStride.
func (m *ChunkMesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Positions)*VertexStride)
	for i := range m.Positions {
		p, n, uv, c := m.Positions[i], m.Normals[i], m.UVs[i], m.Colors[i]
		out = append(out,
			p[0], p[1], p[2],
			n[0], n[1], n[2],
			uv[0], uv[1],
			c[0], c[1], c[2], c[3],
		)
	}
	return out
}

// Bounds returns the axis-aligned box enclosing all vertices. An empty mesh
// returns two zero vectors.
func (m *ChunkMesh) Bounds() (min, max mgl32.Vec3) {
	if len(m.Positions) == 0 {
		return
	}
	min, max = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for a := 0; a < 3; a++ {
			if p[a] < min[a] {
				min[a] = p[a]
			}
			if p[a] > max[a] {
				max[a] = p[a]
			}
		}
	}
	return min, max
}

// pushQuad appends four corners (a,b,c,d, counter-clockwise seen from the
// front) and the two triangles a-b-c, c-d-a.
func (m *ChunkMesh) pushQuad(a, b, c, d, normal mgl32.Vec3, color mgl32.Vec4) {
	base := uint32(len(m.Positions))

	m.Positions = append(m.Positions, a, b, c, d)
	m.Normals = append(m.Normals, normal, normal, normal, normal)
	m.UVs = append(m.UVs,
		mgl32.Vec2{0, 0},
		mgl32.Vec2{1, 0},
		mgl32.Vec2{1, 1},
		mgl32.Vec2{0, 1},
	)
	m.Colors = append(m.Colors, color, color, color, color)

	m.Indices = append(m.Indices,
		base+0, base+1, base+2,
		base+2, base+3, base+0,
	)
}
