package meshing

import (
	"gamecraft/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Face identifies one of the six axis-aligned cube faces.
type Face int

const (
	FacePosX Face = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// Faces lists all faces in emission order.
var Faces = [6]Face{FacePosX, FaceNegX, FacePosY, FaceNegY, FacePosZ, FaceNegZ}

var faceOffsets = [6][3]int{
	FacePosX: {1, 0, 0},
	FaceNegX: {-1, 0, 0},
	FacePosY: {0, 1, 0},
	FaceNegY: {0, -1, 0},
	FacePosZ: {0, 0, 1},
	FaceNegZ: {0, 0, -1},
}

// Offset returns the unit step towards the neighbor across this face.
func (f Face) Offset() (dx, dy, dz int) {
	o := faceOffsets[f]
	return o[0], o[1], o[2]
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() mgl32.Vec3 {
	o := faceOffsets[f]
	return mgl32.Vec3{float32(o[0]), float32(o[1]), float32(o[2])}
}

func (f Face) String() string {
	switch f {
	case FacePosX:
		return "+X"
	case FaceNegX:
		return "-X"
	case FacePosY:
		return "+Y"
	case FaceNegY:
		return "-Y"
	case FacePosZ:
		return "+Z"
	case FaceNegZ:
		return "-Z"
	default:
		return "?"
	}
}

// faceCorners holds the unit-cube corners of each face, counter-clockwise
// when viewed from outside. Each layout is written out per direction; mirrored
// faces are not simple reversals of each other.
var faceCorners = [6][4]mgl32.Vec3{
	FacePosX: {{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}},
	FaceNegX: {{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
	FacePosY: {{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
	FaceNegY: {{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
	FacePosZ: {{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
	FaceNegZ: {{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}},
}

// faceVisible reports whether the face of the solid cell (x,y,z) borders empty
// space. Neighbors outside the chunk always count as empty: meshing has no
// knowledge of adjacent chunks. The bounds test runs before any read.
func faceVisible(c *world.Chunk, x, y, z int, f Face) bool {
	dx, dy, dz := f.Offset()
	nx, ny, nz := x+dx, y+dy, z+dz
	if nx < 0 || nx >= world.ChunkSize ||
		ny < 0 || ny >= world.ChunkSize ||
		nz < 0 || nz >= world.ChunkSize {
		return true
	}
	return c.GetBlock(nx, ny, nz).IsAir()
}

// GenerateMesh builds the culled-face mesh of a chunk: one quad for every face
// of a solid cell whose neighbor is air or outside the chunk. Positions are in
// world space (local + Position*ChunkSize). The chunk is only read, so distinct
// chunks may be meshed concurrently.
func GenerateMesh(c *world.Chunk) *ChunkMesh {
	solid := c.SolidCount()
	m := newChunkMesh(min(solid*6*4, 6*4*world.ChunkVolume))
	if solid == 0 {
		return m
	}

	for z := 0; z < world.ChunkSize; z++ {
		for y := 0; y < world.ChunkSize; y++ {
			for x := 0; x < world.ChunkSize; x++ {
				b := c.GetBlock(x, y, z)
				if b.IsAir() {
					continue
				}

				base := mgl32.Vec3{
					float32(x) + float32(c.Position.X)*world.ChunkSize,
					float32(y) + float32(c.Position.Y)*world.ChunkSize,
					float32(z) + float32(c.Position.Z)*world.ChunkSize,
				}

				for _, f := range Faces {
					if !faceVisible(c, x, y, z, f) {
						continue
					}
					corners := &faceCorners[f]
					m.pushQuad(
						base.Add(corners[0]),
						base.Add(corners[1]),
						base.Add(corners[2]),
						base.Add(corners[3]),
						f.Normal(),
						b.Color,
					)
				}
			}
		}
	}

	return m
}
