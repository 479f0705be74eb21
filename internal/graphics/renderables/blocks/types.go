package blocks

import (
	_ "embed"

	"gamecraft/internal/world"
)

var (
	//go:embed shaders/main.vert
	mainVertShader string
	//go:embed shaders/main.frag
	mainFragShader string
)

// Vertex attribute locations, matching shaders/main.vert.
const (
	attribPosition = 0
	attribNormal   = 1
	attribUV       = 2
	attribColor    = 3
)

// gpuMesh is one uploaded chunk mesh.
type gpuMesh struct {
	coord       world.ChunkCoord
	vao         uint32
	vbos        [4]uint32
	ebo         uint32
	indexCount  int32
	translucent bool
}
