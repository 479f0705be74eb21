package blocks

import (
	"fmt"
	"sort"
	"unsafe"

	"gamecraft/internal/graphics"
	renderer "gamecraft/internal/graphics/renderer"
	"gamecraft/internal/meshing"
	"gamecraft/internal/profiling"
	"gamecraft/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Blocks implements block rendering feature. Chunk meshes carry world-space
// positions, so every draw uses an identity model matrix.
type Blocks struct {
	mainShader *graphics.Shader
	meshes     map[world.ChunkCoord]*gpuMesh
	order      []*gpuMesh

	// Drawn and Culled count chunks from the last frame.
	Drawn  int
	Culled int
}

// NewBlocks creates a new blocks renderable
func NewBlocks() *Blocks {
	return &Blocks{
		meshes: make(map[world.ChunkCoord]*gpuMesh),
	}
}

// Init initializes the blocks rendering system
func (b *Blocks) Init() error {
	var err error
	b.mainShader, err = graphics.NewShader(mainVertShader, mainFragShader)
	if err != nil {
		return fmt.Errorf("blocks shader: %w", err)
	}

	b.mainShader.Use()
	b.mainShader.SetMatrix4("model", mgl32.Ident4())
	b.mainShader.SetVector3("lightDir", mgl32.Vec3{-0.4, -1.0, -0.3})
	b.mainShader.SetFloat("ambient", 0.45)
	return nil
}

// Upload replaces the GPU buffers for coord with mesh. An empty mesh just
// drops whatever was uploaded before.
func (b *Blocks) Upload(coord world.ChunkCoord, mesh *meshing.ChunkMesh) {
	defer profiling.Track("renderer.uploadMesh")()

	b.Remove(coord)
	if mesh == nil || mesh.IsEmpty() {
		return
	}

	m := &gpuMesh{
		coord:       coord,
		indexCount:  int32(len(mesh.Indices)),
		translucent: isTranslucent(mesh),
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)
	gl.GenBuffers(int32(len(m.vbos)), &m.vbos[0])

	n := len(mesh.Positions)
	attrib(m.vbos[0], attribPosition, 3, n, gl.Ptr(&mesh.Positions[0]))
	attrib(m.vbos[1], attribNormal, 3, n, gl.Ptr(&mesh.Normals[0]))
	attrib(m.vbos[2], attribUV, 2, n, gl.Ptr(&mesh.UVs[0]))
	attrib(m.vbos[3], attribColor, 4, n, gl.Ptr(&mesh.Colors[0]))

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	b.meshes[coord] = m
	b.order = append(b.order, m)
	sortForDraw(b.order)
}

// attrib fills vbo with count tightly packed float vectors and binds it to loc
// on the currently bound VAO.
func attrib(vbo, loc uint32, size int32, count int, data unsafe.Pointer) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, count*int(size)*4, data, gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(loc)
	gl.VertexAttribPointerWithOffset(loc, size, gl.FLOAT, false, size*4, 0)
}

// Remove frees the GPU buffers of one chunk, if any.
func (b *Blocks) Remove(coord world.ChunkCoord) {
	m, ok := b.meshes[coord]
	if !ok {
		return
	}
	delete(b.meshes, coord)
	for i, o := range b.order {
		if o == m {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	freeMesh(m)
}

// Len returns the number of uploaded chunk meshes.
func (b *Blocks) Len() int {
	return len(b.meshes)
}

// Render renders all visible blocks
func (b *Blocks) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.renderBlocks")()

	b.mainShader.Use()
	b.mainShader.SetMatrix4("view", ctx.View)
	b.mainShader.SetMatrix4("projection", ctx.Proj)

	b.Drawn, b.Culled = 0, 0
	for _, m := range b.order {
		if !ctx.Frustum.ChunkVisible(m.coord.WorldOrigin(), world.ChunkSize) {
			b.Culled++
			continue
		}
		if m.translucent {
			gl.DepthMask(false)
		}
		gl.BindVertexArray(m.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
		if m.translucent {
			gl.DepthMask(true)
		}
		b.Drawn++
	}
	gl.BindVertexArray(0)
}

// SetViewport is a no-op; block drawing takes its matrices from the context.
func (b *Blocks) SetViewport(width, height int) {}

// Dispose cleans up OpenGL resources
func (b *Blocks) Dispose() {
	for _, m := range b.order {
		freeMesh(m)
	}
	b.order = nil
	b.meshes = make(map[world.ChunkCoord]*gpuMesh)
	if b.mainShader != nil {
		b.mainShader.Delete()
		b.mainShader = nil
	}
}

func freeMesh(m *gpuMesh) {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	gl.DeleteBuffers(int32(len(m.vbos)), &m.vbos[0])
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
}

// isTranslucent reports whether any vertex color has alpha below one.
func isTranslucent(mesh *meshing.ChunkMesh) bool {
	for _, c := range mesh.Colors {
		if c.W() < 1 {
			return true
		}
	}
	return false
}

// sortForDraw puts opaque meshes first, then by coordinate for a stable order.
func sortForDraw(ms []*gpuMesh) {
	sort.SliceStable(ms, func(i, j int) bool {
		a, b := ms[i], ms[j]
		if a.translucent != b.translucent {
			return !a.translucent
		}
		if a.coord.Y != b.coord.Y {
			return a.coord.Y < b.coord.Y
		}
		if a.coord.Z != b.coord.Z {
			return a.coord.Z < b.coord.Z
		}
		return a.coord.X < b.coord.X
	})
}
