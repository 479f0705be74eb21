package world

import (
	"fmt"
	"log/slog"

	"gamecraft/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkManager holds the fixed in-memory set of chunks. There is no eviction
// or streaming; the collection lives as long as the manager.
//
// EnsureChunks performs a check-then-act on emptiness and takes no lock:
// call it from a single goroutine during startup.
type ChunkManager struct {
	chunks []*Chunk
	index  map[ChunkCoord]*Chunk
	gen    Generator
	radius int
	log    *slog.Logger
}

// ManagerOption configures a ChunkManager.
type ManagerOption func(*ChunkManager)

// WithRadius generates a (2r+1)x(2r+1) ring of chunk columns at Y=0 instead
// of the single origin chunk.
func WithRadius(r int) ManagerOption {
	return func(m *ChunkManager) {
		if r > 0 {
			m.radius = r
		}
	}
}

// WithLogger sets the logger used for generation messages.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *ChunkManager) {
		m.log = l
	}
}

// NewChunkManager creates an empty manager that will populate chunks with gen.
func NewChunkManager(gen Generator, opts ...ManagerOption) *ChunkManager {
	m := &ChunkManager{
		index: make(map[ChunkCoord]*Chunk),
		gen:   gen,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// EnsureChunks runs the generator if the collection is empty. Calling it again
// afterwards does nothing.
func (m *ChunkManager) EnsureChunks() {
	if len(m.chunks) > 0 {
		return
	}
	defer profiling.Track("world.EnsureChunks")()

	for dz := -m.radius; dz <= m.radius; dz++ {
		for dx := -m.radius; dx <= m.radius; dx++ {
			c := NewChunk(ChunkCoord{X: dx, Y: 0, Z: dz})
			m.gen.Populate(c)
			m.Add(c)
		}
	}
	m.log.Info("generated chunks", "count", len(m.chunks), "radius", m.radius)
}

// Add appends a chunk. A chunk already present at the same coordinate is replaced
// in place, keeping its position in the ordering.
func (m *ChunkManager) Add(c *Chunk) {
	if old, ok := m.index[c.Position]; ok {
		for i := range m.chunks {
			if m.chunks[i] == old {
				m.chunks[i] = c
				break
			}
		}
	} else {
		m.chunks = append(m.chunks, c)
	}
	m.index[c.Position] = c
}

// Chunks returns the chunks in insertion order. The slice is shared; do not modify it.
func (m *ChunkManager) Chunks() []*Chunk {
	return m.chunks
}

// Chunk returns the chunk at coord if it exists.
func (m *ChunkManager) Chunk(coord ChunkCoord) (*Chunk, bool) {
	c, ok := m.index[coord]
	return c, ok
}

// Len returns the number of chunks held.
func (m *ChunkManager) Len() int {
	return len(m.chunks)
}

// LoadFrom adds every chunk found in store. It returns the number loaded;
// callers typically fall back to EnsureChunks when that is zero.
func (m *ChunkManager) LoadFrom(store *ChunkStore) (int, error) {
	defer profiling.Track("world.LoadFrom")()

	chunks, err := store.LoadAll()
	if err != nil {
		return 0, err
	}
	for _, c := range chunks {
		m.Add(c)
	}
	if len(chunks) > 0 {
		m.log.Info("loaded chunks", "count", len(chunks), "dir", store.dir)
	}
	return len(chunks), nil
}

// SaveTo writes every chunk to store.
func (m *ChunkManager) SaveTo(store *ChunkStore) error {
	defer profiling.Track("world.SaveTo")()

	for _, c := range m.chunks {
		if err := store.Save(c); err != nil {
			return fmt.Errorf("save chunk %s: %w", c.Position, err)
		}
	}
	m.log.Info("saved chunks", "count", len(m.chunks), "dir", store.dir)
	return nil
}

// Bounds returns the world-space box covering every held chunk's cells.
// With no chunks both corners are zero.
func (m *ChunkManager) Bounds() (lo, hi mgl32.Vec3) {
	for i, c := range m.chunks {
		cmin := c.Position.WorldOrigin()
		cmax := cmin.Add(mgl32.Vec3{ChunkSize, ChunkSize, ChunkSize})
		if i == 0 {
			lo, hi = cmin, cmax
			continue
		}
		for a := 0; a < 3; a++ {
			lo[a] = min(lo[a], cmin[a])
			hi[a] = max(hi[a], cmax[a])
		}
	}
	return lo, hi
}
