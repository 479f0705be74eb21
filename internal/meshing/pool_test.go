package meshing

import (
	"context"
	"testing"
	"time"

	"gamecraft/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshAllPreservesOrder(t *testing.T) {
	pool := NewWorkerPool(4, 8)
	defer pool.Shutdown()

	gen := world.NewFlatGenerator(2)
	var chunks []*world.Chunk
	for i := 0; i < 10; i++ {
		c := world.NewChunk(world.ChunkCoord{X: i})
		if i%2 == 0 {
			gen.Populate(c)
		}
		chunks = append(chunks, c)
	}

	results, err := MeshAll(context.Background(), pool, chunks)
	require.NoError(t, err)
	require.Len(t, results, len(chunks))

	for i, r := range results {
		require.NoError(t, r.Error)
		assert.Equal(t, i, r.Seq)
		assert.Equal(t, chunks[i].Position, r.Coord)
		assert.Equal(t, GenerateMesh(chunks[i]), r.Mesh)
		if i%2 == 1 {
			assert.True(t, r.Mesh.IsEmpty())
		}
	}
}

func TestMeshAllUsesSnapshots(t *testing.T) {
	pool := NewWorkerPool(1, 1)
	defer pool.Shutdown()

	c := world.NewChunk(world.ChunkCoord{})
	c.SetBlock(1, 1, 1, world.Stone)

	results, err := MeshAll(context.Background(), pool, []*world.Chunk{c})
	require.NoError(t, err)
	// Writing after the call must not affect the returned mesh.
	c.SetBlock(2, 1, 1, world.Stone)
	assert.Equal(t, 6, results[0].Mesh.QuadCount())
}

func TestMeshAllCancelled(t *testing.T) {
	pool := NewWorkerPool(1, 0)
	defer pool.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	chunks := []*world.Chunk{world.NewChunk(world.ChunkCoord{}), world.NewChunk(world.ChunkCoord{X: 1})}
	_, err := MeshAll(ctx, pool, chunks)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubmitJobAfterShutdown(t *testing.T) {
	pool := NewWorkerPool(2, 4)
	pool.Shutdown()
	pool.Shutdown()

	ch := make(chan MeshResult, 1)
	assert.False(t, pool.SubmitJob(MeshJob{Chunk: world.NewChunk(world.ChunkCoord{}), ResultChan: ch}))

	err := pool.SubmitJobBlocking(context.Background(), MeshJob{Chunk: world.NewChunk(world.ChunkCoord{}), ResultChan: make(chan MeshResult)})
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestSubmitJobDeliversResult(t *testing.T) {
	pool := NewWorkerPool(1, 1)
	defer pool.Shutdown()

	c := world.NewChunk(world.ChunkCoord{Y: 3})
	c.SetBlock(0, 0, 0, world.Wood)
	ch := make(chan MeshResult, 1)
	require.True(t, pool.SubmitJob(MeshJob{Chunk: c, ResultChan: ch, Seq: 7}))

	select {
	case r := <-ch:
		require.NoError(t, r.Error)
		assert.Equal(t, 7, r.Seq)
		assert.Equal(t, world.ChunkCoord{Y: 3}, r.Coord)
		assert.Equal(t, 6, r.Mesh.QuadCount())
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for mesh result")
	}
}

func TestNilChunkJobReportsError(t *testing.T) {
	r := runJob(MeshJob{Seq: 3})
	assert.Error(t, r.Error)
	assert.Equal(t, 3, r.Seq)
	assert.Nil(t, r.Mesh)
}
