package world

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const chunkFileExt = ".gck"

// ChunkStore persists chunks as one compressed file per chunk under a directory.
type ChunkStore struct {
	dir string
}

// NewChunkStore creates a store rooted at dir, creating the directory if needed.
func NewChunkStore(dir string) (*ChunkStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chunk dir: %w", err)
	}
	return &ChunkStore{dir: dir}, nil
}

func (cs *ChunkStore) path(coord ChunkCoord) string {
	return filepath.Join(cs.dir, fmt.Sprintf("c.%d.%d.%d%s", coord.X, coord.Y, coord.Z, chunkFileExt))
}

// Save writes c, replacing any previous file for the same coordinate.
func (cs *ChunkStore) Save(c *Chunk) error {
	final := cs.path(c.Position)
	tmp := final + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	if err := EncodeChunk(f, c); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	return os.Rename(tmp, final)
}

// Load reads the chunk at coord. A missing file returns an error wrapping fs.ErrNotExist.
func (cs *ChunkStore) Load(coord ChunkCoord) (*Chunk, error) {
	f, err := os.Open(cs.path(coord))
	if err != nil {
		return nil, fmt.Errorf("open chunk %s: %w", coord, err)
	}
	defer f.Close()

	c, err := DecodeChunk(f)
	if err != nil {
		return nil, fmt.Errorf("decode chunk %s: %w", coord, err)
	}
	if c.Position != coord {
		return nil, fmt.Errorf("chunk file %s holds %s", coord, c.Position)
	}
	return c, nil
}

// LoadAll reads every chunk file in the store, sorted by file name.
func (cs *ChunkStore) LoadAll() ([]*Chunk, error) {
	entries, err := os.ReadDir(cs.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list chunk dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), chunkFileExt) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	chunks := make([]*Chunk, 0, len(names))
	for _, name := range names {
		f, err := os.Open(filepath.Join(cs.dir, name))
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		c, err := DecodeChunk(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		chunks = append(chunks, c)
	}
	return chunks, nil
}
