package world

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Chunk file layout (inside a zstd stream):
//
//	magic  [4]byte "GCK1"
//	coord  3 x int32 little endian (X, Y, Z)
//	ids    ChunkVolume bytes in Index(x,y,z) order
var chunkMagic = [4]byte{'G', 'C', 'K', '1'}

var (
	ErrBadMagic   = errors.New("world: not a chunk stream")
	ErrShortChunk = errors.New("world: truncated chunk data")
)

const chunkHeaderSize = 4 + 3*4

// EncodeChunk writes c to w as a zstd-compressed chunk record.
func EncodeChunk(w io.Writer, c *Chunk) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}

	buf := make([]byte, chunkHeaderSize+ChunkVolume)
	copy(buf[0:4], chunkMagic[:])
	binary.LittleEndian.PutUint32(buf[4:8], uint32(int32(c.Position.X)))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(int32(c.Position.Y)))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(int32(c.Position.Z)))
	ids := buf[chunkHeaderSize:]
	for i, b := range c.blocks {
		ids[i] = byte(b.ID)
	}

	if _, err := enc.Write(buf); err != nil {
		_ = enc.Close()
		return fmt.Errorf("write chunk %s: %w", c.Position, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush chunk %s: %w", c.Position, err)
	}
	return nil
}

// DecodeChunk reads one chunk record written by EncodeChunk. Ids missing from
// the registry decode to bare Block{ID: id} values.
func DecodeChunk(r io.Reader) (*Chunk, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer dec.Close()

	buf := make([]byte, chunkHeaderSize+ChunkVolume)
	if _, err := io.ReadFull(dec, buf[:4]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrShortChunk
		}
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if [4]byte(buf[:4]) != chunkMagic {
		return nil, ErrBadMagic
	}
	if _, err := io.ReadFull(dec, buf[4:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrShortChunk
		}
		return nil, fmt.Errorf("read chunk body: %w", err)
	}

	pos := ChunkCoord{
		X: int(int32(binary.LittleEndian.Uint32(buf[4:8]))),
		Y: int(int32(binary.LittleEndian.Uint32(buf[8:12]))),
		Z: int(int32(binary.LittleEndian.Uint32(buf[12:16]))),
	}
	c := NewChunk(pos)
	for i, id := range buf[chunkHeaderSize:] {
		c.blocks[i], _ = Lookup(BlockID(id))
	}
	return c, nil
}
