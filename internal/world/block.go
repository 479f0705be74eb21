package world

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
)

// BlockID identifies a block kind. Any 8-bit value is representable.
type BlockID uint8

// AirID is reserved for empty space.
const AirID BlockID = 0

// Block is an immutable registry entry. Chunks store the full value per cell
// so meshing never needs an id -> Block lookup.
type Block struct {
	ID    BlockID
	Name  string
	Color mgl32.Vec4
}

// IsAir reports whether the block is empty space.
func (b Block) IsAir() bool {
	return b.ID == AirID
}

// ColorFromRGBA converts an 8-bit color to normalized RGBA.
func ColorFromRGBA(c color.RGBA) mgl32.Vec4 {
	return mgl32.Vec4{
		float32(c.R) / 255.0,
		float32(c.G) / 255.0,
		float32(c.B) / 255.0,
		float32(c.A) / 255.0,
	}
}

// Registered block kinds
var (
	Air    = Block{ID: 0, Name: "air", Color: mgl32.Vec4{0, 0, 0, 0}}
	Grass  = Block{ID: 1, Name: "grass", Color: ColorFromRGBA(colornames.Forestgreen)}
	Dirt   = Block{ID: 2, Name: "dirt", Color: ColorFromRGBA(colornames.Saddlebrown)}
	Stone  = Block{ID: 3, Name: "stone", Color: ColorFromRGBA(colornames.Gray)}
	Sand   = Block{ID: 4, Name: "sand", Color: ColorFromRGBA(colornames.Khaki)}
	Water  = Block{ID: 5, Name: "water", Color: withAlpha(ColorFromRGBA(colornames.Royalblue), 0.7)}
	Wood   = Block{ID: 6, Name: "wood", Color: ColorFromRGBA(colornames.Sienna)}
	Leaves = Block{ID: 7, Name: "leaves", Color: ColorFromRGBA(colornames.Darkgreen)}
)

// Registry lists every registered block kind.
// New kinds can be appended without touching the mesher.
var Registry = []Block{Air, Grass, Dirt, Stone, Sand, Water, Wood, Leaves}

var registryByID = func() map[BlockID]Block {
	m := make(map[BlockID]Block, len(Registry))
	for _, b := range Registry {
		m[b.ID] = b
	}
	return m
}()

// Lookup returns the registered block for id. Unknown ids return a bare
// Block carrying only the id and false.
func Lookup(id BlockID) (Block, bool) {
	b, ok := registryByID[id]
	if !ok {
		return Block{ID: id}, false
	}
	return b, true
}

// LookupName finds a registered block by its label.
func LookupName(name string) (Block, bool) {
	for _, b := range Registry {
		if b.Name == name {
			return b, true
		}
	}
	return Block{}, false
}

func withAlpha(c mgl32.Vec4, a float32) mgl32.Vec4 {
	c[3] = a
	return c
}
