package graphics

import "github.com/zeusync/gmruntime/internal/core/assets"

// Packed tile layout: the low 19 bits hold the tile index, bits 28 to 30
// hold the mirror, flip and rotate flags.
const (
	TileIndexMask uint32 = 0x7FFFF
	TileMirrorBit uint32 = 1 << 28
	TileFlipBit   uint32 = 1 << 29
	TileRotateBit uint32 = 1 << 30
)

// DecodeTile unpacks one tile map cell. Index 0 is the empty tile.
func DecodeTile(blob uint32) assets.Tile {
	index := blob & TileIndexMask
	return assets.Tile{
		Index:  index,
		Mirror: blob&TileMirrorBit != 0,
		Flip:   blob&TileFlipBit != 0,
		Rotate: blob&TileRotateBit != 0,
		Empty:  index == 0,
	}
}

// EncodeTile is the inverse of DecodeTile. Index bits above the mask are
// dropped.
func EncodeTile(t assets.Tile) uint32 {
	blob := t.Index & TileIndexMask
	if t.Mirror {
		blob |= TileMirrorBit
	}
	if t.Flip {
		blob |= TileFlipBit
	}
	if t.Rotate {
		blob |= TileRotateBit
	}
	return blob
}

// DecodeGrid decodes a packed grid into height rows of width cells. It
// reports false if the grid does not have exactly that shape.
func DecodeGrid(packed [][]uint32, width, height int) ([][]assets.Tile, bool) {
	if width < 0 || height < 0 || len(packed) != height {
		return nil, false
	}
	out := make([][]assets.Tile, height)
	for row := range packed {
		if len(packed[row]) != width {
			return nil, false
		}
		cells := make([]assets.Tile, width)
		for col, blob := range packed[row] {
			cells[col] = DecodeTile(blob)
		}
		out[row] = cells
	}
	return out, true
}
