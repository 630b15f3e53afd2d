package graphics

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/gmruntime/internal/core/assets"
)

func TestDecodeTile(t *testing.T) {
	tests := []struct {
		name string
		blob uint32
		want assets.Tile
	}{
		{"empty", 0, assets.Tile{Empty: true}},
		{"plain", 42, assets.Tile{Index: 42}},
		{"mirror", 42 | TileMirrorBit, assets.Tile{Index: 42, Mirror: true}},
		{"flip rotate", 7 | TileFlipBit | TileRotateBit, assets.Tile{Index: 7, Flip: true, Rotate: true}},
		{"flags on empty", TileMirrorBit, assets.Tile{Mirror: true, Empty: true}},
		{"index masked", 0x80001, assets.Tile{Index: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DecodeTile(tt.blob))
		})
	}
}

func TestEncodeTile_Inverse(t *testing.T) {
	for _, blob := range []uint32{0, 1, 42 | TileMirrorBit, 7 | TileFlipBit | TileRotateBit, TileIndexMask} {
		require.Equal(t, blob, EncodeTile(DecodeTile(blob)))
	}
}

func TestDecodeGrid(t *testing.T) {
	grid, ok := DecodeGrid([][]uint32{{1, 2, 3}, {0, 5, 6 | TileFlipBit}}, 3, 2)
	require.True(t, ok)
	require.Len(t, grid, 2)
	require.Len(t, grid[0], 3)
	assert.True(t, grid[1][0].Empty)
	assert.Equal(t, uint32(6), grid[1][2].Index)
	assert.True(t, grid[1][2].Flip)

	_, ok = DecodeGrid([][]uint32{{1, 2}}, 3, 1)
	require.False(t, ok)
	_, ok = DecodeGrid([][]uint32{{1, 2, 3}}, 3, 2)
	require.False(t, ok)

	grid, ok = DecodeGrid(nil, 0, 0)
	require.True(t, ok)
	require.Empty(t, grid)
}

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 2, color.NRGBA{R: 255, A: 255})
	return img
}

func TestTextureDecoder_PNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))

	rgba, err := NewTextureDecoder().Decode(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 4, 3), rgba.Bounds())
	require.Equal(t, color.RGBA{R: 255, A: 255}, rgba.RGBAAt(1, 2))
	require.Equal(t, color.RGBA{}, rgba.RGBAAt(0, 0))
}

func TestTextureDecoder_JPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(), nil))

	rgba, err := NewTextureDecoder().Decode(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, 4, rgba.Bounds().Dx())
	require.Equal(t, 3, rgba.Bounds().Dy())
}

func TestTextureDecoder_Garbage(t *testing.T) {
	_, err := NewTextureDecoder().Decode([]byte("not an image"))
	require.ErrorIs(t, err, ErrImageDecode)
}

func TestPathGeometry_Open(t *testing.T) {
	p := &assets.Path{Points: []assets.PathPoint{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 10}}}
	g := NewPathGeometry()
	g.Compute(p)

	require.InDelta(t, 11.0, p.Length, 1e-9)
	require.InDeltaSlice(t, []float64{0, 5, 11}, p.Distances, 1e-9)

	x, y := g.Position(p, 0)
	require.InDelta(t, 0.0, x, 1e-9)
	require.InDelta(t, 0.0, y, 1e-9)

	x, y = g.Position(p, 1)
	require.InDelta(t, 3.0, x, 1e-9)
	require.InDelta(t, 10.0, y, 1e-9)

	// 8 of 11 units: 3 units into the second segment.
	x, y = g.Position(p, 8.0/11.0)
	require.InDelta(t, 3.0, x, 1e-9)
	require.InDelta(t, 7.0, y, 1e-9)
}

func TestPathGeometry_Closed(t *testing.T) {
	p := &assets.Path{Closed: true, Points: []assets.PathPoint{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}}
	g := NewPathGeometry()
	g.Compute(p)

	require.InDelta(t, 40.0, p.Length, 1e-9)

	x, y := g.Position(p, 0.875)
	require.InDelta(t, 0.0, x, 1e-9)
	require.InDelta(t, 5.0, y, 1e-9)
}

func TestPathGeometry_Degenerate(t *testing.T) {
	g := NewPathGeometry()

	empty := &assets.Path{}
	g.Compute(empty)
	require.Zero(t, empty.Length)
	x, y := g.Position(empty, 0.5)
	require.Zero(t, x)
	require.Zero(t, y)

	single := &assets.Path{Closed: true, Points: []assets.PathPoint{{X: 2, Y: 3}}}
	g.Compute(single)
	require.Zero(t, single.Length)
	x, y = g.Position(single, 0.5)
	require.Equal(t, 2.0, x)
	require.Equal(t, 3.0, y)
}
