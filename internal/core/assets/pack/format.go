package pack

import (
	"io"

	"github.com/zeusync/gmruntime/internal/core/assets"
)

// Category is one section of the pack. Sections appear in Order and later
// sections may reference ids introduced by earlier ones.
type Category uint8

const (
	CategoryHeader Category = iota
	CategoryAssetIndex
	CategoryScripts
	CategoryCode
	CategoryExtensions
	CategoryGlobalInit
	CategoryObjects
	CategoryBackgrounds
	CategoryRooms
	CategorySprites
	CategoryFonts
	CategoryTexturePages
	CategoryTextureGroups
	CategoryTileSets
	CategorySounds
	CategoryPaths
	CategoryShaders
)

// Order is the section order of the format.
var Order = []Category{
	CategoryHeader,
	CategoryAssetIndex,
	CategoryScripts,
	CategoryCode,
	CategoryExtensions,
	CategoryGlobalInit,
	CategoryObjects,
	CategoryBackgrounds,
	CategoryRooms,
	CategorySprites,
	CategoryFonts,
	CategoryTexturePages,
	CategoryTextureGroups,
	CategoryTileSets,
	CategorySounds,
	CategoryPaths,
	CategoryShaders,
}

var categoryNames = [...]string{
	CategoryHeader:        "header",
	CategoryAssetIndex:    "asset index",
	CategoryScripts:       "scripts",
	CategoryCode:          "code",
	CategoryExtensions:    "extensions",
	CategoryGlobalInit:    "global init",
	CategoryObjects:       "objects",
	CategoryBackgrounds:   "backgrounds",
	CategoryRooms:         "rooms",
	CategorySprites:       "sprites",
	CategoryFonts:         "fonts",
	CategoryTexturePages:  "texture pages",
	CategoryTextureGroups: "texture groups",
	CategoryTileSets:      "tile sets",
	CategorySounds:        "sounds",
	CategoryPaths:         "paths",
	CategoryShaders:       "shaders",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// TexturePageBlob is a texture page as stored: a name and an encoded image.
type TexturePageBlob struct {
	Name string
	Blob []byte
}

// Contents is everything a pack holds, in stream form.
type Contents struct {
	Header        assets.GameData
	AssetIndexes  []assets.AssetIndex
	Scripts       []assets.Script
	Code          []assets.Code
	Extensions    []assets.Extension
	GlobalInit    []int32
	Objects       []assets.ObjectDefinition
	Backgrounds   []assets.Background
	Rooms         []assets.Room
	Sprites       []assets.Sprite
	Fonts         []assets.Font
	TexturePages  []TexturePageBlob
	TextureGroups []assets.TextureGroup
	TileSets      []assets.TileSet
	Sounds        []assets.Sound
	Paths         []assets.PathRecord
	Shaders       []assets.Shader
}

// Encode writes c in pack order.
func Encode(out io.Writer, c *Contents) error {
	w := NewWriter(out)

	w.WriteRecord(&c.Header)
	WriteCategory(w, c.AssetIndexes)
	WriteCategory(w, c.Scripts)
	WriteCategory(w, c.Code)
	WriteCategory(w, c.Extensions)

	w.WriteInt32(int32(len(c.GlobalInit)))
	for _, id := range c.GlobalInit {
		w.WriteInt32(id)
	}

	WriteCategory(w, c.Objects)
	WriteCategory(w, c.Backgrounds)
	WriteCategory(w, c.Rooms)
	WriteCategory(w, c.Sprites)
	WriteCategory(w, c.Fonts)

	w.WriteInt32(int32(len(c.TexturePages)))
	for _, page := range c.TexturePages {
		w.WriteString(page.Name)
		w.WriteBlob(page.Blob)
	}

	WriteCategory(w, c.TextureGroups)
	WriteCategory(w, c.TileSets)
	WriteCategory(w, c.Sounds)
	WriteCategory(w, c.Paths)
	WriteCategory(w, c.Shaders)

	return w.Flush()
}
