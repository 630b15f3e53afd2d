package assets

import (
	"image"
	"time"
)

// GameData is the pack header.
type GameData struct {
	Name          string  `cbor:"name"`
	DisplayName   string  `cbor:"displayName"`
	FileName      string  `cbor:"fileName"`
	Major         int32   `cbor:"major"`
	Minor         int32   `cbor:"minor"`
	Release       int32   `cbor:"release"`
	Build         int32   `cbor:"build"`
	DefaultWidth  int32   `cbor:"defaultWidth"`
	DefaultHeight int32   `cbor:"defaultHeight"`
	FPS           float64 `cbor:"fps"`
	LastObjectID  int32   `cbor:"lastObjectId"`
	LastTileID    int32   `cbor:"lastTileId"`
	RoomOrder     []int32 `cbor:"roomOrder"`
}

// AssetType is the category an AssetIndex entry points into.
type AssetType uint8

const (
	AssetObject AssetType = iota
	AssetSprite
	AssetSound
	AssetRoom
	AssetBackground
	AssetPath
	AssetScript
	AssetFont
	AssetTimeline
	AssetShader
	AssetSequence
	AssetAnimCurve
	AssetParticleSystem
)

// AssetIndex maps an asset name to its index in its category.
type AssetIndex struct {
	Name  string    `cbor:"name"`
	Type  AssetType `cbor:"type"`
	Index int32     `cbor:"index"`
}

type ExtensionFunction struct {
	Name         string  `cbor:"name"`
	ExternalName string  `cbor:"externalName"`
	ID           int32   `cbor:"id"`
	Kind         int32   `cbor:"kind"`
	ReturnType   int32   `cbor:"returnType"`
	Arguments    []int32 `cbor:"arguments"`
}

type ExtensionFile struct {
	Filename    string              `cbor:"filename"`
	InitScript  string              `cbor:"initScript"`
	FinalScript string              `cbor:"finalScript"`
	Kind        int32               `cbor:"kind"`
	Functions   []ExtensionFunction `cbor:"functions"`
}

type Extension struct {
	Name      string          `cbor:"name"`
	ClassName string          `cbor:"className"`
	Version   string          `cbor:"version"`
	Files     []ExtensionFile `cbor:"files"`
}

// TexturePageItem is a rectangle on a named texture page.
type TexturePageItem struct {
	Page         string `cbor:"page"`
	SourceX      int32  `cbor:"sx"`
	SourceY      int32  `cbor:"sy"`
	SourceWidth  int32  `cbor:"sw"`
	SourceHeight int32  `cbor:"sh"`
	TargetX      int32  `cbor:"tx"`
	TargetY      int32  `cbor:"ty"`
	TargetWidth  int32  `cbor:"tw"`
	TargetHeight int32  `cbor:"th"`
	BoundWidth   int32  `cbor:"bw"`
	BoundHeight  int32  `cbor:"bh"`
}

type Sprite struct {
	Name           string            `cbor:"name"`
	AssetIndex     int32             `cbor:"assetIndex"`
	Width          int32             `cbor:"width"`
	Height         int32             `cbor:"height"`
	OriginX        int32             `cbor:"originX"`
	OriginY        int32             `cbor:"originY"`
	MarginLeft     int32             `cbor:"marginLeft"`
	MarginRight    int32             `cbor:"marginRight"`
	MarginTop      int32             `cbor:"marginTop"`
	MarginBottom   int32             `cbor:"marginBottom"`
	Speed          float64           `cbor:"speed"`
	SpeedType      int32             `cbor:"speedType"`
	Textures       []TexturePageItem `cbor:"textures"`
	CollisionMasks [][]byte          `cbor:"masks"`
}

type Glyph struct {
	Character int32 `cbor:"char"`
	X         int32 `cbor:"x"`
	Y         int32 `cbor:"y"`
	Width     int32 `cbor:"w"`
	Height    int32 `cbor:"h"`
	Shift     int32 `cbor:"shift"`
	Offset    int32 `cbor:"offset"`
}

type Font struct {
	Name        string           `cbor:"name"`
	AssetIndex  int32            `cbor:"assetIndex"`
	DisplayName string           `cbor:"displayName"`
	Size        float64          `cbor:"size"`
	Bold        bool             `cbor:"bold"`
	Italic      bool             `cbor:"italic"`
	ScaleX      float64          `cbor:"scaleX"`
	ScaleY      float64          `cbor:"scaleY"`
	Texture     *TexturePageItem `cbor:"texture"`
	Glyphs      []Glyph          `cbor:"glyphs"`
}

// Unbound is the binding slot of a texture page that the renderer has not
// uploaded yet.
const Unbound = -1

// TexturePage is a decoded texture atlas awaiting GPU binding.
type TexturePage struct {
	Name    string
	Image   *image.RGBA
	Binding int
}

type TextureGroup struct {
	GroupName    string   `cbor:"groupName"`
	TexturePages []string `cbor:"texturePages"`
	Sprites      []int32  `cbor:"sprites"`
	Fonts        []int32  `cbor:"fonts"`
	TileSets     []int32  `cbor:"tileSets"`
}

type TileSet struct {
	Name          string           `cbor:"name"`
	AssetIndex    int32            `cbor:"assetIndex"`
	Texture       *TexturePageItem `cbor:"texture"`
	TileWidth     int32            `cbor:"tileWidth"`
	TileHeight    int32            `cbor:"tileHeight"`
	OutputBorderX int32            `cbor:"borderX"`
	OutputBorderY int32            `cbor:"borderY"`
	TileColumns   int32            `cbor:"columns"`
	TileCount     int32            `cbor:"count"`
	FramesPerTile int32            `cbor:"framesPerTile"`
	FrameTime     int64            `cbor:"frameTime"`
	TileIDs       []int32          `cbor:"tileIds"`
}

type Background struct {
	Name        string           `cbor:"name"`
	AssetIndex  int32            `cbor:"assetIndex"`
	Transparent bool             `cbor:"transparent"`
	Smooth      bool             `cbor:"smooth"`
	Preload     bool             `cbor:"preload"`
	Texture     *TexturePageItem `cbor:"texture"`
}

type Shader struct {
	Name           string   `cbor:"name"`
	AssetIndex     int32    `cbor:"assetIndex"`
	Kind           int32    `cbor:"kind"`
	VertexSource   string   `cbor:"vertex"`
	FragmentSource string   `cbor:"fragment"`
	Attributes     []string `cbor:"attributes"`
}

// SoundFormat is the container of embedded sound data.
type SoundFormat uint8

const (
	SoundUnknown SoundFormat = iota
	SoundWAV
	SoundMP3
	SoundOGG
)

func (f SoundFormat) String() string {
	switch f {
	case SoundWAV:
		return "wav"
	case SoundMP3:
		return "mp3"
	case SoundOGG:
		return "ogg"
	default:
		return "unknown"
	}
}

// Sound is a sound record. The format fields are filled in by the sound
// loader when Data is embedded.
type Sound struct {
	Name       string  `cbor:"name"`
	AssetIndex int32   `cbor:"assetIndex"`
	Type       string  `cbor:"type"`
	File       string  `cbor:"file"`
	Volume     float64 `cbor:"volume"`
	Pitch      float64 `cbor:"pitch"`
	GroupID    int32   `cbor:"groupId"`
	Data       []byte  `cbor:"data"`

	Format     SoundFormat   `cbor:"-"`
	SampleRate int           `cbor:"-"`
	Channels   int           `cbor:"-"`
	Duration   time.Duration `cbor:"-"`
}

type PathPoint struct {
	_     struct{} `cbor:",toarray"`
	X     float64
	Y     float64
	Speed float64
}

// PathRecord is a path as stored in the pack.
type PathRecord struct {
	Name      string      `cbor:"name"`
	IsSmooth  bool        `cbor:"smooth"`
	IsClosed  bool        `cbor:"closed"`
	Precision int32       `cbor:"precision"`
	Points    []PathPoint `cbor:"points"`
}

// Path is the runtime path value. Length and the per point distances are
// derived by the geometry step after load.
type Path struct {
	Name      string
	Closed    bool
	Smooth    bool
	Precision int32
	Points    []PathPoint

	Length    float64
	Distances []float64
}

func (p *Path) Count() int { return len(p.Points) }
