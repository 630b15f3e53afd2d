package assets

import (
	"errors"
	"fmt"
)

var ErrUnknownElementKind = errors.New("unknown layer element kind")

// Room is a collection of layers plus the room level settings.
type Room struct {
	Name           string  `cbor:"name"`
	AssetID        int32   `cbor:"assetId"`
	Caption        string  `cbor:"caption"`
	Width          int32   `cbor:"width"`
	Height         int32   `cbor:"height"`
	Speed          int32   `cbor:"speed"`
	Persistent     bool    `cbor:"persistent"`
	CreationCodeID int32   `cbor:"creationCodeId"`
	Layers         []Layer `cbor:"layers"`

	// CreationCode is resolved by the loader.
	CreationCode *Code `cbor:"-"`
}

// Layer holds an ordered list of elements at one depth.
type Layer struct {
	Name     string
	ID       int32
	Depth    int32
	XOffset  float64
	YOffset  float64
	Visible  bool
	Elements []LayerElement
}

// ElementKind tags the concrete type of a LayerElement on the wire.
type ElementKind uint8

const (
	ElementBackground ElementKind = iota + 1
	ElementInstances
	ElementSprite
	ElementTilemap
)

// LayerElement is one of *BackgroundElement, *InstancesElement,
// *SpriteElement or *TilemapElement.
type LayerElement interface {
	Kind() ElementKind
	isLayerElement()
}

type BackgroundElement struct {
	ID       int32   `cbor:"id"`
	SpriteID int32   `cbor:"spriteId"`
	Visible  bool    `cbor:"visible"`
	Stretch  bool    `cbor:"stretch"`
	HTiled   bool    `cbor:"htiled"`
	VTiled   bool    `cbor:"vtiled"`
	Color    uint32  `cbor:"color"`
	Alpha    float64 `cbor:"alpha"`
}

// RoomInstance places an object in a room.
type RoomInstance struct {
	InstanceID      int32   `cbor:"instanceId"`
	ObjectID        int32   `cbor:"objectId"`
	X               float64 `cbor:"x"`
	Y               float64 `cbor:"y"`
	ScaleX          float64 `cbor:"scaleX"`
	ScaleY          float64 `cbor:"scaleY"`
	Rotation        float64 `cbor:"rotation"`
	CreationCodeID  int32   `cbor:"creationCodeId"`
	PreCreateCodeID int32   `cbor:"preCreateCodeId"`
}

type InstancesElement struct {
	ID        int32          `cbor:"id"`
	Instances []RoomInstance `cbor:"instances"`
}

type SpriteElement struct {
	ID         int32   `cbor:"id"`
	Name       string  `cbor:"name"`
	SpriteID   int32   `cbor:"spriteId"`
	X          float64 `cbor:"x"`
	Y          float64 `cbor:"y"`
	ImageIndex int32   `cbor:"imageIndex"`
	ImageSpeed float64 `cbor:"imageSpeed"`
}

// TilemapElement holds a height by width grid. Tiles is the packed form
// read from the pack; the loader decodes it into TilesData and drops it.
type TilemapElement struct {
	ID        int32      `cbor:"id"`
	TileSetID int32      `cbor:"tileSetId"`
	X         float64    `cbor:"x"`
	Y         float64    `cbor:"y"`
	Width     int32      `cbor:"width"`
	Height    int32      `cbor:"height"`
	Tiles     [][]uint32 `cbor:"tiles"`

	TilesData [][]Tile `cbor:"-"`
}

// Tile is a decoded tile map cell.
type Tile struct {
	Index  uint32
	Mirror bool
	Flip   bool
	Rotate bool
	Empty  bool
}

func (*BackgroundElement) Kind() ElementKind { return ElementBackground }
func (*InstancesElement) Kind() ElementKind  { return ElementInstances }
func (*SpriteElement) Kind() ElementKind     { return ElementSprite }
func (*TilemapElement) Kind() ElementKind    { return ElementTilemap }

func (*BackgroundElement) isLayerElement() {}
func (*InstancesElement) isLayerElement()  {}
func (*SpriteElement) isLayerElement()     {}
func (*TilemapElement) isLayerElement()    {}

// wireElement is the tagged union form of a LayerElement in the pack.
type wireElement struct {
	Kind       ElementKind        `cbor:"kind"`
	Background *BackgroundElement `cbor:"background,omitempty"`
	Instances  *InstancesElement  `cbor:"instances,omitempty"`
	Sprite     *SpriteElement     `cbor:"sprite,omitempty"`
	Tilemap    *TilemapElement    `cbor:"tilemap,omitempty"`
}

type wireLayer struct {
	Name     string        `cbor:"name"`
	ID       int32         `cbor:"id"`
	Depth    int32         `cbor:"depth"`
	XOffset  float64       `cbor:"xOffset"`
	YOffset  float64       `cbor:"yOffset"`
	Visible  bool          `cbor:"visible"`
	Elements []wireElement `cbor:"elements"`
}

func (l Layer) MarshalCBOR() ([]byte, error) {
	w := wireLayer{
		Name:     l.Name,
		ID:       l.ID,
		Depth:    l.Depth,
		XOffset:  l.XOffset,
		YOffset:  l.YOffset,
		Visible:  l.Visible,
		Elements: make([]wireElement, 0, len(l.Elements)),
	}
	for _, el := range l.Elements {
		we := wireElement{Kind: el.Kind()}
		switch e := el.(type) {
		case *BackgroundElement:
			we.Background = e
		case *InstancesElement:
			we.Instances = e
		case *SpriteElement:
			we.Sprite = e
		case *TilemapElement:
			we.Tilemap = e
		}
		w.Elements = append(w.Elements, we)
	}
	return EncMode.Marshal(w)
}

func (l *Layer) UnmarshalCBOR(data []byte) error {
	var w wireLayer
	if err := DecMode.Unmarshal(data, &w); err != nil {
		return err
	}
	*l = Layer{
		Name:     w.Name,
		ID:       w.ID,
		Depth:    w.Depth,
		XOffset:  w.XOffset,
		YOffset:  w.YOffset,
		Visible:  w.Visible,
		Elements: make([]LayerElement, 0, len(w.Elements)),
	}
	for i, we := range w.Elements {
		var el LayerElement
		switch we.Kind {
		case ElementBackground:
			el = we.Background
		case ElementInstances:
			el = we.Instances
		case ElementSprite:
			el = we.Sprite
		case ElementTilemap:
			el = we.Tilemap
		default:
			return fmt.Errorf("%w: layer %q element %d kind %d", ErrUnknownElementKind, w.Name, i, we.Kind)
		}
		if isNilElement(el) {
			return fmt.Errorf("%w: layer %q element %d has no %d payload", ErrUnknownElementKind, w.Name, i, we.Kind)
		}
		l.Elements = append(l.Elements, el)
	}
	return nil
}

func isNilElement(el LayerElement) bool {
	switch e := el.(type) {
	case *BackgroundElement:
		return e == nil
	case *InstancesElement:
		return e == nil
	case *SpriteElement:
		return e == nil
	case *TilemapElement:
		return e == nil
	default:
		return true
	}
}
