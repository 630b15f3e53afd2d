package catalog

import (
	"github.com/zeusync/gmruntime/internal/core/assets"
	"github.com/zeusync/gmruntime/pkg/sequence"
)

// Catalog owns every registry produced by a load. Consumers hold it for the
// lifetime of the game and call Close on shutdown.
type Catalog struct {
	Header assets.GameData

	AssetIndex     *Registry[string, assets.AssetIndex]
	ScriptsByName  *Registry[string, *assets.Script]
	ScriptsByIndex *Registry[int32, *assets.Script]
	Code           *Registry[int32, *assets.Code]
	Objects        *Registry[int32, *assets.ObjectDefinition]
	Backgrounds    *Registry[int32, *assets.Background]
	Rooms          *Registry[int32, *assets.Room]
	Sprites        *Registry[int32, *assets.Sprite]
	TexturePages   *Registry[string, *assets.TexturePage]
	TextureGroups  *Registry[string, *assets.TextureGroup]
	TileSets       *Registry[int32, *assets.TileSet]
	Sounds         *Registry[int32, *assets.Sound]
	Paths          *Registry[int32, *assets.Path]
	Shaders        *Registry[int32, *assets.Shader]

	Extensions []*assets.Extension
	GlobalInit []*assets.Code
	Fonts      []*assets.Font

	closed bool
}

func New() *Catalog {
	return &Catalog{
		AssetIndex:     NewRegistry[string, assets.AssetIndex]("asset index"),
		ScriptsByName:  NewRegistry[string, *assets.Script]("script name"),
		ScriptsByIndex: NewRegistry[int32, *assets.Script]("script index"),
		Code:           NewRegistry[int32, *assets.Code]("code"),
		Objects:        NewRegistry[int32, *assets.ObjectDefinition]("object"),
		Backgrounds:    NewRegistry[int32, *assets.Background]("background"),
		Rooms:          NewRegistry[int32, *assets.Room]("room"),
		Sprites:        NewRegistry[int32, *assets.Sprite]("sprite"),
		TexturePages:   NewRegistry[string, *assets.TexturePage]("texture page"),
		TextureGroups:  NewRegistry[string, *assets.TextureGroup]("texture group"),
		TileSets:       NewRegistry[int32, *assets.TileSet]("tile set"),
		Sounds:         NewRegistry[int32, *assets.Sound]("sound"),
		Paths:          NewRegistry[int32, *assets.Path]("path"),
		Shaders:        NewRegistry[int32, *assets.Shader]("shader"),
	}
}

// AddScript registers s under both its name and its asset index.
func (c *Catalog) AddScript(s *assets.Script) error {
	if err := c.ScriptsByName.Add(s.Name, s); err != nil {
		return err
	}
	return c.ScriptsByIndex.Add(s.AssetIndex, s)
}

func (c *Catalog) ScriptByName(name string) (*assets.Script, bool) {
	return c.ScriptsByName.Get(name)
}

func (c *Catalog) ScriptByIndex(index int32) (*assets.Script, bool) {
	return c.ScriptsByIndex.Get(index)
}

// CodeByName finds a code unit by name. It is a linear scan; the VM
// resolves by id.
func (c *Catalog) CodeByName(name string) (*assets.Code, bool) {
	return c.Code.All().Find(func(code *assets.Code) bool { return code.Name == name })
}

// ObjectByName finds an object template by name.
func (c *Catalog) ObjectByName(name string) (*assets.ObjectDefinition, bool) {
	return c.Objects.All().Find(func(o *assets.ObjectDefinition) bool { return o.Name == name })
}

// Children lists the templates whose direct parent is o, by id.
func (c *Catalog) Children(o *assets.ObjectDefinition) []*assets.ObjectDefinition {
	return c.Objects.All().Filter(func(child *assets.ObjectDefinition) bool { return child.Parent == o }).Collect()
}

// FontByIndex looks a font up by its asset index.
func (c *Catalog) FontByIndex(index int32) (*assets.Font, bool) {
	return sequence.From(c.Fonts).Find(func(f *assets.Font) bool { return f.AssetIndex == index })
}

// Instances walks every placed instance, room by room in id order.
func (c *Catalog) Instances() *sequence.Iterator[assets.RoomInstance] {
	layers := sequence.Flatten(sequence.Map(c.Rooms.All(), func(r *assets.Room) []assets.Layer {
		return r.Layers
	}))
	elements := sequence.Flatten(sequence.Map(layers, func(l assets.Layer) []assets.LayerElement {
		return l.Elements
	}))
	return sequence.Flatten(sequence.Map(elements, func(el assets.LayerElement) []assets.RoomInstance {
		if e, ok := el.(*assets.InstancesElement); ok {
			return e.Instances
		}
		return nil
	}))
}

// RoomsInOrder returns rooms in the header's room order. Ids missing from
// the registry are skipped.
func (c *Catalog) RoomsInOrder() []*assets.Room {
	out := make([]*assets.Room, 0, len(c.Header.RoomOrder))
	for _, id := range c.Header.RoomOrder {
		if room, ok := c.Rooms.Get(id); ok {
			out = append(out, room)
		}
	}
	return out
}

// Stats reports the number of entries per registry.
type Stats struct {
	Scripts       int
	Code          int
	Extensions    int
	GlobalInit    int
	Objects       int
	Backgrounds   int
	Rooms         int
	Instances     int
	Sprites       int
	Fonts         int
	TexturePages  int
	TextureGroups int
	TileSets      int
	Sounds        int
	Paths         int
	Shaders       int
}

func (c *Catalog) Stats() Stats {
	return Stats{
		Scripts:       c.ScriptsByName.Len(),
		Code:          c.Code.Len(),
		Extensions:    len(c.Extensions),
		GlobalInit:    len(c.GlobalInit),
		Objects:       c.Objects.Len(),
		Backgrounds:   c.Backgrounds.Len(),
		Rooms:         c.Rooms.Len(),
		Instances:     c.Instances().Count(),
		Sprites:       c.Sprites.Len(),
		Fonts:         len(c.Fonts),
		TexturePages:  c.TexturePages.Len(),
		TextureGroups: c.TextureGroups.Len(),
		TileSets:      c.TileSets.Len(),
		Sounds:        c.Sounds.Len(),
		Paths:         c.Paths.Len(),
		Shaders:       c.Shaders.Len(),
	}
}

// Close drops every registry. It is safe to call more than once.
func (c *Catalog) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	c.AssetIndex.clear()
	c.ScriptsByName.clear()
	c.ScriptsByIndex.clear()
	c.Code.clear()
	c.Objects.clear()
	c.Backgrounds.clear()
	c.Rooms.clear()
	c.Sprites.clear()
	c.TexturePages.clear()
	c.TextureGroups.clear()
	c.TileSets.clear()
	c.Sounds.clear()
	c.Paths.clear()
	c.Shaders.clear()
	c.Extensions = nil
	c.GlobalInit = nil
	c.Fonts = nil
	return nil
}

func (c *Catalog) Closed() bool {
	return c.closed
}
