package loader

import (
	"fmt"

	"github.com/zeusync/gmruntime/internal/core/assets"
	"github.com/zeusync/gmruntime/pkg/sequence"
)

// verify checks the references that may point into categories loaded after
// their owner. Everything else was resolved as it was read.
func (s *session) verify() error {
	cat := s.cat

	for sc := range cat.ScriptsByName.All().Seq() {
		if sc.CodeID != assets.NoID && !cat.Code.Has(sc.CodeID) {
			return fmt.Errorf("%w: script %q code %d", ErrUnresolvedCode, sc.Name, sc.CodeID)
		}
	}
	for c := range cat.Code.All().Seq() {
		if c.ParentAssetID != assets.NoID && !cat.Code.Has(c.ParentAssetID) {
			return fmt.Errorf("%w: code %q parent %d", ErrUnresolvedCode, c.Name, c.ParentAssetID)
		}
	}

	for obj := range cat.Objects.All().Seq() {
		if err := s.sprite(obj.SpriteID, "object %q sprite", obj.Name); err != nil {
			return err
		}
		if err := s.sprite(obj.MaskID, "object %q mask", obj.Name); err != nil {
			return err
		}
		for other := range obj.CollisionScript {
			if !cat.Objects.Has(other) {
				return fmt.Errorf("%w: object %q collides with %d", ErrUnresolvedObject, obj.Name, other)
			}
		}
	}

	for room := range cat.Rooms.All().Seq() {
		if err := s.verifyRoom(room); err != nil {
			return err
		}
	}

	for sp := range cat.Sprites.All().Seq() {
		for i := range sp.Textures {
			if err := s.page(&sp.Textures[i], "sprite %q frame %d", sp.Name, i); err != nil {
				return err
			}
		}
	}
	for _, f := range cat.Fonts {
		if err := s.page(f.Texture, "font %q", f.Name); err != nil {
			return err
		}
	}
	for ts := range cat.TileSets.All().Seq() {
		if err := s.page(ts.Texture, "tile set %q", ts.Name); err != nil {
			return err
		}
	}
	for bg := range cat.Backgrounds.All().Seq() {
		if err := s.page(bg.Texture, "background %q", bg.Name); err != nil {
			return err
		}
	}

	for g := range cat.TextureGroups.All().Seq() {
		if err := s.verifyGroup(g); err != nil {
			return err
		}
	}

	for _, id := range cat.Header.RoomOrder {
		if !cat.Rooms.Has(id) {
			return fmt.Errorf("%w: room order entry %d", ErrUnresolvedAsset, id)
		}
	}
	return nil
}

func (s *session) verifyRoom(room *assets.Room) error {
	for _, layer := range room.Layers {
		for _, el := range layer.Elements {
			var err error
			switch e := el.(type) {
			case *assets.BackgroundElement:
				err = s.sprite(e.SpriteID, "room %q layer %q background", room.Name, layer.Name)
			case *assets.SpriteElement:
				err = s.sprite(e.SpriteID, "room %q layer %q sprite %q", room.Name, layer.Name, e.Name)
			case *assets.TilemapElement:
				if e.TileSetID != assets.NoID && !s.cat.TileSets.Has(e.TileSetID) {
					err = fmt.Errorf("%w: room %q layer %q tile set %d", ErrUnresolvedAsset, room.Name, layer.Name, e.TileSetID)
				}
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *session) verifyGroup(g *assets.TextureGroup) error {
	for _, name := range g.TexturePages {
		if !s.cat.TexturePages.Has(name) {
			return fmt.Errorf("%w: texture group %q page %q", ErrUnresolvedAsset, g.GroupName, name)
		}
	}
	for _, id := range g.Sprites {
		if !s.cat.Sprites.Has(id) {
			return fmt.Errorf("%w: texture group %q sprite %d", ErrUnresolvedAsset, g.GroupName, id)
		}
	}
	fonts := sequence.From(s.cat.Fonts)
	for _, id := range g.Fonts {
		if !fonts.Any(func(f *assets.Font) bool { return f.AssetIndex == id }) {
			return fmt.Errorf("%w: texture group %q font %d", ErrUnresolvedAsset, g.GroupName, id)
		}
	}
	for _, id := range g.TileSets {
		if !s.cat.TileSets.Has(id) {
			return fmt.Errorf("%w: texture group %q tile set %d", ErrUnresolvedAsset, g.GroupName, id)
		}
	}
	return nil
}

// sprite checks an optional sprite reference.
func (s *session) sprite(id int32, format string, args ...any) error {
	if id == assets.NoID || s.cat.Sprites.Has(id) {
		return nil
	}
	return fmt.Errorf("%w: %s %d", ErrUnresolvedAsset, fmt.Sprintf(format, args...), id)
}

// page checks an optional texture page item.
func (s *session) page(item *assets.TexturePageItem, format string, args ...any) error {
	if item == nil || s.cat.TexturePages.Has(item.Page) {
		return nil
	}
	return fmt.Errorf("%w: %s page %q", ErrUnresolvedAsset, fmt.Sprintf(format, args...), item.Page)
}
