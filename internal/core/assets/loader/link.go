package loader

import (
	"fmt"

	"github.com/zeusync/gmruntime/internal/core/assets"
	"github.com/zeusync/gmruntime/internal/core/assets/pack"
	"github.com/zeusync/gmruntime/internal/core/graphics"
)

// loadObjects links event code per record as it is read, then resolves
// parents once every template is registered.
func (s *session) loadObjects() (int, error) {
	var order []*assets.ObjectDefinition
	n, err := pack.ReadCategory(s.r, func(_ int, rec *assets.ObjectDefinition) error {
		if rec.Storage == nil {
			return fmt.Errorf("%w: object %q has no event storage", ErrCorruptPack, rec.Name)
		}
		if err := s.linkEvents(rec); err != nil {
			return fmt.Errorf("object %q: %w", rec.Name, err)
		}
		order = append(order, rec)
		return s.cat.Objects.Add(rec.AssetID, rec)
	})
	if err != nil {
		return n, err
	}

	for _, obj := range order {
		if err = s.linkParent(obj); err != nil {
			return n, err
		}
	}
	for _, obj := range order {
		if err = checkAncestry(obj); err != nil {
			return n, err
		}
		obj.Storage = nil
	}
	return n, nil
}

func (s *session) linkEvents(obj *assets.ObjectDefinition) error {
	st := obj.Storage

	var err error
	if obj.CreateCode, err = s.optionalCode(st.CreateCodeID); err != nil {
		return fmt.Errorf("create: %w", err)
	}
	if obj.DestroyScript, err = s.optionalCode(st.DestroyScriptID); err != nil {
		return fmt.Errorf("destroy: %w", err)
	}
	if obj.CleanUpScript, err = s.optionalCode(st.CleanUpScriptID); err != nil {
		return fmt.Errorf("cleanup: %w", err)
	}
	if obj.PreCreateScript, err = s.optionalCode(st.PreCreateScriptID); err != nil {
		return fmt.Errorf("pre-create: %w", err)
	}

	for _, category := range assets.EventCategories {
		for _, entry := range st.EventIDs(category) {
			if entry.CodeID <= assets.NoID {
				break
			}
			code, err := s.code(entry.CodeID)
			if err != nil {
				return fmt.Errorf("%s %d: %w", category, entry.Subtype, err)
			}
			obj.EventTable(category)[entry.Subtype] = code
		}
	}
	return nil
}

func (s *session) linkParent(obj *assets.ObjectDefinition) error {
	id := obj.Storage.ParentID
	if id == assets.NoID {
		return nil
	}
	parent, ok := s.cat.Objects.Get(id)
	if !ok {
		return fmt.Errorf("%w: object %q parent %d", ErrUnresolvedObject, obj.Name, id)
	}
	obj.Parent = parent
	return nil
}

func checkAncestry(obj *assets.ObjectDefinition) error {
	seen := map[*assets.ObjectDefinition]struct{}{obj: {}}
	for cur := obj.Parent; cur != nil; cur = cur.Parent {
		if _, ok := seen[cur]; ok {
			return fmt.Errorf("%w: through object %q", ErrParentCycle, obj.Name)
		}
		seen[cur] = struct{}{}
	}
	return nil
}

// loadRooms decodes tile grids and resolves code and object references.
// Sprite and tile set references are checked by verify since those
// categories come later.
func (s *session) loadRooms() (int, error) {
	return pack.ReadCategory(s.r, func(_ int, rec *assets.Room) error {
		if err := s.linkRoom(rec); err != nil {
			return fmt.Errorf("room %q: %w", rec.Name, err)
		}
		return s.cat.Rooms.Add(rec.AssetID, rec)
	})
}

func (s *session) linkRoom(room *assets.Room) error {
	var err error
	if room.CreationCode, err = s.optionalCode(room.CreationCodeID); err != nil {
		return fmt.Errorf("creation code: %w", err)
	}

	for li := range room.Layers {
		layer := &room.Layers[li]
		for _, el := range layer.Elements {
			switch e := el.(type) {
			case *assets.TilemapElement:
				grid, ok := graphics.DecodeGrid(e.Tiles, int(e.Width), int(e.Height))
				if !ok {
					return fmt.Errorf("%w: layer %q tilemap %d is not %dx%d", ErrCountMismatch, layer.Name, e.ID, e.Height, e.Width)
				}
				e.TilesData = grid
				e.Tiles = nil
			case *assets.InstancesElement:
				for _, inst := range e.Instances {
					if !s.cat.Objects.Has(inst.ObjectID) {
						return fmt.Errorf("%w: layer %q instance %d object %d", ErrUnresolvedObject, layer.Name, inst.InstanceID, inst.ObjectID)
					}
					if _, err = s.optionalCode(inst.CreationCodeID); err != nil {
						return fmt.Errorf("instance %d creation code: %w", inst.InstanceID, err)
					}
					if _, err = s.optionalCode(inst.PreCreateCodeID); err != nil {
						return fmt.Errorf("instance %d pre-create code: %w", inst.InstanceID, err)
					}
				}
			}
		}
	}
	return nil
}
