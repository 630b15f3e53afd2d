package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeusync/gmruntime/internal/core/assets"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry[int32, string]("thing")
	require.NoError(t, r.Add(3, "c"))
	require.NoError(t, r.Add(1, "a"))
	require.NoError(t, r.Add(2, "b"))

	err := r.Add(3, "again")
	require.ErrorIs(t, err, ErrDuplicateKey)
	require.Contains(t, err.Error(), "thing 3")

	v, ok := r.Get(3)
	require.True(t, ok)
	require.Equal(t, "c", v)
	require.True(t, r.Has(1))
	require.False(t, r.Has(9))
	require.Equal(t, 3, r.Len())
	require.Equal(t, []string{"a", "b", "c"}, r.All().Collect())
}

func TestCatalog_Scripts(t *testing.T) {
	c := New()
	s := &assets.Script{Name: "scr_move", AssetIndex: 4, CodeID: 1}
	require.NoError(t, c.AddScript(s))

	byName, ok := c.ScriptByName("scr_move")
	require.True(t, ok)
	require.Same(t, s, byName)

	byIndex, ok := c.ScriptByIndex(4)
	require.True(t, ok)
	require.Same(t, s, byIndex)

	require.ErrorIs(t, c.AddScript(&assets.Script{Name: "scr_move", AssetIndex: 5}), ErrDuplicateKey)
	require.ErrorIs(t, c.AddScript(&assets.Script{Name: "scr_other", AssetIndex: 4}), ErrDuplicateKey)
}

func TestCatalog_Lookups(t *testing.T) {
	c := New()
	parent := &assets.ObjectDefinition{Name: "obj_enemy", AssetID: 0}
	child := &assets.ObjectDefinition{Name: "obj_bat", AssetID: 1, Parent: parent}
	other := &assets.ObjectDefinition{Name: "obj_wall", AssetID: 2}
	for _, o := range []*assets.ObjectDefinition{parent, child, other} {
		require.NoError(t, c.Objects.Add(o.AssetID, o))
	}
	require.NoError(t, c.Code.Add(7, &assets.Code{Name: "gml_Script_a", AssetID: 7}))
	c.Fonts = []*assets.Font{{Name: "fnt_main", AssetIndex: 2}}

	o, ok := c.ObjectByName("obj_bat")
	require.True(t, ok)
	require.Same(t, child, o)
	require.Equal(t, []*assets.ObjectDefinition{child}, c.Children(parent))

	code, ok := c.CodeByName("gml_Script_a")
	require.True(t, ok)
	require.Equal(t, int32(7), code.AssetID)

	f, ok := c.FontByIndex(2)
	require.True(t, ok)
	require.Equal(t, "fnt_main", f.Name)
	_, ok = c.FontByIndex(3)
	require.False(t, ok)
}

func TestCatalog_RoomsInOrder(t *testing.T) {
	c := New()
	require.NoError(t, c.Rooms.Add(0, &assets.Room{Name: "rm_title", AssetID: 0}))
	require.NoError(t, c.Rooms.Add(1, &assets.Room{Name: "rm_level", AssetID: 1}))
	c.Header.RoomOrder = []int32{1, 0}

	rooms := c.RoomsInOrder()
	require.Len(t, rooms, 2)
	require.Equal(t, "rm_level", rooms[0].Name)
	require.Equal(t, "rm_title", rooms[1].Name)
}

func TestCatalog_Instances(t *testing.T) {
	c := New()
	require.NoError(t, c.Rooms.Add(1, &assets.Room{Name: "rm_b", AssetID: 1, Layers: []assets.Layer{
		{Name: "Instances", Elements: []assets.LayerElement{
			&assets.InstancesElement{Instances: []assets.RoomInstance{{InstanceID: 200}}},
		}},
	}}))
	require.NoError(t, c.Rooms.Add(0, &assets.Room{Name: "rm_a", AssetID: 0, Layers: []assets.Layer{
		{Name: "Tiles", Elements: []assets.LayerElement{&assets.TilemapElement{ID: 1}}},
		{Name: "Instances", Elements: []assets.LayerElement{
			&assets.InstancesElement{Instances: []assets.RoomInstance{{InstanceID: 100}, {InstanceID: 101}}},
			&assets.SpriteElement{Name: "graphic"},
		}},
	}}))

	var ids []int32
	for inst := range c.Instances().Seq() {
		ids = append(ids, inst.InstanceID)
	}
	require.Equal(t, []int32{100, 101, 200}, ids)
	require.Equal(t, 3, c.Stats().Instances)
}

func TestCatalog_Close(t *testing.T) {
	c := New()
	require.NoError(t, c.Code.Add(1, &assets.Code{Name: "x"}))
	c.Fonts = []*assets.Font{{Name: "f"}}
	require.Equal(t, 1, c.Stats().Code)

	require.NoError(t, c.Close())
	require.True(t, c.Closed())
	require.Zero(t, c.Stats())
	_, ok := c.Code.Get(1)
	require.False(t, ok)

	require.NoError(t, c.Close())
}
