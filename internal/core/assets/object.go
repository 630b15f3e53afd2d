package assets

// EventEntry pairs an event subtype with the code unit handling it.
type EventEntry struct {
	_       struct{} `cbor:",toarray"`
	Subtype int32
	CodeID  int32
}

// ObjectStorage carries the raw ids of an object record as they appear in
// the pack. It only lives until the object graph is linked.
type ObjectStorage struct {
	ParentID            int32        `cbor:"parentId"`
	CreateCodeID        int32        `cbor:"createCodeId"`
	DestroyScriptID     int32        `cbor:"destroyScriptId"`
	AlarmScriptIDs      []EventEntry `cbor:"alarm"`
	StepScriptIDs       []EventEntry `cbor:"step"`
	CollisionScriptIDs  []EventEntry `cbor:"collision"`
	KeyboardScriptIDs   []EventEntry `cbor:"keyboard"`
	OtherScriptIDs      []EventEntry `cbor:"other"`
	DrawScriptIDs       []EventEntry `cbor:"draw"`
	KeyPressScriptIDs   []EventEntry `cbor:"keyPress"`
	KeyReleaseScriptIDs []EventEntry `cbor:"keyRelease"`
	CleanUpScriptID     int32        `cbor:"cleanUpScriptId"`
	PreCreateScriptID   int32        `cbor:"preCreateScriptId"`
}

// ObjectDefinition is an event driven object template. Event slots and the
// parent are filled in by the loader; Storage is nil once it is done.
type ObjectDefinition struct {
	Name       string `cbor:"name"`
	AssetID    int32  `cbor:"assetId"`
	SpriteID   int32  `cbor:"spriteId"`
	MaskID     int32  `cbor:"maskId"`
	Visible    bool   `cbor:"visible"`
	Solid      bool   `cbor:"solid"`
	Persistent bool   `cbor:"persistent"`
	Depth      int32  `cbor:"depth"`

	Storage *ObjectStorage `cbor:"storage"`

	Parent *ObjectDefinition `cbor:"-"`

	CreateCode        *Code           `cbor:"-"`
	DestroyScript     *Code           `cbor:"-"`
	AlarmScript       map[int32]*Code `cbor:"-"`
	StepScript        map[int32]*Code `cbor:"-"`
	CollisionScript   map[int32]*Code `cbor:"-"`
	KeyboardScripts   map[int32]*Code `cbor:"-"`
	OtherScript       map[int32]*Code `cbor:"-"`
	DrawScript        map[int32]*Code `cbor:"-"`
	KeyPressScripts   map[int32]*Code `cbor:"-"`
	KeyReleaseScripts map[int32]*Code `cbor:"-"`
	CleanUpScript     *Code           `cbor:"-"`
	PreCreateScript   *Code           `cbor:"-"`
}

// EventCategory identifies one of the subtype keyed event tables.
type EventCategory uint8

const (
	EventAlarm EventCategory = iota
	EventStep
	EventCollision
	EventKeyboard
	EventOther
	EventDraw
	EventKeyPress
	EventKeyRelease
)

func (c EventCategory) String() string {
	switch c {
	case EventAlarm:
		return "alarm"
	case EventStep:
		return "step"
	case EventCollision:
		return "collision"
	case EventKeyboard:
		return "keyboard"
	case EventOther:
		return "other"
	case EventDraw:
		return "draw"
	case EventKeyPress:
		return "keypress"
	case EventKeyRelease:
		return "keyrelease"
	default:
		return "unknown"
	}
}

// EventTable returns the slot map of a subtype keyed category, allocating
// it on first use.
func (o *ObjectDefinition) EventTable(c EventCategory) map[int32]*Code {
	var table *map[int32]*Code
	switch c {
	case EventAlarm:
		table = &o.AlarmScript
	case EventStep:
		table = &o.StepScript
	case EventCollision:
		table = &o.CollisionScript
	case EventKeyboard:
		table = &o.KeyboardScripts
	case EventOther:
		table = &o.OtherScript
	case EventDraw:
		table = &o.DrawScript
	case EventKeyPress:
		table = &o.KeyPressScripts
	case EventKeyRelease:
		table = &o.KeyReleaseScripts
	default:
		return nil
	}
	if *table == nil {
		*table = make(map[int32]*Code)
	}
	return *table
}

// EventIDs returns the raw entries of a category from storage.
func (s *ObjectStorage) EventIDs(c EventCategory) []EventEntry {
	switch c {
	case EventAlarm:
		return s.AlarmScriptIDs
	case EventStep:
		return s.StepScriptIDs
	case EventCollision:
		return s.CollisionScriptIDs
	case EventKeyboard:
		return s.KeyboardScriptIDs
	case EventOther:
		return s.OtherScriptIDs
	case EventDraw:
		return s.DrawScriptIDs
	case EventKeyPress:
		return s.KeyPressScriptIDs
	case EventKeyRelease:
		return s.KeyReleaseScriptIDs
	default:
		return nil
	}
}

// EventCategories lists the subtype keyed categories in link order.
var EventCategories = []EventCategory{
	EventAlarm,
	EventStep,
	EventCollision,
	EventKeyboard,
	EventOther,
	EventDraw,
	EventKeyPress,
	EventKeyRelease,
}

// IsA reports whether o is ancestor or one of its descendants. The parent
// chain must be acyclic, which the loader guarantees.
func (o *ObjectDefinition) IsA(ancestor *ObjectDefinition) bool {
	for cur := o; cur != nil; cur = cur.Parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}
