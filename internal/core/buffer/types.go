package buffer

import (
	"errors"
	"fmt"
)

var (
	ErrNotImplemented  = errors.New("buffer data type not implemented")
	ErrUnknownDataType = errors.New("unknown buffer data type")
	ErrValueType       = errors.New("value does not match buffer data type")
	ErrInvalidSize     = errors.New("invalid buffer size")
	ErrInvalidKind     = errors.New("invalid buffer kind")
	ErrBufferNotFound  = errors.New("buffer not found")
)

// Kind is the addressing discipline of a buffer.
type Kind uint8

const (
	Fixed Kind = iota
	Grow
	Wrap
	Fast
)

func (k Kind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case Grow:
		return "grow"
	case Wrap:
		return "wrap"
	case Fast:
		return "fast"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

func (k Kind) valid() bool {
	return k <= Fast
}

// Whence selects the base position of a Seek.
type Whence uint8

const (
	SeekStart Whence = iota
	SeekRelative
	SeekEnd
)

// DataType is the scalar encoding used by Poke and Peek. The numbering
// matches the runtime constants exposed to game code.
type DataType uint8

const (
	None DataType = iota
	U8
	S8
	U16
	S16
	U32
	S32
	F16
	F32
	F64
	Bool
	String
	U64
	Text
)

var dataTypeNames = [...]string{
	None:   "none",
	U8:     "buffer_u8",
	S8:     "buffer_s8",
	U16:    "buffer_u16",
	S16:    "buffer_s16",
	U32:    "buffer_u32",
	S32:    "buffer_s32",
	F16:    "buffer_f16",
	F32:    "buffer_f32",
	F64:    "buffer_f64",
	Bool:   "buffer_bool",
	String: "buffer_string",
	U64:    "buffer_u64",
	Text:   "buffer_text",
}

func (t DataType) String() string {
	if int(t) < len(dataTypeNames) {
		return dataTypeNames[t]
	}
	return fmt.Sprintf("datatype(%d)", uint8(t))
}

// Size returns the width in bytes of a data type. Variable length types
// (strings, text) and None report zero.
func (t DataType) Size() int {
	switch t {
	case U8, S8, Bool:
		return 1
	case U16, S16, F16:
		return 2
	case U32, S32, F32:
		return 4
	case U64, F64:
		return 8
	default:
		return 0
	}
}
