package buffer

import (
	"crypto/md5"
	"fmt"
	"math"
)

// Buffer is a resizable byte store with a cursor. The addressing rules
// reproduce the legacy runtime exactly, including its asymmetries, so game
// logic that depends on them keeps working.
//
// A Buffer is owned by a single caller and carries no locking.
type Buffer struct {
	data            []byte
	kind            Kind
	alignment       int
	alignmentOffset int
	cursor          int
	usedSize        int
	size            int
}

// New allocates a zero filled buffer.
func New(size int, kind Kind, alignment int) (*Buffer, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if !kind.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, kind)
	}
	if alignment < 1 {
		alignment = 1
	}
	return &Buffer{
		data:      make([]byte, size),
		kind:      kind,
		alignment: alignment,
		size:      size,
	}, nil
}

func (b *Buffer) Kind() Kind           { return b.kind }
func (b *Buffer) Size() int            { return b.size }
func (b *Buffer) UsedSize() int        { return b.usedSize }
func (b *Buffer) Tell() int            { return b.cursor }
func (b *Buffer) Alignment() int       { return b.alignment }
func (b *Buffer) AlignmentOffset() int { return b.alignmentOffset }

// Bytes returns a copy of the buffer contents.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

func (b *Buffer) CalculateNextAlignmentOffset() {
	if b.alignment <= 0 {
		return
	}
	b.alignmentOffset = (b.alignmentOffset + b.size) % b.alignment
}

// UpdateUsedSize records mark as used. Without reset the used size only
// grows and never drops below the current size.
func (b *Buffer) UpdateUsedSize(mark int, reset bool) {
	if reset {
		b.usedSize = mark
		return
	}
	b.usedSize = max(b.usedSize, mark, b.size)
}

// MarkUsed updates the used size from the cursor.
func (b *Buffer) MarkUsed() {
	b.UpdateUsedSize(b.cursor, false)
}

// Seek moves the cursor and returns its new position. Positions past the
// end are kept as is; wrapping happens when the data is accessed.
//
// SeekEnd subtracts the offset from the size and only clamps the upper
// bound, so a large offset leaves the cursor negative. Game code relies on
// this.
func (b *Buffer) Seek(whence Whence, offset int) int {
	switch whence {
	case SeekStart:
		b.cursor = max(offset, 0)
	case SeekRelative:
		b.cursor = max(b.cursor+offset, 0)
	case SeekEnd:
		b.cursor = min(b.size-offset, b.size)
	}
	return b.cursor
}

// Resize replaces the store with a zero filled one of newSize bytes,
// keeping the leading bytes that still fit.
func (b *Buffer) Resize(newSize int) error {
	if newSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, newSize)
	}
	data := make([]byte, newSize)
	copy(data, b.data)
	b.data = data
	b.size = newSize
	b.MarkUsed()
	return nil
}

// Poke writes value at offset without moving the cursor. Negative offsets
// and writes past the end of a non wrapping buffer are ignored. Only the
// one byte types are implemented; the others fail with ErrNotImplemented.
func (b *Buffer) Poke(t DataType, offset int, value any) error {
	if offset < 0 {
		return nil
	}

	width := t.Size()

	if b.kind != Wrap {
		if offset > b.size-width {
			return nil
		}
	} else {
		if b.size == 0 {
			return nil
		}
		offset %= b.size
	}

	switch t {
	case Bool:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s wants bool, got %T", ErrValueType, t, value)
		}
		if v {
			b.data[offset] = 1
		} else {
			b.data[offset] = 0
		}
		b.UpdateUsedSize(offset+1, false)
	case U8, S8:
		v, err := toByte(t, value)
		if err != nil {
			return err
		}
		b.data[offset] = v
		b.UpdateUsedSize(offset+1, false)
	case U16, S16, U32, S32, F16, F32, F64, U64, String, Text:
		return fmt.Errorf("%w: poke %s", ErrNotImplemented, t)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownDataType, uint8(t))
	}

	b.UpdateUsedSize(offset+width, false)
	return nil
}

// Peek reads the value at offset using the same bounds rules as Poke. A nil
// value with a nil error means the offset was out of range.
func (b *Buffer) Peek(t DataType, offset int) (any, error) {
	if offset < 0 {
		return nil, nil
	}

	if b.kind != Wrap {
		if offset > b.size-t.Size() {
			return nil, nil
		}
	} else {
		if b.size == 0 {
			return nil, nil
		}
		offset %= b.size
	}

	switch t {
	case Bool:
		return b.data[offset] != 0, nil
	case U8:
		return b.data[offset], nil
	case S8:
		return int8(b.data[offset]), nil
	case U16, S16, U32, S32, F16, F32, F64, U64, String, Text:
		return nil, fmt.Errorf("%w: peek %s", ErrNotImplemented, t)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownDataType, uint8(t))
	}
}

// MD5 hashes a window of the buffer and returns the digest as uppercase
// hex. A negative size means the whole buffer. An empty string is returned
// for an empty buffer or a window that does not fit.
func (b *Buffer) MD5(offset, size int) string {
	if b.size == 0 {
		return ""
	}

	if size < 0 {
		size = b.size
	}

	if b.kind == Wrap {
		offset = (offset%b.size + b.size) % b.size
	} else {
		if offset < 0 {
			offset = 0
		}
		if offset >= b.size {
			offset = b.size - 1
		}
		if offset+size >= b.size {
			size = b.size - offset
		}
	}

	if size > b.size-offset {
		return ""
	}

	sum := md5.Sum(b.data[offset : offset+size])
	return fmt.Sprintf("%X", sum[:])
}

// toByte narrows a numeric game value to the byte stored by a one byte
// type. Out of range values are truncated the way a C cast would.
func toByte(t DataType, value any) (byte, error) {
	switch v := value.(type) {
	case uint8:
		return v, nil
	case int8:
		return byte(v), nil
	case int:
		return byte(v), nil
	case int32:
		return byte(v), nil
	case int64:
		return byte(v), nil
	case uint16:
		return byte(v), nil
	case uint32:
		return byte(v), nil
	case uint64:
		return byte(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %s got %v", ErrValueType, t, v)
		}
		return byte(int64(v)), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %s got %T", ErrValueType, t, value)
	}
}
