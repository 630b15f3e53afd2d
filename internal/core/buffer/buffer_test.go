package buffer

import (
	"crypto/md5"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func newBuffer(t *testing.T, size int, kind Kind) *Buffer {
	t.Helper()
	b, err := New(size, kind, 1)
	require.NoError(t, err)
	return b
}

func TestDataType_Size(t *testing.T) {
	cases := map[DataType]int{
		None: 0, U8: 1, S8: 1, Bool: 1,
		U16: 2, S16: 2, F16: 2,
		U32: 4, S32: 4, F32: 4,
		U64: 8, F64: 8,
		String: 0, Text: 0,
	}
	for dt, want := range cases {
		require.Equal(t, want, dt.Size(), dt.String())
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := New(-1, Fixed, 1)
	require.ErrorIs(t, err, ErrInvalidSize)

	_, err = New(4, Kind(9), 1)
	require.ErrorIs(t, err, ErrInvalidKind)

	b, err := New(4, Grow, 0)
	require.NoError(t, err)
	require.Equal(t, 1, b.Alignment())
	require.Equal(t, 4, b.Size())
	require.Equal(t, 0, b.UsedSize())
}

func TestPoke_FixedBounds(t *testing.T) {
	b := newBuffer(t, 8, Fixed)

	require.NoError(t, b.Poke(U8, 7, uint8(0xAB)))
	require.Equal(t, byte(0xAB), b.Bytes()[7])

	before := b.Bytes()
	require.NoError(t, b.Poke(U8, 8, uint8(0xCD)))
	require.Equal(t, before, b.Bytes())

	require.NoError(t, b.Poke(U8, -1, uint8(0xCD)))
	require.Equal(t, before, b.Bytes())
}

func TestPoke_WrapFoldsOffset(t *testing.T) {
	b := newBuffer(t, 10, Wrap)

	require.NoError(t, b.Poke(U8, 12, uint8(9)))
	require.Equal(t, byte(9), b.Bytes()[2])

	require.NoError(t, b.Poke(U8, 35, uint8(7)))
	require.Equal(t, byte(7), b.Bytes()[5])
}

func TestWrap_HugeOffsets(t *testing.T) {
	b := newBuffer(t, 8, Wrap)
	for i := 0; i < 8; i++ {
		require.NoError(t, b.Poke(U8, i, uint8(i)))
	}

	require.NoError(t, b.Poke(U8, 1<<62+3, uint8(0xEE)))
	require.Equal(t, byte(0xEE), b.Bytes()[3])

	v, err := b.Peek(U8, 1<<62+3)
	require.NoError(t, err)
	require.Equal(t, uint8(0xEE), v)

	sum := md5.Sum([]byte{2, 0xEE})
	require.Equal(t, fmt.Sprintf("%X", sum[:]), b.MD5(-(1<<62)-6, 2))
}

func TestPoke_WrapEmptyIsNoop(t *testing.T) {
	b := newBuffer(t, 0, Wrap)
	require.NoError(t, b.Poke(U8, 3, uint8(1)))
	require.Empty(t, b.Bytes())
}

func TestPoke_Values(t *testing.T) {
	b := newBuffer(t, 4, Grow)

	require.NoError(t, b.Poke(Bool, 0, true))
	require.NoError(t, b.Poke(Bool, 1, false))
	require.NoError(t, b.Poke(S8, 2, -1))
	require.NoError(t, b.Poke(U8, 3, 258.7))

	require.Equal(t, []byte{1, 0, 0xFF, 2}, b.Bytes())

	err := b.Poke(Bool, 0, 1)
	require.ErrorIs(t, err, ErrValueType)

	err = b.Poke(U8, 0, "x")
	require.ErrorIs(t, err, ErrValueType)
}

func TestPoke_UnsupportedTypes(t *testing.T) {
	for _, dt := range []DataType{U16, S16, U32, S32, F16, F32, F64, U64, String, Text} {
		t.Run(dt.String(), func(t *testing.T) {
			b := newBuffer(t, 16, Fixed)
			err := b.Poke(dt, 0, 1)
			require.ErrorIs(t, err, ErrNotImplemented)
			require.Equal(t, make([]byte, 16), b.Bytes())
		})
	}

	b := newBuffer(t, 16, Fixed)
	require.ErrorIs(t, b.Poke(DataType(42), 0, 1), ErrUnknownDataType)
}

func TestPoke_BoundsCheckedBeforeType(t *testing.T) {
	b := newBuffer(t, 8, Fixed)
	// 6 > 8-4, the write is refused before the type is looked at.
	require.NoError(t, b.Poke(U32, 6, 1))
}

func TestPoke_UpdatesUsedSize(t *testing.T) {
	b := newBuffer(t, 8, Grow)
	require.NoError(t, b.Poke(U8, 2, uint8(1)))
	require.Equal(t, 8, b.UsedSize())

	b.UpdateUsedSize(3, true)
	require.Equal(t, 3, b.UsedSize())

	require.NoError(t, b.Poke(U8, 5, uint8(1)))
	require.Equal(t, 8, b.UsedSize())
}

func TestPeek(t *testing.T) {
	b := newBuffer(t, 4, Wrap)
	require.NoError(t, b.Poke(U8, 1, uint8(200)))
	require.NoError(t, b.Poke(Bool, 2, true))

	v, err := b.Peek(U8, 1)
	require.NoError(t, err)
	require.Equal(t, uint8(200), v)

	v, err = b.Peek(S8, 5)
	require.NoError(t, err)
	require.Equal(t, int8(-56), v)

	v, err = b.Peek(Bool, 6)
	require.NoError(t, err)
	require.Equal(t, true, v)

	v, err = b.Peek(U8, -1)
	require.NoError(t, err)
	require.Nil(t, v)

	_, err = b.Peek(F64, 0)
	require.ErrorIs(t, err, ErrNotImplemented)

	fixed := newBuffer(t, 4, Fixed)
	v, err = fixed.Peek(U8, 4)
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSeek(t *testing.T) {
	t.Run("start clamps negative to zero", func(t *testing.T) {
		b := newBuffer(t, 10, Fixed)
		b.Seek(SeekStart, 7)
		require.Equal(t, 0, b.Seek(SeekStart, -5))
		require.Equal(t, 50, b.Seek(SeekStart, 50))
	})

	t.Run("relative never goes negative", func(t *testing.T) {
		b := newBuffer(t, 10, Fixed)
		require.Equal(t, 4, b.Seek(SeekRelative, 4))
		require.Equal(t, 0, b.Seek(SeekRelative, -1<<40))
		require.Equal(t, 25, b.Seek(SeekRelative, 25))
	})

	t.Run("end inverts sign and only clamps the top", func(t *testing.T) {
		b := newBuffer(t, 100, Fixed)
		require.Equal(t, 70, b.Seek(SeekEnd, 30))
		require.Equal(t, -50, b.Seek(SeekEnd, 150))
		require.Equal(t, 100, b.Seek(SeekEnd, -20))
		require.Equal(t, -50, b.Tell())
	})
}

func TestResize(t *testing.T) {
	b := newBuffer(t, 4, Grow)
	for i := 0; i < 4; i++ {
		require.NoError(t, b.Poke(U8, i, uint8(i+1)))
	}

	require.NoError(t, b.Resize(10))
	require.Equal(t, []byte{1, 2, 3, 4, 0, 0, 0, 0, 0, 0}, b.Bytes())
	require.Equal(t, 10, b.Size())
	require.GreaterOrEqual(t, b.UsedSize(), 10)

	require.NoError(t, b.Resize(2))
	require.Equal(t, []byte{1, 2}, b.Bytes())
	require.Equal(t, 10, b.UsedSize())

	require.ErrorIs(t, b.Resize(-1), ErrInvalidSize)
}

func TestCalculateNextAlignmentOffset(t *testing.T) {
	b, err := New(6, Fixed, 4)
	require.NoError(t, err)

	b.CalculateNextAlignmentOffset()
	require.Equal(t, 2, b.AlignmentOffset())
	b.CalculateNextAlignmentOffset()
	require.Equal(t, 0, b.AlignmentOffset())
}

func TestMD5(t *testing.T) {
	hash := func(data []byte) string {
		sum := md5.Sum(data)
		return fmt.Sprintf("%X", sum[:])
	}

	t.Run("empty buffer", func(t *testing.T) {
		b := newBuffer(t, 0, Wrap)
		require.Equal(t, "", b.MD5(0, -1))
		require.Equal(t, "", b.MD5(5, 3))
		require.Equal(t, "", b.MD5(-5, 0))
	})

	t.Run("whole buffer is uppercase", func(t *testing.T) {
		b := newBuffer(t, 4, Fixed)
		require.NoError(t, b.Poke(U8, 0, uint8('a')))
		got := b.MD5(0, -1)
		require.Equal(t, hash([]byte{'a', 0, 0, 0}), got)
		require.Regexp(t, "^[0-9A-F]{32}$", got)
	})

	t.Run("fixed clamps window", func(t *testing.T) {
		b := newBuffer(t, 8, Fixed)
		for i := 0; i < 8; i++ {
			require.NoError(t, b.Poke(U8, i, uint8(i)))
		}
		require.Equal(t, hash([]byte{0, 1, 2}), b.MD5(-4, 3))
		require.Equal(t, hash([]byte{7}), b.MD5(50, 4))
		require.Equal(t, hash([]byte{5, 6, 7}), b.MD5(5, 100))
	})

	t.Run("wrap normalizes offset", func(t *testing.T) {
		b := newBuffer(t, 8, Wrap)
		for i := 0; i < 8; i++ {
			require.NoError(t, b.Poke(U8, i, uint8(i)))
		}
		require.Equal(t, hash([]byte{2, 3}), b.MD5(-6, 2))
		require.Equal(t, hash([]byte{3, 4, 5}), b.MD5(19, 3))
		require.Equal(t, "", b.MD5(6, 4))
	})
}
