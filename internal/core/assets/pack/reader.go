package pack

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/zeusync/gmruntime/internal/core/assets"
	"github.com/zeusync/gmruntime/pkg/generic"
)

var (
	ErrUnexpectedEOF = errors.New("unexpected end of pack data")
	ErrCorruptPack   = errors.New("corrupt pack data")
	ErrDecode        = errors.New("record decode failed")
	ErrTrailingData  = errors.New("trailing data after last category")
)

const (
	// MaxRecordSize bounds a single framed record.
	MaxRecordSize = 1 << 28
	// MaxCount bounds a category count or a list length.
	MaxCount = assets.MaxListLen

	pooledRecordSize = 1 << 20
)

// recordBuffers holds scratch space for record payloads. Decoding copies
// byte strings out, so a buffer is free again once Unmarshal returns.
var recordBuffers = generic.NewPool(
	func() *[]byte {
		b := make([]byte, 0, 4096)
		return &b
	},
	func(b *[]byte) bool {
		*b = (*b)[:0]
		return cap(*b) <= pooledRecordSize
	},
)

// Reader consumes an asset pack. Integers are little endian; records are a
// uint32 length followed by a CBOR payload.
type Reader struct {
	r       *bufio.Reader
	offset  int64
	scratch [8]byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Offset is the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.offset
}

func (r *Reader) readFull(p []byte) error {
	n, err := io.ReadFull(r.r, p)
	r.offset += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: at offset %d", ErrUnexpectedEOF, r.offset)
		}
		return err
	}
	return nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.readFull(r.scratch[:4]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.scratch[:4]), nil
}

// ReadCount reads a category or list count and rejects negative or absurd
// values.
func (r *Reader) ReadCount() (int, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	if n < 0 || n > MaxCount {
		return 0, fmt.Errorf("%w: count %d at offset %d", ErrCorruptPack, n, r.offset-4)
	}
	return int(n), nil
}

// ReadString reads a string with a 7 bit encoded length prefix.
func (r *Reader) ReadString() (string, error) {
	n, err := binary.ReadUvarint(byteReader{r})
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return "", fmt.Errorf("%w: at offset %d", ErrUnexpectedEOF, r.offset)
		}
		return "", fmt.Errorf("%w: string length: %v", ErrCorruptPack, err)
	}
	if n > MaxRecordSize {
		return "", fmt.Errorf("%w: string length %d", ErrCorruptPack, n)
	}
	buf := make([]byte, n)
	if err = r.readFull(buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadBlob reads an int32 length followed by that many bytes.
func (r *Reader) ReadBlob() ([]byte, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 || n > MaxRecordSize {
		return nil, fmt.Errorf("%w: blob length %d", ErrCorruptPack, n)
	}
	buf := make([]byte, n)
	if err = r.readFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadRecord decodes one framed record into v.
func (r *Reader) ReadRecord(v any) error {
	n, err := r.ReadUint32()
	if err != nil {
		return err
	}
	if n > MaxRecordSize {
		return fmt.Errorf("%w: record length %d at offset %d", ErrCorruptPack, n, r.offset-4)
	}
	bp := recordBuffers.Get()
	defer recordBuffers.Put(bp)
	if uint32(cap(*bp)) < n {
		*bp = make([]byte, n)
	}
	buf := (*bp)[:n]

	if err = r.readFull(buf); err != nil {
		return err
	}
	if err = assets.DecMode.Unmarshal(buf, v); err != nil {
		return fmt.Errorf("%w: %T at offset %d: %v", ErrDecode, v, r.offset-int64(n), err)
	}
	return nil
}

// ExpectEOF fails if any byte remains.
func (r *Reader) ExpectEOF() error {
	if _, err := r.r.ReadByte(); err == nil {
		return fmt.Errorf("%w: at offset %d", ErrTrailingData, r.offset)
	} else if !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ReadCategory reads a count and then count records, handing each to fn.
func ReadCategory[T any](r *Reader, fn func(i int, rec *T) error) (int, error) {
	count, err := r.ReadCount()
	if err != nil {
		return 0, err
	}
	for i := 0; i < count; i++ {
		rec := new(T)
		if err = r.ReadRecord(rec); err != nil {
			return i, fmt.Errorf("record %d of %d: %w", i, count, err)
		}
		if err = fn(i, rec); err != nil {
			return i, err
		}
	}
	return count, nil
}

type byteReader struct{ r *Reader }

func (b byteReader) ReadByte() (byte, error) {
	c, err := b.r.r.ReadByte()
	if err == nil {
		b.r.offset++
	}
	return c, err
}
