package pack

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/zeusync/gmruntime/internal/core/assets"
)

// Writer produces the format read by Reader. Call Flush when done.
type Writer struct {
	w       *bufio.Writer
	scratch [binary.MaxVarintLen64]byte
	err     error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) write(p []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(p)
}

func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

func (w *Writer) WriteUint32(v uint32) {
	binary.LittleEndian.PutUint32(w.scratch[:4], v)
	w.write(w.scratch[:4])
}

func (w *Writer) WriteString(s string) {
	n := binary.PutUvarint(w.scratch[:], uint64(len(s)))
	w.write(w.scratch[:n])
	w.write([]byte(s))
}

func (w *Writer) WriteBlob(p []byte) {
	w.WriteInt32(int32(len(p)))
	w.write(p)
}

// WriteRecord encodes v as one framed record.
func (w *Writer) WriteRecord(v any) {
	if w.err != nil {
		return
	}
	data, err := assets.EncMode.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("encode %T: %w", v, err)
		return
	}
	w.WriteUint32(uint32(len(data)))
	w.write(data)
}

// WriteCategory writes a count followed by every record.
func WriteCategory[T any](w *Writer, records []T) {
	w.WriteInt32(int32(len(records)))
	for i := range records {
		w.WriteRecord(&records[i])
	}
}

// Err reports the first write or encode failure.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}
