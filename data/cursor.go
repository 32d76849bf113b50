// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package data

import (
	"encoding/binary"
	"math"
)

// Cursor is the position shared by Writer, Reader and Measurer.
type Cursor interface {
	// Offset returns the number of bytes consumed so far.
	Offset() int

	// Skip advances the cursor by n bytes.
	Skip(n int)
}

// alignTo rounds offset up to a multiple of align, which must be a power of two.
func alignTo(offset, align int) int {
	return (offset + align - 1) &^ (align - 1)
}

// alignCursor inserts padding so that c is at a multiple of align.
func alignCursor(c Cursor, align int) {
	if pad := alignTo(c.Offset(), align) - c.Offset(); pad > 0 {
		c.Skip(pad)
	}
}

// maxValue is the type of MaxValue.
type maxValue struct{}

// MaxValue stands in for "any value" when measuring. Every schema has a
// fixed layout, so measuring MaxValue yields the schema size.
var MaxValue = maxValue{}

// Writer writes little-endian values into a fixed byte slice.
// The first out-of-bounds write sets a sticky error and later writes are
// ignored.
type Writer struct {
	buf []byte
	off int
	err error
}

// NewWriter creates a writer over buf.
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf}
}

// Offset implements Cursor.
func (w *Writer) Offset() int { return w.off }

// Err returns the first error encountered.
func (w *Writer) Err() error { return w.err }

// Bytes returns the written prefix of the buffer.
func (w *Writer) Bytes() []byte { return w.buf[:w.off] }

func (w *Writer) reserve(n int) bool {
	if w.err != nil {
		return false
	}
	if n < 0 || w.off+n > len(w.buf) {
		w.err = NewErrorf(ErrOutOfBounds, "write of %d bytes at offset %d exceeds buffer of %d bytes",
			n, w.off, len(w.buf))
		return false
	}
	return true
}

// Skip implements Cursor. Skipped bytes are zeroed.
func (w *Writer) Skip(n int) {
	if !w.reserve(n) {
		return
	}
	clear(w.buf[w.off : w.off+n])
	w.off += n
}

// WriteUint32 writes v.
func (w *Writer) WriteUint32(v uint32) {
	if !w.reserve(4) {
		return
	}
	binary.LittleEndian.PutUint32(w.buf[w.off:], v)
	w.off += 4
}

// WriteInt32 writes v.
func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

// WriteFloat32 writes v.
func (w *Writer) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

// Reader reads little-endian values from a byte slice.
// Reads past the end set a sticky error and return zero values.
type Reader struct {
	buf []byte
	off int
	err error
}

// NewReader creates a reader over buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Offset implements Cursor.
func (r *Reader) Offset() int { return r.off }

// Err returns the first error encountered.
func (r *Reader) Err() error { return r.err }

func (r *Reader) available(n int) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || r.off+n > len(r.buf) {
		r.err = NewErrorf(ErrOutOfBounds, "read of %d bytes at offset %d exceeds buffer of %d bytes",
			n, r.off, len(r.buf))
		return false
	}
	return true
}

// Skip implements Cursor.
func (r *Reader) Skip(n int) {
	if r.available(n) {
		r.off += n
	}
}

// ReadUint32 reads a u32.
func (r *Reader) ReadUint32() uint32 {
	if !r.available(4) {
		return 0
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

// ReadInt32 reads an i32.
func (r *Reader) ReadInt32() int32 {
	return int32(r.ReadUint32())
}

// ReadFloat32 reads an f32.
func (r *Reader) ReadFloat32() float32 {
	return math.Float32frombits(r.ReadUint32())
}

// Measurer counts bytes without touching memory.
type Measurer struct {
	size int
}

// Offset implements Cursor.
func (m *Measurer) Offset() int { return m.size }

// Skip implements Cursor.
func (m *Measurer) Skip(n int) { m.size += n }

// Add advances the measurer by n bytes and returns it.
func (m *Measurer) Add(n int) *Measurer {
	m.size += n
	return m
}

// Size returns the measured size.
func (m *Measurer) Size() int { return m.size }
