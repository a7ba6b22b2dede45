package wire

import (
	"encoding/binary"
	"fmt"
)

// Reader decodes little-endian fields from a parameter buffer.
//
// The first read that runs past the end of the buffer records
// ErrTruncatedFrame; subsequent reads return zero values without
// advancing. Callers check Err (or Finish) once after decoding.
type Reader struct {
	buf []byte
	off int
	err error
}

// NewReader creates a reader over buf. The reader does not copy buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.off
}

// Fail records err unless an error is already set.
func (r *Reader) Fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// Finish returns the decoding error, or ErrMalformedFrame when unread
// bytes remain after a fixed-layout structure.
func (r *Reader) Finish() error {
	if r.err != nil {
		return r.err
	}
	if n := r.Len(); n > 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformedFrame, n)
	}
	return nil
}

func (r *Reader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.Len() < n {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncatedFrame, n, r.off, r.Len())
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

// U8 reads one byte.
func (r *Reader) U8() uint8 {
	b := r.next(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// I8 reads one signed byte.
func (r *Reader) I8() int8 {
	return int8(r.U8())
}

// Bool reads one byte and reports whether it is non-zero.
func (r *Reader) Bool() bool {
	return r.U8() != 0
}

// U16 reads a little-endian uint16.
func (r *Reader) U16() uint16 {
	b := r.next(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// U24 reads a little-endian 3-byte value.
func (r *Reader) U24() uint32 {
	b := r.next(3)
	if b == nil {
		return 0
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

// U32 reads a little-endian uint32.
func (r *Reader) U32() uint32 {
	b := r.next(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// U64 reads a little-endian uint64.
func (r *Reader) U64() uint64 {
	b := r.next(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// Raw reads n bytes and returns a copy. Zero-length reads return nil.
func (r *Reader) Raw(n int) []byte {
	b := r.next(n)
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// Fill reads len(dst) bytes into dst.
func (r *Reader) Fill(dst []byte) {
	if b := r.next(len(dst)); b != nil {
		copy(dst, b)
	}
}

// Rest reads all remaining bytes and returns a copy.
func (r *Reader) Rest() []byte {
	return r.Raw(r.Len())
}

// Address reads a 6-byte device address.
func (r *Reader) Address() Address {
	var a Address
	r.Fill(a[:])
	return a
}

// FixedString reads an n-byte NUL-padded string field.
func (r *Reader) FixedString(n int) string {
	b := r.next(n)
	if b == nil {
		return ""
	}
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// Count reads a uint16 element count and checks that count elements of
// elemSize bytes fit in the remaining buffer. It returns 0 on failure.
func (r *Reader) Count(elemSize int) int {
	n := int(r.U16())
	if r.err != nil {
		return 0
	}
	if n*elemSize > r.Len() {
		r.err = fmt.Errorf("%w: %d elements of %d bytes, have %d bytes", ErrTruncatedFrame, n, elemSize, r.Len())
		return 0
	}
	return n
}

// Writer encodes little-endian fields into a growing buffer.
type Writer struct {
	buf []byte
}

// NewWriter creates a writer with the given initial capacity.
func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

// Bytes returns the encoded bytes.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return len(w.buf)
}

// U8 writes one byte.
func (w *Writer) U8(v uint8) {
	w.buf = append(w.buf, v)
}

// I8 writes one signed byte.
func (w *Writer) I8(v int8) {
	w.buf = append(w.buf, byte(v))
}

// Bool writes 1 for true and 0 for false.
func (w *Writer) Bool(v bool) {
	if v {
		w.U8(1)
		return
	}
	w.U8(0)
}

// U16 writes a little-endian uint16.
func (w *Writer) U16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// U24 writes the low three bytes of v, little-endian.
func (w *Writer) U24(v uint32) {
	w.buf = append(w.buf, byte(v), byte(v>>8), byte(v>>16))
}

// U32 writes a little-endian uint32.
func (w *Writer) U32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// U64 writes a little-endian uint64.
func (w *Writer) U64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// Raw writes b as is.
func (w *Writer) Raw(b []byte) {
	w.buf = append(w.buf, b...)
}

// Zero writes n zero bytes.
func (w *Writer) Zero(n int) {
	for range n {
		w.buf = append(w.buf, 0)
	}
}

// Address writes a 6-byte device address.
func (w *Writer) Address(a Address) {
	w.buf = append(w.buf, a[:]...)
}

// FixedString writes s into an n-byte NUL-padded field.
// Strings longer than n-1 bytes are cut so the field stays terminated.
func (w *Writer) FixedString(s string, n int) {
	if len(s) > n-1 {
		s = s[:n-1]
	}
	w.buf = append(w.buf, s...)
	w.Zero(n - len(s))
}
