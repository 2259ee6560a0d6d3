package xfile

import (
	"encoding/binary"
	"io"
	"math"
)

// Stream is the primitive decoder: an endian-aware cursor over an owned,
// fully inflated byte payload. Every higher layer reads through it; it is
// the only place bounds are checked against the underlying buffer.
type Stream struct {
	buf   []byte
	pos   int64
	order binary.ByteOrder
}

// NewStream wraps buf for reading in the given byte order.
func NewStream(buf []byte, order binary.ByteOrder) *Stream {
	return &Stream{buf: buf, order: order}
}

// Len returns the total number of bytes in the stream.
func (s *Stream) Len() int64 { return int64(len(s.buf)) }

// Pos returns the current cursor position.
func (s *Stream) Pos() int64 { return s.pos }

// Seek moves the cursor to an absolute offset. Seeking past the end is an
// error; seeking is otherwise unrestricted (used to resolve Absolute
// sentinel pointers and to return to the caller's prior position).
func (s *Stream) Seek(off int64) error {
	if off < 0 || off > int64(len(s.buf)) {
		return &Error{Kind: KindInvalidSeek, Offset: s.pos, Msg: formatSeek(off, int64(len(s.buf)))}
	}
	s.pos = off
	return nil
}

func formatSeek(off, max int64) string {
	return "off=" + itoa(off) + " max=" + itoa(max)
}

func itoa(v int64) string {
	// avoid pulling in strconv for a one-line helper used only in error text
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// ReadExact reads exactly n bytes, advancing the cursor, failing with KindIO
// on underflow.
func (s *Stream) ReadExact(n int) ([]byte, error) {
	if n < 0 || s.pos+int64(n) > int64(len(s.buf)) {
		return nil, wrapErr(KindIO, s.pos, io.ErrUnexpectedEOF, "read %d bytes past end of stream", n)
	}
	b := s.buf[s.pos : s.pos+int64(n)]
	s.pos += int64(n)
	return b, nil
}

// PeekExact reads n bytes without advancing the cursor.
func (s *Stream) PeekExact(n int) ([]byte, error) {
	if n < 0 || s.pos+int64(n) > int64(len(s.buf)) {
		return nil, wrapErr(KindIO, s.pos, io.ErrUnexpectedEOF, "peek %d bytes past end of stream", n)
	}
	return s.buf[s.pos : s.pos+int64(n)], nil
}

func (s *Stream) ReadU8() (uint8, error) {
	b, err := s.ReadExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (s *Stream) ReadI8() (int8, error) {
	v, err := s.ReadU8()
	return int8(v), err
}

func (s *Stream) ReadU16() (uint16, error) {
	b, err := s.ReadExact(2)
	if err != nil {
		return 0, err
	}
	return s.order.Uint16(b), nil
}

func (s *Stream) ReadI16() (int16, error) {
	v, err := s.ReadU16()
	return int16(v), err
}

func (s *Stream) ReadU32() (uint32, error) {
	b, err := s.ReadExact(4)
	if err != nil {
		return 0, err
	}
	return s.order.Uint32(b), nil
}

func (s *Stream) ReadI32() (int32, error) {
	v, err := s.ReadU32()
	return int32(v), err
}

func (s *Stream) ReadU64() (uint64, error) {
	b, err := s.ReadExact(8)
	if err != nil {
		return 0, err
	}
	return s.order.Uint64(b), nil
}

func (s *Stream) ReadF32() (float32, error) {
	v, err := s.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadCString reads a NUL-terminated byte string starting at the cursor.
func (s *Stream) ReadCString() (string, error) {
	start := s.pos
	for {
		b, err := s.ReadU8()
		if err != nil {
			return "", err
		}
		if b == 0 {
			return string(s.buf[start : s.pos-1]), nil
		}
	}
}

// Align advances the cursor to the next multiple of n, the way the engine's
// original C ABI pads inline structures.
func (s *Stream) Align(n int64) error {
	rem := s.pos % n
	if rem == 0 {
		return nil
	}
	_, err := s.ReadExact(int(n - rem))
	return err
}
