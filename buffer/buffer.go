// File: buffer/buffer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// FIFO byte queue over a doubly-linked segment chain. Appends fill the
// tail, reads drain the head, and drained segments return to the pool.
// size caches the sum of segment sizes. Every segment in the chain is
// non-empty; head == nil exactly when size == 0.

package buffer

import (
	"io"

	"github.com/momentics/hioload-buf/api"
)

// Buffer is a segmented FIFO byte queue. The zero value is an empty
// buffer bound to the default segment pool.
type Buffer struct {
	head *segment
	tail *segment
	size int64
	pool *SegmentPool
}

// NewBuffer returns an empty buffer bound to the default pool. The
// shell itself is recycled through Release.
func NewBuffer() *Buffer {
	return shellPool.Get()
}

// NewBufferWithPool returns an empty buffer drawing segments from sp.
func NewBufferWithPool(sp *SegmentPool) *Buffer {
	return &Buffer{pool: sp}
}

// Release clears the buffer and returns its shell for reuse. The buffer
// must not be used afterwards.
func (b *Buffer) Release() {
	b.Clear()
	b.pool = nil
	shellPool.Put(b)
}

// Size reports the total number of readable bytes.
func (b *Buffer) Size() int64 { return b.size }

func (b *Buffer) segmentPool() *SegmentPool {
	if b.pool == nil {
		b.pool = DefaultPool()
	}
	return b.pool
}

// spliceTail links s as the new tail.
func (b *Buffer) spliceTail(s *segment) {
	s.next = nil
	s.prev = b.tail
	if b.tail == nil {
		b.head = s
	} else {
		b.tail.next = s
	}
	b.tail = s
}

// unlink removes s from the chain without recycling it.
func (b *Buffer) unlink(s *segment) {
	if s.prev == nil {
		b.head = s.next
	} else {
		s.prev.next = s.next
	}
	if s.next == nil {
		b.tail = s.prev
	} else {
		s.next.prev = s.prev
	}
	s.prev, s.next = nil, nil
}

// popHead unlinks the drained head segment and recycles it.
func (b *Buffer) popHead() {
	s := b.head
	b.unlink(s)
	b.segmentPool().recycle(s)
}

// writableTail returns a tail segment with room for min more bytes,
// appending a fresh pool segment when the current tail is absent,
// aliased, not the owner, or full.
func (b *Buffer) writableTail(min int) *segment {
	if min < 1 || min > SegmentSize {
		panic("buffer: writable capacity out of range")
	}
	if t := b.tail; t != nil && t.owner && !t.shared && t.limit+min <= SegmentSize {
		return t
	}
	s := b.segmentPool().take()
	b.spliceTail(s)
	return s
}

// WriteByte appends a single byte. The error is always nil; the
// signature satisfies io.ByteWriter.
func (b *Buffer) WriteByte(c byte) error {
	b.writableTail(1).writeByte(c)
	b.size++
	return nil
}

// WriteUint16 appends v big-endian.
func (b *Buffer) WriteUint16(v uint16) {
	b.writableTail(2).writeUint16(v)
	b.size += 2
}

// WriteUint32 appends v big-endian.
func (b *Buffer) WriteUint32(v uint32) {
	b.writableTail(4).writeUint32(v)
	b.size += 4
}

// WriteUint64 appends v big-endian.
func (b *Buffer) WriteUint64(v uint64) {
	b.writableTail(8).writeUint64(v)
	b.size += 8
}

// Write appends all of p. The returned count is always len(p) and the
// error is always nil; the signature satisfies io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	for rest := p; len(rest) > 0; {
		s := b.writableTail(1)
		n := copy(s.data[s.limit:], rest)
		s.limit += n
		b.size += int64(n)
		rest = rest[n:]
	}
	return len(p), nil
}

func (b *Buffer) underflow(op string, n int64) error {
	return api.NewError(api.ErrCodeBounds, "buffer underflow").
		WithContext("op", op).
		WithContext("requested", n).
		WithContext("size", b.size)
}

// ReadByte consumes and returns the head byte.
func (b *Buffer) ReadByte() (byte, error) {
	if b.size < 1 {
		return 0, b.underflow("ReadByte", 1)
	}
	s := b.head
	c := s.readByte()
	b.size--
	if s.size() == 0 {
		b.popHead()
	}
	return c, nil
}

// ReadUint16 consumes a big-endian 16-bit value.
func (b *Buffer) ReadUint16() (uint16, error) {
	if b.size < 2 {
		return 0, b.underflow("ReadUint16", 2)
	}
	s := b.head
	if s.size() < 2 {
		hi, _ := b.ReadByte()
		lo, _ := b.ReadByte()
		return uint16(hi)<<8 | uint16(lo), nil
	}
	v := s.readUint16()
	b.size -= 2
	if s.size() == 0 {
		b.popHead()
	}
	return v, nil
}

// ReadUint32 consumes a big-endian 32-bit value.
func (b *Buffer) ReadUint32() (uint32, error) {
	if b.size < 4 {
		return 0, b.underflow("ReadUint32", 4)
	}
	s := b.head
	if s.size() < 4 {
		hi, _ := b.ReadUint16()
		lo, _ := b.ReadUint16()
		return uint32(hi)<<16 | uint32(lo), nil
	}
	v := s.readUint32()
	b.size -= 4
	if s.size() == 0 {
		b.popHead()
	}
	return v, nil
}

// ReadUint64 consumes a big-endian 64-bit value.
func (b *Buffer) ReadUint64() (uint64, error) {
	if b.size < 8 {
		return 0, b.underflow("ReadUint64", 8)
	}
	s := b.head
	if s.size() < 8 {
		hi, _ := b.ReadUint32()
		lo, _ := b.ReadUint32()
		return uint64(hi)<<32 | uint64(lo), nil
	}
	v := s.readUint64()
	b.size -= 8
	if s.size() == 0 {
		b.popHead()
	}
	return v, nil
}

// Read consumes up to len(p) bytes into p. Returns io.EOF when the
// buffer is empty and len(p) > 0.
func (b *Buffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.size == 0 {
		return 0, io.EOF
	}
	read := 0
	for read < len(p) && b.head != nil {
		s := b.head
		n := copy(p[read:], s.data[s.pos:s.limit])
		s.pos += n
		b.size -= int64(n)
		read += n
		if s.size() == 0 {
			b.popHead()
		}
	}
	return read, nil
}

// Skip discards n bytes from the head.
func (b *Buffer) Skip(n int64) error {
	if n < 0 {
		return api.NewError(api.ErrCodeInvalidArgument, "negative skip count").
			WithContext("requested", n)
	}
	if n > b.size {
		return b.underflow("Skip", n)
	}
	for n > 0 {
		s := b.head
		step := int64(s.size())
		if step > n {
			step = n
		}
		s.pos += int(step)
		b.size -= step
		n -= step
		if s.size() == 0 {
			b.popHead()
		}
	}
	return nil
}

// Clear discards all bytes, recycling every segment. Clearing an empty
// buffer is a no-op.
func (b *Buffer) Clear() {
	for b.head != nil {
		b.popHead()
	}
	b.size = 0
}

// WithFreeTail obtains a tail segment with at least min free bytes and
// hands its writable range to produce. produce returns the count it
// actually wrote, which is committed to the buffer. Used to bridge to
// readers that fill a raw byte slice.
func (b *Buffer) WithFreeTail(min int, produce func(dst []byte) int) (int, error) {
	if min < 1 || min > SegmentSize {
		return 0, api.NewError(api.ErrCodeInvalidArgument, "free tail capacity out of range").
			WithContext("min", min)
	}
	s := b.writableTail(min)
	free := s.data[s.limit:]
	n := produce(free)
	if n < 0 || n > len(free) {
		panic("buffer: produced count outside writable range")
	}
	s.limit += n
	b.size += int64(n)
	if s.size() == 0 {
		// A fresh tail that received nothing would linger as an empty
		// segment; drop it to keep the chain invariant.
		b.unlink(s)
		b.segmentPool().recycle(s)
	}
	return n, nil
}

var _ api.Buffer = (*Buffer)(nil)
var _ io.Reader = (*Buffer)(nil)
var _ io.Writer = (*Buffer)(nil)
var _ io.ByteReader = (*Buffer)(nil)
var _ io.ByteWriter = (*Buffer)(nil)
