// File: buffer/bytestring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Immutable byte-string projection over buffer contents. A snapshot
// aliases the buffer's segments read-only and pins their blocks; a
// short ranged view flattens into a private array instead, so the
// buffer's segments stay recyclable.

package buffer

import (
	"bytes"

	"github.com/momentics/hioload-buf/api"
)

// ByteString is an immutable sequence of bytes. The zero value is
// empty.
type ByteString struct {
	flat   []byte
	segs   []*segment
	length int64
}

// Snapshot returns an immutable view of the buffer's current bytes.
// Every segment of the chain, including the tail, is marked shared, so
// later appends to the buffer allocate fresh segments and cannot alter
// the view.
func (b *Buffer) Snapshot() ByteString {
	if b.size == 0 {
		return ByteString{}
	}
	segs := make([]*segment, 0, 4)
	for s := b.head; s != nil; s = s.next {
		segs = append(segs, s.sharedCopy())
	}
	return ByteString{segs: segs, length: b.size}
}

// ByteString returns an immutable view of bytes [from, to). Ranges
// shorter than the sharing threshold are flattened into a private
// array; longer ranges alias the covering segments, trimmed to the
// range, and pin their blocks.
func (b *Buffer) ByteString(from, to int64) (ByteString, error) {
	if from < 0 || from > to || to > b.size {
		return ByteString{}, api.NewError(api.ErrCodeBounds, "byte-string range out of bounds").
			WithContext("from", from).
			WithContext("to", to).
			WithContext("size", b.size)
	}
	n := to - from
	if n == 0 {
		return ByteString{}, nil
	}
	if n < shareMinimum {
		flat := make([]byte, n)
		copied := int64(0)
		for s := b.head; s != nil && copied < n; s = s.next {
			size := int64(s.size())
			if from >= size {
				from -= size
				continue
			}
			copied += int64(copy(flat[copied:], s.data[s.pos+int(from):s.limit]))
			from = 0
		}
		return ByteString{flat: flat, length: n}, nil
	}

	segs := make([]*segment, 0, 4)
	remaining := n
	for s := b.head; s != nil && remaining > 0; s = s.next {
		size := int64(s.size())
		if from >= size {
			from -= size
			continue
		}
		c := s.sharedCopy()
		c.pos += int(from)
		from = 0
		if span := int64(c.size()); span > remaining {
			c.limit = c.pos + int(remaining)
			remaining = 0
		} else {
			remaining -= span
		}
		segs = append(segs, c)
	}
	return ByteString{segs: segs, length: n}, nil
}

// Size reports the byte count.
func (bs ByteString) Size() int64 { return bs.length }

// Byte returns the byte at absolute offset i.
func (bs ByteString) Byte(i int64) byte {
	if i < 0 || i >= bs.length {
		panic("buffer: byte-string index out of range")
	}
	if bs.flat != nil {
		return bs.flat[i]
	}
	for _, s := range bs.segs {
		if n := int64(s.size()); i >= n {
			i -= n
			continue
		}
		return s.data[s.pos+int(i)]
	}
	panic("buffer: byte-string segments shorter than length")
}

// Bytes returns a fresh copy of the contents.
func (bs ByteString) Bytes() []byte {
	out := make([]byte, bs.length)
	if bs.flat != nil {
		copy(out, bs.flat)
		return out
	}
	n := 0
	for _, s := range bs.segs {
		n += copy(out[n:], s.data[s.pos:s.limit])
	}
	return out
}

// Equal reports whether two byte strings hold the same bytes.
func (bs ByteString) Equal(other ByteString) bool {
	if bs.length != other.length {
		return false
	}
	return bytes.Equal(bs.Bytes(), other.Bytes())
}
