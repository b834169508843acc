// File: buffer/transfer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Zero-copy transfer between buffers. Whole source segments move by
// relinking and are then compacted into the destination tail when they
// fit, so alternating small transfers do not accumulate short segments.
// A partial leading segment is split by the share/copy policy and its
// prefix spliced as-is.

package buffer

import (
	"io"

	"github.com/momentics/hioload-buf/api"
)

// TransferFrom moves n bytes from src into this buffer. src shrinks by
// n and this buffer grows by n; the moved bytes keep their order.
func (b *Buffer) TransferFrom(src api.Buffer, n int64) error {
	if sb, ok := src.(*Buffer); ok {
		return b.transfer(sb, n)
	}
	return b.transferSlow(src, n)
}

func (b *Buffer) transfer(src *Buffer, n int64) error {
	if src == b {
		return api.NewError(api.ErrCodeInvalidArgument, "transfer from itself")
	}
	if n < 0 {
		return api.NewError(api.ErrCodeInvalidArgument, "negative transfer count").
			WithContext("requested", n)
	}
	if n > src.size {
		return src.underflow("TransferFrom", n)
	}
	for n > 0 {
		s := src.head
		if int64(s.size()) > n {
			// Partial head: split by the share/copy policy and splice
			// the prefix. Tail absorption applies to whole-segment
			// moves only, so a large prefix stays an alias of the
			// source block.
			prefix := s.split(int(n), b.segmentPool())
			b.spliceTail(prefix)
			src.size -= n
			b.size += n
			return nil
		}

		// Whole segment: relink instead of copying.
		moved := int64(s.size())
		src.unlink(s)
		b.spliceTail(s)
		b.compact(s)
		src.size -= moved
		b.size += moved
		n -= moved
	}
	return nil
}

func reclaimable(t *segment) int64 {
	if t.shared {
		return 0
	}
	return int64(t.pos)
}

// compact absorbs s into its predecessor when the predecessor is owned
// and has room for s's bytes, then recycles s. The room calculation
// counts the consumed prefix of an unshared predecessor, which writeTo
// reclaims by shifting.
func (b *Buffer) compact(s *segment) {
	p := s.prev
	if p == nil || !p.owner {
		return
	}
	if int64(s.size())+int64(p.limit)-reclaimable(p) > SegmentSize {
		return
	}
	s.writeTo(p, s.size())
	b.unlink(s)
	b.segmentPool().recycle(s)
}

// transferSlow copies through the api surface when src is not a
// segmented buffer.
func (b *Buffer) transferSlow(src api.Buffer, n int64) error {
	if n < 0 {
		return api.NewError(api.ErrCodeInvalidArgument, "negative transfer count").
			WithContext("requested", n)
	}
	if n > src.Size() {
		return api.NewError(api.ErrCodeBounds, "buffer underflow").
			WithContext("op", "TransferFrom").
			WithContext("requested", n).
			WithContext("size", src.Size())
	}
	for n > 0 {
		chunk := n
		if chunk > SegmentSize {
			chunk = SegmentSize
		}
		var rerr error
		wrote, err := b.WithFreeTail(int(chunk), func(dst []byte) int {
			k, e := src.Read(dst[:chunk])
			rerr = e
			return k
		})
		if err != nil {
			return err
		}
		if rerr != nil && rerr != io.EOF {
			return rerr
		}
		if wrote == 0 {
			return api.NewError(api.ErrCodeInternal, "source drained below reported size")
		}
		n -= int64(wrote)
	}
	return nil
}

// ReadAtMostTo drains up to max bytes into dst, implementing
// api.Source. Returns io.EOF when the buffer is empty.
func (b *Buffer) ReadAtMostTo(dst api.Buffer, max int64) (int64, error) {
	if max < 0 {
		return 0, api.NewError(api.ErrCodeInvalidArgument, "negative read count").
			WithContext("requested", max)
	}
	if max == 0 {
		return 0, nil
	}
	if b.size == 0 {
		return 0, io.EOF
	}
	n := max
	if n > b.size {
		n = b.size
	}
	if err := dst.TransferFrom(b, n); err != nil {
		return 0, err
	}
	return n, nil
}

// WriteFrom consumes exactly n bytes from src, implementing api.Sink.
func (b *Buffer) WriteFrom(src api.Buffer, n int64) error {
	return b.TransferFrom(src, n)
}

// Flush implements api.Sink. A buffer holds its bytes; nothing to do.
func (b *Buffer) Flush() error { return nil }

// Close implements api.Source and api.Sink. Idempotent no-op: the
// buffer owns no transport.
func (b *Buffer) Close() error { return nil }

var _ api.Source = (*Buffer)(nil)
var _ api.Sink = (*Buffer)(nil)
