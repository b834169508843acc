// File: buffer/peek.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Zero-copy read-ahead. A peek buffer aliases every segment of the
// source through shared copies; reading it advances only the peek's own
// cursors. Sharing marks the source's tail, so subsequent appends to
// the source allocate a fresh segment and never surface to the peek.

package buffer

// Peek returns a zero-copy view over the buffer's current bytes.
// Consuming from the view does not consume from the buffer. The aliased
// blocks stay pinned until both holders drop them.
func (b *Buffer) Peek() *Buffer {
	out := NewBufferWithPool(b.pool)
	for s := b.head; s != nil; s = s.next {
		out.spliceTail(s.sharedCopy())
	}
	out.size = b.size
	return out
}
