// Package buffer
// Author: momentics <momentics@gmail.com>
//
// Segmented, pooled, zero-copy byte container.
//
// A Buffer is a FIFO queue of bytes held in fixed-size segments linked
// into a doubly-linked chain. Segments come from a two-level pool and
// return to it when drained. Transfers between buffers relink whole
// segments; bytes are copied only for partial chunks below the sharing
// threshold and when a moved segment fits into the destination's
// preceding segment and is absorbed there. Snapshots and peeks alias segment blocks read-only through
// shared copies while the owning segment keeps the sole write cursor.
//
// A Buffer is single-owner: it is not safe for concurrent mutation. The
// segment pool is the only structure shared across threads.
package buffer
