// File: buffer/batch.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Gather batch for scatter writes. A batch collects buffers bound for
// one sink so many small payloads drain in a single pass. Draining
// consumes the buffers in order; gathering relinks their segments into
// one destination without copying. Single-goroutine use; no locks in
// the hot path.

package buffer

import "github.com/momentics/hioload-buf/api"

// BufferBatch is an ordered collection of buffers awaiting one sink.
type BufferBatch struct {
	buffers []*Buffer
}

// NewBufferBatch creates a batch with room for capacity buffers.
func NewBufferBatch(capacity int) *BufferBatch {
	return &BufferBatch{
		buffers: make([]*Buffer, 0, capacity),
	}
}

// Append adds a buffer to the batch. The batch does not take ownership
// until DrainTo or GatherInto consumes the bytes.
func (bb *BufferBatch) Append(buf *Buffer) {
	bb.buffers = append(bb.buffers, buf)
}

// Len reports the number of collected buffers.
func (bb *BufferBatch) Len() int {
	return len(bb.buffers)
}

// Size reports the total readable bytes across the batch.
func (bb *BufferBatch) Size() int64 {
	var total int64
	for _, buf := range bb.buffers {
		total += buf.Size()
	}
	return total
}

// DrainTo writes every buffer in order into sink, emptying them. On
// failure the remaining buffers keep their bytes.
func (bb *BufferBatch) DrainTo(sink api.Sink) error {
	for _, buf := range bb.buffers {
		if err := sink.WriteFrom(buf, buf.Size()); err != nil {
			return err
		}
	}
	return nil
}

// GatherInto splices every buffer's segments into dst in order,
// leaving the batch's buffers empty. Whole segments move by relinking.
func (bb *BufferBatch) GatherInto(dst *Buffer) error {
	for _, buf := range bb.buffers {
		if err := dst.TransferFrom(buf, buf.Size()); err != nil {
			return err
		}
	}
	return nil
}

// Reset drops the collected buffers, retaining capacity. The buffers
// themselves are untouched.
func (bb *BufferBatch) Reset() {
	for i := range bb.buffers {
		bb.buffers[i] = nil
	}
	bb.buffers = bb.buffers[:0]
}

// ReleaseAll clears every collected buffer, returns their shells for
// reuse, and resets the batch.
func (bb *BufferBatch) ReleaseAll() {
	for _, buf := range bb.buffers {
		buf.Release()
	}
	bb.Reset()
}
