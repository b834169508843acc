// File: buffer/writer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// io.Writer bridge: a Sink that drains whole head segments straight
// from their blocks, without intermediate copies.

package buffer

import (
	"io"

	"github.com/momentics/hioload-buf/api"
)

type writerSink struct {
	w      io.Writer
	closed bool
}

// NewWriterSink wraps w as an api.Sink. Flush forwards when w exposes
// a Flush method; Close forwards once when w implements io.Closer.
func NewWriterSink(w io.Writer) api.Sink {
	return &writerSink{w: w}
}

func (ws *writerSink) WriteFrom(src api.Buffer, n int64) error {
	if ws.closed {
		return api.ErrSinkClosed
	}
	if n < 0 {
		return api.NewError(api.ErrCodeInvalidArgument, "negative write count").
			WithContext("requested", n)
	}
	if n > src.Size() {
		return api.NewError(api.ErrCodeBounds, "buffer underflow").
			WithContext("op", "WriteFrom").
			WithContext("requested", n).
			WithContext("size", src.Size())
	}
	sb, ok := src.(*Buffer)
	if !ok {
		return ws.writeSlow(src, n)
	}
	for n > 0 {
		s := sb.head
		chunk := s.size()
		if int64(chunk) > n {
			chunk = int(n)
		}
		k, err := ws.w.Write(s.data[s.pos : s.pos+chunk])
		s.pos += k
		sb.size -= int64(k)
		n -= int64(k)
		if s.size() == 0 {
			sb.popHead()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (ws *writerSink) writeSlow(src api.Buffer, n int64) error {
	tmp := make([]byte, SegmentSize)
	for n > 0 {
		chunk := tmp[:min64(n, SegmentSize)]
		k, err := src.Read(chunk)
		if err != nil {
			return err
		}
		if _, werr := ws.w.Write(chunk[:k]); werr != nil {
			return werr
		}
		n -= int64(k)
	}
	return nil
}

func (ws *writerSink) Flush() error {
	if ws.closed {
		return api.ErrSinkClosed
	}
	if f, ok := ws.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func (ws *writerSink) Close() error {
	if ws.closed {
		return nil
	}
	ws.closed = true
	if c, ok := ws.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
