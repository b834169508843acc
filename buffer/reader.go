// File: buffer/reader.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// io.Reader bridge: a Source that fills the destination buffer's free
// tail in place, one segment at a time.

package buffer

import (
	"io"

	"github.com/momentics/hioload-buf/api"
)

type readerSource struct {
	r      io.Reader
	closed bool
}

// NewReaderSource wraps r as an api.Source. If r also implements
// io.Closer, Close forwards to it once.
func NewReaderSource(r io.Reader) api.Source {
	return &readerSource{r: r}
}

func (rs *readerSource) ReadAtMostTo(dst api.Buffer, max int64) (int64, error) {
	if rs.closed {
		return 0, api.ErrSourceClosed
	}
	if max < 0 {
		return 0, api.NewError(api.ErrCodeInvalidArgument, "negative read count").
			WithContext("requested", max)
	}
	if max == 0 {
		return 0, nil
	}
	db, ok := dst.(*Buffer)
	if !ok {
		return rs.readSlow(dst, max)
	}

	limit := max
	if limit > SegmentSize {
		limit = SegmentSize
	}
	for {
		var k int
		var rerr error
		n, err := db.WithFreeTail(1, func(free []byte) int {
			if int64(len(free)) > limit {
				free = free[:limit]
			}
			k, rerr = rs.r.Read(free)
			return k
		})
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return int64(n), nil
		}
		if rerr != nil {
			return 0, rerr
		}
		// A compliant reader returned (0, nil): nothing available yet.
	}
}

func (rs *readerSource) readSlow(dst api.Buffer, max int64) (int64, error) {
	tmp := make([]byte, min64(max, SegmentSize))
	for {
		k, rerr := rs.r.Read(tmp)
		if k > 0 {
			if _, err := dst.Write(tmp[:k]); err != nil {
				return 0, err
			}
			return int64(k), nil
		}
		if rerr != nil {
			return 0, rerr
		}
	}
}

func (rs *readerSource) Close() error {
	if rs.closed {
		return nil
	}
	rs.closed = true
	if c, ok := rs.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
