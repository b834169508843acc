// File: buffer/search.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Byte and pattern search over segment chains. Offsets at the segment
// level are relative to pos; buffer-level offsets are absolute.

package buffer

import "bytes"

// indexOf scans [pos+start, pos+end) for c and returns the relative
// offset or -1.
func (s *segment) indexOf(c byte, start, end int) int {
	i := bytes.IndexByte(s.data[s.pos+start:s.pos+end], c)
	if i < 0 {
		return -1
	}
	return start + i
}

// indexOfBytesInbound finds pattern entirely inside this segment's
// readable range, starting at the relative offset start. Used when the
// remainder of the segment still fits the whole pattern.
func (s *segment) indexOfBytesInbound(pattern []byte, start int) int {
	last := s.size() - len(pattern)
	for i := start; i <= last; i++ {
		if s.data[s.pos+i] == pattern[0] &&
			bytes.Equal(s.data[s.pos+i:s.pos+i+len(pattern)], pattern) {
			return i
		}
	}
	return -1
}

// indexOfBytesOutbound finds pattern beginning in this segment and
// allowed to straddle into successors. Candidates past the readable
// range terminate the search; running out of successors mid-match means
// no later candidate can complete either, so the search returns -1.
func (s *segment) indexOfBytesOutbound(pattern []byte, start int) int {
	for i := start; i < s.size(); i++ {
		if s.data[s.pos+i] != pattern[0] {
			continue
		}
		cur, off, matched := s, i+1, 1
		for matched < len(pattern) {
			if off == cur.size() {
				cur = cur.next
				if cur == nil {
					return -1
				}
				off = 0
				continue
			}
			if cur.data[cur.pos+off] != pattern[matched] {
				break
			}
			matched++
			off++
		}
		if matched == len(pattern) {
			return i
		}
	}
	return -1
}

// IndexOfByte returns the absolute offset of the first occurrence of c
// at or after from, or -1.
func (b *Buffer) IndexOfByte(c byte, from int64) int64 {
	if from < 0 || from >= b.size {
		return -1
	}
	base := int64(0)
	for s := b.head; s != nil; s = s.next {
		n := int64(s.size())
		if from >= n {
			from -= n
			base += n
			continue
		}
		if i := s.indexOf(c, int(from), s.size()); i >= 0 {
			return base + int64(i)
		}
		from = 0
		base += n
	}
	return -1
}

// IndexOf returns the absolute offset of the first occurrence of the
// pattern at or after from, or -1. Matches may straddle segment
// boundaries. An empty pattern matches at from.
func (b *Buffer) IndexOf(pattern []byte, from int64) int64 {
	if from < 0 || from > b.size {
		return -1
	}
	if len(pattern) == 0 {
		return from
	}
	base := int64(0)
	for s := b.head; s != nil; s = s.next {
		n := int64(s.size())
		if from >= n {
			from -= n
			base += n
			continue
		}
		start := int(from)
		from = 0
		if last := s.size() - len(pattern); start <= last {
			if i := s.indexOfBytesInbound(pattern, start); i >= 0 {
				return base + int64(i)
			}
			start = last + 1
		}
		if i := s.indexOfBytesOutbound(pattern, start); i >= 0 {
			return base + int64(i)
		}
		base += n
	}
	return -1
}
