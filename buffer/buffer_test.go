// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// buffer_test.go — FIFO contract, primitive round-trips, chain invariants.
package buffer

import (
	"bytes"
	"io"
	"testing"
)

// checkChain verifies the structural invariants of a buffer's chain:
// cached size equals the segment sum, links are consistent both ways,
// and no non-tail segment is empty.
func checkChain(t *testing.T, b *Buffer) {
	t.Helper()
	var sum int64
	var last *segment
	for s := b.head; s != nil; s = s.next {
		if s.prev != last {
			t.Fatal("chain: prev link inconsistent")
		}
		if s.pos < 0 || s.pos > s.limit || s.limit > SegmentSize {
			t.Fatalf("chain: cursor invariant violated: pos=%d limit=%d", s.pos, s.limit)
		}
		if s.size() == 0 && s != b.tail {
			t.Fatal("chain: empty non-tail segment")
		}
		sum += int64(s.size())
		last = s
	}
	if b.tail != last {
		t.Fatal("chain: tail link inconsistent")
	}
	if sum != b.size {
		t.Fatalf("chain: size cache %d != segment sum %d", b.size, sum)
	}
	if (b.head == nil) != (b.size == 0) {
		t.Fatal("chain: head/size emptiness mismatch")
	}
}

func TestWriteReadFIFO(t *testing.T) {
	b := NewBufferWithPool(testPool())
	const n = 20000
	for i := 0; i < n; i++ {
		if err := b.WriteByte(byte(i)); err != nil {
			t.Fatalf("WriteByte: %v", err)
		}
	}
	checkChain(t, b)
	if b.Size() != n {
		t.Fatalf("Size = %d, want %d", b.Size(), n)
	}
	for i := 0; i < n; i++ {
		c, err := b.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte at %d: %v", i, err)
		}
		if c != byte(i) {
			t.Fatalf("byte %d = %#x, want %#x", i, c, byte(i))
		}
	}
	checkChain(t, b)
	if b.Size() != 0 || b.head != nil {
		t.Error("buffer not empty after draining")
	}
}

func TestPrimitiveRoundTrip(t *testing.T) {
	b := NewBufferWithPool(testPool())
	u16s := []uint16{0, 1, 0x7FFF, 0x8000, 0xFFFF}
	u32s := []uint32{0, 1, 0x7FFFFFFF, 0x80000000, 0xFFFFFFFF, 0xCAFEBABE}
	u64s := []uint64{0, 1, 0x7FFFFFFFFFFFFFFF, 0x8000000000000000, 0xFFFFFFFFFFFFFFFF}

	for _, v := range u16s {
		b.WriteUint16(v)
	}
	for _, v := range u32s {
		b.WriteUint32(v)
	}
	for _, v := range u64s {
		b.WriteUint64(v)
	}
	checkChain(t, b)

	for _, want := range u16s {
		got, err := b.ReadUint16()
		if err != nil || got != want {
			t.Fatalf("ReadUint16 = %#x, %v; want %#x", got, err, want)
		}
	}
	for _, want := range u32s {
		got, err := b.ReadUint32()
		if err != nil || got != want {
			t.Fatalf("ReadUint32 = %#x, %v; want %#x", got, err, want)
		}
	}
	for _, want := range u64s {
		got, err := b.ReadUint64()
		if err != nil || got != want {
			t.Fatalf("ReadUint64 = %#x, %v; want %#x", got, err, want)
		}
	}
}

func TestBigEndianLayout(t *testing.T) {
	b := NewBufferWithPool(testPool())
	b.WriteUint32(0x01020304)
	got := make([]byte, 4)
	if _, err := b.Read(got); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Fatalf("layout = %v, want big-endian 1 2 3 4", got)
	}
}

// Straddled primitive reads assemble across segment boundaries created
// by a large split.
func TestPrimitiveReadAcrossSegments(t *testing.T) {
	sp := testPool()
	a := NewBufferWithPool(sp)
	pad := make([]byte, 1024)
	a.Write(pad)
	a.WriteUint32(0xFEEDC0DE)

	b := NewBufferWithPool(sp)
	if err := b.TransferFrom(a, 1026); err != nil {
		t.Fatalf("TransferFrom: %v", err)
	}
	if err := b.TransferFrom(a, 2); err != nil {
		t.Fatalf("TransferFrom rest: %v", err)
	}
	checkChain(t, b)
	if b.head == b.tail {
		t.Fatal("expected the value to straddle two segments")
	}
	if err := b.Skip(1024); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	got, err := b.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32: %v", err)
	}
	if got != 0xFEEDC0DE {
		t.Fatalf("straddled ReadUint32 = %#x, want 0xFEEDC0DE", got)
	}
}

func TestWriteReadSlices(t *testing.T) {
	b := NewBufferWithPool(testPool())
	data := make([]byte, 30000)
	for i := range data {
		data[i] = byte(i * 7)
	}
	n, err := b.Write(data)
	if err != nil || n != len(data) {
		t.Fatalf("Write = %d, %v", n, err)
	}
	checkChain(t, b)

	got := make([]byte, 0, len(data))
	chunk := make([]byte, 999)
	for {
		k, err := b.Read(chunk)
		got = append(got, chunk[:k]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if b.Size() == 0 {
			break
		}
	}
	if !bytes.Equal(got, data) {
		t.Fatal("round-tripped bytes differ")
	}
}

func TestReadUnderflow(t *testing.T) {
	b := NewBufferWithPool(testPool())
	b.WriteByte(1)
	if _, err := b.ReadUint32(); err == nil {
		t.Error("expected underflow reading uint32 from 1 byte")
	}
	// A failed primitive read consumes nothing.
	if b.Size() != 1 {
		t.Errorf("Size = %d after failed read, want 1", b.Size())
	}
	if c, err := b.ReadByte(); err != nil || c != 1 {
		t.Errorf("ReadByte = %#x, %v", c, err)
	}
	if _, err := b.ReadByte(); err == nil {
		t.Error("expected underflow on empty buffer")
	}
}

func TestSkip(t *testing.T) {
	b := NewBufferWithPool(testPool())
	data := make([]byte, 10000)
	for i := range data {
		data[i] = byte(i)
	}
	b.Write(data)

	if err := b.Skip(9000); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	checkChain(t, b)
	if b.Size() != 1000 {
		t.Fatalf("Size = %d after skip, want 1000", b.Size())
	}
	c, _ := b.ReadByte()
	if c != byte(9000%256) {
		t.Errorf("byte after skip = %#x, want %#x", c, byte(9000%256))
	}
	if err := b.Skip(b.Size() + 1); err == nil {
		t.Error("expected underflow skipping past size")
	}
	if err := b.Skip(-1); err == nil {
		t.Error("expected error on negative skip")
	}
}

func TestClearIdempotent(t *testing.T) {
	b := NewBufferWithPool(testPool())
	b.Write(make([]byte, 20000))
	b.Clear()
	if b.Size() != 0 || b.head != nil {
		t.Fatal("Clear left bytes behind")
	}
	b.Clear()
	if b.Size() != 0 {
		t.Fatal("second Clear changed state")
	}
	checkChain(t, b)
}

func TestZeroValueBuffer(t *testing.T) {
	var b Buffer
	b.WriteByte(42)
	c, err := b.ReadByte()
	if err != nil || c != 42 {
		t.Fatalf("zero-value buffer ReadByte = %#x, %v", c, err)
	}
}

func TestWithFreeTail(t *testing.T) {
	b := NewBufferWithPool(testPool())
	n, err := b.WithFreeTail(100, func(dst []byte) int {
		if len(dst) < 100 {
			t.Fatalf("free range %d, want at least 100", len(dst))
		}
		return copy(dst, []byte("hioload"))
	})
	if err != nil || n != 7 {
		t.Fatalf("WithFreeTail = %d, %v", n, err)
	}
	if b.Size() != 7 {
		t.Fatalf("Size = %d, want 7", b.Size())
	}
	got := make([]byte, 7)
	b.Read(got)
	if string(got) != "hioload" {
		t.Fatalf("content = %q", got)
	}
}

func TestWithFreeTailZeroProduce(t *testing.T) {
	b := NewBufferWithPool(testPool())
	n, err := b.WithFreeTail(1, func(dst []byte) int { return 0 })
	if err != nil || n != 0 {
		t.Fatalf("WithFreeTail = %d, %v", n, err)
	}
	checkChain(t, b)
	if b.head != nil {
		t.Fatal("zero-length produce left an empty segment in the chain")
	}
}

func TestWithFreeTailBadCapacity(t *testing.T) {
	b := NewBufferWithPool(testPool())
	if _, err := b.WithFreeTail(0, func([]byte) int { return 0 }); err == nil {
		t.Error("expected error for zero capacity")
	}
	if _, err := b.WithFreeTail(SegmentSize+1, func([]byte) int { return 0 }); err == nil {
		t.Error("expected error for capacity beyond a segment")
	}
}

func TestAppendAfterSnapshotAllocatesFreshTail(t *testing.T) {
	b := NewBufferWithPool(testPool())
	b.Write([]byte("abc"))
	_ = b.Snapshot()
	if !b.tail.shared {
		t.Fatal("snapshot must mark the tail shared")
	}
	b.Write([]byte("def"))
	checkChain(t, b)
	if b.head == b.tail {
		t.Fatal("append after snapshot must allocate a fresh segment")
	}
	got := make([]byte, 6)
	b.Read(got)
	if string(got) != "abcdef" {
		t.Fatalf("content = %q", got)
	}
}
