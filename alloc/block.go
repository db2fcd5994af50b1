package alloc

import "sync/atomic"

// Block is a reference-counted chunk of backing storage handed out by a
// Pool. Message parts and growable containers write their encoded bytes
// into blocks; duplicating a message shares its blocks by incrementing
// their reference counts instead of copying.
//
// A Block is safe to release from multiple goroutines (the reference count
// is atomic), but its contents are not safe for concurrent mutation. That
// matches the single-writer-per-handle discipline of the message API.
type Block struct {
	buf   []byte
	class int // quanta class index, or -1 for an oversize one-off block
	refs  atomic.Int32
	pool  *Pool
}

// Bytes returns the used portion of the block.
//
// The returned slice shares the block's storage. Do not retain it past the
// block's release.
func (b *Block) Bytes() []byte {
	return b.buf
}

// Len returns the number of used bytes in the block.
func (b *Block) Len() int {
	return len(b.buf)
}

// Cap returns the block's total capacity in bytes.
func (b *Block) Cap() int {
	return cap(b.buf)
}

// Refs returns the current reference count.
func (b *Block) Refs() int {
	return int(b.refs.Load())
}

// SetLen resizes the used portion of the block to n bytes.
// Panics if n is negative or exceeds the block's capacity.
func (b *Block) SetLen(n int) {
	if n < 0 || n > cap(b.buf) {
		panic("SetLen: invalid length")
	}
	b.buf = b.buf[:n]
}

// Append writes data into the block's remaining capacity.
//
// Returns false without writing anything if the block cannot hold the data;
// callers grow the block through Pool.Grow first. Append never reallocates,
// so slices previously returned by Bytes stay valid.
func (b *Block) Append(data []byte) bool {
	if cap(b.buf)-len(b.buf) < len(data) {
		return false
	}

	b.buf = append(b.buf, data...)

	return true
}
