// Package alloc manages the data blocks that back message parts and
// growable containers.
//
// Storage is handed out in a small number of discrete size classes
// ("quanta"). A container or message part that outgrows its current block
// is reallocated to the next class up, copying the bytes already encoded.
// Released blocks return to a per-class freelist for reuse.
//
// The pool also maintains the aggregate statistics the message API exposes
// for capacity planning: allocation, free, duplicate and reallocation
// counts, per-quanta block counts, and message/container counts. The
// counters are purely observational; they never affect behavior.
//
// A single Pool is normally shared by every message and container in the
// process (see Default), but callers that want isolated accounting or a
// memory budget can construct their own with NewPool and pass it to the
// message and container constructors.
package alloc

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gosmf/smf/errs"
	"github.com/gosmf/smf/internal/options"
)

// QuantaSizes lists the block size classes, smallest first. Requests larger
// than the biggest quanta get an exact-size one-off block that is never
// pooled.
var QuantaSizes = [...]int{512, 2048, 8192, 32768, 131072}

// NumQuanta is the number of block size classes.
const NumQuanta = len(QuantaSizes)

// Stats is a snapshot of a Pool's counters.
type Stats struct {
	// TotalMemory is the number of bytes owned by the pool, both handed
	// out and sitting on freelists.
	TotalMemory uint64
	// AllocatedMemory is the number of bytes in blocks currently handed out.
	AllocatedMemory uint64

	AllocCount   uint64 // blocks handed out
	FreeCount    uint64 // blocks fully released (reference count reached zero)
	DupCount     uint64 // reference-count increments from message duplication
	ReallocCount uint64 // blocks grown to a larger quanta class

	// AllocatedBlocks and FreeBlocks count blocks per quanta class.
	AllocatedBlocks [NumQuanta]uint64
	FreeBlocks      [NumQuanta]uint64

	AllocatedMessages   uint64 // live messages
	FreedMessages       uint64 // messages freed over the pool's lifetime
	AllocatedContainers uint64 // live containers
	FreedContainers     uint64 // containers closed over the pool's lifetime
}

// Pool is a counting quanta allocator. The zero value is not usable; use
// NewPool or Default.
type Pool struct {
	mu        sync.Mutex
	freelists [NumQuanta][]*Block

	maxMemory uint64 // 0 means unlimited

	totalMemory atomic.Uint64
	allocMemory atomic.Uint64

	allocCount   atomic.Uint64
	freeCount    atomic.Uint64
	dupCount     atomic.Uint64
	reallocCount atomic.Uint64

	allocBlocks [NumQuanta]atomic.Uint64
	freeBlocks  [NumQuanta]atomic.Uint64

	liveMessages    atomic.Uint64
	freedMessages   atomic.Uint64
	liveContainers  atomic.Uint64
	freedContainers atomic.Uint64
}

// Option configures a Pool.
type Option = options.Option[*Pool]

// WithMaxMemory caps the total bytes the pool may own. Requests that would
// exceed the cap fail with an out-of-memory error instead of allocating.
// A limit of zero means unlimited.
func WithMaxMemory(limit uint64) Option {
	return options.NoError(func(p *Pool) {
		p.maxMemory = limit
	})
}

// NewPool creates a Pool with empty freelists.
func NewPool(opts ...Option) (*Pool, error) {
	p := &Pool{}
	if err := options.Apply(p, opts...); err != nil {
		return nil, err
	}

	return p, nil
}

var defaultPool = &Pool{}

// Default returns the process-wide shared pool used when no explicit pool
// is passed to a message or container constructor.
func Default() *Pool {
	return defaultPool
}

// classFor returns the smallest quanta class that holds size bytes, or -1
// if size exceeds the largest class.
func classFor(size int) int {
	for i, q := range QuantaSizes {
		if size <= q {
			return i
		}
	}

	return -1
}

// Get hands out a block with at least size bytes of capacity and a
// reference count of one. The block's length starts at zero.
//
// Returns ErrOutOfMemory if the pool's memory budget cannot cover a new
// block and no pooled block of a suitable class is free.
func (p *Pool) Get(size int) (*Block, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative block size %d", errs.ErrValueOutOfRange, size)
	}

	class := classFor(size)

	if class >= 0 {
		p.mu.Lock()
		if list := p.freelists[class]; len(list) > 0 {
			b := list[len(list)-1]
			p.freelists[class] = list[:len(list)-1]
			p.mu.Unlock()

			p.freeBlocks[class].Add(^uint64(0))
			p.allocBlocks[class].Add(1)
			p.allocCount.Add(1)
			p.allocMemory.Add(uint64(cap(b.buf)))
			b.buf = b.buf[:0]
			b.refs.Store(1)

			return b, nil
		}
		p.mu.Unlock()
	}

	capacity := size
	if class >= 0 {
		capacity = QuantaSizes[class]
	}

	if p.maxMemory > 0 && p.totalMemory.Load()+uint64(capacity) > p.maxMemory {
		return nil, fmt.Errorf("%w: pool limit %d bytes", errs.ErrOutOfMemory, p.maxMemory)
	}

	b := &Block{
		buf:   make([]byte, 0, capacity),
		class: class,
		pool:  p,
	}
	b.refs.Store(1)

	p.totalMemory.Add(uint64(capacity))
	p.allocMemory.Add(uint64(capacity))
	p.allocCount.Add(1)
	if class >= 0 {
		p.allocBlocks[class].Add(1)
	}

	return b, nil
}

// Put drops one reference to the block. When the count reaches zero the
// block returns to its class freelist, or is discarded if it is an
// oversize one-off.
func (p *Pool) Put(b *Block) {
	if b == nil {
		return
	}

	if b.refs.Add(-1) > 0 {
		return
	}

	p.freeCount.Add(1)
	p.allocMemory.Add(^uint64(cap(b.buf) - 1))

	if b.class < 0 {
		// Oversize blocks are not pooled.
		p.totalMemory.Add(^uint64(cap(b.buf) - 1))

		return
	}

	p.allocBlocks[b.class].Add(^uint64(0))
	p.freeBlocks[b.class].Add(1)

	b.buf = b.buf[:0]

	p.mu.Lock()
	p.freelists[b.class] = append(p.freelists[b.class], b)
	p.mu.Unlock()
}

// Dup adds a reference to the block, sharing it between two owners. The
// block's storage is released only when both owners have called Put.
func (p *Pool) Dup(b *Block) *Block {
	b.refs.Add(1)
	p.dupCount.Add(1)

	return b
}

// Grow reallocates the block into a class large enough to hold need bytes,
// copying the bytes already written, and releases the old block. The
// returned block replaces the argument; the caller must not use the old
// pointer afterwards.
//
// Growing a shared block would mutate data visible to the other owner, so
// Grow requires a sole reference and reports ErrInvalidHandle otherwise.
func (p *Pool) Grow(b *Block, need int) (*Block, error) {
	if need <= cap(b.buf) {
		return b, nil
	}

	if b.refs.Load() != 1 {
		return nil, fmt.Errorf("%w: cannot grow a shared block", errs.ErrInvalidHandle)
	}

	nb, err := p.Get(need)
	if err != nil {
		return nil, err
	}

	nb.buf = nb.buf[:len(b.buf)]
	copy(nb.buf, b.buf)

	p.reallocCount.Add(1)
	p.Put(b)

	return nb, nil
}

// NoteMessage records a message allocation (alive=true) or free.
func (p *Pool) NoteMessage(alive bool) {
	if alive {
		p.liveMessages.Add(1)
	} else {
		p.liveMessages.Add(^uint64(0))
		p.freedMessages.Add(1)
	}
}

// NoteContainer records a container creation (alive=true) or closure.
func (p *Pool) NoteContainer(alive bool) {
	if alive {
		p.liveContainers.Add(1)
	} else {
		p.liveContainers.Add(^uint64(0))
		p.freedContainers.Add(1)
	}
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool) Stats() Stats {
	s := Stats{
		TotalMemory:         p.totalMemory.Load(),
		AllocatedMemory:     p.allocMemory.Load(),
		AllocCount:          p.allocCount.Load(),
		FreeCount:           p.freeCount.Load(),
		DupCount:            p.dupCount.Load(),
		ReallocCount:        p.reallocCount.Load(),
		AllocatedMessages:   p.liveMessages.Load(),
		FreedMessages:       p.freedMessages.Load(),
		AllocatedContainers: p.liveContainers.Load(),
		FreedContainers:     p.freedContainers.Load(),
	}

	for i := range QuantaSizes {
		s.AllocatedBlocks[i] = p.allocBlocks[i].Load()
		s.FreeBlocks[i] = p.freeBlocks[i].Load()
	}

	return s
}
