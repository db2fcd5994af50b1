package sdt

import (
	"fmt"

	"github.com/gosmf/smf/alloc"
	"github.com/gosmf/smf/errs"
	"github.com/gosmf/smf/format"
	"github.com/gosmf/smf/internal/options"
	"github.com/gosmf/smf/internal/pool"
)

// config carries construction parameters shared by Map and Stream.
type config struct {
	pool     *alloc.Pool
	capacity int
	sink     func(encoded []byte) error
}

// Option configures a growable container at construction time.
type Option = options.Option[*config]

// WithPool selects the data block allocator backing the container.
// Containers default to alloc.Default().
func WithPool(p *alloc.Pool) Option {
	return options.NoError(func(c *config) {
		c.pool = p
	})
}

// WithCapacity sizes the container's initial data block for an expected
// encoding size, avoiding grow-and-copy cycles while writing. The
// container still grows past the hint when needed.
func WithCapacity(n int) Option {
	return options.New(func(c *config) error {
		if n < 0 {
			return fmt.Errorf("%w: negative capacity %d", errs.ErrInsufficientSpace, n)
		}
		c.capacity = n

		return nil
	})
}

// WithCloseSink registers a function that receives the container's final
// encoding when it is closed. Owners of a container's backing storage,
// such as a message wiring a container into its binary attachment, use
// this to capture the fixed bytes.
func WithCloseSink(fn func(encoded []byte) error) Option {
	return options.NoError(func(c *config) {
		c.sink = fn
	})
}

// container is the core shared by Map and Stream. A container is backed by
// exactly one of a growable data block (block != nil) or a caller-supplied
// fixed region (fixed != nil), and moves through a simple lifecycle: open
// and writable, optionally readable after Rewind or when produced by
// decoding, then closed. Closed containers reject every operation with
// errs.ErrInvalidHandle.
type container struct {
	variant format.FieldType // format.TypeMap or format.TypeStream
	pool    *alloc.Pool

	block *alloc.Block // growable backing
	fixed []byte       // fixed caller memory, shared with children
	base  int          // offset of this container within fixed
	used  int          // bytes written in fixed mode, header included

	headerLen int
	readOnly  bool
	closed    bool

	cursor  int // read offset relative to the container's first byte
	entries int // -1 when unknown (decoded containers)

	parent *container
	child  *container

	sink func(encoded []byte) error
}

// newContainer creates a growable container backed by pool data blocks.
func newContainer(variant format.FieldType, opts ...Option) (*container, error) {
	cfg := &config{pool: alloc.Default()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	size := alloc.QuantaSizes[0]
	if cfg.capacity > size {
		size = cfg.capacity
	}
	block, err := cfg.pool.Get(size)
	if err != nil {
		return nil, err
	}

	c := &container{
		variant:   variant,
		pool:      cfg.pool,
		block:     block,
		headerLen: containerHeaderSize,
		cursor:    containerHeaderSize,
		sink:      cfg.sink,
	}

	// Header placeholder; the length is patched when the container is
	// finalized.
	block.Append(make([]byte, containerHeaderSize))
	cfg.pool.NoteContainer(true)

	return c, nil
}

// newFixedContainer creates a container over caller-supplied memory of
// bounded size. The region is never reallocated; writes that would exceed
// it fail with errs.ErrInsufficientSpace.
func newFixedContainer(variant format.FieldType, buf []byte) (*container, error) {
	if len(buf) < containerHeaderSize {
		return nil, fmt.Errorf("%w: %d-byte region cannot hold a container header",
			errs.ErrInsufficientSpace, len(buf))
	}

	c := &container{
		variant:   variant,
		pool:      alloc.Default(),
		fixed:     buf,
		used:      containerHeaderSize,
		headerLen: containerHeaderSize,
		cursor:    containerHeaderSize,
	}

	clear(buf[:containerHeaderSize])
	c.pool.NoteContainer(true)

	return c, nil
}

// decodeContainer opens an existing encoding for reading. The container is
// born readable and rejects mutation.
func decodeContainer(variant format.FieldType, data []byte) (*container, error) {
	typ, total, prefixWidth, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}
	if typ != variant {
		return nil, fmt.Errorf("%w: container tag %s, want %s", errs.ErrCorruptEncoding, typ, variant)
	}
	if total != len(data) {
		return nil, fmt.Errorf("%w: container length %d, input %d bytes",
			errs.ErrCorruptEncoding, total, len(data))
	}

	c := &container{
		variant:   variant,
		pool:      alloc.Default(),
		fixed:     data,
		used:      len(data),
		headerLen: 1 + prefixWidth,
		cursor:    1 + prefixWidth,
		readOnly:  true,
		entries:   -1,
	}
	c.pool.NoteContainer(true)

	return c, nil
}

func (c *container) checkOpen() error {
	if c.closed {
		return fmt.Errorf("%w: container is closed", errs.ErrInvalidHandle)
	}

	return nil
}

func (c *container) ensureWritable() error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	if c.readOnly {
		return fmt.Errorf("%w: decoded containers cannot be modified", errs.ErrReadOnly)
	}

	return nil
}

// bytes returns the container's current encoding, header included. The
// header length field is only valid after finalizeHeader.
func (c *container) bytes() []byte {
	if c.fixed != nil {
		return c.fixed[c.base : c.base+c.used]
	}

	return c.block.Bytes()
}

// size returns the container's total encoded length including its header.
func (c *container) size() int {
	if c.fixed != nil {
		return c.used
	}

	return c.block.Len()
}

// appendBytes writes enc to the container's backing storage, growing a
// data block or enforcing the fixed region's capacity.
func (c *container) appendBytes(enc []byte) error {
	if c.fixed != nil {
		if c.base+c.used+len(enc) > len(c.fixed) {
			return fmt.Errorf("%w: %d bytes needed, %d available", errs.ErrInsufficientSpace,
				len(enc), len(c.fixed)-c.base-c.used)
		}

		copy(c.fixed[c.base+c.used:], enc)
		c.used += len(enc)

		return nil
	}

	if !c.block.Append(enc) {
		block, err := c.pool.Grow(c.block, c.block.Len()+len(enc))
		if err != nil {
			return err
		}
		c.block = block
		c.block.Append(enc)
	}

	return nil
}

// checkName enforces the naming rule of the container's variant: map
// entries require a name, stream entries must not carry one.
func (c *container) checkName(name string) error {
	if c.variant == format.TypeMap && name == "" {
		return fmt.Errorf("%w: map entries require a name", errs.ErrMissingName)
	}
	if c.variant == format.TypeStream && name != "" {
		return fmt.Errorf("%w: stream entries are unnamed", errs.ErrUnexpectedName)
	}

	return nil
}

// addField appends one entry. The append is all-or-nothing: on any error
// the container's contents are unchanged.
func (c *container) addField(name string, f Field) error {
	if err := c.ensureWritable(); err != nil {
		return err
	}
	if c.child != nil {
		return fmt.Errorf("%w: sub-container is open", errs.ErrInsufficientSpace)
	}
	if err := c.checkName(name); err != nil {
		return err
	}

	scratch := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(scratch)

	enc := scratch.Bytes()
	var err error
	if c.variant == format.TypeMap {
		enc, err = appendName(enc, name)
		if err != nil {
			return err
		}
	}
	enc, err = EncodeField(enc, f)
	if err != nil {
		return err
	}
	scratch.B = enc

	if err := c.appendBytes(enc); err != nil {
		return err
	}

	if c.entries >= 0 {
		c.entries++
	}

	return nil
}

// openSub opens a nested sub-container for incremental writing. Only one
// sub-container may be open at a time per container.
func (c *container) openSub(variant format.FieldType, name string) (*container, error) {
	if err := c.ensureWritable(); err != nil {
		return nil, err
	}
	if c.child != nil {
		return nil, fmt.Errorf("%w: another sub-container is open", errs.ErrContainerBusy)
	}
	if err := c.checkName(name); err != nil {
		return nil, err
	}

	// The entry name is fixed into the parent before the sub-container's
	// first byte. Nothing is written to the parent until every fallible
	// step has succeeded, so a failed open leaves it byte-identical.
	var nameEnc []byte
	if c.variant == format.TypeMap {
		var err error
		nameEnc, err = appendName(nil, name)
		if err != nil {
			return nil, err
		}
	}

	var child *container
	if c.fixed != nil {
		if c.base+c.used+len(nameEnc)+containerHeaderSize > len(c.fixed) {
			return nil, fmt.Errorf("%w: no room for sub-container header", errs.ErrInsufficientSpace)
		}
		if nameEnc != nil {
			// Cannot fail: capacity was checked above.
			_ = c.appendBytes(nameEnc)
		}

		// The child writes directly into the remainder of the fixed
		// region, so capacity stays byte-accurate.
		child = &container{
			variant:   variant,
			pool:      c.pool,
			fixed:     c.fixed,
			base:      c.base + c.used,
			used:      containerHeaderSize,
			headerLen: containerHeaderSize,
			cursor:    containerHeaderSize,
			parent:    c,
		}
		clear(c.fixed[child.base : child.base+containerHeaderSize])
	} else {
		block, err := c.pool.Get(alloc.QuantaSizes[0])
		if err != nil {
			return nil, err
		}
		if nameEnc != nil {
			if err := c.appendBytes(nameEnc); err != nil {
				c.pool.Put(block)

				return nil, err
			}
		}
		child = &container{
			variant:   variant,
			pool:      c.pool,
			block:     block,
			headerLen: containerHeaderSize,
			cursor:    containerHeaderSize,
			parent:    c,
		}
		block.Append(make([]byte, containerHeaderSize))
	}

	c.child = child
	c.pool.NoteContainer(true)

	return child, nil
}

// finalizeHeader patches the container's tag and total length into its
// header bytes.
func (c *container) finalizeHeader() {
	b := c.bytes()
	b[0] = uint8(c.variant)<<4 | 4
	netEngine.PutUint32(b[1:5], uint32(c.size()))
}

// close fixes the container's encoding in place and invalidates the
// handle. A sub-container is spliced into its parent; a container with a
// close sink delivers its final bytes to the sink. Closing an
// already-closed container reports errs.ErrInvalidHandle.
func (c *container) close() error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	if c.child != nil {
		return fmt.Errorf("%w: sub-container still open", errs.ErrContainerBusy)
	}

	if !c.readOnly {
		c.finalizeHeader()
	}

	if c.parent != nil {
		p := c.parent
		if p.fixed != nil {
			// Already written in place; account for it in the parent.
			p.used += c.used
		} else {
			if err := p.appendBytes(c.bytes()); err != nil {
				return err
			}
		}
		if p.entries >= 0 {
			p.entries++
		}
		p.child = nil
		c.parent = nil
	}

	if c.sink != nil {
		enc := make([]byte, c.size())
		copy(enc, c.bytes())
		if err := c.sink(enc); err != nil {
			return err
		}
	}

	c.release()

	return nil
}

// release drops the container's backing storage and marks the handle
// closed. It is idempotent.
func (c *container) release() {
	if c.closed {
		return
	}

	if c.block != nil {
		c.pool.Put(c.block)
		c.block = nil
	}
	c.fixed = nil
	c.closed = true
	c.pool.NoteContainer(false)
}

// invalidate implicitly closes the container and any open sub-container,
// without delivering bytes anywhere. Used when the owning message or
// parent goes away; subsequent operations report errs.ErrInvalidHandle.
func (c *container) invalidate() {
	if c.child != nil {
		c.child.invalidate()
		c.child = nil
	}
	c.parent = nil
	c.release()
}

// rewind resets the read cursor to the first entry.
func (c *container) rewind() error {
	if err := c.checkOpen(); err != nil {
		return err
	}

	c.cursor = c.headerLen

	return nil
}

// hasNext reports whether another entry is available at the read cursor.
func (c *container) hasNext() bool {
	return !c.closed && c.child == nil && c.cursor < c.size()
}

// next decodes the entry at the read cursor and advances past it. For map
// containers the entry's name is returned; for streams it is empty.
func (c *container) next() (string, Field, error) {
	if err := c.checkOpen(); err != nil {
		return "", Field{}, err
	}
	if c.child != nil {
		return "", Field{}, fmt.Errorf("%w: sub-container still open", errs.ErrContainerBusy)
	}
	if c.cursor >= c.size() {
		return "", Field{}, errs.ErrEndOfStream
	}

	buf := c.bytes()

	var name string
	if c.variant == format.TypeMap {
		n, consumed, err := decodeName(buf[c.cursor:])
		if err != nil {
			return "", Field{}, err
		}
		c.cursor += consumed
		name = n
	}

	f, consumed, err := DecodeField(buf[c.cursor:])
	if err != nil {
		return "", Field{}, err
	}
	c.cursor += consumed

	return name, f, nil
}

// get scans for the first entry with the given name without disturbing the
// read cursor. Duplicate names may exist; get returns one of them.
func (c *container) get(name string) (Field, error) {
	if err := c.checkOpen(); err != nil {
		return Field{}, err
	}
	if c.child != nil {
		return Field{}, fmt.Errorf("%w: sub-container still open", errs.ErrContainerBusy)
	}

	buf := c.bytes()
	off := c.headerLen
	for off < len(buf) {
		entryName, consumed, err := decodeName(buf[off:])
		if err != nil {
			return Field{}, err
		}
		off += consumed

		f, consumed, err := DecodeField(buf[off:])
		if err != nil {
			return Field{}, err
		}
		off += consumed

		if entryName == name {
			return f, nil
		}
	}

	return Field{}, fmt.Errorf("%w: no entry named %q", errs.ErrNotFound, name)
}

// deleteEntry removes the first entry with the given name by re-serializing
// the remaining entries, so its cost is proportional to the container's
// total size. Relative order of the surviving entries is preserved.
func (c *container) deleteEntry(name string) error {
	if err := c.ensureWritable(); err != nil {
		return err
	}
	if c.child != nil {
		return fmt.Errorf("%w: sub-container still open", errs.ErrContainerBusy)
	}

	buf := c.bytes()

	scratch := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(scratch)

	found := false
	off := c.headerLen
	for off < len(buf) {
		start := off

		entryName, consumed, err := decodeName(buf[off:])
		if err != nil {
			return err
		}
		off += consumed

		_, consumed, err = DecodeField(buf[off:])
		if err != nil {
			return err
		}
		off += consumed

		if !found && entryName == name {
			found = true
			continue
		}
		scratch.MustWrite(buf[start:off])
	}

	if !found {
		return fmt.Errorf("%w: no entry named %q", errs.ErrNotFound, name)
	}

	if c.fixed != nil {
		copy(c.fixed[c.base+c.headerLen:], scratch.Bytes())
		c.used = c.headerLen + scratch.Len()
	} else {
		c.block.SetLen(c.headerLen)
		c.block.Append(scratch.Bytes())
	}

	if c.entries > 0 {
		c.entries--
	}
	c.cursor = c.headerLen

	return nil
}

// count returns the number of entries, scanning the encoding when the
// container was produced by decoding.
func (c *container) count() (int, error) {
	if err := c.checkOpen(); err != nil {
		return 0, err
	}
	if c.entries >= 0 {
		return c.entries, nil
	}

	buf := c.bytes()
	off := c.headerLen
	n := 0
	for off < len(buf) {
		if c.variant == format.TypeMap {
			_, consumed, err := decodeName(buf[off:])
			if err != nil {
				return 0, err
			}
			off += consumed
		}

		_, consumed, err := DecodeField(buf[off:])
		if err != nil {
			return 0, err
		}
		off += consumed
		n++
	}

	return n, nil
}

// encode finalizes the header and returns a copy of the container's
// complete encoding without closing the handle.
func (c *container) encode() ([]byte, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	if c.child != nil {
		return nil, fmt.Errorf("%w: sub-container still open", errs.ErrContainerBusy)
	}

	if !c.readOnly {
		c.finalizeHeader()
	}

	enc := make([]byte, c.size())
	copy(enc, c.bytes())

	return enc, nil
}

// field wraps the container's current encoding as a nested-container
// field, suitable for adding to another container.
func (c *container) field() (Field, error) {
	enc, err := c.encode()
	if err != nil {
		return Field{}, err
	}

	return Field{typ: c.variant, bytes: enc}, nil
}
