package sdt

import "github.com/gosmf/smf/format"

// Map is a named-field container with multimap semantics: adding an entry
// never overwrites an existing entry with the same name, and name lookup
// returns an unspecified one of possibly several matches. Entries keep
// insertion order for iteration.
type Map struct {
	c *container
}

// NewMap creates an empty writable map backed by growable data blocks.
func NewMap(opts ...Option) (*Map, error) {
	c, err := newContainer(format.TypeMap, opts...)
	if err != nil {
		return nil, err
	}

	return &Map{c: c}, nil
}

// NewMapOver creates an empty writable map over a caller-supplied fixed
// region. The region is never reallocated; adds that would exceed its
// capacity fail with errs.ErrInsufficientSpace.
func NewMapOver(buf []byte) (*Map, error) {
	c, err := newFixedContainer(format.TypeMap, buf)
	if err != nil {
		return nil, err
	}

	return &Map{c: c}, nil
}

// DecodeMap opens an encoded map for reading. The returned map is
// readable only.
func DecodeMap(data []byte) (*Map, error) {
	c, err := decodeContainer(format.TypeMap, data)
	if err != nil {
		return nil, err
	}

	return &Map{c: c}, nil
}

// AddField appends an entry with the given name. Duplicate names coexist.
func (m *Map) AddField(name string, f Field) error { return m.c.addField(name, f) }

// AddNull appends a typed null entry.
func (m *Map) AddNull(name string) error { return m.c.addField(name, NullField()) }

// AddBool appends a boolean entry.
func (m *Map) AddBool(name string, v bool) error { return m.c.addField(name, BoolField(v)) }

// AddChar appends a character entry.
func (m *Map) AddChar(name string, v rune) error { return m.c.addField(name, CharField(v)) }

// AddWChar appends a wide-character entry.
func (m *Map) AddWChar(name string, v rune) error { return m.c.addField(name, WCharField(v)) }

// AddInt8 appends a signed 8-bit integer entry.
func (m *Map) AddInt8(name string, v int8) error { return m.c.addField(name, Int8Field(v)) }

// AddInt16 appends a signed 16-bit integer entry.
func (m *Map) AddInt16(name string, v int16) error { return m.c.addField(name, Int16Field(v)) }

// AddInt32 appends a signed 32-bit integer entry.
func (m *Map) AddInt32(name string, v int32) error { return m.c.addField(name, Int32Field(v)) }

// AddInt64 appends a signed 64-bit integer entry.
func (m *Map) AddInt64(name string, v int64) error { return m.c.addField(name, Int64Field(v)) }

// AddUint8 appends an unsigned 8-bit integer entry.
func (m *Map) AddUint8(name string, v uint8) error { return m.c.addField(name, Uint8Field(v)) }

// AddUint16 appends an unsigned 16-bit integer entry.
func (m *Map) AddUint16(name string, v uint16) error { return m.c.addField(name, Uint16Field(v)) }

// AddUint32 appends an unsigned 32-bit integer entry.
func (m *Map) AddUint32(name string, v uint32) error { return m.c.addField(name, Uint32Field(v)) }

// AddUint64 appends an unsigned 64-bit integer entry.
func (m *Map) AddUint64(name string, v uint64) error { return m.c.addField(name, Uint64Field(v)) }

// AddFloat32 appends a 32-bit float entry.
func (m *Map) AddFloat32(name string, v float32) error { return m.c.addField(name, Float32Field(v)) }

// AddFloat64 appends a 64-bit float entry.
func (m *Map) AddFloat64(name string, v float64) error { return m.c.addField(name, Float64Field(v)) }

// AddString appends a text entry.
func (m *Map) AddString(name string, v string) error { return m.c.addField(name, StringField(v)) }

// AddByteArray appends an opaque byte-sequence entry.
func (m *Map) AddByteArray(name string, v []byte) error { return m.c.addField(name, ByteArrayField(v)) }

// AddDestination appends a destination entry.
func (m *Map) AddDestination(name string, d Destination) error {
	return m.c.addField(name, DestinationField(d))
}

// AddSMF appends an embedded encoded message entry.
func (m *Map) AddSMF(name string, v []byte) error { return m.c.addField(name, SMFField(v)) }

// OpenSubMap opens a nested map under the given name for incremental
// writing. Only one sub-container may be open at a time; a second open
// fails with errs.ErrContainerBusy until the first is closed.
func (m *Map) OpenSubMap(name string) (*Map, error) {
	c, err := m.c.openSub(format.TypeMap, name)
	if err != nil {
		return nil, err
	}

	return &Map{c: c}, nil
}

// OpenSubStream opens a nested stream under the given name for
// incremental writing.
func (m *Map) OpenSubStream(name string) (*Stream, error) {
	c, err := m.c.openSub(format.TypeStream, name)
	if err != nil {
		return nil, err
	}

	return &Stream{c: c}, nil
}

// Get returns the field of the first encountered entry with the given
// name, or errs.ErrNotFound. The read cursor is not disturbed.
func (m *Map) Get(name string) (Field, error) { return m.c.get(name) }

// GetBool looks up name and coerces the field to a boolean.
func (m *Map) GetBool(name string) (bool, error) {
	f, err := m.c.get(name)
	if err != nil {
		return false, err
	}

	return f.AsBool()
}

// GetChar looks up name and coerces the field to a character.
func (m *Map) GetChar(name string) (rune, error) {
	f, err := m.c.get(name)
	if err != nil {
		return 0, err
	}

	return f.AsChar()
}

// GetInt8 looks up name and coerces the field to an int8.
func (m *Map) GetInt8(name string) (int8, error) {
	f, err := m.c.get(name)
	if err != nil {
		return 0, err
	}

	return f.AsInt8()
}

// GetInt16 looks up name and coerces the field to an int16.
func (m *Map) GetInt16(name string) (int16, error) {
	f, err := m.c.get(name)
	if err != nil {
		return 0, err
	}

	return f.AsInt16()
}

// GetInt32 looks up name and coerces the field to an int32.
func (m *Map) GetInt32(name string) (int32, error) {
	f, err := m.c.get(name)
	if err != nil {
		return 0, err
	}

	return f.AsInt32()
}

// GetInt64 looks up name and coerces the field to an int64.
func (m *Map) GetInt64(name string) (int64, error) {
	f, err := m.c.get(name)
	if err != nil {
		return 0, err
	}

	return f.AsInt64()
}

// GetUint8 looks up name and coerces the field to a uint8.
func (m *Map) GetUint8(name string) (uint8, error) {
	f, err := m.c.get(name)
	if err != nil {
		return 0, err
	}

	return f.AsUint8()
}

// GetUint16 looks up name and coerces the field to a uint16.
func (m *Map) GetUint16(name string) (uint16, error) {
	f, err := m.c.get(name)
	if err != nil {
		return 0, err
	}

	return f.AsUint16()
}

// GetUint32 looks up name and coerces the field to a uint32.
func (m *Map) GetUint32(name string) (uint32, error) {
	f, err := m.c.get(name)
	if err != nil {
		return 0, err
	}

	return f.AsUint32()
}

// GetUint64 looks up name and coerces the field to a uint64.
func (m *Map) GetUint64(name string) (uint64, error) {
	f, err := m.c.get(name)
	if err != nil {
		return 0, err
	}

	return f.AsUint64()
}

// GetFloat32 looks up name and returns a 32-bit float field's value.
func (m *Map) GetFloat32(name string) (float32, error) {
	f, err := m.c.get(name)
	if err != nil {
		return 0, err
	}

	return f.AsFloat32()
}

// GetFloat64 looks up name and returns a float field's value.
func (m *Map) GetFloat64(name string) (float64, error) {
	f, err := m.c.get(name)
	if err != nil {
		return 0, err
	}

	return f.AsFloat64()
}

// GetString looks up name and coerces the field to a string.
func (m *Map) GetString(name string) (string, error) {
	f, err := m.c.get(name)
	if err != nil {
		return "", err
	}

	return f.AsString()
}

// GetByteArray looks up name and returns the field's raw bytes.
func (m *Map) GetByteArray(name string) ([]byte, error) {
	f, err := m.c.get(name)
	if err != nil {
		return nil, err
	}

	return f.AsBytes()
}

// GetDestination looks up name and returns the field's destination.
func (m *Map) GetDestination(name string) (Destination, error) {
	f, err := m.c.get(name)
	if err != nil {
		return Destination{}, err
	}

	return f.AsDestination()
}

// GetMap looks up name and opens the nested map it holds for reading.
func (m *Map) GetMap(name string) (*Map, error) {
	f, err := m.c.get(name)
	if err != nil {
		return nil, err
	}

	return f.AsMap()
}

// GetStream looks up name and opens the nested stream it holds for reading.
func (m *Map) GetStream(name string) (*Stream, error) {
	f, err := m.c.get(name)
	if err != nil {
		return nil, err
	}

	return f.AsStream()
}

// Delete removes the first encountered entry with the given name by
// re-serializing the remaining entries; cost is proportional to the
// container's total encoded size. The read cursor resets to the first
// entry.
func (m *Map) Delete(name string) error { return m.c.deleteEntry(name) }

// Rewind resets the read cursor to the first entry.
func (m *Map) Rewind() error { return m.c.rewind() }

// HasNext reports whether another entry is available at the read cursor.
func (m *Map) HasNext() bool { return m.c.hasNext() }

// Next returns the entry at the read cursor and advances past it.
// Iterating past the last entry reports errs.ErrEndOfStream.
func (m *Map) Next() (string, Field, error) { return m.c.next() }

// Count returns the number of entries.
func (m *Map) Count() (int, error) { return m.c.count() }

// Size returns the map's total encoded byte length, including its own
// 5-byte container header.
func (m *Map) Size() int { return m.c.size() }

// Encode finalizes the header and returns a copy of the map's complete
// encoding without closing the handle.
func (m *Map) Encode() ([]byte, error) { return m.c.encode() }

// Field wraps the map's current encoding as a nested-container field.
func (m *Map) Field() (Field, error) { return m.c.field() }

// Close fixes the map into its destination (parent container or close
// sink) and invalidates the handle. Further use reports
// errs.ErrInvalidHandle.
func (m *Map) Close() error { return m.c.close() }

// Invalidate implicitly closes the map and any open sub-container without
// delivering bytes anywhere. Owners of the backing storage call this when
// that storage goes away.
func (m *Map) Invalidate() { m.c.invalidate() }
