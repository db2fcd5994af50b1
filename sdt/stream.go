package sdt

import "github.com/gosmf/smf/format"

// Stream is a purely positional container: entries carry no names and are
// read back in insertion order.
type Stream struct {
	c *container
}

// NewStream creates an empty writable stream backed by growable data
// blocks.
func NewStream(opts ...Option) (*Stream, error) {
	c, err := newContainer(format.TypeStream, opts...)
	if err != nil {
		return nil, err
	}

	return &Stream{c: c}, nil
}

// NewStreamOver creates an empty writable stream over a caller-supplied
// fixed region. Adds that would exceed the region's capacity fail with
// errs.ErrInsufficientSpace.
func NewStreamOver(buf []byte) (*Stream, error) {
	c, err := newFixedContainer(format.TypeStream, buf)
	if err != nil {
		return nil, err
	}

	return &Stream{c: c}, nil
}

// DecodeStream opens an encoded stream for reading. The returned stream is
// readable only.
func DecodeStream(data []byte) (*Stream, error) {
	c, err := decodeContainer(format.TypeStream, data)
	if err != nil {
		return nil, err
	}

	return &Stream{c: c}, nil
}

// AddField appends a field to the stream.
func (s *Stream) AddField(f Field) error { return s.c.addField("", f) }

// AddNull appends a typed null.
func (s *Stream) AddNull() error { return s.c.addField("", NullField()) }

// AddBool appends a boolean.
func (s *Stream) AddBool(v bool) error { return s.c.addField("", BoolField(v)) }

// AddChar appends a character.
func (s *Stream) AddChar(v rune) error { return s.c.addField("", CharField(v)) }

// AddWChar appends a wide character.
func (s *Stream) AddWChar(v rune) error { return s.c.addField("", WCharField(v)) }

// AddInt8 appends a signed 8-bit integer.
func (s *Stream) AddInt8(v int8) error { return s.c.addField("", Int8Field(v)) }

// AddInt16 appends a signed 16-bit integer.
func (s *Stream) AddInt16(v int16) error { return s.c.addField("", Int16Field(v)) }

// AddInt32 appends a signed 32-bit integer.
func (s *Stream) AddInt32(v int32) error { return s.c.addField("", Int32Field(v)) }

// AddInt64 appends a signed 64-bit integer.
func (s *Stream) AddInt64(v int64) error { return s.c.addField("", Int64Field(v)) }

// AddUint8 appends an unsigned 8-bit integer.
func (s *Stream) AddUint8(v uint8) error { return s.c.addField("", Uint8Field(v)) }

// AddUint16 appends an unsigned 16-bit integer.
func (s *Stream) AddUint16(v uint16) error { return s.c.addField("", Uint16Field(v)) }

// AddUint32 appends an unsigned 32-bit integer.
func (s *Stream) AddUint32(v uint32) error { return s.c.addField("", Uint32Field(v)) }

// AddUint64 appends an unsigned 64-bit integer.
func (s *Stream) AddUint64(v uint64) error { return s.c.addField("", Uint64Field(v)) }

// AddFloat32 appends a 32-bit float.
func (s *Stream) AddFloat32(v float32) error { return s.c.addField("", Float32Field(v)) }

// AddFloat64 appends a 64-bit float.
func (s *Stream) AddFloat64(v float64) error { return s.c.addField("", Float64Field(v)) }

// AddString appends a text value.
func (s *Stream) AddString(v string) error { return s.c.addField("", StringField(v)) }

// AddByteArray appends an opaque byte sequence.
func (s *Stream) AddByteArray(v []byte) error { return s.c.addField("", ByteArrayField(v)) }

// AddDestination appends a destination.
func (s *Stream) AddDestination(d Destination) error { return s.c.addField("", DestinationField(d)) }

// AddSMF appends an embedded encoded message.
func (s *Stream) AddSMF(v []byte) error { return s.c.addField("", SMFField(v)) }

// OpenSubMap opens a nested map for incremental writing. Only one
// sub-container may be open at a time per container.
func (s *Stream) OpenSubMap() (*Map, error) {
	c, err := s.c.openSub(format.TypeMap, "")
	if err != nil {
		return nil, err
	}

	return &Map{c: c}, nil
}

// OpenSubStream opens a nested stream for incremental writing.
func (s *Stream) OpenSubStream() (*Stream, error) {
	c, err := s.c.openSub(format.TypeStream, "")
	if err != nil {
		return nil, err
	}

	return &Stream{c: c}, nil
}

// Rewind resets the read cursor to the first entry.
func (s *Stream) Rewind() error { return s.c.rewind() }

// HasNext reports whether another entry is available at the read cursor.
func (s *Stream) HasNext() bool { return s.c.hasNext() }

// Next returns the field at the read cursor and advances past it.
// Iterating past the last entry reports errs.ErrEndOfStream.
func (s *Stream) Next() (Field, error) {
	_, f, err := s.c.next()

	return f, err
}

// NextBool reads the next field and coerces it to a boolean.
func (s *Stream) NextBool() (bool, error) {
	f, err := s.Next()
	if err != nil {
		return false, err
	}

	return f.AsBool()
}

// NextChar reads the next field and coerces it to a character.
func (s *Stream) NextChar() (rune, error) {
	f, err := s.Next()
	if err != nil {
		return 0, err
	}

	return f.AsChar()
}

// NextInt8 reads the next field and coerces it to an int8.
func (s *Stream) NextInt8() (int8, error) {
	f, err := s.Next()
	if err != nil {
		return 0, err
	}

	return f.AsInt8()
}

// NextInt16 reads the next field and coerces it to an int16.
func (s *Stream) NextInt16() (int16, error) {
	f, err := s.Next()
	if err != nil {
		return 0, err
	}

	return f.AsInt16()
}

// NextInt32 reads the next field and coerces it to an int32.
func (s *Stream) NextInt32() (int32, error) {
	f, err := s.Next()
	if err != nil {
		return 0, err
	}

	return f.AsInt32()
}

// NextInt64 reads the next field and coerces it to an int64.
func (s *Stream) NextInt64() (int64, error) {
	f, err := s.Next()
	if err != nil {
		return 0, err
	}

	return f.AsInt64()
}

// NextUint8 reads the next field and coerces it to a uint8.
func (s *Stream) NextUint8() (uint8, error) {
	f, err := s.Next()
	if err != nil {
		return 0, err
	}

	return f.AsUint8()
}

// NextUint16 reads the next field and coerces it to a uint16.
func (s *Stream) NextUint16() (uint16, error) {
	f, err := s.Next()
	if err != nil {
		return 0, err
	}

	return f.AsUint16()
}

// NextUint32 reads the next field and coerces it to a uint32.
func (s *Stream) NextUint32() (uint32, error) {
	f, err := s.Next()
	if err != nil {
		return 0, err
	}

	return f.AsUint32()
}

// NextUint64 reads the next field and coerces it to a uint64.
func (s *Stream) NextUint64() (uint64, error) {
	f, err := s.Next()
	if err != nil {
		return 0, err
	}

	return f.AsUint64()
}

// NextFloat32 reads the next field and returns a 32-bit float value.
func (s *Stream) NextFloat32() (float32, error) {
	f, err := s.Next()
	if err != nil {
		return 0, err
	}

	return f.AsFloat32()
}

// NextFloat64 reads the next field and returns a float value.
func (s *Stream) NextFloat64() (float64, error) {
	f, err := s.Next()
	if err != nil {
		return 0, err
	}

	return f.AsFloat64()
}

// NextString reads the next field and coerces it to a string.
func (s *Stream) NextString() (string, error) {
	f, err := s.Next()
	if err != nil {
		return "", err
	}

	return f.AsString()
}

// NextByteArray reads the next field and returns its raw bytes.
func (s *Stream) NextByteArray() ([]byte, error) {
	f, err := s.Next()
	if err != nil {
		return nil, err
	}

	return f.AsBytes()
}

// NextDestination reads the next field and returns its destination.
func (s *Stream) NextDestination() (Destination, error) {
	f, err := s.Next()
	if err != nil {
		return Destination{}, err
	}

	return f.AsDestination()
}

// NextMap reads the next field and opens the nested map it holds.
func (s *Stream) NextMap() (*Map, error) {
	f, err := s.Next()
	if err != nil {
		return nil, err
	}

	return f.AsMap()
}

// NextStream reads the next field and opens the nested stream it holds.
func (s *Stream) NextStream() (*Stream, error) {
	f, err := s.Next()
	if err != nil {
		return nil, err
	}

	return f.AsStream()
}

// Count returns the number of entries.
func (s *Stream) Count() (int, error) { return s.c.count() }

// Size returns the stream's total encoded byte length, including its own
// 5-byte container header.
func (s *Stream) Size() int { return s.c.size() }

// Encode finalizes the header and returns a copy of the stream's complete
// encoding without closing the handle.
func (s *Stream) Encode() ([]byte, error) { return s.c.encode() }

// Field wraps the stream's current encoding as a nested-container field.
func (s *Stream) Field() (Field, error) { return s.c.field() }

// Close fixes the stream into its destination (parent container or close
// sink) and invalidates the handle. Further use reports
// errs.ErrInvalidHandle.
func (s *Stream) Close() error { return s.c.close() }

// Invalidate implicitly closes the stream and any open sub-container
// without delivering bytes anywhere.
func (s *Stream) Invalidate() { s.c.invalidate() }
