package sdt

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/gosmf/smf/errs"
	"github.com/gosmf/smf/format"
)

// Field is the tagged union of every value a container can hold.
//
// A Field is constructed with one of the typed constructors (BoolField,
// Int32Field, StringField, ...) or produced by decoding, and read back with
// the As* getters, which coerce between compatible types:
//
//   - integer, unsigned, bool and char values convert between each other,
//     with range checks on narrowing conversions
//   - float32 widens to float64 but not the reverse
//   - a char renders as a one-character string and a one-character string
//     converts back to a char
//
// Any other combination reports errs.ErrInvalidConversion. Getters never
// panic on a mismatched type.
type Field struct {
	typ   format.FieldType
	width uint8 // value width in bytes for int/uint/float/char types

	b     bool
	i64   int64
	u64   uint64
	f64   float64
	str   string
	bytes []byte
	dest  Destination
	raw   []byte // full encoded bytes of an unknown passthrough field
}

// NullField returns a typed null field.
func NullField() Field {
	return Field{typ: format.TypeNull}
}

// BoolField returns a boolean field.
func BoolField(v bool) Field {
	return Field{typ: format.TypeBool, width: 1, b: v}
}

// CharField returns a character field holding the given code point.
// Code points above U+FFFF cannot be represented and fail at encode time.
func CharField(v rune) Field {
	return Field{typ: format.TypeChar, width: 2, u64: uint64(uint32(v))}
}

// WCharField returns a wide-character field. On the wire it is identical
// to a CharField; both occupy two value bytes.
func WCharField(v rune) Field {
	return CharField(v)
}

// Int8Field returns a signed 8-bit integer field.
func Int8Field(v int8) Field {
	return Field{typ: format.TypeInt, width: 1, i64: int64(v)}
}

// Int16Field returns a signed 16-bit integer field.
func Int16Field(v int16) Field {
	return Field{typ: format.TypeInt, width: 2, i64: int64(v)}
}

// Int32Field returns a signed 32-bit integer field.
func Int32Field(v int32) Field {
	return Field{typ: format.TypeInt, width: 4, i64: int64(v)}
}

// Int64Field returns a signed 64-bit integer field.
func Int64Field(v int64) Field {
	return Field{typ: format.TypeInt, width: 8, i64: v}
}

// Uint8Field returns an unsigned 8-bit integer field.
func Uint8Field(v uint8) Field {
	return Field{typ: format.TypeUint, width: 1, u64: uint64(v)}
}

// Uint16Field returns an unsigned 16-bit integer field.
func Uint16Field(v uint16) Field {
	return Field{typ: format.TypeUint, width: 2, u64: uint64(v)}
}

// Uint32Field returns an unsigned 32-bit integer field.
func Uint32Field(v uint32) Field {
	return Field{typ: format.TypeUint, width: 4, u64: uint64(v)}
}

// Uint64Field returns an unsigned 64-bit integer field.
func Uint64Field(v uint64) Field {
	return Field{typ: format.TypeUint, width: 8, u64: v}
}

// Float32Field returns a 32-bit floating point field.
func Float32Field(v float32) Field {
	return Field{typ: format.TypeFloat, width: 4, f64: float64(v)}
}

// Float64Field returns a 64-bit floating point field.
func Float64Field(v float64) Field {
	return Field{typ: format.TypeFloat, width: 8, f64: v}
}

// ByteArrayField returns an opaque byte-sequence field. The bytes are
// referenced, not copied; encoding copies them into the container.
func ByteArrayField(v []byte) Field {
	return Field{typ: format.TypeByteArray, bytes: v}
}

// StringField returns a UTF-8 text field.
func StringField(v string) Field {
	return Field{typ: format.TypeString, str: v}
}

// DestinationField returns a destination field.
func DestinationField(d Destination) Field {
	return Field{typ: format.TypeDestination, dest: d}
}

// SMFField returns a field holding a complete encoded message blob.
func SMFField(v []byte) Field {
	return Field{typ: format.TypeSMF, bytes: v}
}

// Type returns the field's wire type code.
func (f Field) Type() format.FieldType {
	return f.typ
}

// IsNull reports whether the field is a typed null.
func (f Field) IsNull() bool {
	return f.typ == format.TypeNull
}

// IsUnknown reports whether the field carries an unrecognized type tag and
// is preserved as raw encoded bytes for forward compatibility.
func (f Field) IsUnknown() bool {
	return f.raw != nil
}

// Raw returns the full encoded bytes of an unknown passthrough field, or
// nil for any recognized type.
func (f Field) Raw() []byte {
	return f.raw
}

// signedVal coerces the field into an int64, covering the integer, bool
// and char families.
func (f Field) signedVal() (int64, error) {
	switch f.typ {
	case format.TypeInt:
		return f.i64, nil
	case format.TypeUint, format.TypeChar:
		if f.u64 > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d overflows signed range", errs.ErrInvalidConversion, f.u64)
		}

		return int64(f.u64), nil
	case format.TypeBool:
		if f.b {
			return 1, nil
		}

		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %s field is not numeric", errs.ErrInvalidConversion, f.typ)
	}
}

// unsignedVal coerces the field into a uint64.
func (f Field) unsignedVal() (uint64, error) {
	switch f.typ {
	case format.TypeInt:
		if f.i64 < 0 {
			return 0, fmt.Errorf("%w: negative value %d", errs.ErrInvalidConversion, f.i64)
		}

		return uint64(f.i64), nil
	case format.TypeUint, format.TypeChar:
		return f.u64, nil
	case format.TypeBool:
		if f.b {
			return 1, nil
		}

		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %s field is not numeric", errs.ErrInvalidConversion, f.typ)
	}
}

// AsBool coerces the field to a boolean. Numeric and char fields map to
// true when non-zero.
func (f Field) AsBool() (bool, error) {
	switch f.typ {
	case format.TypeBool:
		return f.b, nil
	case format.TypeInt:
		return f.i64 != 0, nil
	case format.TypeUint, format.TypeChar:
		return f.u64 != 0, nil
	default:
		return false, fmt.Errorf("%w: %s field as bool", errs.ErrInvalidConversion, f.typ)
	}
}

// AsInt8 coerces the field to an int8, checking range.
func (f Field) AsInt8() (int8, error) {
	v, err := f.signedVal()
	if err != nil {
		return 0, err
	}
	if v < math.MinInt8 || v > math.MaxInt8 {
		return 0, fmt.Errorf("%w: %d outside int8 range", errs.ErrInvalidConversion, v)
	}

	return int8(v), nil
}

// AsInt16 coerces the field to an int16, checking range.
func (f Field) AsInt16() (int16, error) {
	v, err := f.signedVal()
	if err != nil {
		return 0, err
	}
	if v < math.MinInt16 || v > math.MaxInt16 {
		return 0, fmt.Errorf("%w: %d outside int16 range", errs.ErrInvalidConversion, v)
	}

	return int16(v), nil
}

// AsInt32 coerces the field to an int32, checking range.
func (f Field) AsInt32() (int32, error) {
	v, err := f.signedVal()
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d outside int32 range", errs.ErrInvalidConversion, v)
	}

	return int32(v), nil
}

// AsInt64 coerces the field to an int64.
func (f Field) AsInt64() (int64, error) {
	return f.signedVal()
}

// AsUint8 coerces the field to a uint8, checking range.
func (f Field) AsUint8() (uint8, error) {
	v, err := f.unsignedVal()
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint8 {
		return 0, fmt.Errorf("%w: %d outside uint8 range", errs.ErrInvalidConversion, v)
	}

	return uint8(v), nil
}

// AsUint16 coerces the field to a uint16, checking range.
func (f Field) AsUint16() (uint16, error) {
	v, err := f.unsignedVal()
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint16 {
		return 0, fmt.Errorf("%w: %d outside uint16 range", errs.ErrInvalidConversion, v)
	}

	return uint16(v), nil
}

// AsUint32 coerces the field to a uint32, checking range.
func (f Field) AsUint32() (uint32, error) {
	v, err := f.unsignedVal()
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d outside uint32 range", errs.ErrInvalidConversion, v)
	}

	return uint32(v), nil
}

// AsUint64 coerces the field to a uint64.
func (f Field) AsUint64() (uint64, error) {
	return f.unsignedVal()
}

// AsFloat32 returns the value of a 32-bit float field. A 64-bit float is
// not narrowed implicitly.
func (f Field) AsFloat32() (float32, error) {
	if f.typ != format.TypeFloat || f.width != 4 {
		return 0, fmt.Errorf("%w: %s field as float32", errs.ErrInvalidConversion, f.typ)
	}

	return float32(f.f64), nil
}

// AsFloat64 returns the value of a float field, widening float32.
func (f Field) AsFloat64() (float64, error) {
	if f.typ != format.TypeFloat {
		return 0, fmt.Errorf("%w: %s field as float64", errs.ErrInvalidConversion, f.typ)
	}

	return f.f64, nil
}

// AsChar coerces the field to a character. A one-character string converts;
// longer strings do not.
func (f Field) AsChar() (rune, error) {
	switch f.typ {
	case format.TypeChar:
		return rune(uint32(f.u64)), nil
	case format.TypeString:
		if utf8.RuneCountInString(f.str) == 1 {
			r, _ := utf8.DecodeRuneInString(f.str)
			return r, nil
		}

		return 0, fmt.Errorf("%w: string of length %d as char", errs.ErrInvalidConversion, len(f.str))
	default:
		return 0, fmt.Errorf("%w: %s field as char", errs.ErrInvalidConversion, f.typ)
	}
}

// AsWChar coerces the field to a wide character; identical to AsChar.
func (f Field) AsWChar() (rune, error) {
	return f.AsChar()
}

// AsString returns the field's text. A char field renders as a
// one-character string.
func (f Field) AsString() (string, error) {
	switch f.typ {
	case format.TypeString:
		return f.str, nil
	case format.TypeChar:
		return string(rune(uint32(f.u64))), nil
	default:
		return "", fmt.Errorf("%w: %s field as string", errs.ErrInvalidConversion, f.typ)
	}
}

// AsBytes returns the raw bytes of a byte-array or embedded-message field.
func (f Field) AsBytes() ([]byte, error) {
	switch f.typ {
	case format.TypeByteArray, format.TypeSMF:
		return f.bytes, nil
	default:
		return nil, fmt.Errorf("%w: %s field as bytes", errs.ErrInvalidConversion, f.typ)
	}
}

// AsDestination returns the field's destination value.
func (f Field) AsDestination() (Destination, error) {
	if f.typ != format.TypeDestination {
		return Destination{}, fmt.Errorf("%w: %s field as destination", errs.ErrInvalidConversion, f.typ)
	}

	return f.dest, nil
}

// AsMap opens the nested map carried by the field for reading.
func (f Field) AsMap() (*Map, error) {
	if f.typ != format.TypeMap {
		return nil, fmt.Errorf("%w: %s field as map", errs.ErrInvalidConversion, f.typ)
	}

	return DecodeMap(f.bytes)
}

// AsStream opens the nested stream carried by the field for reading.
func (f Field) AsStream() (*Stream, error) {
	if f.typ != format.TypeStream {
		return nil, fmt.Errorf("%w: %s field as stream", errs.ErrInvalidConversion, f.typ)
	}

	return DecodeStream(f.bytes)
}

// String renders the field for dumps and diagnostics.
func (f Field) String() string {
	switch f.typ {
	case format.TypeNull:
		return "null"
	case format.TypeBool:
		return fmt.Sprintf("%t", f.b)
	case format.TypeInt:
		return fmt.Sprintf("%d", f.i64)
	case format.TypeUint:
		return fmt.Sprintf("%d", f.u64)
	case format.TypeFloat:
		return fmt.Sprintf("%g", f.f64)
	case format.TypeChar:
		return fmt.Sprintf("%q", rune(uint32(f.u64)))
	case format.TypeByteArray, format.TypeSMF:
		return fmt.Sprintf("%s(%d bytes)", f.typ, len(f.bytes))
	case format.TypeString:
		return fmt.Sprintf("%q", f.str)
	case format.TypeDestination:
		return f.dest.String()
	case format.TypeMap, format.TypeStream:
		return fmt.Sprintf("%s(%d bytes)", f.typ, len(f.bytes))
	default:
		return fmt.Sprintf("Unknown(tag 0x%x, %d bytes)", uint8(f.typ), len(f.raw))
	}
}
