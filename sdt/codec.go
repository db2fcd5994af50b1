package sdt

import (
	"fmt"
	"math"

	"github.com/gosmf/smf/endian"
	"github.com/gosmf/smf/errs"
	"github.com/gosmf/smf/format"
)

// containerHeaderSize is the fixed size of a container's own header: a map
// or stream tag with a 4-byte length prefix.
const containerHeaderSize = 5

var netEngine = endian.GetNetworkEngine()

// lengthPrefixWidth returns the smallest length-prefix width (1-4 bytes)
// whose declared length can cover tag + prefix + valueLen, or 0 when the
// value is too large to encode.
func lengthPrefixWidth(valueLen int) int {
	for l := 1; l <= 4; l++ {
		total := 1 + l + valueLen
		if uint64(total) <= uint64(1)<<(8*l)-1 {
			return l
		}
	}

	return 0
}

// valueSize returns the number of value bytes the field encodes to,
// excluding tag and length prefix.
func (f Field) valueSize() int {
	switch f.typ {
	case format.TypeNull:
		return 0
	case format.TypeBool:
		return 1
	case format.TypeInt, format.TypeUint, format.TypeFloat, format.TypeChar:
		return int(f.width)
	case format.TypeByteArray, format.TypeSMF:
		return len(f.bytes)
	case format.TypeString:
		return len(f.str) + 1 // NUL terminator
	case format.TypeDestination:
		return 1 + len(f.dest.Name) + 1 // subtype byte, name, NUL terminator
	case format.TypeMap, format.TypeStream:
		// A nested container embeds its complete encoding, header included.
		return len(f.bytes)
	default:
		return len(f.raw)
	}
}

// EncodedSize returns the total number of bytes the field occupies on the
// wire, tag and length prefix included. Nested containers and unknown
// passthrough fields report the size of their embedded encoding.
func (f Field) EncodedSize() int {
	switch f.typ {
	case format.TypeMap, format.TypeStream:
		return len(f.bytes)
	}
	if f.raw != nil {
		return len(f.raw)
	}

	vs := f.valueSize()

	return 1 + lengthPrefixWidth(vs) + vs
}

// encodedNameSize returns the on-wire size of a map entry's name, which is
// encoded exactly like a string field.
func encodedNameSize(name string) int {
	vs := len(name) + 1

	return 1 + lengthPrefixWidth(vs) + vs
}

// appendHeader appends a tag byte and length prefix declaring the given
// total field length.
func appendHeader(dst []byte, typ format.FieldType, prefixWidth int, total int) []byte {
	dst = append(dst, uint8(typ)<<4|uint8(prefixWidth))
	for i := prefixWidth - 1; i >= 0; i-- {
		dst = append(dst, byte(total>>(8*i)))
	}

	return dst
}

// appendName appends the string-style encoding of a map entry name.
func appendName(dst []byte, name string) ([]byte, error) {
	vs := len(name) + 1
	l := lengthPrefixWidth(vs)
	if l == 0 {
		return dst, fmt.Errorf("%w: field name of %d bytes", errs.ErrValueOutOfRange, len(name))
	}

	dst = appendHeader(dst, format.TypeString, l, 1+l+vs)
	dst = append(dst, name...)
	dst = append(dst, 0)

	return dst, nil
}

// EncodeField appends the field's wire encoding to dst and returns the
// extended slice. Encoding is total for every representable value; the
// only failures are values that exceed the format's size limits, such as
// a char above U+FFFF or a byte array longer than the widest length
// prefix can declare.
func EncodeField(dst []byte, f Field) ([]byte, error) {
	switch f.typ {
	case format.TypeMap, format.TypeStream:
		if f.bytes == nil {
			return dst, fmt.Errorf("%w: empty nested container field", errs.ErrInvalidHandle)
		}

		return append(dst, f.bytes...), nil
	}

	if f.raw != nil {
		return append(dst, f.raw...), nil
	}

	if f.typ == format.TypeChar && f.u64 > 0xFFFF {
		return dst, fmt.Errorf("%w: char code point %#x", errs.ErrValueOutOfRange, f.u64)
	}

	vs := f.valueSize()
	l := lengthPrefixWidth(vs)
	if l == 0 {
		return dst, fmt.Errorf("%w: field value of %d bytes", errs.ErrValueOutOfRange, vs)
	}

	dst = appendHeader(dst, f.typ, l, 1+l+vs)

	switch f.typ {
	case format.TypeNull:
		// No value bytes.
	case format.TypeBool:
		if f.b {
			dst = append(dst, 1)
		} else {
			dst = append(dst, 0)
		}
	case format.TypeInt:
		dst = appendFixedUint(dst, uint64(f.i64), int(f.width))
	case format.TypeUint, format.TypeChar:
		dst = appendFixedUint(dst, f.u64, int(f.width))
	case format.TypeFloat:
		if f.width == 4 {
			dst = netEngine.AppendUint32(dst, math.Float32bits(float32(f.f64)))
		} else {
			dst = netEngine.AppendUint64(dst, math.Float64bits(f.f64))
		}
	case format.TypeByteArray, format.TypeSMF:
		dst = append(dst, f.bytes...)
	case format.TypeString:
		dst = append(dst, f.str...)
		dst = append(dst, 0)
	case format.TypeDestination:
		dst = append(dst, byte(f.dest.Kind))
		dst = append(dst, f.dest.Name...)
		dst = append(dst, 0)
	}

	return dst, nil
}

// appendFixedUint appends the low width bytes of v in network byte order.
func appendFixedUint(dst []byte, v uint64, width int) []byte {
	for i := width - 1; i >= 0; i-- {
		dst = append(dst, byte(v>>(8*i)))
	}

	return dst
}

// decodeFixedUint reads a network-byte-order unsigned value of the given
// width.
func decodeFixedUint(data []byte) uint64 {
	var v uint64
	for _, b := range data {
		v = v<<8 | uint64(b)
	}

	return v
}

// decodeHeader parses a field's tag byte and length prefix, validating the
// declared length against the remaining input.
func decodeHeader(data []byte) (typ format.FieldType, total int, prefixWidth int, err error) {
	if len(data) < 2 {
		return 0, 0, 0, fmt.Errorf("%w: truncated field header", errs.ErrCorruptEncoding)
	}

	typ = format.FieldType(data[0] >> 4)
	prefixWidth = int(data[0] & 0x0F)
	if prefixWidth < 1 || prefixWidth > 4 {
		return 0, 0, 0, fmt.Errorf("%w: length prefix width %d", errs.ErrCorruptEncoding, prefixWidth)
	}
	if len(data) < 1+prefixWidth {
		return 0, 0, 0, fmt.Errorf("%w: truncated length prefix", errs.ErrCorruptEncoding)
	}

	total = int(decodeFixedUint(data[1 : 1+prefixWidth]))
	if total < 1+prefixWidth || total > len(data) {
		return 0, 0, 0, fmt.Errorf("%w: declared length %d exceeds %d remaining bytes",
			errs.ErrCorruptEncoding, total, len(data))
	}

	return typ, total, prefixWidth, nil
}

// DecodeField decodes one field from the start of data, returning the
// field and the number of bytes consumed.
//
// Unrecognized type tags decode into an Unknown passthrough field that
// preserves the raw encoding, so forward-compatible callers can skip or
// re-emit fields they do not understand. Inconsistent length prefixes
// report errs.ErrCorruptEncoding.
func DecodeField(data []byte) (Field, int, error) {
	typ, total, prefixWidth, err := decodeHeader(data)
	if err != nil {
		return Field{}, 0, err
	}

	value := data[1+prefixWidth : total]
	f := Field{typ: typ}

	switch typ {
	case format.TypeNull:
		if len(value) != 0 {
			return Field{}, 0, fmt.Errorf("%w: null field with %d value bytes", errs.ErrCorruptEncoding, len(value))
		}
	case format.TypeBool:
		if len(value) != 1 {
			return Field{}, 0, fmt.Errorf("%w: bool field with %d value bytes", errs.ErrCorruptEncoding, len(value))
		}
		f.width = 1
		f.b = value[0] != 0
	case format.TypeInt:
		if !validIntWidth(len(value)) {
			return Field{}, 0, fmt.Errorf("%w: int field with %d value bytes", errs.ErrCorruptEncoding, len(value))
		}
		f.width = uint8(len(value))
		f.i64 = signExtend(decodeFixedUint(value), len(value))
	case format.TypeUint:
		if !validIntWidth(len(value)) {
			return Field{}, 0, fmt.Errorf("%w: uint field with %d value bytes", errs.ErrCorruptEncoding, len(value))
		}
		f.width = uint8(len(value))
		f.u64 = decodeFixedUint(value)
	case format.TypeChar:
		if len(value) != 2 {
			return Field{}, 0, fmt.Errorf("%w: char field with %d value bytes", errs.ErrCorruptEncoding, len(value))
		}
		f.width = 2
		f.u64 = decodeFixedUint(value)
	case format.TypeFloat:
		switch len(value) {
		case 4:
			f.width = 4
			f.f64 = float64(math.Float32frombits(uint32(decodeFixedUint(value))))
		case 8:
			f.width = 8
			f.f64 = math.Float64frombits(decodeFixedUint(value))
		default:
			return Field{}, 0, fmt.Errorf("%w: float field with %d value bytes", errs.ErrCorruptEncoding, len(value))
		}
	case format.TypeByteArray, format.TypeSMF:
		f.bytes = value
	case format.TypeString:
		if len(value) < 1 {
			return Field{}, 0, fmt.Errorf("%w: string field without terminator", errs.ErrCorruptEncoding)
		}
		f.str = string(value[:len(value)-1])
	case format.TypeDestination:
		if len(value) < 2 {
			return Field{}, 0, fmt.Errorf("%w: destination field with %d value bytes", errs.ErrCorruptEncoding, len(value))
		}
		f.dest = Destination{
			Kind: format.DestinationKind(value[0]),
			Name: string(value[1 : len(value)-1]),
		}
	case format.TypeMap, format.TypeStream:
		// Keep the complete encoding so the container can be reopened.
		f.bytes = data[:total]
	default:
		f.raw = data[:total]
	}

	return f, total, nil
}

func validIntWidth(n int) bool {
	return n == 1 || n == 2 || n == 4 || n == 8
}

func signExtend(v uint64, width int) int64 {
	shift := 64 - 8*width

	return int64(v<<shift) >> shift
}

// decodeName decodes a map entry's name, which precedes its field and uses
// the string field encoding.
func decodeName(data []byte) (string, int, error) {
	f, n, err := DecodeField(data)
	if err != nil {
		return "", 0, err
	}
	if f.typ != format.TypeString {
		return "", 0, fmt.Errorf("%w: map entry name has type %s", errs.ErrCorruptEncoding, f.typ)
	}

	return f.str, n, nil
}
