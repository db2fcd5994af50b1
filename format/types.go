package format

type (
	// FieldType is the 4-bit wire type code carried in the high nibble of
	// every encoded field's tag byte.
	FieldType uint8

	// DestinationKind is the subtype byte of an encoded destination field.
	DestinationKind uint8

	// DeliveryMode selects how the broker handles a published message.
	DeliveryMode uint8

	// CompressionType selects the optional codec applied to the payload
	// section of an encoded message.
	CompressionType uint8

	// PayloadKind records what the binary attachment of a message holds.
	PayloadKind uint8
)

const (
	TypeNull        FieldType = 0x0 // TypeNull is a typed null with no value bytes.
	TypeBool        FieldType = 0x1 // TypeBool is a one-byte boolean.
	TypeInt         FieldType = 0x2 // TypeInt is a signed integer, width 1/2/4/8.
	TypeUint        FieldType = 0x3 // TypeUint is an unsigned integer, width 1/2/4/8.
	TypeFloat       FieldType = 0x4 // TypeFloat is an IEEE 754 value, width 4/8.
	TypeChar        FieldType = 0x5 // TypeChar is a two-byte character code point.
	TypeByteArray   FieldType = 0x6 // TypeByteArray is an opaque byte sequence.
	TypeString      FieldType = 0x7 // TypeString is UTF-8 text with a NUL terminator.
	TypeDestination FieldType = 0x8 // TypeDestination is a subtype byte plus a NUL-terminated name.
	TypeSMF         FieldType = 0x9 // TypeSMF is an embedded encoded message.
	TypeMap         FieldType = 0xA // TypeMap is a nested named-field container.
	TypeStream      FieldType = 0xB // TypeStream is a nested positional container.

	DestTopic     DestinationKind = 0x0
	DestQueue     DestinationKind = 0x1
	DestTempTopic DestinationKind = 0x2
	DestTempQueue DestinationKind = 0x3

	DeliveryDirect        DeliveryMode = 0x0
	DeliveryPersistent    DeliveryMode = 0x1
	DeliveryNonPersistent DeliveryMode = 0x2

	CompressionNone CompressionType = 0x1 // CompressionNone leaves the payload section as-is.
	CompressionZstd CompressionType = 0x2 // CompressionZstd applies Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 applies S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 applies LZ4 block compression.

	PayloadNone   PayloadKind = 0x0
	PayloadBytes  PayloadKind = 0x1
	PayloadString PayloadKind = 0x2
	PayloadMap    PayloadKind = 0x3
	PayloadStream PayloadKind = 0x4
)

func (t FieldType) String() string {
	switch t {
	case TypeNull:
		return "Null"
	case TypeBool:
		return "Bool"
	case TypeInt:
		return "Int"
	case TypeUint:
		return "Uint"
	case TypeFloat:
		return "Float"
	case TypeChar:
		return "Char"
	case TypeByteArray:
		return "ByteArray"
	case TypeString:
		return "String"
	case TypeDestination:
		return "Destination"
	case TypeSMF:
		return "SMF"
	case TypeMap:
		return "Map"
	case TypeStream:
		return "Stream"
	default:
		return "Unknown"
	}
}

func (k DestinationKind) String() string {
	switch k {
	case DestTopic:
		return "Topic"
	case DestQueue:
		return "Queue"
	case DestTempTopic:
		return "TempTopic"
	case DestTempQueue:
		return "TempQueue"
	default:
		return "Unknown"
	}
}

func (m DeliveryMode) String() string {
	switch m {
	case DeliveryDirect:
		return "Direct"
	case DeliveryPersistent:
		return "Persistent"
	case DeliveryNonPersistent:
		return "NonPersistent"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (p PayloadKind) String() string {
	switch p {
	case PayloadNone:
		return "None"
	case PayloadBytes:
		return "Bytes"
	case PayloadString:
		return "String"
	case PayloadMap:
		return "Map"
	case PayloadStream:
		return "Stream"
	default:
		return "Unknown"
	}
}
