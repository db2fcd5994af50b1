package section

const (
	// Bit masks for the header Options field.
	PayloadKindMask  = 0x0007 // Mask for payload kind (bits 0-2)
	ReservedBitsMask = 0x0008 // Mask for reserved bit (bit 3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicMessageV1Opt is the version 1 magic number for the message
	// wire format, stored in bits 4-15 of the Options field.
	MagicMessageV1Opt = 0xEC10

	// FormatVersion is the current message wire format version.
	FormatVersion = 1
)

// ParamID identifies one parameter TLV in the parameter section between
// the fixed header and the payload.
type ParamID uint8

const (
	ParamDestination        ParamID = 0x01 // encoded destination field
	ParamReplyTo            ParamID = 0x02 // encoded destination field
	ParamSenderID           ParamID = 0x03 // UTF-8 text
	ParamAppMsgType         ParamID = 0x04 // UTF-8 text
	ParamAppMsgID           ParamID = 0x05 // UTF-8 text
	ParamCorrelationID      ParamID = 0x06 // UTF-8 text
	ParamSequenceNumber     ParamID = 0x07 // uint64, network order
	ParamSendTimestamp      ParamID = 0x08 // int64 epoch milliseconds
	ParamExpiration         ParamID = 0x09 // int64 epoch milliseconds
	ParamTimeToLive         ParamID = 0x0A // int64 milliseconds
	ParamClassOfService     ParamID = 0x0B // uint8
	ParamDeliveryMode       ParamID = 0x0C // uint8, format.DeliveryMode
	ParamPriority           ParamID = 0x0D // uint8
	ParamUserData           ParamID = 0x0E // raw bytes, up to MaxUserDataLen
	ParamUserProperties     ParamID = 0x0F // encoded map container
	ParamXMLContent         ParamID = 0x10 // raw bytes
	ParamBoolFlags          ParamID = 0x11 // uint32 bitmask, network order
	ParamReplicationGroupID ParamID = 0x12 // 16 bytes: origin + sequence
)

// offsets and section sizes in the encoded message
const (
	HeaderSize      = 12 // fixed header size in bytes
	ParamHeaderSize = 5  // param ID byte plus 4-byte value length
	MaxUserDataLen  = 36 // largest user-data part the wire format carries
)
