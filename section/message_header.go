package section

import (
	"fmt"

	"github.com/gosmf/smf/endian"
	"github.com/gosmf/smf/errs"
)

// MessageHeader represents the fixed-size header section at the start of
// an encoded message.
type MessageHeader struct {
	// TotalLength is the byte length of the whole encoded message,
	// header included.
	TotalLength uint32 // byte offset 4-7
	// PayloadOffset is the byte offset to the start of the payload
	// section. The parameter section occupies the bytes between the
	// header and the payload.
	PayloadOffset uint32 // byte offset 8-11

	// Flag is the packed field for options, version, compression and
	// magic number.
	Flag MessageFlag // byte offset 0-3
}

// NewMessageHeader creates a MessageHeader with default flags. The length
// fields are filled in when the encoder finishes.
func NewMessageHeader() *MessageHeader {
	return &MessageHeader{
		Flag:          NewMessageFlag(),
		PayloadOffset: HeaderSize,
	}
}

// Parse parses the header from a byte slice and validates it.
//
// Parameters:
//   - data: Byte slice containing the header (must be at least 12 bytes)
//
// Returns:
//   - error: errs.ErrCorruptEncoding if the header is truncated or any
//     flag or length field is invalid
func (h *MessageHeader) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: %d-byte message header", errs.ErrCorruptEncoding, len(data))
	}

	// The Options word is always little-endian so it can be validated
	// before anything else; the remaining fields are network order.
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.Version = data[2]
	h.Flag.CompressionType = data[3]

	engine := endian.GetNetworkEngine()
	h.TotalLength = engine.Uint32(data[4:8])
	h.PayloadOffset = engine.Uint32(data[8:12])

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	if h.PayloadOffset < HeaderSize || h.PayloadOffset > h.TotalLength {
		return fmt.Errorf("%w: payload offset %d, total length %d",
			errs.ErrCorruptEncoding, h.PayloadOffset, h.TotalLength)
	}

	return nil
}

// Bytes serializes the MessageHeader into a byte slice.
func (h *MessageHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.Version
	b[3] = h.Flag.CompressionType

	engine := endian.GetNetworkEngine()
	engine.PutUint32(b[4:8], h.TotalLength)
	engine.PutUint32(b[8:12], h.PayloadOffset)

	return b
}

// ParseMessageHeader parses a MessageHeader from a byte slice.
func ParseMessageHeader(data []byte) (MessageHeader, error) {
	h := MessageHeader{}
	if err := h.Parse(data); err != nil {
		return MessageHeader{}, err
	}

	return h, nil
}
