package section

import (
	"fmt"

	"github.com/gosmf/smf/errs"
	"github.com/gosmf/smf/format"
)

// MessageFlag represents the packed flag word at the start of the message
// header.
type MessageFlag struct {
	// Options is a packed field for various options.
	// Bits 0-2 are the payload kind (format.PayloadKind).
	// Bit 3 is reserved for future use, must be set to 0.
	// Bits 4-15 are the magic number identifying the message format.
	//
	// The Options field itself is always little-endian on the wire so a
	// decoder can validate it before anything else.
	Options uint16

	// Version is the wire format version.
	Version uint8

	// CompressionType is an enum indicating the compression applied to
	// the payload section.
	CompressionType uint8
}

var validCompressions = map[uint8]struct{}{
	uint8(format.CompressionNone): {},
	uint8(format.CompressionZstd): {},
	uint8(format.CompressionS2):   {},
	uint8(format.CompressionLZ4):  {},
}

// NewMessageFlag creates a MessageFlag with default settings: an empty
// payload and no compression.
func NewMessageFlag() MessageFlag {
	return MessageFlag{
		Options:         MagicMessageV1Opt,
		Version:         FormatVersion,
		CompressionType: uint8(format.CompressionNone),
	}
}

// GetMagicNumber returns the magic number from the Options field.
func (f MessageFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// PayloadKind returns the payload kind from bits 0-2 of the Options field.
func (f MessageFlag) PayloadKind() format.PayloadKind {
	return format.PayloadKind(f.Options & PayloadKindMask)
}

// SetPayloadKind stores the payload kind in bits 0-2 of the Options field.
func (f *MessageFlag) SetPayloadKind(kind format.PayloadKind) {
	f.Options &^= PayloadKindMask
	f.Options |= uint16(kind) & PayloadKindMask
}

// Compression returns the payload compression type.
func (f MessageFlag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// SetCompression stores the payload compression type.
func (f *MessageFlag) SetCompression(c format.CompressionType) {
	f.CompressionType = uint8(c)
}

// Validate checks the magic number, version, payload kind and compression
// type.
func (f MessageFlag) Validate() error {
	if f.GetMagicNumber() != MagicMessageV1Opt {
		return fmt.Errorf("%w: magic number %#04x", errs.ErrCorruptEncoding, f.GetMagicNumber())
	}
	if f.Version != FormatVersion {
		return fmt.Errorf("%w: format version %d", errs.ErrCorruptEncoding, f.Version)
	}
	if f.PayloadKind() > format.PayloadStream {
		return fmt.Errorf("%w: payload kind %d", errs.ErrCorruptEncoding, uint8(f.PayloadKind()))
	}
	if _, ok := validCompressions[f.CompressionType]; !ok {
		return fmt.Errorf("%w: compression type %d", errs.ErrCorruptEncoding, f.CompressionType)
	}

	return nil
}
