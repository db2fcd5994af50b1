package section

import (
	"fmt"

	"github.com/gosmf/smf/endian"
	"github.com/gosmf/smf/errs"
)

// Param is one decoded parameter TLV from the section between the message
// header and the payload.
type Param struct {
	ID    ParamID
	Value []byte
}

// AppendParam appends a parameter TLV: a one-byte ID, a 4-byte value
// length in network order, and the value bytes.
func AppendParam(dst []byte, id ParamID, value []byte) []byte {
	dst = append(dst, byte(id))
	dst = endian.GetNetworkEngine().AppendUint32(dst, uint32(len(value)))
	dst = append(dst, value...)

	return dst
}

// DecodeParam decodes one parameter TLV from the start of data, returning
// the param and the number of bytes consumed. The value slice aliases the
// input.
func DecodeParam(data []byte) (Param, int, error) {
	if len(data) < ParamHeaderSize {
		return Param{}, 0, fmt.Errorf("%w: truncated param header", errs.ErrCorruptEncoding)
	}

	id := ParamID(data[0])
	length := int(endian.GetNetworkEngine().Uint32(data[1:5]))
	if ParamHeaderSize+length > len(data) {
		return Param{}, 0, fmt.Errorf("%w: param %#02x declares %d value bytes, %d remain",
			errs.ErrCorruptEncoding, uint8(id), length, len(data)-ParamHeaderSize)
	}

	return Param{ID: id, Value: data[ParamHeaderSize : ParamHeaderSize+length]}, ParamHeaderSize + length, nil
}
