package msg

import (
	"github.com/gosmf/smf/compress"
	"github.com/gosmf/smf/endian"
	"github.com/gosmf/smf/format"
	"github.com/gosmf/smf/internal/options"
	"github.com/gosmf/smf/internal/pool"
	"github.com/gosmf/smf/sdt"
	"github.com/gosmf/smf/section"
)

// encodeConfig carries Encode parameters.
type encodeConfig struct {
	compression format.CompressionType
}

// EncodeOption configures one Encode call.
type EncodeOption = options.Option[*encodeConfig]

// WithCompression selects the codec applied to the payload section. The
// default is format.CompressionNone. The choice is recorded in the header
// so the decoder needs no out-of-band knowledge.
func WithCompression(c format.CompressionType) EncodeOption {
	return options.NoError(func(cfg *encodeConfig) {
		cfg.compression = c
	})
}

// appendParams serializes the message's metadata parts as parameter TLVs.
func (m *Message) appendParams(dst []byte) ([]byte, error) {
	engine := endian.GetNetworkEngine()

	if m.has&partDestination != 0 {
		enc, err := sdt.EncodeField(nil, sdt.DestinationField(m.destination))
		if err != nil {
			return nil, err
		}
		dst = section.AppendParam(dst, section.ParamDestination, enc)
	}
	if m.has&partReplyTo != 0 {
		enc, err := sdt.EncodeField(nil, sdt.DestinationField(m.replyTo))
		if err != nil {
			return nil, err
		}
		dst = section.AppendParam(dst, section.ParamReplyTo, enc)
	}
	if m.has&partSenderID != 0 {
		dst = section.AppendParam(dst, section.ParamSenderID, []byte(m.senderID))
	}
	if m.has&partAppMsgType != 0 {
		dst = section.AppendParam(dst, section.ParamAppMsgType, []byte(m.appMsgType))
	}
	if m.has&partAppMsgID != 0 {
		dst = section.AppendParam(dst, section.ParamAppMsgID, []byte(m.appMsgID))
	}
	if m.has&partCorrelationID != 0 {
		dst = section.AppendParam(dst, section.ParamCorrelationID, []byte(m.correlationID))
	}
	if m.has&partSequenceNumber != 0 {
		dst = section.AppendParam(dst, section.ParamSequenceNumber,
			engine.AppendUint64(nil, m.sequenceNumber))
	}
	if m.has&partSendTimestamp != 0 {
		dst = section.AppendParam(dst, section.ParamSendTimestamp,
			engine.AppendUint64(nil, uint64(m.sendTimestamp)))
	}
	if m.has&partExpiration != 0 {
		dst = section.AppendParam(dst, section.ParamExpiration,
			engine.AppendUint64(nil, uint64(m.expiration)))
	}
	if m.has&partTimeToLive != 0 {
		dst = section.AppendParam(dst, section.ParamTimeToLive,
			engine.AppendUint64(nil, uint64(m.timeToLive)))
	}
	if m.has&partClassOfService != 0 {
		dst = section.AppendParam(dst, section.ParamClassOfService, []byte{m.classOfService})
	}
	if m.has&partDeliveryMode != 0 {
		dst = section.AppendParam(dst, section.ParamDeliveryMode, []byte{uint8(m.deliveryMode)})
	}
	if m.has&partPriority != 0 {
		dst = section.AppendParam(dst, section.ParamPriority, []byte{m.priority})
	}
	if m.has&partUserData != 0 {
		dst = section.AppendParam(dst, section.ParamUserData, m.userData)
	}
	if m.has&partUserProperties != 0 {
		dst = section.AppendParam(dst, section.ParamUserProperties, m.props.Bytes())
	}
	if m.has&partXMLContent != 0 {
		dst = section.AppendParam(dst, section.ParamXMLContent, m.xmlBytes())
	}
	if m.boolFlags != 0 {
		dst = section.AppendParam(dst, section.ParamBoolFlags,
			engine.AppendUint32(nil, m.boolFlags))
	}
	if m.has&partReplicationGroupID != 0 {
		dst = section.AppendParam(dst, section.ParamReplicationGroupID, m.rgmid.bytes())
	}

	// Parameters a lenient decode did not recognize travel through
	// unchanged.
	for _, p := range m.unknownParams {
		dst = section.AppendParam(dst, p.ID, p.Value)
	}

	return dst, nil
}

// Encode serializes the message into its complete self-describing wire
// form: fixed header, parameter section, payload section. The local-only
// parts (correlation tag, receive timestamp) are not included.
//
// Parameters:
//   - opts: Optional encoding options, e.g. WithCompression
//
// Returns:
//   - []byte: The encoded message, owned by the caller
//   - error: errs.ErrInvalidHandle on a freed message, or a codec error
func (m *Message) Encode(opts ...EncodeOption) ([]byte, error) {
	if err := m.check(); err != nil {
		return nil, err
	}

	cfg := &encodeConfig{compression: format.CompressionNone}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	scratch := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(scratch)

	params, err := m.appendParams(scratch.Bytes())
	if err != nil {
		return nil, err
	}
	scratch.B = params

	payload := m.payloadBytes()
	compression := cfg.compression
	if len(payload) > 0 && compression != format.CompressionNone {
		codec, err := compress.GetCodec(compression)
		if err != nil {
			return nil, err
		}
		payload, err = codec.Compress(payload)
		if err != nil {
			return nil, err
		}
	} else {
		compression = format.CompressionNone
	}

	header := section.NewMessageHeader()
	header.Flag.SetPayloadKind(m.payloadKind)
	header.Flag.SetCompression(compression)
	header.PayloadOffset = uint32(section.HeaderSize + len(params))
	header.TotalLength = header.PayloadOffset + uint32(len(payload))

	out := make([]byte, 0, header.TotalLength)
	out = append(out, header.Bytes()...)
	out = append(out, params...)
	out = append(out, payload...)

	return out, nil
}
