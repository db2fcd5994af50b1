package msg

import (
	"fmt"

	"github.com/gosmf/smf/alloc"
	"github.com/gosmf/smf/compress"
	"github.com/gosmf/smf/endian"
	"github.com/gosmf/smf/errs"
	"github.com/gosmf/smf/format"
	"github.com/gosmf/smf/internal/options"
	"github.com/gosmf/smf/sdt"
	"github.com/gosmf/smf/section"
)

// decodeConfig carries Decode parameters.
type decodeConfig struct {
	pool   *alloc.Pool
	strict bool
}

// DecodeOption configures one Decode call.
type DecodeOption = options.Option[*decodeConfig]

// WithStrictDecode makes unknown parameter IDs a decode error instead of
// being preserved for re-encoding.
func WithStrictDecode() DecodeOption {
	return options.NoError(func(cfg *decodeConfig) {
		cfg.strict = true
	})
}

// WithDecodePool selects the allocator backing the decoded message's
// copied parts. Defaults to alloc.Default().
func WithDecodePool(p *alloc.Pool) DecodeOption {
	return options.NoError(func(cfg *decodeConfig) {
		cfg.pool = p
	})
}

func expectLen(p section.Param, want int) error {
	if len(p.Value) != want {
		return fmt.Errorf("%w: param %#02x value %d bytes, want %d",
			errs.ErrCorruptEncoding, uint8(p.ID), len(p.Value), want)
	}

	return nil
}

func decodeDestinationParam(p section.Param) (sdt.Destination, error) {
	f, consumed, err := sdt.DecodeField(p.Value)
	if err != nil {
		return sdt.Destination{}, err
	}
	if consumed != len(p.Value) {
		return sdt.Destination{}, fmt.Errorf("%w: trailing bytes after destination param",
			errs.ErrCorruptEncoding)
	}

	return f.AsDestination()
}

// applyParam installs one decoded parameter into the message.
func (m *Message) applyParam(p section.Param, strict bool) error {
	engine := endian.GetNetworkEngine()

	switch p.ID {
	case section.ParamDestination:
		d, err := decodeDestinationParam(p)
		if err != nil {
			return err
		}

		return m.SetDestination(d)
	case section.ParamReplyTo:
		d, err := decodeDestinationParam(p)
		if err != nil {
			return err
		}

		return m.SetReplyTo(d)
	case section.ParamSenderID:
		return m.SetSenderID(string(p.Value))
	case section.ParamAppMsgType:
		return m.SetApplicationMessageType(string(p.Value))
	case section.ParamAppMsgID:
		return m.SetApplicationMessageID(string(p.Value))
	case section.ParamCorrelationID:
		return m.SetCorrelationID(string(p.Value))
	case section.ParamSequenceNumber:
		if err := expectLen(p, 8); err != nil {
			return err
		}

		return m.SetSequenceNumber(engine.Uint64(p.Value))
	case section.ParamSendTimestamp:
		if err := expectLen(p, 8); err != nil {
			return err
		}

		return m.SetSendTimestamp(int64(engine.Uint64(p.Value)))
	case section.ParamExpiration:
		if err := expectLen(p, 8); err != nil {
			return err
		}

		return m.SetExpiration(int64(engine.Uint64(p.Value)))
	case section.ParamTimeToLive:
		if err := expectLen(p, 8); err != nil {
			return err
		}

		return m.SetTimeToLive(int64(engine.Uint64(p.Value)))
	case section.ParamClassOfService:
		if err := expectLen(p, 1); err != nil {
			return err
		}

		return m.SetClassOfService(p.Value[0])
	case section.ParamDeliveryMode:
		if err := expectLen(p, 1); err != nil {
			return err
		}

		return m.SetDeliveryMode(format.DeliveryMode(p.Value[0]))
	case section.ParamPriority:
		if err := expectLen(p, 1); err != nil {
			return err
		}

		return m.SetPriority(p.Value[0])
	case section.ParamUserData:
		return m.SetUserData(p.Value)
	case section.ParamUserProperties:
		b, err := m.copyToBlock(p.Value)
		if err != nil {
			return err
		}
		// A repeated parameter replaces the earlier one; the prior block
		// goes back to the pool.
		m.dropProps()
		m.props = b
		m.has |= partUserProperties

		return nil
	case section.ParamXMLContent:
		return m.SetXMLContent(p.Value)
	case section.ParamBoolFlags:
		if err := expectLen(p, 4); err != nil {
			return err
		}
		m.boolFlags = engine.Uint32(p.Value)

		return nil
	case section.ParamReplicationGroupID:
		id, err := replicationGroupIDFromBytes(p.Value)
		if err != nil {
			return err
		}

		return m.SetReplicationGroupID(id)
	default:
		if strict {
			return fmt.Errorf("%w: unknown param %#02x", errs.ErrCorruptEncoding, uint8(p.ID))
		}

		// Preserve value bytes; the input slice is not ours to keep.
		m.unknownParams = append(m.unknownParams, section.Param{
			ID:    p.ID,
			Value: append([]byte(nil), p.Value...),
		})

		return nil
	}
}

// Decode parses a complete encoded message. All parts are copied out of
// data, so the input may be reused immediately.
//
// Parameters:
//   - data: The complete encoded message
//   - opts: Optional decoding options, e.g. WithStrictDecode
//
// Returns:
//   - *Message: The decoded message; release it with Free
//   - error: errs.ErrCorruptEncoding on any structural inconsistency
func Decode(data []byte, opts ...DecodeOption) (*Message, error) {
	cfg := &decodeConfig{pool: alloc.Default()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	header, err := section.ParseMessageHeader(data)
	if err != nil {
		return nil, err
	}
	if int(header.TotalLength) != len(data) {
		return nil, fmt.Errorf("%w: total length %d, input %d bytes",
			errs.ErrCorruptEncoding, header.TotalLength, len(data))
	}

	m, err := NewMessage(WithPool(cfg.pool))
	if err != nil {
		return nil, err
	}

	fail := func(err error) (*Message, error) {
		_ = m.Free()
		return nil, err
	}

	// Parameter section between header and payload.
	off := section.HeaderSize
	for off < int(header.PayloadOffset) {
		p, consumed, err := section.DecodeParam(data[off:header.PayloadOffset])
		if err != nil {
			return fail(err)
		}
		off += consumed

		if err := m.applyParam(p, cfg.strict); err != nil {
			return fail(err)
		}
	}

	// Payload section, decompressed per the header flag.
	payload := data[header.PayloadOffset:header.TotalLength]
	kind := header.Flag.PayloadKind()
	if len(payload) > 0 || kind != format.PayloadNone {
		codec, err := compress.GetCodec(header.Flag.Compression())
		if err != nil {
			return fail(fmt.Errorf("%w: %s", errs.ErrCorruptEncoding, err))
		}
		payload, err = codec.Decompress(payload)
		if err != nil {
			return fail(fmt.Errorf("%w: %s", errs.ErrCorruptEncoding, err))
		}

		if err := m.setPayloadCopy(payload, kind); err != nil {
			return fail(err)
		}
	}

	return m, nil
}
