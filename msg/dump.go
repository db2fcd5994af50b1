package msg

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// DumpMode selects how much of the message Dump renders.
type DumpMode uint8

const (
	// DumpBrief renders the metadata parts and payload sizes only.
	DumpBrief DumpMode = iota
	// DumpFull additionally renders a hex dump of the payload and XML
	// content.
	DumpFull
)

// dumpHexLimit bounds the payload bytes a full dump renders.
const dumpHexLimit = 1024

// Dump renders the message in a human-readable multi-line form for
// diagnostics. A freed message renders as a single invalid-handle line.
func (m *Message) Dump(mode DumpMode) string {
	if err := m.check(); err != nil {
		return "Message <invalid handle>\n"
	}

	var sb strings.Builder
	sb.WriteString("Message:\n")

	if m.has&partDestination != 0 {
		fmt.Fprintf(&sb, "  Destination:      %s\n", m.destination)
	}
	if m.has&partReplyTo != 0 {
		fmt.Fprintf(&sb, "  ReplyTo:          %s\n", m.replyTo)
	}
	if m.has&partSenderID != 0 {
		fmt.Fprintf(&sb, "  SenderID:         %s\n", m.senderID)
	}
	if m.has&partAppMsgType != 0 {
		fmt.Fprintf(&sb, "  AppMessageType:   %s\n", m.appMsgType)
	}
	if m.has&partAppMsgID != 0 {
		fmt.Fprintf(&sb, "  AppMessageID:     %s\n", m.appMsgID)
	}
	if m.has&partCorrelationID != 0 {
		fmt.Fprintf(&sb, "  CorrelationID:    %s\n", m.correlationID)
	}
	if m.has&partSequenceNumber != 0 {
		fmt.Fprintf(&sb, "  SequenceNumber:   %d\n", m.sequenceNumber)
	}
	if m.has&partSendTimestamp != 0 {
		fmt.Fprintf(&sb, "  SendTimestamp:    %d\n", m.sendTimestamp)
	}
	if m.has&partExpiration != 0 {
		fmt.Fprintf(&sb, "  Expiration:       %d\n", m.expiration)
	}
	if m.has&partTimeToLive != 0 {
		fmt.Fprintf(&sb, "  TimeToLive:       %dms\n", m.timeToLive)
	}
	if m.has&partClassOfService != 0 {
		fmt.Fprintf(&sb, "  ClassOfService:   %d\n", m.classOfService)
	}
	fmt.Fprintf(&sb, "  DeliveryMode:     %s\n", m.deliveryMode)
	if m.has&partPriority != 0 {
		fmt.Fprintf(&sb, "  Priority:         %d\n", m.priority)
	}
	if m.has&partReplicationGroupID != 0 {
		fmt.Fprintf(&sb, "  ReplicationGroupID: %s\n", m.rgmid)
	}
	if m.boolFlags != 0 {
		fmt.Fprintf(&sb, "  Flags:            %s\n", strings.Join(m.flagNames(), ","))
	}
	if m.has&partUserData != 0 {
		fmt.Fprintf(&sb, "  UserData:         %d bytes\n", len(m.userData))
	}
	if m.has&partUserProperties != 0 {
		fmt.Fprintf(&sb, "  UserProperties:   %d bytes\n", m.props.Len())
	}
	if m.has&partXMLContent != 0 {
		fmt.Fprintf(&sb, "  XMLContent:       %d bytes\n", len(m.xmlBytes()))
	}
	if m.has&partPayload != 0 {
		fmt.Fprintf(&sb, "  BinaryAttachment: %d bytes (%s)\n", len(m.payloadBytes()), m.payloadKind)
	}

	if mode == DumpFull {
		if m.has&partPayload != 0 {
			sb.WriteString(hexSection("BinaryAttachment", m.payloadBytes()))
		}
		if m.has&partXMLContent != 0 {
			sb.WriteString(hexSection("XMLContent", m.xmlBytes()))
		}
	}

	return sb.String()
}

func hexSection(title string, data []byte) string {
	truncated := false
	if len(data) > dumpHexLimit {
		data = data[:dumpHexLimit]
		truncated = true
	}

	s := fmt.Sprintf("  %s dump:\n%s", title, hex.Dump(data))
	if truncated {
		s += "  ... truncated\n"
	}

	return s
}

func (m *Message) flagNames() []string {
	var names []string
	if m.DMQEligible() {
		names = append(names, "DMQEligible")
	}
	if m.ElidingEligible() {
		names = append(names, "ElidingEligible")
	}
	if m.AckImmediately() {
		names = append(names, "AckImmediately")
	}
	if m.AsReplyMessage() {
		names = append(names, "AsReplyMessage")
	}
	if m.Redelivered() {
		names = append(names, "Redelivered")
	}

	return names
}

var _ zerolog.LogObjectMarshaler = (*Message)(nil)

// MarshalZerologObject renders the message's metadata into a structured
// log event. Payload bytes are summarized by size, never logged.
func (m *Message) MarshalZerologObject(e *zerolog.Event) {
	if err := m.check(); err != nil {
		e.Bool("invalid_handle", true)

		return
	}

	if m.has&partDestination != 0 {
		e.Stringer("destination", m.destination)
	}
	if m.has&partReplyTo != 0 {
		e.Stringer("reply_to", m.replyTo)
	}
	if m.has&partSenderID != 0 {
		e.Str("sender_id", m.senderID)
	}
	if m.has&partAppMsgType != 0 {
		e.Str("app_msg_type", m.appMsgType)
	}
	if m.has&partAppMsgID != 0 {
		e.Str("app_msg_id", m.appMsgID)
	}
	if m.has&partCorrelationID != 0 {
		e.Str("correlation_id", m.correlationID)
	}
	if m.has&partSequenceNumber != 0 {
		e.Uint64("sequence_number", m.sequenceNumber)
	}
	if m.has&partSendTimestamp != 0 {
		e.Int64("send_timestamp", m.sendTimestamp)
	}
	if m.has&partTimeToLive != 0 {
		e.Int64("ttl_ms", m.timeToLive)
	}
	if m.has&partReplicationGroupID != 0 {
		e.Stringer("rgmid", m.rgmid)
	}
	e.Stringer("delivery_mode", m.deliveryMode)
	if m.boolFlags != 0 {
		e.Strs("flags", m.flagNames())
	}
	if m.has&partPayload != 0 {
		e.Int("payload_len", len(m.payloadBytes()))
		e.Stringer("payload_kind", m.payloadKind)
	}
}
