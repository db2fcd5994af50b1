package msg

import (
	"fmt"

	"github.com/gosmf/smf/alloc"
	"github.com/gosmf/smf/errs"
	"github.com/gosmf/smf/format"
	"github.com/gosmf/smf/internal/hash"
	"github.com/gosmf/smf/internal/options"
	"github.com/gosmf/smf/sdt"
	"github.com/gosmf/smf/section"
)

// part bits for the has mask. A part is present when its bit is set.
const (
	partDestination = 1 << iota
	partReplyTo
	partSenderID
	partAppMsgType
	partAppMsgID
	partCorrelationID
	partSequenceNumber
	partSendTimestamp
	partRcvTimestamp
	partExpiration
	partTimeToLive
	partClassOfService
	partDeliveryMode
	partPriority
	partUserData
	partUserProperties
	partXMLContent
	partPayload
	partReplicationGroupID
	partCorrelationTag
)

// boolean flag bits, as carried in the flags parameter on the wire.
const (
	flagDMQEligible = 1 << iota
	flagElidingEligible
	flagAckImmediately
	flagAsReplyMessage
	flagRedelivered
)

// invalidator is the common surface of the container handles a message
// tracks for implicit invalidation.
type invalidator interface {
	Invalidate()
}

// config carries Message construction parameters.
type config struct {
	pool *alloc.Pool
}

// Option configures a Message at construction time.
type Option = options.Option[*config]

// WithPool selects the data block allocator backing the message's copied
// parts. Messages default to alloc.Default().
func WithPool(p *alloc.Pool) Option {
	return options.NoError(func(c *config) {
		c.pool = p
	})
}

// Message is a mutable message buffer. The zero value is not usable; use
// NewMessage or Decode.
//
// A Message is not safe for concurrent use.
type Message struct {
	pool  *alloc.Pool
	valid bool

	has uint64

	payloadKind format.PayloadKind
	payload     *alloc.Block // copied payload (nil when by-ref)
	payloadRef  []byte       // referenced payload (nil when copied)

	xml    *alloc.Block
	xmlRef []byte

	props *alloc.Block // encoded user-property map

	userData       []byte
	correlationTag []byte // local only, never transmitted

	destination sdt.Destination
	replyTo     sdt.Destination

	senderID      string
	appMsgType    string
	appMsgID      string
	correlationID string

	sequenceNumber uint64
	sendTimestamp  int64 // epoch milliseconds
	rcvTimestamp   int64 // epoch milliseconds, local only
	expiration     int64 // epoch milliseconds
	timeToLive     int64 // milliseconds

	classOfService uint8
	priority       uint8
	deliveryMode   format.DeliveryMode

	boolFlags uint32

	rgmid ReplicationGroupID

	// unknown parameters preserved by a lenient decode, re-emitted on
	// encode in their original order.
	unknownParams []section.Param

	// container handles opened against a part, invalidated when that
	// part is replaced or the message goes away.
	payloadContainers []invalidator
	propsContainers   []invalidator
}

// NewMessage creates an empty message.
func NewMessage(opts ...Option) (*Message, error) {
	cfg := &config{pool: alloc.Default()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	m := &Message{
		pool:         cfg.pool,
		valid:        true,
		deliveryMode: format.DeliveryDirect,
	}
	cfg.pool.NoteMessage(true)

	return m, nil
}

func (m *Message) check() error {
	if m == nil || !m.valid {
		return fmt.Errorf("%w: message is freed", errs.ErrInvalidHandle)
	}

	return nil
}

// Pool returns the allocator backing the message's copied parts.
func (m *Message) Pool() *alloc.Pool {
	return m.pool
}

// copyToBlock copies data into a fresh data block from the message pool.
func (m *Message) copyToBlock(data []byte) (*alloc.Block, error) {
	b, err := m.pool.Get(len(data))
	if err != nil {
		return nil, err
	}
	b.Append(data)

	return b, nil
}

func invalidateAll(handles []invalidator) {
	for _, h := range handles {
		h.Invalidate()
	}
}

// =========================================================================
// Binary attachment (payload)
// =========================================================================

// dropPayload invalidates dependent containers and releases the payload's
// backing storage.
func (m *Message) dropPayload() {
	invalidateAll(m.payloadContainers)
	m.payloadContainers = nil

	if m.payload != nil {
		m.pool.Put(m.payload)
		m.payload = nil
	}
	m.payloadRef = nil
	m.payloadKind = format.PayloadNone
	m.has &^= partPayload
}

func (m *Message) setPayloadCopy(data []byte, kind format.PayloadKind) error {
	b, err := m.copyToBlock(data)
	if err != nil {
		return err
	}

	m.dropPayload()
	m.payload = b
	m.payloadKind = kind
	m.has |= partPayload

	return nil
}

// SetBinaryAttachment installs data as the payload, copying it into a data
// block owned by the message. Replacing the payload invalidates any
// container previously opened against it.
func (m *Message) SetBinaryAttachment(data []byte) error {
	if err := m.check(); err != nil {
		return err
	}

	return m.setPayloadCopy(data, format.PayloadBytes)
}

// SetBinaryAttachmentRef installs data as the payload by reference. The
// message does not copy the bytes; the caller must keep them alive and
// unchanged until the message is encoded, reset or freed.
func (m *Message) SetBinaryAttachmentRef(data []byte) error {
	if err := m.check(); err != nil {
		return err
	}

	m.dropPayload()
	m.payloadRef = data
	m.payloadKind = format.PayloadBytes
	m.has |= partPayload

	return nil
}

// SetBinaryAttachmentString installs text as the payload, copied.
func (m *Message) SetBinaryAttachmentString(s string) error {
	if err := m.check(); err != nil {
		return err
	}

	return m.setPayloadCopy([]byte(s), format.PayloadString)
}

// payloadBytes returns the payload regardless of how it was installed.
func (m *Message) payloadBytes() []byte {
	if m.payload != nil {
		return m.payload.Bytes()
	}

	return m.payloadRef
}

// PayloadKind reports what the binary attachment holds. A freed handle
// reports format.PayloadNone.
func (m *Message) PayloadKind() format.PayloadKind {
	if m.check() != nil {
		return format.PayloadNone
	}

	return m.payloadKind
}

// BinaryAttachment returns the payload bytes, whatever their kind, or
// errs.ErrNotFound when no payload is set. The returned slice must not be
// modified.
func (m *Message) BinaryAttachment() ([]byte, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	if m.has&partPayload == 0 {
		return nil, fmt.Errorf("%w: no binary attachment", errs.ErrNotFound)
	}

	return m.payloadBytes(), nil
}

// BinaryAttachmentString returns a text payload.
func (m *Message) BinaryAttachmentString() (string, error) {
	if err := m.check(); err != nil {
		return "", err
	}
	if m.has&partPayload == 0 {
		return "", fmt.Errorf("%w: no binary attachment", errs.ErrNotFound)
	}
	if m.payloadKind != format.PayloadString {
		return "", fmt.Errorf("%w: %s payload as string", errs.ErrInvalidConversion, m.payloadKind)
	}

	return string(m.payloadBytes()), nil
}

// ClearBinaryAttachment removes the payload, invalidating any container
// opened against it.
func (m *Message) ClearBinaryAttachment() error {
	if err := m.check(); err != nil {
		return err
	}

	m.dropPayload()

	return nil
}

// CreateBinaryAttachmentMap opens a writable map whose final encoding
// becomes the message payload when the map is closed. The previous
// payload, if any, is replaced at close time.
func (m *Message) CreateBinaryAttachmentMap() (*sdt.Map, error) {
	if err := m.check(); err != nil {
		return nil, err
	}

	mp, err := sdt.NewMap(sdt.WithPool(m.pool), sdt.WithCloseSink(func(enc []byte) error {
		return m.setPayloadCopy(enc, format.PayloadMap)
	}))
	if err != nil {
		return nil, err
	}
	m.payloadContainers = append(m.payloadContainers, mp)

	return mp, nil
}

// CreateBinaryAttachmentStream opens a writable stream whose final
// encoding becomes the message payload when the stream is closed.
func (m *Message) CreateBinaryAttachmentStream() (*sdt.Stream, error) {
	if err := m.check(); err != nil {
		return nil, err
	}

	st, err := sdt.NewStream(sdt.WithPool(m.pool), sdt.WithCloseSink(func(enc []byte) error {
		return m.setPayloadCopy(enc, format.PayloadStream)
	}))
	if err != nil {
		return nil, err
	}
	m.payloadContainers = append(m.payloadContainers, st)

	return st, nil
}

// BinaryAttachmentMap opens the payload as a readable map. The handle is
// invalidated when the payload is replaced or the message goes away.
//
// Returns errs.ErrNoStructuredData when the payload does not hold a map.
func (m *Message) BinaryAttachmentMap() (*sdt.Map, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	if m.payloadKind != format.PayloadMap {
		return nil, fmt.Errorf("%w: payload holds %s", errs.ErrNoStructuredData, m.payloadKind)
	}

	mp, err := sdt.DecodeMap(m.payloadBytes())
	if err != nil {
		return nil, err
	}
	m.payloadContainers = append(m.payloadContainers, mp)

	return mp, nil
}

// BinaryAttachmentStream opens the payload as a readable stream.
func (m *Message) BinaryAttachmentStream() (*sdt.Stream, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	if m.payloadKind != format.PayloadStream {
		return nil, fmt.Errorf("%w: payload holds %s", errs.ErrNoStructuredData, m.payloadKind)
	}

	st, err := sdt.DecodeStream(m.payloadBytes())
	if err != nil {
		return nil, err
	}
	m.payloadContainers = append(m.payloadContainers, st)

	return st, nil
}

// =========================================================================
// XML content
// =========================================================================

func (m *Message) dropXML() {
	if m.xml != nil {
		m.pool.Put(m.xml)
		m.xml = nil
	}
	m.xmlRef = nil
	m.has &^= partXMLContent
}

// SetXMLContent installs the XML content part, copied.
func (m *Message) SetXMLContent(data []byte) error {
	if err := m.check(); err != nil {
		return err
	}

	b, err := m.copyToBlock(data)
	if err != nil {
		return err
	}

	m.dropXML()
	m.xml = b
	m.has |= partXMLContent

	return nil
}

// SetXMLContentRef installs the XML content part by reference.
func (m *Message) SetXMLContentRef(data []byte) error {
	if err := m.check(); err != nil {
		return err
	}

	m.dropXML()
	m.xmlRef = data
	m.has |= partXMLContent

	return nil
}

func (m *Message) xmlBytes() []byte {
	if m.xml != nil {
		return m.xml.Bytes()
	}

	return m.xmlRef
}

// XMLContent returns the XML content part, or errs.ErrNotFound.
func (m *Message) XMLContent() ([]byte, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	if m.has&partXMLContent == 0 {
		return nil, fmt.Errorf("%w: no XML content", errs.ErrNotFound)
	}

	return m.xmlBytes(), nil
}

// ClearXMLContent removes the XML content part.
func (m *Message) ClearXMLContent() error {
	if err := m.check(); err != nil {
		return err
	}

	m.dropXML()

	return nil
}

// =========================================================================
// User properties
// =========================================================================

func (m *Message) dropProps() {
	invalidateAll(m.propsContainers)
	m.propsContainers = nil

	if m.props != nil {
		m.pool.Put(m.props)
		m.props = nil
	}
	m.has &^= partUserProperties
}

// CreateUserPropertyMap opens a writable map whose final encoding becomes
// the message's user-property part when the map is closed.
func (m *Message) CreateUserPropertyMap() (*sdt.Map, error) {
	if err := m.check(); err != nil {
		return nil, err
	}

	mp, err := sdt.NewMap(sdt.WithPool(m.pool), sdt.WithCloseSink(func(enc []byte) error {
		b, err := m.copyToBlock(enc)
		if err != nil {
			return err
		}

		m.dropProps()
		m.props = b
		m.has |= partUserProperties

		return nil
	}))
	if err != nil {
		return nil, err
	}
	m.propsContainers = append(m.propsContainers, mp)

	return mp, nil
}

// UserPropertyMap opens the user-property part as a readable map, or
// reports errs.ErrNotFound when the message has none.
func (m *Message) UserPropertyMap() (*sdt.Map, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	if m.has&partUserProperties == 0 {
		return nil, fmt.Errorf("%w: no user properties", errs.ErrNotFound)
	}

	mp, err := sdt.DecodeMap(m.props.Bytes())
	if err != nil {
		return nil, err
	}
	m.propsContainers = append(m.propsContainers, mp)

	return mp, nil
}

// ClearUserProperties removes the user-property part, invalidating any
// map handle opened against it.
func (m *Message) ClearUserProperties() error {
	if err := m.check(); err != nil {
		return err
	}

	m.dropProps()

	return nil
}

// =========================================================================
// User data and correlation tag
// =========================================================================

// SetUserData installs the small out-of-band user-data part, copied.
// The wire format carries at most section.MaxUserDataLen bytes.
func (m *Message) SetUserData(data []byte) error {
	if err := m.check(); err != nil {
		return err
	}
	if len(data) > section.MaxUserDataLen {
		return fmt.Errorf("%w: user data %d bytes, limit %d",
			errs.ErrValueOutOfRange, len(data), section.MaxUserDataLen)
	}

	m.userData = append([]byte(nil), data...)
	m.has |= partUserData

	return nil
}

// UserData returns the user-data part, or errs.ErrNotFound.
func (m *Message) UserData() ([]byte, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	if m.has&partUserData == 0 {
		return nil, fmt.Errorf("%w: no user data", errs.ErrNotFound)
	}

	return m.userData, nil
}

// SetCorrelationTag attaches an opaque local tag to the message. The tag
// travels with dup'd handles but is never transmitted.
func (m *Message) SetCorrelationTag(tag []byte) error {
	if err := m.check(); err != nil {
		return err
	}

	m.correlationTag = tag
	m.has |= partCorrelationTag

	return nil
}

// CorrelationTag returns the local correlation tag, or errs.ErrNotFound.
func (m *Message) CorrelationTag() ([]byte, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	if m.has&partCorrelationTag == 0 {
		return nil, fmt.Errorf("%w: no correlation tag", errs.ErrNotFound)
	}

	return m.correlationTag, nil
}

// =========================================================================
// Addressing and delivery metadata
// =========================================================================

// SetDestination sets the destination the message is published to.
func (m *Message) SetDestination(d sdt.Destination) error {
	if err := m.check(); err != nil {
		return err
	}

	m.destination = d
	m.has |= partDestination

	return nil
}

// Destination returns the message destination, or errs.ErrNotFound.
func (m *Message) Destination() (sdt.Destination, error) {
	if err := m.check(); err != nil {
		return sdt.Destination{}, err
	}
	if m.has&partDestination == 0 {
		return sdt.Destination{}, fmt.Errorf("%w: no destination", errs.ErrNotFound)
	}

	return m.destination, nil
}

// SetReplyTo sets the destination replies should be sent to.
func (m *Message) SetReplyTo(d sdt.Destination) error {
	if err := m.check(); err != nil {
		return err
	}

	m.replyTo = d
	m.has |= partReplyTo

	return nil
}

// ReplyTo returns the reply destination, or errs.ErrNotFound.
func (m *Message) ReplyTo() (sdt.Destination, error) {
	if err := m.check(); err != nil {
		return sdt.Destination{}, err
	}
	if m.has&partReplyTo == 0 {
		return sdt.Destination{}, fmt.Errorf("%w: no reply destination", errs.ErrNotFound)
	}

	return m.replyTo, nil
}

func (m *Message) setString(dst *string, bit uint64, v string) error {
	if err := m.check(); err != nil {
		return err
	}

	*dst = v
	m.has |= bit

	return nil
}

func (m *Message) getString(src string, bit uint64, what string) (string, error) {
	if err := m.check(); err != nil {
		return "", err
	}
	if m.has&bit == 0 {
		return "", fmt.Errorf("%w: no %s", errs.ErrNotFound, what)
	}

	return src, nil
}

// SetSenderID sets the application-visible sender identifier.
func (m *Message) SetSenderID(v string) error {
	return m.setString(&m.senderID, partSenderID, v)
}

// SenderID returns the sender identifier, or errs.ErrNotFound.
func (m *Message) SenderID() (string, error) {
	return m.getString(m.senderID, partSenderID, "sender id")
}

// SetApplicationMessageType sets the application message type.
func (m *Message) SetApplicationMessageType(v string) error {
	return m.setString(&m.appMsgType, partAppMsgType, v)
}

// ApplicationMessageType returns the application message type, or
// errs.ErrNotFound.
func (m *Message) ApplicationMessageType() (string, error) {
	return m.getString(m.appMsgType, partAppMsgType, "application message type")
}

// SetApplicationMessageID sets the application message identifier.
func (m *Message) SetApplicationMessageID(v string) error {
	return m.setString(&m.appMsgID, partAppMsgID, v)
}

// ApplicationMessageID returns the application message identifier, or
// errs.ErrNotFound.
func (m *Message) ApplicationMessageID() (string, error) {
	return m.getString(m.appMsgID, partAppMsgID, "application message id")
}

// SetCorrelationID sets the correlation identifier carried on the wire.
func (m *Message) SetCorrelationID(v string) error {
	return m.setString(&m.correlationID, partCorrelationID, v)
}

// CorrelationID returns the correlation identifier, or errs.ErrNotFound.
func (m *Message) CorrelationID() (string, error) {
	return m.getString(m.correlationID, partCorrelationID, "correlation id")
}

// SetSequenceNumber sets the publisher-assigned sequence number.
func (m *Message) SetSequenceNumber(v uint64) error {
	if err := m.check(); err != nil {
		return err
	}

	m.sequenceNumber = v
	m.has |= partSequenceNumber

	return nil
}

// SequenceNumber returns the sequence number, or errs.ErrNotFound.
func (m *Message) SequenceNumber() (uint64, error) {
	if err := m.check(); err != nil {
		return 0, err
	}
	if m.has&partSequenceNumber == 0 {
		return 0, fmt.Errorf("%w: no sequence number", errs.ErrNotFound)
	}

	return m.sequenceNumber, nil
}

func (m *Message) setInt64(dst *int64, bit uint64, v int64) error {
	if err := m.check(); err != nil {
		return err
	}

	*dst = v
	m.has |= bit

	return nil
}

func (m *Message) getInt64(src int64, bit uint64, what string) (int64, error) {
	if err := m.check(); err != nil {
		return 0, err
	}
	if m.has&bit == 0 {
		return 0, fmt.Errorf("%w: no %s", errs.ErrNotFound, what)
	}

	return src, nil
}

// SetSendTimestamp sets the send timestamp in epoch milliseconds.
func (m *Message) SetSendTimestamp(epochMillis int64) error {
	return m.setInt64(&m.sendTimestamp, partSendTimestamp, epochMillis)
}

// SendTimestamp returns the send timestamp, or errs.ErrNotFound.
func (m *Message) SendTimestamp() (int64, error) {
	return m.getInt64(m.sendTimestamp, partSendTimestamp, "send timestamp")
}

// SetReceiveTimestamp sets the local receive timestamp in epoch
// milliseconds. It is never transmitted.
func (m *Message) SetReceiveTimestamp(epochMillis int64) error {
	return m.setInt64(&m.rcvTimestamp, partRcvTimestamp, epochMillis)
}

// ReceiveTimestamp returns the local receive timestamp, or
// errs.ErrNotFound.
func (m *Message) ReceiveTimestamp() (int64, error) {
	return m.getInt64(m.rcvTimestamp, partRcvTimestamp, "receive timestamp")
}

// SetExpiration sets the absolute expiration time in epoch milliseconds.
func (m *Message) SetExpiration(epochMillis int64) error {
	return m.setInt64(&m.expiration, partExpiration, epochMillis)
}

// Expiration returns the expiration time, or errs.ErrNotFound.
func (m *Message) Expiration() (int64, error) {
	return m.getInt64(m.expiration, partExpiration, "expiration")
}

// SetTimeToLive sets the time-to-live in milliseconds.
func (m *Message) SetTimeToLive(millis int64) error {
	if millis < 0 {
		return fmt.Errorf("%w: negative time-to-live %d", errs.ErrValueOutOfRange, millis)
	}

	return m.setInt64(&m.timeToLive, partTimeToLive, millis)
}

// TimeToLive returns the time-to-live, or errs.ErrNotFound.
func (m *Message) TimeToLive() (int64, error) {
	return m.getInt64(m.timeToLive, partTimeToLive, "time-to-live")
}

// SetClassOfService sets the class of service (0-2).
func (m *Message) SetClassOfService(cos uint8) error {
	if err := m.check(); err != nil {
		return err
	}
	if cos > 2 {
		return fmt.Errorf("%w: class of service %d", errs.ErrValueOutOfRange, cos)
	}

	m.classOfService = cos
	m.has |= partClassOfService

	return nil
}

// ClassOfService returns the class of service, or errs.ErrNotFound.
func (m *Message) ClassOfService() (uint8, error) {
	if err := m.check(); err != nil {
		return 0, err
	}
	if m.has&partClassOfService == 0 {
		return 0, fmt.Errorf("%w: no class of service", errs.ErrNotFound)
	}

	return m.classOfService, nil
}

// SetDeliveryMode sets the delivery mode. New messages default to
// format.DeliveryDirect.
func (m *Message) SetDeliveryMode(mode format.DeliveryMode) error {
	if err := m.check(); err != nil {
		return err
	}
	if mode > format.DeliveryNonPersistent {
		return fmt.Errorf("%w: delivery mode %d", errs.ErrValueOutOfRange, uint8(mode))
	}

	m.deliveryMode = mode
	m.has |= partDeliveryMode

	return nil
}

// DeliveryMode returns the delivery mode. A live message always has a
// value; a freed handle reports the zero mode.
func (m *Message) DeliveryMode() format.DeliveryMode {
	if m.check() != nil {
		return format.DeliveryDirect
	}

	return m.deliveryMode
}

// SetPriority sets the message priority (0-255).
func (m *Message) SetPriority(p uint8) error {
	if err := m.check(); err != nil {
		return err
	}

	m.priority = p
	m.has |= partPriority

	return nil
}

// Priority returns the priority, or errs.ErrNotFound.
func (m *Message) Priority() (uint8, error) {
	if err := m.check(); err != nil {
		return 0, err
	}
	if m.has&partPriority == 0 {
		return 0, fmt.Errorf("%w: no priority", errs.ErrNotFound)
	}

	return m.priority, nil
}

// SetReplicationGroupID sets the replication-group message identifier.
// Normally only a decoder does this.
func (m *Message) SetReplicationGroupID(id ReplicationGroupID) error {
	if err := m.check(); err != nil {
		return err
	}

	m.rgmid = id
	m.has |= partReplicationGroupID

	return nil
}

// ReplicationGroupID returns the replication-group message identifier, or
// errs.ErrNotFound.
func (m *Message) ReplicationGroupID() (ReplicationGroupID, error) {
	if err := m.check(); err != nil {
		return ReplicationGroupID{}, err
	}
	if m.has&partReplicationGroupID == 0 {
		return ReplicationGroupID{}, fmt.Errorf("%w: no replication group id", errs.ErrNotFound)
	}

	return m.rgmid, nil
}

// =========================================================================
// Boolean flags
// =========================================================================

func (m *Message) setFlag(bit uint32, v bool) error {
	if err := m.check(); err != nil {
		return err
	}

	if v {
		m.boolFlags |= bit
	} else {
		m.boolFlags &^= bit
	}

	return nil
}

func (m *Message) getFlag(bit uint32) bool {
	if m.check() != nil {
		return false
	}

	return m.boolFlags&bit != 0
}

// SetDMQEligible marks the message as eligible for a dead-message queue.
func (m *Message) SetDMQEligible(v bool) error { return m.setFlag(flagDMQEligible, v) }

// DMQEligible reports dead-message-queue eligibility.
func (m *Message) DMQEligible() bool { return m.getFlag(flagDMQEligible) }

// SetElidingEligible marks the message as eligible for eliding.
func (m *Message) SetElidingEligible(v bool) error { return m.setFlag(flagElidingEligible, v) }

// ElidingEligible reports eliding eligibility.
func (m *Message) ElidingEligible() bool { return m.getFlag(flagElidingEligible) }

// SetAckImmediately requests an immediate broker acknowledgement.
func (m *Message) SetAckImmediately(v bool) error { return m.setFlag(flagAckImmediately, v) }

// AckImmediately reports the immediate-acknowledgement request.
func (m *Message) AckImmediately() bool { return m.getFlag(flagAckImmediately) }

// SetAsReplyMessage marks the message as a reply.
func (m *Message) SetAsReplyMessage(v bool) error { return m.setFlag(flagAsReplyMessage, v) }

// AsReplyMessage reports whether the message is marked as a reply.
func (m *Message) AsReplyMessage() bool { return m.getFlag(flagAsReplyMessage) }

// SetRedelivered marks the message as redelivered. Normally only a
// decoder does this.
func (m *Message) SetRedelivered(v bool) error { return m.setFlag(flagRedelivered, v) }

// Redelivered reports whether the message was redelivered.
func (m *Message) Redelivered() bool { return m.getFlag(flagRedelivered) }

// =========================================================================
// Lifecycle
// =========================================================================

// Dup duplicates the message. The duplicate shares the original's data
// blocks through reference counting; metadata is copied. Container
// handles opened against the original are not shared, and each handle is
// freed independently.
func (m *Message) Dup() (*Message, error) {
	if err := m.check(); err != nil {
		return nil, err
	}

	d := &Message{}
	*d = *m
	d.payloadContainers = nil
	d.propsContainers = nil
	d.unknownParams = append([]section.Param(nil), m.unknownParams...)

	if m.payload != nil {
		d.payload = m.pool.Dup(m.payload)
	}
	if m.xml != nil {
		d.xml = m.pool.Dup(m.xml)
	}
	if m.props != nil {
		d.props = m.pool.Dup(m.props)
	}

	m.pool.NoteMessage(true)

	return d, nil
}

// clearParts releases every part and invalidates dependent containers.
func (m *Message) clearParts() {
	m.dropPayload()
	m.dropXML()
	m.dropProps()

	m.userData = nil
	m.correlationTag = nil
	m.destination = sdt.Destination{}
	m.replyTo = sdt.Destination{}
	m.senderID = ""
	m.appMsgType = ""
	m.appMsgID = ""
	m.correlationID = ""
	m.sequenceNumber = 0
	m.sendTimestamp = 0
	m.rcvTimestamp = 0
	m.expiration = 0
	m.timeToLive = 0
	m.classOfService = 0
	m.priority = 0
	m.deliveryMode = format.DeliveryDirect
	m.boolFlags = 0
	m.rgmid = ReplicationGroupID{}
	m.unknownParams = nil
	m.has = 0
}

// Reset returns the message to its freshly-created state, releasing every
// part and invalidating dependent containers. The handle stays valid for
// reuse.
func (m *Message) Reset() error {
	if err := m.check(); err != nil {
		return err
	}

	m.clearParts()

	return nil
}

// Free releases the message. Data blocks shared with a duplicate survive
// until the duplicate is freed too. Any further use of the handle,
// including a second Free, reports errs.ErrInvalidHandle.
func (m *Message) Free() error {
	if err := m.check(); err != nil {
		return err
	}

	m.clearParts()
	m.valid = false
	m.pool.NoteMessage(false)

	return nil
}

// Fingerprint returns a 64-bit content fingerprint over the message's
// complete wire encoding, usable as an eliding or deduplication key.
// Messages with identical parts produce identical fingerprints.
func (m *Message) Fingerprint() (uint64, error) {
	enc, err := m.Encode()
	if err != nil {
		return 0, err
	}

	return hash.Fingerprint(enc), nil
}
