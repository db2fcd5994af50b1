package msg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDump_Brief(t *testing.T) {
	m := buildFullMessage(t)
	defer func() { _ = m.Free() }()

	out := m.Dump(DumpBrief)
	require.True(t, strings.HasPrefix(out, "Message:\n"))
	require.Contains(t, out, "Destination:      Topic:orders/new")
	require.Contains(t, out, "SenderID:         svc-a")
	require.Contains(t, out, "SequenceNumber:   42")
	require.Contains(t, out, "DeliveryMode:     Persistent")
	require.Contains(t, out, "TimeToLive:       60000ms")
	require.Contains(t, out, "Flags:            DMQEligible,ElidingEligible")
	require.Contains(t, out, "ReplicationGroupID: rmid1:0000000000000007-0000000000000064")
	require.Contains(t, out, "BinaryAttachment:")
	require.NotContains(t, out, "dump:")
}

func TestDump_Full(t *testing.T) {
	m, err := NewMessage()
	require.NoError(t, err)
	defer func() { _ = m.Free() }()
	require.NoError(t, m.SetBinaryAttachment([]byte("hello world")))
	require.NoError(t, m.SetXMLContent([]byte("<a/>")))

	out := m.Dump(DumpFull)
	require.Contains(t, out, "BinaryAttachment dump:")
	require.Contains(t, out, "XMLContent dump:")
	require.Contains(t, out, "hello world")
	require.NotContains(t, out, "truncated")
}

func TestDump_FullTruncatesLargePayload(t *testing.T) {
	m, err := NewMessage()
	require.NoError(t, err)
	defer func() { _ = m.Free() }()
	require.NoError(t, m.SetBinaryAttachment(make([]byte, dumpHexLimit+1)))

	out := m.Dump(DumpFull)
	require.Contains(t, out, "... truncated")
}

func TestDump_FreedMessage(t *testing.T) {
	m, err := NewMessage()
	require.NoError(t, err)
	require.NoError(t, m.Free())

	require.Equal(t, "Message <invalid handle>\n", m.Dump(DumpFull))
}

func TestMarshalZerologObject(t *testing.T) {
	m := buildFullMessage(t)
	defer func() { _ = m.Free() }()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger.Info().Object("msg", m).Msg("received")

	out := buf.String()
	require.Contains(t, out, `"destination":"Topic:orders/new"`)
	require.Contains(t, out, `"sender_id":"svc-a"`)
	require.Contains(t, out, `"sequence_number":42`)
	require.Contains(t, out, `"delivery_mode":"Persistent"`)
	require.Contains(t, out, `"payload_kind":"Map"`)
	require.NotContains(t, out, "A-1137", "payload contents must not be logged")
}

func TestMarshalZerologObject_FreedMessage(t *testing.T) {
	m, err := NewMessage()
	require.NoError(t, err)
	require.NoError(t, m.Free())

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger.Info().Object("msg", m).Msg("received")

	require.Contains(t, buf.String(), `"invalid_handle":true`)
}
