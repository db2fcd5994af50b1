package smf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gosmf/smf/sdt"
)

func TestEndToEnd(t *testing.T) {
	m, err := NewMessage()
	require.NoError(t, err)
	require.NoError(t, m.SetDestination(Topic("orders/new")))
	require.NoError(t, m.SetApplicationMessageType("order"))

	body, err := m.CreateBinaryAttachmentMap()
	require.NoError(t, err)
	require.NoError(t, body.AddString("sku", "A-1137"))
	require.NoError(t, body.AddInt32("quantity", 2))
	require.NoError(t, body.Close())

	wire, err := m.Encode()
	require.NoError(t, err)
	require.NoError(t, m.Free())

	d, err := DecodeMessage(wire)
	require.NoError(t, err)

	dest, err := d.Destination()
	require.NoError(t, err)
	require.Equal(t, Topic("orders/new"), dest)

	got, err := d.BinaryAttachmentMap()
	require.NoError(t, err)
	sku, err := got.GetString("sku")
	require.NoError(t, err)
	require.Equal(t, "A-1137", sku)
	qty, err := got.GetInt32("quantity")
	require.NoError(t, err)
	require.Equal(t, int32(2), qty)

	require.NoError(t, d.Free())
}

func TestStandaloneContainers(t *testing.T) {
	s, err := NewStream()
	require.NoError(t, err)
	require.NoError(t, s.AddString("first"))
	require.NoError(t, s.AddBool(true))
	require.NoError(t, s.AddDestination(Queue("billing")))

	enc, err := s.Encode()
	require.NoError(t, err)
	require.NoError(t, s.Close())

	d, err := sdt.DecodeStream(enc)
	require.NoError(t, err)

	first, err := d.NextString()
	require.NoError(t, err)
	require.Equal(t, "first", first)
	flag, err := d.NextBool()
	require.NoError(t, err)
	require.True(t, flag)
	dest, err := d.NextDestination()
	require.NoError(t, err)
	require.Equal(t, Queue("billing"), dest)
	require.NoError(t, d.Close())

	m, err := NewMap()
	require.NoError(t, err)
	require.NoError(t, m.AddString("queue", "billing"))
	require.NoError(t, m.Close())
}

func TestPoolStats(t *testing.T) {
	before := PoolStats()

	m, err := NewMessage()
	require.NoError(t, err)
	require.NoError(t, m.SetBinaryAttachment([]byte("payload")))

	during := PoolStats()
	require.Greater(t, during.AllocatedMessages, before.AllocatedMessages)
	require.Greater(t, during.AllocatedMemory, before.AllocatedMemory)

	require.NoError(t, m.Free())

	after := PoolStats()
	require.Equal(t, before.AllocatedMessages, after.AllocatedMessages)
	require.Equal(t, before.AllocatedMemory, after.AllocatedMemory)
}
