package msg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gosmf/smf/errs"
)

func TestDispatch_ReleaseFrees(t *testing.T) {
	m, err := NewMessage()
	require.NoError(t, err)
	require.NoError(t, m.SetBinaryAttachment([]byte("payload")))

	var seen []byte
	err = Dispatch(m, func(m *Message) CallbackAction {
		data, err := m.BinaryAttachment()
		require.NoError(t, err)
		seen = append([]byte(nil), data...)

		return ActionRelease
	})
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), seen)

	_, err = m.BinaryAttachment()
	require.ErrorIs(t, err, errs.ErrInvalidHandle)
}

func TestDispatch_TakeKeepsAlive(t *testing.T) {
	m, err := NewMessage()
	require.NoError(t, err)
	require.NoError(t, m.SetSenderID("svc-a"))

	var taken *Message
	err = Dispatch(m, func(m *Message) CallbackAction {
		taken = m

		return ActionTake
	})
	require.NoError(t, err)
	require.Same(t, m, taken)

	// Still usable after dispatch; the handler owns the free.
	sender, err := taken.SenderID()
	require.NoError(t, err)
	require.Equal(t, "svc-a", sender)
	require.NoError(t, taken.Free())
}

func TestDispatch_FreedMessage(t *testing.T) {
	m, err := NewMessage()
	require.NoError(t, err)
	require.NoError(t, m.Free())

	called := false
	err = Dispatch(m, func(*Message) CallbackAction {
		called = true

		return ActionRelease
	})
	require.ErrorIs(t, err, errs.ErrInvalidHandle)
	require.False(t, called)
}

func TestCallbackAction_String(t *testing.T) {
	require.Equal(t, "Release", ActionRelease.String())
	require.Equal(t, "Take", ActionTake.String())
	require.Equal(t, "Unknown", CallbackAction(9).String())
}
