package msg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gosmf/smf/errs"
)

func TestReplicationGroupID_StringRoundTrip(t *testing.T) {
	id := ReplicationGroupID{Origin: 0x0123456789ABCDEF, Sequence: 0xFEDCBA9876543210}
	s := id.String()
	require.Equal(t, "rmid1:0123456789abcdef-fedcba9876543210", s)

	parsed, err := ParseReplicationGroupID(s)
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestReplicationGroupID_StringZeroPadded(t *testing.T) {
	id := ReplicationGroupID{Origin: 1, Sequence: 2}
	require.Equal(t, "rmid1:0000000000000001-0000000000000002", id.String())
}

func TestParseReplicationGroupID_Invalid(t *testing.T) {
	bad := []string{
		"",
		"rmid1:",
		"0123456789abcdef-fedcba9876543210",
		"rmid2:0123456789abcdef-fedcba9876543210",
		"rmid1:0123456789abcdef",
		"rmid1:xyz-fedcba9876543210",
		"rmid1:0123456789abcdef-xyz",
		"rmid1:0123456789abcdef0-fedcba9876543210",
	}
	for _, s := range bad {
		_, err := ParseReplicationGroupID(s)
		require.ErrorIs(t, err, errs.ErrCorruptEncoding, "input %q", s)
	}
}

func TestReplicationGroupID_Compare(t *testing.T) {
	a := ReplicationGroupID{Origin: 1, Sequence: 10}
	b := ReplicationGroupID{Origin: 1, Sequence: 20}

	cmp, err := a.Compare(b)
	require.NoError(t, err)
	require.Equal(t, -1, cmp)

	cmp, err = b.Compare(a)
	require.NoError(t, err)
	require.Equal(t, 1, cmp)

	cmp, err = a.Compare(a)
	require.NoError(t, err)
	require.Equal(t, 0, cmp)

	other := ReplicationGroupID{Origin: 2, Sequence: 10}
	_, err = a.Compare(other)
	require.ErrorIs(t, err, errs.ErrIDNotComparable)
}

func TestReplicationGroupID_IsZero(t *testing.T) {
	require.True(t, ReplicationGroupID{}.IsZero())
	require.False(t, ReplicationGroupID{Origin: 1}.IsZero())
	require.False(t, ReplicationGroupID{Sequence: 1}.IsZero())
}

func TestReplicationGroupID_WireRoundTrip(t *testing.T) {
	m, err := NewMessage()
	require.NoError(t, err)
	defer func() { _ = m.Free() }()

	id := ReplicationGroupID{Origin: 0xAABBCCDD00112233, Sequence: 7}
	require.NoError(t, m.SetReplicationGroupID(id))

	enc, err := m.Encode()
	require.NoError(t, err)

	d, err := Decode(enc)
	require.NoError(t, err)
	defer func() { _ = d.Free() }()

	got, err := d.ReplicationGroupID()
	require.NoError(t, err)
	require.Equal(t, id, got)
}
