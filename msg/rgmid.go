package msg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gosmf/smf/endian"
	"github.com/gosmf/smf/errs"
)

// rgmidPrefix starts the textual form of a replication-group message ID.
const rgmidPrefix = "rmid1:"

// ReplicationGroupID identifies a message within a replication group. It
// is assigned by the broker when a persistent message is spooled; two IDs
// with the same origin order the messages they name, while IDs from
// different origins carry no ordering relation.
//
// The zero value means "no ID".
type ReplicationGroupID struct {
	// Origin identifies the spool that assigned the ID.
	Origin uint64
	// Sequence orders messages assigned by the same origin.
	Sequence uint64
}

// IsZero reports whether the ID is unset.
func (id ReplicationGroupID) IsZero() bool {
	return id == ReplicationGroupID{}
}

// String renders the ID in its textual form, "rmid1:" followed by the
// origin and sequence in hexadecimal.
func (id ReplicationGroupID) String() string {
	return fmt.Sprintf("%s%016x-%016x", rgmidPrefix, id.Origin, id.Sequence)
}

// Compare orders two IDs from the same origin: -1 when id precedes other,
// 0 when equal, +1 when id follows other.
//
// Returns errs.ErrIDNotComparable when the IDs come from different
// origins; their relative order is undefined.
func (id ReplicationGroupID) Compare(other ReplicationGroupID) (int, error) {
	if id.Origin != other.Origin {
		return 0, fmt.Errorf("%w: origins %016x and %016x",
			errs.ErrIDNotComparable, id.Origin, other.Origin)
	}

	switch {
	case id.Sequence < other.Sequence:
		return -1, nil
	case id.Sequence > other.Sequence:
		return 1, nil
	default:
		return 0, nil
	}
}

// bytes returns the 16-byte wire form: origin then sequence, network
// order.
func (id ReplicationGroupID) bytes() []byte {
	engine := endian.GetNetworkEngine()
	b := make([]byte, 0, 16)
	b = engine.AppendUint64(b, id.Origin)
	b = engine.AppendUint64(b, id.Sequence)

	return b
}

// replicationGroupIDFromBytes parses the 16-byte wire form.
func replicationGroupIDFromBytes(data []byte) (ReplicationGroupID, error) {
	if len(data) != 16 {
		return ReplicationGroupID{}, fmt.Errorf("%w: replication group id %d bytes",
			errs.ErrCorruptEncoding, len(data))
	}

	engine := endian.GetNetworkEngine()

	return ReplicationGroupID{
		Origin:   engine.Uint64(data[0:8]),
		Sequence: engine.Uint64(data[8:16]),
	}, nil
}

// ParseReplicationGroupID parses the textual form produced by String.
func ParseReplicationGroupID(s string) (ReplicationGroupID, error) {
	fail := func() (ReplicationGroupID, error) {
		return ReplicationGroupID{}, fmt.Errorf("%w: replication group id %q",
			errs.ErrCorruptEncoding, s)
	}

	rest, ok := strings.CutPrefix(s, rgmidPrefix)
	if !ok {
		return fail()
	}

	originHex, seqHex, ok := strings.Cut(rest, "-")
	if !ok {
		return fail()
	}

	origin, err := strconv.ParseUint(originHex, 16, 64)
	if err != nil {
		return fail()
	}
	sequence, err := strconv.ParseUint(seqHex, 16, 64)
	if err != nil {
		return fail()
	}

	return ReplicationGroupID{Origin: origin, Sequence: sequence}, nil
}
