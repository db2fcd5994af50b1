// Package errs defines the sentinel errors returned by the smf library.
//
// All message and container operations report failures through these
// sentinels, typically wrapped with additional context using
// fmt.Errorf("%w: ...", err). Callers can classify any returned error
// with errors.Is:
//
//	if errors.Is(err, errs.ErrNotFound) {
//	    // optional field absent, not a failure
//	}
//
// The taxonomy distinguishes absent data (ErrNotFound, ErrEndOfStream)
// from contract violations (ErrInvalidHandle, ErrMissingName,
// ErrUnexpectedName) and from resource exhaustion (ErrInsufficientSpace,
// ErrOutOfMemory). Use of a freed or closed handle is always reported as
// ErrInvalidHandle, never as a crash.
package errs

import "errors"

var (
	// ErrInvalidHandle indicates use of a message or container that has
	// been freed, closed, or invalidated by its owner.
	ErrInvalidHandle = errors.New("invalid handle")

	// ErrNotFound indicates an optional message field or named map entry
	// is absent. It is distinct from a malformed-handle failure.
	ErrNotFound = errors.New("not found")

	// ErrEndOfStream indicates container iteration is exhausted.
	ErrEndOfStream = errors.New("end of stream")

	// ErrInvalidConversion indicates a typed getter was invoked against a
	// field whose stored type cannot be coerced to the requested type.
	ErrInvalidConversion = errors.New("invalid data conversion")

	// ErrInsufficientSpace indicates a fixed-capacity container cannot
	// hold the new encoded field, or that an open sub-container is
	// blocking writes to its parent.
	ErrInsufficientSpace = errors.New("insufficient space")

	// ErrOutOfMemory indicates a growable data block could not be
	// enlarged because the allocator's memory budget is exhausted.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrNoStructuredData indicates an operation requires a structured
	// container but the message part holds raw bytes or nothing.
	ErrNoStructuredData = errors.New("no structured data")

	// ErrContainerBusy indicates an operation on a container that still
	// has an open sub-container.
	ErrContainerBusy = errors.New("container busy")

	// ErrMissingName indicates a map operation was invoked without the
	// required field name.
	ErrMissingName = errors.New("missing field name")

	// ErrUnexpectedName indicates a stream operation was invoked with a
	// field name, which streams do not carry.
	ErrUnexpectedName = errors.New("unexpected field name")

	// ErrReadOnly indicates a mutation was attempted on a container that
	// was produced by decoding and is readable only.
	ErrReadOnly = errors.New("container is read-only")

	// ErrCorruptEncoding indicates a length prefix or type tag is
	// inconsistent with the remaining input during decode.
	ErrCorruptEncoding = errors.New("corrupt encoding")

	// ErrIDNotComparable indicates two replication-group message IDs
	// originate from incomparable sources.
	ErrIDNotComparable = errors.New("message IDs not comparable")

	// ErrValueOutOfRange indicates a numeric coercion would lose range,
	// or an argument exceeds the encodable limit for its type.
	ErrValueOutOfRange = errors.New("value out of range")
)
