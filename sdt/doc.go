// Package sdt implements the structured-data container types (maps and
// streams) and the machine-independent field codec used to embed them in
// message payloads and metadata.
//
// A Map associates a name with each field and has multimap semantics:
// adding an entry never overwrites an existing entry with the same name.
// A Stream is purely positional. Both variants share one container core
// and differ only in whether a field name is required.
//
// # Wire format
//
// Every field is encoded as a tag byte, a length prefix, and the value
// bytes. The high nibble of the tag is the type code (format.FieldType);
// the low nibble is the width of the length prefix in bytes (1-4). The
// declared length covers the entire field, tag and prefix included, so a
// decoder needs no external type information. Multi-byte integers are
// network byte order. A container's own header is a map or stream tag with
// a 4-byte length prefix, 5 bytes in total.
//
// # Building containers
//
//	m, _ := sdt.NewMap()
//	_ = m.AddUint16("FirstFieldName", 7)
//	_ = m.AddInt8("SecondFieldName", -1)
//	encoded, _ := m.Encode()
//
// Containers are backed either by growable data blocks from an alloc.Pool
// or by a fixed caller-supplied buffer (NewMapOver/NewStreamOver) whose
// capacity is never exceeded. At most one sub-container may be open per
// container at a time; closing the sub-container fixes it into the parent.
//
// # Reading containers
//
//	m, _ := sdt.DecodeMap(encoded)
//	for m.HasNext() {
//	    name, field, _ := m.Next()
//	    ...
//	}
//
// Containers produced by decoding are readable only; mutating them reports
// an error. Iteration follows insertion order and reports end-of-stream
// when exhausted. Typed getters coerce between compatible types and report
// an invalid-conversion error otherwise.
package sdt
