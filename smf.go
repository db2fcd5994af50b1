// Package smf implements a message buffer and structured-container engine
// for a Solace-style messaging wire format.
//
// The library is organized around three layers:
//
//   - alloc: a quanta-based data block allocator with reference counting
//     and aggregate statistics
//   - sdt: self-describing structured data: a tagged binary field codec
//     and the Map (named multimap) and Stream (positional) containers
//     built on it
//   - msg: the message buffer holding a message's parts, and the
//     transcoder between a message and its self-describing byte form
//
// # Basic Usage
//
// Building and encoding a message:
//
//	import "github.com/gosmf/smf"
//
//	m, _ := smf.NewMessage()
//	m.SetDestination(smf.Topic("orders/new"))
//	m.SetApplicationMessageType("order")
//
//	body, _ := m.CreateBinaryAttachmentMap()
//	body.AddString("sku", "A-1137")
//	body.AddInt32("quantity", 2)
//	body.Close() // fixes the map into the message payload
//
//	wire, _ := m.Encode()
//	m.Free()
//
// Decoding:
//
//	m, _ := smf.DecodeMessage(wire)
//	body, _ := m.BinaryAttachmentMap()
//	sku, _ := body.GetString("sku")
//	m.Free()
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the msg and
// sdt packages, simplifying the most common use cases. For fine-grained
// control (custom allocator pools, fixed-memory containers, payload
// compression) use those packages directly.
package smf

import (
	"github.com/gosmf/smf/alloc"
	"github.com/gosmf/smf/msg"
	"github.com/gosmf/smf/sdt"
)

// NewMessage creates an empty message backed by the default allocator.
func NewMessage() (*msg.Message, error) {
	return msg.NewMessage()
}

// DecodeMessage parses a complete encoded message, preserving unknown
// parameters for re-encoding.
func DecodeMessage(data []byte) (*msg.Message, error) {
	return msg.Decode(data)
}

// NewMap creates an empty writable map container backed by the default
// allocator.
func NewMap() (*sdt.Map, error) {
	return sdt.NewMap()
}

// NewStream creates an empty writable stream container backed by the
// default allocator.
func NewStream() (*sdt.Stream, error) {
	return sdt.NewStream()
}

// Topic returns a topic destination with the given name.
func Topic(name string) sdt.Destination {
	return sdt.Topic(name)
}

// Queue returns a queue destination with the given name.
func Queue(name string) sdt.Destination {
	return sdt.Queue(name)
}

// PoolStats returns a snapshot of the default allocator's counters:
// memory in use, block counts per size class, and live message and
// container counts.
func PoolStats() alloc.Stats {
	return alloc.Default().Stats()
}
