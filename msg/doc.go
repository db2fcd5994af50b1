// Package msg implements the message buffer: a container for the parts of
// one message (binary attachment, XML content, user data, user properties,
// addressing and delivery metadata) together with the transcoder that maps
// a message to and from its self-describing wire encoding.
//
// # Parts
//
// A Message is a bag of optional parts. Setters install a part, getters
// return it or errs.ErrNotFound when absent, and replacing a part
// implicitly invalidates any structured container that was opened against
// it. The binary attachment is the payload proper and records what it
// holds (raw bytes, text, map or stream) so a receiver can pick the right
// accessor.
//
// Parts are installed either by copy, into data blocks from an
// alloc.Pool, or by reference to caller-owned memory. By-reference parts
// avoid the copy but require the caller to keep the memory alive until
// the message is encoded or freed.
//
// # Lifecycle
//
// Messages are created with NewMessage, duplicated with Dup, recycled
// with Reset and released with Free. Dup is cheap: the duplicate shares
// the original's data blocks through reference counting, and the blocks
// are returned to the pool only when every handle that shares them has
// been freed. Using a freed message reports errs.ErrInvalidHandle.
//
// # Transcoding
//
// Encode produces the complete wire form: a fixed header, a parameter
// section holding the metadata parts, and the payload section, optionally
// compressed. Decode reverses it; unknown parameters are preserved and
// re-emitted on Encode unless strict decoding is requested.
package msg
