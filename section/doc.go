// Package section defines the fixed binary sections of an encoded
// message: the 12-byte header with its packed flag word, and the
// parameter TLVs that carry message metadata between the header and the
// payload section.
//
// The header layout is:
//
//	offset 0-1   Options word (little-endian: payload kind + magic)
//	offset 2     format version
//	offset 3     payload compression type
//	offset 4-7   total message length (network order)
//	offset 8-11  payload section offset (network order)
//
// Each parameter is a one-byte ID, a 4-byte value length in network
// order, and the value bytes. Decoders skip parameters with unknown IDs
// unless strict decoding is requested.
package section
