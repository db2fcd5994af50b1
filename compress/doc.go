// Package compress provides the optional codecs applied to the payload
// section of an encoded message.
//
// The payload of a message (its binary attachment) is often the bulk of
// the encoded bytes, and for text-heavy or container payloads compression
// pays for itself quickly. Compression never applies to the header or
// parameter sections, so a decoder can always read message metadata
// without touching a codec.
//
// Four codecs are available, selected by format.CompressionType:
//
//   - CompressionNone: pass-through, the default
//   - CompressionZstd: best ratio, good speed (cgo build uses gozstd,
//     pure-Go build uses klauspost/compress/zstd)
//   - CompressionS2: fastest, moderate ratio
//   - CompressionLZ4: fast block compression, small payload overhead
//
// All codecs are safe for concurrent use; encoder and decoder state is
// pooled internally.
package compress
