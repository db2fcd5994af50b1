package compress

// ZstdCompressor provides Zstandard compression for message payloads.
//
// Zstd gives the best ratio of the available codecs and is the right
// choice for container or text payloads that travel over constrained
// links or sit in a dead-message queue for a while. The implementation is
// selected at build time: cgo builds use the libzstd binding, pure-Go
// builds use klauspost/compress.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
