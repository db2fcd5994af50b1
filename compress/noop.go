package compress

// NoOpCompressor passes payload bytes through without compression. It is
// the codec behind format.CompressionNone and the baseline for measuring
// codec overhead.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input slice as-is, without processing or copying.
//
// The returned slice shares the same underlying memory as the input;
// callers must not modify the input afterwards if they use the result.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is, without processing or copying.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
