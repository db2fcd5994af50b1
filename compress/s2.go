package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor implements S2 compression (a Snappy derivative) for
// payload sections, trading some ratio for very high throughput.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses a payload section in S2 block format.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress restores a payload section compressed by Compress.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	// S2 records the decoded length up front; reject decompression bombs
	// before allocating anything.
	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if n > maxDecompressedPayload {
		return nil, fmt.Errorf("s2 decompression failed: payload exceeds %d bytes", maxDecompressedPayload)
	}

	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}
