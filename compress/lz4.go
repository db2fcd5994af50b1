package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// maxDecompressedPayload caps the buffer grown while decompressing a
// payload section. The compressed size travels in the message header but
// the original size does not, so a corrupt input could otherwise demand
// an arbitrarily large buffer.
const maxDecompressedPayload = 128 << 20

// lz4Compressors pools lz4.Compressor instances; each keeps an internal
// hash table worth reusing across payloads.
var lz4Compressors = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor implements LZ4 block compression for payload sections. It
// has the cheapest compression cost of the available codecs, suited to
// large binary attachments on fast links.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses a payload section as a single LZ4 block.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	lc, _ := lz4Compressors.Get().(*lz4.Compressor)
	defer lz4Compressors.Put(lc)

	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return dst[:n], nil
}

// Decompress restores a payload section compressed by Compress. An LZ4
// block does not record its decoded length, so the buffer starts at four
// times the compressed size and doubles until the block fits, bounded by
// maxDecompressedPayload.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	for size := len(data) * 4; size <= maxDecompressedPayload; size *= 2 {
		buf := make([]byte, size)
		n, err := lz4.UncompressBlock(data, buf)
		if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}

		return buf[:n], nil
	}

	return nil, fmt.Errorf("lz4 decompression failed: payload exceeds %d bytes", maxDecompressedPayload)
}
