package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
		})
	}
}

func TestFingerprint(t *testing.T) {
	data := []byte("order payload bytes")

	// Fingerprint and ID agree on the same content.
	require.Equal(t, ID(string(data)), Fingerprint(data))

	// Sensitive to any byte change.
	modified := append([]byte(nil), data...)
	modified[0] ^= 0x01
	require.NotEqual(t, Fingerprint(data), Fingerprint(modified))

	// Stable across calls.
	require.Equal(t, Fingerprint(data), Fingerprint(data))
}

func BenchmarkFingerprint(b *testing.B) {
	data := make([]byte, 1024)
	for i := range data {
		data[i] = byte(i)
	}
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		Fingerprint(data)
	}
}
