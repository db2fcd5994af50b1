package pool

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	capacity := 1024
	bb := NewByteBuffer(capacity)

	require.NotNil(t, bb)
	assert.Equal(t, 0, len(bb.B))
	assert.Equal(t, capacity, cap(bb.B))
}

func TestByteBuffer_Bytes(t *testing.T) {
	bb := NewByteBuffer(64)
	data := []byte("hello world")
	bb.MustWrite(data)

	result := bb.Bytes()
	assert.Equal(t, data, result)
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(64)
	bb.MustWrite([]byte("some data"))
	require.Equal(t, 9, bb.Len())

	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), 64, "capacity should be retained after reset")
}

func TestByteBuffer_Len(t *testing.T) {
	bb := NewByteBuffer(64)
	assert.Equal(t, 0, bb.Len())

	bb.MustWrite([]byte("12345"))
	assert.Equal(t, 5, bb.Len())
}

func TestByteBuffer_MustWrite(t *testing.T) {
	bb := NewByteBuffer(4)
	data := []byte("exceeds initial capacity")
	bb.MustWrite(data)

	assert.Equal(t, data, bb.Bytes())
}

func TestByteBuffer_SetLength(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.SetLength(8)
	assert.Equal(t, 8, bb.Len())

	assert.Panics(t, func() { bb.SetLength(-1) })
	assert.Panics(t, func() { bb.SetLength(cap(bb.B) + 1) })
}

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(64)
	data := []byte("written via io.Writer")

	n, err := bb.Write(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, data, bb.Bytes())
}

func TestByteBuffer_Write_Multiple(t *testing.T) {
	bb := NewByteBuffer(8)

	parts := [][]byte{[]byte("first "), []byte("second "), []byte("third")}
	for _, part := range parts {
		n, err := bb.Write(part)
		require.NoError(t, err)
		assert.Equal(t, len(part), n)
	}

	assert.Equal(t, []byte("first second third"), bb.Bytes())
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(64)
	data := []byte("stream me")
	bb.MustWrite(data)

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)
	assert.Equal(t, data, out.Bytes())
}

func TestByteBuffer_WriteTo_EmptyBuffer(t *testing.T) {
	bb := NewByteBuffer(64)

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.Equal(t, 0, out.Len())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, io.ErrShortWrite
}

func TestByteBuffer_WriteTo_ErrorPropagation(t *testing.T) {
	bb := NewByteBuffer(64)
	bb.MustWrite([]byte("doomed"))

	_, err := bb.WriteTo(failingWriter{})
	assert.ErrorIs(t, err, io.ErrShortWrite)
}

func TestByteBuffer_Grow_SufficientCapacity(t *testing.T) {
	bb := NewByteBuffer(128)
	before := cap(bb.B)

	bb.Grow(64)
	assert.Equal(t, before, cap(bb.B), "no reallocation when capacity suffices")
}

func TestByteBuffer_Grow_SmallBuffer(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.Grow(512)

	assert.GreaterOrEqual(t, cap(bb.B)-len(bb.B), 512)
}

func TestByteBuffer_Grow_LargeBuffer(t *testing.T) {
	bb := NewByteBuffer(8 * ScratchBufferDefaultSize)
	bb.SetLength(cap(bb.B))
	before := cap(bb.B)

	bb.Grow(1)
	// Large buffers grow by 25% of capacity
	assert.GreaterOrEqual(t, cap(bb.B), before+before/4)
}

func TestByteBuffer_Grow_PreservesData(t *testing.T) {
	bb := NewByteBuffer(8)
	data := []byte("keep me around")
	bb.MustWrite(data)

	bb.Grow(1024 * 1024)
	assert.Equal(t, data, bb.Bytes())
}

// =============================================================================
// Default scratch pool
// =============================================================================

func TestGetScratchBuffer(t *testing.T) {
	bb := GetScratchBuffer()
	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), ScratchBufferDefaultSize)

	PutScratchBuffer(bb)
}

func TestPutScratchBuffer_NilBuffer(t *testing.T) {
	assert.NotPanics(t, func() {
		PutScratchBuffer(nil)
	})
}

func TestScratchBuffer_ReusePattern(t *testing.T) {
	bb := GetScratchBuffer()
	bb.MustWrite([]byte("transient work"))
	PutScratchBuffer(bb)

	bb2 := GetScratchBuffer()
	defer PutScratchBuffer(bb2)
	assert.Equal(t, 0, bb2.Len(), "pooled buffer must come back reset")
}

func TestScratchBuffer_MaxThreshold(t *testing.T) {
	bb := GetScratchBuffer()
	bb.Grow(2 * ScratchBufferMaxThreshold)
	assert.Greater(t, cap(bb.B), ScratchBufferMaxThreshold)

	// Oversized buffers are discarded rather than pooled
	PutScratchBuffer(bb)

	bb2 := GetScratchBuffer()
	defer PutScratchBuffer(bb2)
	assert.LessOrEqual(t, cap(bb2.B), 2*ScratchBufferMaxThreshold)
}

// =============================================================================
// ByteBufferPool Tests
// =============================================================================

func TestNewByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(256, 1024)
	require.NotNil(t, p)

	bb := p.Get()
	require.NotNil(t, bb)
	assert.GreaterOrEqual(t, bb.Cap(), 256)
	p.Put(bb)
}

func TestByteBufferPool_MaxThreshold_Discard(t *testing.T) {
	p := NewByteBufferPool(64, 128)

	bb := p.Get()
	bb.Grow(4096)
	require.Greater(t, cap(bb.B), 128)
	p.Put(bb)

	bb2 := p.Get()
	assert.LessOrEqual(t, cap(bb2.B), 4096)
}

func TestByteBufferPool_MaxThreshold_Zero(t *testing.T) {
	p := NewByteBufferPool(64, 0)

	bb := p.Get()
	bb.Grow(1024 * 1024)
	assert.NotPanics(t, func() { p.Put(bb) })
}

func TestByteBufferPool_ConcurrentAccess(t *testing.T) {
	p := NewByteBufferPool(128, 4096)

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bb := p.Get()
				bb.MustWrite([]byte("concurrent"))
				p.Put(bb)
			}
		}()
	}
	wg.Wait()
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkByteBuffer_Write(b *testing.B) {
	data := make([]byte, 512)
	bb := NewByteBuffer(ScratchBufferDefaultSize)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bb.Reset()
		_, _ = bb.Write(data)
	}
}

func BenchmarkGetPut_Reuse(b *testing.B) {
	data := make([]byte, 256)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bb := GetScratchBuffer()
		bb.MustWrite(data)
		PutScratchBuffer(bb)
	}
}
