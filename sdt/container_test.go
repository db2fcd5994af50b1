package sdt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gosmf/smf/alloc"
	"github.com/gosmf/smf/errs"
)

// Documented worked example: two named scalar entries total 47 bytes.
// 5 container header + 17 name + 4 uint16 + 18 name + 3 int8.
func TestMap_WorkedExampleSize(t *testing.T) {
	m, err := NewMap()
	require.NoError(t, err)
	defer m.Invalidate()

	require.NoError(t, m.AddUint16("FirstFieldName", 7))
	require.NoError(t, m.AddInt8("SecondFieldName", -1))

	require.Equal(t, 47, m.Size())
}

// Documented worked example: Int16 then Int64 total 19 bytes (5 + 4 + 10).
func TestStream_WorkedExampleSize(t *testing.T) {
	s, err := NewStream()
	require.NoError(t, err)
	defer s.Invalidate()

	require.NoError(t, s.AddInt16(7))
	require.NoError(t, s.AddInt64(-1))

	require.Equal(t, 19, s.Size())
}

func TestMap_Multimap(t *testing.T) {
	m, err := NewMap()
	require.NoError(t, err)
	defer m.Invalidate()

	require.NoError(t, m.AddInt32("dup", 1))
	sizeAfterFirst := m.Size()
	require.NoError(t, m.AddInt32("dup", 2))
	require.Greater(t, m.Size(), sizeAfterFirst, "second add must not overwrite")

	n, err := m.Count()
	require.NoError(t, err)
	require.Equal(t, 2, n)

	// Lookup returns one of the two values, not an error.
	v, err := m.GetInt32("dup")
	require.NoError(t, err)
	require.Contains(t, []int32{1, 2}, v)
}

func TestMap_IterationOrder(t *testing.T) {
	m, err := NewMap()
	require.NoError(t, err)
	defer m.Invalidate()

	names := []string{"a", "b", "a", "c"}
	for i, name := range names {
		require.NoError(t, m.AddInt32(name, int32(i)))
	}

	require.NoError(t, m.Rewind())
	for i, want := range names {
		require.True(t, m.HasNext())
		name, f, err := m.Next()
		require.NoError(t, err)
		require.Equal(t, want, name)
		v, err := f.AsInt32()
		require.NoError(t, err)
		require.Equal(t, int32(i), v)
	}
	require.False(t, m.HasNext())

	_, _, err = m.Next()
	require.ErrorIs(t, err, errs.ErrEndOfStream)
}

func TestMap_GetNotFound(t *testing.T) {
	m, err := NewMap()
	require.NoError(t, err)
	defer m.Invalidate()

	require.NoError(t, m.AddBool("present", true))

	_, err = m.Get("absent")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestMap_NameRules(t *testing.T) {
	m, err := NewMap()
	require.NoError(t, err)
	defer m.Invalidate()

	require.ErrorIs(t, m.AddInt32("", 1), errs.ErrMissingName)
}

func TestStream_PositionalIntegrity(t *testing.T) {
	s, err := NewStream()
	require.NoError(t, err)
	defer s.Invalidate()

	const n = 50
	for i := 0; i < n; i++ {
		require.NoError(t, s.AddInt32(int32(i)))
	}

	require.NoError(t, s.Rewind())
	for i := 0; i < n; i++ {
		v, err := s.NextInt32()
		require.NoError(t, err)
		require.Equal(t, int32(i), v)
	}

	_, err = s.Next()
	require.ErrorIs(t, err, errs.ErrEndOfStream)
}

func TestStream_MixedTypesRoundTrip(t *testing.T) {
	s, err := NewStream()
	require.NoError(t, err)
	defer s.Invalidate()

	require.NoError(t, s.AddNull())
	require.NoError(t, s.AddBool(true))
	require.NoError(t, s.AddString("text"))
	require.NoError(t, s.AddByteArray([]byte{1, 2, 3}))
	require.NoError(t, s.AddDestination(Topic("t/1")))
	require.NoError(t, s.AddFloat64(2.5))

	enc, err := s.Encode()
	require.NoError(t, err)

	dec, err := DecodeStream(enc)
	require.NoError(t, err)
	defer dec.Invalidate()

	f, err := dec.Next()
	require.NoError(t, err)
	require.True(t, f.IsNull())

	b, err := dec.NextBool()
	require.NoError(t, err)
	require.True(t, b)

	str, err := dec.NextString()
	require.NoError(t, err)
	require.Equal(t, "text", str)

	raw, err := dec.NextByteArray()
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, raw)

	d, err := dec.NextDestination()
	require.NoError(t, err)
	require.Equal(t, Topic("t/1"), d)

	fv, err := dec.NextFloat64()
	require.NoError(t, err)
	require.Equal(t, 2.5, fv)
}

func TestSubContainer_Exclusivity(t *testing.T) {
	m, err := NewMap()
	require.NoError(t, err)
	defer m.Invalidate()

	sub, err := m.OpenSubStream("first")
	require.NoError(t, err)

	// A second open while one is in flight is refused.
	_, err = m.OpenSubMap("second")
	require.ErrorIs(t, err, errs.ErrContainerBusy)

	// So is adding to or closing the parent.
	require.ErrorIs(t, m.AddInt32("x", 1), errs.ErrInsufficientSpace)
	require.ErrorIs(t, m.Close(), errs.ErrContainerBusy)

	require.NoError(t, sub.AddInt32(42))
	require.NoError(t, sub.Close())

	// Closing the first permits opening another.
	sub2, err := m.OpenSubMap("second")
	require.NoError(t, err)
	require.NoError(t, sub2.Close())
}

func TestSubContainer_SpliceAndReadBack(t *testing.T) {
	m, err := NewMap()
	require.NoError(t, err)
	defer m.Invalidate()

	require.NoError(t, m.AddString("before", "x"))

	sub, err := m.OpenSubStream("inner")
	require.NoError(t, err)
	require.NoError(t, sub.AddInt32(1))
	require.NoError(t, sub.AddInt32(2))
	require.NoError(t, sub.Close())

	require.NoError(t, m.AddString("after", "y"))

	enc, err := m.Encode()
	require.NoError(t, err)

	dec, err := DecodeMap(enc)
	require.NoError(t, err)
	defer dec.Invalidate()

	inner, err := dec.GetStream("inner")
	require.NoError(t, err)
	v1, err := inner.NextInt32()
	require.NoError(t, err)
	require.Equal(t, int32(1), v1)
	v2, err := inner.NextInt32()
	require.NoError(t, err)
	require.Equal(t, int32(2), v2)

	after, err := dec.GetString("after")
	require.NoError(t, err)
	require.Equal(t, "y", after)
}

func TestSubContainer_DeepNesting(t *testing.T) {
	s, err := NewStream()
	require.NoError(t, err)
	defer s.Invalidate()

	level1, err := s.OpenSubMap()
	require.NoError(t, err)
	level2, err := level1.OpenSubStream("deep")
	require.NoError(t, err)
	require.NoError(t, level2.AddString("bottom"))
	require.NoError(t, level2.Close())
	require.NoError(t, level1.Close())

	enc, err := s.Encode()
	require.NoError(t, err)

	dec, err := DecodeStream(enc)
	require.NoError(t, err)
	defer dec.Invalidate()

	m1, err := dec.NextMap()
	require.NoError(t, err)
	s2, err := m1.GetStream("deep")
	require.NoError(t, err)
	v, err := s2.NextString()
	require.NoError(t, err)
	require.Equal(t, "bottom", v)
}

func TestFixedContainer_CapacityEnforcement(t *testing.T) {
	// Room for the header plus exactly two int32 entries (6 bytes each).
	buf := make([]byte, 5+12)
	s, err := NewStreamOver(buf)
	require.NoError(t, err)
	defer s.Invalidate()

	require.NoError(t, s.AddInt32(1))
	require.NoError(t, s.AddInt32(2))

	err = s.AddInt32(3)
	require.ErrorIs(t, err, errs.ErrInsufficientSpace)

	// The failed add must not have corrupted the contents.
	require.Equal(t, 17, s.Size())
	enc, err := s.Encode()
	require.NoError(t, err)

	dec, err := DecodeStream(enc)
	require.NoError(t, err)
	defer dec.Invalidate()
	n, err := dec.Count()
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestFixedContainer_TooSmallForHeader(t *testing.T) {
	_, err := NewMapOver(make([]byte, 4))
	require.ErrorIs(t, err, errs.ErrInsufficientSpace)
}

func TestFixedContainer_SubContainerInPlace(t *testing.T) {
	buf := make([]byte, 64)
	m, err := NewMapOver(buf)
	require.NoError(t, err)
	defer m.Invalidate()

	sub, err := m.OpenSubStream("s")
	require.NoError(t, err)
	require.NoError(t, sub.AddInt8(5))
	require.NoError(t, sub.Close())

	enc, err := m.Encode()
	require.NoError(t, err)

	dec, err := DecodeMap(enc)
	require.NoError(t, err)
	defer dec.Invalidate()
	inner, err := dec.GetStream("s")
	require.NoError(t, err)
	v, err := inner.NextInt8()
	require.NoError(t, err)
	require.Equal(t, int8(5), v)
}

func TestMap_Delete(t *testing.T) {
	m, err := NewMap()
	require.NoError(t, err)
	defer m.Invalidate()

	require.NoError(t, m.AddInt32("a", 1))
	require.NoError(t, m.AddInt32("victim", 2))
	require.NoError(t, m.AddInt32("b", 3))
	require.NoError(t, m.AddInt32("victim", 4))

	require.NoError(t, m.Delete("victim"))

	// Only the first duplicate goes; survivors keep their relative order.
	var names []string
	for m.HasNext() {
		name, _, err := m.Next()
		require.NoError(t, err)
		names = append(names, name)
	}
	require.Equal(t, []string{"a", "b", "victim"}, names)

	require.ErrorIs(t, m.Delete("gone"), errs.ErrNotFound)
}

func TestDecodedContainer_ReadOnly(t *testing.T) {
	m, err := NewMap()
	require.NoError(t, err)
	require.NoError(t, m.AddInt32("x", 1))
	enc, err := m.Encode()
	require.NoError(t, err)
	m.Invalidate()

	dec, err := DecodeMap(enc)
	require.NoError(t, err)
	defer dec.Invalidate()

	require.ErrorIs(t, dec.AddInt32("y", 2), errs.ErrReadOnly)
	require.ErrorIs(t, dec.Delete("x"), errs.ErrReadOnly)
}

func TestContainer_ClosedHandle(t *testing.T) {
	m, err := NewMap()
	require.NoError(t, err)
	require.NoError(t, m.AddInt32("x", 1))
	require.NoError(t, m.Close())

	require.ErrorIs(t, m.AddInt32("y", 2), errs.ErrInvalidHandle)
	_, err = m.Get("x")
	require.ErrorIs(t, err, errs.ErrInvalidHandle)
	require.ErrorIs(t, m.Close(), errs.ErrInvalidHandle)
}

func TestContainer_InvalidateCascades(t *testing.T) {
	m, err := NewMap()
	require.NoError(t, err)

	sub, err := m.OpenSubMap("inner")
	require.NoError(t, err)

	m.Invalidate()

	require.ErrorIs(t, sub.AddInt32("x", 1), errs.ErrInvalidHandle)
}

func TestContainer_GrowsPastInitialBlock(t *testing.T) {
	s, err := NewStream()
	require.NoError(t, err)
	defer s.Invalidate()

	// Push well past the smallest quanta class.
	payload := make([]byte, 400)
	for i := 0; i < 16; i++ {
		require.NoError(t, s.AddByteArray(payload))
	}

	require.NoError(t, s.Rewind())
	n, err := s.Count()
	require.NoError(t, err)
	require.Equal(t, 16, n)

	enc, err := s.Encode()
	require.NoError(t, err)
	require.Equal(t, s.Size(), len(enc))
}

func TestContainer_FailedSubOpenLeavesParentIntact(t *testing.T) {
	// Budget covers the parent's block only, so opening a sub-container
	// fails at child allocation.
	p, err := alloc.NewPool(alloc.WithMaxMemory(uint64(alloc.QuantaSizes[0])))
	require.NoError(t, err)

	m, err := NewMap(WithPool(p))
	require.NoError(t, err)
	defer m.Invalidate()

	_, err = m.OpenSubMap("items")
	require.ErrorIs(t, err, errs.ErrOutOfMemory)

	// The failed open must not leave a dangling entry name behind: the
	// parent stays writable and its encoding stays well-formed.
	require.NoError(t, m.AddString("after", "x"))
	n, err := m.Count()
	require.NoError(t, err)
	require.Equal(t, 1, n)

	enc, err := m.Encode()
	require.NoError(t, err)

	d, err := DecodeMap(enc)
	require.NoError(t, err)
	defer d.Invalidate()
	v, err := d.GetString("after")
	require.NoError(t, err)
	require.Equal(t, "x", v)
	n, err = d.Count()
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestContainer_WithCapacity(t *testing.T) {
	p, err := alloc.NewPool()
	require.NoError(t, err)

	s, err := NewStream(WithPool(p), WithCapacity(10_000))
	require.NoError(t, err)
	defer s.Invalidate()

	// The hint pre-sizes the backing block, so filling within it never
	// reallocates.
	payload := make([]byte, 400)
	for i := 0; i < 16; i++ {
		require.NoError(t, s.AddByteArray(payload))
	}
	require.Equal(t, uint64(0), p.Stats().ReallocCount)

	_, err = NewStream(WithCapacity(-1))
	require.ErrorIs(t, err, errs.ErrInsufficientSpace)
}

func TestDecodeContainer_Corrupt(t *testing.T) {
	m, err := NewMap()
	require.NoError(t, err)
	enc, err := m.Encode()
	require.NoError(t, err)
	m.Invalidate()

	t.Run("wrong variant tag", func(t *testing.T) {
		_, err := DecodeStream(enc)
		require.ErrorIs(t, err, errs.ErrCorruptEncoding)
	})
	t.Run("truncated", func(t *testing.T) {
		_, err := DecodeMap(enc[:3])
		require.ErrorIs(t, err, errs.ErrCorruptEncoding)
	})
	t.Run("length mismatch", func(t *testing.T) {
		_, err := DecodeMap(append(append([]byte(nil), enc...), 0x00))
		require.ErrorIs(t, err, errs.ErrCorruptEncoding)
	})
}

func TestMap_FieldEmbedsIntoOtherContainer(t *testing.T) {
	inner, err := NewMap()
	require.NoError(t, err)
	require.NoError(t, inner.AddString("k", "v"))
	f, err := inner.Field()
	require.NoError(t, err)
	inner.Invalidate()

	outer, err := NewStream()
	require.NoError(t, err)
	defer outer.Invalidate()
	require.NoError(t, outer.AddField(f))

	enc, err := outer.Encode()
	require.NoError(t, err)

	dec, err := DecodeStream(enc)
	require.NoError(t, err)
	defer dec.Invalidate()
	m2, err := dec.NextMap()
	require.NoError(t, err)
	v, err := m2.GetString("k")
	require.NoError(t, err)
	require.Equal(t, "v", v)
}
