package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gosmf/smf/errs"
	"github.com/gosmf/smf/format"
)

func TestMessageFlag_Defaults(t *testing.T) {
	f := NewMessageFlag()

	require.Equal(t, uint16(MagicMessageV1Opt), f.GetMagicNumber())
	require.Equal(t, format.PayloadNone, f.PayloadKind())
	require.Equal(t, format.CompressionNone, f.Compression())
	require.Equal(t, uint8(FormatVersion), f.Version)
	require.NoError(t, f.Validate())
}

func TestMessageFlag_PayloadKindRoundTrip(t *testing.T) {
	kinds := []format.PayloadKind{
		format.PayloadNone, format.PayloadBytes, format.PayloadString,
		format.PayloadMap, format.PayloadStream,
	}

	f := NewMessageFlag()
	for _, k := range kinds {
		f.SetPayloadKind(k)
		require.Equal(t, k, f.PayloadKind())
		require.Equal(t, uint16(MagicMessageV1Opt), f.GetMagicNumber(), "kind bits must not leak into magic")
		require.NoError(t, f.Validate())
	}
}

func TestMessageFlag_Validate(t *testing.T) {
	t.Run("bad magic", func(t *testing.T) {
		f := NewMessageFlag()
		f.Options = 0x1230
		require.ErrorIs(t, f.Validate(), errs.ErrCorruptEncoding)
	})
	t.Run("bad version", func(t *testing.T) {
		f := NewMessageFlag()
		f.Version = 9
		require.ErrorIs(t, f.Validate(), errs.ErrCorruptEncoding)
	})
	t.Run("bad compression", func(t *testing.T) {
		f := NewMessageFlag()
		f.CompressionType = 0xEE
		require.ErrorIs(t, f.Validate(), errs.ErrCorruptEncoding)
	})
}

func TestMessageHeader_RoundTrip(t *testing.T) {
	h := NewMessageHeader()
	h.Flag.SetPayloadKind(format.PayloadMap)
	h.Flag.SetCompression(format.CompressionZstd)
	h.PayloadOffset = 40
	h.TotalLength = 100

	data := h.Bytes()
	require.Len(t, data, HeaderSize)

	parsed, err := ParseMessageHeader(data)
	require.NoError(t, err)
	require.Equal(t, *h, parsed)
}

func TestMessageHeader_OptionsLittleEndian(t *testing.T) {
	h := NewMessageHeader()
	h.TotalLength = HeaderSize

	data := h.Bytes()
	// Low byte first for the options word.
	require.Equal(t, byte(MagicMessageV1Opt&0xFF), data[0])
	require.Equal(t, byte(MagicMessageV1Opt>>8), data[1])
}

func TestMessageHeader_LengthsNetworkOrder(t *testing.T) {
	h := NewMessageHeader()
	h.TotalLength = 0x01020304
	h.PayloadOffset = 0x01020304 // parse requires offset <= total

	data := h.Bytes()
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, data[4:8])
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, data[8:12])
}

func TestMessageHeader_ParseErrors(t *testing.T) {
	t.Run("truncated", func(t *testing.T) {
		_, err := ParseMessageHeader(make([]byte, HeaderSize-1))
		require.ErrorIs(t, err, errs.ErrCorruptEncoding)
	})
	t.Run("offset beyond total", func(t *testing.T) {
		h := NewMessageHeader()
		h.TotalLength = HeaderSize
		h.PayloadOffset = HeaderSize + 1
		_, err := ParseMessageHeader(h.Bytes())
		require.ErrorIs(t, err, errs.ErrCorruptEncoding)
	})
	t.Run("offset below header", func(t *testing.T) {
		h := NewMessageHeader()
		h.TotalLength = 100
		h.PayloadOffset = HeaderSize - 1
		_, err := ParseMessageHeader(h.Bytes())
		require.ErrorIs(t, err, errs.ErrCorruptEncoding)
	})
	t.Run("garbage", func(t *testing.T) {
		_, err := ParseMessageHeader(make([]byte, HeaderSize))
		require.ErrorIs(t, err, errs.ErrCorruptEncoding)
	})
}

func TestParam_RoundTrip(t *testing.T) {
	value := []byte("correlation-77")
	enc := AppendParam(nil, ParamCorrelationID, value)
	require.Len(t, enc, ParamHeaderSize+len(value))

	p, consumed, err := DecodeParam(enc)
	require.NoError(t, err)
	require.Equal(t, len(enc), consumed)
	require.Equal(t, ParamCorrelationID, p.ID)
	require.Equal(t, value, p.Value)
}

func TestParam_EmptyValue(t *testing.T) {
	enc := AppendParam(nil, ParamSenderID, nil)

	p, consumed, err := DecodeParam(enc)
	require.NoError(t, err)
	require.Equal(t, ParamHeaderSize, consumed)
	require.Empty(t, p.Value)
}

func TestParam_Sequence(t *testing.T) {
	enc := AppendParam(nil, ParamPriority, []byte{4})
	enc = AppendParam(enc, ParamSenderID, []byte("svc-a"))

	p1, n1, err := DecodeParam(enc)
	require.NoError(t, err)
	require.Equal(t, ParamPriority, p1.ID)

	p2, n2, err := DecodeParam(enc[n1:])
	require.NoError(t, err)
	require.Equal(t, ParamSenderID, p2.ID)
	require.Equal(t, []byte("svc-a"), p2.Value)
	require.Equal(t, len(enc), n1+n2)
}

func TestParam_DecodeErrors(t *testing.T) {
	t.Run("truncated header", func(t *testing.T) {
		_, _, err := DecodeParam([]byte{0x01, 0x00})
		require.ErrorIs(t, err, errs.ErrCorruptEncoding)
	})
	t.Run("declared length beyond input", func(t *testing.T) {
		_, _, err := DecodeParam([]byte{0x01, 0x00, 0x00, 0x00, 0x05, 0xAA})
		require.ErrorIs(t, err, errs.ErrCorruptEncoding)
	})
}
