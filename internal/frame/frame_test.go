package frame

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	payload := []byte(`#Foo#Bar#\0#`)
	for _, flags := range []byte{0, FlagZstd} {
		data, err := Append(nil, 3, payload, flags)
		require.NoError(t, err)

		f, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, flags, f.Flags)
		assert.Equal(t, uint64(3), f.Count)
		assert.Equal(t, payload, f.Payload)
	}
}

func TestCompressionShrinksRepetitivePayload(t *testing.T) {
	payload := []byte(strings.Repeat("#azerty", 500) + "#")
	raw, err := Append(nil, 500, payload, 0)
	require.NoError(t, err)
	packed, err := Append(nil, 500, payload, FlagZstd)
	require.NoError(t, err)
	assert.Less(t, len(packed), len(raw))

	f, err := Decode(packed)
	require.NoError(t, err)
	assert.Equal(t, payload, f.Payload)
}

func TestDecodeErrors(t *testing.T) {
	data, err := Append(nil, 1, []byte("#a#"), 0)
	require.NoError(t, err)

	_, err = Decode(data[:5])
	assert.ErrorIs(t, err, ErrShortFrame)

	bad := bytes.Clone(data)
	bad[0] = 'X'
	_, err = Decode(bad)
	assert.ErrorIs(t, err, ErrBadMagic)

	bad = bytes.Clone(data)
	bad[2] = 0x7f
	_, err = Decode(bad)
	assert.ErrorIs(t, err, ErrUnknownType)

	bad = bytes.Clone(data)
	bad[len(bad)-6] ^= 0xff
	_, err = Decode(bad)
	assert.ErrorIs(t, err, ErrChecksum)

	_, err = Decode(append(bytes.Clone(data), 0))
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestDecompressedSizeIsBounded(t *testing.T) {
	payload := make([]byte, MaxSize+1)
	_, err := Append(nil, 1, payload, FlagZstd)
	assert.ErrorIs(t, err, ErrTooLarge)

	// zeros compress to a few KiB, well under MaxSize on the wire
	data, err := appendFrame(nil, 1, payload, FlagZstd)
	require.NoError(t, err)
	require.Less(t, len(data), 1<<20)

	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrTooLarge)

	raw, err := ReadFrom(bytes.NewReader(data))
	require.NoError(t, err)
	_, err = Decode(raw)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestNextAndReadFrom(t *testing.T) {
	var stream []byte
	var err error
	for _, p := range []string{"#a#", "#b#c#", ""} {
		stream, err = Append(stream, 0, []byte(p), FlagZstd)
		require.NoError(t, err)
	}

	var got []string
	rest := stream
	for len(rest) > 0 {
		var f Frame
		f, rest, err = Next(rest)
		require.NoError(t, err)
		got = append(got, string(f.Payload))
	}
	assert.Equal(t, []string{"#a#", "#b#c#", ""}, got)

	r := bytes.NewReader(stream)
	for i := 0; i < 3; i++ {
		raw, err := ReadFrom(r)
		require.NoError(t, err)
		_, err = Decode(raw)
		require.NoError(t, err)
	}
	_, err = ReadFrom(r)
	assert.ErrorIs(t, err, io.EOF)
}
