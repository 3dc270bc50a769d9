// Package frame wraps an encoded tuple payload in a checksummed binary
// frame, optionally compressed with zstd.
//
// Layout (little endian):
//
//	[0:2]  magic "ET"
//	[2]    frame type
//	[3:7]  total frame length, CRC included
//	[7]    flags
//	uvarint element count
//	payload (zstd compressed when FlagZstd is set)
//	[n-4:] CRC32 (IEEE) of bytes [2:n-4]
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

const (
	TypeTuple byte = 0x01

	FlagZstd byte = 0x01

	headerSize = 8
	crcSize    = 4
	// MaxSize bounds both the encoded frame and its decompressed payload.
	MaxSize = 64 << 20
)

var magic = [2]byte{'E', 'T'}

var (
	ErrShortFrame     = errors.New("frame: buffer too short")
	ErrBadMagic       = errors.New("frame: bad magic")
	ErrUnknownType    = errors.New("frame: unknown frame type")
	ErrLengthMismatch = errors.New("frame: length mismatch")
	ErrChecksum       = errors.New("frame: crc mismatch")
	ErrTooLarge       = errors.New("frame: frame too large")
)

// Frame is a decoded frame. Payload is decompressed.
type Frame struct {
	Flags   byte
	Count   uint64
	Payload []byte
}

// EncodeAll/DecodeAll are safe for concurrent use, one coder pair serves all frames.
var (
	zstdEncoder = sync.OnceValues(func() (*zstd.Encoder, error) {
		return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	})
	zstdDecoder = sync.OnceValues(func() (*zstd.Decoder, error) {
		return zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(0),
			zstd.WithDecoderMaxMemory(MaxSize),
		)
	})
)

// Append appends a frame holding payload to dst.
func Append(dst []byte, count uint64, payload []byte, flags byte) ([]byte, error) {
	if len(payload) > MaxSize {
		return nil, fmt.Errorf("%w: payload of %d bytes", ErrTooLarge, len(payload))
	}
	return appendFrame(dst, count, payload, flags)
}

func appendFrame(dst []byte, count uint64, payload []byte, flags byte) ([]byte, error) {
	start := len(dst)
	dst = append(dst, magic[0], magic[1], TypeTuple)
	dst = binary.LittleEndian.AppendUint32(dst, 0) // length placeholder
	dst = append(dst, flags)
	dst = binary.AppendUvarint(dst, count)

	if flags&FlagZstd != 0 {
		enc, err := zstdEncoder()
		if err != nil {
			return nil, fmt.Errorf("frame: zstd encoder: %w", err)
		}
		dst = enc.EncodeAll(payload, dst)
	} else {
		dst = append(dst, payload...)
	}

	total := len(dst) - start + crcSize
	if total > MaxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, total)
	}
	binary.LittleEndian.PutUint32(dst[start+3:], uint32(total))
	crc := crc32.ChecksumIEEE(dst[start+2:])
	return binary.LittleEndian.AppendUint32(dst, crc), nil
}

// Decode parses exactly one frame.
func Decode(data []byte) (Frame, error) {
	if len(data) < headerSize+crcSize {
		return Frame{}, ErrShortFrame
	}
	if data[0] != magic[0] || data[1] != magic[1] {
		return Frame{}, ErrBadMagic
	}
	if data[2] != TypeTuple {
		return Frame{}, fmt.Errorf("%w: 0x%02x", ErrUnknownType, data[2])
	}
	if length := binary.LittleEndian.Uint32(data[3:]); int(length) != len(data) {
		return Frame{}, fmt.Errorf("%w: header says %d, got %d", ErrLengthMismatch, length, len(data))
	}
	end := len(data) - crcSize
	if crc32.ChecksumIEEE(data[2:end]) != binary.LittleEndian.Uint32(data[end:]) {
		return Frame{}, ErrChecksum
	}

	f := Frame{Flags: data[7]}
	count, n := binary.Uvarint(data[headerSize:end])
	if n <= 0 {
		return Frame{}, fmt.Errorf("%w: element count", ErrShortFrame)
	}
	f.Count = count
	body := data[headerSize+n : end]

	if f.Flags&FlagZstd == 0 {
		f.Payload = body
		return f, nil
	}
	dec, err := zstdDecoder()
	if err != nil {
		return Frame{}, fmt.Errorf("frame: zstd decoder: %w", err)
	}
	f.Payload, err = dec.DecodeAll(body, nil)
	if errors.Is(err, zstd.ErrDecoderSizeExceeded) || len(f.Payload) > MaxSize {
		return Frame{}, fmt.Errorf("%w: decompressed payload exceeds %d bytes", ErrTooLarge, MaxSize)
	}
	if err != nil {
		return Frame{}, fmt.Errorf("frame: zstd: %w", err)
	}
	return f, nil
}

// Next decodes the first frame of data and returns the bytes after it.
func Next(data []byte) (Frame, []byte, error) {
	if len(data) < headerSize {
		return Frame{}, data, ErrShortFrame
	}
	length := int(binary.LittleEndian.Uint32(data[3:]))
	if length < headerSize+crcSize || length > len(data) {
		return Frame{}, data, fmt.Errorf("%w: header says %d, have %d", ErrLengthMismatch, length, len(data))
	}
	f, err := Decode(data[:length])
	if err != nil {
		return Frame{}, data, err
	}
	return f, data[length:], nil
}

// ReadFrom reads one raw frame from r. It returns io.EOF when r is
// exhausted before the first byte.
func ReadFrom(r io.Reader) ([]byte, error) {
	var head [headerSize]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrShortFrame
		}
		return nil, err
	}
	if head[0] != magic[0] || head[1] != magic[1] {
		return nil, ErrBadMagic
	}
	length := int(binary.LittleEndian.Uint32(head[3:]))
	if length > MaxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, length)
	}
	if length < headerSize+crcSize {
		return nil, fmt.Errorf("%w: header says %d", ErrLengthMismatch, length)
	}
	buf := make([]byte, length)
	copy(buf, head[:])
	if _, err := io.ReadFull(r, buf[headerSize:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShortFrame, err)
	}
	return buf, nil
}
