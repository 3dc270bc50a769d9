// Package codec converts tuples to and from the wire formats tuplecat
// speaks: the enclosed text form, JSON, YAML, MessagePack and the binary
// frame.
package codec

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/rawbytedev/enclosed"
)

var (
	ErrUnknownCodec  = errors.New("codec: unknown codec")
	ErrCountMismatch = errors.New("codec: element count mismatch")
	ErrNewline       = errors.New("codec: element contains a newline")
)

// Codec encodes and decodes tuples.
type Codec interface {
	// Marshal serializes t. A nil Tuple is encoded as the format's null.
	Marshal(t enclosed.Tuple) ([]byte, error)
	// Unmarshal deserializes one tuple from data.
	Unmarshal(data []byte) (enclosed.Tuple, error)
	// Name returns the codec identifier used in flags and diagnostics.
	Name() string
	// NewEncoder returns a writer of consecutive tuples.
	NewEncoder(w io.Writer) Encoder
	// NewDecoder returns a reader of consecutive tuples.
	NewDecoder(r io.Reader) Decoder
}

// Encoder writes a stream of tuples. Close flushes buffered output.
type Encoder interface {
	Encode(t enclosed.Tuple) error
	Close() error
}

// Decoder reads a stream of tuples and returns io.EOF after the last one.
type Decoder interface {
	Decode() (enclosed.Tuple, error)
}

var names = map[string]func(f enclosed.Format, compress bool) Codec{
	"enclosed": func(f enclosed.Format, _ bool) Codec { return Enclosed{Format: f} },
	"json":     func(enclosed.Format, bool) Codec { return JSON{} },
	"yaml":     func(enclosed.Format, bool) Codec { return YAML{} },
	"msgpack":  func(enclosed.Format, bool) Codec { return MsgPack{} },
	"frame": func(f enclosed.Format, compress bool) Codec {
		return Framed{Inner: Enclosed{Format: f}, Compress: compress}
	},
}

// ByName returns the codec registered under name. f configures the
// enclosed codec, compress applies to the frame codec.
func ByName(name string, f enclosed.Format, compress bool) (Codec, error) {
	mk, ok := names[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	return mk(f, compress), nil
}

// Names lists the registered codec names, sorted.
func Names() []string {
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
