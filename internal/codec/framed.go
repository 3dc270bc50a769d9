package codec

import (
	"bufio"
	"fmt"
	"io"

	"github.com/rawbytedev/enclosed"
	"github.com/rawbytedev/enclosed/internal/frame"
)

// Framed wraps the output of Inner in a checksummed binary frame that
// records the element count. A nil Inner means Enclosed with the default
// format.
type Framed struct {
	Inner    Codec
	Compress bool
}

func (c Framed) inner() Codec {
	if c.Inner == nil {
		return Enclosed{}
	}
	return c.Inner
}

func (c Framed) Marshal(t enclosed.Tuple) ([]byte, error) {
	return c.append(nil, t)
}

func (c Framed) append(dst []byte, t enclosed.Tuple) ([]byte, error) {
	payload, err := c.inner().Marshal(t)
	if err != nil {
		return nil, err
	}
	var flags byte
	if c.Compress {
		flags |= frame.FlagZstd
	}
	return frame.Append(dst, uint64(len(t)), payload, flags)
}

func (c Framed) Unmarshal(data []byte) (enclosed.Tuple, error) {
	f, err := frame.Decode(data)
	if err != nil {
		return nil, err
	}
	return c.open(f)
}

func (c Framed) open(f frame.Frame) (enclosed.Tuple, error) {
	t, err := c.inner().Unmarshal(f.Payload)
	if err != nil {
		return nil, err
	}
	if uint64(len(t)) != f.Count {
		return nil, fmt.Errorf("%w: header %d, payload %d", ErrCountMismatch, f.Count, len(t))
	}
	return t, nil
}

func (Framed) Name() string { return "frame" }

// NewEncoder writes frames back to back.
func (c Framed) NewEncoder(w io.Writer) Encoder {
	return &frameEncoder{c: c, w: bufio.NewWriter(w)}
}

func (c Framed) NewDecoder(r io.Reader) Decoder {
	return frameDecoder{c: c, r: bufio.NewReader(r)}
}

type frameEncoder struct {
	c   Framed
	w   *bufio.Writer
	buf []byte
}

func (e *frameEncoder) Encode(t enclosed.Tuple) error {
	b, err := e.c.append(e.buf[:0], t)
	if err != nil {
		return err
	}
	e.buf = b
	_, err = e.w.Write(b)
	return err
}

func (e *frameEncoder) Close() error { return e.w.Flush() }

type frameDecoder struct {
	c Framed
	r io.Reader
}

func (d frameDecoder) Decode() (enclosed.Tuple, error) {
	raw, err := frame.ReadFrom(d.r)
	if err != nil {
		return nil, err
	}
	f, err := frame.Decode(raw)
	if err != nil {
		return nil, err
	}
	return d.c.open(f)
}
