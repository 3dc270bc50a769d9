package codec

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/rawbytedev/enclosed"
	"github.com/rawbytedev/enclosed/internal/frame"
)

// Enclosed is the native text codec. Nil tuples are always encodable and
// a custom NullRepresentation is recognized on the way back.
type Enclosed struct {
	Format enclosed.Format
}

func (c Enclosed) Marshal(t enclosed.Tuple) ([]byte, error) {
	f := c.Format
	f.AllowNull = true
	s, err := f.Encode(t)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (c Enclosed) Unmarshal(data []byte) (enclosed.Tuple, error) {
	s := string(data)
	if rep := c.Format.NullRepresentation; rep != "" && s == rep {
		return nil, nil
	}
	return c.Format.Parse(s)
}

func (Enclosed) Name() string { return "enclosed" }

// NewEncoder writes one encoded tuple per line. Elements holding a
// newline cannot be represented and fail with ErrNewline.
func (c Enclosed) NewEncoder(w io.Writer) Encoder {
	return &lineEncoder{c: c, w: bufio.NewWriter(w)}
}

// NewDecoder reads one encoded tuple per line. A trailing "\r" is dropped.
func (c Enclosed) NewDecoder(r io.Reader) Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), frame.MaxSize)
	return &lineDecoder{c: c, sc: sc}
}

type lineEncoder struct {
	c Enclosed
	w *bufio.Writer
}

func (e *lineEncoder) Encode(t enclosed.Tuple) error {
	b, err := e.c.Marshal(t)
	if err != nil {
		return err
	}
	if bytes.IndexByte(b, '\n') >= 0 {
		return ErrNewline
	}
	b = append(b, '\n')
	_, err = e.w.Write(b)
	return err
}

func (e *lineEncoder) Close() error { return e.w.Flush() }

type lineDecoder struct {
	c    Enclosed
	sc   *bufio.Scanner
	line int
}

func (d *lineDecoder) Decode() (enclosed.Tuple, error) {
	if !d.sc.Scan() {
		if err := d.sc.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	d.line++
	t, err := d.c.Unmarshal(bytes.TrimSuffix(d.sc.Bytes(), []byte{'\r'}))
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", d.line, err)
	}
	return t, nil
}
