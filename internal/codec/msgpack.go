package codec

import (
	"errors"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/rawbytedev/enclosed"
)

// MsgPack encodes a tuple as a MessagePack array of str and nil.
type MsgPack struct{}

func (MsgPack) Marshal(t enclosed.Tuple) ([]byte, error) {
	return msgpack.Marshal(t.Ptrs())
}

func (MsgPack) Unmarshal(data []byte) (enclosed.Tuple, error) {
	var ptrs []*string
	if err := msgpack.Unmarshal(data, &ptrs); err != nil {
		return nil, err
	}
	return enclosed.Ptrs(ptrs), nil
}

func (MsgPack) Name() string { return "msgpack" }

func (MsgPack) NewEncoder(w io.Writer) Encoder {
	return msgpackEncoder{msgpack.NewEncoder(w)}
}

func (MsgPack) NewDecoder(r io.Reader) Decoder {
	return msgpackDecoder{msgpack.NewDecoder(r)}
}

type msgpackEncoder struct{ enc *msgpack.Encoder }

func (e msgpackEncoder) Encode(t enclosed.Tuple) error { return e.enc.Encode(t.Ptrs()) }
func (msgpackEncoder) Close() error                    { return nil }

type msgpackDecoder struct{ dec *msgpack.Decoder }

func (d msgpackDecoder) Decode() (enclosed.Tuple, error) {
	var ptrs []*string
	if err := d.dec.Decode(&ptrs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	return enclosed.Ptrs(ptrs), nil
}
