package codec

import (
	"encoding/json"
	"io"

	"github.com/rawbytedev/enclosed"
)

// JSON encodes a tuple as an array of strings and nulls; a nil tuple is
// the JSON null.
type JSON struct{}

func (JSON) Marshal(t enclosed.Tuple) ([]byte, error) {
	return json.Marshal(t)
}

func (JSON) Unmarshal(data []byte) (enclosed.Tuple, error) {
	var t enclosed.Tuple
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return t, nil
}

func (JSON) Name() string { return "json" }

// NewEncoder writes one JSON value per line.
func (JSON) NewEncoder(w io.Writer) Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return jsonEncoder{enc}
}

func (JSON) NewDecoder(r io.Reader) Decoder {
	return jsonDecoder{json.NewDecoder(r)}
}

type jsonEncoder struct{ enc *json.Encoder }

func (e jsonEncoder) Encode(t enclosed.Tuple) error { return e.enc.Encode(t) }
func (jsonEncoder) Close() error                    { return nil }

type jsonDecoder struct{ dec *json.Decoder }

func (d jsonDecoder) Decode() (enclosed.Tuple, error) {
	var t enclosed.Tuple
	if err := d.dec.Decode(&t); err != nil {
		return nil, err
	}
	return t, nil
}
