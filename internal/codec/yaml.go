package codec

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/enclosed"
)

// YAML encodes a tuple as a sequence of strings and nulls.
type YAML struct{}

func (YAML) Marshal(t enclosed.Tuple) ([]byte, error) {
	return yaml.Marshal(t)
}

func (YAML) Unmarshal(data []byte) (enclosed.Tuple, error) {
	var t enclosed.Tuple
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return t, nil
}

func (YAML) Name() string { return "yaml" }

// NewEncoder writes one YAML document per tuple.
func (YAML) NewEncoder(w io.Writer) Encoder {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return yamlEncoder{enc}
}

func (YAML) NewDecoder(r io.Reader) Decoder {
	return yamlDecoder{yaml.NewDecoder(r)}
}

type yamlEncoder struct{ enc *yaml.Encoder }

func (e yamlEncoder) Encode(t enclosed.Tuple) error { return e.enc.Encode(t) }
func (e yamlEncoder) Close() error                  { return e.enc.Close() }

type yamlDecoder struct{ dec *yaml.Decoder }

func (d yamlDecoder) Decode() (enclosed.Tuple, error) {
	var t enclosed.Tuple
	if err := d.dec.Decode(&t); err != nil {
		return nil, err
	}
	return t, nil
}
