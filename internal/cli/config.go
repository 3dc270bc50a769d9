package cli

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/enclosed"
)

var ErrConfig = errors.New("invalid configuration")

// Config is the file form of the command line. Flags given explicitly
// override values loaded from the file.
type Config struct {
	From      string `yaml:"from"`
	To        string `yaml:"to"`
	Separator string `yaml:"separator"`
	Escape    string `yaml:"escape"`
	Null      string `yaml:"null"`
	Template  string `yaml:"template"`
	Workers   int    `yaml:"workers"`
	Zstd      bool   `yaml:"zstd"`
	Verbose   bool   `yaml:"verbose"`
}

func defaultConfig() Config {
	return Config{
		From:      "enclosed",
		To:        "enclosed",
		Separator: string(enclosed.DefaultSeparator),
		Escape:    string(enclosed.DefaultEscape),
		Workers:   1,
	}
}

// LoadConfig reads a YAML config file over the defaults. Unknown keys are
// rejected.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
	}
	return cfg, nil
}

// Format builds the tuple format described by c.
func (c Config) Format() (enclosed.Format, error) {
	sep, err := singleRune("separator", c.Separator)
	if err != nil {
		return enclosed.Format{}, err
	}
	esc, err := singleRune("escape", c.Escape)
	if err != nil {
		return enclosed.Format{}, err
	}
	opts := []enclosed.Option{enclosed.WithSeparator(sep), enclosed.WithEscape(esc)}
	if c.Null != "" {
		opts = append(opts, enclosed.WithNullRepresentation(c.Null))
	}
	f, err := enclosed.NewFormat(opts...)
	if err != nil {
		return enclosed.Format{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return f, nil
}

func singleRune(name, s string) (rune, error) {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 || n != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("%w: %s must be a single character, got %q", ErrConfig, name, s)
	}
	return r, nil
}
