package enclosed

import "fmt"

const (
	DefaultSeparator = '#'
	DefaultEscape    = '\\'
	nullMarker       = '0'
)

// Format holds the separator/escape pair and the null handling of Encode.
// The zero value behaves like Default. Separator and Escape must differ;
// results are unspecified otherwise (NewFormat and Validate reject it).
type Format struct {
	Separator rune
	Escape    rune
	// AllowNull makes Encode return NullRepresentation for a nil Tuple
	// instead of failing with ErrNullTuple.
	AllowNull bool
	// NullRepresentation defaults to Escape followed by '0'.
	NullRepresentation string
}

// Default is the '#' / '\' format.
var Default = Format{Separator: DefaultSeparator, Escape: DefaultEscape}

type Option func(*Format) error

func WithSeparator(r rune) Option {
	return func(f *Format) error {
		f.Separator = r
		return nil
	}
}

func WithEscape(r rune) Option {
	return func(f *Format) error {
		f.Escape = r
		return nil
	}
}

// WithAllowNull lets Encode render a nil Tuple as the null representation.
func WithAllowNull() Option {
	return func(f *Format) error {
		f.AllowNull = true
		return nil
	}
}

// WithNullRepresentation sets the string Encode emits for a nil Tuple and
// implies WithAllowNull.
func WithNullRepresentation(s string) Option {
	return func(f *Format) error {
		f.AllowNull = true
		f.NullRepresentation = s
		return nil
	}
}

// NewFormat applies opts on top of Default and validates the result.
func NewFormat(opts ...Option) (Format, error) {
	f := Default
	for _, opt := range opts {
		if err := opt(&f); err != nil {
			return Format{}, err
		}
	}
	if err := f.Validate(); err != nil {
		return Format{}, err
	}
	return f, nil
}

func (f Format) Validate() error {
	sep, esc := f.runes()
	if sep == esc {
		return fmt.Errorf("%w: separator and escape are both %q", ErrInvalidFormat, sep)
	}
	if sep == nullMarker || esc == nullMarker {
		return fmt.Errorf("%w: %q is reserved for the null marker", ErrInvalidFormat, nullMarker)
	}
	return nil
}

func (f Format) runes() (sep, esc rune) {
	sep, esc = f.Separator, f.Escape
	if sep == 0 {
		sep = DefaultSeparator
	}
	if esc == 0 {
		esc = DefaultEscape
	}
	return sep, esc
}

func (f Format) nullRepresentation() string {
	if f.NullRepresentation != "" {
		return f.NullRepresentation
	}
	_, esc := f.runes()
	return string([]rune{esc, nullMarker})
}
