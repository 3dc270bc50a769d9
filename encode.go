package enclosed

import (
	"fmt"
	"unicode/utf8"
)

// ------------------------------------------------------------------------------
// Encoder
// ------------------------------------------------------------------------------

// Append appends e to dst using the Default format.
func Append(dst []byte, e Element) []byte { return Default.Append(dst, e) }

// Append appends one element to dst and returns the extended buffer. An empty
// dst first receives the opening separator, so dst must either be empty or
// hold the output of earlier Append calls.
func (f Format) Append(dst []byte, e Element) []byte {
	sep, esc := f.runes()
	if len(dst) == 0 {
		dst = utf8.AppendRune(dst, sep)
	}
	if !e.valid {
		dst = utf8.AppendRune(dst, esc)
		dst = append(dst, nullMarker)
		return utf8.AppendRune(dst, sep)
	}
	s := e.s
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == esc || r == sep {
			dst = utf8.AppendRune(dst, esc)
		}
		// raw bytes keep invalid UTF-8 intact
		dst = append(dst, s[i:i+size]...)
		// separators are escaped on both sides: "Mambo#Five" => "#Mambo\#\Five#"
		if r == sep {
			dst = utf8.AppendRune(dst, esc)
		}
		i += size
	}
	return utf8.AppendRune(dst, sep)
}

// Encode renders t using the Default format.
func Encode(t Tuple) (string, error) { return Default.Encode(t) }

// Encode renders t as an enclosed tuple. An empty Tuple yields "". A nil Tuple
// yields the null representation when AllowNull is set and ErrNullTuple
// otherwise.
func (f Format) Encode(t Tuple) (string, error) {
	if t == nil {
		if !f.AllowNull {
			return "", fmt.Errorf("%w: %w", ErrInvalidArgument, ErrNullTuple)
		}
		return f.nullRepresentation(), nil
	}
	if len(t) == 0 {
		return "", nil
	}
	size := 1
	for _, e := range t {
		size += len(e.s) + 1
	}
	buf := make([]byte, 0, size+size/4)
	for _, e := range t {
		buf = f.Append(buf, e)
	}
	return string(buf), nil
}

// EncodeStrings encodes non-null values with the Default format.
func EncodeStrings(values ...string) string {
	s, _ := Default.Encode(Strings(values...))
	return s
}

// AppendMany appends every value of values to dst, rendered by format.
// A nil format uses fmt.Sprint.
func AppendMany[T any](f Format, dst []byte, values []T, format func(T) string) []byte {
	if format == nil {
		format = func(v T) string { return fmt.Sprint(v) }
	}
	for _, v := range values {
		dst = f.Append(dst, Of(format(v)))
	}
	return dst
}

// EncodeValues is AppendMany into a fresh buffer, with the nil handling of
// Format.Encode.
func EncodeValues[T any](f Format, values []T, format func(T) string) (string, error) {
	if values == nil {
		return f.Encode(nil)
	}
	return string(AppendMany(f, nil, values, format)), nil
}
