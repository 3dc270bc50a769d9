package enclosed

import "fmt"

// ------------------------------------------------------------------------------
// Splitter
// ------------------------------------------------------------------------------

// Split decodes s with the Default format.
func Split(s string) Tuple { return Default.Split(s) }

// Parse decodes s with the Default format.
func Parse(s string) (Tuple, error) { return Default.Parse(s) }

// Split returns every element of s in order. The null container yields a nil
// Tuple, "" yields an empty Tuple. Malformed input yields an empty Tuple; use
// Parse to tell it apart.
func (f Format) Split(s string) Tuple {
	t, _ := f.split(s)
	return t
}

// Parse is Split that reports malformed input as ErrMalformed.
func (f Format) Parse(s string) (Tuple, error) {
	t, n := f.split(s)
	if n == Malformed {
		return nil, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	return t, nil
}

func (f Format) split(s string) (Tuple, int) {
	if f.ReflectsNull(s) {
		return nil, 0
	}
	t := Tuple{}
	n := f.ForEach(s, func(_ int, e Element) bool {
		t = append(t, e)
		return false
	})
	return t, n
}
