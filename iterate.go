package enclosed

import (
	"iter"
	"unicode/utf8"
)

// ------------------------------------------------------------------------------
// Element iterator
// ------------------------------------------------------------------------------

// ForEach walks s with the Default format.
func ForEach(s string, fn func(index int, e Element) (stop bool)) int {
	return Default.ForEach(s, fn)
}

// Count returns the number of elements of s, or Malformed.
func Count(s string) int { return Default.ForEach(s, nil) }

// ForEach decodes s element by element and calls fn for each of them in
// order. When fn returns true the walk stops and ForEach returns the number
// of elements handed out so far. Otherwise it returns the number of elements
// in s: 0 for "" and for the null container, Malformed for malformed input.
// A nil fn only counts.
func (f Format) ForEach(s string, fn func(index int, e Element) (stop bool)) int {
	sep, esc := f.runes()
	switch classify(s, sep, esc) {
	case shapeEmpty, shapeNull:
		return 0
	case shapeMalformed:
		return Malformed
	}

	var (
		state   = stateNormal
		index   = -1
		nulled  bool
		collect = fn != nil
		buf     []byte
		escRaw  = string(esc)
	)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		raw := s[i : i+size]
		i += size

		if state == stateTrailingEscape {
			state = stateNormal
			if r == esc {
				continue
			}
		}

		switch {
		case state == stateEscape:
			state = stateNormal
			if r == nullMarker {
				// the whole element is null, whatever came before
				nulled = true
				buf = buf[:0]
				continue
			}
			if r == sep {
				state = stateTrailingEscape
			}
			if !collect || nulled {
				continue
			}
			if r != sep && r != esc {
				buf = append(buf, escRaw...)
			}
			buf = append(buf, raw...)

		case r == esc:
			state = stateEscape

		case r == sep:
			if index >= 0 && collect {
				e := Null()
				if !nulled {
					e = Of(string(buf))
				}
				if fn(index, e) {
					return index + 1
				}
			}
			index++
			nulled = false
			buf = buf[:0]

		default:
			if collect && !nulled {
				buf = append(buf, raw...)
			}
		}
	}
	return index
}

// All returns the elements of s as a sequence, using the Default format.
func All(s string) iter.Seq2[int, Element] { return Default.All(s) }

// All returns an iterator over the decoded elements of s. Breaking out of
// the range loop stops the scan. Malformed input yields nothing.
func (f Format) All(s string) iter.Seq2[int, Element] {
	return func(yield func(int, Element) bool) {
		f.ForEach(s, func(index int, e Element) bool {
			return !yield(index, e)
		})
	}
}
