package enclosed

import (
	"strings"
	"unicode/utf8"
)

// scanState is the escape look-ahead shared by IndexOf and ForEach.
type scanState uint8

const (
	stateNormal scanState = iota
	// stateEscape: the previous rune was an unconsumed escape.
	stateEscape
	// stateTrailingEscape: an escaped separator was consumed and its trailing
	// escape partner is expected next. When the partner is missing
	// ("#Backslash\#AfterHashtagIsMissing#") the rune is processed as if the
	// partner had been there.
	stateTrailingEscape
)

type shape uint8

const (
	shapeScan shape = iota
	shapeEmpty
	shapeNull
	shapeMalformed
)

// classify runs the checks that do not need a full scan.
func classify(s string, sep, esc rune) shape {
	if s == "" {
		return shapeEmpty
	}
	if isNullContainer(s, esc) {
		return shapeNull
	}
	first, n := utf8.DecodeRuneInString(s)
	// "#" alone
	if n == len(s) && first == sep {
		return shapeMalformed
	}
	// "#a\#\" ends inside an escaped separator
	if strings.HasSuffix(s, string([]rune{esc, sep, esc})) {
		return shapeMalformed
	}
	// "a#" and "#a"
	last, _ := utf8.DecodeLastRuneInString(s)
	if first != sep || last != sep {
		return shapeMalformed
	}
	return shapeScan
}

func isNullContainer(s string, esc rune) bool {
	r, n := utf8.DecodeRuneInString(s)
	return r == esc && len(s) == n+1 && s[n] == nullMarker
}

// ReflectsNull reports whether s is the null container of the Default format.
func ReflectsNull(s string) bool { return Default.ReflectsNull(s) }

// ReflectsNull reports whether s is exactly escape + '0', the encoding of a
// tuple that is itself null. It is false for "" (no elements) and for
// "#\0#" (one null element).
func (f Format) ReflectsNull(s string) bool {
	_, esc := f.runes()
	return isNullContainer(s, esc)
}

// ------------------------------------------------------------------------------
// Element matcher
// ------------------------------------------------------------------------------

// IndexOf searches s with the Default format.
func IndexOf(s string, target Element) int { return Default.IndexOf(s, target) }

// Contains reports whether IndexOf finds target in s.
func Contains(s string, target Element) bool { return Default.IndexOf(s, target) >= 0 }

// IndexOf returns the index of the first element of s equal to target,
// NotFound, or Malformed. It compares while scanning and never materializes
// the decoded elements.
//
// An empty element matches only a non-null empty target; a null element
// matches only the null target.
func (f Format) IndexOf(s string, target Element) int {
	sep, esc := f.runes()
	switch classify(s, sep, esc) {
	case shapeEmpty, shapeNull:
		return NotFound
	case shapeMalformed:
		return Malformed
	}

	var (
		state   = stateNormal
		index   = -1
		length  = 0 // decoded runes of the current element
		m       = matcher{want: target.s, null: !target.valid, ok: true}
		wantLen = utf8.RuneCountInString(target.s)
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
			switch r {
			case nullMarker:
				if m.null {
					return index
				}
				m.ok = false
				length++
			case sep:
				state = stateTrailingEscape
				length++
				m.accept(raw)
			case esc:
				length++
				m.accept(raw)
			default:
				// not escapable: the escape stays part of the content
				length += 2
				m.accept(escRaw)
				m.accept(raw)
			}

		case r == esc:
			state = stateEscape

		case r == sep:
			// the opening separator does not close an element
			if index < 0 {
				index++
				continue
			}
			if m.null || length != wantLen {
				m.ok = false
			}
			if m.ok {
				return index
			}
			m.ok, m.cursor, length = true, 0, 0
			index++

		default:
			length++
			m.accept(raw)
		}
	}
	return NotFound
}

// matcher compares the current element against the target rune by rune.
type matcher struct {
	want   string
	null   bool
	cursor int
	ok     bool
}

func (m *matcher) accept(raw string) {
	if !m.ok {
		return
	}
	if m.null || !strings.HasPrefix(m.want[m.cursor:], raw) {
		m.ok = false
		return
	}
	m.cursor += len(raw)
}
