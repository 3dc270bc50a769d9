// Package placeholder resolves named "{name}" placeholders in templates.
//
//	Resolve("Hello {audience}, the answer is {answer}.", "World", 42)
//	// Hello World, the answer is 42.
//
// Placeholders that cannot be resolved are left in the output unchanged.
package placeholder

import (
	"fmt"
	"strings"
)

const (
	openBrace  = '{'
	closeBrace = '}'
	// shortest template that can hold a placeholder: "{x}"
	minTemplateLen = 3
)

// ForEach calls onPlaceholder with the name of every placeholder of template
// in order of appearance, and onSegment with the position and length of the
// literal text around them. onSegment may be nil. With omitNames set the
// names are passed as "". A true return from onPlaceholder stops the walk
// immediately. An opening brace without a closing one is literal text.
func ForEach(template string, onPlaceholder func(name string) (stop bool), onSegment func(pos, length int), omitNames bool) {
	if len(template) < minTemplateLen {
		return
	}
	segment := func(pos, length int) {
		if onSegment != nil {
			onSegment(pos, length)
		}
	}

	cursor := 0
	for cursor < len(template) {
		left := strings.IndexByte(template[cursor:], openBrace)
		if left < 0 {
			break
		}
		left += cursor
		right := strings.IndexByte(template[left:], closeBrace)
		if right < 0 {
			break
		}
		right += left

		var name string
		if !omitNames {
			name = template[left+1 : right]
		}
		segment(cursor, left-cursor)
		if onPlaceholder(name) {
			return
		}
		cursor = right + 1
	}
	segment(cursor, len(template)-cursor)
}

// ResolveFunc replaces every placeholder by the value resolve returns for
// its name. When resolve reports false the placeholder is kept.
func ResolveFunc(template string, resolve func(name string) (string, bool)) string {
	if len(template) < minTemplateLen {
		return template
	}
	var b strings.Builder
	b.Grow(len(template) + len(template)/2)

	ForEach(template,
		func(name string) bool {
			if v, ok := resolve(name); ok {
				b.WriteString(v)
			} else {
				b.WriteByte(openBrace)
				b.WriteString(name)
				b.WriteByte(closeBrace)
			}
			return false
		},
		func(pos, length int) { b.WriteString(template[pos : pos+length]) },
		false,
	)
	return b.String()
}

// Resolve replaces placeholders by args in order of appearance, whatever
// their names. Placeholders without an argument, or with a nil one, are kept.
func Resolve(template string, args ...any) string {
	if len(args) == 0 {
		return template
	}
	i := -1
	return ResolveFunc(template, func(string) (string, bool) {
		i++
		if i >= len(args) || args[i] == nil {
			return "", false
		}
		return fmt.Sprint(args[i]), true
	})
}

// ResolveMap looks placeholder names up in values.
func ResolveMap(template string, values map[string]string) string {
	if len(values) == 0 {
		return template
	}
	return ResolveFunc(template, func(name string) (string, bool) {
		v, ok := values[name]
		return v, ok
	})
}

// ResolveArgs substitutes args into the first placeholders found at or after
// byte offset start, in place and in order. A nil arg skips its
// placeholder. Substituted text is never scanned again.
func ResolveArgs(template string, args []any, start int) string {
	if len(args) == 0 || start >= len(template) {
		return template
	}
	cursor := max(start, 0)
	s := template
	for _, arg := range args {
		left := strings.IndexByte(s[cursor:], openBrace)
		if left < 0 {
			break
		}
		left += cursor
		right := strings.IndexByte(s[left:], closeBrace)
		if right < 0 {
			break
		}
		right += left

		if arg == nil {
			cursor = right + 1
			continue
		}
		v := fmt.Sprint(arg)
		s = s[:left] + v + s[right+1:]
		cursor = left + len(v)
	}
	return s
}
