package enclosed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReflectsNull(t *testing.T) {
	assert.False(t, ReflectsNull(""))
	assert.False(t, ReflectsNull(`#\0#`))
	assert.False(t, ReflectsNull(`\00`))
	assert.False(t, ReflectsNull(`\`))
	assert.False(t, ReflectsNull("0"))
	assert.True(t, ReflectsNull(`\0`))

	f := Format{Escape: '~'}
	assert.True(t, f.ReflectsNull("~0"))
	assert.False(t, f.ReflectsNull(`\0`))
}

func TestIndexOfMalformed(t *testing.T) {
	for _, s := range []string{"#", "a#", "#a", `#a\#\`, `#\#\`} {
		assert.Equal(t, Malformed, IndexOf(s, Of("(egal)")), s)
		assert.Equal(t, Malformed, IndexOf(s, Null()), s)
	}
}

func TestIndexOf(t *testing.T) {
	tests := []struct {
		tuple  string
		target Element
		want   int
	}{
		{"", Null(), NotFound},
		{"", Of(""), NotFound},
		{"", Of("DoesNotExist"), NotFound},
		{`\0`, Null(), NotFound},
		{`\0`, Of(""), NotFound},

		{"##", Null(), NotFound},
		{"##", Of(""), 0},
		{"#a##", Of(""), 1},
		{"#a#b##", Of(""), 2},
		{"##", Of("DoesNotExist"), NotFound},

		{"#hello#", Of("hello"), 0},
		{"##hello#", Of("hello"), 1},
		{"#helloo#", Of("hello"), NotFound},
		{"#hell#", Of("hello"), NotFound},

		{"#a#hello#", Of("hello#"), NotFound},
		{`#a#hello\#\#`, Of("hello#"), 1},

		{`#a#\0#b#`, Null(), 1},
		{`#a#\0#b#`, Of(""), NotFound},
		{`#a#\0#b#`, Of("0"), NotFound},
		{`#a#\\0#`, Of(`\0`), 1},
		{`#a#\\0#`, Null(), NotFound},

		{`#Mambo\#\Five#HeyJude#`, Of("Mambo#Five"), 0},
		{`#Mambo\#\Five#HeyJude#`, Of("HeyJude"), 1},
		{`#Mambo\#\#`, Of("Mambo#"), 0},
		{`#Ba\\r#`, Of(`Ba\r`), 0},
		{"#x#y#x#", Of("x"), 0},
		{"#こんにちは#世界#", Of("世界"), 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IndexOf(tt.tuple, tt.target), "%s in %s", tt.target, tt.tuple)
	}
}

func TestIndexOfTolerantEscape(t *testing.T) {
	// the trailing escape after "\#" is missing, the rest is read as is
	s := `#Backslash\#AfterHashtagIsMissing#b#`
	assert.Equal(t, 0, IndexOf(s, Of("Backslash#AfterHashtagIsMissing")))
	assert.Equal(t, 1, IndexOf(s, Of("b")))

	// a non-escapable rune after the escape keeps the escape, as ForEach does
	assert.Equal(t, 0, IndexOf(`#a\bc#`, Of(`a\bc`)))
	assert.Equal(t, NotFound, IndexOf(`#a\bc#`, Of("abc")))
}

func TestIndexOfCustomFormat(t *testing.T) {
	f := Format{Separator: '|', Escape: '~'}
	s := `|a~|~b|~0|c|`
	assert.Equal(t, 0, f.IndexOf(s, Of("a|b")))
	assert.Equal(t, 1, f.IndexOf(s, Null()))
	assert.Equal(t, 2, f.IndexOf(s, Of("c")))
	assert.Equal(t, NotFound, f.IndexOf(s, Of("a")))
	assert.Equal(t, NotFound, f.IndexOf(s, Of("")))

	// default runes are plain content here
	assert.Equal(t, 0, f.IndexOf(`|#\0|`, Of(`#\0`)))
	assert.Equal(t, NotFound, f.IndexOf(`|a|b|`, Null()))

	// missing trailing escape after "~|"
	assert.Equal(t, 0, f.IndexOf(`|~|x|`, Of("|x")))
	assert.Equal(t, Malformed, f.IndexOf(`|a~|~`, Of("a|")))
	assert.Equal(t, NotFound, f.IndexOf("~0", Null()))

	assert.Equal(t, f.IndexOf(s, Null()), indexBySplit(f, s, Null()))
}

func indexBySplit(f Format, s string, target Element) int {
	for i, e := range f.Split(s) {
		if e == target {
			return i
		}
	}
	return NotFound
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("#Foo#Bar#", Of("Bar")))
	assert.False(t, Contains("#Foo#Bar#", Of("Baz")))
	assert.False(t, Contains("#", Of("#")))
}
