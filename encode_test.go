package enclosed

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend(t *testing.T) {
	tests := []struct {
		name   string
		values []Element
		want   string
	}{
		{"single", []Element{Of("Foo")}, "#Foo#"},
		{"two", []Element{Of("Foo"), Of("Bar")}, "#Foo#Bar#"},
		{"three", []Element{Of("Foo"), Of("Bar"), Of("Batz")}, "#Foo#Bar#Batz#"},
		{"empty string", []Element{Of("")}, "##"},
		{"null", []Element{Null()}, `#\0#`},
		{"escaped", []Element{Of("Mambo#Five"), Of(`Ba\r`)}, `#Mambo\#\Five#Ba\\r#`},
		{"separator only", []Element{Of("#")}, `#\#\#`},
		{"literal backslash zero", []Element{Of(`\0`)}, `#\\0#`},
		{"null between", []Element{Of("a"), Null(), Of("b")}, `#a#\0#b#`},
		{"multibyte", []Element{Of("こんにちは#世界")}, `#こんにちは\#\世界#`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf []byte
			for _, v := range tt.values {
				buf = Append(buf, v)
			}
			assert.Equal(t, tt.want, string(buf))
		})
	}
}

func TestAppendCustomFormat(t *testing.T) {
	f, err := NewFormat(WithSeparator('|'), WithEscape('~'))
	require.NoError(t, err)

	buf := f.Append(nil, Of("a|b~c#"))
	buf = f.Append(buf, Null())
	assert.Equal(t, "|a~|~b~~c#|~0|", string(buf))
	assert.Equal(t, Tuple{Of("a|b~c#"), Null()}, f.Split(string(buf)))
}

func TestEncode(t *testing.T) {
	s, err := Encode(Tuple{})
	require.NoError(t, err)
	assert.Equal(t, "", s)

	s, err = Encode(Strings("First", "Mambo#Five"))
	require.NoError(t, err)
	assert.Equal(t, `#First#Mambo\#\Five#`, s)

	assert.Equal(t, `#Mambo\#\Five#`, EncodeStrings("Mambo#Five"))
	assert.Equal(t, "##", EncodeStrings(""))
}

func TestEncodeNullTuple(t *testing.T) {
	_, err := Encode(nil)
	require.ErrorIs(t, err, ErrNullTuple)
	require.ErrorIs(t, err, ErrInvalidArgument)

	f, err := NewFormat(WithAllowNull())
	require.NoError(t, err)
	s, err := f.Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, `\0`, s)
	assert.True(t, f.ReflectsNull(s))

	f, err = NewFormat(WithNullRepresentation("<nil>"))
	require.NoError(t, err)
	s, err = f.Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "<nil>", s)
}

func TestAppendMany(t *testing.T) {
	longs := []int64{2083349424987289070, 2083349429634175975, 2083349433585439538}
	assert.Equal(t,
		"#2083349424987289070#2083349429634175975#2083349433585439538#",
		string(AppendMany(Default, nil, longs, nil)),
	)

	dates := []time.Time{
		time.Date(1973, 12, 9, 0, 0, 0, 0, time.UTC),
		time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 2, 22, 0, 0, 0, 0, time.UTC),
	}
	s, err := EncodeValues(Default, dates, func(d time.Time) string { return d.Format(time.DateOnly) })
	require.NoError(t, err)
	assert.Equal(t, "#1973-12-09#2000-01-01#2022-02-22#", s)

	s, err = EncodeValues(Default, []int{}, strconv.Itoa)
	require.NoError(t, err)
	assert.Equal(t, "", s)

	_, err = EncodeValues[int](Default, nil, strconv.Itoa)
	require.ErrorIs(t, err, ErrNullTuple)
}
