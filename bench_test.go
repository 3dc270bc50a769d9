package enclosed

import (
	"strings"
	"testing"
)

var benchTuple = EncodeStrings("azerty", "hello#world", `back\slash`, "random", strings.Repeat("x", 64))

func BenchmarkAppend(b *testing.B) {
	values := Strings("azerty", "hello#world", `back\slash`, "random")
	buf := make([]byte, 0, 128)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf = buf[:0]
		for _, v := range values {
			buf = Append(buf, v)
		}
	}
}

func BenchmarkIndexOf(b *testing.B) {
	target := Of(strings.Repeat("x", 64))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if IndexOf(benchTuple, target) != 4 {
			b.Fatal("not found")
		}
	}
}

func BenchmarkCount(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Count(benchTuple)
	}
}

func BenchmarkSplit(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Split(benchTuple)
	}
}
