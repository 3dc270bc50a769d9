// Package enclosed implements the enclosed tuple, a delimited text encoding
// for an ordered sequence of nullable strings.
//
//	{}            => ""
//	{""}          => "##"
//	{null}        => "#\0#"
//	{"Foo","Bar"} => "#Foo#Bar#"
//	{"Fo#o"}      => "#Fo\#\o#"
//	{"Ba\r"}      => "#Ba\\r#"
//
// A tuple that is itself null is written as the two runes escape + '0'.
package enclosed

import "errors"

var (
	ErrInvalidArgument = errors.New("enclosed: invalid argument")
	ErrNullTuple       = errors.New("enclosed: tuple is null")
	ErrMalformed       = errors.New("enclosed: malformed tuple")
	ErrInvalidFormat   = errors.New("enclosed: invalid format")
)

// Sentinel results of IndexOf and ForEach.
const (
	NotFound  = -1
	Malformed = -2
)
