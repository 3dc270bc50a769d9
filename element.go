package enclosed

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Kind tells the three element states apart.
type Kind uint8

const (
	KindNull Kind = iota
	KindEmpty
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindEmpty:
		return "empty"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Element is one nullable tuple element. The zero value is the null element.
type Element struct {
	s     string
	valid bool
}

// Null returns the null element.
func Null() Element { return Element{} }

// Of returns a non-null element holding s (which may be empty).
func Of(s string) Element { return Element{s: s, valid: true} }

// FromPtr maps nil to Null and any other pointer to Of(*p).
func FromPtr(p *string) Element {
	if p == nil {
		return Null()
	}
	return Of(*p)
}

func (e Element) IsNull() bool { return !e.valid }

func (e Element) Kind() Kind {
	switch {
	case !e.valid:
		return KindNull
	case e.s == "":
		return KindEmpty
	default:
		return KindString
	}
}

// Value returns the content and whether the element is non-null.
func (e Element) Value() (string, bool) { return e.s, e.valid }

// Ptr returns nil for the null element and a pointer to a copy of the content otherwise.
func (e Element) Ptr() *string {
	if !e.valid {
		return nil
	}
	s := e.s
	return &s
}

func (e Element) String() string {
	if !e.valid {
		return "<null>"
	}
	return e.s
}

func (e Element) MarshalJSON() ([]byte, error) {
	if !e.valid {
		return []byte("null"), nil
	}
	return json.Marshal(e.s)
}

func (e *Element) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*e = Null()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*e = Of(s)
	return nil
}

func (e Element) MarshalYAML() (any, error) {
	if !e.valid {
		return nil, nil
	}
	return e.s, nil
}

// UnmarshalYAML is only reached for non-null nodes, yaml.v3 bypasses
// unmarshalers for null and leaves the zero (Null) element in place.
func (e *Element) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	*e = Of(s)
	return nil
}

// Tuple is an ordered sequence of elements. A nil Tuple is the null
// container, a non-nil empty Tuple is the empty sequence.
type Tuple []Element

func (t Tuple) IsNull() bool { return t == nil }

// Strings builds a Tuple of non-null elements.
func Strings(values ...string) Tuple {
	t := make(Tuple, len(values))
	for i, v := range values {
		t[i] = Of(v)
	}
	return t
}

// Ptrs builds a Tuple from pointers, nil entries become null elements.
// A nil slice yields the null container.
func Ptrs(values []*string) Tuple {
	if values == nil {
		return nil
	}
	t := make(Tuple, len(values))
	for i, v := range values {
		t[i] = FromPtr(v)
	}
	return t
}

// MarshalYAML renders the null container as a YAML null.
func (t Tuple) MarshalYAML() (any, error) {
	if t == nil {
		return nil, nil
	}
	return t.Ptrs(), nil
}

// UnmarshalYAML decodes through []*string: yaml.v3 drops null entries of a
// sequence of structs but keeps them as nil pointers.
func (t *Tuple) UnmarshalYAML(node *yaml.Node) error {
	var ptrs []*string
	if err := node.Decode(&ptrs); err != nil {
		return err
	}
	*t = Ptrs(ptrs)
	if *t == nil {
		*t = Tuple{}
	}
	return nil
}

// Ptrs is the inverse of the package-level Ptrs.
func (t Tuple) Ptrs() []*string {
	if t == nil {
		return nil
	}
	out := make([]*string, len(t))
	for i, e := range t {
		out[i] = e.Ptr()
	}
	return out
}
