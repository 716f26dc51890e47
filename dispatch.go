package huse

import "reflect"

// Scalar lists the types every backend converts natively.
type Scalar interface {
	~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 |
		~string
}

// Marshaler is implemented by types that write themselves at a node.
type Marshaler interface {
	MarshalHuse(n *SerializerNode) error
}

// Unmarshaler is implemented by types that read themselves from a node.
type Unmarshaler interface {
	UnmarshalHuse(n *DeserializerNode) error
}

// MarshalFunc adapts a function to Marshaler.
type MarshalFunc func(n *SerializerNode) error

func (f MarshalFunc) MarshalHuse(n *SerializerNode) error { return f(n) }

// UnmarshalFunc adapts a function to Unmarshaler.
type UnmarshalFunc func(n *DeserializerNode) error

func (f UnmarshalFunc) UnmarshalHuse(n *DeserializerNode) error { return f(n) }

// FlatMarshaler is implemented by types that write their members into an
// already open object instead of a nested one.
type FlatMarshaler interface {
	MarshalHuseFlat(o *SerializerObject) error
}

// FlatUnmarshaler is implemented by types that read their members from an
// already open object.
type FlatUnmarshaler interface {
	UnmarshalHuseFlat(o *DeserializerObject) error
}

// Put writes v using the backend's native conversion. A named scalar type
// that implements Marshaler is written through its own method instead.
//
// Types that are neither scalars nor Marshalers do not satisfy any of the
// dispatch signatures (Put, Val, PutWith) and are rejected by the compiler.
func Put[T Scalar](n *SerializerNode, v T) error {
	if m, ok := any(v).(Marshaler); ok {
		return n.Val(m)
	}
	return n.writeScalar(reflect.ValueOf(v))
}

// Get reads the value at n into v using the backend's native conversion. A
// named scalar type whose pointer implements Unmarshaler is read through its
// own method instead.
func Get[T Scalar](n *DeserializerNode, v *T) error {
	if u, ok := any(v).(Unmarshaler); ok {
		return n.Val(u)
	}
	return n.readScalar(reflect.ValueOf(v).Elem())
}

// PutWith writes v with a free function, for types that cannot carry methods.
func PutWith[T any](n *SerializerNode, v T, fn func(*SerializerNode, T) error) error {
	n.sc.checkNode("PutWith", n.sel)
	p := n.sc.at()
	return withPath(fn(n, v), p.Pointer())
}

// GetWith reads v with a free function.
func GetWith[T any](n *DeserializerNode, v *T, fn func(*DeserializerNode, *T) error) error {
	p := n.selected("GetWith")
	return withPath(fn(n, v), p.Pointer())
}

// FlatWith merges v into o with a free function.
func FlatWith[T any](o *SerializerObject, v T, fn func(*SerializerObject, T) error) error {
	o.sc.check("FlatWith")
	return fn(o, v)
}

// FlatFrom reads v from the members of o with a free function.
func FlatFrom[T any](o *DeserializerObject, v *T, fn func(*DeserializerObject, *T) error) error {
	o.sc.check("FlatFrom")
	return fn(o, v)
}

// PutKey writes v under k.
func PutKey[T Scalar](o *SerializerObject, k string, v T) error {
	return Put(o.Key(k), v)
}

// GetKey reads the required member k into v.
func GetKey[T Scalar](o *DeserializerObject, k string, v *T) error {
	n, err := o.Key(k)
	if err != nil {
		return err
	}
	return Get(n, v)
}
