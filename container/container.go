// Package container adapts slices and string-keyed maps to arrays and
// objects. The adapters are pure compositions of the node protocol.
package container

import (
	"slices"

	"github.com/reoring/huse"
)

// Slice is a slice of scalars written as an array.
type Slice[T huse.Scalar] []T

func (s Slice[T]) MarshalHuse(n *huse.SerializerNode) error {
	return WriteSlice(n, s, huse.Put[T])
}

func (s *Slice[T]) UnmarshalHuse(n *huse.DeserializerNode) error {
	return ReadSlice(n, (*[]T)(s), huse.Get[T])
}

// Of is a slice whose elements carry their own hooks on the pointer receiver.
type Of[T any, P interface {
	*T
	huse.Marshaler
	huse.Unmarshaler
}] []T

func (s Of[T, P]) MarshalHuse(n *huse.SerializerNode) error {
	return n.Array(func(a *huse.SerializerArray) error {
		for i := range s {
			if err := a.Val(P(&s[i])); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Of[T, P]) UnmarshalHuse(n *huse.DeserializerNode) error {
	return ReadSlice(n, (*[]T)(s), func(e *huse.DeserializerNode, v *T) error {
		return e.Val(P(v))
	})
}

// WriteSlice writes s as an array, each element through put.
func WriteSlice[T any](n *huse.SerializerNode, s []T, put func(*huse.SerializerNode, T) error) error {
	return n.Array(func(a *huse.SerializerArray) error {
		for _, v := range s {
			if err := put(a.Elem(), v); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReadSlice reads an array into a new slice of its length, each element
// through get. *s is replaced only when every element was read.
func ReadSlice[T any](n *huse.DeserializerNode, s *[]T, get func(*huse.DeserializerNode, *T) error) error {
	return n.Array(func(a *huse.DeserializerArray) error {
		out := make([]T, a.Len())
		err := a.Each(func(i int, e *huse.DeserializerNode) error {
			return get(e, &out[i])
		})
		if err != nil {
			return err
		}
		*s = out
		return nil
	})
}

// Map is a string-keyed map of scalars written as an object.
type Map[T huse.Scalar] map[string]T

func (m Map[T]) MarshalHuse(n *huse.SerializerNode) error {
	return WriteMap(n, m, huse.Put[T])
}

func (m *Map[T]) UnmarshalHuse(n *huse.DeserializerNode) error {
	return ReadMap(n, (*map[string]T)(m), huse.Get[T])
}

// WriteMap writes m as an object with its keys in sorted order, so the output
// does not depend on map iteration order.
func WriteMap[T any](n *huse.SerializerNode, m map[string]T, put func(*huse.SerializerNode, T) error) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return n.Object(func(o *huse.SerializerObject) error {
		for _, k := range keys {
			if err := put(o.Key(k), m[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReadMap reads every member of an object in document order. A key repeated
// in the input keeps its last value.
func ReadMap[T any](n *huse.DeserializerNode, m *map[string]T, get func(*huse.DeserializerNode, *T) error) error {
	return n.Object(func(o *huse.DeserializerObject) error {
		out := make(map[string]T, o.Len())
		for {
			q, ok := o.NextKey()
			if !ok {
				break
			}
			var v T
			if err := get(q.Node, &v); err != nil {
				return err
			}
			out[q.Name] = v
		}
		*m = out
		return nil
	})
}
