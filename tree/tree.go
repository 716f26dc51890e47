// Package tree holds any document as an ordered value. It reads whatever the
// backend presents, which makes it the bridge for transcoding between formats.
package tree

import "github.com/reoring/huse"

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value *Value
}

// Value is a document value. Only the fields matching Type are meaningful;
// booleans are carried by Type itself.
type Value struct {
	Type    huse.Type
	Int     int64
	Float   float64
	Str     string
	Members []Member
	Elems   []*Value
}

// Convenience constructors, mostly for tests and examples.

func Null() *Value             { return &Value{Type: huse.TypeNull} }
func Int(i int64) *Value       { return &Value{Type: huse.TypeInteger, Int: i} }
func Float(f float64) *Value   { return &Value{Type: huse.TypeFloat, Float: f} }
func String(s string) *Value   { return &Value{Type: huse.TypeString, Str: s} }
func Array(e ...*Value) *Value { return &Value{Type: huse.TypeArray, Elems: e} }

func Bool(b bool) *Value {
	if b {
		return &Value{Type: huse.TypeTrue}
	}
	return &Value{Type: huse.TypeFalse}
}

// Object builds an object from alternating keys and values.
func Object(kv ...any) *Value {
	v := &Value{Type: huse.TypeObject}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Members = append(v.Members, Member{Key: kv[i].(string), Value: kv[i+1].(*Value)})
	}
	return v
}

// Get returns the last member named k, or nil.
func (v *Value) Get(k string) *Value {
	for i := len(v.Members) - 1; i >= 0; i-- {
		if v.Members[i].Key == k {
			return v.Members[i].Value
		}
	}
	return nil
}

func (v *Value) MarshalHuse(n *huse.SerializerNode) error {
	switch v.Type {
	case huse.TypeTrue, huse.TypeFalse:
		return huse.Put(n, v.Type == huse.TypeTrue)
	case huse.TypeInteger:
		return huse.Put(n, v.Int)
	case huse.TypeFloat:
		return huse.Put(n, v.Float)
	case huse.TypeString:
		return huse.Put(n, v.Str)
	case huse.TypeObject:
		return n.Object(func(o *huse.SerializerObject) error {
			for _, m := range v.Members {
				if err := o.Val(m.Key, m.Value); err != nil {
					return err
				}
			}
			return nil
		})
	case huse.TypeArray:
		return n.Array(func(a *huse.SerializerArray) error {
			for _, e := range v.Elems {
				if err := a.Val(e); err != nil {
					return err
				}
			}
			return nil
		})
	default:
		return n.Null()
	}
}

// UnmarshalHuse replaces v with the value at n. Integers outside the int64
// range fail with CodeOverflow.
func (v *Value) UnmarshalHuse(n *huse.DeserializerNode) error {
	*v = Value{Type: n.Type()}
	switch v.Type {
	case huse.TypeTrue, huse.TypeFalse:
		var b bool
		return huse.Get(n, &b)
	case huse.TypeInteger:
		return huse.Get(n, &v.Int)
	case huse.TypeFloat:
		return huse.Get(n, &v.Float)
	case huse.TypeString:
		return huse.Get(n, &v.Str)
	case huse.TypeObject:
		return n.Object(func(o *huse.DeserializerObject) error {
			for {
				q, ok := o.NextKey()
				if !ok {
					return nil
				}
				child := new(Value)
				if err := q.Node.Val(child); err != nil {
					return err
				}
				v.Members = append(v.Members, Member{Key: q.Name, Value: child})
			}
		})
	case huse.TypeArray:
		return n.Array(func(a *huse.DeserializerArray) error {
			if l := a.Len(); l > 0 {
				v.Elems = make([]*Value, l)
			}
			return a.Each(func(i int, e *huse.DeserializerNode) error {
				v.Elems[i] = new(Value)
				return e.Val(v.Elems[i])
			})
		})
	default:
		n.Skip()
		return nil
	}
}
