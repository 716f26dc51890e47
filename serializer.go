package huse

import "reflect"

// Serializer is the document cursor of one write session. It is itself the
// generic node of the root value.
//
// A Serializer is not safe for concurrent use.
type Serializer struct {
	SerializerNode
	w     Writer
	stack *scopeStack
}

// NewSerializer returns a cursor that drives w.
func NewSerializer(w Writer) *Serializer {
	stack, root := newScopeStack()
	s := &Serializer{w: w, stack: stack}
	s.SerializerNode = SerializerNode{s: s, sc: root}
	return s
}

// Depth returns the number of compound scopes currently open.
func (s *Serializer) Depth() int { return s.stack.depth }

// Close flushes the backend. Closing while a scope is still open is a
// UsageError.
func (s *Serializer) Close() error {
	if s.stack.depth != 0 {
		usagef("Close", "%d scope(s) still open", s.stack.depth)
	}
	return s.w.Flush()
}

func (s *Serializer) release(sc *scope) error {
	if sc.kind == scopeObject {
		return s.w.CloseObject()
	}
	return s.w.CloseArray()
}

// run executes body inside child and closes child on every exit path.
func (s *Serializer) run(child *scope, body func() error) error {
	done := false
	defer func() {
		if !done {
			s.stack.unwind(child, func(sc *scope) { _ = s.release(sc) })
		}
	}()
	if err := body(); err != nil {
		return withPath(err, child.path.Pointer())
	}
	if child.kind == scopeObject && child.pending {
		usagef("Close", "key %q has no value", child.key)
	}
	done = true
	s.stack.pop(child, "Close")
	return withPath(s.release(child), child.path.Pointer())
}

// SerializerNode is a position that has not yet committed to a shape: the
// root value, an array element or the value of an object key. Each node
// accepts exactly one value.
type SerializerNode struct {
	s   *Serializer
	sc  *scope
	sel uint64
}

// begin claims the node's position for a value and emits its key, if any.
func (n *SerializerNode) begin(op string) (Path, error) {
	sc := n.sc
	sc.checkNode(op, n.sel)
	switch sc.kind {
	case scopeRoot:
		if !sc.pending {
			usagef(op, "the document already has a root value")
		}
		sc.pending = false
		return sc.path, nil
	case scopeObject:
		if !sc.pending {
			usagef(op, "value written without a key")
		}
		sc.pending = false
		p := sc.path.Field(sc.key)
		return p, n.s.w.WriteKey(sc.key)
	default:
		p := sc.path.Index(sc.index)
		sc.index++
		sc.selectNext()
		return p, nil
	}
}

// Omit discards the node's position. For an object member the pending key is
// dropped without being written.
func (n *SerializerNode) Omit() {
	n.sc.checkNode("Omit", n.sel)
	switch n.sc.kind {
	case scopeObject:
		n.sc.pending = false
	case scopeArray:
		n.sc.selectNext()
	}
}

// Object writes an object at the node and fills it with fn. The object is
// closed when fn returns, whatever the outcome.
func (n *SerializerNode) Object(fn func(o *SerializerObject) error) error {
	p, err := n.begin("Object")
	if err == nil {
		err = n.s.w.OpenObject()
	}
	if err != nil {
		return withPath(err, p.Pointer())
	}
	child := n.s.stack.push(n.sc, scopeObject, p)
	return n.s.run(child, func() error { return fn(&SerializerObject{s: n.s, sc: child}) })
}

// Array writes an array at the node and fills it with fn.
func (n *SerializerNode) Array(fn func(a *SerializerArray) error) error {
	p, err := n.begin("Array")
	if err == nil {
		err = n.s.w.OpenArray()
	}
	if err != nil {
		return withPath(err, p.Pointer())
	}
	child := n.s.stack.push(n.sc, scopeArray, p)
	return n.s.run(child, func() error { return fn(&SerializerArray{s: n.s, sc: child}) })
}

// Val writes v through its own MarshalHuse.
func (n *SerializerNode) Val(v Marshaler) error {
	n.sc.checkNode("Val", n.sel)
	p := n.sc.at()
	return withPath(v.MarshalHuse(n), p.Pointer())
}

// Null writes an explicit null.
func (n *SerializerNode) Null() error {
	p, err := n.begin("Null")
	if err == nil {
		err = n.s.w.WriteNull()
	}
	return withPath(err, p.Pointer())
}

// Raw writes an already encoded fragment verbatim, bypassing dispatch.
func (n *SerializerNode) Raw(fragment string) error {
	p, err := n.begin("Raw")
	if err == nil {
		err = n.s.w.WriteRaw(fragment)
	}
	return withPath(err, p.Pointer())
}

func (n *SerializerNode) writeScalar(rv reflect.Value) error {
	p, err := n.begin("Put")
	if err != nil {
		return withPath(err, p.Pointer())
	}
	w := n.s.w
	switch rv.Kind() {
	case reflect.Bool:
		err = w.WriteBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		err = w.WriteInt(rv.Int(), rv.Type().Bits())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		err = w.WriteUint(rv.Uint(), rv.Type().Bits())
	case reflect.Float32, reflect.Float64:
		err = w.WriteFloat(rv.Float(), rv.Type().Bits())
	case reflect.String:
		err = w.WriteString(rv.String())
	}
	return withPath(err, p.Pointer())
}

// SerializerObject is an open object scope.
type SerializerObject struct {
	s  *Serializer
	sc *scope
}

// Key selects the member k. The returned node must receive exactly one value
// (or be omitted) before the next key or the end of the object.
func (o *SerializerObject) Key(k string) *SerializerNode {
	o.sc.check("Key")
	if o.sc.pending {
		usagef("Key", "key %q has no value", o.sc.key)
	}
	o.sc.key = k
	o.sc.pending = true
	return &SerializerNode{s: o.s, sc: o.sc, sel: o.sc.selectNext()}
}

// Object writes a nested object under k.
func (o *SerializerObject) Object(k string, fn func(o *SerializerObject) error) error {
	return o.Key(k).Object(fn)
}

// Array writes a nested array under k.
func (o *SerializerObject) Array(k string, fn func(a *SerializerArray) error) error {
	return o.Key(k).Array(fn)
}

// Val writes v under k.
func (o *SerializerObject) Val(k string, v Marshaler) error { return o.Key(k).Val(v) }

// Null writes an explicit null under k.
func (o *SerializerObject) Null(k string) error { return o.Key(k).Null() }

// Raw writes an already encoded fragment under k.
func (o *SerializerObject) Raw(k, fragment string) error { return o.Key(k).Raw(fragment) }

// Flat merges the members of v into this object.
func (o *SerializerObject) Flat(v FlatMarshaler) error {
	o.sc.check("Flat")
	return withPath(v.MarshalHuseFlat(o), o.sc.path.Pointer())
}

// SerializerArray is an open array scope.
type SerializerArray struct {
	s  *Serializer
	sc *scope
}

// Elem returns the node of the next element. The node accepts one value;
// calling Elem again supersedes it.
func (a *SerializerArray) Elem() *SerializerNode {
	a.sc.check("Elem")
	return &SerializerNode{s: a.s, sc: a.sc, sel: a.sc.selectNext()}
}

// Len returns the number of elements written so far.
func (a *SerializerArray) Len() int { return a.sc.index }

func (a *SerializerArray) Object(fn func(o *SerializerObject) error) error {
	return a.Elem().Object(fn)
}

func (a *SerializerArray) Array(fn func(a *SerializerArray) error) error {
	return a.Elem().Array(fn)
}

func (a *SerializerArray) Val(v Marshaler) error { return a.Elem().Val(v) }

func (a *SerializerArray) Null() error { return a.Elem().Null() }
