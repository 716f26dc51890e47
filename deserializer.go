package huse

import "reflect"

// Deserializer is the document cursor of one read session. It is itself the
// generic node of the root value.
//
// A Deserializer is not safe for concurrent use.
type Deserializer struct {
	DeserializerNode
	r     Reader
	stack *scopeStack
}

// NewDeserializer returns a cursor that drives r.
func NewDeserializer(r Reader) *Deserializer {
	stack, root := newScopeStack()
	d := &Deserializer{r: r, stack: stack}
	d.DeserializerNode = DeserializerNode{d: d, sc: root}
	return d
}

// Depth returns the number of compound scopes currently open.
func (d *Deserializer) Depth() int { return d.stack.depth }

// Close ends the session. Closing while a scope is still open is a
// UsageError.
func (d *Deserializer) Close() error {
	if d.stack.depth != 0 {
		usagef("Close", "%d scope(s) still open", d.stack.depth)
	}
	return nil
}

func (d *Deserializer) release(sc *scope) error {
	if sc.kind == scopeObject {
		return d.r.UnloadObject()
	}
	return d.r.UnloadArray()
}

func (d *Deserializer) run(child *scope, body func() error) error {
	done := false
	defer func() {
		if !done {
			d.stack.unwind(child, func(sc *scope) { _ = d.release(sc) })
		}
	}()
	if err := body(); err != nil {
		return withPath(err, child.path.Pointer())
	}
	done = true
	d.stack.pop(child, "Close")
	return withPath(d.release(child), child.path.Pointer())
}

// DeserializerNode is a selected position whose shape is decided by the
// caller: the root value, an array element or the value of an object key.
type DeserializerNode struct {
	d   *Deserializer
	sc  *scope
	sel uint64
}

// selected panics unless the node's scope is innermost and has a position
// selected, and returns the path of that position.
func (n *DeserializerNode) selected(op string) Path {
	sc := n.sc
	sc.checkNode(op, n.sel)
	if !sc.pending {
		switch sc.kind {
		case scopeRoot:
			usagef(op, "the root value was already consumed")
		case scopeObject:
			usagef(op, "no key selected")
		default:
			usagef(op, "no index selected")
		}
	}
	return sc.at()
}

// take consumes the selected position.
func (n *DeserializerNode) take(op string) Path {
	p := n.selected(op)
	n.sc.pending = false
	return p
}

// Type returns the type of the value at the node without consuming it.
func (n *DeserializerNode) Type() Type {
	n.selected("Type")
	return n.d.r.PendingType()
}

// Skip consumes the node without reading its value.
func (n *DeserializerNode) Skip() { n.take("Skip") }

// Object reads an object at the node with fn. The object is unloaded when fn
// returns, whatever the outcome.
func (n *DeserializerNode) Object(fn func(o *DeserializerObject) error) error {
	p := n.take("Object")
	if err := n.d.r.LoadObject(); err != nil {
		return withPath(err, p.Pointer())
	}
	child := n.d.stack.push(n.sc, scopeObject, p)
	return n.d.run(child, func() error { return fn(&DeserializerObject{d: n.d, sc: child}) })
}

// Array reads an array at the node with fn.
func (n *DeserializerNode) Array(fn func(a *DeserializerArray) error) error {
	p := n.take("Array")
	if err := n.d.r.LoadArray(); err != nil {
		return withPath(err, p.Pointer())
	}
	child := n.d.stack.push(n.sc, scopeArray, p)
	return n.d.run(child, func() error { return fn(&DeserializerArray{d: n.d, sc: child}) })
}

// Val reads v through its own UnmarshalHuse.
func (n *DeserializerNode) Val(v Unmarshaler) error {
	p := n.selected("Val")
	return withPath(v.UnmarshalHuse(n), p.Pointer())
}

func (n *DeserializerNode) readScalar(rv reflect.Value) error {
	p := n.take("Get")
	r := n.d.r
	var err error
	switch rv.Kind() {
	case reflect.Bool:
		var b bool
		if b, err = r.ReadBool(); err == nil {
			rv.SetBool(b)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var i int64
		if i, err = r.ReadInt(rv.Type().Bits()); err == nil {
			rv.SetInt(i)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		var u uint64
		if u, err = r.ReadUint(rv.Type().Bits()); err == nil {
			rv.SetUint(u)
		}
	case reflect.Float32, reflect.Float64:
		var f float64
		if f, err = r.ReadFloat(rv.Type().Bits()); err == nil {
			rv.SetFloat(f)
		}
	case reflect.String:
		var s string
		if s, err = r.ReadString(); err == nil {
			rv.SetString(s)
		}
	}
	return withPath(err, p.Pointer())
}

// KeyQuery is one step of forward key enumeration.
type KeyQuery struct {
	Name string
	Node *DeserializerNode
}

// DeserializerObject is an open object scope.
type DeserializerObject struct {
	d  *Deserializer
	sc *scope
}

// Type always reports TypeObject.
func (o *DeserializerObject) Type() Type { return TypeObject }

// Len returns the number of members of the object.
func (o *DeserializerObject) Len() int {
	o.sc.check("Len")
	return o.d.r.Len()
}

func (o *DeserializerObject) node(k string) *DeserializerNode {
	o.sc.key = k
	o.sc.pending = true
	return &DeserializerNode{d: o.d, sc: o.sc, sel: o.sc.selectNext()}
}

// Key selects the member k and fails with CodeRequired when it is absent.
func (o *DeserializerObject) Key(k string) (*DeserializerNode, error) {
	o.sc.check("Key")
	if err := o.d.r.LoadKey(k); err != nil {
		o.sc.pending = false
		return nil, withPath(err, o.sc.path.Field(k).Pointer())
	}
	return o.node(k), nil
}

// OptKey selects the member k when it exists.
func (o *DeserializerObject) OptKey(k string) (*DeserializerNode, bool) {
	o.sc.check("OptKey")
	if !o.d.r.TryLoadKey(k) {
		o.sc.pending = false
		return nil, false
	}
	return o.node(k), true
}

// NextKey selects the next member in document order. A duplicated key is
// visited once, at its last occurrence and with its last value, matching Key
// and Len. Once it reports false the enumeration is exhausted for the
// lifetime of this scope.
func (o *DeserializerObject) NextKey() (KeyQuery, bool) {
	o.sc.check("NextKey")
	name, ok := o.d.r.LoadNextKey()
	if !ok {
		o.sc.pending = false
		return KeyQuery{}, false
	}
	return KeyQuery{Name: name, Node: o.node(name)}, true
}

// Object reads the nested object under k.
func (o *DeserializerObject) Object(k string, fn func(o *DeserializerObject) error) error {
	n, err := o.Key(k)
	if err != nil {
		return err
	}
	return n.Object(fn)
}

// Array reads the nested array under k.
func (o *DeserializerObject) Array(k string, fn func(a *DeserializerArray) error) error {
	n, err := o.Key(k)
	if err != nil {
		return err
	}
	return n.Array(fn)
}

// Val reads v from the member k.
func (o *DeserializerObject) Val(k string, v Unmarshaler) error {
	n, err := o.Key(k)
	if err != nil {
		return err
	}
	return n.Val(v)
}

// Flat reads the members of v directly from this object.
func (o *DeserializerObject) Flat(v FlatUnmarshaler) error {
	o.sc.check("Flat")
	return withPath(v.UnmarshalHuseFlat(o), o.sc.path.Pointer())
}

// DeserializerArray is an open array scope.
type DeserializerArray struct {
	d  *Deserializer
	sc *scope
}

// Type always reports TypeArray.
func (a *DeserializerArray) Type() Type { return TypeArray }

// Len returns the number of elements of the array.
func (a *DeserializerArray) Len() int {
	a.sc.check("Len")
	return a.d.r.Len()
}

// Index selects element i and fails with CodeOutOfRange past the end.
func (a *DeserializerArray) Index(i int) (*DeserializerNode, error) {
	a.sc.check("Index")
	if err := a.d.r.LoadIndex(i); err != nil {
		a.sc.pending = false
		return nil, withPath(err, a.sc.path.Index(i).Pointer())
	}
	a.sc.index = i
	a.sc.pending = true
	return &DeserializerNode{d: a.d, sc: a.sc, sel: a.sc.selectNext()}, nil
}

// Each selects every element in order and calls fn with it.
func (a *DeserializerArray) Each(fn func(i int, n *DeserializerNode) error) error {
	for i, l := 0, a.Len(); i < l; i++ {
		n, err := a.Index(i)
		if err != nil {
			return err
		}
		if err := fn(i, n); err != nil {
			return err
		}
	}
	return nil
}
