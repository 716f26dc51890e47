package huse

type scopeKind uint8

const (
	scopeRoot scopeKind = iota
	scopeObject
	scopeArray
)

func (k scopeKind) String() string {
	switch k {
	case scopeObject:
		return "object"
	case scopeArray:
		return "array"
	default:
		return "root"
	}
}

// scope is one level of nesting of a document cursor. Exactly one scope per
// cursor is the innermost open scope; only nodes bound to it may be used.
type scope struct {
	kind   scopeKind
	parent *scope
	stack  *scopeStack
	open   bool
	path   Path

	// pending is set while a position is selected but its value has not been
	// produced or consumed: the root value, an object key, or an array index.
	pending bool
	key     string
	index   int

	// sel numbers the current selection. Every node records the selection it
	// was handed out for and is unusable once the scope has moved on.
	sel uint64
}

type scopeStack struct {
	top   *scope
	depth int
}

func newScopeStack() (*scopeStack, *scope) {
	s := &scopeStack{}
	root := &scope{kind: scopeRoot, stack: s, open: true, pending: true}
	s.top = root
	return s, root
}

// check panics unless sc is the innermost open scope.
func (sc *scope) check(op string) {
	if !sc.open {
		usagef(op, "%s scope is already closed", sc.kind)
	}
	if top := sc.stack.top; top != sc {
		usagef(op, "%s scope used while a nested %s scope is open", sc.kind, top.kind)
	}
}

// selectNext starts a new selection, superseding every node handed out
// before.
func (sc *scope) selectNext() uint64 {
	sc.sel++
	return sc.sel
}

// checkNode is check for a node bound to selection sel.
func (sc *scope) checkNode(op string, sel uint64) {
	sc.check(op)
	if sel != sc.sel {
		usagef(op, "node used after the %s moved to another position", sc.kind)
	}
}

// at returns the path of the position selected in sc.
func (sc *scope) at() Path {
	switch sc.kind {
	case scopeObject:
		return sc.path.Field(sc.key)
	case scopeArray:
		return sc.path.Index(sc.index)
	default:
		return sc.path
	}
}

func (s *scopeStack) push(parent *scope, kind scopeKind, path Path) *scope {
	child := &scope{kind: kind, parent: parent, stack: s, open: true, path: path}
	s.top = child
	s.depth++
	return child
}

func (s *scopeStack) pop(sc *scope, op string) {
	sc.check(op)
	if sc.kind == scopeRoot {
		usagef(op, "the root scope cannot be closed")
	}
	sc.open = false
	s.top = sc.parent
	s.depth--
}

// unwind closes sc and every scope still open inside it without checking the
// protocol, calling release for each. It runs on error and panic paths so the
// depth bookkeeping matches the actual nesting.
func (s *scopeStack) unwind(sc *scope, release func(*scope)) {
	if !sc.open {
		return
	}
	for s.top != nil && s.top != sc.parent {
		top := s.top
		release(top)
		top.open = false
		s.top = top.parent
		s.depth--
	}
}
