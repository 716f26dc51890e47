package dom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/huse"
	eng "github.com/reoring/huse/internal/engine"
)

// Cursor walks a loaded document forward. It implements huse.Reader.
type Cursor struct {
	cur    *Value
	frames []frame
}

type frame struct {
	v    *Value
	next int // next member returned by LoadNextKey
}

var _ huse.Reader = (*Cursor)(nil)

// NewCursor returns a cursor positioned on root.
func NewCursor(root *Value) *Cursor { return &Cursor{cur: root} }

func (c *Cursor) PendingType() huse.Type {
	if c.cur == nil {
		return huse.TypeNull
	}
	return c.cur.Type()
}

func (c *Cursor) mismatch(want string) error {
	return huse.NewIssue(huse.CodeInvalidType, fmt.Sprintf("expected %s, got %s", want, c.PendingType()))
}

func (c *Cursor) ReadBool() (bool, error) {
	if !c.PendingType().IsBoolean() {
		return false, c.mismatch("boolean")
	}
	return c.cur.Bool, nil
}

func (c *Cursor) ReadInt(bits int) (int64, error) {
	if c.PendingType() != huse.TypeInteger {
		return 0, c.mismatch("integer")
	}
	i, err := strconv.ParseInt(c.cur.Text, 10, bits)
	if err != nil {
		return 0, numberError(err, c.cur.Text, "int", bits)
	}
	return i, nil
}

func (c *Cursor) ReadUint(bits int) (uint64, error) {
	if c.PendingType() != huse.TypeInteger {
		return 0, c.mismatch("integer")
	}
	text := c.cur.Text
	if neg, ok := strings.CutPrefix(text, "-"); ok {
		if strings.Trim(neg, "0") != "" {
			return 0, huse.NewIssue(huse.CodeOverflow, fmt.Sprintf("%s does not fit in uint%d", text, bits))
		}
		return 0, nil
	}
	u, err := strconv.ParseUint(text, 10, bits)
	if err != nil {
		return 0, numberError(err, text, "uint", bits)
	}
	return u, nil
}

func (c *Cursor) ReadFloat(bits int) (float64, error) {
	if !c.PendingType().IsNumber() {
		return 0, c.mismatch("number")
	}
	f, err := strconv.ParseFloat(c.cur.Text, bits)
	if err != nil {
		return 0, numberError(err, c.cur.Text, "float", bits)
	}
	return f, nil
}

func numberError(err error, text, kind string, bits int) error {
	if errors.Is(err, strconv.ErrRange) {
		return huse.NewIssue(huse.CodeOverflow, fmt.Sprintf("%s does not fit in %s%d", text, kind, bits))
	}
	return huse.AppendIssues(nil, huse.Issue{Code: huse.CodeParseError, Message: err.Error(), Cause: err, Offset: -1})
}

func (c *Cursor) ReadString() (string, error) {
	if c.PendingType() != huse.TypeString {
		return "", c.mismatch("string")
	}
	return c.cur.Text, nil
}

func (c *Cursor) load(t huse.Type) error {
	if c.PendingType() != t {
		return c.mismatch(t.String())
	}
	c.frames = append(c.frames, frame{v: c.cur})
	c.cur = nil
	return nil
}

func (c *Cursor) unload() error {
	if n := len(c.frames); n > 0 {
		c.frames = c.frames[:n-1]
	}
	c.cur = nil
	return nil
}

func (c *Cursor) LoadObject() error   { return c.load(huse.TypeObject) }
func (c *Cursor) UnloadObject() error { return c.unload() }
func (c *Cursor) LoadArray() error    { return c.load(huse.TypeArray) }
func (c *Cursor) UnloadArray() error  { return c.unload() }

func (c *Cursor) top() *frame {
	if n := len(c.frames); n > 0 {
		return &c.frames[n-1]
	}
	return nil
}

func (c *Cursor) Len() int {
	f := c.top()
	if f == nil {
		return 0
	}
	if f.v.Kind == eng.KindBeginObject {
		return len(f.v.Members)
	}
	return len(f.v.Elems)
}

// lookup returns the last member named k so that duplicates resolve the way
// encoding/json resolves them.
func (c *Cursor) lookup(k string) *Value {
	f := c.top()
	if f == nil {
		return nil
	}
	for i := len(f.v.Members) - 1; i >= 0; i-- {
		if f.v.Members[i].Key == k {
			return f.v.Members[i].Value
		}
	}
	return nil
}

func (c *Cursor) LoadKey(k string) error {
	v := c.lookup(k)
	if v == nil {
		c.cur = nil
		return huse.NewIssue(huse.CodeRequired, fmt.Sprintf("missing required key %q", k))
	}
	c.cur = v
	return nil
}

func (c *Cursor) TryLoadKey(k string) bool {
	v := c.lookup(k)
	c.cur = v
	return v != nil
}

func (c *Cursor) LoadIndex(i int) error {
	f := c.top()
	if f == nil || i < 0 || i >= len(f.v.Elems) {
		c.cur = nil
		return huse.NewIssue(huse.CodeOutOfRange, fmt.Sprintf("index %d out of range [0,%d)", i, c.Len()))
	}
	c.cur = f.v.Elems[i]
	return nil
}

// LoadNextKey walks the distinct keys in the order of their last occurrence.
func (c *Cursor) LoadNextKey() (string, bool) {
	f := c.top()
	if f == nil || f.next >= len(f.v.Members) {
		c.cur = nil
		return "", false
	}
	m := f.v.Members[f.next]
	f.next++
	c.cur = m.Value
	return m.Key, true
}
