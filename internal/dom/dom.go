// Package dom holds a fully loaded document in input order and a cursor over
// it implementing huse.Reader.
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/reoring/huse"
	eng "github.com/reoring/huse/internal/engine"
)

// Member is one key/value pair of an object, in document order.
type Member struct {
	Key   string
	Value *Value
}

// Value is a loaded document value.
type Value struct {
	Kind    eng.Kind // KindBeginObject, KindBeginArray or a scalar kind.
	Text    string   // string contents or number text
	Bool    bool
	Members []Member
	Elems   []*Value
}

// Type classifies v.
func (v *Value) Type() huse.Type {
	switch v.Kind {
	case eng.KindBeginObject:
		return huse.TypeObject
	case eng.KindBeginArray:
		return huse.TypeArray
	case eng.KindString:
		return huse.TypeString
	case eng.KindBool:
		if v.Bool {
			return huse.TypeTrue
		}
		return huse.TypeFalse
	case eng.KindNumber:
		if isIntegerText(v.Text) {
			return huse.TypeInteger
		}
		return huse.TypeFloat
	default:
		return huse.TypeNull
	}
}

func isIntegerText(s string) bool {
	return s != "" && !strings.ContainsAny(s, ".eEnNiI")
}

// Build reads exactly one value from src and fails when tokens remain.
func Build(src eng.TokenSource) (*Value, error) {
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	v, err := build(src, tok)
	if err != nil {
		return nil, err
	}
	if err := eng.ExpectEOF(src); err != nil {
		return nil, err
	}
	return v, nil
}

func build(src eng.TokenSource, tok eng.Token) (*Value, error) {
	switch tok.Kind {
	case eng.KindBeginObject:
		return buildObject(src)
	case eng.KindBeginArray:
		return buildArray(src)
	case eng.KindString:
		return &Value{Kind: tok.Kind, Text: tok.String}, nil
	case eng.KindNumber:
		return &Value{Kind: tok.Kind, Text: tok.Number}, nil
	case eng.KindBool:
		return &Value{Kind: tok.Kind, Bool: tok.Bool}, nil
	case eng.KindNull:
		return &Value{Kind: tok.Kind}, nil
	default:
		return nil, fmt.Errorf("unexpected %s", tok.Kind)
	}
}

// buildObject keeps one member per key: the last occurrence, at its own
// position. Enforcement has already seen every occurrence.
func buildObject(src eng.TokenSource) (*Value, error) {
	obj := &Value{Kind: eng.KindBeginObject}
	last := map[string]int{}
	for {
		tok, err := next(src)
		if err != nil {
			return nil, err
		}
		if tok.Kind == eng.KindEndObject {
			if len(last) != len(obj.Members) {
				obj.Members = lastWins(obj.Members, last)
			}
			return obj, nil
		}
		if tok.Kind != eng.KindKey {
			return nil, fmt.Errorf("unexpected %s in object", tok.Kind)
		}
		vt, err := next(src)
		if err != nil {
			return nil, err
		}
		v, err := build(src, vt)
		if err != nil {
			return nil, err
		}
		last[tok.String] = len(obj.Members)
		obj.Members = append(obj.Members, Member{Key: tok.String, Value: v})
	}
}

func lastWins(ms []Member, last map[string]int) []Member {
	out := ms[:0]
	for i, m := range ms {
		if last[m.Key] == i {
			out = append(out, m)
		}
	}
	return out
}

func buildArray(src eng.TokenSource) (*Value, error) {
	arr := &Value{Kind: eng.KindBeginArray}
	for {
		tok, err := next(src)
		if err != nil {
			return nil, err
		}
		if tok.Kind == eng.KindEndArray {
			return arr, nil
		}
		v, err := build(src, tok)
		if err != nil {
			return nil, err
		}
		arr.Elems = append(arr.Elems, v)
	}
}

// next treats the end of input inside a compound as truncated input.
func next(src eng.TokenSource) (eng.Token, error) {
	tok, err := src.NextToken()
	if err == io.EOF {
		return tok, io.ErrUnexpectedEOF
	}
	return tok, err
}
