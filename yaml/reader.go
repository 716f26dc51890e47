package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/reoring/huse"
	"github.com/reoring/huse/internal/dom"
	eng "github.com/reoring/huse/internal/engine"
)

// tokens replays a flattened node tree as a huse.Source. yaml.v3 keeps line
// and column but no byte offsets, so locations are unknown.
type tokens struct {
	toks []huse.Token
	next int
}

func (t *tokens) NextToken() (huse.Token, error) {
	if t.next >= len(t.toks) {
		return huse.Token{}, io.EOF
	}
	tok := t.toks[t.next]
	t.next++
	return tok, nil
}

func (t *tokens) Location() int64 { return -1 }

// NewSource flattens a yaml.v3 node into tokens. Aliases are expanded, merge
// keys are inlined and scalars are resolved with their YAML tags, so numbers
// carry canonical text (.inf becomes +Inf).
//
// Alias expansion is capped relative to the size of the node tree, so a
// small document that fans out through nested aliases fails instead of
// expanding exponentially.
func NewSource(n *yaml.Node) (huse.Source, error) {
	f := &flattener{active: map[*yaml.Node]bool{}, limit: expansionLimit(n)}
	if err := f.value(n); err != nil {
		return nil, err
	}
	return &tokens{toks: f.toks}, nil
}

// Without aliases a node yields at most two tokens; the rest is headroom for
// ordinary anchor reuse.
const (
	tokensPerNode = 32
	minTokenLimit = 4096
)

func expansionLimit(root *yaml.Node) int {
	nodes := 0
	var walk func(n *yaml.Node)
	walk = func(n *yaml.Node) {
		nodes++
		for _, c := range n.Content {
			walk(c)
		}
	}
	walk(root)
	return tokensPerNode*nodes + minTokenLimit
}

type flattener struct {
	toks   []huse.Token
	active map[*yaml.Node]bool
	limit  int
}

func (f *flattener) emit(t huse.Token) {
	t.Offset = -1
	f.toks = append(f.toks, t)
}

func (f *flattener) value(n *yaml.Node) error {
	if len(f.toks) > f.limit {
		return fmt.Errorf("alias expansion exceeds %d tokens", f.limit)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return errors.New("empty document")
		}
		return f.value(n.Content[0])
	case yaml.AliasNode:
		if f.active[n.Alias] {
			return fmt.Errorf("line %d: anchor %q contains itself", n.Line, n.Value)
		}
		f.active[n.Alias] = true
		defer delete(f.active, n.Alias)
		return f.value(n.Alias)
	case yaml.MappingNode:
		f.emit(huse.Token{Kind: huse.TokenBeginObject})
		if err := f.members(n); err != nil {
			return err
		}
		f.emit(huse.Token{Kind: huse.TokenEndObject})
		return nil
	case yaml.SequenceNode:
		f.emit(huse.Token{Kind: huse.TokenBeginArray})
		for _, c := range n.Content {
			if err := f.value(c); err != nil {
				return err
			}
		}
		f.emit(huse.Token{Kind: huse.TokenEndArray})
		return nil
	case yaml.ScalarNode:
		tok, err := scalarToken(n)
		if err != nil {
			return err
		}
		f.emit(tok)
		return nil
	default:
		return fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

func (f *flattener) members(n *yaml.Node) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			if err := f.merge(v); err != nil {
				return err
			}
			continue
		}
		if k.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
		}
		f.emit(huse.Token{Kind: huse.TokenKey, String: k.Value})
		if err := f.value(v); err != nil {
			return err
		}
	}
	return nil
}

// merge inlines the members of a "<<" value: a mapping, an alias to one, or a
// sequence of those.
func (f *flattener) merge(v *yaml.Node) error {
	for v.Kind == yaml.AliasNode {
		v = v.Alias
	}
	switch v.Kind {
	case yaml.MappingNode:
		return f.members(v)
	case yaml.SequenceNode:
		for _, c := range v.Content {
			if err := f.merge(c); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("line %d: merge value must be a mapping", v.Line)
	}
}

func scalarToken(n *yaml.Node) (huse.Token, error) {
	switch n.ShortTag() {
	case "!!null":
		return huse.Token{Kind: huse.TokenNull}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return huse.Token{}, err
		}
		return huse.Token{Kind: huse.TokenBool, Bool: b}, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return huse.Token{Kind: huse.TokenNumber, Number: strconv.FormatInt(i, 10)}, nil
		}
		var u uint64
		if err := n.Decode(&u); err != nil {
			return huse.Token{}, err
		}
		return huse.Token{Kind: huse.TokenNumber, Number: strconv.FormatUint(u, 10)}, nil
	case "!!float":
		var x float64
		if err := n.Decode(&x); err != nil {
			return huse.Token{}, err
		}
		var text string
		switch {
		case math.IsNaN(x):
			text = "NaN"
		case math.IsInf(x, 1):
			text = "+Inf"
		case math.IsInf(x, -1):
			text = "-Inf"
		default:
			text = floatText(x, 64)
		}
		return huse.Token{Kind: huse.TokenNumber, Number: text}, nil
	default:
		return huse.Token{Kind: huse.TokenString, String: n.Value}, nil
	}
}

// NewDeserializer loads exactly one YAML document from data. A second
// document in the stream is a parse error.
func NewDeserializer(data []byte, opts ...huse.DecodeOpt) (*huse.Deserializer, error) {
	var opt huse.DecodeOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, huse.NewIssue(huse.CodeTruncated, "max bytes exceeded")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, huse.NewIssue(huse.CodeParseError, "empty document")
		}
		return nil, huse.NewIssue(huse.CodeParseError, err.Error())
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, huse.NewIssue(huse.CodeParseError, "unexpected document after the root value")
	}
	src, err := NewSource(&doc)
	if err != nil {
		return nil, huse.NewIssue(huse.CodeParseError, err.Error())
	}
	root, err := dom.Build(huse.EnforceSource(src, opt))
	if err != nil {
		return nil, huse.SourceError(err, src)
	}
	return huse.NewDeserializer(dom.NewCursor(root)), nil
}

var _ eng.TokenSource = (*tokens)(nil)
