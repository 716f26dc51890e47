package engine

import (
	"strconv"
	"strings"
)

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int64
	// IssueSink receives every issue, fatal or not. May be nil.
	IssueSink func(SimpleIssue)
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

// WrapWithEnforcement returns a TokenSource that enforces the duplicate key
// policy, the maximum nesting depth and the maximum consumed bytes while the
// tokens stream through.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type frame struct {
	object bool
	path   string
	keys   map[string]struct{}
	// key is the member whose value comes next; next is the next array index.
	key  string
	next int
}

// Sized is implemented by sources that know their input length up front.
// MaxBytes is checked against it before the first token, which covers sources
// that cannot report offsets.
type Sized interface {
	Size() int64
}

type enforcingTokenSource struct {
	inner   TokenSource
	opt     EnforceOptions
	stack   []frame
	started bool
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }

func (e *enforcingTokenSource) NextToken() (Token, error) {
	if !e.started {
		e.started = true
		if sz, ok := e.inner.(Sized); ok && e.opt.MaxBytes > 0 && sz.Size() > e.opt.MaxBytes {
			return Token{}, e.report(SimpleIssue{Code: "truncated", Path: "/", Message: "max bytes exceeded"}, true)
		}
	}
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		path := e.valuePath()
		e.stack = append(e.stack, frame{object: tok.Kind == KindBeginObject, path: path, keys: map[string]struct{}{}})
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, e.report(SimpleIssue{Code: "parse_error", Path: pointerOrRoot(path), Message: "max depth exceeded"}, true)
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			top.key = tok.String
			if _, dup := top.keys[tok.String]; dup && e.opt.OnDuplicate != DupIgnore {
				si := SimpleIssue{Code: "duplicate_key", Path: pointerOrRoot(joinPointer(top.path, tok.String)), Message: "key '" + tok.String + "' duplicated"}
				if err := e.report(si, e.opt.OnDuplicate == DupError); err != nil {
					return Token{}, err
				}
			}
			top.keys[tok.String] = struct{}{}
		}
	default:
		e.valuePath()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off > e.opt.MaxBytes {
			return Token{}, e.report(SimpleIssue{Code: "truncated", Path: "/", Message: "max bytes exceeded"}, true)
		}
	}
	return tok, nil
}

// valuePath returns the pointer of the value starting now and advances the
// array index of the enclosing frame.
func (e *enforcingTokenSource) valuePath() string {
	n := len(e.stack)
	if n == 0 {
		return ""
	}
	top := &e.stack[n-1]
	if top.object {
		return joinPointer(top.path, top.key)
	}
	p := joinPointer(top.path, strconv.Itoa(top.next))
	top.next++
	return p
}

func (e *enforcingTokenSource) report(si SimpleIssue, fatal bool) error {
	if e.opt.IssueSink != nil {
		e.opt.IssueSink(si)
	}
	if fatal {
		return IssueError{si}
	}
	return nil
}

func pointerOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinPointer(base, token string) string {
	return base + "/" + pointerEscaper.Replace(token)
}
