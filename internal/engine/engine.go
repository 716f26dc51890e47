package engine

import (
	"fmt"
	"io"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBeginObject:
		return "begin object"
	case KindEndObject:
		return "end object"
	case KindBeginArray:
		return "begin array"
	case KindEndArray:
		return "end array"
	case KindKey:
		return "key"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "null"
	}
}

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string // Number text as found in the input.
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// ExpectEOF fails when src still has tokens after the root value.
func ExpectEOF(src TokenSource) error {
	tok, err := src.NextToken()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	return IssueError{SimpleIssue{
		Code:    "parse_error",
		Path:    "/",
		Message: fmt.Sprintf("unexpected %s after the root value", tok.Kind),
	}}
}
