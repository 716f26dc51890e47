package huse

import (
	"errors"
	"io"
	"sync"

	eng "github.com/reoring/huse/internal/engine"
	drvgojson "github.com/reoring/huse/source/gojson"
	jsonsrc "github.com/reoring/huse/source/json"
)

// TokenKind enumerates the kinds of tokens a Source yields.
type TokenKind = eng.Kind

const (
	TokenBeginObject = eng.KindBeginObject
	TokenEndObject   = eng.KindEndObject
	TokenBeginArray  = eng.KindBeginArray
	TokenEndArray    = eng.KindEndArray
	TokenKey         = eng.KindKey
	TokenString      = eng.KindString
	TokenNumber      = eng.KindNumber
	TokenBool        = eng.KindBool
	TokenNull        = eng.KindNull
)

// Token describes a token in the input stream. Offset records the byte
// position when known (-1 otherwise).
type Token = eng.Token

// Source is a forward-only stream of document tokens. Readers of any format
// that can be expressed as tokens build on it, so they share enforcement.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver converts JSON input into a Source. The default driver is backed
// by goccy/go-json and may be swapped with SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = goJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the go-json backed driver.
func UseDefaultJSONDriver() { SetJSONDriver(goJSONDriver{}) }

// CurrentJSONDriver returns the driver used by JSONReader and JSONBytes.
func CurrentJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

type goJSONDriver struct{}

func (goJSONDriver) NewReader(r io.Reader) Source { return drvgojson.NewReader(r) }
func (goJSONDriver) NewBytes(b []byte) Source     { return drvgojson.NewBytes(b) }
func (goJSONDriver) Name() string                 { return "go-json" }

// StdJSONDriver returns the encoding/json backed driver. Its sources report
// byte offsets, which MaxBytes enforcement and issue offsets rely on.
func StdJSONDriver() JSONDriver { return stdJSONDriver{} }

type stdJSONDriver struct{}

func (stdJSONDriver) NewReader(r io.Reader) Source { return jsonsrc.NewReader(r) }
func (stdJSONDriver) NewBytes(b []byte) Source     { return jsonsrc.NewBytes(b) }
func (stdJSONDriver) Name() string                 { return "encoding/json" }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return CurrentJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return CurrentJSONDriver().NewBytes(b) }

// EnforceSource wraps s with duplicate key, depth and size enforcement.
// Non-fatal issues are forwarded to opt.IssueSink.
func EnforceSource(s Source, opt DecodeOpt) Source {
	if opt.Strictness.OnDuplicateKey == Ignore && opt.MaxDepth == 0 && opt.MaxBytes == 0 {
		return s
	}
	var forward func(eng.SimpleIssue)
	if opt.IssueSink != nil {
		forward = func(si eng.SimpleIssue) {
			opt.IssueSink(Issue{Path: si.Path, Code: si.Code, Message: si.Message, Offset: s.Location()})
		}
	}
	return eng.WrapWithEnforcement(s, eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink:   forward,
	})
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

// SourceError converts an error produced while pulling tokens into Issues.
func SourceError(err error, s Source) error {
	if err == nil {
		return nil
	}
	if _, ok := AsIssues(err); ok {
		return err
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message, Offset: s.Location()})
	}
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return AppendIssues(nil, Issue{Code: CodeParseError, Message: err.Error(), Cause: err, Offset: s.Location()})
}
