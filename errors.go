package huse

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes for data errors.
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeOutOfRange    = "out_of_range"
	CodeOverflow      = "overflow"
	CodeNotFinite     = "not_finite"
	CodeDuplicateKey  = "duplicate_key"
	CodeParseError    = "parse_error"
	CodeTruncated     = "truncated"
	CodeInvalidFormat = "invalid_format"
)

// Issue represents a single data error.
type Issue struct {
	Path    string // JSON Pointer of the offending value (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	Offset  int64 // Byte offset in the input source (-1 when unknown).
}

func (it Issue) String() string {
	path := it.Path
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("%s at %s: %s", it.Code, path, it.Message)
}

// Issues is a collection of data errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(iss[i].String())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the causes of the collected issues.
func (iss Issues) Unwrap() []error {
	var errs []error
	for _, it := range iss {
		if it.Cause != nil {
			errs = append(errs, it.Cause)
		}
	}
	return errs
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// NewIssue returns a single data error. Backends use it to refuse a value.
func NewIssue(code, msg string) Issues {
	return AppendIssues(nil, Issue{Code: code, Message: msg, Offset: -1})
}

// HasCode reports whether err carries an issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// withPath fills in the path of issues that do not carry one yet. Errors that
// are not Issues are returned unchanged.
func withPath(err error, path string) error {
	iss, ok := AsIssues(err)
	if !ok {
		return err
	}
	out := make(Issues, len(iss))
	for i, it := range iss {
		if it.Path == "" {
			it.Path = path
		}
		out[i] = it
	}
	return out
}

// UsageError reports a violation of the node protocol by the caller, such as
// using a node while one of its descendants is open. It is raised with panic
// and is never returned as an error.
type UsageError struct {
	Op  string
	Msg string
}

func (e *UsageError) Error() string { return "huse: " + e.Op + ": " + e.Msg }

func usagef(op, format string, args ...any) {
	panic(&UsageError{Op: op, Msg: fmt.Sprintf(format, args...)})
}
