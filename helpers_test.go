package huse_test

import (
	"bytes"
	"testing"

	"github.com/reoring/huse"
	"github.com/reoring/huse/json"
)

// expectUsage runs fn and fails the test unless it panics with *huse.UsageError.
func expectUsage(t *testing.T, fn func()) *huse.UsageError {
	t.Helper()
	var got *huse.UsageError
	func() {
		defer func() {
			r := recover()
			ue, ok := r.(*huse.UsageError)
			if !ok {
				t.Fatalf("expected *huse.UsageError panic, got %#v", r)
			}
			got = ue
		}()
		fn()
	}()
	return got
}

// encode runs fn against a compact JSON serializer and returns the output.
func encode(t *testing.T, fn func(s *huse.Serializer) error) string {
	t.Helper()
	var buf bytes.Buffer
	s := json.NewSerializer(&buf, json.Options{})
	if err := fn(s); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return buf.String()
}

// decode loads doc with the JSON reader and runs fn on the root node.
func decode(t *testing.T, doc string, fn func(d *huse.Deserializer) error) error {
	t.Helper()
	d, err := json.NewDeserializerBytes([]byte(doc))
	if err != nil {
		t.Fatalf("load %s: %v", doc, err)
	}
	if err := fn(d); err != nil {
		return err
	}
	return d.Close()
}

// issueAt fails unless err carries an issue with code at path.
func issueAt(t *testing.T, err error, code, path string) {
	t.Helper()
	iss, ok := huse.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected issues, got %v", err)
	}
	if iss[0].Code != code || iss[0].Path != path {
		t.Fatalf("expected %s at %s, got %s at %s (%s)", code, path, iss[0].Code, iss[0].Path, iss[0].Message)
	}
}
