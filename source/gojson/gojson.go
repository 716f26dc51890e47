// Package gojson provides a JSON token source backed by goccy/go-json. It is
// the default JSON driver.
package gojson

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/huse/internal/engine"
)

var errInvalid = errors.New("invalid JSON")

type source struct {
	dec  *j.Decoder
	keys eng.KeyTracker
	size int64
	err  error
}

// NewReader reads r to the end and tokenizes it like NewBytes.
func NewReader(r io.Reader) eng.TokenSource {
	b, err := io.ReadAll(r)
	if err != nil {
		return &source{size: int64(len(b)), err: err}
	}
	return NewBytes(b)
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using
// go-json. go-json's token decoder skips separators without checking them, so
// the whole input is validated first and malformed text fails on the first
// token.
func NewBytes(b []byte) eng.TokenSource {
	s := &source{size: int64(len(b))}
	if !j.Valid(b) {
		s.err = syntaxError(b)
		return s
	}
	s.dec = j.NewDecoder(bytes.NewReader(b))
	s.dec.UseNumber()
	return s
}

// syntaxError prefers go-json's own description of the defect.
func syntaxError(b []byte) error {
	var v any
	if err := j.Unmarshal(b, &v); err != nil {
		return err
	}
	return errInvalid
}

func (s *source) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	t := eng.Token{Offset: -1}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.keys.Open(true)
			t.Kind = eng.KindBeginObject
		case '[':
			s.keys.Open(false)
			t.Kind = eng.KindBeginArray
		case '}':
			s.keys.Close()
			t.Kind = eng.KindEndObject
		default:
			s.keys.Close()
			t.Kind = eng.KindEndArray
		}
	case string:
		t.Kind = s.keys.Classify()
		t.String = v
	case bool:
		s.keys.Value()
		t.Kind = eng.KindBool
		t.Bool = v
	case j.Number:
		if !validNumber(string(v)) {
			s.err = errors.New("invalid number literal " + strconv.Quote(string(v)))
			return eng.Token{}, s.err
		}
		s.keys.Value()
		t.Kind = eng.KindNumber
		// The text aliases the decoder's read buffer.
		t.Number = strings.Clone(string(v))
	case float64:
		s.keys.Value()
		t.Kind = eng.KindNumber
		t.Number = strconv.FormatFloat(v, 'g', -1, 64)
	default:
		s.keys.Value()
		t.Kind = eng.KindNull
	}
	return t, nil
}

// Location is unknown for go-json's token decoder.
func (s *source) Location() int64 { return -1 }

// Size is the length of the input, so size limits apply before any token is
// decoded even though offsets are unknown.
func (s *source) Size() int64 { return s.size }

// validNumber reports whether text follows the JSON number grammar. go-json
// accepts leading zeros such as 01.
func validNumber(text string) bool {
	i := 0
	if i < len(text) && text[i] == '-' {
		i++
	}
	switch {
	case i < len(text) && text[i] == '0':
		i++
	case i < len(text) && text[i] >= '1' && text[i] <= '9':
		for i < len(text) && isDigit(text[i]) {
			i++
		}
	default:
		return false
	}
	if i < len(text) && text[i] == '.' {
		i++
		if i >= len(text) || !isDigit(text[i]) {
			return false
		}
		for i < len(text) && isDigit(text[i]) {
			i++
		}
	}
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		i++
		if i < len(text) && (text[i] == '+' || text[i] == '-') {
			i++
		}
		if i >= len(text) || !isDigit(text[i]) {
			return false
		}
		for i < len(text) && isDigit(text[i]) {
			i++
		}
	}
	return i == len(text)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
