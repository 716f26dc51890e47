// Package json provides a JSON token source backed by encoding/json.
package json

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	eng "github.com/reoring/huse/internal/engine"
)

type jsonSource struct {
	dec        *json.Decoder
	keys       eng.KeyTracker
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()

	t := eng.Token{Offset: s.lastOffset}
	switch v := tok.(type) {
	case json.Delim:
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
	case json.Number:
		s.keys.Value()
		t.Kind = eng.KindNumber
		t.Number = string(v)
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

func (s *jsonSource) Location() int64 { return s.lastOffset }
