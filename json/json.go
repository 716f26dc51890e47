// Package json is the JSON backend: a Writer producing compact or indented
// text, and readers that load a document through the pluggable JSON driver.
//
//	var buf bytes.Buffer
//	s := json.NewSerializer(&buf, json.Options{})
//	err := s.Object(func(o *huse.SerializerObject) error {
//		return huse.PutKey(o, "a", 1)
//	})
//	if err == nil {
//		err = s.Close()
//	}
//	// buf: {"a":1}
package json

import (
	"bytes"

	"github.com/reoring/huse"
)

// Marshal renders v as a JSON document.
func Marshal(v huse.Marshaler, opt Options) ([]byte, error) {
	var buf bytes.Buffer
	s := NewSerializer(&buf, opt)
	if err := s.Val(v); err != nil {
		return nil, err
	}
	if err := s.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal loads data and lets v read the root value.
func Unmarshal(data []byte, v huse.Unmarshaler, opts ...huse.DecodeOpt) error {
	d, err := NewDeserializerBytes(data, opts...)
	if err != nil {
		return err
	}
	if err := d.Val(v); err != nil {
		return err
	}
	return d.Close()
}
