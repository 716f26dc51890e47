// Package yaml is the YAML backend built on gopkg.in/yaml.v3.
//
// Unlike the JSON backend it keeps 64-bit integers and non-finite floats, so
// the same value may be writable here and refused there.
package yaml

import (
	"bytes"

	"github.com/reoring/huse"
)

// Marshal renders v as a YAML document.
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
	d, err := NewDeserializer(data, opts...)
	if err != nil {
		return err
	}
	if err := d.Val(v); err != nil {
		return err
	}
	return d.Close()
}
