package json

import (
	"io"

	"github.com/reoring/huse"
	"github.com/reoring/huse/internal/dom"
)

// NewDeserializer loads one JSON document from src and returns a document
// cursor over it. Trailing data after the root value is a parse error.
// When several options are given the last one wins.
//
// MaxBytes is enforced from the source's byte offsets, or from its input size
// when it reports one (both built-in drivers do one or the other). A custom
// Source with neither is only bounded by NewDeserializerBytes and
// NewDeserializerReader, which check the size themselves.
func NewDeserializer(src huse.Source, opts ...huse.DecodeOpt) (*huse.Deserializer, error) {
	opt := lastOpt(opts)
	root, err := dom.Build(huse.EnforceSource(src, opt))
	if err != nil {
		return nil, huse.SourceError(err, src)
	}
	return huse.NewDeserializer(dom.NewCursor(root)), nil
}

// NewDeserializerBytes is NewDeserializer over the current JSON driver.
func NewDeserializerBytes(data []byte, opts ...huse.DecodeOpt) (*huse.Deserializer, error) {
	if max := lastOpt(opts).MaxBytes; max > 0 && int64(len(data)) > max {
		return nil, huse.NewIssue(huse.CodeTruncated, "max bytes exceeded")
	}
	return NewDeserializer(huse.JSONBytes(data), opts...)
}

// NewDeserializerReader reads JSON from r. When MaxBytes is set the size cap is
// enforced up front, since not every driver reports byte offsets.
func NewDeserializerReader(r io.Reader, opts ...huse.DecodeOpt) (*huse.Deserializer, error) {
	max := lastOpt(opts).MaxBytes
	if max <= 0 {
		return NewDeserializer(huse.JSONReader(r), opts...)
	}
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, huse.NewIssue(huse.CodeParseError, err.Error())
	}
	return NewDeserializerBytes(data, opts...)
}

func lastOpt(opts []huse.DecodeOpt) huse.DecodeOpt {
	if len(opts) == 0 {
		return huse.DecodeOpt{}
	}
	return opts[len(opts)-1]
}
