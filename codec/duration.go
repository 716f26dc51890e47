package codec

import (
	"time"

	"github.com/reoring/huse"
)

// PutDuration writes d in time.Duration.String form ("1h30m0s").
func PutDuration(n *huse.SerializerNode, d time.Duration) error {
	return huse.Put(n, d.String())
}

// GetDuration reads a duration string, or an integer count of nanoseconds.
func GetDuration(n *huse.DeserializerNode, d *time.Duration) error {
	if n.Type() == huse.TypeInteger {
		var ns int64
		if err := huse.Get(n, &ns); err != nil {
			return err
		}
		*d = time.Duration(ns)
		return nil
	}
	var s string
	if err := huse.Get(n, &s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return huse.AppendIssues(nil, huse.Issue{Code: huse.CodeInvalidFormat, Message: "invalid duration", Cause: err, Offset: -1})
	}
	*d = v
	return nil
}
