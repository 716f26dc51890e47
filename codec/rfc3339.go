// Package codec provides free-function strategies for standard library types
// that cannot carry hook methods. Use them with huse.PutWith and huse.GetWith:
//
//	err := huse.PutWith(o.Key("at"), ev.At, codec.PutTime)
//
//	n, err := o.Key("at")
//	...
//	err = huse.GetWith(n, &ev.At, codec.GetTime)
package codec

import (
	"time"

	"github.com/reoring/huse"
)

// PutTime writes t as an RFC3339 string, normalized to UTC with trailing
// zeros of the fraction trimmed.
func PutTime(n *huse.SerializerNode, t time.Time) error {
	return huse.Put(n, formatRFC3339Canonical(t))
}

// GetTime reads an RFC3339 string. Both the plain and the nanosecond layout
// are accepted.
func GetTime(n *huse.DeserializerNode, t *time.Time) error {
	var s string
	if err := huse.Get(n, &s); err != nil {
		return err
	}
	v, err := parseRFC3339(s)
	if err != nil {
		return huse.AppendIssues(nil, huse.Issue{Code: huse.CodeInvalidFormat, Message: "invalid RFC3339 time", Cause: err, Offset: -1})
	}
	*t = v
	return nil
}

func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
