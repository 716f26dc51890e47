package huse

import (
	"strconv"
	"strings"
)

// Path builds JSON Pointers in a chain-safe way. The zero value is the
// document root.
type Path struct {
	parts []string
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Field returns the path of the named member of p.
func (p Path) Field(name string) Path {
	return Path{parts: append(append([]string{}, p.parts...), pointerEscaper.Replace(name))}
}

// Index returns the path of the i-th element of p.
func (p Path) Index(i int) Path {
	return Path{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

// Pointer renders p as an RFC 6901 JSON Pointer; the root renders as "/".
func (p Path) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p Path) String() string { return p.Pointer() }
