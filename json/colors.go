package json

import (
	"github.com/fatih/color"

	"github.com/reoring/huse"
)

// Colors maps keys and scalar types to painting functions. Missing entries
// leave the text as is.
type Colors struct {
	Key   func(string) string
	Value map[huse.Type]func(string) string
}

// NewColors returns the default terminal palette.
func NewColors() *Colors {
	number := sprint(color.RGB(128, 216, 236))
	boolean := sprint(color.New(color.FgCyan))
	return &Colors{
		Key: sprint(color.RGB(128, 168, 196)),
		Value: map[huse.Type]func(string) string{
			huse.TypeString:  sprint(color.RGB(8, 196, 16)),
			huse.TypeInteger: number,
			huse.TypeFloat:   number,
			huse.TypeTrue:    boolean,
			huse.TypeFalse:   boolean,
			huse.TypeNull:    sprint(color.RGB(168, 0, 196)),
		},
	}
}

// sprint forces c on: whether to colour at all is decided by the caller
// setting Options.Colors, not by fatih/color's terminal detection.
func sprint(c *color.Color) func(string) string {
	c.EnableColor()
	f := c.SprintFunc()
	return func(s string) string { return f(s) }
}

func (c *Colors) paint(t huse.Type, s string) string {
	if c == nil {
		return s
	}
	if f := c.Value[t]; f != nil {
		return f(s)
	}
	return s
}

func (c *Colors) key(s string) string {
	if c == nil || c.Key == nil {
		return s
	}
	return c.Key(s)
}
