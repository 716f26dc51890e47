package json

import (
	"bufio"
	"io"
	"math"
	"strconv"

	"github.com/reoring/huse"
)

// maxExactInt is the largest integer magnitude a double represents exactly.
const maxExactInt = 1 << 53

// Options configures the JSON writer.
type Options struct {
	// Pretty puts every member and element on its own line, indented by two
	// spaces per level. The compact layout has no whitespace at all.
	Pretty bool
	// Colors paints keys and scalars. Nil disables colouring.
	Colors *Colors
}

// Writer produces JSON text. It implements huse.Writer.
//
// Integers wider than 32 bits are refused when a double cannot hold them
// exactly, and non-finite floats are refused: both are data errors.
type Writer struct {
	out    *bufio.Writer
	pretty bool
	colors *Colors

	depth         int
	hasValue      bool
	arrayJustOpen bool
}

var _ huse.Writer = (*Writer)(nil)

// NewWriter returns a Writer emitting to w. Output is buffered until Flush.
func NewWriter(w io.Writer, opt Options) *Writer {
	return &Writer{out: bufio.NewWriter(w), pretty: opt.Pretty, colors: opt.Colors}
}

// NewSerializer returns a document cursor writing JSON to w.
func NewSerializer(w io.Writer, opt Options) *huse.Serializer {
	return huse.NewSerializer(NewWriter(w, opt))
}

func (w *Writer) newLine() {
	if !w.pretty {
		return
	}
	w.out.WriteByte('\n')
	for i := 0; i < w.depth; i++ {
		w.out.WriteString("  ")
	}
}

func (w *Writer) prepareValue() {
	if w.hasValue {
		w.out.WriteByte(',')
		w.newLine()
	} else if w.arrayJustOpen {
		w.newLine()
		w.arrayJustOpen = false
	}
	w.hasValue = true
}

func (w *Writer) scalar(kind huse.Type, text string) {
	w.prepareValue()
	w.out.WriteString(w.colors.paint(kind, text))
}

func (w *Writer) WriteBool(v bool) error {
	if v {
		w.scalar(huse.TypeTrue, "true")
	} else {
		w.scalar(huse.TypeFalse, "false")
	}
	return nil
}

func (w *Writer) WriteInt(v int64, bits int) error {
	if bits > 32 && (v > maxExactInt || v < -maxExactInt) {
		return huse.NewIssue(huse.CodeOverflow, "integer too big")
	}
	w.scalar(huse.TypeInteger, strconv.FormatInt(v, 10))
	return nil
}

func (w *Writer) WriteUint(v uint64, bits int) error {
	if bits > 32 && v > maxExactInt {
		return huse.NewIssue(huse.CodeOverflow, "integer too big")
	}
	w.scalar(huse.TypeInteger, strconv.FormatUint(v, 10))
	return nil
}

func (w *Writer) WriteFloat(v float64, bits int) error {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return huse.NewIssue(huse.CodeNotFinite, "float not finite")
	}
	w.scalar(huse.TypeFloat, strconv.FormatFloat(v, 'g', -1, bits))
	return nil
}

func (w *Writer) WriteString(v string) error {
	w.scalar(huse.TypeString, quote(v))
	return nil
}

func (w *Writer) WriteNull() error {
	w.scalar(huse.TypeNull, "null")
	return nil
}

func (w *Writer) WriteRaw(fragment string) error {
	w.prepareValue()
	w.out.WriteString(fragment)
	return nil
}

func (w *Writer) WriteKey(k string) error {
	if w.hasValue {
		w.out.WriteByte(',')
	}
	w.newLine()
	w.out.WriteString(w.colors.key(quote(k)))
	w.out.WriteByte(':')
	w.hasValue = false
	return nil
}

func (w *Writer) open(c byte) {
	w.prepareValue()
	w.out.WriteByte(c)
	w.hasValue = false
	w.depth++
}

func (w *Writer) close(c byte) {
	w.depth--
	if w.hasValue {
		w.newLine()
	}
	w.out.WriteByte(c)
	w.hasValue = true
}

func (w *Writer) OpenObject() error {
	w.open('{')
	return nil
}

func (w *Writer) CloseObject() error {
	w.close('}')
	return nil
}

func (w *Writer) OpenArray() error {
	w.open('[')
	w.arrayJustOpen = true
	return nil
}

func (w *Writer) CloseArray() error {
	w.close(']')
	w.arrayJustOpen = false
	return nil
}

// Flush writes buffered output and reports the first I/O error, if any.
func (w *Writer) Flush() error { return w.out.Flush() }
