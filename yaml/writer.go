package yaml

import (
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/huse"
)

// Options configures the YAML writer.
type Options struct {
	// Compact emits the whole document in flow style on a single line.
	Compact bool
	// Indent is the block indentation width; zero means two spaces.
	Indent int
}

// Writer builds a yaml.v3 node tree and encodes it on Flush. It implements
// huse.Writer.
//
// Integers of every width are written natively and non-finite floats become
// .inf and .nan, so this backend never refuses a value.
type Writer struct {
	out   io.Writer
	opt   Options
	root  *yaml.Node
	open  []*yaml.Node
	key   string
	dirty bool
}

var _ huse.Writer = (*Writer)(nil)

// NewWriter returns a Writer that encodes to w on Flush.
func NewWriter(w io.Writer, opt Options) *Writer {
	return &Writer{out: w, opt: opt}
}

// NewSerializer returns a document cursor writing YAML to w.
func NewSerializer(w io.Writer, opt Options) *huse.Serializer {
	return huse.NewSerializer(NewWriter(w, opt))
}

func (w *Writer) add(n *yaml.Node) {
	w.dirty = true
	if len(w.open) == 0 {
		w.root = n
		return
	}
	top := w.open[len(w.open)-1]
	if top.Kind == yaml.MappingNode {
		top.Content = append(top.Content, scalar("!!str", w.key), n)
		return
	}
	top.Content = append(top.Content, n)
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func (w *Writer) WriteBool(v bool) error {
	w.add(scalar("!!bool", strconv.FormatBool(v)))
	return nil
}

func (w *Writer) WriteInt(v int64, _ int) error {
	w.add(scalar("!!int", strconv.FormatInt(v, 10)))
	return nil
}

func (w *Writer) WriteUint(v uint64, _ int) error {
	w.add(scalar("!!int", strconv.FormatUint(v, 10)))
	return nil
}

func (w *Writer) WriteFloat(v float64, bits int) error {
	var text string
	switch {
	case math.IsNaN(v):
		text = ".nan"
	case math.IsInf(v, 1):
		text = ".inf"
	case math.IsInf(v, -1):
		text = "-.inf"
	default:
		text = floatText(v, bits)
	}
	w.add(scalar("!!float", text))
	return nil
}

// floatText formats a finite float so that it still reads back as a float.
func floatText(v float64, bits int) string {
	s := strconv.FormatFloat(v, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eEnNiI") {
		s += ".0"
	}
	return s
}

func (w *Writer) WriteString(v string) error {
	w.add(scalar("!!str", v))
	return nil
}

func (w *Writer) WriteNull() error {
	w.add(scalar("!!null", "null"))
	return nil
}

// WriteRaw parses fragment as YAML and splices the resulting node.
func (w *Writer) WriteRaw(fragment string) error {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(fragment), &doc); err != nil {
		return huse.NewIssue(huse.CodeParseError, err.Error())
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return huse.NewIssue(huse.CodeParseError, "empty raw fragment")
	}
	w.add(doc.Content[0])
	return nil
}

func (w *Writer) WriteKey(k string) error {
	w.key = k
	return nil
}

func (w *Writer) openNode(kind yaml.Kind, tag string) {
	n := &yaml.Node{Kind: kind, Tag: tag}
	w.add(n)
	w.open = append(w.open, n)
}

func (w *Writer) closeNode() {
	w.open = w.open[:len(w.open)-1]
}

func (w *Writer) OpenObject() error {
	w.openNode(yaml.MappingNode, "!!map")
	return nil
}

func (w *Writer) CloseObject() error {
	w.closeNode()
	return nil
}

func (w *Writer) OpenArray() error {
	w.openNode(yaml.SequenceNode, "!!seq")
	return nil
}

func (w *Writer) CloseArray() error {
	w.closeNode()
	return nil
}

// Flush encodes the document built so far. A document without a root value
// produces no output.
func (w *Writer) Flush() error {
	if !w.dirty || w.root == nil {
		return nil
	}
	if w.opt.Compact {
		w.root.Style = yaml.FlowStyle
	}
	indent := w.opt.Indent
	if indent <= 0 {
		indent = 2
	}
	enc := yaml.NewEncoder(w.out)
	enc.SetIndent(indent)
	if err := enc.Encode(w.root); err != nil {
		return err
	}
	w.dirty = false
	return enc.Close()
}
