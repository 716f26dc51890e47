package yaml_test

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/huse"
	"github.com/reoring/huse/tree"
	"github.com/reoring/huse/yaml"
)

func TestWriter_BlockMapping(t *testing.T) {
	doc := tree.Object("name", tree.String("huse"), "n", tree.Int(1), "ok", tree.Bool(false), "none", tree.Null())
	out, err := yaml.Marshal(doc, yaml.Options{})
	require.NoError(t, err)
	assert.Equal(t, "name: huse\nn: 1\nok: false\nnone: null\n", string(out))
}

func TestWriter_NativeRange(t *testing.T) {
	doc := tree.Object(
		"big", tree.Int(math.MaxInt64),
		"inf", tree.Float(math.Inf(1)),
		"ninf", tree.Float(math.Inf(-1)),
		"whole", tree.Float(2),
	)
	out, err := yaml.Marshal(doc, yaml.Options{})
	require.NoError(t, err, "the YAML backend keeps 64-bit integers and non-finite floats")
	assert.Contains(t, string(out), "big: 9223372036854775807")
	assert.Contains(t, string(out), "inf: .inf")
	assert.Contains(t, string(out), "ninf: -.inf")
	assert.Contains(t, string(out), "whole: 2.0")

	var back tree.Value
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, int64(math.MaxInt64), back.Get("big").Int)
	assert.True(t, math.IsInf(back.Get("inf").Float, 1))
	assert.True(t, math.IsInf(back.Get("ninf").Float, -1))
	assert.Equal(t, huse.TypeFloat, back.Get("whole").Type)
}

func TestWriter_NaN(t *testing.T) {
	out, err := yaml.Marshal(tree.Array(tree.Float(math.NaN())), yaml.Options{})
	require.NoError(t, err)
	var back tree.Value
	require.NoError(t, yaml.Unmarshal(out, &back))
	require.Len(t, back.Elems, 1)
	assert.True(t, math.IsNaN(back.Elems[0].Float))
}

func TestWriter_StringsStayStrings(t *testing.T) {
	doc := tree.Array(tree.String("true"), tree.String("1"), tree.String("null"), tree.String("a: b"), tree.String("line\nbreak"))
	out, err := yaml.Marshal(doc, yaml.Options{})
	require.NoError(t, err)

	var back tree.Value
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, doc, &back)
}

func TestWriter_Compact(t *testing.T) {
	doc := tree.Object("a", tree.Int(1), "b", tree.Array(tree.String("x"), tree.String("y")))
	out, err := yaml.Marshal(doc, yaml.Options{Compact: true})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(out), "\n"), "flow style fits on one line: %q", out)

	var back tree.Value
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, doc, &back)
}

func TestWriter_Raw(t *testing.T) {
	var buf strings.Builder
	s := yaml.NewSerializer(&buf, yaml.Options{})
	err := s.Object(func(o *huse.SerializerObject) error {
		return o.Raw("r", "[1, 2]")
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	var back tree.Value
	require.NoError(t, yaml.Unmarshal([]byte(buf.String()), &back))
	assert.Equal(t, tree.Object("r", tree.Array(tree.Int(1), tree.Int(2))), &back)

	s = yaml.NewSerializer(&buf, yaml.Options{})
	err = s.Raw("[unclosed")
	assert.True(t, huse.HasCode(err, huse.CodeParseError), "got %v", err)
}

func TestReader_AliasesAndMerge(t *testing.T) {
	src := `
base: &b {x: 1, y: 2}
derived:
  <<: *b
  y: 3
list: [*b, 0x1F, .inf, ~, "quoted"]
`
	var v tree.Value
	require.NoError(t, yaml.Unmarshal([]byte(src), &v))

	derived := v.Get("derived")
	require.NotNil(t, derived)
	assert.Equal(t, int64(1), derived.Get("x").Int)
	assert.Equal(t, int64(3), derived.Get("y").Int, "explicit keys override merged ones")

	list := v.Get("list")
	require.Len(t, list.Elems, 5)
	assert.Equal(t, huse.TypeObject, list.Elems[0].Type)
	assert.Equal(t, int64(31), list.Elems[1].Int)
	assert.True(t, math.IsInf(list.Elems[2].Float, 1))
	assert.Equal(t, huse.TypeNull, list.Elems[3].Type)
	assert.Equal(t, "quoted", list.Elems[4].Str)
}

func TestReader_Errors(t *testing.T) {
	_, err := yaml.NewDeserializer([]byte("a: 1\n---\nb: 2\n"))
	assert.True(t, huse.HasCode(err, huse.CodeParseError), "second document: %v", err)

	_, err = yaml.NewDeserializer([]byte(""))
	assert.True(t, huse.HasCode(err, huse.CodeParseError), "empty input: %v", err)

	_, err = yaml.NewDeserializer([]byte("a: [1"))
	assert.True(t, huse.HasCode(err, huse.CodeParseError), "malformed: %v", err)

	_, err = yaml.NewDeserializer([]byte("a: 1\nb: 2\n"), huse.DecodeOpt{MaxBytes: 4})
	assert.True(t, huse.HasCode(err, huse.CodeTruncated), "max bytes: %v", err)

	_, err = yaml.NewDeserializer([]byte("a: {b: {c: 1}}\n"), huse.DecodeOpt{MaxDepth: 2})
	iss, ok := huse.AsIssues(err)
	require.True(t, ok, "max depth: %v", err)
	assert.Equal(t, "/a/b", iss[0].Path)

	d, err := yaml.NewDeserializer([]byte("a: text\n"))
	require.NoError(t, err)
	err = d.Object(func(o *huse.DeserializerObject) error {
		var i int
		return huse.GetKey(o, "a", &i)
	})
	iss, ok = huse.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, huse.CodeInvalidType, iss[0].Code)
	assert.Equal(t, "/a", iss[0].Path)
}

func TestReader_DuplicateKeysThroughEnforcement(t *testing.T) {
	var warned []huse.Issue
	_, err := yaml.NewDeserializer([]byte("a: 1\nb: {c: 1, c: 2}\n"), huse.DecodeOpt{
		Strictness: huse.Strictness{OnDuplicateKey: huse.Warn},
		IssueSink:  func(it huse.Issue) { warned = append(warned, it) },
	})
	require.NoError(t, err)
	require.Len(t, warned, 1)
	assert.Equal(t, "/b/c", warned[0].Path)
	assert.Equal(t, int64(-1), warned[0].Offset)
}

func TestReader_AliasFanOutIsCapped(t *testing.T) {
	var b strings.Builder
	b.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= 6; i++ {
		fmt.Fprintf(&b, "l%d: &l%d [", i, i)
		for j := 0; j < 10; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "*l%d", i-1)
		}
		b.WriteString("]\n")
	}
	data := []byte(b.String())

	_, err := yaml.NewDeserializer(data, huse.DecodeOpt{MaxBytes: 4096})
	iss, ok := huse.AsIssues(err)
	require.True(t, ok, "fan-out of a %d byte document must fail: %v", len(data), err)
	assert.Equal(t, huse.CodeParseError, iss[0].Code)
	assert.Contains(t, iss[0].Message, "alias expansion")

	// Ordinary anchor reuse stays within the cap.
	var v tree.Value
	require.NoError(t, yaml.Unmarshal([]byte("a: &a [1, 2]\nb: *a\nc: *a\n"), &v))
	require.Len(t, v.Get("c").Elems, 2)
}
