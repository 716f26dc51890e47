package json_test

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/huse"
	"github.com/reoring/huse/json"
	"github.com/reoring/huse/tree"
)

// withDrivers runs fn once per JSON driver.
func withDrivers(t *testing.T, fn func(t *testing.T)) {
	for _, d := range []huse.JSONDriver{nil, huse.StdJSONDriver()} {
		name := "go-json"
		if d != nil {
			name = d.Name()
		}
		t.Run(name, func(t *testing.T) {
			if d != nil {
				huse.SetJSONDriver(d)
				defer huse.UseDefaultJSONDriver()
			}
			fn(t)
		})
	}
}

type scalars struct {
	B   bool
	I8  int8
	I16 int16
	I32 int32
	I64 int64
	I   int
	U8  uint8
	U16 uint16
	U32 uint32
	U64 uint64
	F32 float32
	F64 float64
	S   string
}

func (v *scalars) MarshalHuse(n *huse.SerializerNode) error {
	return n.Object(func(o *huse.SerializerObject) error {
		puts := []error{
			huse.PutKey(o, "b", v.B),
			huse.PutKey(o, "i8", v.I8),
			huse.PutKey(o, "i16", v.I16),
			huse.PutKey(o, "i32", v.I32),
			huse.PutKey(o, "i64", v.I64),
			huse.PutKey(o, "i", v.I),
			huse.PutKey(o, "u8", v.U8),
			huse.PutKey(o, "u16", v.U16),
			huse.PutKey(o, "u32", v.U32),
			huse.PutKey(o, "u64", v.U64),
			huse.PutKey(o, "f32", v.F32),
			huse.PutKey(o, "f64", v.F64),
			huse.PutKey(o, "s", v.S),
		}
		for _, err := range puts {
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (v *scalars) UnmarshalHuse(n *huse.DeserializerNode) error {
	return n.Object(func(o *huse.DeserializerObject) error {
		gets := []error{
			huse.GetKey(o, "b", &v.B),
			huse.GetKey(o, "i8", &v.I8),
			huse.GetKey(o, "i16", &v.I16),
			huse.GetKey(o, "i32", &v.I32),
			huse.GetKey(o, "i64", &v.I64),
			huse.GetKey(o, "i", &v.I),
			huse.GetKey(o, "u8", &v.U8),
			huse.GetKey(o, "u16", &v.U16),
			huse.GetKey(o, "u32", &v.U32),
			huse.GetKey(o, "u64", &v.U64),
			huse.GetKey(o, "f32", &v.F32),
			huse.GetKey(o, "f64", &v.F64),
			huse.GetKey(o, "s", &v.S),
		}
		for _, err := range gets {
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func TestRoundTrip_Scalars(t *testing.T) {
	const limit = 1 << 53
	cases := map[string]scalars{
		"max": {
			B: true, I8: math.MaxInt8, I16: math.MaxInt16, I32: math.MaxInt32, I64: limit, I: limit,
			U8: math.MaxUint8, U16: math.MaxUint16, U32: math.MaxUint32, U64: limit,
			F32: math.MaxFloat32, F64: math.MaxFloat64,
			S: "\"quoted\" \\ \n\r\b\t\f \x00\x1f ünïcødé 日本語 🙂",
		},
		"min": {
			I8: math.MinInt8, I16: math.MinInt16, I32: math.MinInt32, I64: -limit, I: -limit,
			F32: math.SmallestNonzeroFloat32, F64: -math.SmallestNonzeroFloat64,
		},
		"fractions": {F32: 0.1, F64: 1.0 / 3, S: "/"},
	}
	withDrivers(t, func(t *testing.T) {
		for name, in := range cases {
			t.Run(name, func(t *testing.T) {
				for _, pretty := range []bool{false, true} {
					data, err := json.Marshal(&in, json.Options{Pretty: pretty})
					if err != nil {
						t.Fatalf("marshal: %v", err)
					}
					var out scalars
					if err := json.Unmarshal(data, &out); err != nil {
						t.Fatalf("unmarshal %s: %v", data, err)
					}
					if diff := cmp.Diff(in, out); diff != "" {
						t.Fatalf("pretty=%v (-in +out):\n%s", pretty, diff)
					}
				}
			})
		}
	})
}

func TestRoundTrip_NegativeZero(t *testing.T) {
	data, err := json.Marshal(tree.Float(math.Copysign(0, -1)), json.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var f float64
	d, err := json.NewDeserializerBytes(data)
	if err != nil {
		t.Fatal(err)
	}
	if err := huse.Get(&d.DeserializerNode, &f); err != nil {
		t.Fatal(err)
	}
	if f != 0 || !math.Signbit(f) {
		t.Fatalf("expected -0, got %v from %s", f, data)
	}
}

func TestPrettyAndCompactAreLogicallyEqual(t *testing.T) {
	doc := tree.Object(
		"name", tree.String("huse"),
		"tags", tree.Array(tree.String("a"), tree.Null(), tree.Bool(true)),
		"nested", tree.Object("deep", tree.Array(tree.Array(), tree.Object()), "n", tree.Int(-3), "f", tree.Float(2.5)),
		"empty", tree.Object(),
	)
	compact, err := json.Marshal(doc, json.Options{})
	if err != nil {
		t.Fatal(err)
	}
	pretty, err := json.Marshal(doc, json.Options{Pretty: true})
	if err != nil {
		t.Fatal(err)
	}
	if string(compact) == string(pretty) {
		t.Fatalf("pretty output should differ from compact")
	}
	withDrivers(t, func(t *testing.T) {
		var a, b tree.Value
		if err := json.Unmarshal(compact, &a); err != nil {
			t.Fatal(err)
		}
		if err := json.Unmarshal(pretty, &b); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(&a, &b); diff != "" {
			t.Fatalf("documents differ (-compact +pretty):\n%s", diff)
		}
		if diff := cmp.Diff(doc, &a); diff != "" {
			t.Fatalf("round trip changed the document (-want +got):\n%s", diff)
		}
	})
}

func TestReader_MalformedInput(t *testing.T) {
	withDrivers(t, func(t *testing.T) {
		for _, doc := range []string{
			`{"a":1} {"b":2}`, `[1] 2`, `{"a":`, `[1,2`, ``,
			`[1 2]`, `[1,,2]`, `[1,]`, `{"a" 1}`, `{"a":1 "b":2}`, `{"a":1,}`,
			`[01]`, `[-]`, `[1.]`, `[1e]`, `{"a":-01}`,
		} {
			_, err := json.NewDeserializerBytes([]byte(doc))
			if !huse.HasCode(err, huse.CodeParseError) {
				t.Fatalf("%q: expected parse_error, got %v", doc, err)
			}
		}
	})
}

func TestReader_Enforcement(t *testing.T) {
	withDrivers(t, func(t *testing.T) {
		_, err := json.NewDeserializerBytes([]byte(`{"a":1,"a":2}`), huse.DecodeOpt{
			Strictness: huse.Strictness{OnDuplicateKey: huse.Error},
		})
		iss, ok := huse.AsIssues(err)
		if !ok || iss[0].Code != huse.CodeDuplicateKey || iss[0].Path != "/a" {
			t.Fatalf("expected duplicate_key at /a, got %v", err)
		}

		var warned []huse.Issue
		_, err = json.NewDeserializerBytes([]byte(`{"x":{"k":1,"k":2}}`), huse.DecodeOpt{
			Strictness: huse.Strictness{OnDuplicateKey: huse.Warn},
			IssueSink:  func(it huse.Issue) { warned = append(warned, it) },
		})
		if err != nil {
			t.Fatalf("warn mode must not fail: %v", err)
		}
		if len(warned) != 1 || warned[0].Path != "/x/k" {
			t.Fatalf("expected one warning at /x/k, got %v", warned)
		}

		_, err = json.NewDeserializerBytes([]byte(`[[[1]]]`), huse.DecodeOpt{MaxDepth: 2})
		iss, ok = huse.AsIssues(err)
		if !ok || iss[0].Code != huse.CodeParseError || iss[0].Path != "/0/0" {
			t.Fatalf("expected depth error at /0/0, got %v", err)
		}

		_, err = json.NewDeserializerBytes([]byte(`[1,2,3]`), huse.DecodeOpt{MaxBytes: 4})
		if !huse.HasCode(err, huse.CodeTruncated) {
			t.Fatalf("expected truncated, got %v", err)
		}
		_, err = json.NewDeserializerReader(strings.NewReader(`[1,2,3]`), huse.DecodeOpt{MaxBytes: 4})
		if !huse.HasCode(err, huse.CodeTruncated) {
			t.Fatalf("reader: expected truncated, got %v", err)
		}
		if _, err := json.NewDeserializerReader(strings.NewReader(`[1,2,3]`), huse.DecodeOpt{MaxBytes: 7}); err != nil {
			t.Fatalf("input at the limit must pass: %v", err)
		}
	})
}

func TestReader_MaxBytesOnSource(t *testing.T) {
	withDrivers(t, func(t *testing.T) {
		doc := []byte(`{"list":[1,2,3,4,5,6,7,8,9]}`)
		_, err := json.NewDeserializer(huse.JSONBytes(doc), huse.DecodeOpt{MaxBytes: 10})
		if !huse.HasCode(err, huse.CodeTruncated) {
			t.Fatalf("expected truncated, got %v", err)
		}
		if _, err := json.NewDeserializer(huse.JSONBytes(doc), huse.DecodeOpt{MaxBytes: int64(len(doc))}); err != nil {
			t.Fatalf("input at the limit: %v", err)
		}
	})
}

func TestReader_ValidNumbersStillLoad(t *testing.T) {
	withDrivers(t, func(t *testing.T) {
		var v tree.Value
		if err := json.Unmarshal([]byte(`[0,-0,0.5,-12.25e+3,1E-2,10]`), &v); err != nil {
			t.Fatal(err)
		}
		if len(v.Elems) != 6 || v.Elems[5].Int != 10 {
			t.Fatalf("unexpected %+v", v)
		}
	})
}

func TestReader_StreamingReader(t *testing.T) {
	d, err := json.NewDeserializerReader(strings.NewReader(` {"list":[3,1,2]} `))
	if err != nil {
		t.Fatal(err)
	}
	var sum int
	err = d.Object(func(o *huse.DeserializerObject) error {
		return o.Array("list", func(a *huse.DeserializerArray) error {
			return a.Each(func(_ int, n *huse.DeserializerNode) error {
				var v int
				if err := huse.Get(n, &v); err != nil {
					return err
				}
				sum += v
				return nil
			})
		})
	})
	if err != nil || sum != 6 {
		t.Fatalf("sum %d, err %v", sum, err)
	}
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
}
