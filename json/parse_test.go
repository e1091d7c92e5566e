package json

import (
	"math"
	"strings"
	"testing"
)

func mustParse(t *testing.T, s string) Value {
	t.Helper()
	v, ok := Parse([]byte(s))
	if !ok {
		t.Fatalf("parse failed for %q", s)
	}
	return v
}

func TestParseScalars(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`null`, `null`},
		{`true`, `true`},
		{`false`, `false`},
		{`0`, `0`},
		{`-1`, `-1`},
		{`123`, `123`},
		{`2.5`, `2.5`},
		{`-0.25`, `-0.25`},
		{`1e3`, `1000`},
		{`"hello"`, `"hello"`},
		{`""`, `""`},
		{` \t\r\n 42 \t\r\n `, `42`},
	}
	for _, c := range cases {
		in := strings.NewReplacer(`\t`, "\t", `\r`, "\r", `\n`, "\n").Replace(c.in)
		v := mustParse(t, in)
		if got := v.Str(); got != c.want {
			t.Errorf("parse(%q).Str() = %q, want %q", in, got, c.want)
		}
		v.Release()
	}
}

func TestParseSimpleDocument(t *testing.T) {
	v := mustParse(t, `{"a":1,"b":[true,null,2.5]}`)
	defer v.Release()

	if got := v.Str(); got != `{"a":1,"b":[true,null,2.5]}` {
		t.Fatalf("round trip = %q", got)
	}
	if !v.IsObject() || v.Size() != 2 {
		t.Fatalf("bad shape: type=%d size=%d", v.Type(), v.Size())
	}
	if a := v.Find("a"); !a.IsInt() || a.GetInt() != 1 {
		t.Fatalf("member a: %v", a.Str())
	}
	b := v.Find("b")
	if !b.IsArray() || b.Size() != 3 {
		t.Fatalf("member b: %v", b.Str())
	}
	if !b.Elem(0).GetBool() || !b.Elem(1).IsNull() || b.Elem(2).GetFloat() != 2.5 {
		t.Fatalf("array contents: %v", b.Str())
	}
}

func TestParseNormalizesWhitespace(t *testing.T) {
	v := mustParse(t, "{ \"a\" : 1 ,\n\t\"b\" : [ 1 , 2 ] }")
	defer v.Release()
	if got := v.Str(); got != `{"a":1,"b":[1,2]}` {
		t.Fatalf("got %q", got)
	}
}

func TestParseEscapes(t *testing.T) {
	v := mustParse(t, `"a\r\n\t\b\f\"\\\/z"`)
	defer v.Release()
	if got := v.GetString(); got != "a\r\n\t\b\f\"\\/z" {
		t.Fatalf("got %q", got)
	}
}

func TestParseUnicodeEscapes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`"\u0041"`, "A"},
		{`"\u00e9"`, "\u00e9"},
		{`"\u00E9"`, "\u00e9"},
		{`"\u4e2d"`, "\u4e2d"},
		{`"x\u0041y"`, "xAy"},
		{`"\uD83D\uDE00"`, "\U0001F600"},
	}
	for _, c := range cases {
		v := mustParse(t, c.in)
		if got := v.GetString(); got != c.want {
			t.Errorf("parse(%q) = %q, want %q", c.in, got, c.want)
		}
		v.Release()
	}
}

func TestSurrogateDecodeBytes(t *testing.T) {
	v := mustParse(t, `"\uD83D\uDE00"`)
	defer v.Release()
	got := v.GetString()
	want := "\xF0\x9F\x98\x80"
	if got != want {
		t.Fatalf("got % X, want % X", got, want)
	}
}

func TestParseIntegerBoundaries(t *testing.T) {
	v := mustParse(t, "9223372036854775807")
	if v.GetInt() != math.MaxInt64 {
		t.Fatalf("max: %d", v.GetInt())
	}
	v.Release()

	v = mustParse(t, "-9223372036854775808")
	if v.GetInt() != math.MinInt64 {
		t.Fatalf("min: %d", v.GetInt())
	}
	v.Release()

	if _, ok := Parse([]byte("9223372036854775808")); ok {
		t.Fatal("int64 overflow accepted")
	}
	if _, ok := Parse([]byte("-9223372036854775809")); ok {
		t.Fatal("int64 underflow accepted")
	}
	if _, ok := Parse([]byte("18446744073709551616")); ok {
		t.Fatal("20-digit form accepted")
	}
}

func TestParseRejects(t *testing.T) {
	bad := []string{
		"",
		"   ",
		"{",
		"[",
		"}",
		`{"a":1`,
		`{"a"}`,
		`{"a":}`,
		`{a:1}`,
		`{1:2}`,
		`{"a":1,}`,
		`[1,]`,
		`[1 2]`,
		`"abc`,
		`"ab\`,
		`"ab\x"`,
		`"\uD83D"`,
		`"\uD83Dx"`,
		`"\uD83DA"`,
		`"\uZZZZ"`,
		`tru`,
		`truee x`,
		`nul`,
		`01`,
		`-01`,
		`--1`,
		`1x`,
		`1 2`,
		`{"a":1} x`,
		`[1]]`,
	}
	for _, s := range bad {
		if v, ok := Parse([]byte(s)); ok {
			t.Errorf("accepted %q as %q", s, v.Str())
			v.Release()
		}
	}
}

func TestParseDuplicateKeysFirstWins(t *testing.T) {
	v := mustParse(t, `{"k":1,"k":2}`)
	defer v.Release()
	if v.Size() != 2 {
		t.Fatalf("duplicate entry dropped: size=%d", v.Size())
	}
	if got := v.Find("k").GetInt(); got != 1 {
		t.Fatalf("first match should win, got %d", got)
	}
}

func TestParseFromReplacesContent(t *testing.T) {
	v := NewString("old")
	if !v.ParseFrom([]byte(`[1,2,3]`)) {
		t.Fatal("parse failed")
	}
	if !v.IsArray() || v.Size() != 3 {
		t.Fatalf("receiver not replaced: %s", v.Str())
	}
	if v.ParseFrom([]byte(`{bad`)) {
		t.Fatal("bad text accepted")
	}
	if !v.IsNull() {
		t.Fatal("failed parse must leave the receiver null")
	}
}

func TestParseDeepNesting(t *testing.T) {
	const depth = 64
	s := strings.Repeat("[", depth) + "7" + strings.Repeat("]", depth)
	v := mustParse(t, s)
	defer v.Release()
	e := v
	for i := 1; i < depth; i++ {
		e = e.Elem(0)
	}
	if e.Elem(0).GetInt() != 7 {
		t.Fatal("nested value lost")
	}
}

func BenchmarkParseSmall(b *testing.B) {
	doc := []byte(`{"a":1,"b":[true,null,2.5],"s":"hello \"world\""}`)
	for i := 0; i < b.N; i++ {
		v, _ := Parse(doc)
		v.Release()
	}
}
