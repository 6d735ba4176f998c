package toml

import (
	"math"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestArrayOfTables(t *testing.T) {
	convey.Convey("array of tables", t, func() {
		src := `
[[products]]
name = "Hammer"
sku = 738594937

[[products]]

[[products]]
name = "Nail"
sku = 284758393
color = "gray"
`
		root, err := Parse([]byte(src), nil)
		convey.So(err, convey.ShouldBeNil)
		n, ok := Get(root, "products")
		convey.So(ok, convey.ShouldBeTrue)
		arr := n.(*Array)
		convey.So(len(arr.Elems), convey.ShouldEqual, 3)
		first := arr.Elems[0].(*Table)
		convey.So(MustString(first.Items["name"]), convey.ShouldEqual, "Hammer")
		middle := arr.Elems[1].(*Table)
		convey.So(len(middle.Items), convey.ShouldEqual, 0)
		last := arr.Elems[2].(*Table)
		convey.So(MustString(last.Items["color"]), convey.ShouldEqual, "gray")
	})
}

func TestInlineTable(t *testing.T) {
	convey.Convey("inline table", t, func() {
		src := `owner = { name = "Tom", dob = 1979-05-27T07:32:00Z }`
		root, err := Parse([]byte(src), nil)
		convey.So(err, convey.ShouldBeNil)
		n, ok := Get(root, "owner")
		convey.So(ok, convey.ShouldBeTrue)
		tbl := n.(*Table)
		convey.So(MustString(tbl.Items["name"]), convey.ShouldEqual, "Tom")
		dob := tbl.Items["dob"].(*Value)
		convey.So(dob.Type, convey.ShouldEqual, KindOffsetDatetime)
		convey.So(tbl.Sealed(), convey.ShouldBeTrue)
	})
}

func TestDocumentScenario(t *testing.T) {
	convey.Convey("top-level pairs and a table header", t, func() {
		src := "title = \"TOML Example\"\n[owner]\nname = \"Tom\"\ndob = 1979-05-27T07:32:00-08:00\n"
		root, err := Parse([]byte(src), nil)
		convey.So(err, convey.ShouldBeNil)
		title, _ := Get(root, "title")
		convey.So(MustString(title), convey.ShouldEqual, "TOML Example")
		name, _ := Get(root, "owner", "name")
		convey.So(MustString(name), convey.ShouldEqual, "Tom")
		dob, _ := Get(root, "owner", "dob")
		convey.So(dob.(*Value).Type, convey.ShouldEqual, KindOffsetDatetime)
		convey.So(dob.(*Value).V, convey.ShouldEqual, "1979-05-27T07:32:00-08:00")
	})
}

func TestMultilineBasicString(t *testing.T) {
	convey.Convey("multiline basic string", t, func() {
		src := `desc = """first
second
third"""`
		root, err := Parse([]byte(src), nil)
		convey.So(err, convey.ShouldBeNil)
		n, ok := Get(root, "desc")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(MustString(n), convey.ShouldEqual, "first\nsecond\nthird")
	})

	convey.Convey("leading newline is stripped", t, func() {
		root, err := Parse([]byte("x=\"\"\"\nfoo\"\"\""), nil)
		convey.So(err, convey.ShouldBeNil)
		n, _ := Get(root, "x")
		convey.So(MustString(n), convey.ShouldEqual, "foo")
	})

	convey.Convey("line continuation eats the newline and leading whitespace", t, func() {
		src := "y=\"\"\"\\\n   how now \\\n     brown \\\nbureaucrat.\\\n\"\"\""
		root, err := Parse([]byte(src), nil)
		convey.So(err, convey.ShouldBeNil)
		n, _ := Get(root, "y")
		convey.So(MustString(n), convey.ShouldEqual, "how now brown bureaucrat.")
	})
}

func TestQuotedKeys(t *testing.T) {
	convey.Convey("quoted keys", t, func() {
		src := `"a.b" = 1
a.c = 2`
		root, err := Parse([]byte(src), nil)
		convey.So(err, convey.ShouldBeNil)
		n, ok := Get(root, "a.b")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(MustInt(n), convey.ShouldEqual, 1)
		n2, ok2 := Get(root, "a", "c")
		convey.So(ok2, convey.ShouldBeTrue)
		convey.So(MustInt(n2), convey.ShouldEqual, 2)
	})
}

func TestSpecialFloatsAndInts(t *testing.T) {
	convey.Convey("floats and ints with underscores and bases", t, func() {
		src := `
f1 = +inf
f2 = -inf
f3 = nan
i1 = 1_000
hex = 0xDEADBEEF
oct = 0o755
bin = 0b1010
`
		root, err := Parse([]byte(src), nil)
		convey.So(err, convey.ShouldBeNil)
		f1, _ := Get(root, "f1")
		convey.So(f1.(*Value).V.(float64), convey.ShouldEqual, math.Inf(+1))
		f2, _ := Get(root, "f2")
		convey.So(f2.(*Value).V.(float64), convey.ShouldEqual, math.Inf(-1))
		f3, _ := Get(root, "f3")
		convey.So(math.IsNaN(f3.(*Value).V.(float64)), convey.ShouldBeTrue)
		i1, _ := Get(root, "i1")
		convey.So(MustInt(i1), convey.ShouldEqual, 1000)
		hex, _ := Get(root, "hex")
		convey.So(MustInt(hex), convey.ShouldEqual, 0xDEADBEEF)
		oct, _ := Get(root, "oct")
		convey.So(MustInt(oct), convey.ShouldEqual, 0o755)
		bin, _ := Get(root, "bin")
		convey.So(MustInt(bin), convey.ShouldEqual, 10)
	})
}

func TestMultilineArrayAndTrailingComma(t *testing.T) {
	convey.Convey("multiline array with trailing comma", t, func() {
		src := `
ports = [
  8001,
  8002,
]
`
		root, err := Parse([]byte(src), nil)
		convey.So(err, convey.ShouldBeNil)
		n, ok := GetUntyped(root, "ports")
		convey.So(ok, convey.ShouldBeTrue)
		arr := n.([]any)
		convey.So(len(arr), convey.ShouldEqual, 2)
		convey.So(arr[0], convey.ShouldEqual, int64(8001))
		convey.So(arr[1], convey.ShouldEqual, int64(8002))
	})
}

func TestStrictArrays(t *testing.T) {
	convey.Convey("heterogeneous array", t, func() {
		src := `a=[1, "2"]`

		convey.Convey("fails under strict mode", func() {
			_, err := Parse([]byte(src), &Options{StrictArrays: true})
			convey.So(err, convey.ShouldNotBeNil)
			kind, ok := ErrKindOf(err)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(kind, convey.ShouldEqual, HeterogenousArray)
		})

		convey.Convey("parses by default", func() {
			root, err := Parse([]byte(src), nil)
			convey.So(err, convey.ShouldBeNil)
			arr, _ := Get(root, "a")
			convey.So(len(arr.(*Array).Elems), convey.ShouldEqual, 2)
		})
	})
}

func TestUnterminatedHeader(t *testing.T) {
	convey.Convey("open bracket without closing bracket", t, func() {
		_, err := Parse([]byte("[abc = 1\n"), &Options{StrictArrays: true})
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.(*Error).Kind, convey.ShouldEqual, SyntaxError)
		convey.So(err.(*Error).Line, convey.ShouldEqual, 1)
	})
}

func TestCanonicalEncode(t *testing.T) {
	convey.Convey("encode renders sorted, deterministic TOML", t, func() {
		src := "b = 1\na = \"x\"\n[t]\nc = 2\n"
		root, err := Parse([]byte(src), nil)
		convey.So(err, convey.ShouldBeNil)
		out, err := ToTOML(root, nil)
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, "a=\"x\"\nb=1\n[t]\nc=2\n")
	})
}
