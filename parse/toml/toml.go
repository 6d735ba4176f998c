package toml

// Package toml implements a production-grade TOML codec: a parser that
// builds a strong internal AST from TOML v0.5 input (with v1.0-style
// heterogeneous arrays accepted by default), and a writer that renders
// an AST back to canonical, deterministic TOML.
//
// Scope:
// - Explicit AST (Table / Array / Value)
// - Four string flavors, four date-time shapes, int bases 10/16/8/2
// - Safe dotted-key handling
// - Table extension and sealing semantics
// - Deterministic errors with 1-based line numbers
// - Canonical encoding with lexicographic key order
//
// Non-goals (by design):
// - Comment preservation
// - Formatting round-trip
// - Streaming mutation
//
// This implementation is suitable for production use as a configuration
// ingestion layer.

import (
	"math"
	"math/big"
	"reflect"
	"sort"
	"strings"
)

// =========================
// AST Definitions
// =========================

type ValueKind uint8

const (
	KindString ValueKind = iota
	KindInteger
	KindFloat
	KindBool
	KindOffsetDatetime
	KindLocalDatetime
	KindLocalDate
	KindLocalTime
	KindTable
	KindArray
)

var valueKindNames = map[ValueKind]string{
	KindString:         "string",
	KindInteger:        "integer",
	KindFloat:          "float",
	KindBool:           "bool",
	KindOffsetDatetime: "datetime",
	KindLocalDatetime:  "local datetime",
	KindLocalDate:      "local date",
	KindLocalTime:      "local time",
	KindTable:          "table",
	KindArray:          "array",
}

func (k ValueKind) String() string {
	if name, ok := valueKindNames[k]; ok {
		return name
	}
	return "invalid"
}

// IsDatetime reports whether k is one of the four date-time variants.
func (k ValueKind) IsDatetime() bool {
	switch k {
	case KindOffsetDatetime, KindLocalDatetime, KindLocalDate, KindLocalTime:
		return true
	}
	return false
}

type Node interface {
	Kind() ValueKind
	Value() any
}

// -------- Table --------

// Table is a mapping from key to child node. Definition state is tracked
// so that later syntax cannot redefine an explicit table or extend a
// sealed one.
type Table struct {
	Items map[string]Node

	// implicit marks a table created only by a descendant header or a
	// dotted key, never by its own [header].
	implicit bool
	// explicit marks a table defined by its own [header].
	explicit bool
	// inline marks a table written as { ... }; it is sealed at '}'.
	inline bool
}

func NewTable() *Table {
	return &Table{Items: make(map[string]Node)}
}

func (*Table) Kind() ValueKind { return KindTable }

func (*Table) Value() any { return nil }

// Keys returns the table's keys in lexicographic order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.Items))
	for k := range t.Items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Sealed reports whether the table may no longer be extended by later
// dotted keys or headers.
func (t *Table) Sealed() bool { return t.inline }

// -------- Array --------

// Array is an ordered sequence of nodes. An array written with [ ... ]
// syntax is closed once the bracket ends; an array of tables stays open
// for further [[header]] appends.
type Array struct {
	Elems []Node

	closed bool
}

func (*Array) Kind() ValueKind { return KindArray }

func (v *Array) Value() any { return v.Elems }

// Closed reports whether the array was written with static [ ... ]
// syntax and is sealed against later appends.
func (v *Array) Closed() bool { return v.closed }

// allTables reports whether every element of the array is a table.
// Empty arrays are not arrays of tables.
func (v *Array) allTables() bool {
	if len(v.Elems) == 0 {
		return false
	}
	for _, e := range v.Elems {
		if e.Kind() != KindTable {
			return false
		}
	}
	return true
}

// -------- Value --------

// Value is a tagged scalar. The carrier in V depends on Type:
//
//	| Type              | V                    |
//	|-------------------+----------------------|
//	| KindString        | string               |
//	| KindInteger       | int64 or *big.Int    |
//	| KindFloat         | float64              |
//	| KindBool          | bool                 |
//	| Kind*Datetime/... | string (RFC 3339     |
//	|                   | shaped), or whatever |
//	|                   | an inflate hook made |
type Value struct {
	Type ValueKind
	V    any
}

func (v *Value) Kind() ValueKind { return v.Type }

func (v *Value) Value() any { return v.V }

// =========================
// Constructors
// =========================

func NewString(s string) *Value {
	return &Value{Type: KindString, V: s}
}

func NewInteger(i int64) *Value {
	return &Value{Type: KindInteger, V: i}
}

// NewBigInteger carries an integer literal that exceeds the int64 range.
func NewBigInteger(i *big.Int) *Value {
	return &Value{Type: KindInteger, V: i}
}

func NewFloat(f float64) *Value {
	return &Value{Type: KindFloat, V: f}
}

// NewFiniteFloat rejects inf and nan for callers that forbid non-finite
// values.
func NewFiniteFloat(f float64) (*Value, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, errf(UnknownValueType, 0, "non-finite float %v not permitted", f)
	}
	return NewFloat(f), nil
}

func NewBool(b bool) *Value {
	return &Value{Type: KindBool, V: b}
}

// NewDatetime validates lit against the shape of the given variant and
// carries it as its normalized literal.
func NewDatetime(lit string, kind ValueKind) (*Value, error) {
	if !kind.IsDatetime() {
		return nil, errf(UnknownValueType, 0, "%s is not a datetime kind", kind)
	}
	norm := normalizeDatetime(lit)
	if got, err := validateDatetime(norm, 0); err != nil || got != kind {
		return nil, errf(InvalidDateTime, 0, "malformed %s literal %q", kind, lit)
	}
	return &Value{Type: kind, V: norm}, nil
}

// =========================
// Equality
// =========================

// Equal compares two nodes structurally. Insertion order never matters;
// datetimes compare by normalized literal; nan compares by type tag.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch av := a.(type) {
	case *Table:
		bv, ok := b.(*Table)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for k, an := range av.Items {
			bn, ok := bv.Items[k]
			if !ok || !Equal(an, bn) {
				return false
			}
		}
		return true
	case *Array:
		bv, ok := b.(*Array)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !Equal(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case *Value:
		bv, ok := b.(*Value)
		if !ok || av.Type != bv.Type {
			return false
		}
		return scalarEqual(av, bv)
	}
	return false
}

func scalarEqual(a, b *Value) bool {
	switch a.Type {
	case KindInteger:
		return bigOf(a.V).Cmp(bigOf(b.V)) == 0
	case KindFloat:
		af, aok := a.V.(float64)
		bf, bok := b.V.(float64)
		if !aok || !bok {
			return false
		}
		if math.IsNaN(af) && math.IsNaN(bf) {
			return true
		}
		return af == bf
	case KindOffsetDatetime, KindLocalDatetime, KindLocalDate, KindLocalTime:
		as, aok := a.V.(string)
		bs, bok := b.V.(string)
		if aok && bok {
			return normalizeDatetime(as) == normalizeDatetime(bs)
		}
		return reflect.DeepEqual(a.V, b.V)
	default:
		return reflect.DeepEqual(a.V, b.V)
	}
}

func bigOf(v any) *big.Int {
	switch n := v.(type) {
	case int64:
		return big.NewInt(n)
	case *big.Int:
		return n
	}
	return new(big.Int)
}

// normalizeDatetime collapses the 'T'/space separator and unifies the
// case of 'Z' and 'T' so equal instants compare equal as strings.
func normalizeDatetime(s string) string {
	s = strings.Replace(s, " ", "T", 1)
	s = strings.Replace(s, "t", "T", 1)
	if strings.HasSuffix(s, "z") {
		s = s[:len(s)-1] + "Z"
	}
	return s
}

// =========================
// Strict Array Predicate
// =========================

// sameTOMLType reports whether two nodes share one TOML type. All tables
// count as one type; all arrays count as one type; the four datetime
// variants are distinct from each other.
func sameTOMLType(a, b Node) bool {
	ak, bk := a.Kind(), b.Kind()
	return ak == bk
}

// strictViolation returns the first element whose type differs from the
// first element's, or -1 when the array is homogeneous.
func strictViolation(elems []Node) int {
	if len(elems) < 2 {
		return -1
	}
	for i := 1; i < len(elems); i++ {
		if !sameTOMLType(elems[0], elems[i]) {
			return i
		}
	}
	return -1
}

// =========================
// Safe Access Helpers
// =========================

func Get(root *Table, path ...string) (Node, bool) {
	var cur Node = root
	for _, p := range path {
		if len(p) == 0 {
			continue
		}
		t, ok := cur.(*Table)
		if !ok {
			return nil, false
		}
		cur, ok = t.Items[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func GetUntyped(root *Table, path ...string) (any, bool) {
	n, ok := Get(root, path...)
	if !ok {
		return nil, false
	}
	return ToUntyped(n), true
}

func ToUntyped(n Node) any {
	switch v := n.(type) {
	case *Value:
		return v.V
	case *Array:
		out := make([]any, len(v.Elems))
		for i := range v.Elems {
			out[i] = ToUntyped(v.Elems[i])
		}
		return out
	case *Table:
		m := make(map[string]any, len(v.Items))
		for k, child := range v.Items {
			m[k] = ToUntyped(child)
		}
		return m
	default:
		return nil
	}
}

func MustString(n Node) string {
	v := n.(*Value)
	return v.V.(string)
}

func MustInt(n Node) int64 {
	v := n.(*Value)
	return v.V.(int64)
}

func MustFloat(n Node) float64 {
	v := n.(*Value)
	return v.V.(float64)
}

func MustBool(n Node) bool {
	v := n.(*Value)
	return v.V.(bool)
}
