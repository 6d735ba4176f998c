package toml

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// =========================
// Writer
// =========================

// writer renders a value tree to canonical TOML. Output is
// deterministic: keys are emitted in lexicographic order, scalar lines
// before inline arrays, inline arrays before [[array]] headers, headers
// before [table] headers. The tree is never mutated.
type writer struct {
	strict bool
	b      strings.Builder
}

func encode(n Node, opts Options) (string, error) {
	root, ok := n.(*Table)
	if !ok {
		return "", errf(UnknownValueType, 0, "root value must be a table")
	}
	w := &writer{strict: opts.StrictArrays}
	if err := w.table(root, nil); err != nil {
		return "", err
	}
	return w.b.String(), nil
}

func (w *writer) table(t *Table, path []string) error {
	keys := t.Keys()

	for _, k := range keys {
		v, ok := t.Items[k].(*Value)
		if !ok {
			continue
		}
		s, err := encodeScalar(v)
		if err != nil {
			return err
		}
		w.line(encodeKey(k) + "=" + s)
	}

	for _, k := range keys {
		arr, ok := t.Items[k].(*Array)
		if !ok {
			continue
		}
		// A mixed array renders as an inline array of its non-table
		// elements plus [[key]] sections for its tables. That output does
		// not round-trip: parsing it back fails with TypeConflict.
		tables, rest := splitTables(arr.Elems)
		if w.strict && len(tables) > 0 && len(rest) > 0 {
			return errf(HeterogenousArray, 0, "array %q mixes tables and non-tables", k)
		}
		if len(arr.Elems) == 0 {
			w.line(encodeKey(k) + "=[]")
			continue
		}
		if len(rest) == 0 {
			continue // pure array of tables, emitted below
		}
		s, err := w.encodeInlineArray(rest)
		if err != nil {
			return err
		}
		w.line(encodeKey(k) + "=" + s)
	}

	for _, k := range keys {
		st, ok := t.Items[k].(*Table)
		if ok && len(st.Items) == 0 {
			w.line(encodeKey(k) + "={}")
		}
	}

	for _, k := range keys {
		arr, ok := t.Items[k].(*Array)
		if !ok {
			continue
		}
		tables, _ := splitTables(arr.Elems)
		sub := childPath(path, k)
		for _, el := range tables {
			w.line("[[" + encodePath(sub) + "]]")
			if err := w.table(el, sub); err != nil {
				return err
			}
		}
	}

	for _, k := range keys {
		st, ok := t.Items[k].(*Table)
		if !ok || len(st.Items) == 0 {
			continue
		}
		sub := childPath(path, k)
		w.line("[" + encodePath(sub) + "]")
		if err := w.table(st, sub); err != nil {
			return err
		}
	}

	return nil
}

func (w *writer) line(s string) {
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}

func childPath(path []string, k string) []string {
	sub := make([]string, 0, len(path)+1)
	sub = append(sub, path...)
	return append(sub, k)
}

func splitTables(elems []Node) (tables []*Table, rest []Node) {
	for _, e := range elems {
		if t, ok := e.(*Table); ok {
			tables = append(tables, t)
		} else {
			rest = append(rest, e)
		}
	}
	return tables, rest
}

func (w *writer) encodeInlineArray(elems []Node) (string, error) {
	if w.strict {
		if i := strictViolation(elems); i >= 0 {
			return "", errf(HeterogenousArray, 0,
				"array element %d is %s, expected %s", i, elems[i].Kind(), elems[0].Kind())
		}
	}
	parts := make([]string, len(elems))
	for i, e := range elems {
		s, err := w.encodeInlineValue(e)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

// encodeInlineValue renders a node in value position. Tables reached
// here are nested inside arrays and render in inline form.
func (w *writer) encodeInlineValue(n Node) (string, error) {
	switch v := n.(type) {
	case *Value:
		return encodeScalar(v)
	case *Array:
		return w.encodeInlineArray(v.Elems)
	case *Table:
		return w.encodeInlineTable(v)
	}
	return "", errf(UnknownValueType, 0, "cannot serialize %T", n)
}

func (w *writer) encodeInlineTable(t *Table) (string, error) {
	keys := t.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		s, err := w.encodeInlineValue(t.Items[k])
		if err != nil {
			return "", err
		}
		parts[i] = encodeKey(k) + "=" + s
	}
	return "{" + strings.Join(parts, ", ") + "}", nil
}

// =========================
// Scalar Emission
// =========================

func encodeScalar(v *Value) (string, error) {
	switch v.Type {
	case KindString:
		s, ok := v.V.(string)
		if !ok {
			return "", errf(UnknownValueType, 0, "string value carries %T", v.V)
		}
		return encodeString(s), nil
	case KindInteger:
		switch i := v.V.(type) {
		case int64:
			return strconv.FormatInt(i, 10), nil
		case *big.Int:
			return i.String(), nil
		}
		return "", errf(UnknownValueType, 0, "integer value carries %T", v.V)
	case KindFloat:
		f, ok := v.V.(float64)
		if !ok {
			return "", errf(UnknownValueType, 0, "float value carries %T", v.V)
		}
		return encodeFloat(f), nil
	case KindBool:
		b, ok := v.V.(bool)
		if !ok {
			return "", errf(UnknownValueType, 0, "bool value carries %T", v.V)
		}
		return strconv.FormatBool(b), nil
	case KindOffsetDatetime, KindLocalDatetime, KindLocalDate, KindLocalTime:
		return encodeDatetime(v)
	}
	return "", errf(UnknownValueType, 0, "cannot serialize value kind %s", v.Type)
}

func encodeFloat(f float64) string {
	switch {
	case math.IsInf(f, +1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

var datetimeWriteLayouts = map[ValueKind]string{
	KindOffsetDatetime: time.RFC3339Nano,
	KindLocalDatetime:  "2006-01-02T15:04:05.999999999",
	KindLocalDate:      "2006-01-02",
	KindLocalTime:      "15:04:05.999999999",
}

func encodeDatetime(v *Value) (string, error) {
	switch d := v.V.(type) {
	case string:
		return normalizeDatetime(d), nil
	case time.Time:
		return d.Format(datetimeWriteLayouts[v.Type]), nil
	}
	return "", errf(UnknownValueType, 0, "datetime value carries %T", v.V)
}

// =========================
// Key Encoding
// =========================

// encodeKey emits a bare key where the charset allows it. A key that
// itself begins with a double-quote goes in literal-string quotes;
// anything else non-bare goes in basic-string quotes.
func encodeKey(k string) string {
	if reBareKey.MatchString(k) {
		return k
	}
	if strings.HasPrefix(k, `"`) {
		return "'" + k + "'"
	}
	return encodeString(k)
}

func encodePath(parts []string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = encodeKey(p)
	}
	return strings.Join(quoted, ".")
}

// =========================
// String Encoding
// =========================

func encodeString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if esc, ok := basicEscape[r]; ok {
			b.WriteString(esc)
			continue
		}
		if r < 0x20 {
			fmt.Fprintf(&b, `\u%04X`, r)
			continue
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
