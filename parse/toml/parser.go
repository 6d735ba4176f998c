package toml

import (
	"strings"
	"unicode/utf8"
)

// =========================
// Parser Implementation
// =========================

// parser interprets tokens into the value tree. It owns one scratch
// context per document: the current insertion table plus the definition
// flags the tree nodes carry. Nothing survives a failed parse.
type parser struct {
	lx   *lexer
	opts Options
	root *Table
	cur  *Table
}

func parseDocument(src []byte, opts Options) (*Table, error) {
	if !utf8.Valid(src) {
		return nil, errf(InvalidUtf8, invalidUtf8Line(src), "document is not valid UTF-8")
	}
	p := &parser{
		lx:   newLexer(string(src)),
		opts: opts,
		root: NewTable(),
	}
	p.cur = p.root
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.root, nil
}

// invalidUtf8Line locates the line of the first invalid byte.
func invalidUtf8Line(src []byte) int {
	line := 1
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size == 1 {
			return line
		}
		if r == '\n' {
			line++
		}
		i += size
	}
	return line
}

func (p *parser) run() error {
	for {
		tok, err := p.lx.next(posKey)
		if err != nil {
			return err
		}
		switch tok.kind {
		case tokenEOF:
			return nil
		case tokenNewline:
			continue
		case tokenLBracket:
			if err := p.header(tok.line); err != nil {
				return err
			}
		case tokenBareKey, tokenString:
			if err := p.keyValuePair(tok, p.cur); err != nil {
				return err
			}
			if err := p.expectLineEnd(); err != nil {
				return err
			}
		default:
			return errf(SyntaxError, tok.line, "unexpected %s at start of line", tok.kind)
		}
	}
}

func (p *parser) expectLineEnd() error {
	tok, err := p.lx.next(posKey)
	if err != nil {
		return err
	}
	if tok.kind != tokenNewline && tok.kind != tokenEOF {
		return errf(SyntaxError, tok.line, "expected newline, got %s", tok.kind)
	}
	return nil
}

// =========================
// Headers
// =========================

func (p *parser) header(line int) error {
	mark := p.lx.state()
	tok, err := p.lx.next(posKey)
	if err != nil {
		return err
	}
	aot := tok.kind == tokenLBracket
	if !aot {
		p.lx.restore(mark)
	}

	parts, err := p.headerKey()
	if err != nil {
		return err
	}
	if aot {
		tok, err := p.lx.next(posKey)
		if err != nil {
			return err
		}
		if tok.kind != tokenRBracket {
			return errf(SyntaxError, tok.line, "expected ']]' to close array-of-tables header")
		}
	}
	if err := p.expectLineEnd(); err != nil {
		return err
	}

	if aot {
		return p.installArrayHeader(parts, line)
	}
	return p.installTableHeader(parts, line)
}

// headerKey reads the dotted key of a [header] up to its closing ']'.
func (p *parser) headerKey() ([]string, error) {
	var parts []string
	for {
		part, err := p.keyPart()
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)

		tok, err := p.lx.next(posKey)
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenDot:
			continue
		case tokenRBracket:
			return parts, nil
		default:
			return nil, errf(SyntaxError, tok.line, "expected '.' or ']' in table header, got %s", tok.kind)
		}
	}
}

func (p *parser) keyPart() (string, error) {
	tok, err := p.lx.next(posKey)
	if err != nil {
		return "", err
	}
	if tok.kind != tokenBareKey && tok.kind != tokenString {
		return "", errf(SyntaxError, tok.line, "expected key, got %s", tok.kind)
	}
	if tok.str == "" {
		return "", errf(SyntaxError, tok.line, "key must be non-empty")
	}
	return tok.str, nil
}

func (p *parser) installTableHeader(parts []string, line int) error {
	parent, err := p.walk(p.root, parts[:len(parts)-1], line)
	if err != nil {
		return err
	}
	last := parts[len(parts)-1]
	switch n := parent.Items[last].(type) {
	case nil:
		t := NewTable()
		t.explicit = true
		parent.Items[last] = t
		p.cur = t
	case *Table:
		if n.inline {
			return errf(ExtendSealed, line, "cannot reopen inline table %q", joinKey(parts))
		}
		if n.explicit {
			return errf(DuplicateTable, line, "table %q defined twice", joinKey(parts))
		}
		n.explicit = true
		n.implicit = false
		p.cur = n
	default:
		return errf(TypeConflict, line, "key %q already defined as %s", joinKey(parts), n.Kind())
	}
	return nil
}

func (p *parser) installArrayHeader(parts []string, line int) error {
	parent, err := p.walk(p.root, parts[:len(parts)-1], line)
	if err != nil {
		return err
	}
	last := parts[len(parts)-1]
	t := NewTable()
	t.explicit = true
	switch n := parent.Items[last].(type) {
	case nil:
		parent.Items[last] = &Array{Elems: []Node{t}}
	case *Array:
		if n.closed {
			return errf(TypeConflict, line, "key %q already defined as a static array", joinKey(parts))
		}
		n.Elems = append(n.Elems, t)
	default:
		return errf(TypeConflict, line, "key %q already defined as %s", joinKey(parts), n.Kind())
	}
	p.cur = t
	return nil
}

// =========================
// Key/Value Pairs
// =========================

func (p *parser) keyValuePair(first token, target *Table) error {
	parts, err := p.dottedKey(first)
	if err != nil {
		return err
	}
	v, err := p.value()
	if err != nil {
		return err
	}
	return p.install(target, parts, v, first.line)
}

// dottedKey reads the remainder of a dotted key whose first part is
// already in hand, consuming the '=' that follows it.
func (p *parser) dottedKey(first token) ([]string, error) {
	if first.str == "" {
		return nil, errf(SyntaxError, first.line, "key must be non-empty")
	}
	parts := []string{first.str}
	for {
		tok, err := p.lx.next(posKey)
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenDot:
			part, err := p.keyPart()
			if err != nil {
				return nil, err
			}
			parts = append(parts, part)
		case tokenEq:
			return parts, nil
		default:
			return nil, errf(SyntaxError, tok.line, "expected '.' or '=' after key, got %s", tok.kind)
		}
	}
}

func (p *parser) install(t *Table, parts []string, v Node, line int) error {
	parent, err := p.walk(t, parts[:len(parts)-1], line)
	if err != nil {
		return err
	}
	last := parts[len(parts)-1]
	if _, exists := parent.Items[last]; exists {
		return errf(DuplicateKey, line, "duplicate key %q", joinKey(parts))
	}
	parent.Items[last] = v
	return nil
}

// walk descends from t through the intermediate names of a dotted path,
// creating implicit tables for missing names and descending into the
// last element of an open array of tables. Sealed nodes refuse the walk.
func (p *parser) walk(t *Table, parts []string, line int) (*Table, error) {
	for i, name := range parts {
		switch n := t.Items[name].(type) {
		case nil:
			nt := NewTable()
			nt.implicit = true
			t.Items[name] = nt
			t = nt
		case *Table:
			if n.inline {
				return nil, errf(ExtendSealed, line, "cannot extend inline table %q", joinKey(parts[:i+1]))
			}
			t = n
		case *Array:
			if n.closed {
				return nil, errf(ExtendSealed, line, "cannot extend static array %q", joinKey(parts[:i+1]))
			}
			lt, ok := n.Elems[len(n.Elems)-1].(*Table)
			if !ok {
				return nil, errf(TypeConflict, line, "array %q does not end in a table", joinKey(parts[:i+1]))
			}
			t = lt
		default:
			return nil, errf(TypeConflict, line, "key %q already defined as %s", joinKey(parts[:i+1]), n.Kind())
		}
	}
	return t, nil
}

func joinKey(parts []string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		if reBareKey.MatchString(p) {
			quoted[i] = p
		} else {
			quoted[i] = `"` + p + `"`
		}
	}
	return strings.Join(quoted, ".")
}

// =========================
// Values
// =========================

func (p *parser) value() (Node, error) {
	tok, err := p.lx.next(posValue)
	if err != nil {
		return nil, err
	}
	return p.valueFromToken(tok)
}

func (p *parser) valueFromToken(tok token) (Node, error) {
	switch tok.kind {
	case tokenString:
		return NewString(tok.str), nil
	case tokenInteger:
		if tok.bigVal != nil {
			return NewBigInteger(tok.bigVal), nil
		}
		return NewInteger(tok.intVal), nil
	case tokenFloat:
		return NewFloat(tok.floatVal), nil
	case tokenBool:
		return p.boolValue(tok), nil
	case tokenDatetime:
		return p.datetimeValue(tok), nil
	case tokenLBracket:
		return p.staticArray(tok.line)
	case tokenLBrace:
		return p.inlineTable(tok.line)
	default:
		return nil, errf(SyntaxError, tok.line, "expected value, got %s", tok.kind)
	}
}

func (p *parser) boolValue(tok token) *Value {
	if p.opts.InflateBoolean != nil {
		return &Value{Type: KindBool, V: p.opts.InflateBoolean(tok.boolVal)}
	}
	return NewBool(tok.boolVal)
}

func (p *parser) datetimeValue(tok token) *Value {
	if p.opts.InflateDatetime != nil {
		return &Value{Type: tok.variant, V: p.opts.InflateDatetime(tok.str, tok.variant)}
	}
	return &Value{Type: tok.variant, V: tok.str}
}

// staticArray parses [ ... ]. Newlines and comments are allowed between
// elements and a trailing comma is legal. The array is sealed at ']'.
func (p *parser) staticArray(line int) (Node, error) {
	arr := &Array{closed: true}
	afterElem := false
	for {
		tok, err := p.lx.next(posValue)
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenNewline:
			continue
		case tokenEOF:
			return nil, errf(SyntaxError, tok.line, "unterminated array")
		case tokenRBracket:
			if p.opts.StrictArrays {
				if i := strictViolation(arr.Elems); i >= 0 {
					return nil, errf(HeterogenousArray, line,
						"array element %d is %s, expected %s",
						i, arr.Elems[i].Kind(), arr.Elems[0].Kind())
				}
			}
			return arr, nil
		case tokenComma:
			if !afterElem {
				return nil, errf(SyntaxError, tok.line, "no array element before ','")
			}
			afterElem = false
		default:
			if afterElem {
				return nil, errf(SyntaxError, tok.line, "expected ',' or ']' in array")
			}
			v, err := p.valueFromToken(tok)
			if err != nil {
				return nil, err
			}
			arr.Elems = append(arr.Elems, v)
			afterElem = true
		}
	}
}

// inlineTable parses { ... }. Newlines are forbidden inside, commas are
// required between pairs, and a trailing comma is a syntax error. The
// table is sealed at '}'.
func (p *parser) inlineTable(line int) (Node, error) {
	t := NewTable()
	first := true
	for {
		tok, err := p.lx.next(posKey)
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenNewline:
			return nil, errf(SyntaxError, tok.line, "newline inside inline table")
		case tokenEOF:
			return nil, errf(SyntaxError, tok.line, "unterminated inline table")
		case tokenRBrace:
			if !first {
				return nil, errf(SyntaxError, tok.line, "trailing comma in inline table")
			}
			t.inline = true
			return t, nil
		case tokenBareKey, tokenString:
			if err := p.keyValuePair(tok, t); err != nil {
				return nil, err
			}
			sep, err := p.lx.next(posKey)
			if err != nil {
				return nil, err
			}
			switch sep.kind {
			case tokenComma:
				first = false
			case tokenRBrace:
				t.inline = true
				return t, nil
			case tokenNewline:
				return nil, errf(SyntaxError, sep.line, "newline inside inline table")
			default:
				return nil, errf(SyntaxError, sep.line, "expected ',' or '}' in inline table, got %s", sep.kind)
			}
		default:
			return nil, errf(SyntaxError, tok.line, "expected key in inline table, got %s", tok.kind)
		}
	}
}
