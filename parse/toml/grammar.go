package toml

import (
	"regexp"
	"time"
)

// =========================
// Grammar Tables
// =========================

// Literal patterns for complete scalar runs. The tokenizer cuts a run of
// non-separator characters out of the value position and classifies it
// against these, in order.
var (
	reBareKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

	reDecInteger = regexp.MustCompile(`^[+-]?(?:0|[1-9](?:_?[0-9])*)$`)
	reHexInteger = regexp.MustCompile(`^0x[0-9A-Fa-f](?:_?[0-9A-Fa-f])*$`)
	reOctInteger = regexp.MustCompile(`^0o[0-7](?:_?[0-7])*$`)
	reBinInteger = regexp.MustCompile(`^0b[01](?:_?[01])*$`)

	// A float needs a fractional part, an exponent, or both.
	reFloat = regexp.MustCompile(`^[+-]?(?:0|[1-9](?:_?[0-9])*)(?:\.[0-9](?:_?[0-9])*(?:[eE][+-]?[0-9](?:_?[0-9])*)?|[eE][+-]?[0-9](?:_?[0-9])*)$`)
)

// Date-time shapes, anchored at the start of the remaining input. Tried
// longest-first so an offset datetime is never cut short as a local one.
var (
	reOffsetDatetimeAt = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[Tt ]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:[Zz]|[+-]\d{2}:\d{2})`)
	reLocalDatetimeAt  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[Tt ]\d{2}:\d{2}:\d{2}(?:\.\d+)?`)
	reLocalDateAt      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	reLocalTimeAt      = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}(?:\.\d+)?`)

	datetimeShapes = []*regexp.Regexp{
		reOffsetDatetimeAt,
		reLocalDatetimeAt,
		reLocalDateAt,
		reLocalTimeAt,
	}
)

// Character classes.

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isBareKeyChar(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z') ||
		isDigit(c)
}

// Escape tables.

// basicUnescape maps the character after a backslash in a basic string
// to its decoded rune. \uXXXX and \UXXXXXXXX are handled separately.
var basicUnescape = map[byte]rune{
	'b':  '\b',
	't':  '\t',
	'n':  '\n',
	'f':  '\f',
	'r':  '\r',
	'"':  '"',
	'\\': '\\',
}

// basicEscape maps runes that must not appear raw in an encoded basic
// string to their escaped spelling. Control characters outside this
// table escape as \u00XX.
var basicEscape = map[rune]string{
	'"':  `\"`,
	'\\': `\\`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
	'\f': `\f`,
	'\b': `\b`,
}

// Date-time validation layouts, per variant.
var datetimeLayouts = map[ValueKind][]string{
	KindOffsetDatetime: {time.RFC3339Nano},
	KindLocalDatetime:  {"2006-01-02T15:04:05", "2006-01-02T15:04:05.999999999"},
	KindLocalDate:      {"2006-01-02"},
	KindLocalTime:      {"15:04:05", "15:04:05.999999999"},
}

// classifyDatetime matches lit against the four shapes. The literal must
// already be a complete run.
func classifyDatetime(lit string) (ValueKind, bool) {
	switch {
	case matchWhole(reOffsetDatetimeAt, lit):
		return KindOffsetDatetime, true
	case matchWhole(reLocalDatetimeAt, lit):
		return KindLocalDatetime, true
	case matchWhole(reLocalDateAt, lit):
		return KindLocalDate, true
	case matchWhole(reLocalTimeAt, lit):
		return KindLocalTime, true
	}
	return 0, false
}

func matchWhole(re *regexp.Regexp, s string) bool {
	return len(re.FindString(s)) == len(s) && s != ""
}

// validateDatetime classifies a normalized literal and checks its fields
// are in range. Returns the variant, or an InvalidDateTime error carrying
// line.
func validateDatetime(norm string, line int) (ValueKind, error) {
	kind, ok := classifyDatetime(norm)
	if !ok {
		return 0, errf(InvalidDateTime, line, "malformed datetime %q", norm)
	}
	for _, layout := range datetimeLayouts[kind] {
		if _, err := time.Parse(layout, norm); err == nil {
			return kind, nil
		}
	}
	return 0, errf(InvalidDateTime, line, "datetime %q has out-of-range fields", norm)
}
