package toml

import "fmt"

// =========================
// Error Surface
// =========================

type ErrorKind uint8

const (
	SyntaxError ErrorKind = iota
	UnterminatedString
	InvalidEscape
	InvalidUtf8
	DuplicateKey
	DuplicateTable
	TypeConflict
	ExtendSealed
	HeterogenousArray
	InvalidNumber
	InvalidDateTime
	UnknownValueType
)

var errorKindNames = map[ErrorKind]string{
	SyntaxError:        "syntax error",
	UnterminatedString: "unterminated string",
	InvalidEscape:      "invalid escape",
	InvalidUtf8:        "invalid utf8",
	DuplicateKey:       "duplicate key",
	DuplicateTable:     "duplicate table",
	TypeConflict:       "type conflict",
	ExtendSealed:       "extend sealed",
	HeterogenousArray:  "heterogenous array",
	InvalidNumber:      "invalid number",
	InvalidDateTime:    "invalid datetime",
	UnknownValueType:   "unknown value type",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "invalid"
}

// Error is the codec's error type. Line is 1-based and refers to the
// offending line of the source document; writer errors carry line 0.
type Error struct {
	Kind ErrorKind
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("toml:%d: %s", e.Line, e.Msg)
}

func errf(kind ErrorKind, line int, format string, args ...any) *Error {
	return &Error{Kind: kind, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// ErrKindOf extracts the codec error kind from err. The second return is
// false when err is not a codec error.
func ErrKindOf(err error) (ErrorKind, bool) {
	if e, ok := err.(*Error); ok {
		return e.Kind, true
	}
	return 0, false
}
