package toml

import (
	"io"
)

// =========================
// Public API
// =========================

// Options configures both directions of the codec. The zero value is
// ready to use.
type Options struct {
	// InflateDatetime replaces the default string carrier of each
	// datetime token with a caller-chosen value. The literal is
	// normalized RFC-3339-shaped text; kind identifies the variant.
	InflateDatetime func(lit string, kind ValueKind) any

	// InflateBoolean replaces the default bool carrier of each boolean
	// token.
	InflateBoolean func(b bool) any

	// StrictArrays enforces homogeneous arrays on both parse and
	// encode, per TOML v0.5 typing rules.
	StrictArrays bool
}

func (o *Options) orDefault() Options {
	if o == nil {
		return Options{}
	}
	return *o
}

// Parse parses a UTF-8 TOML document and returns the root table. On
// error no partial tree is returned; the *Error carries the 1-based
// line of the offending input.
//
// Unpaired surrogate escapes in basic strings decode leniently to
// U+FFFD rather than failing; strict rejection is not offered.
func Parse(src []byte, opts *Options) (*Table, error) {
	return parseDocument(src, opts.orDefault())
}

// ParseReader reads all of r and parses it.
func ParseReader(r io.Reader, opts *Options) (*Table, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(src, opts)
}

// ToTOML renders a value tree to canonical TOML. The root must be a
// table. Output is deterministic: identical trees produce identical
// bytes.
func ToTOML(n Node, opts *Options) (string, error) {
	return encode(n, opts.orDefault())
}

// Codec bundles a fixed set of options for repeated use.
type Codec struct {
	opts Options
}

func NewCodec(opts *Options) *Codec {
	return &Codec{opts: opts.orDefault()}
}

func (c *Codec) Decode(src []byte) (*Table, error) {
	return parseDocument(src, c.opts)
}

func (c *Codec) Encode(n Node) (string, error) {
	return encode(n, c.opts)
}
