package parse

// Package parse holds file- and reader-level entry points over the toml
// codec, for callers that do not want to manage reading themselves.

import (
	"io"
	"os"

	"github.com/dzjyyds666/tomlkit/parse/toml"
	"github.com/pkg/errors"
)

// TomlFile parses the TOML document at path.
func TomlFile(path string, opts *toml.Options) (*toml.Table, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	root, err := toml.Parse(src, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return root, nil
}

// Toml parses a TOML document from r.
func Toml(r io.Reader, opts *toml.Options) (*toml.Table, error) {
	root, err := toml.ParseReader(r, opts)
	if err != nil {
		return nil, errors.Wrap(err, "parse toml")
	}
	return root, nil
}
