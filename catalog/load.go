package catalog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/teranos/dimensio/errors"
)

// LoadTOML decodes a TOML catalog. Unknown keys are rejected.
func LoadTOML(r io.Reader) (*Catalog, error) {
	var c Catalog
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return nil, errors.WithKind(
				errors.WithLocation(errors.Newf("%s", perr.Message), fmt.Sprintf("line %d", errorLine(perr))),
				errors.ErrConfiguration)
		}
		return nil, errors.WithKind(errors.Wrap(err, "failed to decode TOML catalog"), errors.ErrConfiguration)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.WithHint(
			errors.NewUnitError(errors.ErrConfiguration, "unknown catalog keys: %s", strings.Join(keys, ", ")),
			"entries accept id, name, dims, scale and offset")
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// errorLine returns the line holding the mistake. When the offending rune is
// the newline that ends a line, the decoder has already counted it and
// reports the following line.
func errorLine(perr toml.ParseError) int {
	line := perr.Position.Line
	if line > 1 && strings.Contains(perr.Message, `got '\n'`) {
		line--
	}
	return line
}

// LoadYAML decodes a YAML catalog. Unknown keys are rejected.
func LoadYAML(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.NewUnitError(errors.ErrConfiguration, "catalog is empty")
		}
		return nil, errors.WithKind(errors.Wrap(err, "failed to decode YAML catalog"), errors.ErrConfiguration)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile reads a catalog, choosing the decoder by file extension.
// Errors are prefixed with the path.
func LoadFile(path string) (*Catalog, error) {
	var load func(io.Reader) (*Catalog, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		load = LoadTOML
	case ".yaml", ".yml":
		load = LoadYAML
	default:
		return nil, errors.WithHint(
			errors.NewUnitError(errors.ErrConfiguration, "unsupported catalog file %q", path),
			"use a .toml, .yaml or .yml extension")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open catalog %s", path)
	}
	defer f.Close()

	c, err := load(f)
	if err != nil {
		return nil, errors.WithLocation(err, path)
	}
	return c, nil
}
