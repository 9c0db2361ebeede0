package catalog

import (
	"io"
	"strings"

	gotoml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/teranos/dimensio/errors"
)

// Encoding selects the document syntax used by Export.
type Encoding string

const (
	EncodingTOML Encoding = "toml"
	EncodingYAML Encoding = "yaml"
)

// ParseEncoding maps a user-supplied name to an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "toml":
		return EncodingTOML, nil
	case "yaml", "yml":
		return EncodingYAML, nil
	}
	return "", errors.NewUnitError(errors.ErrConfiguration, "unknown catalog encoding %q", s)
}

// Export writes c to w.
func Export(w io.Writer, c *Catalog, enc Encoding) error {
	switch enc {
	case EncodingTOML:
		e := gotoml.NewEncoder(w)
		e.SetIndentTables(true)
		if err := e.Encode(c); err != nil {
			return errors.Wrap(err, "failed to encode TOML catalog")
		}
		return nil
	case EncodingYAML:
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		if err := e.Encode(c); err != nil {
			return errors.Wrap(err, "failed to encode YAML catalog")
		}
		return errors.Wrap(e.Close(), "failed to flush YAML catalog")
	}
	return errors.NewUnitError(errors.ErrConfiguration, "unknown catalog encoding %q", string(enc))
}
