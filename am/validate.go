package am

import (
	"strings"

	"github.com/teranos/dimensio/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Iteration budget: any value is meaningful (0 = default, negative = unbounded)

	for i, p := range c.Catalog.Paths {
		if strings.TrimSpace(p) == "" {
			return errors.NewUnitError(errors.ErrConfiguration, "catalog.paths[%d] is empty", i)
		}
	}

	if !c.Catalog.IncludeDefaults && len(c.Catalog.Paths) == 0 {
		return errors.WithHint(
			errors.NewUnitError(errors.ErrConfiguration, "catalog.include_defaults is false and catalog.paths is empty"),
			"list at least one catalog file or re-enable the built-in catalog")
	}

	// Output precision: -1 = shortest representation, below that is invalid
	if c.Output.Precision < -1 {
		return errors.NewUnitError(errors.ErrConfiguration, "output.precision must be >= -1, got %d", c.Output.Precision)
	}

	return nil
}
