package catalog

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"

	"github.com/teranos/dimensio/errors"
	"github.com/teranos/dimensio/internal/util"
	"github.com/teranos/dimensio/units"
)

// FormatVersion is the document format written by Export.
const FormatVersion = "1.0"

// formatConstraint is the range of document formats this package reads.
const formatConstraint = "^1.0"

// Catalog is a unit catalog document.
type Catalog struct {
	Format string  `toml:"format" yaml:"format"`
	Space  Space   `toml:"space" yaml:"space"`
	Units  []Entry `toml:"unit" yaml:"unit"`
}

// Space describes the dimension space a catalog's units live in.
type Space struct {
	Name           string   `toml:"name,omitempty" yaml:"name,omitempty"`
	Description    string   `toml:"description,omitempty" yaml:"description,omitempty"`
	Dimensions     int      `toml:"dimensions" yaml:"dimensions"`
	DimensionNames []string `toml:"dimension_names,omitempty" yaml:"dimension_names,omitempty"`
}

// Entry is one affine unit definition.
type Entry struct {
	ID     string    `toml:"id" yaml:"id"`
	Name   string    `toml:"name,omitempty" yaml:"name,omitempty"`
	Dims   []float64 `toml:"dims" yaml:"dims"`
	Scale  *float64  `toml:"scale,omitempty" yaml:"scale,omitempty"`
	Offset *float64  `toml:"offset,omitempty" yaml:"offset,omitempty"`
}

// ScaleOrDefault returns the entry's scale, 1 when unset.
func (e Entry) ScaleOrDefault() float64 {
	return util.Deref(e.Scale, 1)
}

// OffsetOrDefault returns the entry's offset, 0 when unset.
func (e Entry) OffsetOrDefault() float64 {
	return util.Deref(e.Offset, 0)
}

// Validate checks the document header. Unit entries are checked when applied.
func (c *Catalog) Validate() error {
	if c.Format == "" {
		return errors.WithHint(
			errors.NewUnitError(errors.ErrConfiguration, "catalog has no format version"),
			fmt.Sprintf("add format = %q at the top of the file", FormatVersion))
	}
	v, err := semver.NewVersion(c.Format)
	if err != nil {
		return errors.NewUnitError(errors.ErrConfiguration, "invalid catalog format %q: %v", c.Format, err)
	}
	constraint, err := semver.NewConstraint(formatConstraint)
	if err != nil {
		return errors.Wrap(err, "invalid catalog format constraint")
	}
	if !constraint.Check(v) {
		return errors.NewUnitError(errors.ErrConfiguration,
			"catalog format %s is not supported, expected %s", c.Format, formatConstraint)
	}

	if c.Space.Dimensions < 1 {
		return errors.NewUnitError(errors.ErrConfiguration,
			"space.dimensions must be at least 1, got %d", c.Space.Dimensions)
	}
	if n := len(c.Space.DimensionNames); n > 0 && n != c.Space.Dimensions {
		return errors.NewUnitError(errors.ErrConfiguration,
			"space has %d dimensions but %d dimension_names", c.Space.Dimensions, n)
	}
	return nil
}

// NewSpace creates the dimension space the catalog describes.
func (c *Catalog) NewSpace() (*units.DimensionSpace, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	opts := []units.SpaceOption{
		units.WithName(c.Space.Name),
		units.WithDescription(c.Space.Description),
	}
	if len(c.Space.DimensionNames) > 0 {
		opts = append(opts, units.WithDimensionNames(c.Space.DimensionNames...))
	}
	return units.NewDimensionSpace(c.Space.Dimensions, opts...)
}

// Build creates a fresh space and registry holding every unit in the catalog.
func Build(c *Catalog, opts ...units.RegistryOption) (*units.Registry, error) {
	space, err := c.NewSpace()
	if err != nil {
		return nil, err
	}
	reg, err := units.NewRegistry(space, opts...)
	if err != nil {
		return nil, err
	}
	if err := Apply(reg, c); err != nil {
		return nil, err
	}
	return reg, nil
}

// Apply registers every catalog entry in reg, in document order. The first
// failure aborts and is reported with the entry's position, as in
// `unit[3] "psi"`. Entries registered before the failure stay registered.
func Apply(reg *units.Registry, c *Catalog) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if got, want := c.Space.Dimensions, reg.Space().Count(); got != want {
		return errors.NewUnitError(errors.ErrDimensionMismatch,
			"catalog space has %d dimensions, registry %s has %d", got, reg.Space(), want)
	}

	for i, e := range c.Units {
		if err := reg.Define(e.ID, e.Dims, e.ScaleOrDefault(), e.OffsetOrDefault(), e.Name); err != nil {
			return errors.WithLocation(err, fmt.Sprintf("unit[%d] %q", i, e.ID))
		}
	}
	return nil
}

// FromRegistry snapshots reg as a catalog. Units with a custom transform
// cannot be written down and are left out.
func FromRegistry(reg *units.Registry) *Catalog {
	space := reg.Space()
	c := &Catalog{
		Format: FormatVersion,
		Space: Space{
			Name:           space.Name(),
			Description:    space.Description(),
			Dimensions:     space.Count(),
			DimensionNames: space.DimensionNames(),
		},
	}

	for _, u := range reg.Units() {
		a, ok := u.Affine()
		if !ok {
			continue
		}
		e := Entry{
			ID:   u.Identifier(),
			Name: u.Name(),
			Dims: u.Dimensions(),
		}
		if a.Scale != 1 {
			e.Scale = util.Ptr(a.Scale)
		}
		if a.Offset != 0 {
			e.Offset = util.Ptr(a.Offset)
		}
		c.Units = append(c.Units, e)
	}
	return c
}

func logOrNop(logger *zap.SugaredLogger) *zap.SugaredLogger {
	if logger == nil {
		return zap.NewNop().Sugar()
	}
	return logger
}
