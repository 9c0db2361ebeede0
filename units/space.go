package units

import (
	"fmt"
	"strings"

	"github.com/teranos/dimensio/errors"
)

// DimensionSpace is the set of independent physical dimensions a family of
// units is expressed in. Spaces are immutable and compared by identity only.
type DimensionSpace struct {
	count       int
	name        string
	description string
	dimNames    []string
}

// SpaceOption configures a DimensionSpace at construction.
type SpaceOption func(*DimensionSpace)

// WithName sets the space's name.
func WithName(name string) SpaceOption {
	return func(s *DimensionSpace) { s.name = name }
}

// WithDescription sets the space's description.
func WithDescription(description string) SpaceOption {
	return func(s *DimensionSpace) { s.description = description }
}

// WithDimensionNames names each dimension, in vector order.
func WithDimensionNames(names ...string) SpaceOption {
	return func(s *DimensionSpace) { s.dimNames = append([]string(nil), names...) }
}

// NewDimensionSpace creates a space with count dimensions.
func NewDimensionSpace(count int, opts ...SpaceOption) (*DimensionSpace, error) {
	if count < 1 {
		return nil, errors.NewUnitError(errors.ErrConfiguration,
			"dimension count must be a positive integer, got %d", count)
	}
	s := &DimensionSpace{count: count}
	for _, opt := range opts {
		opt(s)
	}
	if s.dimNames != nil && len(s.dimNames) != count {
		return nil, errors.NewUnitError(errors.ErrConfiguration,
			"space %q has %d dimensions but %d dimension names", s.name, count, len(s.dimNames))
	}
	return s, nil
}

// Count returns the number of dimensions.
func (s *DimensionSpace) Count() int { return s.count }

// Name returns the space's name.
func (s *DimensionSpace) Name() string { return s.name }

// Description returns the space's description.
func (s *DimensionSpace) Description() string { return s.description }

// DimensionNames returns a copy of the per-dimension names, or nil if unnamed.
func (s *DimensionSpace) DimensionNames() []string {
	if s.dimNames == nil {
		return nil
	}
	return append([]string(nil), s.dimNames...)
}

// Dimensionless returns the zero exponent vector of this space.
func (s *DimensionSpace) Dimensionless() Vector {
	return make(Vector, s.count)
}

// Describe renders v using dimension names where available, e.g.
// "mass length time^-2". The zero vector renders as "dimensionless".
func (s *DimensionSpace) Describe(v Vector) string {
	var parts []string
	for i, exp := range v {
		if exp == 0 {
			continue
		}
		label := fmt.Sprintf("d%d", i)
		if i < len(s.dimNames) {
			label = s.dimNames[i]
		}
		if exp != 1 {
			label += "^" + formatFloat(exp)
		}
		parts = append(parts, label)
	}
	if len(parts) == 0 {
		return "dimensionless"
	}
	return strings.Join(parts, " ")
}

func (s *DimensionSpace) String() string {
	if s.name == "" {
		return fmt.Sprintf("space(%d)", s.count)
	}
	return fmt.Sprintf("%s(%d)", s.name, s.count)
}
