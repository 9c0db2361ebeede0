package units

import (
	"math"

	"github.com/teranos/dimensio/errors"
)

// Unit is an atomic unit of measure in one DimensionSpace. Units are
// immutable after construction.
type Unit struct {
	identifier string
	name       string
	space      *DimensionSpace
	dims       Vector
	transform  Transform
}

// UnitOption configures a Unit at construction.
type UnitOption func(*Unit)

// WithUnitName sets the unit's human-readable name.
func WithUnitName(name string) UnitOption {
	return func(u *Unit) { u.name = name }
}

// NewUnit creates a unit with an arbitrary transform. The identifier may be
// empty for anonymous units, which cannot be registered.
func NewUnit(space *DimensionSpace, identifier string, dims []float64, t Transform, opts ...UnitOption) (*Unit, error) {
	if space == nil {
		return nil, errors.NewUnitError(errors.ErrConfiguration, "unit %q has no dimension space", identifier)
	}
	if len(dims) != space.Count() {
		return nil, errors.NewUnitError(errors.ErrDimensionMismatch,
			"unit %q has %d exponents, space %s has %d dimensions", identifier, len(dims), space, space.Count())
	}
	for i, d := range dims {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, errors.NewUnitError(errors.ErrConfiguration,
				"unit %q has a non-finite exponent at dimension %d", identifier, i)
		}
	}
	if t == nil {
		return nil, errors.NewUnitError(errors.ErrConfiguration, "unit %q has no transform", identifier)
	}
	if f, ok := t.(FuncTransform); ok && (f.Forward == nil || f.Inverse == nil) {
		return nil, errors.NewUnitError(errors.ErrConfiguration, "unit %q needs both a forward and an inverse function", identifier)
	}

	u := &Unit{
		identifier: identifier,
		space:      space,
		dims:       Vector(dims).Clone(),
		transform:  t,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u, nil
}

// NewAffineUnit creates a unit with to_base(x) = scale*x + offset.
func NewAffineUnit(space *DimensionSpace, identifier string, dims []float64, scale, offset float64, opts ...UnitOption) (*Unit, error) {
	if scale == 0 {
		return nil, errors.WithHint(
			errors.NewUnitError(errors.ErrConfiguration, "unit %q has a zero scale", identifier),
			"scale is the size of one unit in base units and must be nonzero")
	}
	if math.IsNaN(scale) || math.IsInf(scale, 0) || math.IsNaN(offset) || math.IsInf(offset, 0) {
		return nil, errors.NewUnitError(errors.ErrConfiguration,
			"unit %q has a non-finite scale or offset", identifier)
	}
	return NewUnit(space, identifier, dims, Affine{Scale: scale, Offset: offset}, opts...)
}

// NewFuncUnit creates a unit from a monotonic forward/inverse pair.
func NewFuncUnit(space *DimensionSpace, identifier string, dims []float64, forward, inverse func(float64) float64, opts ...UnitOption) (*Unit, error) {
	return NewUnit(space, identifier, dims, FuncTransform{Forward: forward, Inverse: inverse}, opts...)
}

// Identifier returns the unit's identifier, possibly empty.
func (u *Unit) Identifier() string { return u.identifier }

// Name returns the unit's human-readable name, possibly empty.
func (u *Unit) Name() string { return u.name }

// Space returns the dimension space the unit belongs to.
func (u *Unit) Space() *DimensionSpace { return u.space }

// Dimensions returns a copy of the unit's exponent vector.
func (u *Unit) Dimensions() Vector { return u.dims.Clone() }

// Transform returns the unit's base-unit transform.
func (u *Unit) Transform() Transform { return u.transform }

// Affine returns the unit's affine coefficients, if it has an affine transform.
func (u *Unit) Affine() (Affine, bool) {
	a, ok := u.transform.(Affine)
	return a, ok
}

// Multiplicative reports whether the unit is a pure scale of its base unit.
func (u *Unit) Multiplicative() bool {
	a, ok := u.Affine()
	return ok && a.Multiplicative()
}

// ToBase converts q from this unit to base units.
func (u *Unit) ToBase(q Quantity) Quantity {
	return q.Map(u.transform.ToBase)
}

// FromBase converts q from base units to this unit.
func (u *Unit) FromBase(q Quantity) Quantity {
	return q.Map(u.transform.FromBase)
}

// Convertible reports whether u and o share a dimension space and have
// equal dimension vectors. Identifiers and names play no part.
func (u *Unit) Convertible(o *Unit) bool {
	if u == nil || o == nil {
		return false
	}
	return u.space == o.space && u.dims.Equal(o.dims)
}

func (u *Unit) String() string {
	if u.identifier == "" {
		return "<anonymous " + u.dims.String() + ">"
	}
	return u.identifier
}

// withIdentifier returns a copy of u under a different identifier.
func (u *Unit) withIdentifier(id string) *Unit {
	c := *u
	c.identifier = id
	return &c
}
