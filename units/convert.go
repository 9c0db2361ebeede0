package units

import (
	"github.com/teranos/dimensio/errors"
)

// Compatible reports whether expressions a and b have equal combined
// dimension vectors. Transforms are not inspected.
func (r *Registry) Compatible(a, b string) (bool, error) {
	ca, _, err := r.resolveDimensions(a)
	if err != nil {
		return false, err
	}
	cb, _, err := r.resolveDimensions(b)
	if err != nil {
		return false, err
	}
	return ca.Dimensions.Equal(cb.Dimensions), nil
}

// Dimensions returns the combined dimension vector of expression. Unlike
// Resolve it accepts offset and custom units anywhere, since no transform is
// composed.
func (r *Registry) Dimensions(expression string) (Vector, error) {
	c, _, err := r.resolveDimensions(expression)
	if err != nil {
		return nil, err
	}
	return c.Dimensions, nil
}

// Convert maps q from expression from to expression to: into base units via
// from's composite transform, then out via the inverse of to's.
func (r *Registry) Convert(q Quantity, from, to string) (Quantity, error) {
	if q == nil {
		return nil, errors.NewUnitError(errors.ErrConfiguration, "nothing to convert from %q to %q", from, to)
	}

	src, srcFactors, err := r.resolveDimensions(from)
	if err != nil {
		return nil, err
	}
	dst, dstFactors, err := r.resolveDimensions(to)
	if err != nil {
		return nil, err
	}
	if !src.Dimensions.Equal(dst.Dimensions) {
		return nil, errors.WithDetailf(
			errors.NewUnitError(errors.ErrIncompatibleUnits, "cannot convert %q (%s) to %q (%s)",
				from, r.space.Describe(src.Dimensions), to, r.space.Describe(dst.Dimensions)),
			"dimensions: %s vs %s", src.Dimensions, dst.Dimensions)
	}

	srcT, err := compose(from, srcFactors)
	if err != nil {
		return nil, err
	}
	dstT, err := compose(to, dstFactors)
	if err != nil {
		return nil, err
	}

	return q.Map(func(x float64) float64 {
		return dstT.FromBase(srcT.ToBase(x))
	}), nil
}

// ConvertFloat converts a single value.
func (r *Registry) ConvertFloat(value float64, from, to string) (float64, error) {
	q, err := r.Convert(Scalar(value), from, to)
	if err != nil {
		return 0, err
	}
	return float64(q.(Scalar)), nil
}

// ConvertSeries converts every value of values, returning a new slice.
func (r *Registry) ConvertSeries(values []float64, from, to string) ([]float64, error) {
	q, err := r.Convert(Series(values), from, to)
	if err != nil {
		return nil, err
	}
	return q.(Series), nil
}
