package units

import (
	"math"

	"github.com/teranos/dimensio/errors"
	"github.com/teranos/dimensio/expr"
)

// Composite is a unit expression resolved against a registry.
type Composite struct {
	Expression string
	Exponents  expr.Exponents
	Dimensions Vector
	Transform  Transform
}

// factor is one registered unit raised to its net exponent.
type factor struct {
	unit *Unit
	exp  float64
}

// Resolve parses expression and combines its units into a dimension vector
// and a composite transform.
//
// A single unit with exponent 1 keeps its own transform, offset or custom
// pair included. Any other shape must be built from purely multiplicative
// units, and the composite scale is the product of scale^exponent.
func (r *Registry) Resolve(expression string) (*Composite, error) {
	c, factors, err := r.resolveDimensions(expression)
	if err != nil {
		return nil, err
	}
	t, err := compose(expression, factors)
	if err != nil {
		return nil, err
	}
	c.Transform = t
	return c, nil
}

// resolveDimensions parses expression, looks up every identifier and sums
// exponent*dimensions. Identifiers that cancel out must still be registered.
func (r *Registry) resolveDimensions(expression string) (*Composite, []factor, error) {
	exps, err := r.parser.Parse(expression)
	if err != nil {
		return nil, nil, err
	}

	dims := r.space.Dimensionless()
	var factors []factor
	for _, id := range exps.Identifiers() {
		u, ok := r.Lookup(id)
		if !ok {
			return nil, nil, errors.WithDetailf(
				errors.WithHint(
					errors.NewUnitError(errors.ErrUndefinedUnit, "%q is not registered in %s", id, r.space),
					"register the unit first or check the spelling"),
				"expression: %q", expression)
		}
		exp := exps[id]
		if exp == 0 {
			continue
		}
		dims.AddScaled(u.dims, exp)
		factors = append(factors, factor{unit: u, exp: exp})
	}

	return &Composite{
		Expression: expression,
		Exponents:  compacted(exps),
		Dimensions: dims,
	}, factors, nil
}

func compose(expression string, factors []factor) (Transform, error) {
	if len(factors) == 0 {
		return identity, nil
	}
	if len(factors) == 1 && factors[0].exp == 1 {
		return factors[0].unit.transform, nil
	}

	scale := 1.0
	for _, f := range factors {
		a, ok := f.unit.Affine()
		if !ok || !a.Multiplicative() {
			return nil, errors.WithDetailf(
				errors.WithHint(
					errors.NewUnitError(errors.ErrIncompatibleTransform,
						"%q has an offset or custom transform and cannot be combined in %q", f.unit.identifier, expression),
					"offset units such as temperatures convert only on their own with exponent 1"),
				"expression: %q", expression)
		}
		scale *= math.Pow(a.Scale, f.exp)
	}
	return Affine{Scale: scale}, nil
}

func compacted(exps expr.Exponents) expr.Exponents {
	out := make(expr.Exponents, len(exps))
	for id, exp := range exps {
		if exp != 0 {
			out[id] = exp
		}
	}
	return out
}
