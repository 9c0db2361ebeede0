package units

// Transform maps values to and from the base units of a dimension space.
// FromBase must invert ToBase.
type Transform interface {
	ToBase(x float64) float64
	FromBase(x float64) float64
}

// Affine is the transform to_base(x) = Scale*x + Offset.
type Affine struct {
	Scale  float64
	Offset float64
}

func (a Affine) ToBase(x float64) float64 { return a.Scale*x + a.Offset }
func (a Affine) FromBase(x float64) float64 { return (x - a.Offset) / a.Scale }

// Multiplicative reports whether the transform is a pure scale.
func (a Affine) Multiplicative() bool { return a.Offset == 0 }

// identity is the transform of the empty (dimensionless) expression.
var identity = Affine{Scale: 1}

// FuncTransform wraps a caller-supplied monotonic forward/inverse pair, for
// units that are not affine in their base unit (decibels, pH, ...).
type FuncTransform struct {
	Forward func(float64) float64
	Inverse func(float64) float64
}

func (f FuncTransform) ToBase(x float64) float64 { return f.Forward(x) }
func (f FuncTransform) FromBase(x float64) float64 { return f.Inverse(x) }
