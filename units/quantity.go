package units

// Quantity is a scalar or an ordered sequence of scalars. Transforms apply
// element-wise and preserve the variant.
type Quantity interface {
	// Map applies f to every element, returning the same variant.
	Map(f func(float64) float64) Quantity
	// Values returns the elements as a new slice.
	Values() []float64
	// Len returns the number of elements.
	Len() int

	quantity()
}

// Scalar is a single value.
type Scalar float64

// Series is an ordered sequence of values.
type Series []float64

func (s Scalar) Map(f func(float64) float64) Quantity { return Scalar(f(float64(s))) }
func (s Scalar) Values() []float64 { return []float64{float64(s)} }
func (s Scalar) Len() int { return 1 }
func (Scalar) quantity() {}

func (s Series) Map(f func(float64) float64) Quantity {
	out := make(Series, len(s))
	for i, x := range s {
		out[i] = f(x)
	}
	return out
}

func (s Series) Values() []float64 { return append([]float64(nil), s...) }
func (s Series) Len() int { return len(s) }
func (Series) quantity() {}
