package units

import (
	"math"
	"strconv"
	"strings"
)

// vectorTolerance absorbs rounding from accumulated fractional exponents, so
// that "m^0.1*m^0.2" and "m^0.3" compare equal.
const vectorTolerance = 1e-9

// Vector holds a unit's exponents over the dimensions of its space.
type Vector []float64

// Clone returns an independent copy.
func (v Vector) Clone() Vector {
	return append(Vector(nil), v...)
}

// Equal compares element-wise. Vectors of different lengths are never equal.
func (v Vector) Equal(o Vector) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if math.Abs(v[i]-o[i]) > vectorTolerance {
			return false
		}
	}
	return true
}

// AddScaled adds k*o to v in place. Both vectors must have the same length.
func (v Vector) AddScaled(o Vector, k float64) {
	for i := range v {
		v[i] += k * o[i]
	}
}

// IsZero reports whether every exponent is zero.
func (v Vector) IsZero() bool {
	for _, x := range v {
		if math.Abs(x) > vectorTolerance {
			return false
		}
	}
	return true
}

func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = formatFloat(x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
