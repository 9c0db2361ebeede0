package expr

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Exponents maps atomic unit identifiers to their net exponent.
// Zero exponents are never present in a parsed result.
type Exponents map[string]float64

// Identifiers returns the identifiers in sorted order.
func (e Exponents) Identifiers() []string {
	ids := make([]string, 0, len(e))
	for id := range e {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns an independent copy.
func (e Exponents) Clone() Exponents {
	out := make(Exponents, len(e))
	for id, exp := range e {
		out[id] = exp
	}
	return out
}

// Equal reports whether both mappings hold the same identifiers with the same exponents.
func (e Exponents) Equal(other Exponents) bool {
	if len(e) != len(other) {
		return false
	}
	for id, exp := range e {
		o, ok := other[id]
		if !ok || o != exp {
			return false
		}
	}
	return true
}

// IsDimensionless reports whether the mapping is empty.
func (e Exponents) IsDimensionless() bool {
	return len(e) == 0
}

// String renders the mapping as an expression that parses back to an equal
// mapping: positive exponents first, each group sorted by identifier, for
// example "kg*m*s^-2".
func (e Exponents) String() string {
	var pos, neg []string
	for _, id := range e.Identifiers() {
		if e[id] > 0 {
			pos = append(pos, id)
		} else {
			neg = append(neg, id)
		}
	}

	var b strings.Builder
	for _, id := range append(pos, neg...) {
		if b.Len() > 0 {
			b.WriteByte('*')
		}
		b.WriteString(id)
		if exp := e[id]; exp != 1 {
			b.WriteByte('^')
			b.WriteString(formatExponent(exp))
		}
	}
	return b.String()
}

func formatExponent(exp float64) string {
	if exp == math.Trunc(exp) && math.Abs(exp) < 1e15 {
		return strconv.FormatInt(int64(exp), 10)
	}
	return strconv.FormatFloat(exp, 'g', -1, 64)
}

// compact drops zero exponents in place.
func (e Exponents) compact() Exponents {
	for id, exp := range e {
		if exp == 0 {
			delete(e, id)
		}
	}
	return e
}
