package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/dimensio/errors"
)

func newMechRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry(mechanics(t), WithLogger(zaptest.NewLogger(t).Sugar()))
	require.NoError(t, err)
	require.NoError(t, reg.Define("kg", []float64{1, 0, 0}, 1, 0, "kilogram"))
	require.NoError(t, reg.Define("m", []float64{0, 1, 0}, 1, 0, "metre"))
	require.NoError(t, reg.Define("s", []float64{0, 0, 1}, 1, 0, "second"))
	return reg
}

func TestNewRegistry_NilSpace(t *testing.T) {
	reg, err := NewRegistry(nil)
	assert.Nil(t, reg)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}

func TestRegistry_Register(t *testing.T) {
	reg := newMechRegistry(t)

	assert.Equal(t, 3, reg.Len())
	assert.Equal(t, []string{"kg", "m", "s"}, reg.Identifiers())

	u, ok := reg.Lookup("m")
	require.True(t, ok)
	assert.Equal(t, "metre", u.Name())

	_, ok = reg.Lookup("ft")
	assert.False(t, ok)
}

func TestRegistry_Register_Errors(t *testing.T) {
	reg := newMechRegistry(t)
	other, _ := NewDimensionSpace(3)

	foreign, _ := NewAffineUnit(other, "ft", []float64{0, 1, 0}, 0.3048, 0)
	anonymous, _ := NewAffineUnit(reg.Space(), "", []float64{0, 1, 0}, 1, 0)
	compound, _ := NewAffineUnit(reg.Space(), "m2", []float64{0, 2, 0}, 1, 0)
	dup, _ := NewAffineUnit(reg.Space(), "m", []float64{0, 1, 0}, 2, 0)

	tests := []struct {
		name string
		unit *Unit
		kind error
	}{
		{"nil unit", nil, errors.ErrConfiguration},
		{"foreign space", foreign, errors.ErrConfiguration},
		{"anonymous", anonymous, errors.ErrConfiguration},
		{"non-atomic identifier", compound, errors.ErrInvalidUnit},
		{"duplicate identifier", dup, errors.ErrDuplicateUnit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.Register(tt.unit)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}

	assert.Equal(t, 3, reg.Len(), "failed registrations leave the registry unchanged")
	u, _ := reg.Lookup("m")
	a, _ := u.Affine()
	assert.Equal(t, 1.0, a.Scale, "duplicates never overwrite")
}

func TestRegistry_NormalizesIdentifiers(t *testing.T) {
	reg := newMechRegistry(t)
	decomposed := "A\u030a" // A + combining ring above
	composed := "\u00c5"

	require.NoError(t, reg.Define(decomposed, []float64{0, 1, 0}, 1e-10, 0, "angstrom"))

	u, ok := reg.Lookup(composed)
	require.True(t, ok)
	assert.Equal(t, composed, u.Identifier())
	assert.True(t, reg.IsDefined(decomposed+"/s"))

	err := reg.Define(composed, []float64{0, 1, 0}, 1e-10, 0, "")
	assert.True(t, errors.Is(err, errors.ErrDuplicateUnit))
}

func TestRegistry_IsDefined(t *testing.T) {
	reg := newMechRegistry(t)

	tests := []struct {
		input string
		want  bool
	}{
		{"m", true},
		{"kg*m/s^2", true},
		{"(m/s)^2", true},
		{"m/m", true},
		{"ft", false},
		{"ft/ft", false},
		{"m*ft", false},
		{"kg^a", false},
		{"(m)(s)", false},
		{"", false},
		{"  ", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, reg.IsDefined(tt.input), tt.input)
	}
}

func TestRegistry_FreezeAndClone(t *testing.T) {
	reg := newMechRegistry(t)
	reg.Freeze()
	assert.True(t, reg.Frozen())

	err := reg.Define("g", []float64{1, 0, 0}, 1e-3, 0, "")
	assert.True(t, errors.Is(err, errors.ErrConfiguration))

	clone := reg.Clone()
	assert.False(t, clone.Frozen())
	require.NoError(t, clone.Define("g", []float64{1, 0, 0}, 1e-3, 0, ""))
	assert.Equal(t, 4, clone.Len())
	assert.Equal(t, 3, reg.Len())
	assert.Same(t, reg.Space(), clone.Space())
}

func TestRegistry_Units(t *testing.T) {
	reg := newMechRegistry(t)
	var ids []string
	for _, u := range reg.Units() {
		ids = append(ids, u.Identifier())
	}
	assert.Equal(t, []string{"kg", "m", "s"}, ids)
}

func TestRegistry_Budget(t *testing.T) {
	reg, err := NewRegistry(mechanics(t), WithBudget(1))
	require.NoError(t, err)
	require.NoError(t, reg.Define("m", []float64{0, 1, 0}, 1, 0, ""))
	require.NoError(t, reg.Define("s", []float64{0, 0, 1}, 1, 0, ""))
	assert.Equal(t, 1, reg.Budget())

	_, err = reg.Resolve("m/(s*m)")
	assert.True(t, errors.Is(err, errors.ErrParserExhaustion))
}
