package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := New("error")
	withHint := WithHint(err, "try this fix")

	hints := GetAllHints(withHint)
	require.Len(t, hints, 1)
	assert.Equal(t, "try this fix", hints[0])
}

func TestWithDetail(t *testing.T) {
	err := New("error")
	withDetail := WithDetail(err, "detailed information")

	details := GetAllDetails(withDetail)
	require.Len(t, details, 1)
	assert.Equal(t, "detailed information", details[0])
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")

	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "errors_test.go")
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, WithStack(nil))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.Nil(t, WithDetail(nil, "detail"))
	assert.Nil(t, WithLocation(nil, "file.toml"))
	assert.Nil(t, KindOf(nil))
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(NewNotFoundError("space %q", "si")))
	assert.True(t, IsNotFoundError(Wrap(ErrNotFound, "lookup")))
	assert.False(t, IsNotFoundError(New("other")))
	assert.False(t, IsNotFoundError(nil))
}

func TestNewUnitError_Hierarchy(t *testing.T) {
	tests := []struct {
		name    string
		kind    error
		matches []error
		rejects []error
	}{
		{
			name:    "exhaustion refines invalid unit",
			kind:    ErrParserExhaustion,
			matches: []error{ErrParserExhaustion, ErrInvalidUnit, ErrUnit},
			rejects: []error{ErrInvalidExponent, ErrConfiguration},
		},
		{
			name:    "invalid exponent refines invalid unit",
			kind:    ErrInvalidExponent,
			matches: []error{ErrInvalidExponent, ErrInvalidUnit, ErrUnit},
			rejects: []error{ErrParserExhaustion},
		},
		{
			name:    "duplicate is a direct child of the root",
			kind:    ErrDuplicateUnit,
			matches: []error{ErrDuplicateUnit, ErrUnit},
			rejects: []error{ErrInvalidUnit, ErrUndefinedUnit},
		},
		{
			name:    "dimension mismatch refines configuration",
			kind:    ErrDimensionMismatch,
			matches: []error{ErrDimensionMismatch, ErrConfiguration, ErrUnit},
			rejects: []error{ErrInvalidUnit},
		},
		{
			name:    "incompatible units",
			kind:    ErrIncompatibleUnits,
			matches: []error{ErrIncompatibleUnits, ErrUnit},
			rejects: []error{ErrIncompatibleTransform},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewUnitError(tt.kind, "offending %q", "kg^a")
			for _, want := range tt.matches {
				assert.True(t, Is(err, want), "expected match with %v", want)
			}
			for _, reject := range tt.rejects {
				assert.False(t, Is(err, reject), "unexpected match with %v", reject)
			}
			assert.Equal(t, tt.kind, KindOf(err))
			assert.True(t, IsUnitError(err))
		})
	}
}

func TestNewUnitError_Message(t *testing.T) {
	err := NewUnitError(ErrUndefinedUnit, "%q is not registered", "furlong")
	assert.Equal(t, `undefined unit: "furlong" is not registered`, err.Error())
}

func TestNewUnitError_NotAKind(t *testing.T) {
	err := NewUnitError(New("stranger"), "x")
	require.Error(t, err)
	assert.False(t, IsUnitError(err))
}

func TestWithLocation_KeepsKind(t *testing.T) {
	err := NewUnitError(ErrDuplicateUnit, "%q already registered", "m")
	located := WithLocation(err, `units.toml: unit[2] "m"`)

	assert.Contains(t, located.Error(), `units.toml: unit[2] "m"`)
	assert.Contains(t, located.Error(), "already registered")
	assert.True(t, Is(located, ErrDuplicateUnit))
	assert.Equal(t, ErrDuplicateUnit, KindOf(located))
}

func TestKindOf_Foreign(t *testing.T) {
	assert.Nil(t, KindOf(New("plain")))
	assert.False(t, IsUnitError(New("plain")))
}

func TestWithKind(t *testing.T) {
	decodeErr := New("toml: line 3: expected '='")
	err := WithKind(decodeErr, ErrConfiguration)

	assert.Equal(t, decodeErr.Error(), err.Error())
	assert.True(t, Is(err, ErrConfiguration))
	assert.True(t, IsUnitError(err))
	assert.Equal(t, ErrConfiguration, KindOf(err))

	assert.Nil(t, WithKind(nil, ErrConfiguration))
	assert.False(t, IsUnitError(WithKind(decodeErr, New("other"))))
}
