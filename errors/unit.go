package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// The unit error family. Every kind refines ErrUnit; some refine another kind,
// in which case errors.Is matches the parent as well:
//
//	ErrUnit
//	├── ErrConfiguration
//	│   └── ErrDimensionMismatch
//	├── ErrInvalidUnit
//	│   ├── ErrInvalidExponent
//	│   └── ErrParserExhaustion
//	├── ErrDuplicateUnit
//	├── ErrUndefinedUnit
//	├── ErrIncompatibleUnits
//	└── ErrIncompatibleTransform
var (
	// ErrUnit is the root of the family
	ErrUnit = New("unit error")

	// ErrConfiguration indicates invalid static construction parameters
	ErrConfiguration = New("configuration error")

	// ErrDimensionMismatch indicates an exponent vector whose length differs from its space
	ErrDimensionMismatch = New("dimension mismatch")

	// ErrInvalidUnit indicates malformed expression text
	ErrInvalidUnit = New("invalid unit")

	// ErrInvalidExponent indicates a non-numeric exponent
	ErrInvalidExponent = New("invalid exponent")

	// ErrParserExhaustion indicates the parser ran out of iterations
	ErrParserExhaustion = New("parser iteration budget exhausted")

	// ErrDuplicateUnit indicates a registration conflict
	ErrDuplicateUnit = New("duplicate unit")

	// ErrUndefinedUnit indicates an expression references an unregistered unit
	ErrUndefinedUnit = New("undefined unit")

	// ErrIncompatibleUnits indicates differing dimension vectors
	ErrIncompatibleUnits = New("incompatible units")

	// ErrIncompatibleTransform indicates an offset or custom transform used inside a compound expression
	ErrIncompatibleTransform = New("incompatible transform")
)

var parentKind = map[error]error{
	ErrConfiguration:         ErrUnit,
	ErrDimensionMismatch:     ErrConfiguration,
	ErrInvalidUnit:           ErrUnit,
	ErrInvalidExponent:       ErrInvalidUnit,
	ErrParserExhaustion:      ErrInvalidUnit,
	ErrDuplicateUnit:         ErrUnit,
	ErrUndefinedUnit:         ErrUnit,
	ErrIncompatibleUnits:     ErrUnit,
	ErrIncompatibleTransform: ErrUnit,
}

// kindsBySpecificity lists kinds so that a refinement is checked before its parent.
var kindsBySpecificity = []error{
	ErrParserExhaustion,
	ErrInvalidExponent,
	ErrInvalidUnit,
	ErrDimensionMismatch,
	ErrConfiguration,
	ErrDuplicateUnit,
	ErrUndefinedUnit,
	ErrIncompatibleTransform,
	ErrIncompatibleUnits,
	ErrUnit,
}

// NewUnitError creates an error of the given kind. The message is prefixed with
// the kind's own message, and the error is marked with the kind and all of its
// ancestors up to ErrUnit.
func NewUnitError(kind error, format string, args ...interface{}) error {
	if _, ok := parentKind[kind]; !ok && kind != ErrUnit {
		return crdb.AssertionFailedf("not a unit error kind: %v", kind)
	}
	err := crdb.NewWithDepthf(1, kind.Error()+": "+format, args...)
	for k := kind; k != nil; k = parentKind[k] {
		err = crdb.Mark(err, k)
	}
	return err
}

// WithKind marks an existing error, typically from a third-party decoder, as
// belonging to kind and its ancestors. The message of err is kept unchanged.
func WithKind(err error, kind error) error {
	if err == nil {
		return nil
	}
	if _, ok := parentKind[kind]; !ok && kind != ErrUnit {
		return crdb.AssertionFailedf("not a unit error kind: %v", kind)
	}
	for k := kind; k != nil; k = parentKind[k] {
		err = crdb.Mark(err, k)
	}
	return err
}

// KindOf returns the most specific unit error kind err belongs to, or nil if
// err is not part of the family.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range kindsBySpecificity {
		if Is(err, kind) {
			return kind
		}
	}
	return nil
}

// IsUnitError reports whether err belongs to the unit error family.
func IsUnitError(err error) bool {
	return err != nil && Is(err, ErrUnit)
}
