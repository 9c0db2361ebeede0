package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging.
// Use these constants instead of raw strings to ensure consistency.
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldCount     = "count"
	FieldFile      = "file"
	FieldPath      = "path"

	FieldUnit       = "unit"
	FieldExpression = "expression"
	FieldSpace      = "space"
	FieldUnits      = "units"
	FieldDimensions = "dimensions"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to hand a logger to a library type:
//
//	reg, err := units.BuildDefaultRegistry(units.WithLogger(logger.ComponentLogger("units")))
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
