package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/teranos/dimensio/errors"
	"github.com/teranos/dimensio/expr"
)

func TestParseCmd_Text(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"kg*m/s^2", "kg*m*s^-2\n"},
		{"(N*m)/s", "N*m*s^-1\n"},
		{"m*m", "m^2\n"},
		{"", "1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			isolate(t)
			out, _, err := execute(t, "parse", tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestParseCmd_JSON(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "parse", "kg*m/s^2", "--format", "json")
	require.NoError(t, err)

	var got parseResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "kg*m/s^2", got.Expression)
	assert.Equal(t, expr.Exponents{"kg": 1, "m": 1, "s": -2}, got.Exponents)
	assert.Nil(t, got.Scale)
}

func TestParseCmd_YAMLResolve(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "parse", "km/h", "-f", "yaml", "--resolve")
	require.NoError(t, err)

	var got parseResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "length time^-1", got.Dimensions)
	require.NotNil(t, got.Scale)
	assert.InDelta(t, 1000.0/3600, *got.Scale, 1e-12)
}

func TestParseCmd_ResolveOffsetUnit(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "parse", "degC", "--resolve")
	require.NoError(t, err)
	assert.Contains(t, out, "dimensions: temperature\n")
	assert.Contains(t, out, "scale: 1\n")
	assert.Contains(t, out, "offset: 273.15\n")
}

func TestParseCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		kind error
	}{
		{"bad exponent", []string{"parse", "m^x"}, errors.ErrInvalidExponent},
		{"missing operator", []string{"parse", "(N)(m)"}, errors.ErrInvalidUnit},
		{"tight budget", []string{"--budget", "1", "parse", "m/(s*m)"}, errors.ErrParserExhaustion},
		{"undefined on resolve", []string{"parse", "parsec", "--resolve"}, errors.ErrUndefinedUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestParseCmd_UnknownFormat(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "parse", "m", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
