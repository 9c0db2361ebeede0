package units

import (
	"fmt"
	"math"

	"github.com/teranos/dimensio/errors"
)

// SI dimension order used by NewSISpace and BuildDefaultRegistry.
const (
	Mass = iota
	Length
	Time
	Temperature
	Substance
	Current
	Luminosity
	siDimensions
)

// StandardAtmosphere is one atmosphere in pascals; absolute pressure units
// are offset by it from the gauge base unit.
const StandardAtmosphere = 101325.0

// NewSISpace returns a fresh seven-dimension SI space. Each call returns a
// distinct space; units from different calls are not convertible.
func NewSISpace() *DimensionSpace {
	s, _ := NewDimensionSpace(siDimensions,
		WithName("SI"),
		WithDescription("International System of Units"),
		WithDimensionNames("mass", "length", "time", "temperature", "substance", "current", "luminosity"),
	)
	return s
}

// si builds an SI exponent vector: mass, length, time, temperature,
// substance, current, luminous intensity.
func si(m, l, t, th, n, i, j float64) []float64 {
	return []float64{m, l, t, th, n, i, j}
}

var (
	dimless      = si(0, 0, 0, 0, 0, 0, 0)
	mass         = si(1, 0, 0, 0, 0, 0, 0)
	length       = si(0, 1, 0, 0, 0, 0, 0)
	duration     = si(0, 0, 1, 0, 0, 0, 0)
	temperature  = si(0, 0, 0, 1, 0, 0, 0)
	substance    = si(0, 0, 0, 0, 1, 0, 0)
	current      = si(0, 0, 0, 0, 0, 1, 0)
	luminosity   = si(0, 0, 0, 0, 0, 0, 1)
	volume       = si(0, 3, 0, 0, 0, 0, 0)
	frequency    = si(0, 0, -1, 0, 0, 0, 0)
	force        = si(1, 1, -2, 0, 0, 0, 0)
	energy       = si(1, 2, -2, 0, 0, 0, 0)
	power        = si(1, 2, -3, 0, 0, 0, 0)
	pressure     = si(1, -1, -2, 0, 0, 0, 0)
	charge       = si(0, 0, 1, 0, 0, 1, 0)
	voltage      = si(1, 2, -3, 0, 0, -1, 0)
	resistance   = si(1, 2, -3, 0, 0, -2, 0)
	dynViscosity = si(1, -1, -1, 0, 0, 0, 0)
	kinViscosity = si(0, 2, -1, 0, 0, 0, 0)
)

// Definition is one catalog entry: identifier, exponents and affine transform.
type Definition struct {
	ID     string
	Name   string
	Dims   []float64
	Scale  float64
	Offset float64
}

const psi = 6894.757293168361 // lbf/in^2 in Pa

// DefaultDefinitions is the built-in SI catalog: base and prefixed SI units,
// derived units, pressure with gauge/absolute variants, temperatures,
// viscosities, angles, volumes and common imperial lengths and masses.
var DefaultDefinitions = []Definition{
	// mass
	{"kg", "kilogram", mass, 1, 0},
	{"g", "gram", mass, 1e-3, 0},
	{"mg", "milligram", mass, 1e-6, 0},
	{"t", "tonne", mass, 1e3, 0},
	{"lb", "pound", mass, 0.45359237, 0},

	// length
	{"m", "metre", length, 1, 0},
	{"km", "kilometre", length, 1e3, 0},
	{"cm", "centimetre", length, 1e-2, 0},
	{"mm", "millimetre", length, 1e-3, 0},
	{"um", "micrometre", length, 1e-6, 0},
	{"nm", "nanometre", length, 1e-9, 0},
	{"in", "inch", length, 0.0254, 0},
	{"ft", "foot", length, 0.3048, 0},
	{"yd", "yard", length, 0.9144, 0},
	{"mi", "mile", length, 1609.344, 0},

	// time
	{"s", "second", duration, 1, 0},
	{"ms", "millisecond", duration, 1e-3, 0},
	{"us", "microsecond", duration, 1e-6, 0},
	{"min", "minute", duration, 60, 0},
	{"h", "hour", duration, 3600, 0},
	{"day", "day", duration, 86400, 0},

	// temperature
	{"K", "kelvin", temperature, 1, 0},
	{"degC", "degree Celsius", temperature, 1, 273.15},
	{"degF", "degree Fahrenheit", temperature, 5.0 / 9.0, 273.15 - 32*5.0/9.0},
	{"degR", "degree Rankine", temperature, 5.0 / 9.0, 0},

	// substance, current, luminosity
	{"mol", "mole", substance, 1, 0},
	{"kmol", "kilomole", substance, 1e3, 0},
	{"A", "ampere", current, 1, 0},
	{"mA", "milliampere", current, 1e-3, 0},
	{"cd", "candela", luminosity, 1, 0},

	// derived
	{"Hz", "hertz", frequency, 1, 0},
	{"N", "newton", force, 1, 0},
	{"kN", "kilonewton", force, 1e3, 0},
	{"lbf", "pound-force", force, 4.4482216152605, 0},
	{"J", "joule", energy, 1, 0},
	{"kJ", "kilojoule", energy, 1e3, 0},
	{"W", "watt", power, 1, 0},
	{"kW", "kilowatt", power, 1e3, 0},
	{"C", "coulomb", charge, 1, 0},
	{"V", "volt", voltage, 1, 0},
	{"ohm", "ohm", resistance, 1, 0},

	// pressure: Pa is the gauge-agnostic base; *_a units are absolute
	{"Pa", "pascal", pressure, 1, 0},
	{"kPa", "kilopascal", pressure, 1e3, 0},
	{"MPa", "megapascal", pressure, 1e6, 0},
	{"bar", "bar", pressure, 1e5, 0},
	{"mbar", "millibar", pressure, 1e2, 0},
	{"atm", "standard atmosphere", pressure, StandardAtmosphere, 0},
	{"psi", "pound per square inch", pressure, psi, 0},
	{"Pa_g", "pascal gauge", pressure, 1, 0},
	{"Pa_a", "pascal absolute", pressure, 1, -StandardAtmosphere},
	{"kPa_g", "kilopascal gauge", pressure, 1e3, 0},
	{"kPa_a", "kilopascal absolute", pressure, 1e3, -StandardAtmosphere},
	{"bar_g", "bar gauge", pressure, 1e5, 0},
	{"bar_a", "bar absolute", pressure, 1e5, -StandardAtmosphere},
	{"psi_g", "psi gauge", pressure, psi, 0},
	{"psi_a", "psi absolute", pressure, psi, -StandardAtmosphere},

	// viscosity
	{"P", "poise", dynViscosity, 0.1, 0},
	{"cP", "centipoise", dynViscosity, 1e-3, 0},
	{"St", "stokes", kinViscosity, 1e-4, 0},
	{"cSt", "centistokes", kinViscosity, 1e-6, 0},

	// angle
	{"rad", "radian", dimless, 1, 0},
	{"deg", "degree", dimless, math.Pi / 180, 0},
	{"grad", "gradian", dimless, math.Pi / 200, 0},

	// volume
	{"L", "litre", volume, 1e-3, 0},
	{"mL", "millilitre", volume, 1e-6, 0},
	{"gal", "US gallon", volume, 3.785411784e-3, 0},
}

// BuildDefaultRegistry returns a new registry over a fresh SI space populated
// with DefaultDefinitions. The caller owns the registry; nothing is cached.
func BuildDefaultRegistry(opts ...RegistryOption) (*Registry, error) {
	reg, err := NewRegistry(NewSISpace(), opts...)
	if err != nil {
		return nil, err
	}
	if err := reg.DefineAll(DefaultDefinitions); err != nil {
		return nil, errors.Wrap(err, "default catalog")
	}
	return reg, nil
}

// DefineAll registers every definition, stopping at the first failure.
func (r *Registry) DefineAll(defs []Definition) error {
	for i, d := range defs {
		if err := r.Define(d.ID, d.Dims, d.Scale, d.Offset, d.Name); err != nil {
			return errors.WithLocation(err, definitionLocation(i, d.ID))
		}
	}
	return nil
}

func definitionLocation(i int, id string) string {
	return fmt.Sprintf("unit[%d] %q", i, id)
}
