// Package units declares units of measure with explicit physical dimensions
// and converts quantities between dimensionally compatible unit expressions.
//
// A DimensionSpace fixes how many independent dimensions a family of units
// has. Each Unit carries an exponent vector over that space plus a pair of
// inverse transforms to and from the space's base units. A Registry holds the
// atomic units of one space, resolves compound expressions (parsed by package
// expr) into a combined dimension vector and transform, and converts values.
//
//	reg, _ := units.BuildDefaultRegistry()
//	v, err := reg.ConvertFloat(20, "kg*m/s^2", "N") // 20
//
// Registries are not safe for concurrent mutation. Build a registry, Freeze it
// and share it read-only, or swap whole registries (see catalog.Holder).
package units
