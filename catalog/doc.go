// Package catalog reads and writes unit catalogs: TOML or YAML documents that
// describe a dimension space and the units registered in it.
//
//	format = "1.0"
//
//	[space]
//	name = "si"
//	dimensions = 7
//	dimension_names = ["mass", "length", "time", "temperature", "amount", "current", "luminosity"]
//
//	[[unit]]
//	id = "psi"
//	name = "pound per square inch"
//	dims = [1, -1, -2, 0, 0, 0, 0]
//	scale = 6894.757293168361
//
// Scale defaults to 1 and offset to 0. A Watcher rebuilds the registry when a
// catalog file changes and publishes it through a Holder.
package catalog
