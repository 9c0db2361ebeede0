// Package store persists unit registries in SQLite.
//
// A registry is saved under a space name as rows in spaces, space_dimensions,
// units and unit_dimensions. Loading rebuilds a fresh dimension space, so a
// loaded registry never shares its space with the one that was saved.
package store
