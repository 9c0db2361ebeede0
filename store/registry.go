package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/teranos/dimensio/catalog"
	"github.com/teranos/dimensio/errors"
	"github.com/teranos/dimensio/internal/util"
	"github.com/teranos/dimensio/units"
)

// SpaceInfo summarizes a stored space.
type SpaceInfo struct {
	Name        string
	Description string
	Dimensions  int
	Units       int
	UpdatedAt   time.Time
}

// SaveRegistry stores reg under name, replacing any earlier snapshot with
// that name. Units with a custom transform are not stored.
func (s *Store) SaveRegistry(ctx context.Context, name string, reg *units.Registry) (err error) {
	if name == "" {
		return errors.NewUnitError(errors.ErrConfiguration, "space name is required")
	}
	c := catalog.FromRegistry(reg)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin save")
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO spaces (name, description, dimensions, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			description = excluded.description,
			dimensions = excluded.dimensions,
			updated_at = CURRENT_TIMESTAMP`,
		name, c.Space.Description, c.Space.Dimensions)
	if err != nil {
		return errors.Wrapf(err, "failed to save space %s", name)
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM space_dimensions WHERE space = ?", name); err != nil {
		return errors.Wrapf(err, "failed to clear dimension names of %s", name)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM units WHERE space = ?", name); err != nil {
		return errors.Wrapf(err, "failed to clear units of %s", name)
	}

	for axis, dimName := range c.Space.DimensionNames {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO space_dimensions (space, axis, name) VALUES (?, ?, ?)",
			name, axis, dimName)
		if err != nil {
			return errors.Wrapf(err, "failed to save dimension %d of %s", axis, name)
		}
	}

	for pos, e := range c.Units {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO units (space, id, name, position, scale, offset_value) VALUES (?, ?, ?, ?, ?, ?)",
			name, e.ID, e.Name, pos, e.ScaleOrDefault(), e.OffsetOrDefault())
		if err != nil {
			return errors.Wrapf(err, "failed to save unit %s", e.ID)
		}
		for axis, exp := range e.Dims {
			if exp == 0 {
				continue
			}
			_, err = tx.ExecContext(ctx,
				"INSERT INTO unit_dimensions (space, unit, axis, exponent) VALUES (?, ?, ?, ?)",
				name, e.ID, axis, exp)
			if err != nil {
				return errors.Wrapf(err, "failed to save dimensions of unit %s", e.ID)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrapf(err, "failed to commit space %s", name)
	}

	s.logger.Infow("Saved registry",
		"space", name,
		"units", len(c.Units),
		"skipped", reg.Len()-len(c.Units))
	return nil
}

// LoadRegistry rebuilds the registry stored under name in a new space.
// It returns an ErrNotFound error when no such space exists.
func (s *Store) LoadRegistry(ctx context.Context, name string, opts ...units.RegistryOption) (*units.Registry, error) {
	c := &catalog.Catalog{
		Format: catalog.FormatVersion,
		Space:  catalog.Space{Name: name},
	}

	err := s.db.QueryRowContext(ctx,
		"SELECT description, dimensions FROM spaces WHERE name = ?", name,
	).Scan(&c.Space.Description, &c.Space.Dimensions)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError("space %q", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load space %s", name)
	}

	if c.Space.DimensionNames, err = s.loadDimensionNames(ctx, name, c.Space.Dimensions); err != nil {
		return nil, err
	}
	if c.Units, err = s.loadEntries(ctx, name, c.Space.Dimensions); err != nil {
		return nil, err
	}

	reg, err := catalog.Build(c, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "stored space %s is invalid", name)
	}

	s.logger.Debugw("Loaded registry", "space", name, "units", reg.Len())
	return reg, nil
}

func (s *Store) loadDimensionNames(ctx context.Context, space string, dims int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT axis, name FROM space_dimensions WHERE space = ? ORDER BY axis", space)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load dimension names of %s", space)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var axis int
		var name string
		if err := rows.Scan(&axis, &name); err != nil {
			return nil, errors.Wrap(err, "failed to scan dimension name")
		}
		if axis >= dims {
			return nil, errors.Newf("space %s names axis %d but has %d dimensions", space, axis, dims)
		}
		if names == nil {
			names = make([]string, dims)
		}
		names[axis] = name
	}
	return names, errors.Wrap(rows.Err(), "failed to load dimension names")
}

func (s *Store) loadEntries(ctx context.Context, space string, dims int) ([]catalog.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, scale, offset_value FROM units WHERE space = ? ORDER BY position", space)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load units of %s", space)
	}

	var entries []catalog.Entry
	index := make(map[string]int)
	for rows.Next() {
		var e catalog.Entry
		var scale, offset float64
		if err := rows.Scan(&e.ID, &e.Name, &scale, &offset); err != nil {
			rows.Close()
			return nil, errors.Wrap(err, "failed to scan unit")
		}
		e.Scale, e.Offset = util.Ptr(scale), util.Ptr(offset)
		e.Dims = make([]float64, dims)
		index[e.ID] = len(entries)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, errors.Wrap(err, "failed to load units")
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx,
		"SELECT unit, axis, exponent FROM unit_dimensions WHERE space = ?", space)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load unit dimensions of %s", space)
	}
	defer rows.Close()
	for rows.Next() {
		var unit string
		var axis int
		var exp float64
		if err := rows.Scan(&unit, &axis, &exp); err != nil {
			return nil, errors.Wrap(err, "failed to scan unit dimension")
		}
		i, ok := index[unit]
		if !ok || axis >= dims {
			return nil, errors.Newf("unit %s has an exponent on axis %d outside space %s", unit, axis, space)
		}
		entries[i].Dims[axis] = exp
	}
	return entries, errors.Wrap(rows.Err(), "failed to load unit dimensions")
}

// ListSpaces returns every stored space ordered by name.
func (s *Store) ListSpaces(ctx context.Context) ([]SpaceInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.name, s.description, s.dimensions, COUNT(u.id), s.updated_at
		FROM spaces s
		LEFT JOIN units u ON u.space = s.name
		GROUP BY s.name
		ORDER BY s.name`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list spaces")
	}
	defer rows.Close()

	var spaces []SpaceInfo
	for rows.Next() {
		var info SpaceInfo
		if err := rows.Scan(&info.Name, &info.Description, &info.Dimensions, &info.Units, &info.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan space")
		}
		spaces = append(spaces, info)
	}
	return spaces, errors.Wrap(rows.Err(), "failed to list spaces")
}

// DeleteSpace removes a stored space and its units.
func (s *Store) DeleteSpace(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM spaces WHERE name = ?", name)
	if err != nil {
		return errors.Wrapf(err, "failed to delete space %s", name)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if n == 0 {
		return errors.NewNotFoundError("space %q", name)
	}
	s.logger.Infow("Deleted space", "space", name)
	return nil
}
