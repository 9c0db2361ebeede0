package catalog

import (
	"go.uber.org/zap"

	"github.com/teranos/dimensio/errors"
	"github.com/teranos/dimensio/expr"
	"github.com/teranos/dimensio/units"
)

// Loader assembles a registry from the built-in definitions and a list of
// catalog files.
type Loader struct {
	// IncludeDefaults starts from units.BuildDefaultRegistry. Without it the
	// first catalog file defines the space.
	IncludeDefaults bool

	// Paths are applied in order after the defaults.
	Paths []string

	// Budget is the parser iteration budget of the built registry. Zero
	// selects expr.DefaultBudget.
	Budget int

	Logger *zap.SugaredLogger
}

// Build creates a new, frozen registry. Every call starts from scratch, so a
// failed build never affects a registry built earlier.
func (l *Loader) Build() (*units.Registry, error) {
	log := logOrNop(l.Logger)
	budget := l.Budget
	if budget == 0 {
		budget = expr.DefaultBudget
	}
	opts := []units.RegistryOption{units.WithBudget(budget), units.WithLogger(l.Logger)}

	var reg *units.Registry
	paths := l.Paths
	if l.IncludeDefaults {
		var err error
		if reg, err = units.BuildDefaultRegistry(opts...); err != nil {
			return nil, err
		}
	} else {
		if len(paths) == 0 {
			return nil, errors.WithHint(
				errors.NewUnitError(errors.ErrConfiguration, "no catalogs to load"),
				"enable catalog.include_defaults or list files in catalog.paths")
		}
		c, err := LoadFile(paths[0])
		if err != nil {
			return nil, err
		}
		if reg, err = Build(c, opts...); err != nil {
			return nil, errors.WithLocation(err, paths[0])
		}
		log.Infow("Loaded catalog", "path", paths[0], "units", len(c.Units), "space", c.Space.Name)
		paths = paths[1:]
	}

	for _, path := range paths {
		c, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err := Apply(reg, c); err != nil {
			return nil, errors.WithLocation(err, path)
		}
		log.Infow("Loaded catalog", "path", path, "units", len(c.Units), "space", c.Space.Name)
	}

	reg.Freeze()
	return reg, nil
}
