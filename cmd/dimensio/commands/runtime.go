package commands

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/dimensio/am"
	"github.com/teranos/dimensio/catalog"
	"github.com/teranos/dimensio/errors"
	"github.com/teranos/dimensio/expr"
	"github.com/teranos/dimensio/logger"
	"github.com/teranos/dimensio/store"
	"github.com/teranos/dimensio/units"
)

func loadConfig() (*am.Config, error) {
	cfg, err := am.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// budget returns --budget when given, else parser.iteration_budget.
// Zero selects expr.DefaultBudget.
func budget(cmd *cobra.Command, cfg *am.Config) int {
	n := cfg.Parser.IterationBudget
	if cmd.Flags().Changed(flagBudget) {
		n, _ = cmd.Flags().GetInt(flagBudget)
	}
	if n == 0 {
		return expr.DefaultBudget
	}
	return n
}

// newLoader combines catalog settings with the --catalog and --budget flags
func newLoader(cmd *cobra.Command, cfg *am.Config) *catalog.Loader {
	paths := append([]string(nil), cfg.Catalog.Paths...)
	if extra, _ := cmd.Flags().GetString(flagCatalog); extra != "" {
		for _, p := range strings.Split(extra, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
	}
	return &catalog.Loader{
		IncludeDefaults: cfg.Catalog.IncludeDefaults,
		Paths:           paths,
		Budget:          budget(cmd, cfg),
		Logger:          logger.ComponentLogger("catalog"),
	}
}

func openStore(cfg *am.Config) (*store.Store, error) {
	return store.Open(cfg.GetDatabasePath(), logger.ComponentLogger("store"))
}

// loadRegistry builds the registry a command works against: the saved
// registry named by --space, or the configured catalogs.
func loadRegistry(cmd *cobra.Command) (*units.Registry, *am.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	space, _ := cmd.Flags().GetString(flagSpace)
	if space == "" {
		reg, err := newLoader(cmd, cfg).Build()
		if err != nil {
			return nil, nil, err
		}
		logger.Debugw("Registry ready",
			logger.FieldSpace, reg.Space().Name(),
			logger.FieldUnits, reg.Len())
		return reg, cfg, nil
	}

	s, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	defer s.Close()

	reg, err := s.LoadRegistry(cmd.Context(), space,
		units.WithBudget(budget(cmd, cfg)),
		units.WithLogger(logger.ComponentLogger("registry")))
	if err != nil {
		return nil, nil, err
	}
	reg.Freeze()
	logger.Infow("Loaded saved registry",
		logger.FieldSpace, space,
		logger.FieldUnits, reg.Len(),
		logger.FieldPath, cfg.GetDatabasePath())
	return reg, cfg, nil
}

// formatValue prints v with precision digits after the point, or the
// shortest exact representation when precision is negative.
func formatValue(v float64, precision int) string {
	if precision < 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
