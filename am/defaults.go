package am

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/teranos/dimensio/expr"
)

// Default values
const (
	DefaultDatabasePath = "dimensio.db"
	DefaultPrecision    = -1
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("parser.iteration_budget", expr.DefaultBudget)

	v.SetDefault("catalog.include_defaults", true)
	v.SetDefault("catalog.paths", []string{})
	v.SetDefault("catalog.watch", false)

	v.SetDefault("database.path", DefaultDatabasePath)

	v.SetDefault("log.json", false)

	v.SetDefault("output.precision", DefaultPrecision)
}

// BindEnvVars explicitly binds settings commonly overridden per invocation
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("database.path", EnvPrefix+"_DATABASE_PATH")
	v.BindEnv("parser.iteration_budget", EnvPrefix+"_PARSER_ITERATION_BUDGET")
	v.BindEnv("log.json", EnvPrefix+"_LOG_JSON")
}

// GetDatabasePath returns the configured database path
func (c *Config) GetDatabasePath() string {
	if c.Database.Path == "" {
		return DefaultDatabasePath
	}
	return c.Database.Path
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Parser: {Budget: %d}, Catalog: {Defaults: %t, Paths: %d, Watch: %t}, Database: %s}",
		c.Parser.IterationBudget, c.Catalog.IncludeDefaults, len(c.Catalog.Paths), c.Catalog.Watch, c.Database.Path)
}
