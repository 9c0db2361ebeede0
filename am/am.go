package am

// Config represents the dimensio configuration
type Config struct {
	Parser   ParserConfig   `mapstructure:"parser"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Output   OutputConfig   `mapstructure:"output"`
}

// ParserConfig configures unit expression parsing
type ParserConfig struct {
	IterationBudget int `mapstructure:"iteration_budget"` // Passes allowed per expression (0 = default of 1000, negative = unbounded)
}

// CatalogConfig configures which unit catalogs are loaded
type CatalogConfig struct {
	IncludeDefaults bool     `mapstructure:"include_defaults"` // Start from the built-in SI catalog (default: true)
	Paths           []string `mapstructure:"paths"`            // Extra TOML/YAML catalogs applied in order
	Watch           bool     `mapstructure:"watch"`            // Rebuild the registry when a catalog file changes
}

// DatabaseConfig configures the SQLite store
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig configures structured logging
type LogConfig struct {
	JSON bool `mapstructure:"json"` // Emit JSON logs instead of console output
}

// OutputConfig configures how the CLI prints numbers
type OutputConfig struct {
	Precision int `mapstructure:"precision"` // Digits after the decimal point (-1 = shortest exact representation)
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)
