package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/dimensio/errors"
	"github.com/teranos/dimensio/expr"
)

// isolate points HOME and the working directory at a fresh temp dir
func isolate(t *testing.T) string {
	t.Helper()
	Reset()
	t.Cleanup(Reset)
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	chdir(t, dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, expr.DefaultBudget, cfg.Parser.IterationBudget)
	assert.True(t, cfg.Catalog.IncludeDefaults)
	assert.Empty(t, cfg.Catalog.Paths)
	assert.False(t, cfg.Catalog.Watch)
	assert.Equal(t, "dimensio.db", cfg.Database.Path)
	assert.False(t, cfg.Log.JSON)
	assert.Equal(t, -1, cfg.Output.Precision)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)

	userDir := filepath.Join(dir, ".dimensio")
	require.NoError(t, os.MkdirAll(userDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "am.toml"), []byte(`
[database]
path = "user.db"

[output]
precision = 3
`), 0644))

	project := filepath.Join(dir, "project", "nested")
	require.NoError(t, os.MkdirAll(project, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "project", "am.toml"), []byte(`
[database]
path = "project.db"

[catalog]
paths = ["units.toml"]
`), 0644))
	chdir(t, project)
	t.Setenv("DIMENSIO_PARSER_ITERATION_BUDGET", "-1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "project.db", cfg.Database.Path, "project file wins over user file")
	assert.Equal(t, 3, cfg.Output.Precision, "user file wins over defaults")
	assert.Equal(t, []string{"units.toml"}, cfg.Catalog.Paths)
	assert.Equal(t, -1, cfg.Parser.IterationBudget, "environment wins over files")

	assert.Equal(t, SourceProject, ConfigSources["database.path"].Source)
	assert.Equal(t, SourceUser, ConfigSources["output.precision"].Source)

	cached, err := Load()
	require.NoError(t, err)
	assert.Same(t, cfg, cached)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[catalog]\nwatch = true\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.Catalog.Watch)
	assert.Equal(t, expr.DefaultBudget, cfg.Parser.IterationBudget)

	_, err = LoadFromFile(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Parser:  ParserConfig{IterationBudget: 1000},
			Catalog: CatalogConfig{IncludeDefaults: true},
			Output:  OutputConfig{Precision: -1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"unbounded budget", func(c *Config) { c.Parser.IterationBudget = -1 }, ""},
		{"zero budget", func(c *Config) { c.Parser.IterationBudget = 0 }, ""},
		{"fixed precision", func(c *Config) { c.Output.Precision = 4 }, ""},
		{"precision below -1", func(c *Config) { c.Output.Precision = -2 }, "output.precision"},
		{"empty catalog path", func(c *Config) { c.Catalog.Paths = []string{"a.toml", " "} }, "catalog.paths[1]"},
		{"nothing to load", func(c *Config) { c.Catalog.IncludeDefaults = false }, "catalog.include_defaults"},
		{"catalogs only", func(c *Config) {
			c.Catalog.IncludeDefaults = false
			c.Catalog.Paths = []string{"si.toml"}
		}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrConfiguration))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDatabasePath(t *testing.T) {
	assert.Equal(t, "dimensio.db", (&Config{}).GetDatabasePath())
	assert.Equal(t, "x.db", (&Config{Database: DatabaseConfig{Path: "x.db"}}).GetDatabasePath())
}

func TestIntrospect(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "am.toml"), []byte("[log]\njson = true\n"), 0644))
	t.Setenv("DIMENSIO_DATABASE_PATH", "env.db")

	byKey := make(map[string]SettingInfo)
	for _, s := range Introspect() {
		byKey[s.Key] = s
	}

	assert.Equal(t, SourceProject, byKey["log.json"].Source)
	assert.Equal(t, true, byKey["log.json"].Value)

	assert.Equal(t, SourceEnvironment, byKey["database.path"].Source)
	assert.Equal(t, "DIMENSIO_DATABASE_PATH", byKey["database.path"].SourcePath)
	assert.Equal(t, "env.db", byKey["database.path"].Value)

	assert.Equal(t, SourceDefault, byKey["output.precision"].Source)
}

// chdir changes the working directory for the test and restores it on
// cleanup, equivalent to testing.T.Chdir (Go 1.24+)
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
