package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/dimensio/am"
	"github.com/teranos/dimensio/catalog"
	"github.com/teranos/dimensio/errors"
	"github.com/teranos/dimensio/logger"
	"github.com/teranos/dimensio/units"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Export, validate and watch unit catalogs",
		Long: `catalog - Work with TOML/YAML unit catalogs

A catalog declares a dimension space and a list of units. Catalogs listed in
catalog.paths (or --catalog) are applied after the built-in SI catalog.

Examples:
  dimensio catalog export --format yaml -o units.yaml
  dimensio catalog validate plant.toml
  dimensio --catalog plant.toml catalog watch`,
	}
	cmd.AddCommand(newCatalogExportCmd(), newCatalogValidateCmd(), newCatalogWatchCmd())
	return cmd
}

func newCatalogExportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current registry as a catalog",
		Long:  "Export every unit with an affine transform. The output loads back with catalog validate or catalog.paths.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := catalog.ParseEncoding(format)
			if err != nil {
				return err
			}
			if output != "" && !cmd.Flags().Changed("format") {
				if byExt, err := catalog.ParseEncoding(strings.TrimPrefix(filepath.Ext(output), ".")); err == nil {
					enc = byExt
				}
			}

			reg, _, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			c := catalog.FromRegistry(reg)

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, am.DefaultFilePermissions)
				if err != nil {
					return errors.Wrapf(err, "failed to create %s", output)
				}
				defer f.Close()
				w = f
			}

			if err := catalog.Export(w, c, enc); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintf("Exported %d units to %s\n", len(c.Units), output))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "toml", "Output format: toml, yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func newCatalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a catalog file loads",
		Long: `Load a catalog file and register its units. A catalog whose space matches
the configured registry is applied on top of it, so clashes with existing
units are reported. Any other catalog is built on its own.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			c, err := catalog.LoadFile(path)
			if err != nil {
				return err
			}

			reg, _, err := loadRegistry(cmd)
			if err != nil {
				return err
			}

			if c.Space.Dimensions == reg.Space().Count() {
				err = catalog.Apply(reg.Clone(), c)
			} else {
				_, err = catalog.Build(c)
			}
			if err != nil {
				return errors.WithLocation(err, path)
			}

			fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintf("%s: %d units valid\n", path, len(c.Units)))
			return nil
		},
	}
}

func newCatalogWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the registry whenever a catalog file changes",
		Long: `Watch every configured catalog file and rebuild the registry on change.
Each reload is reported; a failed reload keeps the previous registry.
Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			loader := newLoader(cmd, cfg)
			if len(loader.Paths) == 0 {
				return errors.WithHint(
					errors.NewUnitError(errors.ErrConfiguration, "no catalog files to watch"),
					"list files in catalog.paths or pass --catalog")
			}

			reg, err := loader.Build()
			if err != nil {
				return err
			}
			holder := catalog.NewHolder(reg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			w, err := startWatcher(ctx, holder, loader, func(reg *units.Registry, err error) {
				if err != nil {
					ReportError(out, err)
					return
				}
				fmt.Fprint(out, pterm.Success.Sprintf("Reloaded %d units\n", reg.Len()))
			})
			if err != nil {
				return err
			}
			defer w.Stop()

			fmt.Fprintf(out, "Watching %d catalog files (%d units loaded)\n", len(loader.Paths), reg.Len())
			<-ctx.Done()
			return nil
		},
	}
}

// startWatcher publishes registries rebuilt by loader to holder
func startWatcher(ctx context.Context, holder *catalog.Holder, loader *catalog.Loader, onReload catalog.ReloadCallback) (*catalog.Watcher, error) {
	log := logger.ChildLogger(logger.ComponentLogger("watcher"), logger.FieldCount, len(loader.Paths))
	w, err := catalog.NewWatcher(holder, loader.Build, loader.Paths, catalog.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if onReload != nil {
		w.OnReload(onReload)
	}
	w.Start(ctx)
	return w, nil
}
