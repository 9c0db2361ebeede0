package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/teranos/dimensio/catalog"
	"github.com/teranos/dimensio/errors"
	"github.com/teranos/dimensio/logger"
)

func newStreamCmd() *cobra.Command {
	var (
		watch     bool
		precision int
	)

	cmd := &cobra.Command{
		Use:   "stream",
		Short: `Convert "<value> <from> <to>" lines read from stdin`,
		Long: `Read one conversion per line from stdin and write one converted value per
line to stdout. Fields are split like shell words, so an expression with
spaces can be quoted: 20 "kg * m / s^2" N. Blank lines and lines starting with # are skipped. A line that
fails is reported on stderr and the stream continues; the command exits 1 if
any line failed.

With --watch (or catalog.watch = true) catalog files are watched while the
stream runs and each line uses the most recently loaded registry.

Examples:
  printf '1 bar psi\n20 degC degF\n' | dimensio stream
  tail -f readings.txt | dimensio --catalog plant.toml stream --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("precision") {
				precision = cfg.Output.Precision
			}
			if !cmd.Flags().Changed("watch") {
				watch = cfg.Catalog.Watch
			}

			reg, _, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			holder := catalog.NewHolder(reg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if space, _ := cmd.Flags().GetString(flagSpace); watch && space == "" {
				loader := newLoader(cmd, cfg)
				if len(loader.Paths) > 0 {
					w, err := startWatcher(ctx, holder, loader, nil)
					if err != nil {
						return err
					}
					defer w.Stop()
				}
			}

			failed, err := convertLines(ctx, cmd, holder, precision)
			if err != nil {
				return err
			}
			if failed > 0 {
				return errors.Newf("%d lines failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload catalogs while streaming")
	cmd.Flags().IntVarP(&precision, "precision", "p", -1, "Digits after the decimal point (-1 = shortest exact representation)")
	return cmd
}

// convertLines converts stdin line by line and returns the number of lines that failed
func convertLines(ctx context.Context, cmd *cobra.Command, holder *catalog.Holder, precision int) (int, error) {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	failed := 0
	for n := 1; scanner.Scan(); n++ {
		if ctx.Err() != nil {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		result, err := convertLine(holder, line, precision)
		if err != nil {
			failed++
			logger.Debugw("Stream line failed",
				logger.FieldOperation, "stream",
				"line", n,
				logger.FieldError, err)
			ReportError(errOut, errors.WithLocation(err, fmt.Sprintf("line %d", n)))
			continue
		}
		fmt.Fprintln(out, result)
	}
	if err := scanner.Err(); err != nil {
		return failed, errors.Wrap(err, "failed to read stdin")
	}
	return failed, nil
}

func convertLine(holder *catalog.Holder, line string, precision int) (string, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return "", errors.Wrap(err, "failed to split line")
	}
	if len(fields) != 3 {
		return "", errors.WithHint(
			errors.Newf("expected 3 fields, got %d", len(fields)),
			`write each line as "<value> <from> <to>"`)
	}
	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return "", errors.Newf("invalid value %q", fields[0])
	}

	converted, err := holder.Load().ConvertFloat(value, fields[1], fields[2])
	if err != nil {
		return "", err
	}
	return formatValue(converted, precision), nil
}
