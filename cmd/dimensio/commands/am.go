package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/dimensio/am"
	"github.com/teranos/dimensio/errors"
)

func newAmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "am",
		Short: "Manage dimensio configuration",
		Long: `am - Manage dimensio configuration ("I am")

Configuration sources (in order of precedence):
1. Environment variables (DIMENSIO_* prefix)
2. Project config (./am.toml, searching up directories)
3. User config (~/.dimensio/am.toml)
4. System config (/etc/dimensio/am.toml)
5. Default values

Examples:
  dimensio am show                        # Show current configuration
  dimensio am show --format json          # Show configuration in JSON format
  dimensio am show --sources              # Show where each setting comes from
  dimensio am get parser.iteration_budget # Get a specific value
  dimensio am set output.precision 3      # Persist a value to the user config
  dimensio am validate                    # Validate current configuration`,
	}
	cmd.AddCommand(newAmShowCmd(), newAmGetCmd(), newAmSetCmd(), newAmValidateCmd())
	return cmd
}

func newAmShowCmd() *cobra.Command {
	var (
		format  string
		sources bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective dimensio configuration from all sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if sources {
				data := pterm.TableData{{"Key", "Value", "Source", "From"}}
				for _, s := range am.Introspect() {
					data = append(data, []string{s.Key, fmt.Sprint(s.Value), string(s.Source), s.SourcePath})
				}
				table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
				if err != nil {
					return errors.Wrap(err, "failed to render settings table")
				}
				fmt.Fprintln(out, table)
				return nil
			}

			settings := am.GetViper().AllSettings()
			switch format {
			case "json":
				data, err := json.MarshalIndent(settings, "", "  ")
				if err != nil {
					return errors.Wrap(err, "failed to marshal config to JSON")
				}
				fmt.Fprintln(out, string(data))

			case "yaml":
				data, err := yaml.Marshal(settings)
				if err != nil {
					return errors.Wrap(err, "failed to marshal config to YAML")
				}
				fmt.Fprintf(out, "# dimensio configuration\n%s", string(data))

			case "toml":
				data, err := toml.Marshal(settings)
				if err != nil {
					return errors.Wrap(err, "failed to marshal config to TOML")
				}
				fmt.Fprintf(out, "# dimensio configuration\n%s", string(data))

			default:
				return errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "toml", "Output format: toml, json, yaml")
	cmd.Flags().BoolVar(&sources, "sources", false, "Show the source of every setting")
	return cmd
}

func newAmGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a specific configuration value",
		Long:  "Get a specific configuration value using dot notation (e.g., database.path, output.precision)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !am.GetViper().IsSet(key) {
				return errors.NewNotFoundError("configuration key %q not found", key)
			}
			fmt.Fprintln(cmd.OutOrStdout(), am.Get(key))
			return nil
		},
	}
}

func newAmSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Persist a configuration value to the user config",
		Long: `Write a setting to ~/.dimensio/am.toml. The value is converted to the type of
the setting's default; lists are comma-separated. The previous file is kept
as a numbered backup.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := am.CoerceValue(args[0], args[1])
			if err != nil {
				return err
			}
			path, err := am.SetUserValue(args[0], value)
			if err != nil {
				return err
			}
			if _, err := loadConfig(); err != nil {
				return errors.WithHint(err, "the value was written; fix it with another am set")
			}
			fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintf("%s = %v (%s)\n", args[0], value, path))
			return nil
		},
	}
}

func newAmValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate current configuration",
		Long:  "Validate that the current dimensio configuration is valid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
			return nil
		},
	}
}
