package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/dimensio/errors"
)

func newDbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Save and load registries in the database",
		Long: `db - Manage registries saved in the dimensio database

A saved registry is used by any command with --space <name>.

Examples:
  dimensio --catalog plant.toml db save plant   # Snapshot the current registry
  dimensio db ls                                # List saved registries
  dimensio --space plant convert 3 bar_g psi_a  # Convert with a saved registry
  dimensio db rm plant                          # Delete a saved registry`,
	}
	cmd.AddCommand(newDbSaveCmd(), newDbLsCmd(), newDbRmCmd())
	return cmd
}

func newDbSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name>",
		Short: "Save the current registry under a name",
		Long:  "Save the registry built from the configured catalogs (or --space) under name, replacing any earlier registry with that name. Units with a custom transform are skipped.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, cfg, err := loadRegistry(cmd)
			if err != nil {
				return err
			}

			s, err := openStore(cfg)
			if err != nil {
				return errors.Wrap(err, "failed to open database")
			}
			defer s.Close()

			if err := s.SaveRegistry(cmd.Context(), args[0], reg); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintf("Saved %d units as %q in %s\n", reg.Len(), args[0], cfg.GetDatabasePath()))
			return nil
		},
	}
}

func newDbLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List saved registries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			s, err := openStore(cfg)
			if err != nil {
				return errors.Wrap(err, "failed to open database")
			}
			defer s.Close()

			spaces, err := s.ListSpaces(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(spaces) == 0 {
				fmt.Fprintf(out, "No saved registries in %s\n", cfg.GetDatabasePath())
				return nil
			}

			data := pterm.TableData{{"Name", "Dimensions", "Units", "Updated", "Description"}}
			for _, sp := range spaces {
				data = append(data, []string{
					sp.Name,
					fmt.Sprint(sp.Dimensions),
					fmt.Sprint(sp.Units),
					sp.UpdatedAt.Format("2006-01-02 15:04"),
					sp.Description,
				})
			}
			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return errors.Wrap(err, "failed to render registry table")
			}
			fmt.Fprintln(out, table)
			return nil
		},
	}
}

func newDbRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a saved registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			s, err := openStore(cfg)
			if err != nil {
				return errors.Wrap(err, "failed to open database")
			}
			defer s.Close()

			if err := s.DeleteSpace(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintf("Deleted %q\n", args[0]))
			return nil
		},
	}
}
