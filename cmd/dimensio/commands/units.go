package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/dimensio/errors"
)

func newUnitsCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "units",
		Short: "List registered units",
		Long: `List every unit in the registry with its dimensions and conversion to the
base unit of its space.

Examples:
  dimensio units
  dimensio units --filter Pa
  dimensio --space plant units`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := loadRegistry(cmd)
			if err != nil {
				return err
			}

			space := reg.Space()
			data := pterm.TableData{{"ID", "Name", "Dimensions", "Scale", "Offset"}}
			needle := strings.ToLower(filter)
			for _, u := range reg.Units() {
				if needle != "" &&
					!strings.Contains(strings.ToLower(u.Identifier()), needle) &&
					!strings.Contains(strings.ToLower(u.Name()), needle) {
					continue
				}
				scale, offset := "custom", "custom"
				if a, ok := u.Affine(); ok {
					scale = formatValue(a.Scale, -1)
					offset = formatValue(a.Offset, -1)
				}
				data = append(data, []string{u.Identifier(), u.Name(), space.Describe(u.Dimensions()), scale, offset})
			}

			out := cmd.OutOrStdout()
			if len(data) == 1 {
				fmt.Fprintf(out, "No units match %q\n", filter)
				return nil
			}
			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return errors.Wrap(err, "failed to render unit table")
			}
			fmt.Fprintln(out, table)
			fmt.Fprintf(out, "%d of %d units in %s\n", len(data)-1, reg.Len(), space)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Only show units whose ID or name contains this text")
	return cmd
}
