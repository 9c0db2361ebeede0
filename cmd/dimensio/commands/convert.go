package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/dimensio/errors"
	"github.com/teranos/dimensio/units"
)

func newConvertCmd() *cobra.Command {
	var precision int

	cmd := &cobra.Command{
		Use:   "convert <value>[,<value>...] <from> <to>",
		Short: "Convert values between units",
		Long: `Convert one value, or a comma-separated series, from one unit expression
to another. Both expressions must describe the same dimensions.

Examples:
  dimensio convert 100 m cm
  dimensio convert 20 "kg*m/s^2" N
  dimensio convert 0,1,2 bar_g bar_a
  dimensio convert -- -40 degC degF`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseQuantity(args[0])
			if err != nil {
				return err
			}

			reg, cfg, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("precision") {
				precision = cfg.Output.Precision
			}

			out, err := reg.Convert(q, args[1], args[2])
			if err != nil {
				return err
			}

			values := out.Values()
			formatted := make([]string, len(values))
			for i, v := range values {
				formatted[i] = formatValue(v, precision)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", strings.Join(formatted, ", "), args[2])
			return nil
		},
	}

	cmd.Flags().IntVarP(&precision, "precision", "p", -1, "Digits after the decimal point (-1 = shortest exact representation)")
	return cmd
}

// parseQuantity reads "1.5" as a Scalar and "1,2,3" as a Series
func parseQuantity(text string) (units.Quantity, error) {
	parts := strings.Split(text, ",")
	values := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.WithHint(
				errors.Newf("invalid value %q", p),
				"values are decimal numbers, separate a series with commas")
		}
		values[i] = v
	}
	if len(values) == 1 {
		return units.Scalar(values[0]), nil
	}
	return units.Series(values), nil
}
