package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/dimensio/errors"
	"github.com/teranos/dimensio/expr"
	"github.com/teranos/dimensio/internal/util"
	"github.com/teranos/dimensio/units"
)

// parseResult is the structured output of parse --format json|yaml
type parseResult struct {
	Expression string         `json:"expression" yaml:"expression"`
	Canonical  string         `json:"canonical" yaml:"canonical"`
	Exponents  expr.Exponents `json:"exponents" yaml:"exponents"`
	Dimensions string         `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	Scale      *float64       `json:"scale,omitempty" yaml:"scale,omitempty"`
	Offset     *float64       `json:"offset,omitempty" yaml:"offset,omitempty"`
}

func newParseCmd() *cobra.Command {
	var (
		format  string
		resolve bool
	)

	cmd := &cobra.Command{
		Use:   "parse <expression>",
		Short: "Show the exponents of a unit expression",
		Long: `Parse a compound unit expression into its net exponent per atomic unit.

Parsing needs no registry. With --resolve the expression is also resolved
against the registry to show its dimensions and scale.

Examples:
  dimensio parse "kg*m/s^2"
  dimensio parse "(N*m)/s" --format yaml
  dimensio parse "kN/mm^2" --resolve`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			exps, err := expr.Parser{Budget: budget(cmd, cfg)}.Parse(args[0])
			if err != nil {
				return err
			}
			result := parseResult{Expression: args[0], Canonical: exps.String(), Exponents: exps}
			if result.Canonical == "" {
				result.Canonical = "1"
			}

			if resolve {
				reg, _, err := loadRegistry(cmd)
				if err != nil {
					return err
				}
				c, err := reg.Resolve(args[0])
				if err != nil {
					return err
				}
				result.Dimensions = reg.Space().Describe(c.Dimensions)
				if a, ok := c.Transform.(units.Affine); ok {
					result.Scale = util.Ptr(a.Scale)
					result.Offset = util.Ptr(a.Offset)
				}
			}

			out := cmd.OutOrStdout()
			switch format {
			case "text":
				fmt.Fprintln(out, result.Canonical)
				if resolve {
					fmt.Fprintf(out, "dimensions: %s\n", result.Dimensions)
				}
				if result.Scale != nil {
					fmt.Fprintf(out, "scale: %s\n", formatValue(*result.Scale, -1))
				}
				if result.Offset != nil && *result.Offset != 0 {
					fmt.Fprintf(out, "offset: %s\n", formatValue(*result.Offset, -1))
				}
			case "json":
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return errors.Wrap(err, "failed to marshal result to JSON")
				}
				fmt.Fprintln(out, string(data))
			case "yaml":
				data, err := yaml.Marshal(result)
				if err != nil {
					return errors.Wrap(err, "failed to marshal result to YAML")
				}
				fmt.Fprint(out, string(data))
			default:
				return errors.Newf("unsupported format: %s (supported: text, json, yaml)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json, yaml")
	cmd.Flags().BoolVar(&resolve, "resolve", false, "Resolve against the registry and show dimensions and scale")
	return cmd
}
