package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <a> <b>",
		Short: "Check whether two unit expressions are compatible",
		Long: `Report whether two unit expressions have the same dimensions and can be
converted into each other. Both expressions must only use registered units.

Examples:
  dimensio check N "kg*m/s^2"   # compatible
  dimensio check kg m           # incompatible`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := loadRegistry(cmd)
			if err != nil {
				return err
			}

			ok, err := reg.Compatible(args[0], args[1])
			if err != nil {
				return err
			}
			a, err := reg.Dimensions(args[0])
			if err != nil {
				return err
			}
			b, err := reg.Dimensions(args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			space := reg.Space()
			if ok {
				fmt.Fprintf(out, "compatible: %s\n", space.Describe(a))
				return nil
			}
			fmt.Fprintf(out, "incompatible: %s (%s) vs %s (%s)\n",
				args[0], space.Describe(a), args[1], space.Describe(b))
			return nil
		},
	}
}
