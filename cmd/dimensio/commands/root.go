package commands

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/dimensio/am"
	"github.com/teranos/dimensio/errors"
	"github.com/teranos/dimensio/expr"
	"github.com/teranos/dimensio/logger"
)

// Persistent flags understood by every command
const (
	flagVerbose = "verbose"
	flagSpace   = "space"
	flagCatalog = "catalog"
	flagBudget  = "budget"
)

// NewRootCmd assembles the dimensio command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dimensio",
		Short: "dimensio - dimensional unit algebra",
		Long: `dimensio - Parse, check and convert physical units.

Units live in a registry built from the built-in SI catalog, extra TOML/YAML
catalog files, or a registry saved in the database.

Available commands:
  convert  - Convert values between units
  parse    - Show the exponents of a unit expression
  check    - Check whether two unit expressions are compatible
  units    - List registered units
  stream   - Convert "<value> <from> <to>" lines read from stdin
  catalog  - Export, validate and watch unit catalogs
  db       - Save and load registries in the database
  am       - Manage dimensio configuration ("I am")

Examples:
  dimensio convert 100 m cm                # 10000 cm
  dimensio convert 1,2,3 bar psi           # Convert a series
  dimensio convert -- -40 degC degF        # Negative values follow --
  dimensio parse "kg*m/s^2" --format json  # {"kg": 1, "m": 1, "s": -2}
  dimensio check N "kg*m/s^2"              # compatible
  dimensio --catalog mine.toml units       # Include a custom catalog`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbosity, _ := cmd.Flags().GetCount(flagVerbose)
			if err := logger.InitializeWithVerbosity(am.GetBool("log.json"), verbosity); err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.CountP(flagVerbose, "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	flags.String(flagSpace, "", "Use a registry saved in the database instead of the configured catalogs")
	flags.String(flagCatalog, "", "Extra catalog files, comma-separated, applied after catalog.paths")
	flags.Int(flagBudget, expr.DefaultBudget, "Parser iteration budget (negative = unbounded)")

	rootCmd.AddCommand(
		newConvertCmd(),
		newParseCmd(),
		newCheckCmd(),
		newUnitsCmd(),
		newStreamCmd(),
		newCatalogCmd(),
		newDbCmd(),
		newAmCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// ReportError prints err with its kind and any hints
func ReportError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprint(w, pterm.Error.Sprintln(err.Error()))
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprint(w, pterm.Info.Sprintln(hint))
	}
}
