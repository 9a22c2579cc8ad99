package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/ironplan/internal/cli/formatter"
	"github.com/alexanderramin/ironplan/internal/exchange"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE|-",
		Short: "Write every block, session and library exercise to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" {
				_, err := app.Exchange.Export(cmd.Context(), cmd.OutOrStdout())
				return err
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating %s: %w", args[0], err)
			}
			res, err := app.Exchange.Export(cmd.Context(), f)
			if cerr := f.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("closing %s: %w", args[0], cerr)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatExchangeResult("Exported", res))
			return nil
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	var strategyName string
	var yes bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Load a JSON export, replacing or merging with stored data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := exchange.ParseStrategy(strategyName)
			if err != nil {
				return err
			}
			if strategy == exchange.StrategyReplace {
				if err := confirm(app, yes, "Replace every stored block and session with the file contents?", "--yes"); err != nil {
					return err
				}
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			res, err := app.Exchange.Import(cmd.Context(), f, strategy)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatExchangeResult("Imported", res))
			return nil
		},
	}

	cmd.Flags().StringVar(&strategyName, "strategy", string(exchange.StrategyMerge), "replace or merge")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation for replace")
	return cmd
}
