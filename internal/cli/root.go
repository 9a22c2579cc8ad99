package cli

import (
	"context"

	"github.com/alexanderramin/ironplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Blocks    service.BlockService
	Runs      service.RunService
	Exercises service.ExerciseService
	Exchange  service.ExchangeService

	// Serve runs the HTTP API until ctx is cancelled. Nil disables the
	// serve command.
	Serve func(ctx context.Context, addr string) error
	// Addr is the default listen address for serve.
	Addr string
	// WeightUnit labels loads in output ("lb" or "kg").
	WeightUnit string

	// IsInteractive reports whether prompts can be shown. Nil means never.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil uses a huh form when interactive.
	Confirm func(title string) (bool, error)
}

func (a *App) unit() string {
	if a.WeightUnit == "" {
		return "lb"
	}
	return a.WeightUnit
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "ironplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "ironplan",
		Short:         "Training block importer and workout tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newBlockCmd(app),
		newRunCmd(app),
		newExerciseCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newServeCmd(app),
	)

	return root
}
