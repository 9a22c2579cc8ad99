package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ironplan/internal/cli/formatter"
	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/spf13/cobra"
)

func newExerciseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Manage the exercise library used to link imported exercises",
	}
	cmd.AddCommand(newExerciseListCmd(app), newExerciseAddCmd(app))
	return cmd
}

func newExerciseListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List library exercises",
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := app.Exercises.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatExerciseList(defs))
			return nil
		},
	}
}

func newExerciseAddCmd(app *App) *cobra.Command {
	var typeName, categoryName string
	var aliases []string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an exercise to the library",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, ok := domain.ParseExerciseType(typeName)
			if !ok {
				return fmt.Errorf("unknown exercise type %q", typeName)
			}
			def := &domain.ExerciseDefinition{
				Name:    strings.Join(args, " "),
				Type:    typ,
				Aliases: aliases,
			}
			if categoryName != "" {
				c, ok := domain.ParseExerciseCategory(categoryName)
				if !ok {
					return fmt.Errorf("unknown category %q", categoryName)
				}
				def.Category = c
			}
			if err := app.Exercises.Add(cmd.Context(), def); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", def.Name, formatter.TruncID(def.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "strength", "strength, conditioning, mixed or other")
	cmd.Flags().StringVar(&categoryName, "category", "", "Movement category, e.g. squat or hinge")
	cmd.Flags().StringSliceVar(&aliases, "alias", nil, "Alternate names (repeatable)")
	return cmd
}
