package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexanderramin/ironplan/internal/autoprogram"
	"github.com/alexanderramin/ironplan/internal/cli/formatter"
	"github.com/alexanderramin/ironplan/internal/importer"
	"github.com/alexanderramin/ironplan/internal/unified"
	"github.com/spf13/cobra"
)

func newBlockCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Import, inspect and remove training blocks",
	}

	cmd.AddCommand(
		newBlockImportCmd(app),
		newBlockListCmd(app),
		newBlockShowCmd(app),
		newBlockRemoveCmd(app),
		newBlockGenerateCmd(app),
		newBlockWhiteboardCmd(app),
		newBlockDraftCmd(app),
	)

	return cmd
}

func newBlockImportCmd(app *App) *cobra.Command {
	var originFlag string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE|-",
		Short: "Import a block from a file or stdin",
		Long: "Import a block. Pass - to read pasted text from stdin. Files ending in .json\n" +
			"are read as raw JSON first; other files try the legacy line format first.\n" +
			"--origin overrides the detection.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if args[0] != "-" && originFlag == "" && !dryRun {
				res, err := app.Blocks.ImportFile(ctx, args[0])
				if err != nil {
					return describeParseError(err)
				}
				fmt.Fprint(out, formatter.FormatImportResult(res))
				return nil
			}

			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			origin, err := importer.ParseOrigin(originFlag)
			if err != nil {
				return err
			}

			if dryRun {
				imported, err := app.Blocks.Parse(ctx, text, origin)
				if err != nil {
					return describeParseError(err)
				}
				ub := unified.FromBlock(imported.Block)
				fmt.Fprint(out, formatter.FormatWhiteboard(&ub, app.unit()))
				fmt.Fprintln(out, formatter.Dim("parsed as "+string(imported.Strategy)+"; nothing saved"))
				return nil
			}

			res, err := app.Blocks.ImportText(ctx, text, origin)
			if err != nil {
				return describeParseError(err)
			}
			fmt.Fprint(out, formatter.FormatImportResult(res))
			return nil
		},
	}

	cmd.Flags().StringVar(&originFlag, "origin", "", "Input origin: chat, json or text")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and preview without saving")
	return cmd
}

func readInput(cmd *cobra.Command, arg string) (string, error) {
	var r io.Reader = cmd.InOrStdin()
	if arg != "-" {
		f, err := os.Open(arg)
		if err != nil {
			return "", fmt.Errorf("opening %s: %w", arg, err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), nil
}

// describeParseError keeps the typed error reachable while adding the
// failing stage and location to the message.
func describeParseError(err error) error {
	pe, ok := importer.AsParseError(err)
	if !ok {
		return err
	}
	var where []string
	if pe.Key != "" {
		where = append(where, "key "+pe.Key)
	}
	if pe.Path != "" {
		where = append(where, "at "+pe.Path)
	}
	if len(where) == 0 {
		return fmt.Errorf("import failed (%s): %w", pe.Kind, err)
	}
	return fmt.Errorf("import failed (%s, %s): %w", pe.Kind, strings.Join(where, ", "), err)
}

func newBlockListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			blocks, err := app.Blocks.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBlockList(blocks))
			return nil
		},
	}
}

func newBlockShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show BLOCK",
		Short: "Show a block's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveBlockID(ctx, app, args[0])
			if err != nil {
				return err
			}
			b, err := app.Blocks.Get(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBlockDetail(b))
			return nil
		},
	}
}

func newBlockRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm BLOCK",
		Aliases: []string{"remove"},
		Short:   "Delete a block and its sessions",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveBlockID(ctx, app, args[0])
			if err != nil {
				return err
			}
			b, err := app.Blocks.Get(ctx, id)
			if err != nil {
				return err
			}
			if err := confirm(app, yes, fmt.Sprintf("Delete %q and all of its logged sessions?", b.Name), "--yes"); err != nil {
				return err
			}
			if err := app.Blocks.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted block %s\n", b.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newBlockGenerateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "generate CONFIG.yaml",
		Short: "Generate a percentage-based block from a YAML config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := autoprogram.LoadConfig(args[0])
			if err != nil {
				return err
			}
			b, err := app.Blocks.Generate(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Generated %s %s\n",
				formatter.StyleGreen.Render("✓"), formatter.Bold(b.Name), formatter.TruncID(b.ID))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBlockDetail(b))
			return nil
		},
	}
}

func newBlockWhiteboardCmd(app *App) *cobra.Command {
	var pager bool

	cmd := &cobra.Command{
		Use:   "whiteboard BLOCK",
		Short: "Print every week of a block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveBlockID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ub, err := app.Blocks.Whiteboard(ctx, id)
			if err != nil {
				return err
			}
			content := formatter.FormatWhiteboard(ub, app.unit())
			if pager && app.interactive() {
				return runPager(ub.Title, content)
			}
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pager, "pager", false, "Scroll the whiteboard in a full-screen view")
	return cmd
}

func newBlockDraftCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "draft PROMPT...",
		Short: "Ask the local model to draft a block and import it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Drafting block...")
			}
			res, err := app.Blocks.Draft(cmd.Context(), strings.Join(args, " "))
			stop()
			if err != nil {
				return describeParseError(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(res))
			return nil
		},
	}
}
