package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/ironplan/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// errNotConfirmed is returned when a guarded action was declined or could
// not be asked.
var errNotConfirmed = errors.New("not confirmed")

func ironplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func confirmForm(title string, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(value),
		),
	).WithTheme(ironplanHuhTheme()).WithShowHelp(false)
}

// confirm gates a guarded action. yes skips the question; otherwise the
// app's Confirm hook or an interactive huh form decides. Without a
// terminal the action is refused and the hint names the flag to pass.
func confirm(app *App, yes bool, title, hint string) error {
	if yes {
		return nil
	}

	ask := app.Confirm
	if ask == nil && app.interactive() {
		ask = func(title string) (bool, error) {
			var ok bool
			if err := confirmForm(title, &ok).Run(); err != nil {
				return false, err
			}
			return ok, nil
		}
	}
	if ask == nil {
		return fmt.Errorf("%s: %w (pass %s)", title, errNotConfirmed, hint)
	}

	ok, err := ask(title)
	if err != nil {
		return fmt.Errorf("prompt: %w", err)
	}
	if !ok {
		return errNotConfirmed
	}
	return nil
}
