package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveBlockID accepts a full id, a unique id prefix, or an exact
// (case-insensitive) block name.
func resolveBlockID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("block ID is required")
	}

	blocks, err := app.Blocks.List(ctx)
	if err != nil {
		return "", err
	}

	for _, b := range blocks {
		if b.ID == input {
			return b.ID, nil
		}
	}

	var matches []string
	for _, b := range blocks {
		if strings.HasPrefix(b.ID, input) || strings.EqualFold(b.Name, input) {
			matches = append(matches, b.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("block not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("block %q is ambiguous (%d matches)", input, len(matches))
	}
}
