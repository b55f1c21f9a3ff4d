// Package prompt implements the interactive entity picker.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/example/codegen/internal/ports/secondary"
)

// chooser runs a multi-select and returns the picked options.
type chooser func(ctx context.Context, title string, options []string) ([]string, error)

// EntityPrompter implements secondary.EntityPrompter with a huh form.
type EntityPrompter struct {
	choose chooser
}

// NewEntityPrompter creates a terminal entity picker.
func NewEntityPrompter() *EntityPrompter {
	return &EntityPrompter{choose: multiSelect}
}

// SelectEntity shows the entity names and returns the picked ones joined
// with commas, ready for the input parser. Aborting the form returns "".
func (p *EntityPrompter) SelectEntity(ctx context.Context, folder string, entities []string) (string, error) {
	if len(entities) == 0 {
		return "", nil
	}

	title := fmt.Sprintf("Generate which entities into %s?", folder)
	picked, err := p.choose(ctx, title, entities)
	if errors.Is(err, huh.ErrUserAborted) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("entity prompt failed: %w", err)
	}
	return strings.Join(picked, ","), nil
}

func multiSelect(ctx context.Context, title string, options []string) ([]string, error) {
	var picked []string

	opts := make([]huh.Option[string], 0, len(options))
	for _, o := range options {
		opts = append(opts, huh.NewOption(o, o))
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title(title).
			Options(opts...).
			Value(&picked),
	))
	if err := form.RunWithContext(ctx); err != nil {
		return nil, err
	}
	return picked, nil
}

// Ensure EntityPrompter implements the interface
var _ secondary.EntityPrompter = (*EntityPrompter)(nil)
