package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

// ErrUserAborted is returned when the user aborts an interactive prompt.
var ErrUserAborted = errors.New("user aborted")

// NormalizeAbort converts huh.ErrUserAborted, io.EOF (closed stdin) and
// context.Canceled to ErrUserAborted.
func NormalizeAbort(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, huh.ErrUserAborted) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, context.Canceled) {
		return ErrUserAborted
	}
	return err
}

// IsAbort returns true if the error represents a user abort.
func IsAbort(err error) bool {
	return errors.Is(err, ErrUserAborted)
}

// ConfirmFlow asks whether to run the listed rebase steps.
func ConfirmFlow(ctx context.Context, steps []string) (bool, error) {
	confirmed := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Rebase %d branch(es)?", len(steps))).
				Description(describeSteps(steps)).
				Affirmative("Rebase").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.RunWithContext(ctx); err != nil {
		return false, NormalizeAbort(err)
	}

	return confirmed, nil
}

func describeSteps(steps []string) string {
	if len(steps) == 0 {
		return "Nothing to rebase"
	}
	lines := make([]string, len(steps))
	for i, step := range steps {
		lines[i] = fmt.Sprintf("%d. %s", i+1, step)
	}
	return strings.Join(lines, "\n")
}
