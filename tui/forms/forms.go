// Package forms provides huh-based form components for the TUI.
package forms

import (
	"path/filepath"

	"github.com/charmbracelet/huh"
)

// NewCancelRenderForm asks whether to stop the render of output. The result
// pointer is bound to the confirm field value.
func NewCancelRenderForm(output string, cancel *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Cancel render?").
				Description("The partial file " + filepath.Base(output) + " will be removed.").
				Affirmative("Yes, cancel").
				Negative("No, keep rendering").
				Value(cancel),
		),
	).WithTheme(Theme()).WithShowHelp(false)
}
