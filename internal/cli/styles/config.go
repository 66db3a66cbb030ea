package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ConfigRenderer renders config command output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderPath renders the config file location and whether it exists.
func (r *ConfigRenderer) RenderPath(path string, exists bool) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	status := r.theme.Subtle.Render("not created yet, defaults apply")
	if exists {
		status = r.theme.SuccessStyle.Render("present")
	}

	return fmt.Sprintf(
		"\n  %s Config %s\n     %s\n",
		iconStyle.Render(IconConfig),
		r.theme.Highlight.Render(path),
		status,
	)
}

// RenderCreated renders the result of config init.
func (r *ConfigRenderer) RenderCreated(path string, created bool) string {
	if !created {
		iconStyle := lipgloss.NewStyle().Foreground(r.theme.Warning)
		return fmt.Sprintf(
			"\n  %s Config %s already exists, left unchanged\n",
			iconStyle.Render(IconInfo),
			r.theme.Subtle.Render(path),
		)
	}

	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf(
		"\n  %s Wrote default config to %s\n  %s Schema written next to it as config.schema.json\n",
		iconStyle.Render(IconCheck),
		r.theme.Highlight.Render(path),
		iconStyle.Render(IconCheck),
	)
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)

	return fmt.Sprintf(
		"\n  %s Config error: %v\n",
		iconStyle.Render(IconX),
		err,
	)
}
