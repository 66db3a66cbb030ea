package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// EventRenderer renders form session events, one line each.
type EventRenderer struct {
	theme *Theme
}

// NewEventRenderer creates a new event renderer with the given theme.
func NewEventRenderer(theme *Theme) *EventRenderer {
	return &EventRenderer{theme: theme}
}

func (r *EventRenderer) line(icon string, color lipgloss.Color, label, detail string) string {
	iconStyle := lipgloss.NewStyle().Foreground(color)
	labelStyle := lipgloss.NewStyle().Foreground(color).Bold(true).Width(20)
	if detail == "" {
		return fmt.Sprintf("  %s %s", iconStyle.Render(icon), labelStyle.Render(label))
	}
	return fmt.Sprintf("  %s %s %s", iconStyle.Render(icon), labelStyle.Render(label), r.theme.Code.Render(detail))
}

// RenderReady renders the ready event.
func (r *EventRenderer) RenderReady(session string) string {
	return r.line(IconPlay, r.theme.Success, "ready", session)
}

// RenderLoadFailed renders the loadFailed event.
func (r *EventRenderer) RenderLoadFailed(reason string) string {
	return r.line(IconX, r.theme.Error, "load failed", reason)
}

// RenderChanged renders a submissionChanged event.
func (r *EventRenderer) RenderChanged(submission string) string {
	return r.line(IconEdit, r.theme.Accent, "submission changed", submission)
}

// RenderRetrieved renders a submissionData event.
func (r *EventRenderer) RenderRetrieved(requestID, submission string) string {
	label := "submission"
	if requestID != "" {
		label = "submission " + shortID(requestID)
	}
	return r.line(IconSubmission, r.theme.Accent, label, submission)
}

// RenderValidity renders a validityChecked event.
func (r *EventRenderer) RenderValidity(valid bool) string {
	if valid {
		return r.line(IconValid, r.theme.Success, "valid", "")
	}
	return r.line(IconInvalid, r.theme.Warning, "invalid", "")
}

// RenderFocused renders a fieldFocused event.
func (r *EventRenderer) RenderFocused(name string) string {
	return r.line(IconFocus, r.theme.Muted, "focused", name)
}

// RenderStep renders a simulated host or user action.
func (r *EventRenderer) RenderStep(action, detail string) string {
	return fmt.Sprintf("\n%s %s %s",
		r.theme.BadgeMuted.Render(action),
		lipgloss.NewStyle().Foreground(r.theme.Muted).Render(IconArrow),
		r.theme.Normal.Render(detail),
	)
}

// RenderError renders a failed step.
func (r *EventRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)
	return fmt.Sprintf("  %s %s", iconStyle.Render(IconX), r.theme.ErrorStyle.Render(err.Error()))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
