// Package styles provides lipgloss styles and renderers for CLI output.
package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconCheck   = "\uf00c" // check
	IconX       = "\uf00d" // x
	IconWarning = "\uf071" // warning
	IconInfo    = "\uf05a" // info
	IconArrow   = "\uf061" // arrow right
	IconConfig  = "\ue615" // config
	IconFolder  = "\uf07b" // folder
	IconCursor  = "\uf054" // chevron-right

	// Form events
	IconSubmission = "\uf0c7" // floppy
	IconEdit       = "\uf040" // pencil
	IconValid      = "\uf058" // check-circle
	IconInvalid    = "\uf057" // times-circle
	IconFocus      = "\uf245" // mouse-pointer
	IconPlay       = "\uf04b" // play
)
