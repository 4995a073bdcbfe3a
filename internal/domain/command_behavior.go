package domain

import (
	"strings"
	"unicode"
)

// WantsEnabled reports whether the user asked for the command to be active.
// A command in error status is still wanted; it just lacks a binding.
func (c Command) WantsEnabled() bool {
	return c.Status == StatusEnabled || c.Status == StatusError
}

// IsRunnable reports whether the command may be dispatched.
// Commands in error status are blocked until a shortcut is bound.
func (c Command) IsRunnable() bool {
	return c.Status == StatusEnabled
}

// Reconcile aligns the record with the shortcut reported by the host and
// returns the updated record and whether anything changed.
// Disabled commands are never promoted to error.
func (c Command) Reconcile(liveShortcut string) (Command, bool) {
	updated := c
	if updated.Type == "" {
		updated.Type = RecordTypeCommand
	}
	updated.Shortcut = liveShortcut

	if updated.WantsEnabled() {
		if updated.Shortcut == "" {
			updated.Status = StatusError
		} else {
			updated.Status = StatusEnabled
		}
	}

	return updated, updated != c
}

// WithEnabled returns the record with the desired state switched.
// Re-enabling an unbound command yields error status.
func (c Command) WithEnabled(enabled bool) Command {
	updated := c
	switch {
	case !enabled:
		updated.Status = StatusDisabled
	case updated.Shortcut == "":
		updated.Status = StatusError
	default:
		updated.Status = StatusEnabled
	}
	return updated
}

// Compose builds the text that replaces the selection once the model answered.
func (k CommandKey) Compose(selected, output string) string {
	switch k {
	case CommandComplete:
		return selected + "\n" + strings.TrimLeftFunc(output, unicode.IsSpace)
	case CommandImprove:
		return LineComment(selected) + "\n" + output
	case CommandAsk:
		return strings.TrimLeftFunc(output, unicode.IsSpace)
	default:
		return selected
	}
}

// LineComment prefixes every line with the LaTeX comment marker.
// The first line is left alone when it is already commented.
func LineComment(text string) string {
	commented := strings.ReplaceAll(text, "\n", "\n%")
	if !strings.HasPrefix(commented, "%") {
		commented = "%" + commented
	}
	return commented
}
