package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CA8A04"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

// FormatError returns a styled multi-line error message.
func FormatError(title, detail, suggestion string) string {
	out := errorStyle.Render("Error: "+title) + "\n"
	if detail != "" {
		out += "  " + detail + "\n"
	}
	if suggestion != "" {
		out += "  " + hintStyle.Render("Hint: "+suggestion) + "\n"
	}
	return out
}

// ArtifactDone prints a styled status when an artifact parsed cleanly.
func ArtifactDone(name, detail string) {
	msg := successStyle.Render("  OK ") + " " + name
	if detail != "" {
		msg += " " + dimStyle.Render(detail)
	}
	fmt.Println(msg)
}

// ArtifactSkipped prints a styled status for an artifact that is not
// configured.
func ArtifactSkipped(name string) {
	fmt.Printf("  %s %s\n", dimStyle.Render("--"), dimStyle.Render(name+" (skipped)"))
}

// ArtifactFailed prints a styled status for an artifact that could not
// be parsed. The failure also shows up as a finding in the report.
func ArtifactFailed(name, detail string) {
	fmt.Printf("  %s %s: %s\n", errorStyle.Render("ERR"), name, detail)
}

// Success prints a green success message.
func Success(msg string) {
	fmt.Println(successStyle.Render(msg))
}

// Warn prints a yellow warning message.
func Warn(msg string) {
	fmt.Println(warnStyle.Render("Warning: " + msg))
}

// Bold renders text in bold.
func Bold(s string) string {
	return boldStyle.Render(s)
}

// Hint renders text in dim italic.
func Hint(s string) string {
	return hintStyle.Render(s)
}

// Critical renders text in the error style.
func Critical(s string) string {
	return errorStyle.Render(s)
}

// Warning renders text in the warning style.
func Warning(s string) string {
	return warnStyle.Render(s)
}

// Pass renders text in the success style.
func Pass(s string) string {
	return successStyle.Render(s)
}

// Dim renders text dimmed.
func Dim(s string) string {
	return dimStyle.Render(s)
}
