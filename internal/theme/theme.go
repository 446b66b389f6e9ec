package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header         *lipgloss.Style
	Bar            *lipgloss.Style
	Trigger        *lipgloss.Style
	TriggerFocused *lipgloss.Style
	TriggerOpen    *lipgloss.Style
	MenuBorder     *lipgloss.Style
	Item           *lipgloss.Style
	ItemFocused    *lipgloss.Style
	ItemDisabled   *lipgloss.Style
	ItemDanger     *lipgloss.Style
	Divider        *lipgloss.Style
	Error          *lipgloss.Style
	Info           *lipgloss.Style
	Hint           *lipgloss.Style
	Footer         *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Bar: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Background(lipgloss.Color("236")),
	),
	Trigger: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
	),
	TriggerFocused: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true),
	),
	TriggerOpen: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	MenuBorder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemFocused: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	ItemDisabled: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
	),
	ItemDanger: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	),
	Divider: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Hint: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
