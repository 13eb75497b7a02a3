package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit        key.Binding
	Help        key.Binding
	CycleTheme  key.Binding
	Diagnostics key.Binding
	Mute        key.Binding

	// Player
	Start       key.Binding
	Stop        key.Binding
	NextProject key.Binding
	Claim       key.Binding
	ClaimEarly  key.Binding

	// Signup form
	Submit key.Binding
	Blur   key.Binding

	// Channel screen
	Copy key.Binding
	Back key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Diagnostics: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Diagnostics log"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Mute/unmute"),
		),

		Start: key.NewBinding(
			key.WithKeys("enter", " ", "p"),
			key.WithHelp("enter", "Start"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Stop"),
		),
		NextProject: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Next project"),
		),
		Claim: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Claim your spot"),
		),
		ClaimEarly: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Join the channel"),
		),

		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Submit"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc", "tab"),
			key.WithHelp("esc", "Leave field"),
		),

		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy link"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "Back"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Claim, k.Mute, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Stop, k.NextProject, k.Mute},
		{k.Claim, k.ClaimEarly, k.Submit, k.Blur},
		{k.Copy, k.Back},
		{k.CycleTheme, k.Diagnostics, k.Help, k.Quit},
	}
}
