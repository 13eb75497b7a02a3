package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Player",
			items: []helpItem{
				{"enter/click", "Start playback"},
				{"s", "Stop and rewind"},
				{"n", "Next project"},
				{"m", "Mute/unmute"},
			},
		},
		{
			title: "Early access",
			items: []helpItem{
				{"c/hover", "Claim your spot"},
				{"enter", "Send email or code"},
				{"esc/tab", "Leave the field"},
				{"C", "Join the channel"},
			},
		},
		{
			title: "Channel",
			items: []helpItem{
				{"y", "Copy link"},
				{"esc", "Back to player"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"d", "Diagnostics log"},
				{"T", "Cycle theme"},
				{"h/?", "Toggle help"},
				{"q/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder

	title := styles.Text.Bold(true).Render("Keyboard Shortcuts")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")

		for _, item := range section.items {
			keyStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.theme.Warning)).
				Width(12)
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}

		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderThemeList())

	return m.renderModal(b.String(), 40)
}

// renderThemeList lists the themes T cycles through, marking the active one.
func (m Model) renderThemeList() string {
	styles := m.theme.Styles()
	names := ThemeNames()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		if name == m.theme.Name {
			parts = append(parts, styles.AccentText.Bold(true).Render(name))
			continue
		}
		parts = append(parts, styles.FaintText.Render(name))
	}
	return styles.MutedText.Render("Themes: ") + strings.Join(parts, styles.FaintText.Render(" · "))
}

// renderModal centers content in a bordered box over the whole screen.
func (m Model) renderModal(content string, width int) string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(width)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
