package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/buildboard/buildboard/internal/player"
)

const headerHeight = 1

// statusBar collects header segments painted on the surface color. Each
// segment is rendered whole and the gaps carry the background too, so the bar
// has no unpainted cells between segments.
type statusBar struct {
	bg    lipgloss.Color
	parts []string
}

func newStatusBar(surface string) *statusBar {
	return &statusBar{bg: lipgloss.Color(surface)}
}

func (b *statusBar) add(text string, style lipgloss.Style) {
	if text == "" {
		return
	}
	b.parts = append(b.parts, style.Background(b.bg).Render(text))
}

// addStat renders "label value" as one segment.
func (b *statusBar) addStat(label, value string, labelStyle, valueStyle lipgloss.Style) {
	space := lipgloss.NewStyle().Background(b.bg).Render(" ")
	b.parts = append(b.parts,
		labelStyle.Background(b.bg).Render(label)+space+valueStyle.Background(b.bg).Render(value))
}

func (b *statusBar) render(width int, fg string) string {
	gap := lipgloss.NewStyle().Background(b.bg).Render("  ")
	return lipgloss.NewStyle().
		Background(b.bg).
		Foreground(lipgloss.Color(fg)).
		Width(width).
		MaxHeight(headerHeight).
		Render(strings.Join(b.parts, gap))
}

// renderHeader renders the single-line status bar: playback state, sound,
// shipped projects and the dev marker.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bar := newStatusBar(m.theme.Surface)
	bar.add("buildboard", styles.Logo)

	switch m.player.State() {
	case player.Playing:
		bar.add("● PLAYING", styles.SuccessText)
	case player.Idle:
		bar.add("● READY", styles.AccentText)
	default:
		bar.add("● WAIT", styles.MutedText)
	}

	compact := m.width < LayoutCompactWidth
	if m.player.Muted() {
		bar.add("muted", styles.WarningText)
	} else if !compact {
		bar.add("sound on", styles.MutedText)
	}

	if n := m.player.ProjectsShipped(); n > 0 && !compact {
		bar.addStat("Shipped:", formatCount(int64(n)), styles.MutedText, styles.Text)
	}

	if m.devMode {
		bar.add("DEV", styles.DangerText)
	}
	return bar.render(m.width, m.theme.Text)
}
