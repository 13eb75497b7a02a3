package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/buildboard/buildboard/internal/logtail"
)

const diagnosticsMaxLines = 200

type diagnosticsState struct {
	lines []string
	err   error
}

type diagnosticsMsg struct {
	lines []string
	err   error
}

func (m Model) refreshDiagnostics() tea.Cmd {
	path := m.logFile
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, diagnosticsMaxLines)
		return diagnosticsMsg{lines: lines, err: err}
	}
}

// renderDiagnostics shows the newest log lines that fit on screen. In
// development mode the one-time code shows up here.
func (m Model) renderDiagnostics() string {
	styles := m.theme.Styles()
	width := max(m.width-8, 20)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Diagnostics"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	switch {
	case m.logFile == "":
		b.WriteString(styles.MutedText.Render("Logging is off. Set BUILDBOARD_LOG_FILE to record diagnostics."))
	case m.diagnostics.err != nil:
		b.WriteString(styles.DangerText.Render(m.diagnostics.err.Error()))
	case len(m.diagnostics.lines) == 0:
		b.WriteString(styles.MutedText.Render("No log entries yet."))
	default:
		lines := m.diagnostics.lines
		if room := m.height - 10; room > 0 && len(lines) > room {
			lines = lines[len(lines)-room:]
		}
		for i, line := range lines {
			b.WriteString(m.levelStyle(logtail.Level(line)).Render(truncateMiddle(line, width-6)))
			if i < len(lines)-1 {
				b.WriteString("\n")
			}
		}
	}
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("any key to close"))

	return m.renderModal(b.String(), width)
}

func (m Model) levelStyle(level string) lipgloss.Style {
	styles := m.theme.Styles()
	switch {
	case strings.HasPrefix(level, "ERROR"):
		return styles.DangerText
	case strings.HasPrefix(level, "WARN"):
		return styles.WarningText
	case strings.HasPrefix(level, "DEBUG"):
		return styles.FaintText
	default:
		return styles.Text
	}
}
