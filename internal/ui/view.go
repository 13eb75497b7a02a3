package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/buildboard/buildboard/internal/deploy"
	"github.com/buildboard/buildboard/internal/player"
	"github.com/buildboard/buildboard/internal/signup"
)

const (
	waitText  = "BuildBord: Your Work on a New York Billboard"
	startText = "Build something you're proud of, and we'll put it on a billboard in New York City. Seriously."
)

// renderMain renders header, page body and footer.
func (m Model) renderMain() string {
	header := m.renderHeader()
	footer := m.renderFooter()

	var body string
	switch {
	case m.screen == ScreenChannel:
		body = m.renderChannel()
	case m.player.State() == player.Playing:
		top, form, bottom := m.playingLayout()
		body = lipgloss.JoinVertical(lipgloss.Center, top, form, bottom)
	case m.player.State() == player.Idle:
		body = m.renderIdle()
	default:
		body = m.renderWaiting()
	}

	room := m.height - headerHeight - lipgloss.Height(footer)
	return lipgloss.JoinVertical(lipgloss.Left, header, m.fitBody(body, room), footer)
}

// fitBody centers body horizontally and pads or clips it to exactly height
// lines so the page never scrolls.
func (m Model) fitBody(body string, height int) string {
	if height < 1 {
		height = 1
	}
	centered := lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(body)
	lines := strings.Split(centered, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderWaiting() string {
	styles := m.theme.Styles()
	return "\n\n" + styles.Logo.Render(waitText)
}

func (m Model) renderIdle() string {
	styles := m.theme.Styles()
	width := min(m.width-4, LayoutContentWidth)
	cta := styles.Text.Bold(true).Width(width).Align(lipgloss.Center).Render(startText)
	hint := styles.FaintText.Render("press enter or click anywhere to start")
	blocks := []string{"", ""}
	if m.logo != "" && m.width >= LayoutLogoWidth {
		blocks = append(blocks, styles.Logo.Render(m.logo), "")
	}
	blocks = append(blocks, cta, "", hint)
	return lipgloss.JoinVertical(lipgloss.Center, blocks...)
}

// playingLayout splits the playing page around the signup widget so mouse
// hit-testing and rendering agree on where it sits.
func (m Model) playingLayout() (top, form, bottom string) {
	styles := m.theme.Styles()
	width := max(m.width, 1)
	row := 0
	marquee := func(text string, dir int) string {
		s := styles.MarqueeStyle(row).Render(scroll(text, width, dir*m.frame))
		row++
		return s
	}

	top = lipgloss.JoinVertical(lipgloss.Center,
		"",
		marquee("BUILD YOUR PROJECTS", 1),
		marquee("50 SPOTS FOR TEENAGERS", -1),
		styles.Button.Render("Next Project"),
		styles.AccentText.Render(bounce(formatCount(int64(m.player.ProjectsShipped()))+" PROJECTS SHIPPED", min(width, LayoutContentWidth), m.frame)),
		"",
	)
	form = m.renderSignup()
	bottom = lipgloss.JoinVertical(lipgloss.Center,
		"",
		m.renderCount(),
		"",
		marquee("MECHANICAL KEYBOARDS", 1),
		marquee("WEB APPS THAT SOLVE PROBLEMS", -1),
		styles.Button.Render("Physical Projects"),
		styles.InfoText.Render(bounce("PHOTO + QR CODE TO GITHUB", min(width, LayoutContentWidth), m.frame)),
		styles.Button.Render("Software Projects"),
		marquee("QR CODE TO LIVE PROJECT", 1),
		marquee("YOU BUILT IT NOW LET'S SHOW IT", -1),
	)
	return top, form, bottom
}

// overSignup reports whether screen row y falls on the signup widget.
func (m Model) overSignup(y int) bool {
	if m.screen != ScreenPlayer || m.player.State() != player.Playing {
		return false
	}
	top, form, _ := m.playingLayout()
	start := headerHeight + lipgloss.Height(top)
	return y >= start && y < start+lipgloss.Height(form)
}

func (m Model) renderSignup() string {
	styles := m.theme.Styles()
	session := m.machine.Session()

	if session.Mode == signup.ModeButton {
		label := styles.Text.Bold(true).Render("CLAIM YOUR SPOT ") + styles.DangerText.Render("EARLY")
		return styles.Button.Render(label)
	}

	var lines []string
	switch session.Mode {
	case signup.ModeEmailEntry:
		lines = append(lines,
			styles.Text.Bold(true).Render("Claim your spot early"),
			m.emailInput.View(),
		)
	case signup.ModeCodeEntry:
		lines = append(lines,
			styles.Text.Bold(true).Render("Check your inbox"),
			styles.MutedText.Render("Code sent to "+truncateMiddle(session.Email, 36)),
			m.codeInput.View(),
		)
	}
	lines = append(lines, m.renderSignupStatus(session))

	box := styles.Button
	if m.inputFocused() {
		box = styles.ButtonActive
	}
	return box.Width(LayoutFormWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderSignupStatus(session signup.Session) string {
	styles := m.theme.Styles()
	switch {
	case session.Submitting && session.Mode == signup.ModeCodeEntry:
		return styles.WarningText.Render("Verifying…")
	case session.Submitting:
		return styles.WarningText.Render("Sending code…")
	case session.LastError != "":
		return styles.DangerText.Render(session.LastError)
	case session.Mode == signup.ModeCodeEntry:
		return styles.FaintText.Render("enter to verify · esc to leave")
	default:
		return styles.FaintText.Render("enter to send a code · esc to leave")
	}
}

// renderCount shows the verified signup count. The last good value stays on
// screen while the backend is failing.
func (m Model) renderCount() string {
	styles := m.theme.Styles()
	snap := m.counts.Snapshot()
	if !snap.HasValue {
		return styles.FaintText.Render("Counting early starters…")
	}
	return styles.SuccessText.Render(formatCount(snap.Value.Verified)) +
		styles.MutedText.Render(" people starting early")
}

func (m Model) renderChannel() string {
	styles := m.theme.Styles()
	lines := []string{
		"",
		"",
		styles.Logo.Render("Join the BuildBoard Channel"),
		"",
		styles.Text.Render("Ask questions, share what you're building and meet the other early starters."),
		"",
		styles.AccentText.Underline(true).Render(ChannelURL),
		"",
		styles.FaintText.Render("y copy link · esc back to the player"),
	}
	if m.notice != "" {
		lines = append(lines, "", styles.InfoText.Render(m.notice))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// renderFooter renders the deployment line above the key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	line := deploy.Render(m.deploys.Snapshot(), m.repo, m.now())
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Footer.Width(m.width).MaxHeight(1).Render(line),
		m.help.View(m.keys),
	)
}

func formatCount(n int64) string {
	return humanize.Comma(n)
}
