package ui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/buildboard/buildboard/internal/api"
	"github.com/buildboard/buildboard/internal/player"
	"github.com/buildboard/buildboard/internal/signup"
)

func newEmailInput() textinput.Model {
	in := textinput.New()
	in.Placeholder = "you@example.com"
	in.Prompt = "Email › "
	in.CharLimit = 254
	in.Width = 32
	return in
}

func newCodeInput() textinput.Model {
	in := textinput.New()
	in.Placeholder = "ABC123"
	in.Prompt = "Code › "
	in.CharLimit = signup.CodeLength
	in.Width = signup.CodeLength + 1
	return in
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.teardown()
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.showDiagnostics {
		m.showDiagnostics = false
		return m, nil
	}

	// A focused field swallows everything but its own controls.
	if m.inputFocused() {
		return m.handleFieldKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.teardown()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Diagnostics):
		m.showDiagnostics = true
		return m, m.refreshDiagnostics()
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		return m, nil
	case key.Matches(msg, m.keys.Mute):
		m.player.ToggleMute()
		return m, nil
	}

	if m.screen == ScreenChannel {
		return m.handleChannelKey(msg)
	}

	switch m.player.State() {
	case player.Idle:
		if key.Matches(msg, m.keys.Start) {
			return m.startPlayback()
		}
	case player.Playing:
		return m.handlePlayingKey(msg)
	}
	return m, nil
}

func (m Model) handlePlayingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Stop):
		m.stopPlayback()
		return m, nil
	case key.Matches(msg, m.keys.NextProject):
		if err := m.player.NextProject(); err != nil {
			m.logger.Warn("next project", "error", err)
		}
		return m, nil
	case key.Matches(msg, m.keys.ClaimEarly):
		m.player.ClaimEarly()
		m.leavePlayer()
		return m, nil
	case key.Matches(msg, m.keys.Claim):
		return m.pointerEnter()
	case msg.String() == "enter" || msg.String() == "tab":
		// Return focus to a form that was left with text in it.
		return m.focusField()
	}
	return m, nil
}

func (m Model) handleFieldKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Blur):
		return m.blur()
	}
	if m.machine.Session().Submitting {
		return m, nil
	}
	return m.updateInputs(msg)
}

func (m Model) handleChannelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Copy):
		if err := m.copyText(ChannelURL); err != nil {
			m.logger.Warn("copy channel link", "error", err)
			m.notice = "Could not copy link: " + err.Error()
		} else {
			m.notice = "Link copied to clipboard"
		}
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.screen = ScreenPlayer
		m.notice = ""
		return m, nil
	}
	return m, nil
}

// handleMouse maps pointer motion over the claim button to pointer-enter, a
// click elsewhere to blur, and a click on the idle screen to start.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp || m.showDiagnostics || m.screen != ScreenPlayer {
		return m, nil
	}
	press := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft

	switch m.player.State() {
	case player.Idle:
		if press {
			return m.startPlayback()
		}
		return m, nil
	case player.Playing:
	default:
		return m, nil
	}

	inside := m.overSignup(msg.Y)
	switch {
	case msg.Action == tea.MouseActionMotion && inside:
		if m.machine.Mode() == signup.ModeButton {
			return m.pointerEnter()
		}
	case press && inside:
		if m.machine.Mode() == signup.ModeButton {
			return m.pointerEnter()
		}
		return m.focusField()
	case press && m.inputFocused():
		return m.blur()
	}
	return m, nil
}

// updateInputs forwards msg to the focused text field and mirrors its value
// into the signup session.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.machine.Mode() {
	case signup.ModeEmailEntry:
		if !m.emailInput.Focused() {
			return m, nil
		}
		m.emailInput, cmd = m.emailInput.Update(msg)
		if m.emailInput.Value() != m.machine.Session().Email {
			m.machine.SetEmail(m.emailInput.Value())
		}
	case signup.ModeCodeEntry:
		if !m.codeInput.Focused() {
			return m, nil
		}
		m.codeInput, cmd = m.codeInput.Update(msg)
		m.machine.SetCode(m.codeInput.Value())
		if code := m.machine.Session().Code; code != m.codeInput.Value() {
			m.codeInput.SetValue(code)
		}
	}
	return m, cmd
}

func (m Model) inputFocused() bool {
	if m.screen != ScreenPlayer || m.player.State() != player.Playing {
		return false
	}
	switch m.machine.Mode() {
	case signup.ModeEmailEntry:
		return m.emailInput.Focused()
	case signup.ModeCodeEntry:
		return m.codeInput.Focused()
	}
	return false
}

func (m Model) pointerEnter() (tea.Model, tea.Cmd) {
	if !m.machine.PointerEnter() {
		return m, nil
	}
	cmd := m.emailInput.Focus()
	return m, cmd
}

func (m Model) focusField() (tea.Model, tea.Cmd) {
	switch m.machine.Mode() {
	case signup.ModeEmailEntry:
		m.machine.Focus()
		cmd := m.emailInput.Focus()
		return m, cmd
	case signup.ModeCodeEntry:
		cmd := m.codeInput.Focus()
		return m, cmd
	}
	return m, nil
}

func (m Model) blur() (tea.Model, tea.Cmd) {
	switch m.machine.Mode() {
	case signup.ModeEmailEntry:
		m.emailInput.Blur()
		if token, ok := m.machine.Blur(); ok {
			return m, abandonCmd(m.abandonDelay, token)
		}
	case signup.ModeCodeEntry:
		m.codeInput.Blur()
	}
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	var (
		req signup.Request
		ok  bool
	)
	switch m.machine.Mode() {
	case signup.ModeEmailEntry:
		m.machine.SetEmail(m.emailInput.Value())
		req, ok = m.machine.SubmitEmail()
	case signup.ModeCodeEntry:
		m.machine.SetCode(m.codeInput.Value())
		req, ok = m.machine.SubmitCode()
	}
	if !ok {
		return m, nil
	}
	return m, m.requestCmd(req)
}

func (m Model) handleSignupDone(msg signupDoneMsg) (tea.Model, tea.Cmd) {
	if m.staleReply(msg.req) {
		return m, nil
	}
	m.machine.ApplySignup(msg.req, msg.err)
	if msg.err != nil {
		m.logRequestError("signup", msg.err)
		return m, nil
	}
	if m.machine.Mode() != signup.ModeCodeEntry {
		return m, nil
	}
	m.emailInput.Blur()
	m.codeInput.Reset()
	cmd := m.codeInput.Focus()
	return m, cmd
}

func (m Model) handleVerifyDone(msg verifyDoneMsg) (tea.Model, tea.Cmd) {
	if m.staleReply(msg.req) {
		return m, nil
	}
	if !m.machine.ApplyVerify(msg.req, msg.err) {
		if msg.err != nil {
			m.logRequestError("verify", msg.err)
		}
		return m, nil
	}
	m.logger.Info("early access verified")
	m.player.ClaimEarly()
	m.leavePlayer()
	return m, nil
}

// staleReply reports whether req was issued by a session that has since been
// reset, for example by leaving the player while the call was in flight.
func (m Model) staleReply(req signup.Request) bool {
	if req.Gen == m.machine.Generation() {
		return false
	}
	m.logger.Debug("dropping reply for a previous signup session", "kind", req.Kind)
	return true
}

func (m Model) logRequestError(op string, err error) {
	attrs := []any{"op", op, "error", err}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		attrs = append(attrs, "detail", apiErr.Detail())
	}
	m.logger.Warn("signup request failed", attrs...)
}

func (m Model) startPlayback() (tea.Model, tea.Cmd) {
	if err := m.player.Start(); err != nil {
		m.logger.Warn("start playback", "error", err)
	}
	if m.player.State() == player.Playing && m.countPoller != nil {
		m.countPoller.Start(m.ctx)
	}
	return m, nil
}

func (m *Model) stopPlayback() {
	m.player.Stop()
	if m.countPoller != nil {
		m.countPoller.Stop()
	}
}

// leavePlayer tears down the playing surface, discarding any half-finished
// signup, and shows the channel page.
func (m *Model) leavePlayer() {
	if m.countPoller != nil {
		m.countPoller.Stop()
	}
	m.machine.Reset()
	m.emailInput.Reset()
	m.emailInput.Blur()
	m.codeInput.Reset()
	m.codeInput.Blur()
	m.screen = ScreenChannel
	m.notice = ""
}

// teardown stops everything the model started.
func (m Model) teardown() {
	if m.countPoller != nil {
		m.countPoller.Stop()
	}
	m.player.Stop()
	if err := m.player.Close(); err != nil {
		m.logger.Warn("close audio", "error", err)
	}
}
