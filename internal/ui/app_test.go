package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/buildboard/buildboard/internal/api"
	"github.com/buildboard/buildboard/internal/deploy"
	"github.com/buildboard/buildboard/internal/github"
	"github.com/buildboard/buildboard/internal/player"
	"github.com/buildboard/buildboard/internal/signup"
	"github.com/buildboard/buildboard/internal/state"
)

type fakeBackend struct {
	signupErr error
	verifyErr error
	emails    []string
	codes     []string
}

func (f *fakeBackend) Signup(_ context.Context, req api.SignupRequest) (api.SignupResponse, error) {
	f.emails = append(f.emails, req.Email)
	return api.SignupResponse{Message: "sent"}, f.signupErr
}

func (f *fakeBackend) Verify(_ context.Context, _ string, otp string) (api.VerifyResponse, error) {
	f.codes = append(f.codes, otp)
	return api.VerifyResponse{Message: "verified"}, f.verifyErr
}

func (f *fakeBackend) Count(context.Context) (api.Count, error) {
	return api.Count{}, nil
}

type fakePoller struct {
	starts int
	stops  int
}

func (p *fakePoller) Start(context.Context) { p.starts++ }
func (p *fakePoller) Stop()                 { p.stops++ }

var testRepo = github.Repo{Owner: "dhamariT", Name: "buildboard"}

func newTestModel(t *testing.T, backend api.Backend, poller *fakePoller, opts Options) Model {
	t.Helper()
	opts.Backend = backend
	if poller != nil {
		opts.CountPoller = poller
	}
	if opts.AbandonDelay == 0 {
		opts.AbandonDelay = time.Millisecond
	}
	opts.Repo = testRepo
	m := New(opts)
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 60})
	m, _ = update(m, mountMsg{})
	return m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = update(m, keyRunes(string(r)))
	}
	return m
}

func signupRow(t *testing.T, m Model) int {
	t.Helper()
	for y := 0; y < m.height; y++ {
		if m.overSignup(y) {
			return y
		}
	}
	t.Fatal("signup widget not found on screen")
	return -1
}

func hover(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(m, tea.MouseMsg{X: 50, Y: signupRow(t, m), Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	return m
}

func startPlaying(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.Player().State(); got != player.Playing {
		t.Fatalf("state = %v, want %v", got, player.Playing)
	}
	return m
}

func TestWaitingThenIdle(t *testing.T) {
	m := New(Options{})
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if !strings.Contains(m.View(), waitText) {
		t.Fatalf("waiting view missing placeholder text")
	}
	m, _ = update(m, mountMsg{})
	if got := m.Player().State(); got != player.Idle {
		t.Fatalf("state = %v, want %v", got, player.Idle)
	}
	if !strings.Contains(m.View(), "billboard in New York City") {
		t.Fatalf("idle view missing call to action")
	}
}

func TestSignupFormHiddenUntilPlaying(t *testing.T) {
	m := newTestModel(t, &fakeBackend{}, &fakePoller{}, Options{})
	if strings.Contains(m.View(), "CLAIM YOUR SPOT") {
		t.Fatal("claim button visible before playback")
	}
	m, _ = update(m, keyRunes("c"))
	if got := m.Session().Mode; got != signup.ModeButton {
		t.Fatalf("mode = %v, want %v", got, signup.ModeButton)
	}
}

func TestPlaybackStartsAndStopsCountPoller(t *testing.T) {
	poller := &fakePoller{}
	m := newTestModel(t, &fakeBackend{}, poller, Options{})
	m = startPlaying(t, m)
	if poller.starts != 1 {
		t.Fatalf("poller starts = %d, want 1", poller.starts)
	}
	m, _ = update(m, keyRunes("s"))
	if got := m.Player().State(); got != player.Idle {
		t.Fatalf("state = %v, want %v", got, player.Idle)
	}
	if poller.stops != 1 {
		t.Fatalf("poller stops = %d, want 1", poller.stops)
	}
}

func TestSignupFlowNavigatesToChannel(t *testing.T) {
	backend := &fakeBackend{}
	poller := &fakePoller{}
	m := newTestModel(t, backend, poller, Options{})
	m = startPlaying(t, m)

	m = hover(t, m)
	if got := m.Session().Mode; got != signup.ModeEmailEntry {
		t.Fatalf("mode after hover = %v, want %v", got, signup.ModeEmailEntry)
	}

	m = typeText(m, "kid@example.com")
	if got := m.Session().Email; got != "kid@example.com" {
		t.Fatalf("email = %q, want %q", got, "kid@example.com")
	}

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected signup command")
	}
	if !m.Session().Submitting {
		t.Fatal("Submitting = false while request in flight")
	}
	m, _ = update(m, cmd())
	if got := m.Session().Mode; got != signup.ModeCodeEntry {
		t.Fatalf("mode after signup = %v, want %v", got, signup.ModeCodeEntry)
	}

	m = typeText(m, "abc123z")
	if got := m.Session().Code; got != "ABC123" {
		t.Fatalf("code = %q, want %q", got, "ABC123")
	}

	m, cmd = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected verify command")
	}
	m, _ = update(m, cmd())

	if m.Screen() != ScreenChannel {
		t.Fatalf("screen = %v, want channel", m.Screen())
	}
	if got := m.Player().State(); got != player.Idle {
		t.Fatalf("state = %v, want %v", got, player.Idle)
	}
	if poller.stops == 0 {
		t.Fatal("count poller still running after navigation")
	}
	if len(backend.codes) != 1 || backend.codes[0] != "ABC123" {
		t.Fatalf("verify codes = %v, want [ABC123]", backend.codes)
	}
	if !strings.Contains(m.View(), "Join the BuildBoard Channel") {
		t.Fatal("channel page not rendered")
	}
}

func TestReplyAfterLeavingPlayerIsDropped(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestModel(t, backend, &fakePoller{}, Options{})
	m.copyText = func(string) error { return nil }
	m = startPlaying(t, m)
	m = hover(t, m)
	m = typeText(m, "old@example.com")
	m, inflight := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if inflight == nil {
		t.Fatal("expected signup command")
	}

	// Leave for the channel page while the call is outstanding, then start a
	// fresh session.
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(m, keyRunes("C"))
	if m.Screen() != ScreenChannel {
		t.Fatalf("screen = %v, want channel", m.Screen())
	}
	m, _ = update(m, keyRunes("b"))
	m = startPlaying(t, m)
	m = hover(t, m)

	m, _ = update(m, inflight())
	got := m.Session()
	if got.Mode != signup.ModeEmailEntry {
		t.Fatalf("mode = %v, want %v", got.Mode, signup.ModeEmailEntry)
	}
	if got.Email != "" || got.Submitting {
		t.Fatalf("new session = %#v, want empty email and idle", got)
	}
}

func TestEmptyEmailSubmitIsNoop(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestModel(t, backend, nil, Options{})
	m = startPlaying(t, m)
	m = hover(t, m)

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("empty email produced a request")
	}
	if got := m.Session().LastError; got != "" {
		t.Fatalf("LastError = %q, want empty", got)
	}
}

func TestSignupErrorShownInline(t *testing.T) {
	backend := &fakeBackend{signupErr: &api.APIError{Message: "Please wait before requesting a new code", Status: 429}}
	m := newTestModel(t, backend, nil, Options{})
	m = startPlaying(t, m)
	m = hover(t, m)
	m = typeText(m, "kid@example.com")

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(m, cmd())

	session := m.Session()
	if session.Mode != signup.ModeEmailEntry {
		t.Fatalf("mode = %v, want %v", session.Mode, signup.ModeEmailEntry)
	}
	if session.Submitting {
		t.Fatal("Submitting still set after failure")
	}
	if session.LastError != "Please wait before requesting a new code" {
		t.Fatalf("LastError = %q", session.LastError)
	}
	if !strings.Contains(m.View(), "Please wait before requesting a new code") {
		t.Fatal("error not rendered next to the form")
	}
}

func TestAbandonEmptyEmail(t *testing.T) {
	m := newTestModel(t, &fakeBackend{}, nil, Options{})
	m = startPlaying(t, m)
	m = hover(t, m)

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected abandon timer")
	}
	m, _ = update(m, cmd())
	if got := m.Session().Mode; got != signup.ModeButton {
		t.Fatalf("mode = %v, want %v", got, signup.ModeButton)
	}
}

func TestAbandonCancelledByRefocus(t *testing.T) {
	m := newTestModel(t, &fakeBackend{}, nil, Options{})
	m = startPlaying(t, m)
	m = hover(t, m)

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected abandon timer")
	}
	m, _ = update(m, tea.MouseMsg{X: 50, Y: signupRow(t, m), Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(m, cmd())
	if got := m.Session().Mode; got != signup.ModeEmailEntry {
		t.Fatalf("mode = %v, want %v", got, signup.ModeEmailEntry)
	}
}

func TestBlurWithEmailKeepsForm(t *testing.T) {
	m := newTestModel(t, &fakeBackend{}, nil, Options{})
	m = startPlaying(t, m)
	m = hover(t, m)
	m = typeText(m, "k")

	_, cmd := update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		t.Fatal("non-empty email scheduled abandonment")
	}
}

func TestCountKeepsLastValueOnFailure(t *testing.T) {
	counts := &state.Cache[api.Count]{}
	m := newTestModel(t, &fakeBackend{}, nil, Options{Counts: counts})
	m = startPlaying(t, m)

	if !strings.Contains(m.View(), "Counting early starters") {
		t.Fatal("expected placeholder before first count")
	}
	counts.Set(api.Count{Total: 2000, Verified: 1234})
	if !strings.Contains(m.View(), "1,234") {
		t.Fatal("count not rendered")
	}
	counts.Fail(errors.New("backend down"))
	if !strings.Contains(m.View(), "1,234") {
		t.Fatal("count disappeared after a failed poll")
	}
}

func TestFooterShowsUnknownDeployment(t *testing.T) {
	deploys := &state.Cache[deploy.Status]{}
	m := newTestModel(t, &fakeBackend{}, nil, Options{Deploys: deploys})
	if !strings.Contains(m.View(), "Loading deployment…") {
		t.Fatal("expected loading line")
	}
	deploys.Set(deploy.Status{CommitSHA: "abc123def", Source: deploy.SourceCommit})
	deploys.Fail(deploy.ErrUnresolved)
	view := m.View()
	if !strings.Contains(view, "Deployment: unknown · view repo") {
		t.Fatal("expected unknown deployment line")
	}
	if strings.Contains(view, "abc123d") {
		t.Fatal("stale deployment rendered after failure")
	}
}

func TestNextProjectAndMute(t *testing.T) {
	m := newTestModel(t, &fakeBackend{}, nil, Options{})
	m, _ = update(m, keyRunes("m"))
	if !m.Player().Muted() {
		t.Fatal("Muted() = false after m")
	}
	m = startPlaying(t, m)
	m, _ = update(m, keyRunes("n"))
	m, _ = update(m, keyRunes("n"))
	if got := m.Player().ProjectsShipped(); got != 2 {
		t.Fatalf("ProjectsShipped() = %d, want 2", got)
	}
	if got := m.Player().State(); got != player.Playing {
		t.Fatalf("state = %v, want %v", got, player.Playing)
	}
}

func TestClaimEarlyCopiesChannelLink(t *testing.T) {
	m := newTestModel(t, &fakeBackend{}, &fakePoller{}, Options{})
	var copied string
	m.copyText = func(s string) error {
		copied = s
		return nil
	}
	m = startPlaying(t, m)
	m, _ = update(m, keyRunes("C"))
	if m.Screen() != ScreenChannel {
		t.Fatalf("screen = %v, want channel", m.Screen())
	}
	if got := m.Player().State(); got != player.Idle {
		t.Fatalf("state = %v, want %v", got, player.Idle)
	}

	m, _ = update(m, keyRunes("y"))
	if copied != ChannelURL {
		t.Fatalf("copied = %q, want %q", copied, ChannelURL)
	}
	if !strings.Contains(m.View(), "Link copied") {
		t.Fatal("copy notice not shown")
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Screen() != ScreenPlayer {
		t.Fatalf("screen = %v, want player", m.Screen())
	}
}

func TestDiagnosticsWithoutLogFile(t *testing.T) {
	m := newTestModel(t, &fakeBackend{}, nil, Options{})
	m, cmd := update(m, keyRunes("d"))
	if cmd != nil {
		t.Fatal("expected no read without a log file")
	}
	if !strings.Contains(m.View(), "Logging is off") {
		t.Fatal("diagnostics overlay missing hint")
	}
	m, _ = update(m, keyRunes("x"))
	if m.showDiagnostics {
		t.Fatal("overlay still open after a key press")
	}
}

func TestHeaderReflectsPlayback(t *testing.T) {
	m := newTestModel(t, &fakeBackend{}, &fakePoller{}, Options{DevMode: true})
	if got := m.renderHeader(); !strings.Contains(got, "READY") || !strings.Contains(got, "DEV") {
		t.Fatalf("idle header = %q, want READY and DEV", got)
	}
	m = startPlaying(t, m)
	m, _ = update(m, keyRunes("m"))
	got := m.renderHeader()
	if !strings.Contains(got, "PLAYING") || !strings.Contains(got, "muted") {
		t.Fatalf("playing header = %q, want PLAYING and muted", got)
	}
	if h := lipgloss.Height(got); h != headerHeight {
		t.Fatalf("header height = %d, want %d", h, headerHeight)
	}
}

func TestHelpListsThemes(t *testing.T) {
	m := newTestModel(t, &fakeBackend{}, &fakePoller{}, Options{})
	m, _ = update(m, keyRunes("h"))
	view := m.View()
	for _, name := range ThemeNames() {
		if !strings.Contains(view, name) {
			t.Fatalf("help overlay missing theme %q", name)
		}
	}
}

func TestFocusedFormUsesActiveStyle(t *testing.T) {
	m := newTestModel(t, &fakeBackend{}, &fakePoller{}, Options{})
	m = startPlaying(t, m)
	m = hover(t, m)
	if !m.inputFocused() {
		t.Fatal("email field not focused after hover")
	}
	if got := m.renderSignup(); !strings.Contains(got, "┏") {
		t.Fatalf("focused form = %q, want thick active border", got)
	}

	m, _ = update(m, keyRunes("x"))
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if got := m.renderSignup(); strings.Contains(got, "┏") {
		t.Fatalf("blurred form = %q, want the plain border", got)
	}
}
