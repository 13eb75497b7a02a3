package ui

import (
	"context"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/buildboard/buildboard/internal/api"
	"github.com/buildboard/buildboard/internal/deploy"
	"github.com/buildboard/buildboard/internal/github"
	"github.com/buildboard/buildboard/internal/player"
	"github.com/buildboard/buildboard/internal/signup"
	"github.com/buildboard/buildboard/internal/state"
)

const (
	defaultThemeName = "Nightfox"

	// ChannelURL is the community channel visitors are sent to once verified.
	ChannelURL = "https://hackclub.slack.com/archives/C09PAAVLZ16e"
)

// Screen is the page currently shown.
type Screen int

const (
	ScreenPlayer Screen = iota
	ScreenChannel
)

// Poller is a background refresher the UI starts and stops with playback.
type Poller interface {
	Start(ctx context.Context)
	Stop()
}

// Options configures the UI.
type Options struct {
	Context      context.Context
	Backend      api.Backend
	Player       *player.Controller
	Counts       *state.Cache[api.Count]
	CountPoller  Poller
	Deploys      *state.Cache[deploy.Status]
	Repo         github.Repo
	AbandonDelay time.Duration
	LogFile      string
	Logger       *slog.Logger
	DevMode      bool
	ThemeName    string
	Logo         string // pre-rendered wordmark; empty uses plain text
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	backend      api.Backend
	counts       *state.Cache[api.Count]
	countPoller  Poller
	deploys      *state.Cache[deploy.Status]
	repo         github.Repo
	abandonDelay time.Duration
	logFile      string
	logger       *slog.Logger
	devMode      bool
	now          func() time.Time
	copyText     func(string) error

	// Domain state
	player  *player.Controller
	machine *signup.Machine

	// UI state
	theme      Theme
	keys       keyMap
	help       help.Model
	screen     Screen
	width      int
	height     int
	ready      bool
	frame      int
	emailInput textinput.Model
	codeInput  textinput.Model
	notice     string
	logo       string

	// Overlays
	showHelp        bool
	showDiagnostics bool
	diagnostics     diagnosticsState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	controller := opts.Player
	if controller == nil {
		controller = player.NewController(nil)
	}
	counts := opts.Counts
	if counts == nil {
		counts = &state.Cache[api.Count]{}
	}
	deploys := opts.Deploys
	if deploys == nil {
		deploys = &state.Cache[deploy.Status]{}
	}
	delay := opts.AbandonDelay
	if delay <= 0 {
		delay = DefaultAbandonDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = defaultThemeName
	}

	return Model{
		ctx:          ctx,
		backend:      opts.Backend,
		counts:       counts,
		countPoller:  opts.CountPoller,
		deploys:      deploys,
		repo:         opts.Repo,
		abandonDelay: delay,
		logFile:      opts.LogFile,
		logger:       logger,
		devMode:      opts.DevMode,
		now:          time.Now,
		copyText:     clipboard.WriteAll,
		player:       controller,
		machine:      signup.New(),
		theme:        GetTheme(themeName),
		keys:         DefaultKeyMap(),
		help:         help.New(),
		emailInput:   newEmailInput(),
		codeInput:    newCodeInput(),
		logo:         opts.Logo,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		mountCmd(),
		frameCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case mountMsg:
		m.player.Mount()
		return m, nil

	case frameMsg:
		m.frame++
		return m, frameCmd()

	case signupDoneMsg:
		return m.handleSignupDone(msg)

	case verifyDoneMsg:
		return m.handleVerifyDone(msg)

	case abandonMsg:
		if m.machine.Abandon(msg.token) {
			m.emailInput.Reset()
			m.emailInput.Blur()
		}
		return m, nil

	case diagnosticsMsg:
		m.diagnostics.lines = msg.lines
		m.diagnostics.err = msg.err
		return m, nil
	}

	return m.updateInputs(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showDiagnostics {
		return m.renderDiagnostics()
	}
	return m.renderMain()
}

// Player exposes the playback controller.
func (m Model) Player() *player.Controller { return m.player }

// Session returns the current signup session.
func (m Model) Session() signup.Session { return m.machine.Session() }

// Screen returns the page currently shown.
func (m Model) Screen() Screen { return m.screen }

// Messages

type mountMsg struct{}

type frameMsg time.Time

type signupDoneMsg struct {
	req signup.Request
	err error
}

type verifyDoneMsg struct {
	req signup.Request
	err error
}

type abandonMsg struct{ token uint64 }

// Commands

func mountCmd() tea.Cmd {
	return func() tea.Msg { return mountMsg{} }
}

func frameCmd() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func abandonCmd(delay time.Duration, token uint64) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return abandonMsg{token: token}
	})
}

func (m Model) requestCmd(req signup.Request) tea.Cmd {
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		var err error
		if backend == nil {
			err = &api.APIError{Message: "Backend unavailable"}
		} else {
			err = req.Run(ctx, backend)
		}
		if req.Kind == signup.KindVerify {
			return verifyDoneMsg{req: req, err: err}
		}
		return signupDoneMsg{req: req, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Logo == "" {
		opts.Logo = createLogo()
	}
	m := New(opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(m.ctx),
	)
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.teardown()
	}
	return err
}
