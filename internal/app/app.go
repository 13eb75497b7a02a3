package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/buildboard/buildboard/internal/api"
	"github.com/buildboard/buildboard/internal/config"
	"github.com/buildboard/buildboard/internal/deploy"
	"github.com/buildboard/buildboard/internal/github"
	"github.com/buildboard/buildboard/internal/player"
	"github.com/buildboard/buildboard/internal/state"
	"github.com/buildboard/buildboard/internal/ui"
)

const healthTimeout = 3 * time.Second

// Options configure the BuildBoard application.
type Options struct {
	ConfigPath string // empty uses ~/.config/buildboard/config.toml
	EnvFile    string // empty uses .env in the working directory
	GitHubURL  string // empty uses api.github.com
}

// Run boots the BuildBoard TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	client, err := api.NewClient(cfg.APIURL,
		api.WithDevMode(cfg.DevMode()),
		api.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}
	repo, err := github.ParseRepo(cfg.Repo)
	if err != nil {
		return fmt.Errorf("repository: %w", err)
	}
	gh, err := github.NewClient(opts.GitHubURL)
	if err != nil {
		return fmt.Errorf("init github client: %w", err)
	}

	logger.Info("starting buildboard",
		"api_url", cfg.APIURL,
		"env", cfg.Env,
		"repo", repo.String(),
	)

	// The backend being down is not fatal; the form shows errors inline.
	checkBackend(ctx, client, logger)

	counts := &state.Cache[api.Count]{}
	countPoller := &Poller[api.Count]{
		Name:     "count",
		Fetch:    client.Count,
		Cache:    counts,
		Interval: cfg.CountInterval,
		Logger:   logger,
	}
	defer countPoller.Wait()
	defer countPoller.Stop()

	deploys := &state.Cache[deploy.Status]{}
	deployPoller := &Poller[deploy.Status]{
		Name:     "deploy",
		Fetch:    deploy.NewResolver(gh, repo, logger).Resolve,
		Cache:    deploys,
		Interval: cfg.DeployInterval,
		Backoff:  true,
		Logger:   logger,
	}

	audio, err := player.NewProcessAudio(cfg.AudioPlayer, cfg.AudioFile)
	if err != nil {
		logger.Warn("audio disabled", "error", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		return deployPoller.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		err := ui.Run(ui.Options{
			Context:      gctx,
			Backend:      client,
			Player:       player.NewController(audio),
			Counts:       counts,
			CountPoller:  countPoller,
			Deploys:      deploys,
			Repo:         repo,
			AbandonDelay: cfg.AbandonDelay,
			LogFile:      cfg.LogPath(),
			Logger:       logger,
			DevMode:      cfg.DevMode(),
		})
		if errors.Is(err, tea.ErrProgramKilled) && gctx.Err() != nil {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run ui: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func loadConfig(opts Options) (config.Config, error) {
	if err := config.LoadDotEnv(opts.EnvFile); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openLogger writes slog text records to cfg.LogPath(). Without a log file the
// logger discards everything, since stdout belongs to the TUI. Development
// mode always records Info so the one-time code is kept.
func openLogger(cfg config.Config) (*slog.Logger, func() error, error) {
	path := cfg.LogPath()
	if path == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	level := cfg.LogLevel
	if cfg.DevMode() && level > slog.LevelInfo {
		level = slog.LevelInfo
	}
	return newLogger(file, level), file.Close, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func checkBackend(ctx context.Context, client *api.Client, logger *slog.Logger) {
	checkCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	if _, err := client.Health(checkCtx); err != nil {
		logger.Warn("backend health check failed", "error", err)
		return
	}
	logger.Debug("backend healthy")
}
