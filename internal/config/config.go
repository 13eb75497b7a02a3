package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything the BuildBoard client needs at startup.
type Config struct {
	APIURL         string        `env:"BUILDBOARD_API_URL"`
	Env            string        `env:"BUILDBOARD_ENV"`
	LogFile        string        `env:"BUILDBOARD_LOG_FILE"`
	LogLevel       slog.Level    `env:"BUILDBOARD_LOG_LEVEL"`
	Repo           string        `env:"BUILDBOARD_REPO"`
	CountInterval  time.Duration `env:"BUILDBOARD_COUNT_INTERVAL"`
	DeployInterval time.Duration `env:"BUILDBOARD_DEPLOY_INTERVAL"`
	AbandonDelay   time.Duration `env:"BUILDBOARD_ABANDON_DELAY"`
	AudioFile      string        `env:"BUILDBOARD_AUDIO_FILE"`
	AudioPlayer    string        `env:"BUILDBOARD_AUDIO_PLAYER"`
}

const (
	defaultConfigPath     = "~/.config/buildboard/config.toml"
	defaultAPIURL         = "http://localhost:8080"
	defaultRepo           = "dhamariT/buildboard"
	defaultAudioPlayer    = "ffplay"
	defaultCountInterval  = 10 * time.Second
	defaultDeployInterval = 5 * time.Minute
	defaultAbandonDelay   = 200 * time.Millisecond

	envDevelopment = "development"
	devLogName     = "buildboard.log"
)

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		Env:            "production",
		LogLevel:       slog.LevelInfo,
		Repo:           defaultRepo,
		CountInterval:  defaultCountInterval,
		DeployInterval: defaultDeployInterval,
		AbandonDelay:   defaultAbandonDelay,
		AudioPlayer:    defaultAudioPlayer,
	}
}

// DevMode reports whether the development-only conveniences are enabled.
func (c Config) DevMode() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), envDevelopment)
}

// LogPath returns the diagnostic log file. In development an unset LogFile
// falls back to buildboard.log under the system temp directory, so one-time
// codes always reach the diagnostics overlay.
func (c Config) LogPath() string {
	if c.LogFile != "" || !c.DevMode() {
		return c.LogFile
	}
	return filepath.Join(os.TempDir(), "buildboard", devLogName)
}

// LoadDotEnv reads KEY=value pairs from path into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load builds the configuration from defaults, the optional TOML file at path
// and finally the BUILDBOARD_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}
	if err := applyFile(&cfg, resolved); err != nil {
		return Config{}, err
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	normalize(&cfg)
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL         string `toml:"api_url"`
		Env            string `toml:"env"`
		LogFile        string `toml:"log_file"`
		LogLevel       string `toml:"log_level"`
		Repo           string `toml:"repo"`
		CountInterval  string `toml:"count_interval"`
		DeployInterval string `toml:"deploy_interval"`
		AbandonDelay   string `toml:"abandon_delay"`
		AudioFile      string `toml:"audio_file"`
		AudioPlayer    string `toml:"audio_player"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	setString(&cfg.APIURL, raw.APIURL)
	setString(&cfg.Env, raw.Env)
	setString(&cfg.Repo, raw.Repo)
	setString(&cfg.AudioPlayer, raw.AudioPlayer)
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.AudioFile); v != "" {
		cfg.AudioFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("parse config log_level: %w", err)
		}
	}

	durations := []struct {
		name  string
		value string
		dest  *time.Duration
	}{
		{"count_interval", raw.CountInterval, &cfg.CountInterval},
		{"deploy_interval", raw.DeployInterval, &cfg.DeployInterval},
		{"abandon_delay", raw.AbandonDelay, &cfg.AbandonDelay},
	}
	for _, d := range durations {
		v := strings.TrimSpace(d.value)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config %s: %w", d.name, err)
		}
		*d.dest = parsed
	}
	return nil
}

func normalize(cfg *Config) {
	def := Default()
	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if cfg.APIURL == "" {
		cfg.APIURL = def.APIURL
	}
	cfg.Repo = strings.TrimSpace(cfg.Repo)
	if cfg.Repo == "" {
		cfg.Repo = def.Repo
	}
	if strings.TrimSpace(cfg.AudioPlayer) == "" {
		cfg.AudioPlayer = def.AudioPlayer
	}
	if cfg.CountInterval <= 0 {
		cfg.CountInterval = def.CountInterval
	}
	if cfg.DeployInterval <= 0 {
		cfg.DeployInterval = def.DeployInterval
	}
	if cfg.AbandonDelay <= 0 {
		cfg.AbandonDelay = def.AbandonDelay
	}
}

func setString(dest *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dest = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
