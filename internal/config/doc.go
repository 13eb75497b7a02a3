// Package config loads BuildBoard client settings.
//
// # Resolution Order
//
// Values are layered, later sources winning:
//
//  1. Built-in defaults (see Default)
//  2. The optional TOML file (default ~/.config/buildboard/config.toml)
//  3. BUILDBOARD_* environment variables, optionally seeded from a .env file
//     via LoadDotEnv
//
// A missing TOML file or .env file is not an error.
//
// # Environment Variables
//
//   - BUILDBOARD_API_URL: backend base address (default http://localhost:8080)
//   - BUILDBOARD_ENV: "development" enables dev mode (one-time codes are logged)
//   - BUILDBOARD_LOG_FILE, BUILDBOARD_LOG_LEVEL: diagnostic log destination
//   - BUILDBOARD_REPO: owner/name of the repository shown in the footer
//   - BUILDBOARD_COUNT_INTERVAL, BUILDBOARD_DEPLOY_INTERVAL: poll periods
//   - BUILDBOARD_ABANDON_DELAY: grace delay before an empty email form closes
//   - BUILDBOARD_AUDIO_FILE, BUILDBOARD_AUDIO_PLAYER: looped clip and player binary
//
// # TOML Format
//
//	api_url = "http://localhost:8080"
//	env = "development"
//	log_file = "~/.local/state/buildboard/client.log"
//	count_interval = "10s"
//	abandon_delay = "200ms"
package config
