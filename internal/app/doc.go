// Package app is the composition root for BuildBoard.
//
// # Overview
//
// Run wires configuration, logging, the backend and GitHub clients, the two
// pollers and the UI together, then blocks until the user quits or the
// context is cancelled.
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.LoadDotEnv()  Optional .env
//	       ├─────> config.Load()        Defaults < TOML < environment
//	       ├─────> openLogger()         slog text handler to the log file
//	       ├─────> api.NewClient()      Backend client (dev mode aware)
//	       ├─────> checkBackend()       Non-fatal health check
//	       ├─────> Poller[deploy]       Runs for the whole session
//	       └─────> ui.Run()             Starts/stops Poller[count] with playback
//
// # Pollers
//
// Poller[T] fetches once on Start and then on a fixed interval, writing each
// result into a state.Cache. Consecutive failures back the interval off up to
// maxBackoff. Stop bumps a generation counter under the poller's lock, so a
// fetch that completes after Stop never touches the cache.
//
// # Errors
//
// Only startup problems are returned from Run: an unreadable config, an
// unopenable log file or an invalid repository name. Poll and request
// failures are logged and shown in the UI.
//
// # One-shot Commands
//
// RunAdmin prints the signup listing as a table and RunHealth prints the
// backend health response; both exit without starting the UI.
package app
