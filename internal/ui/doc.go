// Package ui provides the Bubble Tea terminal interface for BuildBoard.
//
// # Architecture Overview
//
// Model is the root tea.Model. Its Update method is the single event loop:
// every change to the playback controller and the signup state machine
// happens there. Backend calls run as tea.Cmds and report back through
// messages, so the interface stays responsive while a request is in flight.
//
// The count and deployment pollers run in their own goroutines and write into
// state.Cache values. The UI only reads snapshots of those caches when it
// draws a frame.
//
// # Package Structure
//
//   - app.go: Model, Options, messages, commands and Run
//   - input_handlers.go: keyboard and mouse handling, signup transitions
//   - view.go: page rendering (waiting, idle, playing, channel) and footer
//   - header.go: single-line status bar
//   - diagnostics.go: log overlay backed by logtail
//   - help.go: keyboard shortcut overlay
//   - keys.go: key bindings (bubbles/key)
//   - theme.go, style_helpers.go: color themes and lipgloss helpers
//   - layout.go: width thresholds and timing constants
//   - logo.go: figlet wordmark with plain-text fallback
//
// # Pages
//
// The player page follows the playback state. While Waiting it shows a
// one-frame placeholder, while Idle a call to action, and while Playing the
// marquees, the project counter, the early-access form and the live count.
// After verification, or when the visitor chooses to join directly, the
// channel page shows the community link with a copy-to-clipboard action.
//
// # Early-Access Form
//
// Hovering the claim button with the mouse (or pressing c) reveals the email
// field. Leaving an empty field (esc, tab or a click elsewhere) schedules an
// abandon message after a short delay; the machine's token check discards it
// if the visitor came back in the meantime.
//
// # Key Bindings
//
//	enter/click  start playback        s  stop
//	n            next project          m  mute
//	c            claim your spot       C  join the channel
//	d            diagnostics           T  cycle theme
//	h/?          help                  q  quit
package ui
