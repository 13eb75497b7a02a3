// Package player implements the playback controller for the landing widget.
//
// The Controller moves through Waiting → Idle → Playing and back to Idle.
// Mute is orthogonal to the state. All side effects go through the Audio
// interface; ProcessAudio shells out to a player binary and NopAudio keeps
// the UI working silently when no clip is configured.
package player
