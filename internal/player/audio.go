package player

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync"
)

// NopAudio is a silent Audio used when no clip or player is available.
type NopAudio struct{}

func (NopAudio) Play() error   { return nil }
func (NopAudio) Pause()        {}
func (NopAudio) Rewind()       {}
func (NopAudio) SetLoop(bool)  {}
func (NopAudio) SetMuted(bool) {}
func (NopAudio) Close() error  { return nil }

// ErrNoClip is returned when the configured clip does not exist.
var ErrNoClip = errors.New("audio clip not found")

// ProcessAudio plays a clip through an external player binary (ffplay by
// default). The process is restarted whenever loop or mute settings change;
// position is not tracked, so any restart begins at the top of the clip.
type ProcessAudio struct {
	Binary string
	File   string

	mu      sync.Mutex
	process *exec.Cmd
	loop    bool
	muted   bool
	playing bool
	run     int

	// command builds the process; replaced in tests.
	command func(name string, args ...string) *exec.Cmd
}

// NewProcessAudio returns a ProcessAudio, or NopAudio when binary or file is
// unavailable.
func NewProcessAudio(binary, file string) (Audio, error) {
	if file == "" {
		return NopAudio{}, nil
	}
	if _, err := os.Stat(file); err != nil {
		return NopAudio{}, fmt.Errorf("%w: %s", ErrNoClip, file)
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return NopAudio{}, fmt.Errorf("find audio player %q: %w", binary, err)
	}
	return &ProcessAudio{Binary: path, File: file}, nil
}

// Args returns the player arguments for the current settings.
func (a *ProcessAudio) Args() []string {
	loops := "1"
	if a.loop {
		loops = "0"
	}
	volume := 100
	if a.muted {
		volume = 0
	}
	return []string{
		"-nodisp",
		"-autoexit",
		"-loglevel", "quiet",
		"-loop", loops,
		"-volume", strconv.Itoa(volume),
		a.File,
	}
}

// Play starts (or restarts) the player process.
func (a *ProcessAudio) Play() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.playing = true
	return a.restartLocked()
}

// Pause stops the player process.
func (a *ProcessAudio) Pause() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.playing = false
	a.killLocked()
}

// Rewind restarts from the top if currently playing.
func (a *ProcessAudio) Rewind() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.playing {
		_ = a.restartLocked()
	}
}

// SetLoop records the loop flag; it takes effect on the next start.
func (a *ProcessAudio) SetLoop(loop bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loop = loop
}

// SetMuted applies the mute flag, restarting a playing process.
func (a *ProcessAudio) SetMuted(muted bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.muted == muted {
		return
	}
	a.muted = muted
	if a.playing {
		_ = a.restartLocked()
	}
}

// Close stops playback.
func (a *ProcessAudio) Close() error {
	a.Pause()
	return nil
}

func (a *ProcessAudio) restartLocked() error {
	a.killLocked()
	build := a.command
	if build == nil {
		build = exec.Command
	}
	cmd := build(a.Binary, a.Args()...)
	if err := cmd.Start(); err != nil {
		a.playing = false
		return fmt.Errorf("start %s: %w", a.Binary, err)
	}
	a.process = cmd
	a.run++
	go func() { _ = cmd.Wait() }()
	return nil
}

func (a *ProcessAudio) killLocked() {
	if a.process == nil || a.process.Process == nil {
		a.process = nil
		return
	}
	_ = a.process.Process.Kill()
	a.process = nil
}
