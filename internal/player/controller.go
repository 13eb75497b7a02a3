package player

import "fmt"

// State is the playback phase of the landing widget.
type State int

const (
	// Waiting is the mount-time placeholder shown for a single frame.
	Waiting State = iota
	// Idle shows the call to action.
	Idle
	// Playing loops the clip and shows the marquee and signup surface.
	Playing
)

func (s State) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Audio is the element the controller drives. Implementations must tolerate
// calls in any order.
type Audio interface {
	Play() error
	Pause()
	Rewind()
	SetLoop(loop bool)
	SetMuted(muted bool)
	Close() error
}

// Controller owns the playback state. It is not safe for concurrent use; the
// UI calls it from its update loop.
type Controller struct {
	audio    Audio
	state    State
	muted    bool
	projects int
}

// NewController returns a controller in the Waiting state. A nil audio uses
// NopAudio.
func NewController(audio Audio) *Controller {
	if audio == nil {
		audio = NopAudio{}
	}
	return &Controller{audio: audio}
}

// State returns the current phase.
func (c *Controller) State() State { return c.state }

// Muted reports the mute flag.
func (c *Controller) Muted() bool { return c.muted }

// ProjectsShipped returns how many times NextProject was pressed.
func (c *Controller) ProjectsShipped() int { return c.projects }

// Mount ends the Waiting phase.
func (c *Controller) Mount() {
	if c.state == Waiting {
		c.state = Idle
	}
}

// Start begins looped playback. It is a no-op unless Idle. The state moves to
// Playing even when the audio fails to start; the error is returned for logging.
func (c *Controller) Start() error {
	if c.state != Idle {
		return nil
	}
	c.state = Playing
	c.audio.SetMuted(c.muted)
	c.audio.SetLoop(true)
	if err := c.audio.Play(); err != nil {
		return fmt.Errorf("start playback: %w", err)
	}
	return nil
}

// Stop pauses and rewinds playback and returns to Idle.
func (c *Controller) Stop() {
	if c.state != Playing {
		return
	}
	c.state = Idle
	c.audio.Pause()
	c.audio.Rewind()
}

// ToggleMute flips the mute flag in any state and returns the new value.
func (c *Controller) ToggleMute() bool {
	c.muted = !c.muted
	c.audio.SetMuted(c.muted)
	return c.muted
}

// NextProject bumps the shipped counter and restarts the clip from the top
// without leaving Playing.
func (c *Controller) NextProject() error {
	if c.state != Playing {
		return nil
	}
	c.projects++
	c.audio.Rewind()
	if err := c.audio.Play(); err != nil {
		return fmt.Errorf("restart playback: %w", err)
	}
	return nil
}

// ClaimEarly stops playback before the visitor is sent to the signup guide.
func (c *Controller) ClaimEarly() {
	c.Stop()
}

// Close releases the audio element.
func (c *Controller) Close() error {
	return c.audio.Close()
}
