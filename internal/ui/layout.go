package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops labels.
	LayoutCompactWidth = 60

	// LayoutLogoWidth is the minimum width to show the figlet logo.
	LayoutLogoWidth = 70

	// LayoutContentWidth caps centered text blocks.
	LayoutContentWidth = 60

	// LayoutFormWidth is the width of the signup box.
	LayoutFormWidth = 48
)

// Timing constants.
const (
	// FrameInterval drives marquee animation and redraws of polled data.
	FrameInterval = 120 * time.Millisecond

	// DefaultAbandonDelay is how long an empty, unfocused email field
	// survives before the button comes back.
	DefaultAbandonDelay = 200 * time.Millisecond
)
