package ui

import (
	"strings"
)

const marqueeGap = "   ✦   "

// scroll returns a width-wide window of text repeated end to end, shifted
// by offset runes. Negative offsets scroll to the right.
func scroll(text string, width, offset int) string {
	if width <= 0 || text == "" {
		return ""
	}
	unit := []rune(text + marqueeGap)
	n := len(unit)
	start := offset % n
	if start < 0 {
		start += n
	}
	out := make([]rune, width)
	for i := range out {
		out[i] = unit[(start+i)%n]
	}
	return string(out)
}

// bounce places text at a position that travels back and forth across width.
func bounce(text string, width, frame int) string {
	runes := []rune(text)
	if width <= len(runes) {
		return truncateMiddle(text, width)
	}
	span := width - len(runes)
	pos := frame % (2 * span)
	if pos > span {
		pos = 2*span - pos
	}
	return strings.Repeat(" ", pos) + text + strings.Repeat(" ", span-pos)
}

func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	keep := limit - 1 // room for ellipsis rune
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + "…" + string(runes[len(runes)-suffix:])
}
