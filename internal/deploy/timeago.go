package deploy

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

const unknownTime = "unknown time"

// Each bucket reports the largest whole unit, floored.
var relMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Second, Format: "%d seconds %s", DivBy: time.Second},
	{D: 2 * time.Second, Format: "1 second %s", DivBy: 1},
	{D: time.Minute, Format: "%d seconds %s", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "1 minute %s", DivBy: 1},
	{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "1 hour %s", DivBy: 1},
	{D: 24 * time.Hour, Format: "%d hours %s", DivBy: time.Hour},
	{D: 48 * time.Hour, Format: "1 day %s", DivBy: 1},
	{D: math.MaxInt64, Format: "%d days %s", DivBy: 24 * time.Hour},
}

// FormatTimeAgo renders an ISO-8601 timestamp relative to now, e.g.
// "3 hours ago". Empty or unparseable input yields "unknown time"; times in
// the future read as "0 seconds ago".
func FormatTimeAgo(iso string, now time.Time) string {
	if iso == "" {
		return unknownTime
	}
	then, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return unknownTime
	}
	if then.After(now) {
		then = now
	}
	return humanize.CustomRelTime(then, now, "ago", "from now", relMagnitudes)
}
