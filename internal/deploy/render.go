package deploy

import (
	"strings"
	"time"

	"github.com/buildboard/buildboard/internal/github"
	"github.com/buildboard/buildboard/internal/state"
)

const loadingLine = "Loading deployment…"

// UnknownLine is shown whenever the latest resolution failed.
func UnknownLine(repo github.Repo) string {
	return "Deployment: unknown · view repo (" + repo.URL() + ")"
}

// Render produces the footer line for the current snapshot. A failed
// resolution always renders the unknown line, never the stale value.
func Render(snap state.Snapshot[Status], repo github.Repo, now time.Time) string {
	if snap.Failed() {
		return UnknownLine(repo)
	}
	if !snap.HasValue {
		return loadingLine
	}
	status := snap.Value

	var b strings.Builder
	b.WriteString("Last deployment: ")
	if status.DeployedAt != "" {
		b.WriteString(FormatTimeAgo(status.DeployedAt, now))
	} else {
		b.WriteString("unknown")
	}
	b.WriteString(" · Commit ")
	if sha := status.ShortSHA(); sha != "" {
		b.WriteString(sha)
	} else {
		b.WriteString("unknown")
	}
	if status.Source == SourceActions && status.RunURL != "" {
		b.WriteString(" · workflow")
	}
	return b.String()
}
