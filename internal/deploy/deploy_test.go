package deploy

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/buildboard/buildboard/internal/github"
	"github.com/buildboard/buildboard/internal/state"
)

var testRepo = github.Repo{Owner: "dhamariT", Name: "buildboard"}

type fakeGitHub struct {
	run       *github.WorkflowRun
	runErr    error
	repo      github.Repository
	repoErr   error
	commit    *github.Commit
	commitErr error

	gotBranch string
}

func (f *fakeGitHub) LatestSuccessfulRun(context.Context, github.Repo) (*github.WorkflowRun, error) {
	return f.run, f.runErr
}

func (f *fakeGitHub) Repository(context.Context, github.Repo) (github.Repository, error) {
	return f.repo, f.repoErr
}

func (f *fakeGitHub) LatestCommit(_ context.Context, _ github.Repo, branch string) (*github.Commit, error) {
	f.gotBranch = branch
	return f.commit, f.commitErr
}

func TestResolvePrefersActionsRun(t *testing.T) {
	gh := &fakeGitHub{run: &github.WorkflowRun{
		HeadSHA:   "abc123def456",
		HTMLURL:   "https://github.com/dhamariT/buildboard/actions/runs/1",
		CreatedAt: "2024-01-01T00:00:00Z",
		UpdatedAt: "2024-01-01T00:05:00Z",
	}}
	status, err := NewResolver(gh, testRepo, nil).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if status.Source != SourceActions {
		t.Fatalf("Source = %q, want %q", status.Source, SourceActions)
	}
	if !strings.HasSuffix(status.CommitURL, "/commit/abc123def456") {
		t.Fatalf("CommitURL = %q", status.CommitURL)
	}
	if status.DeployedAt != "2024-01-01T00:05:00Z" {
		t.Fatalf("DeployedAt = %q, want updated_at", status.DeployedAt)
	}
	if got := status.ShortSHA(); got != "abc123d" {
		t.Fatalf("ShortSHA() = %q, want %q", got, "abc123d")
	}
}

func TestResolveFallsBackToCommit(t *testing.T) {
	gh := &fakeGitHub{
		repo: github.Repository{DefaultBranch: "trunk"},
		commit: &github.Commit{
			SHA: "fedcba987654",
			Commit: github.CommitDetail{
				Author:    &github.Signature{Date: "2024-01-01T00:00:00Z"},
				Committer: &github.Signature{Date: "2024-01-02T00:00:00Z"},
			},
		},
	}
	status, err := NewResolver(gh, testRepo, nil).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if status.Source != SourceCommit {
		t.Fatalf("Source = %q, want %q", status.Source, SourceCommit)
	}
	if status.DeployedAt != "2024-01-02T00:00:00Z" {
		t.Fatalf("DeployedAt = %q, want committer date", status.DeployedAt)
	}
	if gh.gotBranch != "trunk" {
		t.Fatalf("branch = %q, want %q", gh.gotBranch, "trunk")
	}
	if status.RunURL != testRepo.URL() {
		t.Fatalf("RunURL = %q, want repo root", status.RunURL)
	}
}

func TestCommitStrategyDefaultsToMain(t *testing.T) {
	gh := &fakeGitHub{
		runErr:  errors.New("rate limited"),
		repoErr: errors.New("rate limited"),
		commit:  &github.Commit{SHA: "0123456789"},
	}
	status, err := NewResolver(gh, testRepo, nil).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if gh.gotBranch != "main" {
		t.Fatalf("branch = %q, want %q", gh.gotBranch, "main")
	}
	if status.Source != SourceCommit {
		t.Fatalf("Source = %q, want %q", status.Source, SourceCommit)
	}
}

func TestResolveAllFailing(t *testing.T) {
	runErr := errors.New("runs unavailable")
	commitErr := &github.StatusError{Path: "/commits", Status: 403}
	gh := &fakeGitHub{runErr: runErr, repoErr: errors.New("repo unavailable"), commitErr: commitErr}

	_, err := NewResolver(gh, testRepo, nil).Resolve(context.Background())
	if !errors.Is(err, ErrUnresolved) {
		t.Fatalf("error = %v, want ErrUnresolved", err)
	}
	if !errors.Is(err, runErr) {
		t.Fatalf("error = %v, want to wrap runs failure", err)
	}
	var statusErr *github.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want to wrap *github.StatusError", err)
	}

	var cache state.Cache[Status]
	cache.Set(Status{CommitSHA: "stale"})
	cache.Update(Status{}, err)
	want := "Deployment: unknown · view repo (https://github.com/dhamariT/buildboard)"
	if got := Render(cache.Snapshot(), testRepo, time.Now()); got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestFormatTimeAgo(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	iso := func(d time.Duration) string { return now.Add(-d).Format(time.RFC3339) }

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: "unknown time"},
		{name: "garbage", in: "yesterday", want: "unknown time"},
		{name: "now", in: iso(0), want: "0 seconds ago"},
		{name: "one second", in: iso(time.Second), want: "1 second ago"},
		{name: "seconds", in: iso(45 * time.Second), want: "45 seconds ago"},
		{name: "ninety seconds", in: iso(90 * time.Second), want: "1 minute ago"},
		{name: "minutes", in: iso(59 * time.Minute), want: "59 minutes ago"},
		{name: "one hour", in: iso(61 * time.Minute), want: "1 hour ago"},
		{name: "hours", in: iso(23 * time.Hour), want: "23 hours ago"},
		{name: "twenty five hours", in: iso(25 * time.Hour), want: "1 day ago"},
		{name: "days", in: iso(75 * time.Hour), want: "3 days ago"},
		{name: "future", in: now.Add(time.Hour).Format(time.RFC3339), want: "0 seconds ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimeAgo(tt.in, now); got != tt.want {
				t.Fatalf("FormatTimeAgo(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	var cache state.Cache[Status]
	if got := Render(cache.Snapshot(), testRepo, now); got != "Loading deployment…" {
		t.Fatalf("Render(empty) = %q", got)
	}

	cache.Set(Status{
		CommitSHA:  "abc123def456",
		DeployedAt: "2025-01-10T09:00:00Z",
		RunURL:     "https://github.com/dhamariT/buildboard/actions/runs/1",
		Source:     SourceActions,
	})
	want := "Last deployment: 3 hours ago · Commit abc123d · workflow"
	if got := Render(cache.Snapshot(), testRepo, now); got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}

	cache.Set(Status{Source: SourceCommit, RunURL: testRepo.URL()})
	want = "Last deployment: unknown · Commit unknown"
	if got := Render(cache.Snapshot(), testRepo, now); got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}
