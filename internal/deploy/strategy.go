package deploy

import (
	"context"
	"fmt"

	"github.com/buildboard/buildboard/internal/github"
)

const fallbackBranch = "main"

// GitHub is the subset of the GitHub client the strategies read from.
type GitHub interface {
	LatestSuccessfulRun(ctx context.Context, repo github.Repo) (*github.WorkflowRun, error)
	Repository(ctx context.Context, repo github.Repo) (github.Repository, error)
	LatestCommit(ctx context.Context, repo github.Repo, branch string) (*github.Commit, error)
}

// Strategy is one step of the resolution chain. ok is false when the step has
// nothing to report; err carries the cause of a failed lookup.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context) (status Status, ok bool, err error)
}

// ActionsStrategy uses the latest successful workflow run as the deployment.
type ActionsStrategy struct {
	Client GitHub
	Repo   github.Repo
}

func (s ActionsStrategy) Name() string { return "actions" }

func (s ActionsStrategy) Resolve(ctx context.Context) (Status, bool, error) {
	run, err := s.Client.LatestSuccessfulRun(ctx, s.Repo)
	if err != nil {
		return Status{}, false, fmt.Errorf("latest workflow run: %w", err)
	}
	if run == nil {
		return Status{}, false, nil
	}
	deployedAt := run.UpdatedAt
	if deployedAt == "" {
		deployedAt = run.CreatedAt
	}
	return Status{
		CommitSHA:  run.HeadSHA,
		CommitURL:  s.Repo.CommitURL(run.HeadSHA),
		DeployedAt: deployedAt,
		RunURL:     run.HTMLURL,
		Source:     SourceActions,
	}, true, nil
}

// CommitStrategy uses the newest commit on the default branch. A failed
// repository lookup falls back to "main".
type CommitStrategy struct {
	Client GitHub
	Repo   github.Repo
}

func (s CommitStrategy) Name() string { return "commit" }

func (s CommitStrategy) Resolve(ctx context.Context) (Status, bool, error) {
	branch := fallbackBranch
	if repo, err := s.Client.Repository(ctx, s.Repo); err == nil && repo.DefaultBranch != "" {
		branch = repo.DefaultBranch
	}

	commit, err := s.Client.LatestCommit(ctx, s.Repo, branch)
	if err != nil {
		return Status{}, false, fmt.Errorf("latest commit on %s: %w", branch, err)
	}
	status := Status{
		CommitURL: s.Repo.CommitURL(""),
		RunURL:    s.Repo.URL(),
		Source:    SourceCommit,
	}
	if commit != nil {
		status.CommitSHA = commit.SHA
		status.CommitURL = s.Repo.CommitURL(commit.SHA)
		status.DeployedAt = commit.Date()
	}
	return status, true, nil
}
