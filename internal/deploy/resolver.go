package deploy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/buildboard/buildboard/internal/github"
)

// ErrUnresolved is returned when no strategy produced a status.
var ErrUnresolved = errors.New("deployment status unresolved")

// Resolver walks its strategies in order; the first one with a result wins.
type Resolver struct {
	Strategies []Strategy
	Logger     *slog.Logger
}

// NewResolver returns the standard chain: Actions run, then latest commit.
func NewResolver(client GitHub, repo github.Repo, logger *slog.Logger) *Resolver {
	return &Resolver{
		Strategies: []Strategy{
			ActionsStrategy{Client: client, Repo: repo},
			CommitStrategy{Client: client, Repo: repo},
		},
		Logger: logger,
	}
}

// Resolve returns the first available status or an error wrapping
// ErrUnresolved and the causes of every failed step.
func (r *Resolver) Resolve(ctx context.Context) (Status, error) {
	var errs []error
	for _, strategy := range r.Strategies {
		status, ok, err := strategy.Resolve(ctx)
		if err != nil {
			r.logger().Debug("deployment strategy failed", "strategy", strategy.Name(), "error", err)
			errs = append(errs, err)
			continue
		}
		if ok {
			return status, nil
		}
	}
	if len(errs) == 0 {
		return Status{}, ErrUnresolved
	}
	return Status{}, fmt.Errorf("%w: %w", ErrUnresolved, errors.Join(errs...))
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}
