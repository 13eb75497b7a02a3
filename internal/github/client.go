package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultAPIBaseURL = "https://api.github.com"
	defaultUserAgent  = "buildboard/0.1"
	requestTimeout    = 10 * time.Second
)

// StatusError reports a non-200 response, including rate limiting.
type StatusError struct {
	Path   string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github %s returned status %d", e.Path, e.Status)
}

// Client is an unauthenticated, read-only GitHub REST client.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// NewClient builds a client against baseURL; empty uses api.github.com.
func NewClient(baseURL string) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultAPIBaseURL
	}
	base, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse github url %q: %w", baseURL, err)
	}
	base.Path = strings.TrimRight(base.Path, "/")
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
	}, nil
}

// LatestSuccessfulRun returns the most recent successful Actions run, or nil
// when the repository has none.
func (c *Client) LatestSuccessfulRun(ctx context.Context, repo Repo) (*WorkflowRun, error) {
	query := url.Values{}
	query.Set("status", "success")
	query.Set("per_page", "1")
	var payload workflowRunsResponse
	if err := c.get(ctx, repoPath(repo, "actions", "runs"), query, &payload); err != nil {
		return nil, err
	}
	if len(payload.WorkflowRuns) == 0 {
		return nil, nil
	}
	run := payload.WorkflowRuns[0]
	return &run, nil
}

// Repository returns repository metadata.
func (c *Client) Repository(ctx context.Context, repo Repo) (Repository, error) {
	var payload Repository
	if err := c.get(ctx, repoPath(repo), nil, &payload); err != nil {
		return Repository{}, err
	}
	return payload, nil
}

// LatestCommit returns the newest commit on branch, or nil when the listing is
// empty.
func (c *Client) LatestCommit(ctx context.Context, repo Repo, branch string) (*Commit, error) {
	query := url.Values{}
	query.Set("sha", branch)
	query.Set("per_page", "1")
	var payload []Commit
	if err := c.get(ctx, repoPath(repo, "commits"), query, &payload); err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, nil
	}
	commit := payload[0]
	return &commit, nil
}

func repoPath(repo Repo, parts ...string) string {
	segments := append([]string{"repos", url.PathEscape(repo.Owner), url.PathEscape(repo.Name)}, parts...)
	return "/" + strings.Join(segments, "/")
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	reqURL := c.baseURL.JoinPath(path)
	if query != nil {
		reqURL.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Path: path, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
