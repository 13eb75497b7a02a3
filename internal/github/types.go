package github

import (
	"fmt"
	"strings"
)

const webBaseURL = "https://github.com"

// Repo identifies a repository as owner/name.
type Repo struct {
	Owner string
	Name  string
}

// ParseRepo parses "owner/name".
func ParseRepo(value string) (Repo, error) {
	owner, name, ok := strings.Cut(strings.Trim(strings.TrimSpace(value), "/"), "/")
	owner, name = strings.TrimSpace(owner), strings.TrimSpace(name)
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repo{}, fmt.Errorf("invalid repository %q, want owner/name", value)
	}
	return Repo{Owner: owner, Name: name}, nil
}

func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}

// URL returns the repository's web address.
func (r Repo) URL() string {
	return webBaseURL + "/" + r.Owner + "/" + r.Name
}

// CommitURL returns the web address of sha, or the repository root when sha
// is empty.
func (r Repo) CommitURL(sha string) string {
	if sha == "" {
		return r.URL()
	}
	return r.URL() + "/commit/" + sha
}

// WorkflowRun is the subset of an Actions run used for deployment status.
type WorkflowRun struct {
	ID         int64  `json:"id"`
	HeadSHA    string `json:"head_sha"`
	HTMLURL    string `json:"html_url"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type workflowRunsResponse struct {
	TotalCount   int           `json:"total_count"`
	WorkflowRuns []WorkflowRun `json:"workflow_runs"`
}

// Repository is the subset of repository metadata used here.
type Repository struct {
	FullName      string `json:"full_name"`
	DefaultBranch string `json:"default_branch"`
	HTMLURL       string `json:"html_url"`
}

// Commit is one entry of the commits listing.
type Commit struct {
	SHA     string       `json:"sha"`
	HTMLURL string       `json:"html_url"`
	Commit  CommitDetail `json:"commit"`
}

// CommitDetail holds the git-level commit metadata.
type CommitDetail struct {
	Message   string     `json:"message"`
	Author    *Signature `json:"author"`
	Committer *Signature `json:"committer"`
}

// Signature is a git author or committer.
type Signature struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Date  string `json:"date"`
}

// Date returns the committer date, falling back to the author date.
func (c Commit) Date() string {
	if c.Commit.Committer != nil && c.Commit.Committer.Date != "" {
		return c.Commit.Committer.Date
	}
	if c.Commit.Author != nil {
		return c.Commit.Author.Date
	}
	return ""
}
