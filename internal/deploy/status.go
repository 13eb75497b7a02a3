package deploy

// Source records which lookup produced a Status.
type Source string

const (
	SourceUnknown Source = ""
	SourceActions Source = "actions"
	SourceCommit  Source = "commit"
)

const shortSHALength = 7

// Status describes the most recent deployment of the repository.
type Status struct {
	CommitSHA  string
	CommitURL  string
	DeployedAt string // ISO-8601 as returned by GitHub
	RunURL     string
	Source     Source
}

// ShortSHA returns the first seven characters of the commit hash.
func (s Status) ShortSHA() string {
	if len(s.CommitSHA) <= shortSHALength {
		return s.CommitSHA
	}
	return s.CommitSHA[:shortSHALength]
}
