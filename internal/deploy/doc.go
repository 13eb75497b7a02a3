// Package deploy resolves the "last deployment" footer line from GitHub.
//
// Resolution is an ordered chain of strategies. The latest successful Actions
// run is tried first; when the repository has none, or the lookup fails, the
// newest commit on the default branch is used instead. Only when every step
// comes up empty does Resolve return ErrUnresolved, and Render then prints
// the explicit unknown line rather than a stale result.
package deploy
