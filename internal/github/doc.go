// Package github is a minimal, unauthenticated client for the public GitHub
// REST API. It reads only what the deployment footer needs: the latest
// successful Actions run, repository metadata and the newest commit on a
// branch.
//
// Any response other than 200, including rate limiting, is returned as
// *StatusError.
package github
