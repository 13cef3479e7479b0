package ingest

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	reRepoURL   = regexp.MustCompile(`^(?:https?://)?(?:www\.)?github\.com/([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+?)(?:\.git)?/?$`)
	reOwnerRepo = regexp.MustCompile(`^([A-Za-z0-9_-][A-Za-z0-9_.-]*)/([A-Za-z0-9_.-]+?)(?:\.git)?/?$`)
)

// Identity is the normalized (owner, repo) pair naming a remote repository.
// It is the cache key: URLs differing only by scheme, trailing ".git" or a
// trailing slash normalize to the same Identity.
type Identity struct {
	Owner string
	Repo  string
}

func (id Identity) String() string { return id.Owner + "/" + id.Repo }

// ParseIdentity derives an Identity from a GitHub repository URL or a bare
// "owner/repo" string. Anything else is rejected with KindInvalidIdentity
// before any fetch happens.
func ParseIdentity(raw string) (Identity, error) {
	trimmed := strings.TrimSpace(raw)
	if m := reRepoURL.FindStringSubmatch(trimmed); m != nil {
		return Identity{Owner: m[1], Repo: m[2]}, nil
	}
	// Bare owner/repo shorthand, but not a mangled URL.
	if !strings.Contains(trimmed, "github.com") && !strings.Contains(trimmed, "://") {
		if m := reOwnerRepo.FindStringSubmatch(trimmed); m != nil {
			return Identity{Owner: m[1], Repo: m[2]}, nil
		}
	}
	return Identity{}, &Error{
		Kind: KindInvalidIdentity,
		Msg:  fmt.Sprintf("not a GitHub repository URL: %q", raw),
	}
}
