package github

import (
	"regexp"
	"strings"

	"github.com/ursisterbtw/gh-analyzer/pkg/errors"
)

// Regex patterns for GitHub resource validation.
var (
	// GitHub usernames/orgs: 1-39 alphanumeric or hyphen, not starting with hyphen
	validOwner = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	// GitHub repo names: 1-100 alphanumeric, hyphen, underscore, or dot
	validRepo = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)
)

// RepoRef identifies a repository by owner and name.
type RepoRef struct {
	Owner string
	Name  string
}

// String returns the "owner/name" path.
func (r RepoRef) String() string { return r.Owner + "/" + r.Name }

// ValidateOwner validates a GitHub username or organization name.
func ValidateOwner(owner string) error {
	if owner == "" {
		return errors.New(errors.ErrCodeInvalidInput, "owner is required")
	}
	if !validOwner.MatchString(owner) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid owner format: must be 1-39 alphanumeric characters or hyphens, cannot start with hyphen")
	}
	return nil
}

// ValidateRepo validates a GitHub repository name.
func ValidateRepo(repo string) error {
	if repo == "" {
		return errors.New(errors.ErrCodeInvalidInput, "repo is required")
	}
	if repo == "." || repo == ".." || !validRepo.MatchString(repo) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid repo format: must be 1-100 alphanumeric characters, hyphens, underscores, or dots")
	}
	return nil
}

// ParseRepoRef parses an "owner/name" string and validates both parts.
// A trailing ".git" suffix is tolerated.
func ParseRepoRef(ref string) (RepoRef, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(ref), "/")
	if !ok {
		return RepoRef{}, errors.New(errors.ErrCodeInvalidInput, "invalid repo format %q: use owner/name", ref)
	}
	name = strings.TrimSuffix(name, ".git")
	if err := ValidateOwner(owner); err != nil {
		return RepoRef{}, err
	}
	if err := ValidateRepo(name); err != nil {
		return RepoRef{}, err
	}
	return RepoRef{Owner: owner, Name: name}, nil
}
