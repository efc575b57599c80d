package domain

import (
	"fmt"
	"strings"
)

// GitHubRepo identifies a repository hosted on github.com
type GitHubRepo struct {
	Owner string
	Name  string
}

// ParseGitHubRemote extracts owner and repository from a github.com remote URL.
// Both https://github.com/owner/repo(.git) and git@github.com:owner/repo(.git)
// are understood.
func ParseGitHubRemote(url string) (GitHubRepo, bool) {
	url = strings.TrimSpace(url)

	var rest string
	switch {
	case strings.HasPrefix(url, "git@github.com:"):
		rest = strings.TrimPrefix(url, "git@github.com:")
	case strings.Contains(url, "github.com/"):
		rest = url[strings.Index(url, "github.com/")+len("github.com/"):]
	default:
		return GitHubRepo{}, false
	}

	rest = strings.TrimSuffix(strings.TrimSuffix(rest, "/"), ".git")
	parts := strings.Split(rest, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return GitHubRepo{}, false
	}

	return GitHubRepo{Owner: parts[0], Name: parts[1]}, true
}

// URL returns the repository web URL
func (r GitHubRepo) URL() string {
	return fmt.Sprintf("https://github.com/%s/%s", r.Owner, r.Name)
}

// PagesURL returns the GitHub Pages URL for the repository
func (r GitHubRepo) PagesURL() string {
	return fmt.Sprintf("https://%s.github.io/%s", r.Owner, r.Name)
}
