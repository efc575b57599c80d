package git

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

func (c *Client) open(repoPath string) (*gogit.Repository, error) {
	return gogit.PlainOpenWithOptions(repoPath, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
}

// IsRepository checks if repoPath is inside a Git working tree
func (c *Client) IsRepository(repoPath string) bool {
	repo, err := c.open(repoPath)
	if err != nil {
		c.logger.Debugf("open %s: %v", repoPath, err)
		return false
	}

	// bare repositories have no working tree to deploy from
	if _, err := repo.Worktree(); err != nil {
		c.logger.Debugf("worktree %s: %v", repoPath, err)
		return false
	}
	return true
}

// HasRemote checks if the named remote is configured
func (c *Client) HasRemote(repoPath, remote string) (bool, error) {
	repo, err := c.open(repoPath)
	if err != nil {
		return false, fmt.Errorf("opening repository: %w", err)
	}

	if _, err := repo.Remote(remote); err != nil {
		if errors.Is(err, gogit.ErrRemoteNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("reading remote %s: %w", remote, err)
	}
	return true, nil
}

// RemoteURL returns the first URL of the named remote
func (c *Client) RemoteURL(repoPath, remote string) (string, error) {
	repo, err := c.open(repoPath)
	if err != nil {
		return "", fmt.Errorf("opening repository: %w", err)
	}

	r, err := repo.Remote(remote)
	if err != nil {
		return "", fmt.Errorf("reading remote %s: %w", remote, err)
	}

	urls := r.Config().URLs
	if len(urls) == 0 {
		return "", nil
	}
	return urls[0], nil
}

// CurrentBranch returns the checked out branch name. A branch without
// commits yet is resolved through the symbolic HEAD; a detached HEAD
// returns "".
func (c *Client) CurrentBranch(repoPath string) (string, error) {
	repo, err := c.open(repoPath)
	if err != nil {
		return "", fmt.Errorf("opening repository: %w", err)
	}

	head, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", fmt.Errorf("reading HEAD: %w", err)
	}

	if head.Type() == plumbing.SymbolicReference && head.Target().IsBranch() {
		return head.Target().Short(), nil
	}
	return "", nil
}
