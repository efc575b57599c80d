package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/juparave/smartdeploy/internal/diff"
	"github.com/juparave/smartdeploy/internal/domain"
	"github.com/sirupsen/logrus"
)

// StatusEntry is one line of `git status --porcelain`.
// Path is kept as printed, so renames read "old -> new".
type StatusEntry struct {
	Code string
	Path string
}

// Client interacts with a Git working tree
type Client struct {
	logger *logrus.Logger
	stdout io.Writer
	stderr io.Writer
}

// NewClient creates a new Git client. Push progress is streamed to the
// process stdout and stderr.
func NewClient(logger *logrus.Logger) *Client {
	return &Client{
		logger: logger,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// SetOutput redirects streamed command output
func (c *Client) SetOutput(stdout, stderr io.Writer) {
	c.stdout = stdout
	c.stderr = stderr
}

// Status returns staged, unstaged and untracked changes in git's order
func (c *Client) Status(ctx context.Context, repoPath string) ([]StatusEntry, error) {
	output, err := c.output(ctx, repoPath, "status", "--porcelain", "--untracked-files=all")
	if err != nil {
		return nil, fmt.Errorf("git status failed: %w", err)
	}

	return ParseStatus(output), nil
}

// ParseStatus parses porcelain v1 status output
func ParseStatus(output string) []StatusEntry {
	var entries []StatusEntry

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		// Format: "XY path" where X is the index state and Y the worktree state
		if len(line) < 4 {
			continue
		}

		entries = append(entries, StatusEntry{
			Code: line[:2],
			Path: line[3:],
		})
	}

	return entries
}

// DiffStat returns the line totals of the pending changes. Repositories
// without a HEAD commit fall back to the staged diff.
func (c *Client) DiffStat(ctx context.Context, repoPath string) (domain.DiffStat, error) {
	output, err := c.output(ctx, repoPath, "diff", "HEAD", "--shortstat")
	if err == nil && strings.TrimSpace(output) != "" {
		return diff.ParseShortStat(output), nil
	}
	if err != nil {
		c.logger.Debugf("git diff HEAD failed, trying staged diff: %v", err)
	}

	output, err = c.output(ctx, repoPath, "diff", "--cached", "--shortstat")
	if err != nil {
		return domain.DiffStat{}, fmt.Errorf("git diff --shortstat failed: %w", err)
	}

	return diff.ParseShortStat(output), nil
}

// StageAll stages every change in the working tree
func (c *Client) StageAll(ctx context.Context, repoPath string) error {
	if _, err := c.output(ctx, repoPath, "add", "--all"); err != nil {
		return fmt.Errorf("git add failed: %w", err)
	}
	return nil
}

// Commit records the staged changes with message
func (c *Client) Commit(ctx context.Context, repoPath, message string) error {
	if _, err := c.output(ctx, repoPath, "commit", "-m", message); err != nil {
		return fmt.Errorf("git commit failed: %w", err)
	}
	return nil
}

// Push publishes the current branch to its upstream
func (c *Client) Push(ctx context.Context, repoPath string) error {
	if err := c.stream(ctx, repoPath, "push"); err != nil {
		return fmt.Errorf("git push failed: %w", err)
	}
	return nil
}

// PushSetUpstream publishes branch to remote and records it as upstream
func (c *Client) PushSetUpstream(ctx context.Context, repoPath, remote, branch string) error {
	if err := c.stream(ctx, repoPath, "push", "--set-upstream", remote, branch); err != nil {
		return fmt.Errorf("git push --set-upstream failed: %w", err)
	}
	return nil
}

func (c *Client) output(ctx context.Context, repoPath string, args ...string) (string, error) {
	c.logger.WithField("dir", repoPath).Debugf("git %s", strings.Join(args, " "))

	// #nosec G204 -- arguments are fixed subcommands plus the generated message
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = repoPath

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if stderr := strings.TrimSpace(string(exitErr.Stderr)); stderr != "" {
				return "", fmt.Errorf("%w: %s", err, stderr)
			}
		}
		return "", err
	}

	return string(output), nil
}

func (c *Client) stream(ctx context.Context, repoPath string, args ...string) error {
	c.logger.WithField("dir", repoPath).Debugf("git %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = repoPath
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr

	return cmd.Run()
}
