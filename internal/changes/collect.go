// Package changes normalizes VCS status output into change records.
package changes

import (
	"context"
	"strconv"
	"strings"

	"github.com/juparave/smartdeploy/internal/domain"
	apperrors "github.com/juparave/smartdeploy/internal/errors"
	"github.com/juparave/smartdeploy/internal/git"
)

// Source is the VCS query the collector depends on
type Source interface {
	IsRepository(repoPath string) bool
	Status(ctx context.Context, repoPath string) ([]git.StatusEntry, error)
}

const renameArrow = " -> "

// Collect returns the pending changes of the working tree at repoPath in
// VCS order. Renames are keyed by their destination and a path is reported
// at most once.
func Collect(ctx context.Context, src Source, repoPath string) ([]domain.ChangeRecord, error) {
	if !src.IsRepository(repoPath) {
		return nil, apperrors.NewNotARepository(repoPath)
	}

	entries, err := src.Status(ctx, repoPath)
	if err != nil {
		return nil, err
	}

	return Normalize(entries), nil
}

// Normalize converts raw status entries into change records
func Normalize(entries []git.StatusEntry) []domain.ChangeRecord {
	records := make([]domain.ChangeRecord, 0, len(entries))
	seen := make(map[string]bool, len(entries))

	for _, e := range entries {
		status := domain.ParseStatusCode(e.Code)
		p := destination(status, e.Path)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true

		records = append(records, domain.ChangeRecord{
			Status: status,
			Path:   p,
		})
	}

	return records
}

// destination returns the post-change path of a porcelain path field.
// Only renames and copies carry a source path; a quoted source is read
// whole before looking for the arrow.
func destination(status domain.Status, field string) string {
	field = strings.TrimSpace(field)
	if status != domain.StatusRenamed && status != domain.StatusCopied {
		return unquote(field)
	}

	skip := 0
	if strings.HasPrefix(field, `"`) {
		if src, err := strconv.QuotedPrefix(field); err == nil {
			skip = len(src)
		}
	}
	if idx := strings.Index(field[skip:], renameArrow); idx >= 0 {
		field = field[skip+idx+len(renameArrow):]
	}
	return unquote(strings.TrimSpace(field))
}

// unquote undoes git's C-style quoting of unusual path names
func unquote(p string) string {
	if len(p) < 2 || p[0] != '"' || p[len(p)-1] != '"' {
		return p
	}
	if s, err := strconv.Unquote(p); err == nil {
		return s
	}
	return p
}
