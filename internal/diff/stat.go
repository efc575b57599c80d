// Package diff parses git diff summaries.
package diff

import (
	"strconv"
	"strings"

	"github.com/juparave/smartdeploy/internal/domain"
)

// ParseShortStat parses `git diff --shortstat` output, e.g.
// " 3 files changed, 10 insertions(+), 2 deletions(-)".
// Missing or malformed parts count as zero.
func ParseShortStat(output string) domain.DiffStat {
	var stat domain.DiffStat

	for _, part := range strings.Split(strings.TrimSpace(output), ",") {
		fields := strings.Fields(part)
		if len(fields) < 2 {
			continue
		}

		n, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}

		switch {
		case strings.HasPrefix(fields[1], "insertion"):
			stat.Added = n
		case strings.HasPrefix(fields[1], "deletion"):
			stat.Deleted = n
		}
	}

	return stat
}
