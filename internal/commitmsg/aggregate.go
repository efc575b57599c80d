package commitmsg

import (
	"fmt"
	"strings"

	"github.com/juparave/smartdeploy/internal/domain"
)

const (
	// maxListedFiles is how many file names the summary spells out
	maxListedFiles = 3
	// maxSecondary is how many non-dominant categories are mentioned
	maxSecondary = 2
)

// Summary is the aggregated view of a change set
type Summary struct {
	Category  string
	Files     string
	Verb      domain.Verb
	Secondary []string
}

// group holds the changes of one category in record order
type group struct {
	category string
	changes  []domain.ClassifiedChange
}

// ClassifyAll classifies every record, keeping record order
func ClassifyAll(records []domain.ChangeRecord) []domain.ClassifiedChange {
	out := make([]domain.ClassifiedChange, 0, len(records))
	for _, r := range records {
		category, label := Classify(r.Path)
		out = append(out, domain.ClassifiedChange{
			Path:     r.Path,
			Category: category,
			Label:    label,
			Verb:     r.Status.Verb(),
		})
	}
	return out
}

// Aggregate groups records by category and picks the dominant theme.
// Ties between categories and between verbs go to whichever was seen first
// in record order. An empty input yields the zero Summary.
func Aggregate(records []domain.ChangeRecord) Summary {
	if len(records) == 0 {
		return Summary{}
	}
	groups := groupByCategory(ClassifyAll(records))

	dominant := groups[0]
	for _, g := range groups[1:] {
		if len(g.changes) > len(dominant.changes) {
			dominant = g
		}
	}

	var secondary []string
	for _, g := range groups {
		if g.category == dominant.category {
			continue
		}
		if len(secondary) == maxSecondary {
			break
		}
		secondary = append(secondary, fmt.Sprintf("%d %s", len(g.changes), g.changes[0].Label))
	}

	return Summary{
		Category:  dominant.category,
		Files:     fileSummary(dominant.changes),
		Verb:      dominantVerb(dominant.changes),
		Secondary: secondary,
	}
}

// groupByCategory groups changes preserving first-seen category order
func groupByCategory(changes []domain.ClassifiedChange) []*group {
	var groups []*group
	index := make(map[string]*group)

	for _, c := range changes {
		g, ok := index[c.Category]
		if !ok {
			g = &group{category: c.Category}
			index[c.Category] = g
			groups = append(groups, g)
		}
		g.changes = append(g.changes, c)
	}

	return groups
}

func fileSummary(changes []domain.ClassifiedChange) string {
	n := min(len(changes), maxListedFiles)

	names := make([]string, 0, n)
	for _, c := range changes[:n] {
		names = append(names, baseName(c.Path))
	}

	s := strings.Join(names, ", ")
	if extra := len(changes) - maxListedFiles; extra > 0 {
		s += fmt.Sprintf(" e mais %d", extra)
	}
	return s
}

func dominantVerb(changes []domain.ClassifiedChange) domain.Verb {
	var order []domain.Verb
	counts := make(map[domain.Verb]int)

	for _, c := range changes {
		if counts[c.Verb] == 0 {
			order = append(order, c.Verb)
		}
		counts[c.Verb]++
	}

	best := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best
}
