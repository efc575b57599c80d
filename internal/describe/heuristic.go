// Package describe writes commit messages for a change set.
package describe

import (
	"context"

	"github.com/juparave/smartdeploy/internal/commitmsg"
	"github.com/juparave/smartdeploy/internal/domain"
)

// Heuristic derives the message from paths and statuses alone
type Heuristic struct{}

// Describe implements the app describer
func (Heuristic) Describe(_ context.Context, changes []domain.ChangeRecord, _ domain.DiffStat) (string, error) {
	return commitmsg.Generate(changes), nil
}
