package domain

import "fmt"

// DiffStat is the line summary of the pending changes
type DiffStat struct {
	Added   int
	Deleted int
}

// IsZero returns true if no line changes were reported
func (d DiffStat) IsZero() bool {
	return d.Added == 0 && d.Deleted == 0
}

func (d DiffStat) String() string {
	return fmt.Sprintf("+%d -%d", d.Added, d.Deleted)
}
