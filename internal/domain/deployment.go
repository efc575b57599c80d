package domain

import "time"

// Deployment represents one run of the publish sequence
type Deployment struct {
	Date        time.Time
	Project     string
	Dir         string
	Message     string
	Changes     []ChangeRecord
	Stat        DiffStat
	Branch      string
	RemoteURL   string
	SetUpstream bool // push needed --set-upstream
	DryRun      bool
}

// FileCount returns the number of changed paths
func (d *Deployment) FileCount() int {
	return len(d.Changes)
}

// HasChanges returns true if there is anything to publish
func (d *Deployment) HasChanges() bool {
	return len(d.Changes) > 0
}

// Filter returns the paths whose status satisfies keep, in VCS order
func (d *Deployment) Filter(keep func(Status) bool) []string {
	var paths []string
	for _, c := range d.Changes {
		if keep(c.Status) {
			paths = append(paths, c.Path)
		}
	}
	return paths
}
