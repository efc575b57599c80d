package domain

import "strings"

// Status is the normalized state of one changed path
type Status string

const (
	StatusAdded     Status = "added"
	StatusModified  Status = "modified"
	StatusDeleted   Status = "deleted"
	StatusRenamed   Status = "renamed"
	StatusCopied    Status = "copied"
	StatusUntracked Status = "untracked"
)

// statusCodes maps the porcelain status letter to a Status
var statusCodes = map[byte]Status{
	'M': StatusModified,
	'A': StatusAdded,
	'D': StatusDeleted,
	'R': StatusRenamed,
	'C': StatusCopied,
	'?': StatusUntracked,
}

// ParseStatusCode converts a two-letter porcelain code ("M ", " M", "??", "R ")
// into a Status. The first non-blank letter decides; unknown codes are Modified.
func ParseStatusCode(code string) Status {
	code = strings.TrimSpace(code)
	if code == "" {
		return StatusModified
	}
	if s, ok := statusCodes[code[0]]; ok {
		return s
	}
	return StatusModified
}

// Verb describes what happened to a file in commit-message terms
type Verb string

const (
	VerbUpdate Verb = "update"
	VerbAdd    Verb = "add"
	VerbRemove Verb = "remove"
	VerbRename Verb = "rename"
	VerbCopy   Verb = "copy"
)

var statusVerbs = map[Status]Verb{
	StatusModified:  VerbUpdate,
	StatusAdded:     VerbAdd,
	StatusDeleted:   VerbRemove,
	StatusRenamed:   VerbRename,
	StatusCopied:    VerbCopy,
	StatusUntracked: VerbAdd,
}

// Verb returns the commit verb for the status, VerbUpdate when unmapped
func (s Status) Verb() Verb {
	if v, ok := statusVerbs[s]; ok {
		return v
	}
	return VerbUpdate
}

// IsNew reports whether the path did not exist in the last commit
func (s Status) IsNew() bool {
	return s == StatusAdded || s == StatusUntracked
}

// ChangeRecord is one changed path as reported by the VCS.
// For renames Path is the destination.
type ChangeRecord struct {
	Status Status
	Path   string
}

// ClassifiedChange is a ChangeRecord after classification
type ClassifiedChange struct {
	Path     string
	Category string
	Label    string
	Verb     Verb
}
