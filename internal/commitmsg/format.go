package commitmsg

import (
	"strings"

	"github.com/juparave/smartdeploy/internal/domain"
)

const (
	// MaxLength is the longest subject line Format will produce
	MaxLength = 72
	// Ellipsis marks a truncated message
	Ellipsis = "..."

	// FallbackMessage is used when there are no changes to describe
	FallbackMessage = "chore: atualização geral do projeto"
)

var actions = map[domain.Verb]string{
	domain.VerbUpdate: "atualiza",
	domain.VerbAdd:    "adiciona",
	domain.VerbRemove: "remove",
	domain.VerbRename: "renomeia",
}

const defaultAction = "modifica"

// Action returns the verb phrase used in the message for v
func Action(v domain.Verb) string {
	if a, ok := actions[v]; ok {
		return a
	}
	return defaultAction
}

// Format renders a summary as "{category}: {action} {files}[ + {secondary}]",
// truncated to MaxLength characters
func Format(s Summary) string {
	var sb strings.Builder
	sb.WriteString(s.Category)
	sb.WriteString(": ")
	sb.WriteString(Action(s.Verb))
	sb.WriteString(" ")
	sb.WriteString(s.Files)

	if len(s.Secondary) > 0 {
		sb.WriteString(" + ")
		sb.WriteString(strings.Join(s.Secondary, ", "))
	}

	return Truncate(sb.String())
}

// Truncate cuts msg to MaxLength characters. Longer messages keep their
// first MaxLength-len(Ellipsis) characters followed by Ellipsis; the cut is
// not word aware.
func Truncate(msg string) string {
	runes := []rune(msg)
	if len(runes) <= MaxLength {
		return msg
	}
	return string(runes[:MaxLength-len(Ellipsis)]) + Ellipsis
}

// Generate synthesizes a commit message for records
func Generate(records []domain.ChangeRecord) string {
	if len(records) == 0 {
		return FallbackMessage
	}
	return Format(Aggregate(records))
}
