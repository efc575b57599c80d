// Package ui prints the operator-facing progress of a deploy.
package ui

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const ruleWidth = 50

var (
	green  = lipgloss.Color("10")
	yellow = lipgloss.Color("11")
	cyan   = lipgloss.Color("14")
	red    = lipgloss.Color("9")
	gray   = lipgloss.Color("8")

	okStyle    = lipgloss.NewStyle().Foreground(green)
	warnStyle  = lipgloss.NewStyle().Foreground(yellow)
	errStyle   = lipgloss.NewStyle().Foreground(red)
	stepStyle  = lipgloss.NewStyle().Foreground(cyan).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(gray)
	boldStyle  = lipgloss.NewStyle().Bold(true)
	titleStyle = lipgloss.NewStyle().Foreground(cyan).Bold(true)
)

// Printer writes styled lines to an output stream
type Printer struct {
	w io.Writer
}

// New creates a Printer writing to w
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) println(s string) {
	fmt.Fprintln(p.w, s)
}

// Println prints an unstyled line
func (p *Printer) Println(s string) {
	p.println(s)
}

// Banner prints the run header
func (p *Printer) Banner(project, dir, when string) {
	bar := strings.Repeat("═", ruleWidth)
	p.println("")
	p.println(titleStyle.Render(bar))
	p.println(titleStyle.Render("  🚀  SMART DEPLOY  —  " + project))
	p.println(titleStyle.Render(bar))
	p.println(mutedStyle.Render("  📁 " + dir))
	p.println(mutedStyle.Render("  🕐 " + when))
	p.println("")
}

// Step announces a stage of the pipeline
func (p *Printer) Step(msg string) {
	p.println("")
	p.println(stepStyle.Render("▶ " + msg))
}

// OK reports a successful stage
func (p *Printer) OK(msg string) {
	p.println(okStyle.Render("  ✅ " + msg))
}

// Warn reports a non fatal condition
func (p *Printer) Warn(msg string) {
	p.println(warnStyle.Render("  ⚠️  " + msg))
}

// Error reports a failure
func (p *Printer) Error(msg string) {
	p.println(errStyle.Render("  ❌ " + msg))
}

// Rule prints a horizontal separator
func (p *Printer) Rule() {
	p.println(mutedStyle.Render(strings.Repeat("─", ruleWidth)))
}

// Muted prints secondary information
func (p *Printer) Muted(msg string) {
	p.println(mutedStyle.Render(msg))
}

// Headline prints an emphasized line
func (p *Printer) Headline(msg string) {
	p.println(boldStyle.Render(msg))
}

// Commit shows the commit message
func (p *Printer) Commit(label, msg string) {
	p.println(fmt.Sprintf("  %s %s", boldStyle.Render(label), warnStyle.Render(msg)))
}

// maxListed is how many names a change line shows
const maxListed = 4

// Changes prints one line of file names, e.g. "+ Novos: a.html, b.css"
func (p *Printer) Changes(kind Kind, paths []string) {
	if len(paths) == 0 {
		return
	}

	names := make([]string, 0, maxListed)
	for _, f := range paths[:min(len(paths), maxListed)] {
		names = append(names, path.Base(f))
	}

	style := kindStyles[kind]
	p.println("  " + style.Render(fmt.Sprintf("%s %s", kindLabels[kind], strings.Join(names, ", "))))
}

// Kind groups changes for display
type Kind int

const (
	KindNew Kind = iota
	KindModified
	KindDeleted
)

var kindLabels = map[Kind]string{
	KindNew:      "+ Novos:    ",
	KindModified: "~ Alterados:",
	KindDeleted:  "− Removidos:",
}

var kindStyles = map[Kind]lipgloss.Style{
	KindNew:      okStyle,
	KindModified: warnStyle,
	KindDeleted:  errStyle,
}
