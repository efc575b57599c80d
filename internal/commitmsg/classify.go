// Package commitmsg turns a set of changed paths into a one-line commit message.
package commitmsg

import (
	"path"
	"strings"
)

// Category and label used when the extension is unknown
const (
	DefaultCategory = "chore"
	DefaultLabel    = "arquivo"
)

type rule struct {
	category string
	label    string
}

// rules maps a lowercase extension (without the dot) to its category
var rules = map[string]rule{
	// web
	"html":   {"feat", "página HTML"},
	"css":    {"style", "estilos CSS"},
	"js":     {"feat", "lógica JavaScript"},
	"ts":     {"feat", "TypeScript"},
	"jsx":    {"feat", "componente React"},
	"tsx":    {"feat", "componente React/TS"},
	"vue":    {"feat", "componente Vue"},
	"svelte": {"feat", "componente Svelte"},

	// config and infra
	"json": {"chore", "configuração JSON"},
	"env":  {"chore", "variáveis de ambiente"},
	"yml":  {"ci", "configuração YAML"},
	"yaml": {"ci", "configuração YAML"},
	"toml": {"chore", "configuração TOML"},
	"lock": {"chore", "dependências"},

	// docs
	"md":  {"docs", "documentação"},
	"txt": {"docs", "arquivo de texto"},

	// assets
	"png":   {"assets", "imagem PNG"},
	"jpg":   {"assets", "imagem JPG"},
	"jpeg":  {"assets", "imagem JPG"},
	"svg":   {"assets", "ícone SVG"},
	"webp":  {"assets", "imagem WebP"},
	"gif":   {"assets", "animação GIF"},
	"ico":   {"assets", "ícone"},
	"mp4":   {"assets", "vídeo"},
	"woff":  {"assets", "fonte"},
	"woff2": {"assets", "fonte"},

	// backend
	"py":   {"feat", "Python"},
	"php":  {"feat", "PHP"},
	"rb":   {"feat", "Ruby"},
	"go":   {"feat", "Go"},
	"rs":   {"feat", "Rust"},
	"java": {"feat", "Java"},
	"sh":   {"chore", "script shell"},
}

// Classify returns the category and descriptive label for a path
func Classify(p string) (category, label string) {
	if r, ok := rules[extension(p)]; ok {
		return r.category, r.label
	}
	return DefaultCategory, DefaultLabel
}

// extension returns the lowercase text after the last dot of the final path
// segment, or "" when there is none
func extension(p string) string {
	base := baseName(p)
	idx := strings.LastIndex(base, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(base[idx+1:])
}

// baseName is the final segment of a slash separated VCS path
func baseName(p string) string {
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}
