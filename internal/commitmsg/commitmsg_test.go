package commitmsg

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/juparave/smartdeploy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(s domain.Status, path string) domain.ChangeRecord {
	return domain.ChangeRecord{Status: s, Path: path}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path     string
		category string
		label    string
	}{
		{"index.html", "feat", "página HTML"},
		{"css/style.css", "style", "estilos CSS"},
		{"assets/logo.png", "assets", "imagem PNG"},
		{"FOO.PNG", "assets", "imagem PNG"},
		{"config/app.YAML", "ci", "configuração YAML"},
		{"README.md", "docs", "documentação"},
		{".env", "chore", "variáveis de ambiente"},
		{"archive.tar.woff2", "assets", "fonte"},
		{"deploy.sh", "chore", "script shell"},
		{"data.xyz", DefaultCategory, DefaultLabel},
		{"Makefile", DefaultCategory, DefaultLabel},
		{"conf.d/Makefile", DefaultCategory, DefaultLabel},
		{"trailing.", DefaultCategory, DefaultLabel},
		{"", DefaultCategory, DefaultLabel},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			category, label := Classify(tt.path)
			assert.Equal(t, tt.category, category)
			assert.Equal(t, tt.label, label)
		})
	}
}

func TestClassifyIgnoresCase(t *testing.T) {
	c1, l1 := Classify("FOO.PNG")
	c2, l2 := Classify("foo.png")
	assert.Equal(t, c1, c2)
	assert.Equal(t, l1, l2)
}

func TestAggregate(t *testing.T) {
	t.Run("first category wins a tie", func(t *testing.T) {
		s := Aggregate([]domain.ChangeRecord{
			rec(domain.StatusModified, "index.html"),
			rec(domain.StatusModified, "style.css"),
			rec(domain.StatusAdded, "logo.png"),
		})
		assert.Equal(t, "feat", s.Category)
		assert.Equal(t, "index.html", s.Files)
		assert.Equal(t, domain.VerbUpdate, s.Verb)
		assert.Equal(t, []string{"1 estilos CSS", "1 imagem PNG"}, s.Secondary)
	})

	t.Run("larger group beats earlier group", func(t *testing.T) {
		s := Aggregate([]domain.ChangeRecord{
			rec(domain.StatusModified, "docs/a.md"),
			rec(domain.StatusAdded, "cmd/b.go"),
			rec(domain.StatusUntracked, "cmd/c.go"),
		})
		assert.Equal(t, "feat", s.Category)
		assert.Equal(t, "b.go, c.go", s.Files)
		assert.Equal(t, domain.VerbAdd, s.Verb)
		assert.Equal(t, []string{"1 documentação"}, s.Secondary)
	})

	t.Run("more than three files", func(t *testing.T) {
		s := Aggregate([]domain.ChangeRecord{
			rec(domain.StatusAdded, "a.py"),
			rec(domain.StatusAdded, "b.py"),
			rec(domain.StatusAdded, "c.py"),
			rec(domain.StatusAdded, "d.py"),
		})
		assert.Equal(t, "a.py, b.py, c.py e mais 1", s.Files)
		assert.Empty(t, s.Secondary)
	})

	t.Run("verb tie goes to first seen", func(t *testing.T) {
		s := Aggregate([]domain.ChangeRecord{
			rec(domain.StatusDeleted, "a.go"),
			rec(domain.StatusAdded, "b.go"),
		})
		assert.Equal(t, domain.VerbRemove, s.Verb)
	})

	t.Run("most frequent verb", func(t *testing.T) {
		s := Aggregate([]domain.ChangeRecord{
			rec(domain.StatusModified, "a.go"),
			rec(domain.StatusDeleted, "b.go"),
			rec(domain.StatusDeleted, "c.go"),
		})
		assert.Equal(t, domain.VerbRemove, s.Verb)
	})

	t.Run("at most two secondary categories", func(t *testing.T) {
		s := Aggregate([]domain.ChangeRecord{
			rec(domain.StatusModified, "x.go"),
			rec(domain.StatusModified, "notes.md"),
			rec(domain.StatusModified, "y.go"),
			rec(domain.StatusModified, "site.css"),
			rec(domain.StatusModified, "logo.svg"),
		})
		assert.Equal(t, "feat", s.Category)
		assert.Equal(t, []string{"1 documentação", "1 estilos CSS"}, s.Secondary)
	})

	t.Run("secondary label is the first seen", func(t *testing.T) {
		s := Aggregate([]domain.ChangeRecord{
			rec(domain.StatusModified, "a.md"),
			rec(domain.StatusModified, "b.md"),
			rec(domain.StatusModified, "x.py"),
			rec(domain.StatusModified, "y.js"),
		})
		assert.Equal(t, "docs", s.Category)
		assert.Equal(t, []string{"2 Python"}, s.Secondary)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, Summary{}, Aggregate(nil))
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   Summary
		want string
	}{
		{
			name: "update with secondary",
			in:   Summary{Category: "feat", Files: "index.html", Verb: domain.VerbUpdate, Secondary: []string{"1 estilos CSS"}},
			want: "feat: atualiza index.html + 1 estilos CSS",
		},
		{
			name: "add",
			in:   Summary{Category: "docs", Files: "README.md", Verb: domain.VerbAdd},
			want: "docs: adiciona README.md",
		},
		{
			name: "remove",
			in:   Summary{Category: "assets", Files: "old.png", Verb: domain.VerbRemove},
			want: "assets: remove old.png",
		},
		{
			name: "rename",
			in:   Summary{Category: "chore", Files: "Makefile", Verb: domain.VerbRename},
			want: "chore: renomeia Makefile",
		},
		{
			name: "copy falls back to modify",
			in:   Summary{Category: "feat", Files: "a.go", Verb: domain.VerbCopy},
			want: "feat: modifica a.go",
		},
		{
			name: "unknown verb",
			in:   Summary{Category: "feat", Files: "a.go", Verb: domain.Verb("bogus")},
			want: "feat: modifica a.go",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Run("short message untouched", func(t *testing.T) {
		assert.Equal(t, "feat: x", Truncate("feat: x"))
	})

	t.Run("exactly max length untouched", func(t *testing.T) {
		msg := strings.Repeat("a", MaxLength)
		assert.Equal(t, msg, Truncate(msg))
	})

	t.Run("one over is cut", func(t *testing.T) {
		got := Truncate(strings.Repeat("a", MaxLength+1))
		assert.Equal(t, strings.Repeat("a", 69)+"...", got)
	})

	t.Run("eighty characters", func(t *testing.T) {
		msg := "feat: atualiza " + strings.Repeat("palavra ", 10)
		msg = msg[:80]
		require.Len(t, msg, 80)

		got := Truncate(msg)
		assert.Len(t, got, MaxLength)
		assert.Equal(t, msg[:69]+Ellipsis, got)
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		msg := strings.Repeat("ç", 80)
		got := Truncate(msg)
		assert.Equal(t, MaxLength, utf8.RuneCountInString(got))
		assert.True(t, utf8.ValidString(got))
	})
}

func TestGenerate(t *testing.T) {
	t.Run("empty change set", func(t *testing.T) {
		assert.Equal(t, "chore: atualização geral do projeto", Generate(nil))
		assert.Equal(t, FallbackMessage, Generate([]domain.ChangeRecord{}))
	})

	t.Run("mixed web change", func(t *testing.T) {
		msg := Generate([]domain.ChangeRecord{
			rec(domain.StatusModified, "index.html"),
			rec(domain.StatusModified, "style.css"),
			rec(domain.StatusAdded, "logo.png"),
		})
		assert.Equal(t, "feat: atualiza index.html + 1 estilos CSS, 1 imagem PNG", msg)
	})

	t.Run("python batch", func(t *testing.T) {
		msg := Generate([]domain.ChangeRecord{
			rec(domain.StatusAdded, "a.py"),
			rec(domain.StatusAdded, "b.py"),
			rec(domain.StatusAdded, "c.py"),
			rec(domain.StatusAdded, "d.py"),
		})
		assert.Equal(t, "feat: adiciona a.py, b.py, c.py e mais 1", msg)
	})

	t.Run("long names are truncated", func(t *testing.T) {
		msg := Generate([]domain.ChangeRecord{
			rec(domain.StatusAdded, "src/components/a-very-long-component-name.tsx"),
			rec(domain.StatusAdded, "src/components/another-very-long-component.tsx"),
			rec(domain.StatusModified, "docs/guide.md"),
		})
		assert.Equal(t, MaxLength, utf8.RuneCountInString(msg))
		assert.True(t, strings.HasSuffix(msg, Ellipsis))
		assert.True(t, strings.HasPrefix(msg, "feat: adiciona a-very-long-component-name.tsx, "))
	})

	t.Run("deterministic", func(t *testing.T) {
		records := []domain.ChangeRecord{
			rec(domain.StatusModified, "a.md"),
			rec(domain.StatusAdded, "b.go"),
			rec(domain.StatusDeleted, "c.go"),
			rec(domain.StatusModified, "d.md"),
			rec(domain.StatusRenamed, "e.css"),
		}
		first := Generate(records)
		for i := 0; i < 50; i++ {
			assert.Equal(t, first, Generate(records))
		}
	})
}

func TestGenerateLengthBound(t *testing.T) {
	exts := []string{"go", "md", "css", "png", "yml", "xyz", "", "tsx", "json"}
	statuses := []domain.Status{
		domain.StatusModified, domain.StatusAdded, domain.StatusDeleted,
		domain.StatusRenamed, domain.StatusCopied, domain.StatusUntracked,
	}

	for n := 1; n <= 40; n++ {
		var records []domain.ChangeRecord
		for i := 0; i < n; i++ {
			name := fmt.Sprintf("dir%d/%s-file-%d", i%3, strings.Repeat("x", (i*7)%23), i)
			if ext := exts[(i+n)%len(exts)]; ext != "" {
				name += "." + ext
			}
			records = append(records, rec(statuses[(i*n)%len(statuses)], name))
		}

		msg := Generate(records)
		assert.LessOrEqual(t, utf8.RuneCountInString(msg), MaxLength, "n=%d msg=%q", n, msg)
	}
}
