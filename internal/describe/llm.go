package describe

import (
	"context"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	oai "github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/juparave/smartdeploy/internal/commitmsg"
	"github.com/juparave/smartdeploy/internal/config"
	"github.com/juparave/smartdeploy/internal/domain"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"
)

// GenerateFunc sends a prompt to a model and returns its text answer
type GenerateFunc func(ctx context.Context, prompt string) (string, error)

// LLM asks a language model for the commit subject and falls back to the
// heuristic message when the model fails or answers with nothing usable
type LLM struct {
	logger   *logrus.Logger
	generate GenerateFunc
	modelID  string
	fallback Heuristic
}

// NewLLM creates an LLM describer for the configured provider
func NewLLM(ctx context.Context, cfg config.MessageConfig, logger *logrus.Logger) (*LLM, error) {
	var initFn func() *genkit.Genkit
	var modelID string

	switch cfg.Provider {
	case config.ProviderOpenAI, config.ProviderGoogleAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("provider %q requires an API key", cfg.Provider)
		}
	default:
		return nil, fmt.Errorf("provider %q is not a language model", cfg.Provider)
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		// OpenAI-compatible API (Zhipu AI, etc.)
		var opts []option.RequestOption
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}

		modelID = qualify("openai", cfg.Model, "gpt-4o-mini")
		initFn = func() *genkit.Genkit {
			return genkit.Init(ctx,
				genkit.WithDefaultModel(modelID),
				genkit.WithPlugins(&oai.OpenAI{
					APIKey: cfg.APIKey,
					Opts:   opts,
				}),
			)
		}

	case config.ProviderGoogleAI:
		modelID = qualify("googleai", cfg.Model, "gemini-2.0-flash")
		initFn = func() *genkit.Genkit {
			return genkit.Init(ctx,
				genkit.WithDefaultModel(modelID),
				genkit.WithPlugins(&googlegenai.GoogleAI{
					APIKey: cfg.APIKey,
				}),
			)
		}
	}

	g, err := initGenkit(initFn)
	if err != nil {
		return nil, err
	}

	generate := func(ctx context.Context, prompt string) (string, error) {
		return genkit.GenerateText(ctx, g,
			ai.WithModelName(modelID),
			ai.WithPrompt(prompt),
		)
	}

	return NewLLMWithGenerator(generate, modelID, logger), nil
}

// initGenkit runs fn, turning a plugin panic into an error
func initGenkit(fn func() *genkit.Genkit) (g *genkit.Genkit, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("initializing genkit: %v", r)
		}
	}()
	return fn(), nil
}

// NewLLMWithGenerator builds an LLM describer around an arbitrary generator
func NewLLMWithGenerator(generate GenerateFunc, modelID string, logger *logrus.Logger) *LLM {
	return &LLM{
		logger:   logger,
		generate: generate,
		modelID:  modelID,
	}
}

// qualify prefixes model with the Genkit provider namespace
func qualify(provider, model, def string) string {
	if model == "" {
		model = def
	}
	if !strings.Contains(model, "/") {
		model = provider + "/" + model
	}
	return model
}

// Describe implements the app describer
func (l *LLM) Describe(ctx context.Context, changes []domain.ChangeRecord, stat domain.DiffStat) (string, error) {
	if len(changes) == 0 {
		return commitmsg.FallbackMessage, nil
	}

	answer, err := l.generate(ctx, BuildPrompt(changes, stat))
	if err != nil {
		l.logger.WithError(err).WithField("model", l.modelID).Warn("model failed, using heuristic message")
		return l.fallback.Describe(ctx, changes, stat)
	}

	msg := ParseAnswer(answer)
	if msg == "" {
		l.logger.WithField("model", l.modelID).Warn("model returned an empty message, using heuristic message")
		return l.fallback.Describe(ctx, changes, stat)
	}

	return commitmsg.Truncate(msg), nil
}

// BuildPrompt lists the classified changes; file contents are never sent
func BuildPrompt(changes []domain.ChangeRecord, stat domain.DiffStat) string {
	var sb strings.Builder

	sb.WriteString(systemPrompt)
	sb.WriteString("\n\n## Changed files\n\n")

	for i, c := range commitmsg.ClassifyAll(changes) {
		fmt.Fprintf(&sb, "- %s %s (%s, %s)\n", changes[i].Status, c.Path, c.Category, c.Label)
	}

	if !stat.IsZero() {
		fmt.Fprintf(&sb, "\nLines: %s\n", stat)
	}

	fmt.Fprintf(&sb, "\nHeuristic suggestion: %s\n", commitmsg.Generate(changes))
	sb.WriteString(outputInstructions)

	return sb.String()
}

// ParseAnswer extracts the subject line from a model answer
func ParseAnswer(text string) string {
	text = strings.TrimSpace(text)

	// Handle markdown code blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx != -1 {
			text = text[:idx]
		}
		// drop a language tag such as ```text
		if nl := strings.Index(text, "\n"); nl != -1 && !strings.Contains(text[:nl], ":") {
			text = text[nl+1:]
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.Trim(strings.TrimSpace(line), "\"'`")
		if line != "" {
			return line
		}
	}
	return ""
}

const systemPrompt = `You write git commit subjects for a small publishing tool.

Rules:
- One line, Conventional Commits style: "<type>: <summary>"
- Use one of: feat, fix, style, docs, ci, chore, assets
- Write the summary in Brazilian Portuguese, present tense ("atualiza", "adiciona", "remove", "renomeia")
- At most 72 characters
- Mention file names, not file contents`

const outputInstructions = `
Respond ONLY with the commit subject line, no quotes and no additional text.`
