package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/juparave/smartdeploy/internal/util"
	"gopkg.in/yaml.v3"
)

// Message providers
const (
	ProviderHeuristic = "heuristic"
	ProviderOpenAI    = "openai"
	ProviderGoogleAI  = "googleai"
)

// Config holds all application configuration
type Config struct {
	ProjectDir     string        `yaml:"-"` // Set via CLI only
	Remote         string        `yaml:"remote"`
	FallbackBranch string        `yaml:"fallback_branch"`
	Message        MessageConfig `yaml:"message"`
	DryRun         bool          `yaml:"-"`
	Override       string        `yaml:"-"` // --message
	Verbose        bool          `yaml:"-"`
}

// MessageConfig selects how commit messages are written
type MessageConfig struct {
	Provider string `yaml:"provider"` // heuristic, openai, googleai
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"` // Custom API endpoint for OpenAI compatible services
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Remote:         "origin",
		FallbackBranch: "main",
		Message: MessageConfig{
			Provider: ProviderHeuristic,
		},
	}
}

// DefaultPath is where Load looks when no path is given
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "smartdeploy", "config.yaml"), nil
}

// Load reads configuration from file and merges with defaults
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil // Use defaults if can't find home
		}
		path = p
	}

	data, err := os.ReadFile(util.ExpandPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid and fills derived values
func (c *Config) Validate() error {
	if c.ProjectDir == "" {
		return fmt.Errorf("project directory is required")
	}
	if !util.DirExists(c.ProjectDir) {
		return fmt.Errorf("project directory does not exist: %s", c.ProjectDir)
	}

	if c.Remote == "" {
		return fmt.Errorf("remote is required")
	}
	if c.FallbackBranch == "" {
		c.FallbackBranch = "main"
	}

	switch c.Message.Provider {
	case "":
		c.Message.Provider = ProviderHeuristic
	case ProviderHeuristic:
	case ProviderOpenAI:
		if c.Message.APIKey == "" {
			c.Message.APIKey = firstEnv("OPENAI_API_KEY", "ZHIPU_API_KEY")
		}
	case ProviderGoogleAI:
		if c.Message.APIKey == "" {
			c.Message.APIKey = firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY")
		}
	default:
		return fmt.Errorf("unknown message provider: %s", c.Message.Provider)
	}

	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
