// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for textembed configuration.
	DefaultConfigDir = ".textembed"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultSQLiteFile is the knowledge ledger file name inside the config dir.
	DefaultSQLiteFile = "knowledge.db"
	// DefaultCollection is the qdrant collection holding knowledge entries.
	DefaultCollection = "knowledge_base"
	// DefaultTimeout bounds a single provider call.
	DefaultTimeout = 60 * time.Second
	// DefaultLLMBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultLLMBaseURL = "https://api.groq.com/openai/v1"
	// DefaultLLMModel is the chat model used for replies and categorization.
	DefaultLLMModel = "llama-3.1-8b-instant"
	// LLMAPIKeyEnv is consulted when no LLM key is configured.
	LLMAPIKeyEnv = "GROQ_API_KEY"

	// ConfigPathEnv overrides the config file location.
	ConfigPathEnv = "TEXTEMBED_CONFIG"
)

// Embedding provider names.
const (
	ProviderJina       = "jina"
	ProviderOpenAI     = "openai"
	ProviderSubprocess = "subprocess"
)

var (
	// reNonAlphanumeric matches characters that aren't alphanumeric or underscore.
	reNonAlphanumeric = regexp.MustCompile(`[^a-z0-9_]`)
	// reMultipleUnderscores matches consecutive underscores.
	reMultipleUnderscores = regexp.MustCompile(`_+`)
)

// providerDefaults fills fields the user left empty for a given provider.
var providerDefaults = map[string]EmbedderConfig{
	ProviderJina: {
		Model:      "jina-embeddings-v2-base-en",
		BaseURL:    "https://api.jina.ai/v1",
		Dimensions: 768,
	},
	ProviderOpenAI: {
		Model:      "text-embedding-3-small",
		Dimensions: 1536,
	},
	ProviderSubprocess: {
		Model:      "jina-embeddings-v2-base-en",
		Dimensions: 768,
	},
}

// apiKeyEnv lists the provider-specific variables consulted when no key is
// configured.
var apiKeyEnv = map[string]string{
	ProviderJina:   "JINA_API_KEY",
	ProviderOpenAI: "OPENAI_API_KEY",
}

// Config holds static configuration (read-only after load).
type Config struct {
	Embedder EmbedderConfig `yaml:"embedder,omitempty"`
	Qdrant   QdrantConfig   `yaml:"qdrant,omitempty"`
	SQLite   SQLiteConfig   `yaml:"sqlite,omitempty"`
	LLM      LLMConfig      `yaml:"llm,omitempty"`
	Log      LogConfig      `yaml:"log,omitempty"`
}

// EmbedderConfig holds configuration for the embedding provider.
type EmbedderConfig struct {
	Provider string `yaml:"provider,omitempty" env:"TEXTEMBED_PROVIDER"`
	Model    string `yaml:"model,omitempty" env:"TEXTEMBED_MODEL"`
	BaseURL  string `yaml:"base_url,omitempty" env:"TEXTEMBED_BASE_URL"`
	APIKey   string `yaml:"api_key,omitempty" env:"TEXTEMBED_API_KEY"`
	// AllowEmptyKey permits keyless OpenAI-compatible servers such as a
	// local Ollama or text-embeddings-inference instance.
	AllowEmptyKey bool `yaml:"allow_empty_key,omitempty" env:"TEXTEMBED_ALLOW_EMPTY_KEY"`
	// Dimensions is the vector length the model produces. It sizes the
	// knowledge collection; embeddings themselves are never checked against it.
	Dimensions int `yaml:"dimensions,omitempty" env:"TEXTEMBED_DIMENSIONS"`
	// Command is the subprocess invocation. The text is appended as the
	// last argument.
	Command []string      `yaml:"command,omitempty" env:"TEXTEMBED_COMMAND" envSeparator:" "`
	Timeout time.Duration `yaml:"timeout,omitempty" env:"TEXTEMBED_TIMEOUT"`
}

// QdrantConfig holds configuration for the Qdrant vector database.
type QdrantConfig struct {
	Host       string `yaml:"host,omitempty" env:"QDRANT_HOST"`
	Port       int    `yaml:"port,omitempty" env:"QDRANT_PORT"`
	Collection string `yaml:"collection,omitempty" env:"QDRANT_COLLECTION"`
	APIKey     string `yaml:"api_key,omitempty" env:"QDRANT_API_KEY"`
	UseTLS     bool   `yaml:"use_tls,omitempty" env:"QDRANT_USE_TLS"`
}

// SQLiteConfig holds configuration for the SQLite knowledge ledger.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database. Relative paths are
	// resolved against the working directory.
	Path string `yaml:"path,omitempty" env:"TEXTEMBED_SQLITE_PATH"`
}

// LLMConfig holds configuration for the chat model behind kb reply and
// kb categorize. Any OpenAI-compatible endpoint works.
type LLMConfig struct {
	BaseURL string        `yaml:"base_url,omitempty" env:"TEXTEMBED_LLM_BASE_URL"`
	Model   string        `yaml:"model,omitempty" env:"TEXTEMBED_LLM_MODEL"`
	APIKey  string        `yaml:"api_key,omitempty" env:"TEXTEMBED_LLM_API_KEY"`
	Timeout time.Duration `yaml:"timeout,omitempty" env:"TEXTEMBED_LLM_TIMEOUT"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty" env:"TEXTEMBED_LOG_LEVEL"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Embedder: EmbedderConfig{
			Provider: ProviderJina,
			Timeout:  DefaultTimeout,
		},
		Qdrant: QdrantConfig{
			Host:       "localhost",
			Port:       6334,
			Collection: DefaultCollection,
		},
		SQLite: SQLiteConfig{
			Path: filepath.Join(DefaultConfigDir, DefaultSQLiteFile),
		},
		LLM: LLMConfig{
			BaseURL: DefaultLLMBaseURL,
			Model:   DefaultLLMModel,
			Timeout: DefaultTimeout,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load builds the configuration for the given working directory. Sources,
// lowest precedence first: defaults, the YAML file, a .env file, the process
// environment. A missing config file is not an error unless its path was
// given explicitly through TEXTEMBED_CONFIG.
func Load(basePath string) (*Config, error) {
	if err := loadDotEnv(basePath); err != nil {
		return nil, err
	}

	cfg := Default()

	configFile, explicit := resolveConfigFile(basePath)
	data, err := os.ReadFile(configFile)
	switch {
	case errors.Is(err, fs.ErrNotExist) && explicit:
		return nil, fmt.Errorf("config file not found: %s", configFile)
	case errors.Is(err, fs.ErrNotExist):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	cfg.applyProviderDefaults()
	cfg.applyEnvOverrides()
	cfg.applyLLMDefaults()
	cfg.Qdrant.Collection = SanitizeCollectionName(cfg.Qdrant.Collection)

	if !filepath.IsAbs(cfg.SQLite.Path) && cfg.SQLite.Path != ":memory:" {
		cfg.SQLite.Path = filepath.Join(basePath, cfg.SQLite.Path)
	}

	return cfg, nil
}

// loadDotEnv loads basePath/.env into the process environment without
// overriding variables that are already set.
func loadDotEnv(basePath string) error {
	envFile := filepath.Join(basePath, ".env")
	if _, err := os.Stat(envFile); err != nil {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("loading %s: %w", envFile, err)
	}
	return nil
}

func resolveConfigFile(basePath string) (string, bool) {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p, true
	}
	return ConfigFilePath(basePath), false
}

// applyProviderDefaults fills empty embedder fields from the provider table.
func (c *Config) applyProviderDefaults() {
	c.Embedder.Provider = strings.ToLower(strings.TrimSpace(c.Embedder.Provider))
	if c.Embedder.Provider == "" {
		c.Embedder.Provider = ProviderJina
	}

	defaults, ok := providerDefaults[c.Embedder.Provider]
	if !ok {
		return
	}
	if c.Embedder.Model == "" {
		c.Embedder.Model = defaults.Model
	}
	if c.Embedder.BaseURL == "" {
		c.Embedder.BaseURL = defaults.BaseURL
	}
	if c.Embedder.Dimensions == 0 {
		c.Embedder.Dimensions = defaults.Dimensions
	}
	if c.Embedder.Timeout <= 0 {
		c.Embedder.Timeout = DefaultTimeout
	}
}

// applyEnvOverrides falls back to the provider's conventional API key
// variable when no key is configured.
func (c *Config) applyEnvOverrides() {
	if c.Embedder.APIKey != "" {
		return
	}
	if name, ok := apiKeyEnv[c.Embedder.Provider]; ok {
		c.Embedder.APIKey = os.Getenv(name)
	}
}

// applyLLMDefaults restores defaults blanked by the file or environment and
// falls back to GROQ_API_KEY.
func (c *Config) applyLLMDefaults() {
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = DefaultLLMBaseURL
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultLLMModel
	}
	if c.LLM.Timeout <= 0 {
		c.LLM.Timeout = DefaultTimeout
	}
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = os.Getenv(LLMAPIKeyEnv)
	}
}

// ConfigDir returns the path to the .textembed config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// Exists checks if a textembed config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}

// SanitizeCollectionName converts a user-supplied name into a valid
// collection name.
func SanitizeCollectionName(name string) string {
	// Convert to lowercase
	name = strings.ToLower(name)

	// Replace spaces and hyphens with underscores
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")

	// Remove any characters that aren't alphanumeric or underscore
	name = reNonAlphanumeric.ReplaceAllString(name, "")

	// Remove consecutive underscores
	name = reMultipleUnderscores.ReplaceAllString(name, "_")

	name = strings.Trim(name, "_")

	if name == "" {
		return DefaultCollection
	}

	return name
}
