package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load consults for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		ConfigPathEnv,
		"TEXTEMBED_PROVIDER", "TEXTEMBED_MODEL", "TEXTEMBED_BASE_URL", "TEXTEMBED_API_KEY",
		"TEXTEMBED_ALLOW_EMPTY_KEY", "TEXTEMBED_DIMENSIONS", "TEXTEMBED_COMMAND", "TEXTEMBED_TIMEOUT",
		"TEXTEMBED_SQLITE_PATH", "TEXTEMBED_LOG_LEVEL",
		"TEXTEMBED_LLM_BASE_URL", "TEXTEMBED_LLM_MODEL", "TEXTEMBED_LLM_API_KEY", "TEXTEMBED_LLM_TIMEOUT",
		"QDRANT_HOST", "QDRANT_PORT", "QDRANT_COLLECTION", "QDRANT_API_KEY", "QDRANT_USE_TLS",
		"JINA_API_KEY", "OPENAI_API_KEY", "GROQ_API_KEY",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	configDir := filepath.Join(dir, DefaultConfigDir)
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, DefaultConfigFile), []byte(content), 0600))
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ProviderJina, cfg.Embedder.Provider)
	assert.Equal(t, DefaultTimeout, cfg.Embedder.Timeout)
	assert.Equal(t, "localhost", cfg.Qdrant.Host)
	assert.Equal(t, 6334, cfg.Qdrant.Port)
	assert.Equal(t, DefaultCollection, cfg.Qdrant.Collection)
	assert.Equal(t, filepath.Join(".textembed", "knowledge.db"), cfg.SQLite.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ProviderJina, cfg.Embedder.Provider)
	assert.Equal(t, "jina-embeddings-v2-base-en", cfg.Embedder.Model)
	assert.Equal(t, "https://api.jina.ai/v1", cfg.Embedder.BaseURL)
	assert.Equal(t, 768, cfg.Embedder.Dimensions)
	assert.Empty(t, cfg.Embedder.APIKey)
	assert.Equal(t, filepath.Join(dir, ".textembed", "knowledge.db"), cfg.SQLite.Path)
}

func TestLoad_FromFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, `embedder:
  provider: openai
  api_key: file-key
  timeout: 5s
qdrant:
  host: qdrant.internal
  port: 6335
sqlite:
  path: /var/lib/textembed/kb.db
log:
  level: debug
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.Embedder.Provider)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.Model)
	assert.Empty(t, cfg.Embedder.BaseURL)
	assert.Equal(t, 1536, cfg.Embedder.Dimensions)
	assert.Equal(t, "file-key", cfg.Embedder.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Embedder.Timeout)
	assert.Equal(t, "qdrant.internal", cfg.Qdrant.Host)
	assert.Equal(t, 6335, cfg.Qdrant.Port)
	assert.Equal(t, DefaultCollection, cfg.Qdrant.Collection)
	assert.Equal(t, "/var/lib/textembed/kb.db", cfg.SQLite.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, `embedder:
  provider: openai
  model: text-embedding-3-large
`)
	t.Setenv("TEXTEMBED_MODEL", "text-embedding-ada-002")
	t.Setenv("TEXTEMBED_DIMENSIONS", "1024")
	t.Setenv("QDRANT_PORT", "7000")
	t.Setenv("TEXTEMBED_LOG_LEVEL", "error")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "text-embedding-ada-002", cfg.Embedder.Model)
	assert.Equal(t, 1024, cfg.Embedder.Dimensions)
	assert.Equal(t, 7000, cfg.Qdrant.Port)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_APIKeyFallback(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		env      map[string]string
		expected string
	}{
		{
			name:     "jina key",
			provider: "jina",
			env:      map[string]string{"JINA_API_KEY": "jina-key", "OPENAI_API_KEY": "openai-key"},
			expected: "jina-key",
		},
		{
			name:     "openai key",
			provider: "openai",
			env:      map[string]string{"JINA_API_KEY": "jina-key", "OPENAI_API_KEY": "openai-key"},
			expected: "openai-key",
		},
		{
			name:     "explicit key wins",
			provider: "openai",
			env:      map[string]string{"TEXTEMBED_API_KEY": "explicit", "OPENAI_API_KEY": "openai-key"},
			expected: "explicit",
		},
		{
			name:     "subprocess has no key",
			provider: "subprocess",
			env:      map[string]string{"OPENAI_API_KEY": "openai-key"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("TEXTEMBED_PROVIDER", tt.provider)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(t.TempDir())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Embedder.APIKey)
		})
	}
}

func TestLoad_SubprocessCommandFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEXTEMBED_PROVIDER", "Subprocess")
	t.Setenv("TEXTEMBED_COMMAND", "python3 generate_embedding.py")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, ProviderSubprocess, cfg.Embedder.Provider)
	assert.Equal(t, []string{"python3", "generate_embedding.py"}, cfg.Embedder.Command)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("JINA_API_KEY=from-dotenv\nTEXTEMBED_LOG_LEVEL=info\n"), 0600))
	t.Setenv("TEXTEMBED_LOG_LEVEL", "debug")
	t.Cleanup(func() { os.Unsetenv("JINA_API_KEY") })

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Embedder.APIKey)
	// Existing variables are not overridden by .env.
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ExplicitPath(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(custom, []byte("qdrant:\n  collection: mail_knowledge\n"), 0600))
	t.Setenv(ConfigPathEnv, custom)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "mail_knowledge", cfg.Qdrant.Collection)

	t.Setenv(ConfigPathEnv, filepath.Join(dir, "missing.yaml"))
	_, err = Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "embedder: [not, a, map\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestLoad_InvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("QDRANT_PORT", "not-a-number")

	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing environment")
}

func TestLoad_UnknownProviderKeepsFields(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEXTEMBED_PROVIDER", "cohere")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "cohere", cfg.Embedder.Provider)
	assert.Empty(t, cfg.Embedder.Model)
}

func TestDefaultConfigYAMLParses(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	created, err := WriteDefault(dir)
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, Exists(dir))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, ProviderJina, cfg.Embedder.Provider)
	assert.Equal(t, 768, cfg.Embedder.Dimensions)
	assert.Equal(t, DefaultTimeout, cfg.Embedder.Timeout)
	assert.Equal(t, DefaultCollection, cfg.Qdrant.Collection)

	created, err = WriteDefault(dir)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestDefaultConfigYAML_ProviderSwitchUsesProviderDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	_, err := WriteDefault(dir)
	require.NoError(t, err)
	t.Setenv("TEXTEMBED_PROVIDER", "openai")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.Embedder.Provider)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.Model)
	assert.Equal(t, 1536, cfg.Embedder.Dimensions)
	assert.Empty(t, cfg.Embedder.BaseURL)
}

func TestLoad_LLM(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
		want LLMConfig
	}{
		{
			name: "defaults",
			want: LLMConfig{BaseURL: DefaultLLMBaseURL, Model: DefaultLLMModel, Timeout: DefaultTimeout},
		},
		{
			name: "groq key fallback",
			env:  map[string]string{"GROQ_API_KEY": "gsk-test"},
			want: LLMConfig{BaseURL: DefaultLLMBaseURL, Model: DefaultLLMModel, APIKey: "gsk-test", Timeout: DefaultTimeout},
		},
		{
			name: "file values",
			yaml: "llm:\n  base_url: http://localhost:11434/v1\n  model: llama3\n  api_key: file-key\n  timeout: 5s\n",
			env:  map[string]string{"GROQ_API_KEY": "ignored"},
			want: LLMConfig{BaseURL: "http://localhost:11434/v1", Model: "llama3", APIKey: "file-key", Timeout: 5 * time.Second},
		},
		{
			name: "env overrides file",
			yaml: "llm:\n  model: llama3\n",
			env: map[string]string{
				"TEXTEMBED_LLM_MODEL":   "mixtral",
				"TEXTEMBED_LLM_API_KEY": "env-key",
			},
			want: LLMConfig{BaseURL: DefaultLLMBaseURL, Model: "mixtral", APIKey: "env-key", Timeout: DefaultTimeout},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			if tt.yaml != "" {
				writeConfig(t, dir, tt.yaml)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.LLM)
		})
	}
}

func TestSanitizeCollectionName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple lowercase", input: "knowledge", expected: "knowledge"},
		{name: "uppercase converted", input: "MailKB", expected: "mailkb"},
		{name: "spaces to underscores", input: "mail kb", expected: "mail_kb"},
		{name: "hyphens to underscores", input: "mail-kb", expected: "mail_kb"},
		{name: "special characters removed", input: "mail@kb!", expected: "mailkb"},
		{name: "consecutive underscores collapsed", input: "mail--kb", expected: "mail_kb"},
		{name: "leading trailing underscores trimmed", input: "-mail-kb-", expected: "mail_kb"},
		{name: "empty string returns default", input: "", expected: DefaultCollection},
		{name: "only special chars returns default", input: "!!!", expected: DefaultCollection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeCollectionName(tt.input))
		})
	}
}

func TestConfigPaths(t *testing.T) {
	assert.Equal(t, "/home/user/project/.textembed", ConfigDir("/home/user/project"))
	assert.Equal(t, "/home/user/project/.textembed/config.yaml", ConfigFilePath("/home/user/project"))
}

func TestLoad_SanitizesCollection(t *testing.T) {
	clearEnv(t)
	t.Setenv("QDRANT_COLLECTION", "Sales Replies-2026")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "sales_replies_2026", cfg.Qdrant.Collection)
}
