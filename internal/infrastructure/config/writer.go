package config

import (
	"fmt"
	"os"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# textembed configuration

embedder:
  # jina (default), openai, or subprocess
  provider: jina
  # model and dimensions default per provider:
  #   jina: jina-embeddings-v2-base-en, 768
  #   openai: text-embedding-3-small, 1536
  # model: jina-embeddings-v2-base-en
  # dimensions: 768
  timeout: 60s
  # api_key: your-api-key (or set JINA_API_KEY / OPENAI_API_KEY)
  # base_url: http://localhost:11434/v1   # any OpenAI-compatible server
  # allow_empty_key: true                 # for keyless local servers
  # command: ["python3", "generate_embedding.py"]  # subprocess provider

qdrant:
  host: localhost
  port: 6334
  collection: knowledge_base
  # api_key: your-api-key (for Qdrant Cloud)
  # use_tls: true

sqlite:
  path: .textembed/knowledge.db

# chat model for kb reply and kb categorize (OpenAI-compatible)
llm:
  # base_url: https://api.groq.com/openai/v1
  # model: llama-3.1-8b-instant
  # api_key: your-api-key (or set GROQ_API_KEY)
  timeout: 60s

log:
  level: warn
`

// WriteDefault creates the .textembed directory and writes a default config
// file. It reports false without touching anything if the file exists.
func WriteDefault(basePath string) (bool, error) {
	configDir := ConfigDir(basePath)
	configFile := ConfigFilePath(basePath)

	if _, err := os.Stat(configFile); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return false, fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(DefaultConfigYAML), 0644); err != nil {
		return false, fmt.Errorf("writing config file: %w", err)
	}

	return true, nil
}
