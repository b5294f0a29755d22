package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.Embedder.Type)
	assert.Equal(t, "exact", cfg.Retriever.Backend)
	assert.Equal(t, 1500, cfg.Chunker.MaxLen)
	assert.Equal(t, 5, cfg.Retriever.ComplianceTopK)
	assert.Equal(t, 10, cfg.Retriever.EmailsTopK)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := &AppConfig{
		Data:      DataConfig{PolicyFile: "p.txt", EmailsFile: "e.txt", TransactionsFile: "t.csv", CacheDir: "cache"},
		Embedder:  EmbedderConfig{Type: "openai", OpenAI: &OpenAIEmbedderConfig{APIKeyEnv: "MY_KEY"}},
		LLM:       LLMConfig{Model: "llama3.2", Temperature: 0.2},
		Retriever: RetrieverConfig{Backend: "parallel", Workers: 4},
		Roster:    []string{"Michael Scott"},
	}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", loaded.Embedder.Type)
	assert.Equal(t, "MY_KEY", loaded.Embedder.OpenAI.APIKeyEnv)
	assert.Equal(t, "https://api.openai.com/v1", loaded.Embedder.OpenAI.BaseURL, "defaults fill in on load")
	assert.Equal(t, "parallel", loaded.Retriever.Backend)
	assert.Equal(t, 4, loaded.Retriever.Workers)
	assert.Equal(t, []string{"Michael Scott"}, loaded.Roster)
}
