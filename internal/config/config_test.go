package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, "gpt-3.5-turbo", cfg.LLM.Model)
	require.Equal(t, "text-embedding-ada-002", cfg.EmbedLLM.Model)
	require.Equal(t, 500, cfg.RAG.ChunkSize)
	require.Equal(t, 0, cfg.RAG.ChunkOverlap)
	require.Equal(t, 4, cfg.RAG.TopK)
	require.NotEmpty(t, cfg.RAG.DefaultQuery)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  addr: ":9090"
llm:
  model: "gpt-4o-mini"
rag:
  chunk_size: 250
  top_k: 2
  knowledge_file: "corpus.md"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.Server.Addr)
	require.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	require.Equal(t, 250, cfg.RAG.ChunkSize)
	require.Equal(t, 2, cfg.RAG.TopK)
	require.Equal(t, "corpus.md", cfg.RAG.KnowledgeFile)
	// untouched fields still get defaults
	require.Equal(t, "text-embedding-ada-002", cfg.EmbedLLM.Model)
	require.NotEmpty(t, cfg.RAG.DefaultQuery)
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestResolveKey_EnvWins(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	cfg := LLMConfig{Key: "sk-from-file"}
	require.Equal(t, "sk-from-env", cfg.ResolveKey())
}

func TestResolveKey_ConfigKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg := LLMConfig{Key: "Bearer sk-inline"}
	require.Equal(t, "sk-inline", cfg.ResolveKey())
}

func TestResolveKey_SecretFile(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	path := filepath.Join(t.TempDir(), "openai-key")
	require.NoError(t, os.WriteFile(path, []byte("sk-from-secret\n"), 0o600))

	cfg := LLMConfig{KeyFile: path}
	require.Equal(t, "sk-from-secret", cfg.ResolveKey())
}

func TestResolveKey_Missing(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg := LLMConfig{}
	require.Empty(t, cfg.ResolveKey())

	cfg = LLMConfig{KeyFile: filepath.Join(t.TempDir(), "nope")}
	require.Empty(t, cfg.ResolveKey())
}
