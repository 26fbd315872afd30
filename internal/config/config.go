package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig `yaml:"server"`
	LLM      LLMConfig    `yaml:"llm"`
	EmbedLLM LLMConfig    `yaml:"embed_llm"`
	RAG      RAGConfig    `yaml:"rag"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LLMConfig describes one hosted model endpoint. The key can come from the
// environment, the config file, or a mounted secret file.
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	Key     string `yaml:"key"`
	KeyFile string `yaml:"key_file"`
}

type RAGConfig struct {
	ChunkSize     int    `yaml:"chunk_size"`
	ChunkOverlap  int    `yaml:"chunk_overlap"`
	TopK          int    `yaml:"top_k"`
	DefaultQuery  string `yaml:"default_query"`
	KnowledgeFile string `yaml:"knowledge_file"`
}

const (
	defaultAddr           = ":8080"
	defaultChunkSize      = 500
	defaultChunkOverlap   = 0
	defaultTopK           = 4
	defaultChatModel      = "gpt-3.5-turbo"
	defaultEmbeddingModel = "text-embedding-ada-002"
	defaultQuery          = "Tell me about the KnowledgeBot RAG service."

	apiKeyEnv = "OPENAI_API_KEY"
)

// LoadConfig reads the yaml config file. A missing file is not an error, the
// service starts on defaults so that a plain deployment only needs the API
// key in its environment.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.LLM.Model == "" {
		c.LLM.Model = defaultChatModel
	}
	if c.EmbedLLM.Model == "" {
		c.EmbedLLM.Model = defaultEmbeddingModel
	}
	if c.RAG.ChunkSize <= 0 {
		c.RAG.ChunkSize = defaultChunkSize
	}
	if c.RAG.ChunkOverlap < 0 {
		c.RAG.ChunkOverlap = defaultChunkOverlap
	}
	if c.RAG.TopK <= 0 {
		c.RAG.TopK = defaultTopK
	}
	if c.RAG.DefaultQuery == "" {
		c.RAG.DefaultQuery = defaultQuery
	}
}

// ResolveKey returns the API key for the hosted provider. The environment
// variable wins over the config file, the config file over the secret file.
// An empty result means the credential is missing.
func (c *LLMConfig) ResolveKey() string {
	if key := os.Getenv(apiKeyEnv); key != "" {
		return strings.TrimSpace(key)
	}
	if c.Key != "" {
		return strings.TrimPrefix(strings.TrimSpace(c.Key), "Bearer ")
	}
	if c.KeyFile != "" {
		data, err := os.ReadFile(c.KeyFile)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(data))
	}
	return ""
}
