package embedding

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"knowledgebot/internal/config"
	"knowledgebot/internal/models"
)

// NewEmbedder builds a hosted embedder from the embedding model config.
func NewEmbedder(cfg *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	opts := []openai.Option{
		openai.WithToken(strings.TrimPrefix(cfg.ResolveKey(), "Bearer ")),
		openai.WithEmbeddingModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}
	return embeddings.NewEmbedder(llm)
}

// EmbedChunks embeds every chunk in one provider round trip. The result is
// index-aligned with the input.
func EmbedChunks(ctx context.Context, embedder embeddings.Embedder, chunks []models.Chunk) ([][]float32, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}
	return embedder.EmbedDocuments(ctx, texts)
}
