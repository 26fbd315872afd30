package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"

	"knowledgebot/internal/chromemdb"
	"knowledgebot/internal/config"
	"knowledgebot/internal/embedding"
	"knowledgebot/internal/knowledge"
	"knowledgebot/internal/llmservice"
	"knowledgebot/internal/models"
)

// contextPrompt renders the human turn of the two-role prompt.
var contextPrompt = prompts.PromptTemplate{
	Template:       models.ContextPromptTemplate,
	InputVariables: []string{"context", "question"},
	TemplateFormat: prompts.TemplateFormatGoTemplate,
}

type RAG struct {
	embedder embeddings.Embedder
	llm      llms.Model
	cfg      *config.Config
}

func NewRAG(embedder embeddings.Embedder, llm llms.Model, cfg *config.Config) *RAG {
	return &RAG{embedder: embedder, llm: llm, cfg: cfg}
}

// Query runs the full retrieve-then-generate transaction for one question.
// Everything it builds, chunks, embeddings and the vector index, lives for
// this call only.
func (r *RAG) Query(ctx context.Context, query string) (*models.QueryResponse, error) {
	text, err := knowledge.Load(r.cfg.RAG.KnowledgeFile)
	if err != nil {
		return nil, fmt.Errorf("loading knowledge: %w", err)
	}
	chunks := knowledge.Split(text, r.cfg.RAG.ChunkSize, r.cfg.RAG.ChunkOverlap)

	retrieved, err := r.Retrieve(ctx, query, chunks)
	if err != nil {
		return nil, err
	}

	answer, err := r.Generate(ctx, query, retrieved)
	if err != nil {
		return nil, err
	}

	return &models.QueryResponse{
		Query:                query,
		Answer:               answer,
		SourceDocumentsCount: len(retrieved),
		Status:               models.StatusSuccess,
	}, nil
}

// Retrieve embeds the chunks into a fresh index and returns the top matches
// for the query.
func (r *RAG) Retrieve(ctx context.Context, query string, chunks []models.Chunk) ([]models.Chunk, error) {
	vectors, err := embedding.EmbedChunks(ctx, r.embedder, chunks)
	if err != nil {
		return nil, fmt.Errorf("embedding knowledge: %w", err)
	}

	index, err := chromemdb.NewIndex()
	if err != nil {
		return nil, err
	}
	if err := index.Add(ctx, chunks, vectors); err != nil {
		return nil, err
	}

	queryVector, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	return index.Search(ctx, queryVector, r.cfg.RAG.TopK)
}

// Generate renders the two-role prompt over the retrieved context and asks
// the chat model for an answer.
func (r *RAG) Generate(ctx context.Context, query string, retrieved []models.Chunk) (string, error) {
	var contextText strings.Builder
	for _, chunk := range retrieved {
		contextText.WriteString(chunk.Content + "\n\n")
	}

	human, err := contextPrompt.Format(map[string]any{
		"context":  contextText.String(),
		"question": query,
	})
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	return llmservice.GenerateAnswer(ctx, r.llm, models.SystemPrompt, human)
}
