package chromemdb

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"

	"knowledgebot/internal/models"
)

const collectionName = "knowledge"

// Index is a request-scoped in-memory vector index. It is built fresh for
// every query and discarded with the response.
type Index struct {
	collection *chromem.Collection
}

func NewIndex() (*Index, error) {
	db := chromem.NewDB()
	c, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}
	return &Index{collection: c}, nil
}

// Add stores one embedding per chunk. Chunk IDs must be unique within the
// request.
func (ix *Index) Add(ctx context.Context, chunks []models.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("got %d chunks but %d embeddings", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	docs := make([]chromem.Document, 0, len(chunks))
	for i, chunk := range chunks {
		docs = append(docs, chromem.Document{
			ID:        fmt.Sprintf("chunk-%d", chunk.ChunkID),
			Content:   chunk.Content,
			Metadata:  map[string]string{"chunk_id": strconv.Itoa(chunk.ChunkID)},
			Embedding: normalize(vectors[i]),
		})
	}

	if err := ix.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	return nil
}

// Search returns up to topK chunks nearest to the query vector, best match
// first. topK is clamped to the collection size.
func (ix *Index) Search(ctx context.Context, queryVector []float32, topK int) ([]models.Chunk, error) {
	if count := ix.collection.Count(); topK > count {
		topK = count
	}
	if topK <= 0 {
		return nil, nil
	}

	results, err := ix.collection.QueryEmbedding(ctx, normalize(queryVector), topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %w", err)
	}

	chunks := make([]models.Chunk, 0, len(results))
	for _, res := range results {
		id, _ := strconv.Atoi(res.Metadata["chunk_id"])
		chunks = append(chunks, models.Chunk{
			Content: res.Content,
			ChunkID: id,
		})
	}
	return chunks, nil
}

// chromem compares vectors by dot product, so both sides are normalized to
// unit length here. A zero vector is returned unchanged.
func normalize(v []float32) []float32 {
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)

	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}
