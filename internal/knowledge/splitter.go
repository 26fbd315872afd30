package knowledge

import "knowledgebot/internal/models"

// Split cuts text into fixed-size chunks. With zero overlap every byte of the
// input lands in exactly one chunk, so concatenating the chunks reconstructs
// the text and len(chunks) == ceil(len(text)/size).
func Split(text string, size, overlap int) []models.Chunk {
	if size <= 0 || len(text) == 0 {
		return nil
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	step := size - overlap
	var chunks []models.Chunk
	for start := 0; start < len(text); start += step {
		end := min(start+size, len(text))
		chunks = append(chunks, models.Chunk{
			Content: text[start:end],
			ChunkID: len(chunks) + 1,
		})
		if end == len(text) {
			break
		}
	}
	return chunks
}
