package models

// Chunk is one fixed-size piece of the knowledge text
type Chunk struct {
	Content string
	ChunkID int
}

// QueryRequest is the inbound JSON body. Either field may carry the question,
// prompt wins when both are present.
type QueryRequest struct {
	Prompt string `json:"prompt"`
	Query  string `json:"query"`
}

// QueryResponse is the success body returned to the caller
type QueryResponse struct {
	Query                string `json:"query"`
	Answer               string `json:"answer"`
	SourceDocumentsCount int    `json:"source_documents_count"`
	Status               string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
