package models

const (
	StatusSuccess = "success"

	SystemPrompt = "You are a corporate knowledge base bot. Answer accurately and concisely based only on the provided context."
)

var (
	ContextPromptTemplate = `Context:
{{.context}}
Question: {{.question}}`
)
