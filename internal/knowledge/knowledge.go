package knowledge

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// DefaultText ships with the binary so the service answers out of the box.
// Deployments point rag.knowledge_file at their own corpus instead.
const DefaultText = `Internal Knowledge Base Operating Rules
1. System name: KnowledgeBot V1.0
2. Runtime: Go HTTP service backed by hosted embedding and chat models
3. Data sources: internal policy handbook (April 2024 edition) and the latest workflow design documents
4. Characteristics: retrieval-augmented generation keeps hallucinated answers to a minimum
5. Owning team: AI Enablement Office
6. Support contact: support@example.com
`

// Load returns the knowledge corpus as plain text. An empty path selects the
// embedded default corpus.
func Load(path string) (string, error) {
	if path == "" {
		return DefaultText, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return loadPDF(path)
	case ".md", ".markdown":
		return loadMarkdown(path)
	case ".txt", "":
		return loadText(path)
	default:
		return "", fmt.Errorf("unsupported knowledge format: %s", ext)
	}
}

func loadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func loadMarkdown(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert(data, &buf); err != nil {
		return "", err
	}
	return stripTags(buf.String()), nil
}

func loadPDF(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return "", err
	}

	var text strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}
	return text.String(), nil
}

// stripTags drops the HTML element tags left by the markdown renderer and
// keeps the text runs between them.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
