package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultCorpus(t *testing.T) {
	text, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultText, text)
	require.Contains(t, text, "support@example.com")
}

func TestLoad_TextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain knowledge text"), 0o644))

	text, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "plain knowledge text", text)
}

func TestLoad_MarkdownFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.md")
	md := "# Operating Rules\n\nContact **support** at support@example.com.\n"
	require.NoError(t, os.WriteFile(path, []byte(md), 0o644))

	text, err := Load(path)
	require.NoError(t, err)
	require.Contains(t, text, "Operating Rules")
	require.Contains(t, text, "support@example.com")
	require.NotContains(t, text, "<")
	require.NotContains(t, text, "#")
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	_, err := Load("corpus.zip")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported knowledge format")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestStripTags(t *testing.T) {
	require.Equal(t, "hello world", stripTags("<p>hello <strong>world</strong></p>"))
	require.Equal(t, "no tags", stripTags("no tags"))
}
