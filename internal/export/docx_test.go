package export

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptParagraphs(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		want       []string
	}{
		{"empty", "", nil},
		{"no punctuation", "hello world", []string{"hello world"}},
		{
			name:       "drops repeated sentences",
			transcript: "Hi there. Hi there. Welcome back!",
			want:       []string{"Hi there. Welcome back!"},
		},
		{
			name:       "groups sentences",
			transcript: "One. Two. Three. Four. Five. Six.",
			want:       []string{"One. Two. Three. Four. Five.", "Six."},
		},
		{
			name:       "keeps existing line breaks",
			transcript: "First line.\nSecond line?",
			want:       []string{"First line.", "Second line?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transcriptParagraphs(tt.transcript))
		})
	}
}

func TestCleanMarkdownInline(t *testing.T) {
	assert.Equal(t, "bold code", cleanMarkdownInline("**bold** `code`"))
}

func TestWriteDocx(t *testing.T) {
	out := filepath.Join(t.TempDir(), "export.docx")

	err := WriteDocx(Document{
		Title:      "Transcript",
		Source:     "https://youtu.be/abc",
		Transcript: "hello world. this is a test.",
		Summary:    "# Overview\n- **greeting** said twice",
	}, out)
	require.NoError(t, err)

	zr, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer zr.Close()

	var body string
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		body = string(data)
	}

	require.NotEmpty(t, body, "document.xml missing")
	assert.True(t, strings.Contains(body, "hello world."))
	assert.True(t, strings.Contains(body, "greeting"))
	assert.True(t, strings.Contains(body, "Overview"))
}
