package translation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBatchUserPrompt(t *testing.T) {
	pb := NewPromptBuilder()
	prompt := pb.BuildBatchUserPrompt(
		[]string{"おはよう", "おやすみ"},
		map[string]string{"妃愛": "Hiyori"},
	)

	assert.Contains(t, prompt, "妃愛 → Hiyori")
	assert.Contains(t, prompt, "[1] おはよう")
	assert.Contains(t, prompt, "[2] おやすみ")
	assert.Contains(t, prompt, BatchSeparator)
}

func TestRelevantTerms(t *testing.T) {
	terms := map[string]string{
		"妃愛": "Hiyori",
		"時雨": "Shigure",
	}
	relevant := RelevantTerms(terms, []string{"「妃愛、おはよう」"})
	assert.Equal(t, map[string]string{"妃愛": "Hiyori"}, relevant)
}

func TestLoadTerminology(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.yaml")
	require.NoError(t, os.WriteFile(path, []byte("妃愛: Hiyori\n時雨: Shigure\n"), 0644))

	terms, err := LoadTerminology(path)
	require.NoError(t, err)
	assert.Equal(t, "Hiyori", terms["妃愛"])
	assert.Len(t, terms, 2)
}

func TestLoadTerminologyEmptyPath(t *testing.T) {
	terms, err := LoadTerminology("")
	require.NoError(t, err)
	assert.Empty(t, terms)
}

func TestSplitBatchResponse(t *testing.T) {
	parts := SplitBatchResponse("one ||| two ||| three", 3)
	assert.Equal(t, []string{"one", "two", "three"}, parts)

	// Short responses pad with empty strings.
	parts = SplitBatchResponse("only", 2)
	assert.Equal(t, []string{"only", ""}, parts)
}
