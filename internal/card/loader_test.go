package card

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDeckFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeDeckFile(t, `[
		{"id":"f-1","lang":"nl","type":"sentence","prompt":"Ik ben moe.","answer":"I am tired.","translation":"I am tired.","metadata":{"tags":["sentence"]}},
		{"id":"f-2","lang":"nl","type":"vocab","prompt":"brood","answer":["bread","loaf"],"metadata":{"tags":["het"]}}
	]`)

	cards, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	assert.Equal(t, "f-1", cards[0].ID)
	assert.Equal(t, TypeSentence, cards[0].Type)
	assert.Equal(t, SourceFile, cards[0].Source)

	assert.Equal(t, AnswerSet{"bread", "loaf"}, cards[1].Answer)
	assert.Equal(t, "het", cards[1].Article())
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read deck file")
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	path := writeDeckFile(t, `{not json`)
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid deck JSON")
}

func TestLoadFile_SchemaViolation(t *testing.T) {
	path := writeDeckFile(t, `[{"id":"","lang":"nl","type":"vocab","prompt":"x","answer":"y"}]`)
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deck validation failed")
}
