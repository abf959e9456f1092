package night

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReflectionExtractsLabeledLines(t *testing.T) {
	raw := "Learned: pointers are values\nGrateful: quiet evening\nMood: 4\n\nLong day but the refactor finally landed."

	r := ParseReflection(raw)
	require.NotNil(t, r)
	assert.Equal(t, "pointers are values", r.Learned)
	assert.Equal(t, "quiet evening", r.Grateful)
	assert.Equal(t, "4", r.Mood)
	assert.Equal(t, "Long day but the refactor finally landed.", r.Freeform)
}

func TestParseReflectionDefaults(t *testing.T) {
	r := ParseReflection("just some unstructured text")
	require.NotNil(t, r)
	assert.Empty(t, r.Learned)
	assert.Empty(t, r.Grateful)
	assert.Equal(t, "3", r.Mood, "mood defaults to 3 when absent")
	assert.Empty(t, r.Freeform)
}

func TestParseReflectionBlankMoodLineKeptEmpty(t *testing.T) {
	r := ParseReflection("Learned: patience\nMood:")
	require.NotNil(t, r)
	assert.Empty(t, r.Mood, "a present but blank label is not defaulted")
}

func TestParseReflectionCaseInsensitiveLabels(t *testing.T) {
	r := ParseReflection("learned: go generics\nGRATEFUL: coffee")
	require.NotNil(t, r)
	assert.Equal(t, "go generics", r.Learned)
	assert.Equal(t, "coffee", r.Grateful)
}

func TestParseReflectionJoinsTrailingBlocks(t *testing.T) {
	raw := "Mood: 5\n\nfirst block\n\nsecond block"
	r := ParseReflection(raw)
	require.NotNil(t, r)
	assert.Equal(t, "first block\n\nsecond block", r.Freeform)
}

func TestParseReflectionEmptyInput(t *testing.T) {
	assert.Nil(t, ParseReflection(""))
}
