package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDocs = []Document{
	{ID: "1", Title: "API Authentication", Category: "security", Content: "Bearer tokens expire after 24 hours."},
	{ID: "2", Title: "Rate Limits", Category: "usage", Content: "Authentication failures do not count against the limit."},
	{ID: "3", Title: "Webhooks", Category: "integrations", Content: "Signed JSON payloads with retries."},
}

func TestSearch_FieldWeights(t *testing.T) {
	idx := NewIndex(testDocs)

	hits := idx.Search("authentication", 10)
	require.Len(t, hits, 2)

	// Title match (x3) outranks content match (x1).
	assert.Equal(t, "1", hits[0].Document.ID)
	assert.Equal(t, titleWeight, hits[0].Score)
	assert.Equal(t, "2", hits[1].Document.ID)
	assert.Equal(t, contentWeight, hits[1].Score)
}

func TestSearch_CategoryWeight(t *testing.T) {
	idx := NewIndex(testDocs)

	hits := idx.Search("security", 10)
	require.Len(t, hits, 1)
	assert.Equal(t, categoryWeight, hits[0].Score)
}

func TestSearch_DescendingOrder(t *testing.T) {
	idx := NewIndex(testDocs)

	hits := idx.Search("authentication rate limits", 10)
	require.NotEmpty(t, hits)

	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
}

func TestSearch_ZeroScoreExcluded(t *testing.T) {
	idx := NewIndex(testDocs)

	hits := idx.Search("kubernetes", 10)
	assert.Empty(t, hits)
}

func TestSearch_LimitHonored(t *testing.T) {
	idx := NewIndex(testDocs)

	hits := idx.Search("the", 1)
	assert.LessOrEqual(t, len(hits), 1)
}

func TestSearch_CaseInsensitiveAndPunctuation(t *testing.T) {
	idx := NewIndex(testDocs)

	hits := idx.Search("WEBHOOKS?", 10)
	require.Len(t, hits, 1)
	assert.Equal(t, "3", hits[0].Document.ID)
}

func TestSearch_EmptyQuery(t *testing.T) {
	idx := NewIndex(testDocs)

	assert.Nil(t, idx.Search("", 10))
	assert.Nil(t, idx.Search("   ", 10))
}

func TestNewIndex_CopiesInput(t *testing.T) {
	docs := []Document{{ID: "1", Title: "Original"}}
	idx := NewIndex(docs)

	docs[0].Title = "Mutated"

	hits := idx.Search("original", 1)
	require.Len(t, hits, 1)
	assert.Equal(t, "Original", hits[0].Document.Title)
}
