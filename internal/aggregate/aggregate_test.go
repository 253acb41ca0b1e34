package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/knowledge-engine/tweetsift/internal/aggregate"
	"github.com/knowledge-engine/tweetsift/internal/tokenizer"
)

func vocabulary(terms ...string) map[string]struct{} {
	v := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		v[term] = struct{}{}
	}
	return v
}

func TestBuildCountsAndTotals(t *testing.T) {
	docs := []tokenizer.DocTokens{
		{DocID: "1", Label: true, Tokens: []string{"cat", "cat", "dog", "parrot"}},
		{DocID: "2", Label: false, Tokens: []string{"dog"}},
	}

	agg, report := aggregate.Build(docs, vocabulary("cat", "dog"))

	assert.Equal(t, 2, report.Kept)
	assert.Equal(t, 0, report.Dropped)
	assert.Equal(t, 2, agg.Len())

	// "parrot" is outside the vocabulary: never materialized, never counted
	assert.Equal(t, map[string]int{"cat": 2, "dog": 1}, agg.Counts("1"))
	assert.Equal(t, 3, agg.Total("1"))
	assert.Equal(t, map[string]int{"dog": 1}, agg.Counts("2"))
	assert.Equal(t, 1, agg.Total("2"))
}

func TestBuildNeverInventsTerms(t *testing.T) {
	docs := []tokenizer.DocTokens{
		{DocID: "1", Label: true, Tokens: []string{"cat", "sat"}},
	}
	vocab := vocabulary("cat", "dog", "sat")

	agg, _ := aggregate.Build(docs, vocab)

	for term, count := range agg.Counts("1") {
		assert.Contains(t, vocab, term)
		assert.Positive(t, count)
	}
	// "dog" is in the vocabulary but not in the document
	assert.NotContains(t, agg.Counts("1"), "dog")
}

func TestBuildDropsZeroMatchDocuments(t *testing.T) {
	docs := []tokenizer.DocTokens{
		{DocID: "1", Label: true, Tokens: []string{"cat"}},
		{DocID: "2", Label: true, Tokens: []string{"unknown", "words"}},
		{DocID: "3", Label: false, Tokens: nil},
	}

	agg, report := aggregate.Build(docs, vocabulary("cat"))

	assert.Equal(t, 1, report.Kept)
	assert.Equal(t, 2, report.Dropped)
	assert.Equal(t, 1, report.DroppedByLabel[true])
	assert.Equal(t, 1, report.DroppedByLabel[false])

	assert.Equal(t, []string{"1"}, agg.DocIDs())
	assert.Nil(t, agg.Counts("2"))
	assert.Zero(t, agg.Total("2"))
}

func TestDocsWith(t *testing.T) {
	docs := []tokenizer.DocTokens{
		{DocID: "1", Label: true, Tokens: []string{"the", "cat", "sat"}},
		{DocID: "2", Label: true, Tokens: []string{"the", "dog", "sat"}},
		{DocID: "3", Label: false, Tokens: []string{"cat", "dog", "run"}},
		{DocID: "4", Label: false, Tokens: []string{"run", "run", "run"}},
	}

	agg, _ := aggregate.Build(docs, vocabulary("the", "cat", "sat", "dog", "run"))

	assert.Equal(t, 4, agg.Len())
	assert.Equal(t, 2, agg.DocsWith("the"))
	assert.Equal(t, 2, agg.DocsWith("cat"))
	assert.Equal(t, 2, agg.DocsWith("sat"))
	assert.Equal(t, 2, agg.DocsWith("dog"))
	assert.Equal(t, 2, agg.DocsWith("run"))
	assert.Equal(t, 0, agg.DocsWith("absent"))
	assert.Equal(t, 5, agg.ObservedTerms())
}

func TestLabels(t *testing.T) {
	docs := []tokenizer.DocTokens{
		{DocID: "1", Label: true, Tokens: []string{"cat"}},
		{DocID: "2", Label: false, Tokens: []string{"cat"}},
	}

	agg, _ := aggregate.Build(docs, vocabulary("cat"))

	assert.True(t, agg.Label("1"))
	assert.False(t, agg.Label("2"))
	assert.Equal(t, map[string]bool{"1": true, "2": false}, agg.Labels())
}
