package vocab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/knowledge-engine/tweetsift/internal/tokenizer"
	"github.com/knowledge-engine/tweetsift/internal/vocab"
)

func TestCount(t *testing.T) {
	docs := []tokenizer.DocTokens{
		{DocID: "1", Tokens: []string{"the", "cat", "the"}},
		{DocID: "2", Tokens: []string{"the", "dog"}},
	}

	counts := vocab.Count(docs)
	assert.Equal(t, map[string]int{"the": 3, "cat": 1, "dog": 1}, counts)
}

func TestTopKWithoutTiesAtCutoff(t *testing.T) {
	counts := map[string]int{"a": 5, "b": 5, "c": 3, "d": 1}

	selected := vocab.TopK(counts, 3)

	assert.Len(t, selected, 3)
	assert.Contains(t, selected, "a")
	assert.Contains(t, selected, "b")
	assert.Contains(t, selected, "c")
}

func TestTopKTiesInflateBeyondK(t *testing.T) {
	counts := map[string]int{"a": 5, "b": 5, "c": 5, "d": 1}

	// a, b and c all share rank 1, so K=2 keeps the three of them
	selected := vocab.TopK(counts, 2)

	assert.Len(t, selected, 3)
	assert.Contains(t, selected, "a")
	assert.Contains(t, selected, "b")
	assert.Contains(t, selected, "c")
	assert.NotContains(t, selected, "d")
}

func TestTopKSmallCorpusKeepsEverything(t *testing.T) {
	counts := map[string]int{"a": 2, "b": 1}

	selected := vocab.TopK(counts, 200)
	assert.Len(t, selected, 2)
}

func TestTopKEmptyAndZero(t *testing.T) {
	assert.Empty(t, vocab.TopK(map[string]int{}, 10))
	assert.Empty(t, vocab.TopK(map[string]int{"a": 1}, 0))
}

func TestTermsAreSorted(t *testing.T) {
	vocabulary := map[string]struct{}{"zebra": {}, "apple": {}, "mango": {}}
	assert.Equal(t, []string{"apple", "mango", "zebra"}, vocab.Terms(vocabulary))
}
