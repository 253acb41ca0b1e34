package tokenizer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledge-engine/tweetsift/internal/config"
	"github.com/knowledge-engine/tweetsift/internal/corpus"
	"github.com/knowledge-engine/tweetsift/internal/tokenizer"
)

func defaultConfig() config.TokenizerConfig {
	return config.TokenizerConfig{
		RemovePattern: `https?://\S+|www\.\S+|&[a-z]+;|\brt\b`,
		SplitPattern:  `[^a-z0-9_'#@]+`,
		Exclude:       "realdonaldtrump",
	}
}

func TestTokenizeCleanup(t *testing.T) {
	tok, err := tokenizer.New(defaultConfig())
	require.NoError(t, err)

	tokens := tok.Tokenize("RT @user: Great day! https://t.co/abc123 &amp; more")
	assert.Equal(t, []string{"@user", "great", "day", "more"}, tokens)
}

func TestTokenizeKeepsHashtagsMentionsApostrophes(t *testing.T) {
	tok, err := tokenizer.New(defaultConfig())
	require.NoError(t, err)

	tokens := tok.Tokenize("Don't miss #MAGA, says @potus")
	assert.Equal(t, []string{"don't", "miss", "#maga", "says", "@potus"}, tokens)
}

func TestTokenizeExclusion(t *testing.T) {
	tok, err := tokenizer.New(defaultConfig())
	require.NoError(t, err)

	tokens := tok.Tokenize("@realDonaldTrump thanks for everything")
	assert.Equal(t, []string{"thanks", "for", "everything"}, tokens)
}

func TestTokenizeFullyRemovedTextYieldsNoTokens(t *testing.T) {
	tok, err := tokenizer.New(defaultConfig())
	require.NoError(t, err)

	tokens := tok.Tokenize("https://t.co/abc123")
	assert.Len(t, tokens, 0)
}

func TestTokenizeIsPure(t *testing.T) {
	tok, err := tokenizer.New(defaultConfig())
	require.NoError(t, err)

	first := tok.Tokenize("Make America great again!")
	second := tok.Tokenize("Make America great again!")
	assert.Equal(t, first, second)
}

func TestNewRejectsBadPattern(t *testing.T) {
	cfg := defaultConfig()
	cfg.RemovePattern = `https?://(`
	_, err := tokenizer.New(cfg)
	assert.Error(t, err)
}

func TestTokenizeCorpusPreservesOrderAndLabels(t *testing.T) {
	tok, err := tokenizer.New(defaultConfig())
	require.NoError(t, err)

	docs := []corpus.Document{
		{ID: "1", Text: "the cat sat", IsPrez: false},
		{ID: "2", Text: "the dog sat", IsPrez: true},
		{ID: "3", Text: "https://t.co/xyz", IsPrez: true},
	}

	tokenized, err := tok.TokenizeCorpus(context.Background(), docs, 3)
	require.NoError(t, err)
	require.Len(t, tokenized, 3)

	assert.Equal(t, "1", tokenized[0].DocID)
	assert.Equal(t, []string{"the", "cat", "sat"}, tokenized[0].Tokens)
	assert.False(t, tokenized[0].Label)

	assert.Equal(t, "2", tokenized[1].DocID)
	assert.True(t, tokenized[1].Label)

	// Fully-removed text propagates as an empty sequence
	assert.Equal(t, "3", tokenized[2].DocID)
	assert.Len(t, tokenized[2].Tokens, 0)
}
