package tokenizer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/knowledge-engine/tweetsift/internal/config"
	"github.com/knowledge-engine/tweetsift/internal/corpus"
)

// Tokenizer turns raw document text into normalized word tokens.
//
// Text is lowercased, substrings matching the removal pattern are deleted,
// and the remainder is split on the split pattern. Tokens containing the
// exclusion substring are dropped. No stemming or lemmatization is applied.
type Tokenizer struct {
	remove  *regexp.Regexp
	split   *regexp.Regexp
	exclude string
}

// DocTokens is the token sequence of one document, with its label attached
type DocTokens struct {
	DocID  string
	Label  bool
	Tokens []string
}

// New compiles the configured patterns
func New(cfg config.TokenizerConfig) (*Tokenizer, error) {
	remove, err := regexp.Compile(cfg.RemovePattern)
	if err != nil {
		return nil, fmt.Errorf("invalid remove pattern: %w", err)
	}
	split, err := regexp.Compile(cfg.SplitPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid split pattern: %w", err)
	}
	return &Tokenizer{
		remove:  remove,
		split:   split,
		exclude: cfg.Exclude,
	}, nil
}

// Tokenize extracts the ordered token sequence of a single text. It is a
// pure function: same text, same tokens. A text entirely consumed by the
// removal pattern yields an empty sequence.
func (t *Tokenizer) Tokenize(text string) []string {
	cleaned := t.remove.ReplaceAllString(strings.ToLower(text), " ")

	var tokens []string
	for _, field := range t.split.Split(cleaned, -1) {
		if field == "" {
			continue
		}
		if t.exclude != "" && strings.Contains(field, t.exclude) {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

// TokenizeCorpus tokenizes every document, fanning out across workers.
// Documents are independent, so this is a plain parallel map; results come
// back in input order.
func (t *Tokenizer) TokenizeCorpus(ctx context.Context, docs []corpus.Document, workers int) ([]DocTokens, error) {
	if workers < 1 {
		workers = 1
	}

	out := make([]DocTokens, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			out[i] = DocTokens{
				DocID:  doc.ID,
				Label:  doc.IsPrez,
				Tokens: t.Tokenize(doc.Text),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("tokenization failed: %w", err)
	}
	return out, nil
}
