package pipeline

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/knowledge-engine/tweetsift/internal/aggregate"
	"github.com/knowledge-engine/tweetsift/internal/config"
	"github.com/knowledge-engine/tweetsift/internal/corpus"
	"github.com/knowledge-engine/tweetsift/internal/feature"
	"github.com/knowledge-engine/tweetsift/internal/tokenizer"
	"github.com/knowledge-engine/tweetsift/internal/vocab"
	"github.com/knowledge-engine/tweetsift/internal/weighting"
)

// Pipeline orchestrates the feature-extraction stages. Every stage takes an
// immutable input and returns a new value; the pipeline itself holds no
// corpus state between runs.
type Pipeline struct {
	Config    *config.Config
	Logger    *logrus.Entry
	Tokenizer *tokenizer.Tokenizer
}

// Result carries both balanced feature tables plus the observability numbers
// recoverable data-shape decisions must leave behind.
type Result struct {
	CountTable feature.Table
	TFIDFTable feature.Table

	Vocabulary []string
	Drops      aggregate.DropReport
	// PreBalancePrez / PreBalancePre are the class sizes after dropping
	// zero-match documents but before balancing
	PreBalancePrez int
	PreBalancePre  int
	Survivors      int
}

// New builds the pipeline, compiling the tokenizer patterns
func New(cfg *config.Config, logger *logrus.Entry) (*Pipeline, error) {
	tok, err := tokenizer.New(cfg.Tokenizer)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		Config:    cfg,
		Logger:    logger,
		Tokenizer: tok,
	}, nil
}

// Run executes tokenize → vocabulary → aggregate → weight, then materializes
// one balanced feature table per weighting scheme. The same seed drives the
// balancing draw of both tables so they retain the same documents.
func (p *Pipeline) Run(ctx context.Context, docs []corpus.Document) (*Result, error) {
	// 1. Tokenize (parallel map over documents)
	tokenized, err := p.Tokenizer.TokenizeCorpus(ctx, docs, p.Config.Pipeline.Workers)
	if err != nil {
		return nil, err
	}

	// 2. Vocabulary: tie-inclusive top-K over corpus-wide counts
	counts := vocab.Count(tokenized)
	vocabulary := vocab.TopK(counts, p.Config.Pipeline.VocabSize)
	terms := vocab.Terms(vocabulary)
	p.Logger.WithFields(logrus.Fields{
		"distinct_tokens": len(counts),
		"vocab_size":      len(terms),
	}).Info("Vocabulary selected")

	// 3. Aggregate, dropping zero-match documents
	agg, drops := aggregate.Build(tokenized, vocabulary)
	if drops.Dropped > 0 {
		p.Logger.WithFields(logrus.Fields{
			"dropped":      drops.Dropped,
			"dropped_prez": drops.DroppedByLabel[true],
			"dropped_pre":  drops.DroppedByLabel[false],
		}).Warn("Documents without vocabulary matches were dropped")
	}
	if agg.Len() == 0 {
		return nil, fmt.Errorf("no documents survived vocabulary restriction")
	}

	// 4. Weighting
	weighted, err := weighting.Compute(agg)
	if err != nil {
		return nil, err
	}

	// 5. Feature tables, one per scheme, balanced before splitting
	labels := agg.Labels()
	prez, pre := classCounts(labels)
	p.Logger.WithFields(logrus.Fields{
		"survivors": agg.Len(),
		"prez":      prez,
		"pre":       pre,
	}).Info("Class counts before balancing")
	seed := p.Config.Pipeline.Seed

	countTable, err := p.buildBalanced(weighted, terms, labels, feature.SchemeCount, seed)
	if err != nil {
		return nil, err
	}
	tfidfTable, err := p.buildBalanced(weighted, terms, labels, feature.SchemeTFIDF, seed)
	if err != nil {
		return nil, err
	}

	return &Result{
		CountTable:     countTable,
		TFIDFTable:     tfidfTable,
		Vocabulary:     terms,
		Drops:          drops,
		PreBalancePrez: prez,
		PreBalancePre:  pre,
		Survivors:      agg.Len(),
	}, nil
}

func (p *Pipeline) buildBalanced(weighted []weighting.Weighted, terms []string, labels map[string]bool, scheme feature.Scheme, seed int64) (feature.Table, error) {
	table, err := feature.Build(weighted, terms, labels, scheme)
	if err != nil {
		return feature.Table{}, fmt.Errorf("failed to build %s table: %w", scheme, err)
	}

	balanced := feature.Balance(table, seed)
	pos, neg := balanced.ClassCounts()
	p.Logger.WithFields(logrus.Fields{
		"scheme": string(scheme),
		"rows":   len(balanced.Rows),
		"prez":   pos,
		"pre":    neg,
	}).Info("Feature table built")
	return balanced, nil
}

func classCounts(labels map[string]bool) (prez, pre int) {
	for _, label := range labels {
		if label {
			prez++
		} else {
			pre++
		}
	}
	return prez, pre
}
