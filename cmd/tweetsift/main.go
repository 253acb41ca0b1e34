package main

import (
	"context"
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/knowledge-engine/tweetsift/internal/classifier"
	"github.com/knowledge-engine/tweetsift/internal/config"
	"github.com/knowledge-engine/tweetsift/internal/corpus"
	"github.com/knowledge-engine/tweetsift/internal/feature"
	"github.com/knowledge-engine/tweetsift/internal/pipeline"
	"github.com/knowledge-engine/tweetsift/internal/split"
	"github.com/knowledge-engine/tweetsift/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "path to a yaml config file (optional)")
	flag.Parse()

	// Setup Logging
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	entry := logger.WithField("service", "tweetsift")

	entry.Info("Starting tweet feature-extraction pipeline")

	// 1. Config
	cfg, err := config.Load(*configPath)
	if err != nil {
		entry.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. Corpus
	docs, err := loadCorpus(ctx, cfg, entry)
	if err != nil {
		entry.Fatalf("Failed to load corpus: %v", err)
	}
	prez, pre := corpus.ClassCounts(docs)
	entry.WithFields(logrus.Fields{"total": len(docs), "prez": prez, "pre": pre}).Info("Corpus loaded")

	docs = corpus.SampleByLabel(docs, cfg.Corpus.SamplePerClass, cfg.Pipeline.Seed)
	entry.WithField("sampled", len(docs)).Info("Corpus sampled per class")

	// 3. Pipeline
	pipe, err := pipeline.New(cfg, entry)
	if err != nil {
		entry.Fatalf("Failed to initialize pipeline: %v", err)
	}
	result, err := pipe.Run(ctx, docs)
	if err != nil {
		entry.Fatalf("Pipeline failed: %v", err)
	}

	// 4. Export tables
	store, err := storage.NewFileStorage(cfg.Output.DataDir)
	if err != nil {
		entry.Fatalf("Failed to initialize storage: %v", err)
	}
	if err := store.Save("features_count", result.CountTable); err != nil {
		entry.WithError(err).Error("Failed to save count table")
	}
	if err := store.Save("features_tfidf", result.TFIDFTable); err != nil {
		entry.WithError(err).Error("Failed to save tf-idf table")
	}

	// 5. Train and evaluate one tree per representation
	for _, run := range []struct {
		name  string
		table feature.Table
	}{
		{"count", result.CountTable},
		{"tfidf", result.TFIDFTable},
	} {
		if err := trainAndEvaluate(run.name, run.table, classifier.NewDecisionTree(), cfg, entry); err != nil {
			entry.Fatalf("Evaluation on %s features failed: %v", run.name, err)
		}
	}
}

func loadCorpus(ctx context.Context, cfg *config.Config, entry *logrus.Entry) ([]corpus.Document, error) {
	if cfg.Corpus.Source == "postgres" {
		pg := cfg.Corpus.Postgres
		store, err := corpus.NewStore(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName, pg.SSLMode, cfg.Corpus.CutoffDate)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.Load(ctx)
	}

	loader, err := corpus.NewArchiveLoader(cfg.Corpus.ArchivePath, cfg.Corpus.CutoffDate, entry)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}

func trainAndEvaluate(name string, table feature.Table, learner classifier.Classifier, cfg *config.Config, entry *logrus.Entry) error {
	log := entry.WithField("features", name)

	train, test := split.Stratified(table, cfg.Pipeline.TrainFraction, cfg.Pipeline.Seed)
	log.WithFields(logrus.Fields{"train": len(train.Rows), "test": len(test.Rows)}).Info("Split table")

	if err := learner.Fit(train); err != nil {
		return err
	}

	for _, eval := range []struct {
		set   string
		table feature.Table
	}{
		{"train", train},
		{"test", test},
	} {
		predicted, err := learner.Predict(eval.table)
		if err != nil {
			return err
		}
		matrix, err := split.Evaluate(eval.table.Labels(), predicted)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"set":       eval.set,
			"confusion": matrix.String(),
			"accuracy":  matrix.Accuracy(),
		}).Info("Evaluated")
	}
	return nil
}
