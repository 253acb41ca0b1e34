package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledge-engine/tweetsift/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "archive", cfg.Corpus.Source)
	assert.Equal(t, "2017-01-20", cfg.Corpus.CutoffDate)
	assert.Equal(t, 1000, cfg.Corpus.SamplePerClass)

	assert.Equal(t, 200, cfg.Pipeline.VocabSize)
	assert.Equal(t, 0.7, cfg.Pipeline.TrainFraction)
	assert.Equal(t, int64(42), cfg.Pipeline.Seed)
	assert.Equal(t, 4, cfg.Pipeline.Workers)

	assert.NotEmpty(t, cfg.Tokenizer.RemovePattern)
	assert.NotEmpty(t, cfg.Tokenizer.SplitPattern)
}

func TestLoadFromFile(t *testing.T) {
	yaml := `
corpus:
  source: postgres
  sampleperclass: 250
pipeline:
  vocabsize: 50
  seed: 7
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Corpus.Source)
	assert.Equal(t, 250, cfg.Corpus.SamplePerClass)
	assert.Equal(t, 50, cfg.Pipeline.VocabSize)
	assert.Equal(t, int64(7), cfg.Pipeline.Seed)

	// Untouched keys keep their defaults
	assert.Equal(t, 0.7, cfg.Pipeline.TrainFraction)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load("/does/not/exist.yaml")
	assert.Error(t, err)
}
