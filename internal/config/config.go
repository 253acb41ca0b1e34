package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the configuration for the feature-extraction pipeline
type Config struct {
	Corpus    CorpusConfig
	Tokenizer TokenizerConfig
	Pipeline  PipelineConfig
	Output    OutputConfig
}

// CorpusConfig selects and parameterizes the document source
type CorpusConfig struct {
	// Source is either "archive" (JSON file) or "postgres"
	Source      string
	ArchivePath string
	// CutoffDate separates the two label classes: documents created on or
	// after it are labeled is_prez=true. Format: 2006-01-02.
	CutoffDate     string
	SamplePerClass int
	Postgres       PostgresConfig
}

// PostgresConfig holds the connection settings for the documents table
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// TokenizerConfig carries the cleanup and split patterns as opaque strings
type TokenizerConfig struct {
	RemovePattern string
	SplitPattern  string
	Exclude       string
}

// PipelineConfig holds the knobs of the numeric pipeline
type PipelineConfig struct {
	VocabSize     int
	TrainFraction float64
	Seed          int64
	Workers       int
}

// OutputConfig controls feature-table export
type OutputConfig struct {
	DataDir string
}

// Load reads configuration from an optional yaml file and the environment,
// falling back to defaults. An empty path skips the file entirely.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TWEETSIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cannot unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("corpus.source", "archive")
	v.SetDefault("corpus.archivepath", "./data/tweets.json")
	v.SetDefault("corpus.cutoffdate", "2017-01-20")
	v.SetDefault("corpus.sampleperclass", 1000)
	v.SetDefault("corpus.postgres.host", "localhost")
	v.SetDefault("corpus.postgres.port", 5432)
	v.SetDefault("corpus.postgres.user", "tweetsift")
	v.SetDefault("corpus.postgres.password", "")
	v.SetDefault("corpus.postgres.dbname", "tweets")
	v.SetDefault("corpus.postgres.sslmode", "disable")

	// Tokens may contain letters, digits, underscore, apostrophe, # and @;
	// everything else is a boundary. Removal strips URLs, retweet markers
	// and HTML entity escapes before splitting.
	v.SetDefault("tokenizer.removepattern", `https?://\S+|www\.\S+|&[a-z]+;|\brt\b`)
	v.SetDefault("tokenizer.splitpattern", `[^a-z0-9_'#@]+`)
	v.SetDefault("tokenizer.exclude", "realdonaldtrump")

	v.SetDefault("pipeline.vocabsize", 200)
	v.SetDefault("pipeline.trainfraction", 0.7)
	v.SetDefault("pipeline.seed", 42)
	v.SetDefault("pipeline.workers", 4)

	v.SetDefault("output.datadir", "./data/tables")
}
