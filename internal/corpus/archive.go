package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// archiveTimeLayout is the created_at format used by tweet archive exports
const archiveTimeLayout = "Mon Jan 02 15:04:05 -0700 2006"

// archiveRecord mirrors one entry of a tweet archive JSON dump
type archiveRecord struct {
	IDStr         string `json:"id_str"`
	Text          string `json:"text"`
	CreatedAt     string `json:"created_at"`
	FavoriteCount int    `json:"favorite_count"`
	Source        string `json:"source"`
}

// ArchiveLoader reads documents from a tweet archive JSON file and labels
// them against a cutoff date.
type ArchiveLoader struct {
	Path   string
	Cutoff time.Time
	Logger *logrus.Entry
}

// NewArchiveLoader parses the cutoff date (2006-01-02) and returns a loader
func NewArchiveLoader(path, cutoffDate string, logger *logrus.Entry) (*ArchiveLoader, error) {
	cutoff, err := time.Parse("2006-01-02", cutoffDate)
	if err != nil {
		return nil, fmt.Errorf("invalid cutoff date %q: %w", cutoffDate, err)
	}
	return &ArchiveLoader{Path: path, Cutoff: cutoff, Logger: logger}, nil
}

// Load reads the whole archive into memory. Records with unparseable
// timestamps are skipped and counted, not fatal.
func (l *ArchiveLoader) Load() ([]Document, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	docs, skipped, err := decodeArchive(f, l.Cutoff)
	if err != nil {
		return nil, err
	}
	if skipped > 0 && l.Logger != nil {
		l.Logger.WithField("skipped", skipped).Warn("Archive records with bad timestamps were skipped")
	}
	return docs, nil
}

func decodeArchive(r io.Reader, cutoff time.Time) ([]Document, int, error) {
	var records []archiveRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, 0, fmt.Errorf("failed to decode archive: %w", err)
	}

	docs := make([]Document, 0, len(records))
	skipped := 0
	for _, rec := range records {
		created, err := time.Parse(archiveTimeLayout, rec.CreatedAt)
		if err != nil {
			skipped++
			continue
		}
		docs = append(docs, Document{
			ID:        rec.IDStr,
			Text:      rec.Text,
			IsPrez:    !created.Before(cutoff),
			CreatedAt: created,
			Favorites: rec.FavoriteCount,
			Source:    SourceName(rec.Source),
		})
	}
	return docs, skipped, nil
}

// SourceName extracts the client name from an archive source field, which is
// an HTML anchor like `<a href="...">Twitter for iPhone</a>`. Plain strings
// come back unchanged.
func SourceName(source string) string {
	if !strings.Contains(source, "<") {
		return strings.TrimSpace(source)
	}

	tokenizer := html.NewTokenizer(strings.NewReader(source))
	var textBuilder strings.Builder
	for {
		tokenType := tokenizer.Next()
		switch tokenType {
		case html.ErrorToken:
			return strings.TrimSpace(textBuilder.String())
		case html.TextToken:
			textBuilder.WriteString(tokenizer.Token().Data)
		}
	}
}
