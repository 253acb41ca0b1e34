package corpus

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Store reads documents from a Postgres documents table
type Store struct {
	conn   *sqlx.DB
	cutoff time.Time
}

// documentRow maps one row of the documents table
type documentRow struct {
	ID            string    `db:"id"`
	Text          string    `db:"text"`
	CreatedAt     time.Time `db:"created_at"`
	FavoriteCount int       `db:"favorite_count"`
	Source        string    `db:"source"`
}

// NewStore connects to Postgres and verifies the connection
func NewStore(host string, port int, user, password, dbname, sslmode string, cutoffDate string) (*Store, error) {
	cutoff, err := time.Parse("2006-01-02", cutoffDate)
	if err != nil {
		return nil, fmt.Errorf("invalid cutoff date %q: %w", cutoffDate, err)
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
	conn, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("db connection error: %w", err)
	}
	return &Store{conn: conn, cutoff: cutoff}, nil
}

// Load fetches every document and labels it against the cutoff date
func (s *Store) Load(ctx context.Context) ([]Document, error) {
	var rows []documentRow
	if err := s.conn.SelectContext(ctx, &rows, selectDocuments); err != nil {
		return nil, fmt.Errorf("failed to select documents: %w", err)
	}

	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, Document{
			ID:        row.ID,
			Text:      row.Text,
			IsPrez:    !row.CreatedAt.Before(s.cutoff),
			CreatedAt: row.CreatedAt,
			Favorites: row.FavoriteCount,
			Source:    SourceName(row.Source),
		})
	}
	return docs, nil
}

// Count returns the number of stored documents
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.conn.GetContext(ctx, &n, countDocuments); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return n, nil
}

// Close releases the underlying connection pool
func (s *Store) Close() error {
	return s.conn.Close()
}
