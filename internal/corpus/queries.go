package corpus

const (
	selectDocuments = `
		SELECT id, text, created_at, favorite_count, source
		FROM documents
		ORDER BY created_at`

	countDocuments = `SELECT COUNT(*) FROM documents`
)
