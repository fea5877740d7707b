package vectorstore

import "context"

// Store holds passage/vector rows and answers similarity queries. Vector
// dimension is constant per store and owned by the embedding model.
type Store interface {
	// Insert writes one row per record.
	Insert(ctx context.Context, records ...Record) error
	// Query returns up to limit rows ordered by similarity to vector,
	// filtered to similarity >= threshold.
	Query(ctx context.Context, vector []float32, threshold float64, limit int) ([]Match, error)
	// DeleteSession removes every row tagged with sessionID. Deleting a
	// session with no rows is a no-op.
	DeleteSession(ctx context.Context, sessionID string) error
}

// Record is one stored passage/vector pair. SessionID is empty when the row
// is persisted independent of any session.
type Record struct {
	Text      string
	Embedding []float32
	SessionID string
	Temporary bool
}

// Match is one similarity query result.
type Match struct {
	Text       string
	Similarity float64
}
