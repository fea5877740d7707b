package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/w-h-a/rag/chunker"
	"github.com/w-h-a/rag/embedder"
	"github.com/w-h-a/rag/vectorstore"
)

// Source produces extracted page text for a single URL or a whole sitemap.
type Source interface {
	ExtractURL(ctx context.Context, url string) (string, error)
	ExtractSitemap(ctx context.Context, sitemapURL string) (string, error)
}

// Service runs the ingestion pipeline: crawl, chunk, embed, store. Each
// request runs synchronously end-to-end and carries its own session id; no
// session state is shared between requests.
type Service struct {
	options  Options
	source   Source
	embedder embedder.Embedder
	store    vectorstore.Store
}

// ProcessURL ingests a page or sitemap and returns the fresh session id its
// rows were stamped with. When persist is true, rows are written without a
// session reference and survive session teardown. Rows inserted before a
// failing step are not rolled back.
func (s *Service) ProcessURL(ctx context.Context, url string, sitemap bool, persist bool) (string, error) {
	sessionID := uuid.NewString()

	var text string
	var err error

	if sitemap {
		text, err = s.source.ExtractSitemap(ctx, url)
	} else {
		text, err = s.source.ExtractURL(ctx, url)
	}
	if err != nil {
		return "", err
	}

	chunks := chunker.Split(text, s.options.ChunkSize)

	slog.InfoContext(ctx, "preprocessed content into chunks", "session", sessionID, "chunks", len(chunks))

	pairs, err := embedder.EmbedAll(ctx, s.embedder, chunks, s.options.BatchSize)
	if err != nil {
		return "", err
	}

	records := make([]vectorstore.Record, len(pairs))
	for i, pair := range pairs {
		rec := vectorstore.Record{
			Text:      pair.Text,
			Embedding: pair.Embedding,
		}
		if !persist {
			rec.SessionID = sessionID
			rec.Temporary = true
		}
		records[i] = rec
	}

	if err := s.store.Insert(ctx, records...); err != nil {
		return "", fmt.Errorf("failed to store embeddings: %w", err)
	}

	slog.InfoContext(ctx, "stored embeddings", "session", sessionID, "rows", len(records), "persist", persist)

	return sessionID, nil
}

// EndSession tears a session down. Without persist, every row tagged with
// the session id is deleted; the operation is idempotent.
func (s *Service) EndSession(ctx context.Context, sessionID string, persist bool) error {
	if persist {
		return nil
	}

	if err := s.store.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete temporary embeddings: %w", err)
	}

	slog.InfoContext(ctx, "cleaned up temporary embeddings", "session", sessionID)

	return nil
}

func New(source Source, e embedder.Embedder, store vectorstore.Store, opts ...Option) *Service {
	if source == nil {
		panic("source is required")
	}

	if e == nil {
		panic("embedder is required")
	}

	if store == nil {
		panic("vector store is required")
	}

	options := NewOptions(opts...)

	return &Service{
		options:  options,
		source:   source,
		embedder: e,
		store:    store,
	}
}
