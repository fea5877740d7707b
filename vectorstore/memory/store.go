package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/w-h-a/rag/vectorstore"
)

type memoryStore struct {
	options vectorstore.Options
	records map[string]vectorstore.Record
	mtx     sync.RWMutex
}

func (s *memoryStore) Insert(ctx context.Context, records ...vectorstore.Record) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, rec := range records {
		cpy := make([]float32, len(rec.Embedding))
		copy(cpy, rec.Embedding)
		rec.Embedding = cpy

		s.records[uuid.New().String()] = rec
	}

	return nil
}

func (s *memoryStore) Query(ctx context.Context, vector []float32, threshold float64, limit int) ([]vectorstore.Match, error) {
	if limit < 1 {
		return nil, nil
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	candidates := make([]vectorstore.Match, 0, len(s.records))

	for _, rec := range s.records {
		score := vectorstore.CosineSimilarity(vector, rec.Embedding)
		if score < threshold {
			continue
		}
		candidates = append(candidates, vectorstore.Match{
			Text:       rec.Text,
			Similarity: score,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Similarity > candidates[j].Similarity
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}

func (s *memoryStore) DeleteSession(ctx context.Context, sessionID string) error {
	if len(sessionID) == 0 {
		return nil
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	for id, rec := range s.records {
		if rec.SessionID == sessionID {
			delete(s.records, id)
		}
	}

	return nil
}

func NewStore(opts ...vectorstore.Option) vectorstore.Store {
	options := vectorstore.NewOptions(opts...)

	s := &memoryStore{
		options: options,
		records: map[string]vectorstore.Record{},
		mtx:     sync.RWMutex{},
	}

	return s
}
