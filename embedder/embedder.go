package embedder

import (
	"context"
	"fmt"
)

// Embedder turns text into fixed-dimension vectors. EmbedBatch must return
// one vector per input, in input order.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Pair binds a passage to its embedding vector.
type Pair struct {
	Text      string
	Embedding []float32
}

// DefaultBatchSize is the number of passages sent per remote embedding call.
const DefaultBatchSize = 10

// BatchError reports which batch call failed during EmbedAll.
type BatchError struct {
	Batch int
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("embedding batch %d failed: %v", e.Batch, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// EmbedAll partitions chunks into consecutive groups of at most batchSize,
// issues one remote call per group, and pairs each chunk with its vector
// positionally. Texts may repeat, so pairing is never done by content. Any
// failed batch fails the whole operation with no partial results.
func EmbedAll(ctx context.Context, e Embedder, chunks []string, batchSize int) ([]Pair, error) {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}

	pairs := make([]Pair, 0, len(chunks))

	for i := 0; i < len(chunks); i += batchSize {
		batch := chunks[i:min(i+batchSize, len(chunks))]

		vectors, err := e.EmbedBatch(ctx, batch)
		if err != nil {
			return nil, &BatchError{Batch: i / batchSize, Err: err}
		}

		if len(vectors) != len(batch) {
			return nil, &BatchError{
				Batch: i / batchSize,
				Err:   fmt.Errorf("expected %d vectors, received %d", len(batch), len(vectors)),
			}
		}

		for j, text := range batch {
			pairs = append(pairs, Pair{Text: text, Embedding: vectors[j]})
		}
	}

	return pairs, nil
}
