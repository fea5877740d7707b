package rag

import (
	"context"

	"github.com/w-h-a/rag/crawler"
	"github.com/w-h-a/rag/embedder"
	"github.com/w-h-a/rag/generator"
	"github.com/w-h-a/rag/internal/service/chat"
	"github.com/w-h-a/rag/internal/service/ingest"
	"github.com/w-h-a/rag/internal/service/memory"
	"github.com/w-h-a/rag/vectorstore"
)

// Answer is one grounded chat response.
type Answer struct {
	Response      string
	ContextsFound int
	MemorySize    int
}

// Turn is one question/answer exchange in a session's history.
type Turn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
	Context   string `json:"context"`
}

// RAG wires the ingestion pipeline, retrieval composer, and conversation
// memory behind one surface for transports to call.
type RAG struct {
	ingest *ingest.Service
	chat   *chat.Service
	memory *memory.Service
}

// ProcessURL ingests a page or sitemap into the vector store and returns the
// session id stamped on its rows.
func (r *RAG) ProcessURL(ctx context.Context, url string, sitemap bool, persist bool) (string, error) {
	return r.ingest.ProcessURL(ctx, url, sitemap, persist)
}

// Chat answers a question grounded in retrieved passages and the session's
// recent turns.
func (r *RAG) Chat(ctx context.Context, message string, sessionID string) (Answer, error) {
	answer, err := r.chat.Answer(ctx, message, sessionID)
	if err != nil {
		return Answer{}, err
	}

	return Answer{
		Response:      answer.Response,
		ContextsFound: answer.ContextsFound,
		MemorySize:    answer.MemorySize,
	}, nil
}

// History returns the session's turns, oldest first.
func (r *RAG) History(sessionID string) []Turn {
	history := r.memory.History(sessionID)

	turns := make([]Turn, len(history))
	for i, turn := range history {
		turns[i] = Turn{
			User:      turn.User,
			Assistant: turn.Assistant,
			Context:   turn.Context,
		}
	}

	return turns
}

// ClearHistory drops the session's conversation memory.
func (r *RAG) ClearHistory(sessionID string) {
	r.memory.Clear(sessionID)
}

// EndSession tears down a session, purging its temporary rows unless persist
// is set.
func (r *RAG) EndSession(ctx context.Context, sessionID string, persist bool) error {
	return r.ingest.EndSession(ctx, sessionID, persist)
}

func New(
	c *crawler.Crawler,
	e embedder.Embedder,
	store vectorstore.Store,
	g generator.Generator,
	opts ...Option,
) *RAG {
	options := NewOptions(opts...)

	mem := memory.New(
		memory.WithCapacity(options.MemoryCapacity),
		memory.WithTTL(options.MemoryTTL),
	)

	ingestService := ingest.New(
		c,
		e,
		store,
		ingest.WithChunkSize(options.ChunkSize),
		ingest.WithBatchSize(options.BatchSize),
	)

	chatService := chat.New(
		e,
		store,
		g,
		mem,
		chat.WithThreshold(options.Threshold),
		chat.WithTopK(options.TopK),
	)

	return &RAG{
		ingest: ingestService,
		chat:   chatService,
		memory: mem,
	}
}
