package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/w-h-a/rag/embedder"
	"github.com/w-h-a/rag/generator"
	"github.com/w-h-a/rag/internal/service/memory"
	"github.com/w-h-a/rag/vectorstore"
)

// InsufficientInfo is returned verbatim when retrieval finds nothing; the
// chat model is not consulted in that case.
const InsufficientInfo = "I don't have enough information in my database to answer that question."

// RetrievalError reports a vector store query failure. It is surfaced to the
// caller rather than silently degraded.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// Answer is one grounded chat response.
type Answer struct {
	Response      string
	ContextsFound int
	MemorySize    int
}

// Service embeds a question, retrieves the nearest stored passages, and
// composes a grounded prompt from retrieved context plus recent conversation
// turns for the session.
type Service struct {
	options   Options
	embedder  embedder.Embedder
	store     vectorstore.Store
	generator generator.Generator
	memory    *memory.Service
}

func (s *Service) Answer(ctx context.Context, question string, sessionID string) (Answer, error) {
	vec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return Answer{}, fmt.Errorf("failed to embed question: %w", err)
	}

	matches, err := s.store.Query(ctx, vec, s.options.Threshold, s.options.TopK)
	if err != nil {
		return Answer{}, &RetrievalError{Err: err}
	}

	if len(matches) == 0 {
		return Answer{
			Response:   InsufficientInfo,
			MemorySize: s.memory.Size(sessionID),
		}, nil
	}

	contexts := make([]string, len(matches))
	for i, match := range matches {
		contexts[i] = match.Text
	}
	contextText := strings.Join(contexts, "\n\n")

	prompt := s.composePrompt(question, contextText, s.memory.History(sessionID))

	response, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return Answer{}, err
	}

	s.memory.Append(sessionID, memory.Turn{
		User:      question,
		Assistant: response,
		Context:   contextText,
	})

	return Answer{
		Response:      response,
		ContextsFound: len(matches),
		MemorySize:    s.memory.Size(sessionID),
	}, nil
}

func (s *Service) composePrompt(question string, contextText string, turns []memory.Turn) string {
	historyLines := make([]string, len(turns))
	for i, turn := range turns {
		historyLines[i] = fmt.Sprintf("User: %s\nAssistant: %s", turn.User, turn.Assistant)
	}
	historyText := strings.Join(historyLines, "\n")

	return fmt.Sprintf(
		"Previous conversation:\n%s\n\nContext:\n%s\n\nCurrent question: %s",
		historyText,
		contextText,
		question,
	)
}

func New(e embedder.Embedder, store vectorstore.Store, g generator.Generator, mem *memory.Service, opts ...Option) *Service {
	if e == nil {
		panic("embedder is required")
	}

	if store == nil {
		panic("vector store is required")
	}

	if g == nil {
		panic("generator is required")
	}

	if mem == nil {
		panic("conversation memory is required")
	}

	options := NewOptions(opts...)

	return &Service{
		options:   options,
		embedder:  e,
		store:     store,
		generator: g,
		memory:    mem,
	}
}
