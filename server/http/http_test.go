package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	rag "github.com/w-h-a/rag"
	"github.com/w-h-a/rag/crawler"
	"github.com/w-h-a/rag/extractor"
	"github.com/w-h-a/rag/internal/service/chat"
	memorystore "github.com/w-h-a/rag/vectorstore/memory"
)

type stubExtractor struct {
	text string
}

func (s *stubExtractor) Extract(ctx context.Context, url string) (string, error) {
	return s.text, nil
}

type stubEmbedder struct{}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0}
	}
	return vectors, nil
}

type stubGenerator struct {
	response string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return s.response, nil
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	c := crawler.NewCrawler(
		extractor.NewExtractor(
			extractor.WithStrategies(&stubExtractor{text: "documentation text"}),
		),
	)

	r := rag.New(c, &stubEmbedder{}, memorystore.NewStore(), &stubGenerator{response: "a grounded answer"})

	srv, ok := NewServer(r).(*httpServer)
	require.True(t, ok)

	return srv.srv.Handler
}

func doJSON(t *testing.T, handler http.Handler, method string, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&decoded))

	return rec, decoded
}

func TestProcessURLEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	t.Run("returns a session id on success", func(t *testing.T) {
		rec, body := doJSON(t, handler, http.MethodPost, "/api/process-url", map[string]any{
			"url": "https://a.test/page",
		})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.NotEmpty(t, body["session_id"])
		assert.Equal(t, "Processing completed successfully", body["message"])
	})

	t.Run("missing url is a bad request", func(t *testing.T) {
		rec, body := doJSON(t, handler, http.MethodPost, "/api/process-url", map[string]any{})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, false, body["success"])
	})
}

func TestChatEndpoint(t *testing.T) {
	t.Run("empty store yields the insufficient information response", func(t *testing.T) {
		handler := newTestHandler(t)

		rec, body := doJSON(t, handler, http.MethodPost, "/api/chat", map[string]any{
			"message": "anything?",
		})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, chat.InsufficientInfo, body["response"])
	})

	t.Run("answers from ingested content and tracks memory", func(t *testing.T) {
		handler := newTestHandler(t)

		_, ingest := doJSON(t, handler, http.MethodPost, "/api/process-url", map[string]any{
			"url": "https://a.test/page",
		})
		require.Equal(t, true, ingest["success"])

		rec, body := doJSON(t, handler, http.MethodPost, "/api/chat", map[string]any{
			"message":    "what does the page say?",
			"session_id": "sess-1",
		})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "a grounded answer", body["response"])

		debug, ok := body["debug"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(1), debug["contexts_found"])
		assert.Equal(t, float64(1), debug["memory_size"])
	})

	t.Run("missing message is a bad request", func(t *testing.T) {
		handler := newTestHandler(t)

		rec, _ := doJSON(t, handler, http.MethodPost, "/api/chat", map[string]any{})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHistoryEndpoints(t *testing.T) {
	handler := newTestHandler(t)

	_, ingest := doJSON(t, handler, http.MethodPost, "/api/process-url", map[string]any{
		"url": "https://a.test/page",
	})
	require.Equal(t, true, ingest["success"])

	_, chatBody := doJSON(t, handler, http.MethodPost, "/api/chat", map[string]any{
		"message": "first question?",
	})
	require.Equal(t, true, chatBody["success"])

	t.Run("history defaults to the default session", func(t *testing.T) {
		rec, body := doJSON(t, handler, http.MethodGet, "/api/history", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		history, ok := body["history"].([]any)
		require.True(t, ok)
		require.Len(t, history, 1)

		turn, ok := history[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "first question?", turn["user"])
		assert.Equal(t, "a grounded answer", turn["assistant"])
	})

	t.Run("unknown session has empty history", func(t *testing.T) {
		rec, body := doJSON(t, handler, http.MethodGet, "/api/history?session_id=nobody", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		history, ok := body["history"].([]any)
		require.True(t, ok)
		assert.Empty(t, history)
	})

	t.Run("clear-history empties the session", func(t *testing.T) {
		rec, body := doJSON(t, handler, http.MethodPost, "/api/clear-history", map[string]any{})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])

		_, after := doJSON(t, handler, http.MethodGet, "/api/history", nil)
		history, ok := after["history"].([]any)
		require.True(t, ok)
		assert.Empty(t, history)
	})
}

func TestEndSessionEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	_, ingest := doJSON(t, handler, http.MethodPost, "/api/process-url", map[string]any{
		"url": "https://a.test/page",
	})
	sessionID, ok := ingest["session_id"].(string)
	require.True(t, ok)

	t.Run("missing session id is a bad request", func(t *testing.T) {
		rec, _ := doJSON(t, handler, http.MethodPost, "/api/end-session", map[string]any{})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-persisted teardown removes the session's rows", func(t *testing.T) {
		rec, body := doJSON(t, handler, http.MethodPost, "/api/end-session", map[string]any{
			"session_id": sessionID,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])

		_, chatBody := doJSON(t, handler, http.MethodPost, "/api/chat", map[string]any{
			"message": "anything left?",
		})
		assert.Equal(t, chat.InsufficientInfo, chatBody["response"])
	})
}
