package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

const defaultSessionID = "default"

type processURLRequest struct {
	URL               string `json:"url"`
	IsSitemap         bool   `json:"is_sitemap"`
	PersistEmbeddings bool   `json:"persist_embeddings"`
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
	Persist   bool   `json:"persist"`
}

func (s *httpServer) handleProcessURL(w http.ResponseWriter, r *http.Request) {
	var req processURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(strings.TrimSpace(req.URL)) == 0 {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	sessionID, err := s.rag.ProcessURL(r.Context(), req.URL, req.IsSitemap, req.PersistEmbeddings)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to process url", "url", req.URL, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"session_id": sessionID,
		"message":    "Processing completed successfully",
	})
}

func (s *httpServer) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(strings.TrimSpace(req.Message)) == 0 {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	sessionID := req.SessionID
	if len(sessionID) == 0 {
		sessionID = defaultSessionID
	}

	answer, err := s.rag.Chat(r.Context(), req.Message, sessionID)
	if err != nil {
		slog.ErrorContext(r.Context(), "chat failed", "session", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"response": answer.Response,
		"debug": map[string]any{
			"contexts_found": answer.ContextsFound,
			"memory_size":    answer.MemorySize,
		},
	})
}

func (s *httpServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if len(sessionID) == 0 {
		sessionID = defaultSessionID
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"history": s.rag.History(sessionID),
	})
}

func (s *httpServer) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID := req.SessionID
	if len(sessionID) == 0 {
		sessionID = defaultSessionID
	}

	s.rag.ClearHistory(sessionID)

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *httpServer) handleEndSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(strings.TrimSpace(req.SessionID)) == 0 {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	if err := s.rag.EndSession(r.Context(), req.SessionID, req.Persist); err != nil {
		slog.ErrorContext(r.Context(), "failed to end session", "session", req.SessionID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}
