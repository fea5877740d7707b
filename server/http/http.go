package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	rag "github.com/w-h-a/rag"
	"github.com/w-h-a/rag/server"
)

type httpServer struct {
	options server.Options
	rag     *rag.RAG
	srv     *http.Server
}

func (s *httpServer) Run() error {
	slog.Info("http server listening", "address", s.options.Address)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *httpServer) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *httpServer) routes() http.Handler {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/process-url", s.handleProcessURL).Methods(http.MethodPost)
	api.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)
	api.HandleFunc("/history", s.handleHistory).Methods(http.MethodGet)
	api.HandleFunc("/clear-history", s.handleClearHistory).Methods(http.MethodPost)
	api.HandleFunc("/end-session", s.handleEndSession).Methods(http.MethodPost)

	var handler http.Handler = router

	handler = requestLogger(handler)

	if ms, ok := MiddlewareFrom(s.options.Context); ok {
		for i := len(ms) - 1; i >= 0; i-- {
			handler = ms[i](handler)
		}
	}

	return handler
}

func requestLogger(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h.ServeHTTP(w, r)
		slog.InfoContext(r.Context(), "request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func NewServer(r *rag.RAG, opts ...server.Option) server.Server {
	if r == nil {
		panic("rag is required")
	}

	options := server.NewOptions(opts...)

	s := &httpServer{
		options: options,
		rag:     r,
	}

	s.srv = &http.Server{
		Addr:              options.Address,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}
