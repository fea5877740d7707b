package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	rag "github.com/w-h-a/rag"
	"github.com/w-h-a/rag/crawler"
	"github.com/w-h-a/rag/embedder"
	googleembedder "github.com/w-h-a/rag/embedder/google"
	openaiembedder "github.com/w-h-a/rag/embedder/openai"
	"github.com/w-h-a/rag/extractor"
	"github.com/w-h-a/rag/extractor/rendered"
	"github.com/w-h-a/rag/extractor/static"
	"github.com/w-h-a/rag/generator"
	anthropicgenerator "github.com/w-h-a/rag/generator/anthropic"
	openaigenerator "github.com/w-h-a/rag/generator/openai"
	"github.com/w-h-a/rag/server"
	httpserver "github.com/w-h-a/rag/server/http"
	"github.com/w-h-a/rag/vectorstore"
	memorystore "github.com/w-h-a/rag/vectorstore/memory"
	postgresstore "github.com/w-h-a/rag/vectorstore/postgres"
)

const systemPrompt = "You are a helpful assistant. Use the provided context and conversation history to answer the user's question. " +
	"For follow-up questions, consider both the current context and the previous conversation. " +
	"If you don't have enough information to answer a question, say so."

var (
	cfg struct {
		// Server config
		Address string `help:"Address for the http server" default:":5000"`

		// Store config
		StoreLocation string `help:"Postgres location for the vector store, or 'memory' for the in-process store" env:"STORE_LOCATION" default:"memory"`

		// Embedder config
		EmbedderProvider string `help:"Embedding provider (openai or google)" default:"openai"`
		EmbedderModel    string `help:"Model identifier for vector embeddings" default:"text-embedding-3-small"`

		// Generator config
		GeneratorProvider string `help:"Chat provider (openai or anthropic)" default:"openai"`
		GeneratorModel    string `help:"Model identifier for chat completions" default:"gpt-3.5-turbo"`

		// API keys
		OpenAIKey    string `help:"OpenAI API key" env:"OPENAI_API_KEY" default:""`
		AnthropicKey string `help:"Anthropic API key" env:"ANTHROPIC_API_KEY" default:""`
		GoogleKey    string `help:"Google API key" env:"GOOGLE_API_KEY" default:""`

		// Pipeline config
		ChunkSize    int           `help:"Passage size in characters" default:"500"`
		BatchSize    int           `help:"Passages per embedding call" default:"10"`
		TopK         int           `help:"Passages retrieved per question" default:"5"`
		Threshold    float64       `help:"Similarity floor for retrieved passages" default:"0.0"`
		MemoryWindow int           `help:"Conversation turns kept per session" default:"5"`
		FetchTimeout time.Duration `help:"Timeout per extraction strategy" default:"20s"`
	}
)

func main() {
	godotenv.Load()

	_ = kong.Parse(&cfg)
	ctx := context.Background()

	// Create extractor with static-then-rendered fallback
	ex := extractor.NewExtractor(
		extractor.WithStrategies(
			static.NewExtractor(extractor.WithTimeout(cfg.FetchTimeout)),
			rendered.NewExtractor(extractor.WithTimeout(cfg.FetchTimeout)),
		),
	)

	// Create crawler
	c := crawler.NewCrawler(ex, crawler.WithTimeout(cfg.FetchTimeout))

	// Create embedder
	var e embedder.Embedder
	switch cfg.EmbedderProvider {
	case "google":
		e = googleembedder.NewEmbedder(
			embedder.WithApiKey(cfg.GoogleKey),
			embedder.WithModel(cfg.EmbedderModel),
		)
	default:
		e = openaiembedder.NewEmbedder(
			embedder.WithApiKey(cfg.OpenAIKey),
			embedder.WithModel(cfg.EmbedderModel),
		)
	}

	// Create generator
	var g generator.Generator
	switch cfg.GeneratorProvider {
	case "anthropic":
		g = anthropicgenerator.NewGenerator(
			generator.WithApiKey(cfg.AnthropicKey),
			generator.WithModel(cfg.GeneratorModel),
			generator.WithSystemPrompt(systemPrompt),
		)
	default:
		g = openaigenerator.NewGenerator(
			generator.WithApiKey(cfg.OpenAIKey),
			generator.WithModel(cfg.GeneratorModel),
			generator.WithSystemPrompt(systemPrompt),
		)
	}

	// Create vector store
	var store vectorstore.Store
	if cfg.StoreLocation == "memory" {
		store = memorystore.NewStore()
	} else {
		store = postgresstore.NewStore(
			vectorstore.WithLocation(cfg.StoreLocation),
		)
	}

	// Wire the pipeline
	r := rag.New(
		c,
		e,
		store,
		g,
		rag.WithChunkSize(cfg.ChunkSize),
		rag.WithBatchSize(cfg.BatchSize),
		rag.WithTopK(cfg.TopK),
		rag.WithThreshold(cfg.Threshold),
		rag.WithMemoryCapacity(cfg.MemoryWindow),
	)

	// Serve
	srv := httpserver.NewServer(
		r,
		server.WithAddress(cfg.Address),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			slog.ErrorContext(ctx, "server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-sigCh:
		slog.InfoContext(ctx, "shutting down", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			slog.ErrorContext(ctx, "shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}
