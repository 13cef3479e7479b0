package app

import (
	"context"
	"fmt"
	"log"

	"repolens/internal/chat"
	"repolens/internal/gateway/config"
	"repolens/internal/gateway/handler"
	"repolens/internal/gateway/server"
	"repolens/internal/github"
	"repolens/internal/ingest"
	"repolens/internal/llm"
)

type App struct {
	server *server.Server
	llm    llm.Client
	gh     *github.Client
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Dependencies
	gh := github.NewClient(github.Options{
		Token:   cfg.GitHub.Token,
		BaseURL: cfg.GitHub.BaseURL,
		RPS:     cfg.GitHub.RPS,
		Burst:   cfg.GitHub.Burst,
	})
	ingestSvc := ingest.NewService(gh, cfg.Cache.Capacity)

	llmClient, err := newLLMClient(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	log.Printf("Using LLM provider %s", llmClient.Name())
	chatSvc := chat.NewService(llmClient)

	// Routing & Server
	svc := handler.NewService(ingestSvc, chatSvc)
	mux := server.NewMux(svc)
	srv := server.New(cfg.Port, mux)

	return &App{server: srv, llm: llmClient, gh: gh}, nil
}

func newLLMClient(ctx context.Context, cfg config.LLMConfig) (llm.Client, error) {
	switch cfg.Provider {
	case "gemini":
		return llm.NewGeminiClient(ctx, cfg.GeminiModel)
	case "groq":
		return llm.NewGroqClient(cfg.GroqAPIKey, cfg.GroqModel), nil
	default:
		return llm.NewFakeClient(), nil
	}
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.gh.Close()
	_ = a.llm.Close()
	return a.server.Shutdown(ctx)
}
