package main

import (
	"context"
	"log"

	"resumeiq-backend/internal/ai/gemini"
	"resumeiq-backend/internal/session"
	"resumeiq-backend/internal/shared/config"
	"resumeiq-backend/internal/shared/server"
	"resumeiq-backend/internal/shared/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	if err := telemetry.Setup(cfg.LogJSON, cfg.Debug); err != nil {
		log.Fatalf("logger error: %v", err)
	}

	client, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("gemini client error: %v", err)
	}

	svc := session.NewService(client, client)
	r := server.NewRouter(cfg, svc)

	addr := server.Addr(cfg.Port)
	telemetry.Info("server.start", map[string]any{"addr": addr, "model": client.Model()})

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
