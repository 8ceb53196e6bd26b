package main

import (
	"context"
	"log"

	"github.com/fatih/color"

	"creative-eval-be/internal/bootstrap"
	"creative-eval-be/internal/config"
	"creative-eval-be/internal/server"
	"creative-eval-be/internal/tracer"
)

func main() {
	// 1. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load Configuration
	cfg := config.Load()

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	color.Cyan("Creative Evaluation Platform API")
	color.Green("Evaluation: POST /query | Chat: /api/chat/v1")

	// 5. Initialize and Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
