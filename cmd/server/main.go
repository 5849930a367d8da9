package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/travelboard/internal/server"
	"github.com/dmitrijs2005/travelboard/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {

	ctx := context.Background()

	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
