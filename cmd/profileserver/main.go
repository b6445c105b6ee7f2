package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/2003dinijay/ChatStack/internal/profileserver"
	"github.com/2003dinijay/ChatStack/internal/profileserver/config"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	app, err := profileserver.NewApp(ctx, config.Load())
	if err != nil {
		log.Fatal(err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatal(err)
	}
}
