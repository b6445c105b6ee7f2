package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/2003dinijay/ChatStack/internal/authserver"
	"github.com/2003dinijay/ChatStack/internal/authserver/config"
)

func main() {
	_ = godotenv.Load()

	app, err := authserver.NewApp(config.Load())
	if err != nil {
		log.Fatal(err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
