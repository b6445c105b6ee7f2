package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/2003dinijay/ChatStack/internal/emailworker"
	"github.com/2003dinijay/ChatStack/internal/emailworker/config"
)

func main() {
	_ = godotenv.Load()

	app := emailworker.NewApp(config.Load())
	if err := app.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
