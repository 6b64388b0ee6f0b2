package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/Uchiha-Network/Story-Guard/internal/config"
	httpinfra "github.com/Uchiha-Network/Story-Guard/internal/infra/http"
	"github.com/Uchiha-Network/Story-Guard/internal/infra/jsonstore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.FromEnv()

	store, err := jsonstore.Open(cfg.StorePath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	srv := httpinfra.NewServer(cfg, store)
	if err := srv.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
