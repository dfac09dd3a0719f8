package main

import (
	"log"
	"os"

	"inmofeed/pkg/config"
	"inmofeed/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, relying on system environment variables: %v", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(os.Stdout, cfg.Logging.Level)

	app := NewApp(cfg)
	app.InitializeServer()
	app.StartServer()
}
