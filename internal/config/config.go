package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DBDSN        string
	MediaDir     string
	LogFile      string
	GeminiAPIKey string
}

func Load() Config {
	// Optional .env for local runs; ignore absence.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "janusportal.db" // sqlite file in project root
	}
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./web/media"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./janusportal.log"
	}
	apiKey := os.Getenv("GEMINI_API_KEY") // empty = AI assistant disabled

	cfg := Config{Port: port, DBDSN: dsn, MediaDir: media, LogFile: logFile, GeminiAPIKey: apiKey}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s GEMINI_API_KEY_SET=%v",
		cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile, apiKey != "")
	return cfg
}
