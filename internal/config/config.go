package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DataFile string
	MediaDir string
	LogFile  string
}

func Load() Config {
	// Local .env is a convenience for development; absence is fine.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dataFile := os.Getenv("DATA_FILE")
	if dataFile == "" {
		dataFile = "./data/properties.json"
	}
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./web/media"
	}
	logFile := os.Getenv("LOG_FILE")

	cfg := Config{Port: port, DataFile: dataFile, MediaDir: media, LogFile: logFile}
	log.Printf("[config] PORT=%s DATA_FILE=%s MEDIA_DIR=%s LOG_FILE=%s", cfg.Port, cfg.DataFile, cfg.MediaDir, cfg.LogFile)
	return cfg
}
