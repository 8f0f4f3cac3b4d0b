package main

import (
	"errors"
	"flag"
	"log"

	"static-map-viewer/internal/app"
	"static-map-viewer/internal/config"
	"static-map-viewer/internal/logger"
)

func main() {
	envFile := flag.String("env", config.DefaultEnvFile, "dotenv file holding API_KEY and optional MAPVIEWER_* settings")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		if errors.Is(err, config.ErrConfigMissing) {
			log.Fatalf("Configuration missing: %v (set API_KEY in %s or the environment)", err, *envFile)
		}
		log.Fatalf("Configuration failed: %v", err)
	}

	appLogger := logger.New(cfg.LogLevel, cfg.JSONLogs)

	application, err := app.NewApplication(cfg, appLogger)
	if err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Application execution failed: %v", err)
	}

	appLogger.Info("Application", "terminated", nil)
}
