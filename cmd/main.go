package main

import (
	"os"
	"time"

	"smartfitness/cli"
	"smartfitness/config"
	"smartfitness/logger"
	"smartfitness/services"
	"smartfitness/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("could not load config: %v", err)
		os.Exit(1)
	}

	store, err := storage.NewStore(cfg.DataDir)
	if err != nil {
		logger.Error("could not open data directory %s: %v", cfg.DataDir, err)
		os.Exit(1)
	}

	api := services.NewAPIClient(cfg.APIURL, cfg.HTTPTimeout, services.EnsureClientID(store))
	auth := services.NewAuthService(api, store)
	auth.Restore()
	freshness := services.NewFreshnessService(store)

	app := &cli.App{
		Auth:            auth,
		Gallery:         services.NewGalleryService(api, store, freshness, time.Local),
		Photos:          services.NewPhotoService(api, freshness),
		Recommendations: services.NewRecommendationService(api, freshness),
	}

	if err := cli.Execute(app); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
