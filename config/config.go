package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the client's environment configuration.
type Config struct {
	APIURL      string
	HTTPTimeout time.Duration
	DataDir     string
}

// Load reads configuration from a .env file (if present) and the
// environment. Only the API URL is required.
func Load() (*Config, error) {
	// Missing .env is fine, variables may come from the environment.
	_ = godotenv.Load()

	apiURL := os.Getenv("SMARTFITNESS_API_URL")
	if apiURL == "" {
		return nil, errors.New("SMARTFITNESS_API_URL is not set")
	}

	timeout := 15 * time.Second
	if raw := os.Getenv("SMARTFITNESS_HTTP_TIMEOUT"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			return nil, errors.New("SMARTFITNESS_HTTP_TIMEOUT must be a positive number of seconds")
		}
		timeout = time.Duration(secs) * time.Second
	}

	dataDir := os.Getenv("SMARTFITNESS_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dataDir = filepath.Join(home, ".smartfitness")
	}

	return &Config{
		APIURL:      apiURL,
		HTTPTimeout: timeout,
		DataDir:     dataDir,
	}, nil
}
