package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from the environment
// (optionally seeded from a .env file).
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DataDir     string `env:"DATA_DIR" envDefault:"data"`
	WordsFile   string `env:"WORDS_FILE" envDefault:"data/words.json"`
	WordsPerDay int    `env:"WORDS_PER_DAY" envDefault:"3"`

	DictionaryAPIURL string        `env:"DICTIONARY_API_URL" envDefault:"https://api.dictionaryapi.dev"`
	LookupTimeout    time.Duration `env:"LOOKUP_TIMEOUT" envDefault:"8s"`

	CookieMaxAge   time.Duration `env:"COOKIE_MAX_AGE" envDefault:"24h"`
	RateLimitRPS   int           `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"10"`
}

// loadConfig reads the environment into a Config. A missing .env file is
// not an error.
func loadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.WordsPerDay < 1 {
		return Config{}, fmt.Errorf("WORDS_PER_DAY must be at least 1, got %d", cfg.WordsPerDay)
	}
	return cfg, nil
}
