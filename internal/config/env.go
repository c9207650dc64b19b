package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Secrets holds values read from the environment rather than the config file.
type Secrets struct {
	APIKey        string `env:"TUISPELL_API_KEY"`
	MistralAPIKey string `env:"MISTRAL_API_KEY"`
	Debug         bool   `env:"TUISPELL_DEBUG" envDefault:"false"`
}

// LoadSecrets reads an optional .env file and then parses the environment.
// Variables already set in the process take precedence over the file.
func LoadSecrets(dotenvPaths ...string) (Secrets, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load(dotenvPaths...)
	var s Secrets
	if err := env.Parse(&s); err != nil {
		return Secrets{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return s, nil
}

// ResolvedAPIKey prefers the tuispell key and falls back to the Mistral one.
func (s Secrets) ResolvedAPIKey() string {
	if s.APIKey != "" {
		return s.APIKey
	}
	return s.MistralAPIKey
}
