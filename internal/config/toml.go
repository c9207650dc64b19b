// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	AI       AIConfig       `toml:"ai"`
	Proxy    ProxyConfig    `toml:"proxy"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Words    *int    `toml:"words"`
	Source   *string `toml:"source"`
	WordList *string `toml:"wordlist"`
	Suggest  *bool   `toml:"suggest"`
}

// AIConfig maps the LLM backend settings.
type AIConfig struct {
	Provider    *string  `toml:"provider"`
	Model       *string  `toml:"model"`
	BaseURL     *string  `toml:"base-url"`
	Temperature *float64 `toml:"temperature"`
}

// ProxyConfig maps the word proxy client and server settings.
type ProxyConfig struct {
	URL    *string `toml:"url"`
	Listen *string `toml:"listen"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// DefaultFileContent is written when the config command creates a new file.
const DefaultFileContent = `[practice]
# words = 20
# source = "ai"        # ai, proxy or local
# wordlist = ""        # used by the local source
# suggest = true

[ai]
# provider = "mistral"
# model = "mistral-tiny"
# base-url = ""
# temperature = 0.7

[proxy]
# url = "http://localhost:3000"
# listen = "127.0.0.1:3000"
`
