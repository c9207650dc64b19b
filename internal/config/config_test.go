package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Practice.Words != nil || cfg.AI.Provider != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[practice]
words = 12
source = "local"
suggest = false

[ai]
provider = "openai"
model = "gpt-4o-mini"
temperature = 0.2

[proxy]
url = "http://127.0.0.1:3000"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Practice.Words == nil || *cfg.Practice.Words != 12 {
		t.Fatalf("unexpected words: %v", cfg.Practice.Words)
	}
	if cfg.Practice.Source == nil || *cfg.Practice.Source != "local" {
		t.Fatalf("unexpected source: %v", cfg.Practice.Source)
	}
	if cfg.Practice.Suggest == nil || *cfg.Practice.Suggest {
		t.Fatalf("expected suggest=false")
	}
	if cfg.AI.Provider == nil || *cfg.AI.Provider != "openai" {
		t.Fatalf("unexpected provider: %v", cfg.AI.Provider)
	}
	if cfg.AI.Temperature == nil || *cfg.AI.Temperature != 0.2 {
		t.Fatalf("unexpected temperature: %v", cfg.AI.Temperature)
	}
	if cfg.Proxy.URL == nil || *cfg.Proxy.URL != "http://127.0.0.1:3000" {
		t.Fatalf("unexpected proxy url: %v", cfg.Proxy.URL)
	}
	if cfg.Proxy.Listen != nil {
		t.Fatalf("listen should be unset")
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[practice]\nlang = \"en\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "practice.lang") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultFileContentDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(DefaultFileContent), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err != nil {
		t.Fatalf("default content should decode: %v", err)
	}
}

func TestPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "tuispell", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "tuispell", "tuispell.db") {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/data", "tuispell", "tuispell.log") {
		t.Fatalf("unexpected log path %q", got)
	}
	if got := DefaultWordListPath(); got != filepath.Join("/cfg", "tuispell", "wordlists", "en.txt") {
		t.Fatalf("unexpected wordlist path %q", got)
	}
}

func TestLoadSecrets(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	if err := os.WriteFile(dotenv, []byte("MISTRAL_API_KEY=from-file\nTUISPELL_DEBUG=true\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("TUISPELL_API_KEY", "")
	t.Setenv("MISTRAL_API_KEY", "")
	t.Setenv("TUISPELL_DEBUG", "")
	os.Unsetenv("MISTRAL_API_KEY")
	os.Unsetenv("TUISPELL_DEBUG")

	s, err := LoadSecrets(dotenv)
	if err != nil {
		t.Fatalf("load secrets: %v", err)
	}
	if s.ResolvedAPIKey() != "from-file" {
		t.Fatalf("expected fallback key from .env, got %q", s.ResolvedAPIKey())
	}
	if !s.Debug {
		t.Fatalf("expected debug from .env")
	}

	t.Setenv("TUISPELL_API_KEY", "primary")
	s, err = LoadSecrets(dotenv)
	if err != nil {
		t.Fatalf("reload secrets: %v", err)
	}
	if s.ResolvedAPIKey() != "primary" {
		t.Fatalf("expected primary key, got %q", s.ResolvedAPIKey())
	}
}
