package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsPracticeWord(t *testing.T) {
	if !IsPracticeWord("hello") {
		t.Fatalf("expected hello to pass")
	}
	for _, word := range []string{"", "résumé", "naïve", "don’t", "co-op", "Hello"} {
		if IsPracticeWord(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestParseNormalizesAndDedups(t *testing.T) {
	words, err := Parse(strings.NewReader("  Apple\n\napple\nco-op\nbanana\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if strings.Join(words, ",") != "apple,banana" {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(strings.NewReader("\n1234\n")); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("necessary\nrhythm\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	words, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %v", words)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDefault(t *testing.T) {
	words := Default()
	if len(words) < 100 {
		t.Fatalf("expected a sizeable built-in list, got %d", len(words))
	}
	for _, w := range words {
		if !IsPracticeWord(w) {
			t.Fatalf("built-in word %q fails the filter", w)
		}
	}
}
