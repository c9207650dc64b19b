package wordsource

import (
	"context"
	"errors"
	"testing"

	"github.com/verte-zerg/tuispell/internal/generator"
	"github.com/verte-zerg/tuispell/internal/model"
)

func TestLocalFetchWords(t *testing.T) {
	src := NewLocalWords([]string{"apple", "Bad", "co-op", "pear"}, generator.NewWithSeed(1))
	words, err := src.FetchWords(context.Background(), 10)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(words) != 10 {
		t.Fatalf("expected 10 words, got %d", len(words))
	}
	for _, w := range words {
		if w != "apple" && w != "pear" {
			t.Fatalf("unexpected word %q", w)
		}
	}
}

func TestLocalFetchWordsEmpty(t *testing.T) {
	src := NewLocalWords([]string{"123"}, generator.NewWithSeed(1))
	if _, err := src.FetchWords(context.Background(), 3); !errors.Is(err, ErrUpstreamFetch) {
		t.Fatalf("expected ErrUpstreamFetch, got %v", err)
	}
}

func TestLocalBuiltIn(t *testing.T) {
	src, err := NewLocal("")
	if err != nil {
		t.Fatalf("new local: %v", err)
	}
	words, err := src.FetchWords(context.Background(), DefaultCount)
	if err != nil || len(words) != DefaultCount {
		t.Fatalf("expected %d words, got %v (%v)", DefaultCount, words, err)
	}
}

func TestLocalSuggestionsFavorWeakLetters(t *testing.T) {
	src := NewLocalWords([]string{"zebra", "zone", "apple", "pear", "plum", "grape", "lemon"}, generator.NewWithSeed(3))
	errs := model.ErrorMap{"zoo": {Count: 1, Details: []model.ErrorDetail{{Expected: "z", Typed: "s"}}}}
	got := src.FetchSuggestions(context.Background(), errs)
	if len(got) != SuggestionCount {
		t.Fatalf("expected %d suggestions, got %v", SuggestionCount, got)
	}
	seen := map[string]bool{}
	for _, w := range got {
		if seen[w] {
			t.Fatalf("duplicate suggestion %q", w)
		}
		seen[w] = true
	}
	if len(src.FetchSuggestions(context.Background(), model.ErrorMap{})) != 0 {
		t.Fatalf("expected no suggestions without errors")
	}
}
