package wordsource

import (
	"context"
	"fmt"

	"github.com/verte-zerg/tuispell/internal/generator"
	"github.com/verte-zerg/tuispell/internal/model"
	"github.com/verte-zerg/tuispell/internal/stats"
	"github.com/verte-zerg/tuispell/internal/wordlist"
)

const (
	weakTop    = 8
	weakFactor = 2.0
)

// Local samples words from a word list file, for offline practice.
type Local struct {
	words []string
	gen   *generator.Generator
}

// NewLocal loads the word list at path, or the built-in list when path is empty.
func NewLocal(path string) (*Local, error) {
	if path == "" {
		return NewLocalWords(wordlist.Default(), generator.New()), nil
	}
	words, err := wordlist.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load word list %s: %w", path, err)
	}
	return NewLocalWords(words, generator.New()), nil
}

// NewLocalWords builds a Local source from an in-memory list.
func NewLocalWords(words []string, gen *generator.Generator) *Local {
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if wordlist.IsPracticeWord(w) {
			kept = append(kept, w)
		}
	}
	return &Local{words: kept, gen: gen}
}

// FetchWords implements Source.
func (l *Local) FetchWords(_ context.Context, count int) ([]string, error) {
	if err := ValidateCount(count); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}
	if len(l.words) == 0 {
		return nil, fmt.Errorf("%w: word list is empty", ErrUpstreamFetch)
	}
	return l.gen.Generate(l.words, count), nil
}

// FetchSuggestions implements Advisor by favoring words that contain the
// letters missed most often.
func (l *Local) FetchSuggestions(_ context.Context, errs model.ErrorMap) []string {
	weak := stats.WeakLetters(errs, weakTop)
	if len(weak) == 0 {
		return []string{}
	}
	return l.gen.GenerateDistinct(l.words, SuggestionCount, weak, weakFactor)
}
