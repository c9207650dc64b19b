package wordsource

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/verte-zerg/tuispell/internal/lenient"
	"github.com/verte-zerg/tuispell/internal/llm"
	"github.com/verte-zerg/tuispell/internal/model"
)

const maxSummaryWords = 10

// AI asks a language model for words and suggestions.
type AI struct {
	completer llm.Completer
	logger    *zap.SugaredLogger
}

// NewAI returns an AI source backed by completer.
func NewAI(completer llm.Completer, logger *zap.SugaredLogger) *AI {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &AI{completer: completer, logger: logger}
}

// FetchWords implements Source.
func (a *AI) FetchWords(ctx context.Context, count int) ([]string, error) {
	if err := ValidateCount(count); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}
	a.logger.Infow("requesting words", "count", count)
	content, err := a.completer.Complete(ctx, WordsPrompt(count))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}
	a.logger.Debugw("raw word response", "content", content)

	words, method, err := lenient.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: could not extract words from %q", ErrUpstreamFetch, ErrMalformedPayload, truncate(content, 120))
	}
	if method != lenient.MethodStrict && method != lenient.MethodBracket {
		a.logger.Warnw("used fallback parsing for words", "method", method.String())
	}
	if float64(len(words)) < float64(count)*0.8 {
		a.logger.Warnw("model returned fewer words than requested", "got", len(words), "requested", count)
	}
	if len(words) > count {
		words = words[:count]
	}
	return words, nil
}

// Suggest asks for practice words targeting errs. Upstream failures are
// returned; unparseable content yields an empty slice.
func (a *AI) Suggest(ctx context.Context, errs model.ErrorMap) ([]string, error) {
	if len(errs) == 0 {
		return []string{}, nil
	}
	a.logger.Infow("requesting suggestions", "count", SuggestionCount, "words", len(errs))
	content, err := a.completer.Complete(ctx, SuggestionsPrompt(errs, SuggestionCount))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch suggestions: %w", err)
	}
	suggestions, method, err := lenient.Parse(content)
	if err != nil {
		a.logger.Warnw("could not extract suggestions", "content", truncate(content, 120))
		return []string{}, nil
	}
	if method == lenient.MethodSplit {
		a.logger.Warnw("used fallback parsing for suggestions")
	}
	if len(suggestions) > SuggestionCount {
		suggestions = suggestions[:SuggestionCount]
	}
	return suggestions, nil
}

// FetchSuggestions implements Advisor.
func (a *AI) FetchSuggestions(ctx context.Context, errs model.ErrorMap) []string {
	out, err := a.Suggest(ctx, errs)
	if err != nil {
		a.logger.Warnw("suggestion fetch failed", "error", err)
		return []string{}
	}
	return out
}

// WordsPrompt builds the word list prompt.
func WordsPrompt(count int) string {
	return fmt.Sprintf(`Generate a list of exactly %d common English words suitable for a spelling practice application.
Focus on words with moderate difficulty, typically between 5 and 12 letters long. Avoid proper nouns.
Return ONLY the words as a JSON formatted list (an array of strings) in your response. Example: ["word1", "word2", ...]`, count)
}

// SuggestionsPrompt builds the suggestion prompt from recorded errors.
func SuggestionsPrompt(errs model.ErrorMap, count int) string {
	return fmt.Sprintf(`Based on the following information about a user's recent spelling errors:
%q

Suggest exactly %d relevant English words for spelling practice. The suggestions should target spelling patterns, rules, or difficulties related to the types of errors the user might be making (e.g., vowel sounds, double letters, suffixes, common confusions evident from the errors). Prioritize moderately common words.

Return ONLY the suggested words as a JSON formatted list (an array of strings) in your response. Example: ["suggestion1", "suggestion2", ...]`, summarizeErrors(errs), count)
}

// summarizeErrors lists the most frequently missed words first.
func summarizeErrors(errs model.ErrorMap) string {
	words := make([]string, 0, len(errs))
	for w := range errs {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		ci, cj := errCount(errs[words[i]]), errCount(errs[words[j]])
		if ci == cj {
			return words[i] < words[j]
		}
		return ci > cj
	})
	if len(words) > maxSummaryWords {
		return fmt.Sprintf("User frequently misspelled words like: %s, and others.", strings.Join(words[:maxSummaryWords], ", "))
	}
	return fmt.Sprintf("User made spelling errors on words including: %s.", strings.Join(words, ", "))
}

func errCount(rec *model.ErrorRecord) int {
	if rec == nil {
		return 0
	}
	return rec.Count
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
