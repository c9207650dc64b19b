// Package wordsource fetches practice words and follow-up suggestions.
package wordsource

import (
	"context"
	"errors"
	"fmt"

	"github.com/verte-zerg/tuispell/internal/model"
)

// Count limits for a single word request.
const (
	MinCount        = 1
	MaxCount        = 50
	DefaultCount    = 20
	SuggestionCount = 5
)

var (
	// ErrUpstreamFetch wraps every failure on the mandatory word path.
	ErrUpstreamFetch = errors.New("failed to fetch words")
	// ErrMalformedPayload means the upstream answer held no usable word list.
	ErrMalformedPayload = errors.New("malformed upstream payload")
	// ErrInvalidCount rejects counts outside [MinCount, MaxCount].
	ErrInvalidCount = fmt.Errorf("count must be between %d and %d", MinCount, MaxCount)
)

// Source returns words to type.
type Source interface {
	FetchWords(ctx context.Context, count int) ([]string, error)
}

// Advisor returns practice suggestions. It never fails; on any problem it
// returns an empty slice.
type Advisor interface {
	FetchSuggestions(ctx context.Context, errs model.ErrorMap) []string
}

// ValidateCount checks a requested word count.
func ValidateCount(count int) error {
	if count < MinCount || count > MaxCount {
		return fmt.Errorf("%w (got %d)", ErrInvalidCount, count)
	}
	return nil
}

// WordsResponse is the proxy payload for GET /api/get-word.
type WordsResponse struct {
	Words []string `json:"words"`
}

// SuggestionsRequest is the proxy payload for POST /api/get-suggestions.
type SuggestionsRequest struct {
	Errors model.ErrorMap `json:"errors"`
}

// SuggestionsResponse is the proxy reply for POST /api/get-suggestions.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// ErrorResponse is the proxy error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
