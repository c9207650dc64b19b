package wordsource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/tuispell/internal/model"
)

const (
	wordsPath       = "/api/get-word"
	suggestionsPath = "/api/get-suggestions"
)

// HTTP talks to the word proxy started by "tuispell serve".
type HTTP struct {
	baseURL string
	client  *http.Client
	logger  *zap.SugaredLogger
}

// NewHTTP returns a proxy client. A nil client gets a 30s timeout default.
func NewHTTP(baseURL string, client *http.Client, logger *zap.SugaredLogger) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// FetchWords implements Source.
func (h *HTTP) FetchWords(ctx context.Context, count int) ([]string, error) {
	if err := ValidateCount(count); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}
	endpoint := h.baseURL + wordsPath + "?" + url.Values{"count": {strconv.Itoa(count)}}.Encode()
	h.logger.Infow("fetching words", "url", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrUpstreamFetch, errorDetails(resp))
	}

	var payload WordsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrUpstreamFetch, ErrMalformedPayload, err)
	}
	if len(payload.Words) == 0 {
		return nil, fmt.Errorf("%w: %w: invalid or empty words array received from API", ErrUpstreamFetch, ErrMalformedPayload)
	}
	h.logger.Infow("words received", "count", len(payload.Words))
	return payload.Words, nil
}

// FetchSuggestions implements Advisor.
func (h *HTTP) FetchSuggestions(ctx context.Context, errs model.ErrorMap) []string {
	out, err := h.fetchSuggestions(ctx, errs)
	if err != nil {
		h.logger.Warnw("suggestion fetch failed", "error", err)
		return []string{}
	}
	return out
}

func (h *HTTP) fetchSuggestions(ctx context.Context, errs model.ErrorMap) ([]string, error) {
	body, err := json.Marshal(SuggestionsRequest{Errors: errs})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+suggestionsPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s", errorDetails(resp))
	}
	var payload SuggestionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Suggestions == nil {
		return []string{}, nil
	}
	return payload.Suggestions, nil
}

// errorDetails prefers the proxy's details, then its error, then the status.
func errorDetails(resp *http.Response) string {
	fallback := fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fallback
	}
	var body ErrorResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return fallback
	}
	if body.Details != "" {
		return body.Details
	}
	if body.Error != "" {
		return body.Error
	}
	return fallback
}
