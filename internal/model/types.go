// Package model defines shared data structures.
package model

import "time"

// Word source names.
const (
	SourceAI    = "ai"
	SourceProxy = "proxy"
	SourceLocal = "local"
)

// Config defines practice settings.
type Config struct {
	Words        int
	Source       string
	WordListPath string
	Suggest      bool
}

// AIConfig selects the language model used for words and suggestions.
type AIConfig struct {
	Provider    string
	Model       string
	BaseURL     string
	APIKey      string
	Temperature float64
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Source string
	Since  *time.Time
	Last   int
}

// SessionStats captures a completed typing session.
type SessionStats struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Source     string
	Words      int
	Correct    int
	Incorrect  int
	DurationMs int64
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID  int64
	EndedAt    time.Time
	Correct    int
	Incorrect  int
	DurationMs int64
}

// ErrorDetail is one recorded mismatch inside a word.
type ErrorDetail struct {
	Expected  string `json:"expected"`
	Typed     string `json:"typed"`
	Position  int    `json:"position"`
	Timestamp int64  `json:"timestamp"`
}

// ErrorRecord accumulates mismatches for a single word.
type ErrorRecord struct {
	Count   int           `json:"count"`
	Details []ErrorDetail `json:"details"`
}

// ErrorMap is keyed by the target word.
type ErrorMap map[string]*ErrorRecord
