// Package metrics derives live typing statistics from session counters.
package metrics

import (
	"fmt"
	"math"
	"time"
)

// Snapshot is a point-in-time view of session progress.
type Snapshot struct {
	Elapsed   time.Duration
	Formatted string
	WPM       int
	Accuracy  int
}

// Compute builds a snapshot. A zero start means timing has not begun.
func Compute(start, now time.Time, correct, incorrect int) Snapshot {
	var elapsed time.Duration
	if !start.IsZero() && now.After(start) {
		elapsed = now.Sub(start)
	}
	return Snapshot{
		Elapsed:   elapsed,
		Formatted: FormatElapsed(elapsed),
		WPM:       WPM(correct+incorrect, elapsed),
		Accuracy:  Accuracy(correct, incorrect),
	}
}

// WPM returns gross words per minute, counting five characters as a word.
func WPM(chars int, elapsed time.Duration) int {
	minutes := elapsed.Seconds() / 60
	if minutes <= 0 || chars <= 0 {
		return 0
	}
	return int(math.Round((float64(chars) / 5.0) / minutes))
}

// Accuracy returns the correct share as a percentage, 100 when nothing was typed.
func Accuracy(correct, incorrect int) int {
	total := correct + incorrect
	if total <= 0 {
		return 100
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// FormatElapsed renders elapsed time as m:ss.
func FormatElapsed(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	secs := int64(elapsed.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// SessionWPM computes unrounded WPM and accuracy (0-1) for a stored session.
func SessionWPM(correct, incorrect int, durationMs int64) (wpm, accuracy float64) {
	if durationMs <= 0 {
		return 0, 0
	}
	minutes := float64(durationMs) / 60000.0
	wpm = (float64(correct+incorrect) / 5.0) / minutes
	den := float64(correct + incorrect)
	if den > 0 {
		accuracy = float64(correct) / den
	}
	return wpm, accuracy
}
