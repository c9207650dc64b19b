package stats

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/verte-zerg/tuispell/internal/model"
)

// Misspelling is one row of the error report.
type Misspelling struct {
	Word    string
	Count   int
	Details []model.ErrorDetail
}

// TopMisspelled returns up to n words ordered by error count. n <= 0 means all.
func TopMisspelled(errs model.ErrorMap, n int) []Misspelling {
	items := make([]Misspelling, 0, len(errs))
	for word, rec := range errs {
		if rec == nil {
			continue
		}
		items = append(items, Misspelling{Word: word, Count: rec.Count, Details: rec.Details})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Word < items[j].Word
		}
		return items[i].Count > items[j].Count
	})
	if n > 0 && n < len(items) {
		items = items[:n]
	}
	return items
}

// WeakLetters selects the expected letters missed most often across all
// recorded details.
func WeakLetters(errs model.ErrorMap, top int) map[rune]struct{} {
	counts := map[rune]int{}
	for _, rec := range errs {
		if rec == nil {
			continue
		}
		for _, d := range rec.Details {
			runes := []rune(d.Expected)
			if len(runes) > 0 {
				counts[runes[0]]++
			}
		}
	}
	letters := make([]rune, 0, len(counts))
	for r := range counts {
		letters = append(letters, r)
	}
	sort.Slice(letters, func(i, j int) bool {
		if counts[letters[i]] == counts[letters[j]] {
			return letters[i] < letters[j]
		}
		return counts[letters[i]] > counts[letters[j]]
	})
	if top <= 0 || top > len(letters) {
		top = len(letters)
	}
	weakSet := make(map[rune]struct{}, top)
	for _, r := range letters[:top] {
		weakSet[r] = struct{}{}
	}
	return weakSet
}

// RenderErrorTable prints misspelled words with their recent mistakes.
func RenderErrorTable(w io.Writer, errs model.ErrorMap, limit, width int) error {
	rows := TopMisspelled(errs, limit)
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No spelling errors recorded.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Misspelled Words"); err != nil {
		return err
	}
	headers := []string{"Word", "Errors", "Recent (typed→expected@pos)"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			r.Word,
			fmt.Sprintf("%d", r.Count),
			describeDetails(r.Details),
		})
	}
	for _, line := range formatTable(headers, tableRows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, truncateWidth(line, width)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func describeDetails(details []model.ErrorDetail) string {
	parts := make([]string, 0, len(details))
	for i := len(details) - 1; i >= 0; i-- {
		d := details[i]
		parts = append(parts, fmt.Sprintf("%s→%s@%d", d.Typed, d.Expected, d.Position))
	}
	return strings.Join(parts, " ")
}
