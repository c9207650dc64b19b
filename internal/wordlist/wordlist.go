// Package wordlist loads word lists for offline practice.
package wordlist

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed en.txt
var defaultList string

// ErrEmpty is returned when a list holds no usable words.
var ErrEmpty = fmt.Errorf("word list is empty")

// Load reads one word per line from path.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return Parse(file)
}

// Default returns the built-in English list.
func Default() []string {
	words, err := Parse(strings.NewReader(defaultList))
	if err != nil {
		panic(fmt.Sprintf("embedded word list: %v", err))
	}
	return words
}

// Parse reads one word per line, lowercases it and keeps the first
// occurrence of every word that passes IsPracticeWord.
func Parse(r io.Reader) ([]string, error) {
	var words []string
	seen := map[string]struct{}{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if !IsPracticeWord(line) {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	return words, nil
}

// IsPracticeWord reports whether word is a plain lowercase ASCII word.
func IsPracticeWord(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}
