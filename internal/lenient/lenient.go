// Package lenient extracts a list of strings from loosely formatted model output.
package lenient

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrNoStrings is returned when no step yields at least one string.
var ErrNoStrings = errors.New("no strings found in text")

// Method names the step that produced a result.
type Method int

// Parse steps, in the order they are tried.
const (
	MethodNone Method = iota
	MethodStrict
	MethodBracket
	MethodSplit
)

func (m Method) String() string {
	switch m {
	case MethodStrict:
		return "strict"
	case MethodBracket:
		return "bracket"
	case MethodSplit:
		return "split"
	default:
		return "none"
	}
}

var (
	bracketPattern = regexp.MustCompile(`\[\s*("[^"]*"(?:\s*,\s*"[^"]*")*)\s*\]`)
	splitPattern   = regexp.MustCompile(`[\n,]+`)
	listMarker     = regexp.MustCompile(`^(?:\d+[.)]|[-*•])\s*`)
)

// Parse runs Strict, then Bracket, then Split and returns the first
// non-empty result.
func Parse(text string) ([]string, Method, error) {
	if out, err := Strict(text); err == nil && len(out) > 0 {
		return out, MethodStrict, nil
	}
	if out, err := Bracket(text); err == nil && len(out) > 0 {
		return out, MethodBracket, nil
	}
	if out := Split(text); len(out) > 0 {
		return out, MethodSplit, nil
	}
	return nil, MethodNone, ErrNoStrings
}

// Strict parses the whole text as a JSON array of strings.
func Strict(text string) ([]string, error) {
	var out []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Bracket parses the first bracketed JSON string array found inside text.
func Bracket(text string) ([]string, error) {
	match := bracketPattern.FindString(text)
	if match == "" {
		return nil, ErrNoStrings
	}
	return Strict(match)
}

// Split breaks text on newlines and commas, strips quotes and list markers,
// and keeps single-token entries longer than one character.
func Split(text string) []string {
	var out []string
	for _, part := range splitPattern.Split(text, -1) {
		part = strings.TrimSpace(part)
		part = listMarker.ReplaceAllString(part, "")
		part = strings.Map(func(r rune) rune {
			switch r {
			case '"', '\'', '[', ']', '`':
				return -1
			}
			return r
		}, part)
		part = strings.TrimSpace(part)
		if utf8.RuneCountInString(part) <= 1 {
			continue
		}
		if strings.IndexFunc(part, unicode.IsSpace) >= 0 {
			continue
		}
		out = append(out, part)
	}
	return out
}
