package lenient

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseStrict(t *testing.T) {
	out, method, err := Parse(` ["apple", "banana"] `)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if method != MethodStrict {
		t.Fatalf("expected strict, got %s", method)
	}
	if !reflect.DeepEqual(out, []string{"apple", "banana"}) {
		t.Fatalf("unexpected result: %v", out)
	}
}

func TestParseBracketInsideProse(t *testing.T) {
	text := "Sure! Here are your words:\n```json\n[\"necessary\", \"rhythm\",\n \"occasion\"]\n```\nGood luck."
	out, method, err := Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if method != MethodBracket {
		t.Fatalf("expected bracket, got %s", method)
	}
	if !reflect.DeepEqual(out, []string{"necessary", "rhythm", "occasion"}) {
		t.Fatalf("unexpected result: %v", out)
	}
}

func TestParseStrictRejectsNonStrings(t *testing.T) {
	out, method, err := Parse(`[1, 2, 3]`)
	if err == nil {
		t.Fatalf("expected failure for numeric array, got %v via %s", out, method)
	}
	if !errors.Is(err, ErrNoStrings) {
		t.Fatalf("expected ErrNoStrings, got %v", err)
	}
}

func TestParseSplitFallback(t *testing.T) {
	text := "1. apple\n2. 'banana'\n- cherry, \"grape\"\nx\n"
	out, method, err := Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if method != MethodSplit {
		t.Fatalf("expected split, got %s", method)
	}
	want := []string{"apple", "banana", "cherry", "grape"}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("expected %v, got %v", want, out)
	}
}

func TestSplitDropsSentences(t *testing.T) {
	out := Split("Here are the words:\nalpha\nbeta")
	if !reflect.DeepEqual(out, []string{"alpha", "beta"}) {
		t.Fatalf("unexpected result: %v", out)
	}
}

func TestParseNothing(t *testing.T) {
	if _, _, err := Parse("  \n , ,"); !errors.Is(err, ErrNoStrings) {
		t.Fatalf("expected ErrNoStrings, got %v", err)
	}
}

func TestBracketNoMatch(t *testing.T) {
	if _, err := Bracket("no array here"); err == nil {
		t.Fatalf("expected error without brackets")
	}
}
