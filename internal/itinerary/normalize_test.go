package itinerary

import (
	"strings"
	"testing"
)

func TestNormalize_StripsMarkupAndBlankLines(t *testing.T) {
	input := "## **Day 1: Arrival**\r\n\r\n   * **Morning:** Check in   \r* Evening: Dinner\n\n\n"
	got := Normalize(input)
	want := []string{
		"Day 1: Arrival",
		"* Morning: Check in",
		"* Evening: Dinner",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("line[%d]: expected %q, got %q", i, w, got[i])
		}
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	if got := Normalize(""); len(got) != 0 {
		t.Errorf("expected no lines, got %q", got)
	}
	if got := Normalize("\n\r\n   \t\n"); len(got) != 0 {
		t.Errorf("expected no lines for whitespace input, got %q", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		bangkokSample,
		"***Triple*** stars and ####hashes",
		"****\n**\n*",
		"line one\r\nline two\rline three",
		"  # Heading with **bold** text  \n\n- item",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(strings.Join(once, "\n"))
		if strings.Join(once, "\n") != strings.Join(twice, "\n") {
			t.Errorf("not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}
