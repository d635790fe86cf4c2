package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/dgallion1/tripgest/internal/itinerary"
)

const sample = "Day 1: Arrival\n* Morning (10 AM): Check into the ryokan near Gion\n* Evening: Dinner at a tiny yakitori counter\n"

func TestFit(t *testing.T) {
	tests := []struct {
		in    string
		width int
	}{
		{"short", 10},
		{"exactly ten", 11},
		{"a much longer activity description", 12},
		{"京都の伏見稲荷大社を訪れる", 10},
	}
	for _, tc := range tests {
		got := fit(tc.in, tc.width)
		if w := runewidth.StringWidth(got); w != tc.width {
			t.Errorf("fit(%q, %d): expected width %d, got %d (%q)", tc.in, tc.width, tc.width, w, got)
		}
	}
}

func TestParseCmd_StdinJSON(t *testing.T) {
	g := &globals{json: true, destination: "Kyoto", days: 1}
	cmd := parseCmd(g)
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(sample))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	var res itinerary.Result
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("decode output %q: %v", out.String(), err)
	}
	if len(res.Activities) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(res.Activities))
	}
	if res.Activities[0].Time != "10:00" || res.Activities[0].Type != itinerary.CategoryAccommodation {
		t.Errorf("unexpected first activity: %+v", res.Activities[0])
	}
}

func TestParseCmd_Table(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.txt")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	g := &globals{destination: "Kyoto", days: 1}
	cmd := parseCmd(g)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	text := out.String()
	for _, want := range []string{"ACTIVITY", "Check into the ryokan near Gion", "2 activities from 3 lines"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected output to contain %q\n%s", want, text)
		}
	}
	if strings.Contains(text, "\x1b[") {
		t.Error("expected no ANSI styling when not writing to a terminal")
	}
}

func TestExportCmd_FromFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "kyoto.txt")
	if err := os.WriteFile(in, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "kyoto.html")

	g := &globals{destination: "Kyoto", days: 1}
	cmd := exportCmd(g)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{in, "--format", "html", "--out", outPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "<title>kyoto</title>") || !strings.Contains(string(data), "Check into the ryokan") {
		t.Errorf("unexpected html:\n%s", data)
	}
}

func TestExportCmd_NeedsInput(t *testing.T) {
	cmd := exportCmd(&globals{days: 1})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error without file or --trip")
	}
}
