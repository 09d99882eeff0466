package deps

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Detail != "" {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary to be unavailable with detail, got %#v", results[1])
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Detail != "command not configured" {
		t.Fatalf("unexpected detail for blank command: %q", results[2].Detail)
	}
}

func TestMissing(t *testing.T) {
	statuses := []Status{
		{Name: "FFmpeg", Available: true},
		{Name: "uvx", Detail: `binary "uvx" not found`},
		{Name: "extra", Optional: true, Detail: "binary not found"},
	}
	err := Missing(statuses)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "uvx") || strings.Contains(err.Error(), "extra") {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Missing(statuses[:1]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTranscribeRequirements(t *testing.T) {
	reqs := TranscribeRequirements("")
	if len(reqs) != 3 || reqs[0].Command != "ffmpeg" || reqs[1].Command != "ffprobe" || reqs[2].Command != "uvx" {
		t.Fatalf("unexpected requirements: %+v", reqs)
	}
	if got := TranscribeRequirements("/opt/ffmpeg")[0].Command; got != "/opt/ffmpeg" {
		t.Fatalf("ffmpeg command = %q", got)
	}
}

func TestCheckDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	tests := []struct {
		name      string
		path      string
		available bool
		detail    string
	}{
		{name: "writable dir", path: dir, available: true, detail: "read/write ok"},
		{name: "missing", path: filepath.Join(dir, "missing"), detail: "does not exist"},
		{name: "regular file", path: file, detail: "is not a directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := CheckDirectory("dir", tt.path)
			if status.Available != tt.available {
				t.Fatalf("available = %v, want %v (%s)", status.Available, tt.available, status.Detail)
			}
			if status.Detail != tt.detail {
				t.Fatalf("detail = %q, want %q", status.Detail, tt.detail)
			}
		})
	}
}
