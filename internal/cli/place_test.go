package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParsePlaceFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty defaults to json", input: "", want: []string{"json"}},
		{name: "single", input: "svg", want: []string{"svg"}},
		{name: "multiple", input: "json,report,svg", want: []string{"json", "report", "svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parsePlaceFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parsePlaceFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parsePlaceFormats(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{name: "derived from input", output: "", input: "boards/demo.json", want: "boards/demo"},
		{name: "output with format extension stripped", output: "out.svg", input: "demo.json", want: "out"},
		{name: "output without extension kept", output: "out", input: "demo.json", want: "out"},
		{name: "unknown extension kept", output: "out.bak", input: "demo.json", want: "out.bak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "demo.json")

	artifacts := map[string][]byte{
		"json":   []byte(`{"name":"demo"}`),
		"report": []byte("Placement Report\n"),
	}

	paths, err := writeArtifacts(artifacts, "", input)
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("writeArtifacts() wrote %d files, want 2", len(paths))
	}

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("reading %s: %v", p, err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", p)
		}
	}

	// Sorted format order means json comes before report
	if filepath.Base(paths[0]) != "demo.json" {
		t.Errorf("paths[0] = %q, want demo.json", paths[0])
	}
	if filepath.Base(paths[1]) != "demo.report" {
		t.Errorf("paths[1] = %q, want demo.report", paths[1])
	}
}

func TestWriteArtifactsSingleOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "placed.svg")

	paths, err := writeArtifacts(map[string][]byte{"svg": []byte("<svg/>")}, out, "demo.json")
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}
	if len(paths) != 1 || paths[0] != out {
		t.Errorf("writeArtifacts() paths = %v, want [%s]", paths, out)
	}
}

func TestValidateRatsnestFormat(t *testing.T) {
	for _, format := range []string{"svg", "dot", "pdf", "png"} {
		if err := validateRatsnestFormat(format); err != nil {
			t.Errorf("validateRatsnestFormat(%q) error: %v", format, err)
		}
	}
	for _, format := range []string{"json", "report", "gif", ""} {
		if err := validateRatsnestFormat(format); err == nil {
			t.Errorf("validateRatsnestFormat(%q) should fail", format)
		}
	}
}
