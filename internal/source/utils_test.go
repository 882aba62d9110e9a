package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}
	if err := os.MkdirAll(otherDir, 0o755); err != nil {
		t.Fatalf("failed to create other dir: %v", err)
	}

	target := filepath.Join(otherDir, "file.js")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}

	want := normalizePath(target)
	if got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}

	target := filepath.Join(baseDir, "nested", "file.js")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}

	want := normalizePath(filepath.Join("nested", "file.js"))
	if got != want {
		t.Fatalf("expected relative path %q, got %q", want, got)
	}
}

func TestBaseName(t *testing.T) {
	if got := BaseName(filepath.Join("a", "b", "c.js")); got != "c.js" {
		t.Errorf("BaseName() = %q, want %q", got, "c.js")
	}
}

func TestToLineCol(t *testing.T) {
	// "ab\ncd\n\nxyz" → переводы строки на 2, 5 и 6.
	idx := buildLineIndex([]byte("ab\ncd\n\nxyz"))

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{name: "first byte", off: 0, want: LineCol{Line: 1, Col: 1}},
		{name: "last byte of line one", off: 1, want: LineCol{Line: 1, Col: 2}},
		{name: "newline closes its own line", off: 2, want: LineCol{Line: 1, Col: 3}},
		{name: "first byte after newline", off: 3, want: LineCol{Line: 2, Col: 1}},
		{name: "inside second line", off: 4, want: LineCol{Line: 2, Col: 2}},
		{name: "empty line", off: 6, want: LineCol{Line: 3, Col: 1}},
		{name: "after empty line", off: 7, want: LineCol{Line: 4, Col: 1}},
		{name: "end of file", off: 10, want: LineCol{Line: 4, Col: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toLineCol(idx, tt.off); got != tt.want {
				t.Errorf("toLineCol(%d) = %+v, want %+v", tt.off, got, tt.want)
			}
		})
	}
}

func TestToLineColEmptyIndex(t *testing.T) {
	// Файл без \n — вся позиция в первой строке.
	got := toLineCol(nil, 7)
	if got != (LineCol{Line: 1, Col: 8}) {
		t.Errorf("toLineCol(nil, 7) = %+v, want 1:8", got)
	}
}

func TestBuildLineIndex(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []uint32
	}{
		{name: "empty", content: "", want: nil},
		{name: "no newline", content: "abc", want: nil},
		{name: "trailing newline", content: "a\nb\n", want: []uint32{1, 3}},
		{name: "consecutive newlines", content: "\n\n", want: []uint32{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildLineIndex([]byte(tt.content))
			if len(got) != len(tt.want) {
				t.Fatalf("buildLineIndex(%q) = %v, want %v", tt.content, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("buildLineIndex(%q)[%d] = %d, want %d", tt.content, i, got[i], tt.want[i])
				}
			}
		})
	}
}
