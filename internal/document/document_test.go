package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "notes.md", []byte("# Cell Division\n\nMitosis has four phases.\n"))

	doc, err := Load(path, 1<<20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Name != "notes.md" {
		t.Errorf("expected name notes.md, got %q", doc.Name)
	}
	if doc.Text != "# Cell Division\n\nMitosis has four phases." {
		t.Errorf("unexpected text %q", doc.Text)
	}
}

func TestLoadRejections(t *testing.T) {
	cases := []struct {
		name string
		file string
		data []byte
		max  int64
	}{
		{name: "unsupported extension", file: "slides.pdf", data: []byte("x"), max: 0},
		{name: "oversized", file: "big.txt", data: make([]byte, 100), max: 10},
		{name: "invalid utf8", file: "bin.txt", data: []byte{0xff, 0xfe, 0x00}, max: 0},
		{name: "empty", file: "empty.txt", data: []byte("   \n"), max: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, tc.file, tc.data)
			_, err := Load(path, tc.max)
			var lerr *LoadError
			if !errors.As(err, &lerr) {
				t.Fatalf("expected LoadError, got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	var lerr *LoadError
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt"), 0); !errors.As(err, &lerr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
}
