// Package document loads the study material a quiz is generated from.
// Only plain-text files (text, markdown) are accepted; binary formats need
// external conversion first.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Document is a loaded source file.
type Document struct {
	Name string
	Text string
}

// LoadError explains why a file was rejected.
type LoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Path, e.Reason)
}

func (e *LoadError) Unwrap() error { return e.Err }

var allowedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".text":     true,
	"":          true,
}

// Load reads the file at path, enforcing the extension whitelist, the size
// cap and UTF-8 validity. maxBytes of 0 disables the size check.
func Load(path string, maxBytes int64) (Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !allowedExtensions[ext] {
		return Document{}, &LoadError{Path: path, Reason: fmt.Sprintf("unsupported file type %s", ext)}
	}

	info, err := os.Stat(path)
	if err != nil {
		return Document{}, &LoadError{Path: path, Reason: "cannot read file", Err: err}
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return Document{}, &LoadError{Path: path, Reason: fmt.Sprintf("file exceeds %d bytes", maxBytes)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, &LoadError{Path: path, Reason: "cannot read file", Err: err}
	}
	if !utf8.Valid(data) {
		return Document{}, &LoadError{Path: path, Reason: "not valid UTF-8 text"}
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return Document{}, &LoadError{Path: path, Reason: "file is empty"}
	}

	return Document{Name: filepath.Base(path), Text: text}, nil
}
