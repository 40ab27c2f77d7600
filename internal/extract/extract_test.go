package extract

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/abhisek/quizforge/internal/llm"
)

func TestExtract_HappyPath(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"subtopics": ["Mitosis", "Meiosis", "Cell Cycle Checkpoints"]}`),
	})
	ex := New(mock, DefaultConfig())

	got, err := ex.Extract(context.Background(), "Cell division happens in two ways...")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Mitosis", "Meiosis", "Cell Cycle Checkpoints"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtract_CleansAndCaps(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"subtopics": ["  Mitosis ", "", "mitosis", "Meiosis", "Cytokinesis"]}`),
	})
	cfg := DefaultConfig()
	cfg.MaxSubtopics = 2
	ex := New(mock, cfg)

	got, err := ex.Extract(context.Background(), "doc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Mitosis", "Meiosis"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtract_EmptyResult(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"subtopics": []}`),
	})
	ex := New(mock, DefaultConfig())

	_, err := ex.Extract(context.Background(), "doc")
	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if !exErr.Retryable {
		t.Error("empty result should be retryable")
	}
}

func TestExtract_EmptyDocument(t *testing.T) {
	ex := New(llm.NewMockProvider(), DefaultConfig())
	if _, err := ex.Extract(context.Background(), "   "); err == nil {
		t.Error("expected error for blank document")
	}
}
