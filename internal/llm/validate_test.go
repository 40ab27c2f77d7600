package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

var testSchema = &Schema{
	Name:        "test-list",
	Description: "a list of names",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"names": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required":             []any{"names"},
		"additionalProperties": false,
	},
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"names":["a","b"]}`)
	if err := validateResponse(testSchema, raw); err != nil {
		t.Fatalf("validateResponse: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{}`)
	err := validateResponse(testSchema, raw)
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want *ErrInvalidResponse", err)
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{"names": [`)
	err := validateResponse(testSchema, raw)
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want *ErrInvalidResponse", err)
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not json`)); err != nil {
		t.Fatalf("nil schema should skip validation, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "anthropic"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing anthropic key")
	}

	cfg.Anthropic.APIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	cfg.Provider = "mock"
	if err := cfg.Validate(); err != nil {
		t.Errorf("mock provider should not require a key: %v", err)
	}

	cfg.Provider = "frontier"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown provider")
	}
}
