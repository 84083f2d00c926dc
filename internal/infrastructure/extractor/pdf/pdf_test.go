package pdf

import (
	"errors"
	"testing"
)

func TestExtractUsesFirstSucceedingStrategy(t *testing.T) {
	e := NewWithStrategies(
		func([]byte) (string, error) { return "layout text", nil },
		func([]byte) (string, error) { t.Fatal("fallback must not run"); return "", nil },
	)

	if got := e.Extract([]byte("doc")); got != "layout text" {
		t.Fatalf("Extract() = %q, want layout text", got)
	}
}

func TestExtractFallsBackOnError(t *testing.T) {
	e := NewWithStrategies(
		func([]byte) (string, error) { return "", errors.New("xref broken") },
		func([]byte) (string, error) { return "sequential text", nil },
	)

	if got := e.Extract([]byte("doc")); got != "sequential text" {
		t.Fatalf("Extract() = %q, want sequential text", got)
	}
}

func TestExtractFallsBackOnEmptyResult(t *testing.T) {
	e := NewWithStrategies(
		func([]byte) (string, error) { return "   \n ", nil },
		func([]byte) (string, error) { return "sequential text", nil },
	)

	if got := e.Extract([]byte("doc")); got != "sequential text" {
		t.Fatalf("Extract() = %q, want sequential text", got)
	}
}

func TestExtractRecoversFromStrategyPanic(t *testing.T) {
	e := NewWithStrategies(
		func([]byte) (string, error) { panic("malformed xref table") },
		func([]byte) (string, error) { return "sequential text", nil },
	)

	if got := e.Extract([]byte("doc")); got != "sequential text" {
		t.Fatalf("Extract() = %q, want sequential text", got)
	}
}

func TestExtractTotalFailureYieldsEmptyString(t *testing.T) {
	e := NewWithStrategies(
		func([]byte) (string, error) { return "", errors.New("broken") },
		func([]byte) (string, error) { panic("also broken") },
	)

	if got := e.Extract([]byte("doc")); got != "" {
		t.Fatalf("Extract() = %q, want empty string", got)
	}
}

func TestDefaultChainOnGarbageBytes(t *testing.T) {
	if got := New().Extract([]byte("definitely not a pdf")); got != "" {
		t.Fatalf("Extract() = %q, want empty string", got)
	}
}
