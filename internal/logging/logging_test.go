package logging

import "testing"

func TestNew(t *testing.T) {
	logger, err := New("info", "console")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger == nil {
		t.Fatal("expected a logger")
	}

	if _, err := New("debug", "json"); err != nil {
		t.Errorf("unexpected error for json format: %v", err)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New("loud", "console"); err == nil {
		t.Error("expected error for invalid level")
	}
}
