package memstore

import (
	"errors"
	"testing"

	"webqa/internal/domain"
)

func TestStoreInsertOrder(t *testing.T) {
	st := NewStore()

	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		p := domain.Passage{Source: "doc", Text: text, Tokens: 1}
		if err := st.Insert(p, []float32{1, 0, 0}); err != nil {
			t.Fatalf("insert %q: %v", text, err)
		}
	}

	all := st.All()
	if len(all) != len(texts) {
		t.Fatalf("expected %d passages, got %d", len(texts), len(all))
	}
	for i, text := range texts {
		if all[i].Text != text {
			t.Errorf("position %d: expected %q, got %q", i, text, all[i].Text)
		}
	}
}

func TestStoreDimensionFixedByFirstInsert(t *testing.T) {
	st := NewStore()

	if st.Dimension() != 0 {
		t.Errorf("expected dimension 0 for empty store, got %d", st.Dimension())
	}

	if err := st.Insert(domain.Passage{Text: "a"}, []float32{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if st.Dimension() != 3 {
		t.Errorf("expected dimension 3, got %d", st.Dimension())
	}
}

func TestStoreDimensionMismatch(t *testing.T) {
	st := NewStore()

	if err := st.Insert(domain.Passage{Text: "a"}, []float32{1, 2, 3}); err != nil {
		t.Fatal(err)
	}

	err := st.Insert(domain.Passage{Text: "b"}, []float32{1, 2})
	if err == nil {
		t.Fatal("expected error for mismatched dimension")
	}
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}

	// The failed insert must not change the store.
	if st.Len() != 1 {
		t.Errorf("expected store unchanged with 1 passage, got %d", st.Len())
	}
	if st.Dimension() != 3 {
		t.Errorf("expected dimension still 3, got %d", st.Dimension())
	}
}

func TestStoreRejectsEmptyEmbedding(t *testing.T) {
	st := NewStore()

	err := st.Insert(domain.Passage{Text: "a"}, nil)
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch for empty embedding, got %v", err)
	}
	if st.Len() != 0 {
		t.Errorf("expected empty store, got %d passages", st.Len())
	}
}
