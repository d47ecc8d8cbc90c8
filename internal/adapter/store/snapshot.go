package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"webqa/internal/adapter/memstore"
	"webqa/internal/domain"
)

var (
	bucketPassages = []byte("passages")
	bucketMeta     = []byte("meta")
	keyCorpus      = []byte("corpus")
)

// ErrModelMismatch is returned when a snapshot was built with a different
// embedding model than the one configured. Mixing models would compare
// incomparable vectors, so the caller should re-index instead.
var ErrModelMismatch = errors.New("snapshot built with a different embedding model")

// Snapshot persists an embedded corpus to a bolt file so the embedding
// spend survives between runs. It is a best-effort cache, not a durability
// layer: SaveCorpus replaces the previous corpus wholesale.
type Snapshot struct {
	db *bbolt.DB
}

// Open opens (or creates) a snapshot file.
func Open(path string) (*Snapshot, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketPassages, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Snapshot{db: db}, nil
}

type passageRecord struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Text      string    `json:"text"`
	Tokens    int       `json:"tokens"`
	Embedding []float32 `json:"embedding"`
}

// CorpusMeta describes a snapshotted corpus.
type CorpusMeta struct {
	Model     string    `json:"model"`
	Dimension int       `json:"dimension"`
	Passages  int       `json:"passages"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveCorpus writes the store's passages, replacing any previous corpus.
// Keys are big-endian sequence numbers so load order equals insertion order.
func (s *Snapshot) SaveCorpus(st *memstore.Store, model string) error {
	passages := st.All()

	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketPassages); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
			return err
		}
		b, err := tx.CreateBucket(bucketPassages)
		if err != nil {
			return err
		}

		for _, p := range passages {
			rec := passageRecord{
				ID:        uuid.NewString(),
				Source:    p.Source,
				Text:      p.Text,
				Tokens:    p.Tokens,
				Embedding: p.Embedding,
			}
			data, err := json.Marshal(rec)
			if err != nil {
				return err
			}

			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, seq)

			if err := b.Put(key, data); err != nil {
				return err
			}
		}

		meta := CorpusMeta{
			Model:     model,
			Dimension: st.Dimension(),
			Passages:  len(passages),
			CreatedAt: time.Now().UTC(),
		}
		data, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put(keyCorpus, data)
	})
}

// LoadCorpus rebuilds an in-memory store from the snapshot. A non-empty
// model is validated against the snapshot's model; a mismatch fails with
// ErrModelMismatch so stale corpora are re-indexed rather than mixed.
func (s *Snapshot) LoadCorpus(model string) (*memstore.Store, *CorpusMeta, error) {
	st := memstore.NewStore()
	var meta CorpusMeta

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketMeta).Get(keyCorpus)
		if data == nil {
			return fmt.Errorf("snapshot contains no corpus")
		}
		if err := json.Unmarshal(data, &meta); err != nil {
			return err
		}
		if model != "" && meta.Model != model {
			return fmt.Errorf("snapshot model %q, configured model %q: %w", meta.Model, model, ErrModelMismatch)
		}

		return tx.Bucket(bucketPassages).ForEach(func(k, v []byte) error {
			var rec passageRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			passage := domain.Passage{
				Source: rec.Source,
				Text:   rec.Text,
				Tokens: rec.Tokens,
			}
			return st.Insert(passage, rec.Embedding)
		})
	})
	if err != nil {
		return nil, nil, err
	}

	return st, &meta, nil
}

// Close closes the underlying database.
func (s *Snapshot) Close() error {
	return s.db.Close()
}
