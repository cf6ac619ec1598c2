// Package store keeps generated record batches in an encrypted zstore
// collection, one entry per batch.
package store

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstore"
	"github.com/zarlcorp/zsynth/internal/record"
)

const collectionName = "batches"

// ErrNotFound is returned when a batch does not exist.
var ErrNotFound = errors.New("batch not found")

// Batch is one generation run: the records plus everything needed to
// reproduce them.
type Batch struct {
	ID            string          `json:"id"`
	Kind          record.Kind     `json:"kind"`
	Seed          uint64          `json:"seed"`
	ReferenceDate string          `json:"reference_date"`
	Ranges        record.Ranges   `json:"ranges"`
	Records       []record.Record `json:"records"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewBatch wraps records produced by one generator run under a fresh ID.
func NewBatch(kind record.Kind, seed uint64, ref time.Time, rg record.Ranges, records []record.Record) Batch {
	return Batch{
		ID:            uuid.NewString(),
		Kind:          kind,
		Seed:          seed,
		ReferenceDate: ref.Format(time.DateOnly),
		Ranges:        rg,
		Records:       records,
		CreatedAt:     time.Now().UTC(),
	}
}

// ShortID is the first block of the batch ID, enough to tell batches apart
// in listings.
func (b Batch) ShortID() string {
	if len(b.ID) < 8 {
		return b.ID
	}
	return b.ID[:8]
}

// Store manages saved batches.
type Store struct {
	db      *zstore.Store
	batches *zstore.Collection[Batch]
}

// Open creates dir if needed and opens the encrypted store inside it.
func Open(dir, password string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("open store: create data dir: %w", err)
	}

	db, err := zstore.Open(zfilesystem.NewOSFileSystem(dir), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	s, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an already opened zstore. The Store takes ownership of db.
func New(db *zstore.Store) (*Store, error) {
	col, err := zstore.NewCollection[Batch](db, collectionName)
	if err != nil {
		return nil, fmt.Errorf("open store: %s collection: %w", collectionName, err)
	}
	return &Store{db: db, batches: col}, nil
}

// Save validates every record in b and writes the batch.
func (s *Store) Save(b Batch) error {
	if b.ID == "" {
		return errors.New("save batch: empty id")
	}
	for _, r := range b.Records {
		if err := record.Validate(r, b.Ranges); err != nil {
			return fmt.Errorf("save batch %s: %w", b.ShortID(), err)
		}
	}

	if err := s.batches.Put(b.ID, b); err != nil {
		return fmt.Errorf("save batch %s: %w", b.ShortID(), err)
	}
	return nil
}

// Get returns a batch by full ID or by unique ID prefix.
func (s *Store) Get(id string) (Batch, error) {
	all, err := s.List()
	if err != nil {
		return Batch{}, fmt.Errorf("get batch: %w", err)
	}

	var match []Batch
	for _, b := range all {
		if b.ID == id {
			return b, nil
		}
		if id != "" && strings.HasPrefix(b.ID, id) {
			match = append(match, b)
		}
	}

	switch len(match) {
	case 0:
		return Batch{}, fmt.Errorf("get batch %s: %w", id, ErrNotFound)
	case 1:
		return match[0], nil
	}
	return Batch{}, fmt.Errorf("get batch: prefix %q matches %d batches", id, len(match))
}

// List returns all batches, newest first.
func (s *Store) List() ([]Batch, error) {
	all, err := s.batches.List()
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}

	// zstore does not guarantee order
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

// Delete removes a batch by full ID or unique prefix.
func (s *Store) Delete(id string) error {
	b, err := s.Get(id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}

	if err := s.batches.Delete(b.ID); err != nil {
		return fmt.Errorf("delete batch %s: %w", b.ShortID(), err)
	}
	return nil
}

// Close releases the underlying store and its key material.
func (s *Store) Close() {
	if s.db != nil {
		s.db.Close()
		s.db = nil
	}
}
