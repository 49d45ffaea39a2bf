// Package repository serializes the record collection in and out of a
// key-value backend. Every mutating caller does a full load-modify-save
// of the collection; last write wins, there is no cross-process lock.
package repository

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/akurlov/shortly/internal/models"
	"github.com/akurlov/shortly/internal/store"
)

type Repository struct {
	kv     store.KV
	logger *zap.SugaredLogger
}

func NewRepository(kv store.KV, logger *zap.SugaredLogger) *Repository {
	return &Repository{
		kv:     kv,
		logger: logger,
	}
}

// LoadAll returns every stored record. An absent or corrupt document
// degrades to an empty collection, a read never fails the caller.
func (r *Repository) LoadAll() []models.ShortenedRecord {
	data, err := r.kv.Load()
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			r.logger.Errorf("error loading records, treating storage as empty: %v", err)
		}
		return []models.ShortenedRecord{}
	}

	records := []models.ShortenedRecord{}
	if err := json.Unmarshal(data, &records); err != nil {
		r.logger.Errorf("corrupt records document, treating storage as empty: %v", err)
		return []models.ShortenedRecord{}
	}

	return records
}

// SaveAll overwrites the whole collection in a single write.
func (r *Repository) SaveAll(records []models.ShortenedRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("error encoding records: %w", err)
	}

	if err := r.kv.Save(data); err != nil {
		return fmt.Errorf("error saving records: %w", err)
	}

	return nil
}

func (r *Repository) Ping() error {
	return r.kv.Ping()
}

func (r *Repository) Close() {
	r.kv.Close()
}
