// Package store defines the key-value contract shared by all storage
// backends. The whole record collection lives as one serialized document
// under one fixed key; every write replaces the document.
package store

import "errors"

// DocumentKey is the single key the collection is stored under.
const DocumentKey = "shortly:records"

// ErrNotFound is returned by Load when no document has been saved yet.
var ErrNotFound = errors.New("document not found")

type KV interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Ping() error
	Close()
}
