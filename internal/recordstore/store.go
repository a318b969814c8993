package recordstore

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned for point reads of missing records.
var ErrNotFound = errors.New("record not found")

// Document is a stored record together with its store-assigned key.
type Document struct {
	Key  string
	Data json.RawMessage
}

// Decode unmarshals the document payload into dest.
func (d Document) Decode(dest interface{}) error {
	return json.Unmarshal(d.Data, dest)
}

// Store is the record-store client consumed by the portal. Records live
// in named collections and are addressed by collection plus key. The
// store enforces no uniqueness or size constraints of its own; callers
// guard duplicates with Exists before Set (last write wins across
// concurrent sessions).
type Store interface {
	// Get performs a point read; ErrNotFound if the key is absent.
	Get(ctx context.Context, collection, key string) (*Document, error)

	// GetAll returns every record in the collection in stable key order.
	GetAll(ctx context.Context, collection string) ([]Document, error)

	// QueryOrdered returns the collection ordered by the named field,
	// descending. Ties keep the stable key order.
	QueryOrdered(ctx context.Context, collection, field string) ([]Document, error)

	// Set writes the record at the given key, replacing any previous value.
	Set(ctx context.Context, collection, key string, value interface{}) error

	// Update merges the given fields into the existing record.
	Update(ctx context.Context, collection, key string, fields map[string]interface{}) error

	// Delete removes the record. Deleting an absent key is not an error.
	Delete(ctx context.Context, collection, key string) error

	// Push writes the record under a store-generated key and returns it.
	Push(ctx context.Context, collection string, value interface{}) (string, error)

	// Exists reports whether a record is present at the key.
	Exists(ctx context.Context, collection, key string) (bool, error)

	Ping(ctx context.Context) error
	Close() error
}

// IsNotFound reports whether err is a missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
