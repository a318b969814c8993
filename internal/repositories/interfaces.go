package repositories

import (
	"context"

	"github.com/NH-Portal/portal-service/internal/models"
	"github.com/NH-Portal/portal-service/internal/recordstore"
)

// AccountRepository owns account records in the record store, keyed by
// the immutable account identifier.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)

	// Create writes the record at its identifier. Uniqueness is the
	// caller's responsibility via ExistsByID; the store has no
	// transactional constraint (last write wins across sessions).
	Create(ctx context.Context, account *models.Account) error

	// UpdateFields merges a partial update into the stored record.
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error

	// Delete removes the record permanently. No cascade to content.
	Delete(ctx context.Context, id string) error

	ExistsByID(ctx context.Context, id string) (bool, error)
}

// ContentRepository owns material and assessment records. Content is
// immutable after creation; there is no update operation.
type ContentRepository interface {
	GetByID(ctx context.Context, collection, id string) (*models.ContentRecord, error)

	// ListOrdered returns the collection newest-first by upload
	// timestamp with store-generated ids attached.
	ListOrdered(ctx context.Context, collection string) ([]models.ContentRecord, error)

	// Create writes the record under a store-generated id and returns it.
	Create(ctx context.Context, collection string, record *models.ContentRecord) (string, error)

	Delete(ctx context.Context, collection, id string) error
}

// Repository bundles the portal repositories over one record store.
type Repository interface {
	Account() AccountRepository
	Content() ContentRepository
	Ping(ctx context.Context) error
	Close() error
}

// IsNotFoundError reports whether err means a missing record.
func IsNotFoundError(err error) bool {
	return recordstore.IsNotFound(err)
}
