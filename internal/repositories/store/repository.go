package store

import (
	"context"

	"github.com/NH-Portal/portal-service/internal/recordstore"
	"github.com/NH-Portal/portal-service/internal/repositories"
)

// repository bundles the portal repositories over one record store.
type repository struct {
	store   recordstore.Store
	account repositories.AccountRepository
	content repositories.ContentRepository
}

func NewRepository(rs recordstore.Store) repositories.Repository {
	return &repository{
		store:   rs,
		account: NewAccountStore(rs),
		content: NewContentStore(rs),
	}
}

func (r *repository) Account() repositories.AccountRepository {
	return r.account
}

func (r *repository) Content() repositories.ContentRepository {
	return r.content
}

func (r *repository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

func (r *repository) Close() error {
	return r.store.Close()
}
