package store

import (
	"context"
	"fmt"

	"github.com/NH-Portal/portal-service/internal/models"
	"github.com/NH-Portal/portal-service/internal/recordstore"
	"github.com/NH-Portal/portal-service/internal/repositories"
)

type accountStore struct {
	store recordstore.Store
}

func NewAccountStore(store recordstore.Store) repositories.AccountRepository {
	return &accountStore{store: store}
}

func (r *accountStore) GetByID(ctx context.Context, id string) (*models.Account, error) {
	doc, err := r.store.Get(ctx, models.CollectionAccounts, id)
	if err != nil {
		if recordstore.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("get account %s: %w", id, err)
	}

	var account models.Account
	if err := doc.Decode(&account); err != nil {
		return nil, fmt.Errorf("decode account %s: %w", id, err)
	}
	account.ID = doc.Key

	return &account, nil
}

func (r *accountStore) List(ctx context.Context) ([]*models.Account, error) {
	docs, err := r.store.GetAll(ctx, models.CollectionAccounts)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	accounts := make([]*models.Account, 0, len(docs))
	for _, doc := range docs {
		var account models.Account
		if err := doc.Decode(&account); err != nil {
			return nil, fmt.Errorf("decode account %s: %w", doc.Key, err)
		}
		account.ID = doc.Key
		accounts = append(accounts, &account)
	}

	return accounts, nil
}

func (r *accountStore) Create(ctx context.Context, account *models.Account) error {
	if err := r.store.Set(ctx, models.CollectionAccounts, account.ID, account); err != nil {
		return fmt.Errorf("create account %s: %w", account.ID, err)
	}
	return nil
}

func (r *accountStore) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if err := r.store.Update(ctx, models.CollectionAccounts, id, fields); err != nil {
		if recordstore.IsNotFound(err) {
			return err
		}
		return fmt.Errorf("update account %s: %w", id, err)
	}
	return nil
}

func (r *accountStore) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, models.CollectionAccounts, id); err != nil {
		return fmt.Errorf("delete account %s: %w", id, err)
	}
	return nil
}

func (r *accountStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	exists, err := r.store.Exists(ctx, models.CollectionAccounts, id)
	if err != nil {
		return false, fmt.Errorf("check account %s: %w", id, err)
	}
	return exists, nil
}
