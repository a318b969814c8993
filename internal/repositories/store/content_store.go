package store

import (
	"context"
	"fmt"

	"github.com/NH-Portal/portal-service/internal/models"
	"github.com/NH-Portal/portal-service/internal/recordstore"
	"github.com/NH-Portal/portal-service/internal/repositories"
)

// uploadedAtField is the JSON field content collections are ordered by.
const uploadedAtField = "uploaded_at"

type contentStore struct {
	store recordstore.Store
}

func NewContentStore(store recordstore.Store) repositories.ContentRepository {
	return &contentStore{store: store}
}

func (r *contentStore) GetByID(ctx context.Context, collection, id string) (*models.ContentRecord, error) {
	doc, err := r.store.Get(ctx, collection, id)
	if err != nil {
		if recordstore.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("get content %s/%s: %w", collection, id, err)
	}

	var record models.ContentRecord
	if err := doc.Decode(&record); err != nil {
		return nil, fmt.Errorf("decode content %s/%s: %w", collection, id, err)
	}
	record.ID = doc.Key

	return &record, nil
}

func (r *contentStore) ListOrdered(ctx context.Context, collection string) ([]models.ContentRecord, error) {
	docs, err := r.store.QueryOrdered(ctx, collection, uploadedAtField)
	if err != nil {
		return nil, fmt.Errorf("list content %s: %w", collection, err)
	}

	records := make([]models.ContentRecord, 0, len(docs))
	for _, doc := range docs {
		var record models.ContentRecord
		if err := doc.Decode(&record); err != nil {
			return nil, fmt.Errorf("decode content %s/%s: %w", collection, doc.Key, err)
		}
		record.ID = doc.Key
		records = append(records, record)
	}

	return records, nil
}

func (r *contentStore) Create(ctx context.Context, collection string, record *models.ContentRecord) (string, error) {
	id, err := r.store.Push(ctx, collection, record)
	if err != nil {
		return "", fmt.Errorf("create content in %s: %w", collection, err)
	}
	return id, nil
}

func (r *contentStore) Delete(ctx context.Context, collection, id string) error {
	if err := r.store.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("delete content %s/%s: %w", collection, id, err)
	}
	return nil
}
